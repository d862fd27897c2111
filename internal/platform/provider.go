package platform

import (
	"fmt"
	"runtime"
	"sync"
)

// Provider bundles all platform backends for the current OS. Individual
// fields may be nil when a backend is unavailable; callers treat a nil
// backend as "tier unavailable", not as an error.
type Provider struct {
	WindowManager WindowManager
	Reader        Reader
	Inputter      Inputter
	Screenshotter Screenshotter
	Processes     ProcessInspector
	// NewRecognizer constructs the OCR engine. It is invoked at most
	// once, on first use of the visual tier; the instance lives until
	// process exit and is never reinitialized mid-run.
	NewRecognizer func() (Recognizer, error)

	recOnce sync.Once
	rec     Recognizer
	recErr  error
}

// Recognizer returns the process-scoped OCR engine, constructing it on
// first use. The construction cost (model load) is paid exactly once.
func (p *Provider) Recognizer() (Recognizer, error) {
	if p.NewRecognizer == nil {
		return nil, fmt.Errorf("no text recognizer registered")
	}
	p.recOnce.Do(func() {
		p.rec, p.recErr = p.NewRecognizer()
	})
	return p.rec, p.recErr
}

// CloseRecognizer tears down the OCR engine at process exit.
func (p *Provider) CloseRecognizer() {
	if p.rec != nil {
		_ = p.rec.Close()
	}
}

// ErrUnsupported is returned when no backend registered for this OS.
var ErrUnsupported = fmt.Errorf("deskagent has no native backend for %s/%s", runtime.GOOS, runtime.GOARCH)

// NewProviderFunc is set by backend packages via init().
var NewProviderFunc func() (*Provider, error)

// NewProvider returns a Provider for the current OS.
func NewProvider() (*Provider, error) {
	if NewProviderFunc == nil {
		return nil, ErrUnsupported
	}
	return NewProviderFunc()
}
