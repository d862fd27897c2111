package engine

import (
	"context"
	"errors"
	"image"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/automata-tools/deskagent/internal/config"
	"github.com/automata-tools/deskagent/internal/model"
	"github.com/automata-tools/deskagent/internal/platform"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fastConfig strips the settle delays so tests run instantly.
func fastConfig() config.Config {
	cfg := config.Default()
	cfg.FocusSettle = config.Duration{}
	cfg.ClickSettle = config.Duration{}
	cfg.TypeSettle = config.Duration{}
	cfg.SelectorWaitTimeout = config.Duration{Duration: 50 * time.Millisecond}
	cfg.SelectorPollInterval = config.Duration{Duration: 5 * time.Millisecond}
	cfg.VerifyPollInterval = config.Duration{Duration: 20 * time.Millisecond}
	return cfg
}

// stubTier returns a fixed outcome and records whether it ran.
type stubTier struct {
	name    string
	outcome Outcome
	called  bool
}

func (s *stubTier) Name() string { return s.name }

func (s *stubTier) Attempt(context.Context, Request) Outcome {
	s.called = true
	return s.outcome
}

// panicTier always panics.
type panicTier struct{}

func (panicTier) Name() string                             { return "panic" }
func (panicTier) Attempt(context.Context, Request) Outcome { panic("boom") }

// fakeInput records injected events.
type fakeInput struct {
	moves    [][2]int
	clicks   [][2]int
	typed    []string
	taps     [][]string
	clickErr error
}

func (f *fakeInput) MoveMouse(x, y int) error {
	f.moves = append(f.moves, [2]int{x, y})
	return nil
}

func (f *fakeInput) Click(x, y int) error {
	if f.clickErr != nil {
		return f.clickErr
	}
	f.clicks = append(f.clicks, [2]int{x, y})
	return nil
}

func (f *fakeInput) TypeText(text string) error {
	f.typed = append(f.typed, text)
	return nil
}

func (f *fakeInput) KeyTap(key string, mods ...string) error {
	f.taps = append(f.taps, append([]string{key}, mods...))
	return nil
}

// fakeWM tracks focus calls.
type fakeWM struct {
	focused  []string
	focusErr error
}

func (f *fakeWM) ListWindows() ([]model.Window, error) { return nil, nil }
func (f *fakeWM) Bind(model.Window) error              { return nil }

func (f *fakeWM) Focus(win model.Window) error {
	if f.focusErr != nil {
		return f.focusErr
	}
	f.focused = append(f.focused, win.Title)
	return nil
}

// fakeReader serves a fixed tree and records element operations.
type fakeReader struct {
	elements   []model.Element
	readErr    error
	focusedIDs []int
	invokedIDs []int
	setTexts   map[int]string
	setTextErr error
}

func (f *fakeReader) ReadElements(model.Window) ([]model.Element, error) {
	return f.elements, f.readErr
}

func (f *fakeReader) FocusElement(_ model.Window, id int) error {
	f.focusedIDs = append(f.focusedIDs, id)
	return nil
}

func (f *fakeReader) Invoke(_ model.Window, id int) error {
	f.invokedIDs = append(f.invokedIDs, id)
	return nil
}

func (f *fakeReader) SetText(_ model.Window, id int, text string) error {
	if f.setTextErr != nil {
		return f.setTextErr
	}
	if f.setTexts == nil {
		f.setTexts = map[int]string{}
	}
	f.setTexts[id] = text
	return nil
}

// fakeShot returns a 1x1 image for any rect.
type fakeShot struct {
	rects [][4]int
	err   error
}

func (f *fakeShot) CaptureRect(x, y, w, h int) (image.Image, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.rects = append(f.rects, [4]int{x, y, w, h})
	return image.NewRGBA(image.Rect(0, 0, 1, 1)), nil
}

// fakeRecognizer returns fixed detections. Guarded so tests can swap the
// detections while a verifier polls from another goroutine.
type fakeRecognizer struct {
	mu         sync.Mutex
	detections []model.Detection
	closed     bool
}

func (f *fakeRecognizer) Detect(image.Image) ([]model.Detection, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.detections, nil
}

func (f *fakeRecognizer) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeRecognizer) setDetections(d []model.Detection) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.detections = d
}

func visionProvider(shot *fakeShot, input *fakeInput, rec *fakeRecognizer, builds *int) *platform.Provider {
	return &platform.Provider{
		Screenshotter: shot,
		Inputter:      input,
		NewRecognizer: func() (platform.Recognizer, error) {
			if builds != nil {
				*builds++
			}
			return rec, nil
		},
	}
}

var errUnreachable = errors.New("unreachable backend")
