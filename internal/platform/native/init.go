//go:build cgo

package native

import "github.com/automata-tools/deskagent/internal/platform"

func init() {
	platform.NewProviderFunc = func() (*platform.Provider, error) {
		return &platform.Provider{
			// Reader is an OS accessibility binding registered by
			// per-OS packages; absent here, the accessibility tier
			// reports itself unavailable and the router moves on.
			WindowManager: NewWindowManager(),
			Inputter:      NewInputter(),
			Screenshotter: NewScreenshotter(),
			Processes:     NewProcessInspector(),
			NewRecognizer: func() (platform.Recognizer, error) {
				return NewRecognizer()
			},
		}, nil
	}
}
