// Package locate resolves a human-supplied application name to a live
// top-level window.
package locate

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/automata-tools/deskagent/internal/config"
	"github.com/automata-tools/deskagent/internal/fuzzy"
	"github.com/automata-tools/deskagent/internal/model"
	"github.com/automata-tools/deskagent/internal/platform"
)

// ErrWindowNotFound is returned when no window scores above the match
// threshold before the deadline.
var ErrWindowNotFound = fmt.Errorf("window not found")

// Locator polls the OS window set until a match appears or the deadline
// elapses. Target applications are frequently still launching or rendering
// when automation starts; a single-shot enumeration would be flaky by
// construction.
type Locator struct {
	wm  platform.WindowManager
	cfg config.Config
	log *slog.Logger
}

// New returns a Locator over the given window manager.
func New(wm platform.WindowManager, cfg config.Config, log *slog.Logger) *Locator {
	return &Locator{wm: wm, cfg: cfg, log: log}
}

// Locate returns the best-matching window for appName, polling until
// timeout. A zero or negative timeout fails immediately without polling.
func (l *Locator) Locate(ctx context.Context, appName string, timeout time.Duration) (model.Window, error) {
	if l.wm == nil {
		return model.Window{}, fmt.Errorf("window enumeration not available on this platform")
	}
	deadline := time.Now().Add(timeout)

	for time.Now().Before(deadline) {
		if err := ctx.Err(); err != nil {
			return model.Window{}, err
		}

		win, score, ok := l.bestMatch(appName)
		if ok && score >= l.cfg.WindowMatchThreshold {
			if err := l.wm.Bind(win); err != nil {
				// The window may be transiently unready; keep polling.
				l.log.Debug("bind failed, retrying",
					"title", win.Title, "error", err)
			} else {
				l.log.Debug("window located",
					"title", win.Title, "score", score, "pid", win.PID)
				return win, nil
			}
		}

		select {
		case <-ctx.Done():
			return model.Window{}, ctx.Err()
		case <-time.After(l.cfg.WindowPollInterval.Duration):
		}
	}

	return model.Window{}, fmt.Errorf("%w: no window matching %q after %s; is the app open?",
		ErrWindowNotFound, appName, timeout)
}

// bestMatch enumerates all windows once and returns the highest scorer.
// Each window is scored by the best of its title, class name, and owning
// process name.
func (l *Locator) bestMatch(appName string) (model.Window, int, bool) {
	windows, err := l.wm.ListWindows()
	if err != nil {
		l.log.Debug("window enumeration failed", "error", err)
		return model.Window{}, 0, false
	}

	bestScore := 0
	var best model.Window
	found := false
	for _, win := range windows {
		score := fuzzy.Score(appName, win.Title)
		if s := fuzzy.Score(appName, win.Class); s > score {
			score = s
		}
		if s := fuzzy.Score(appName, win.App); s > score {
			score = s
		}
		if score > bestScore {
			bestScore = score
			best = win
			found = true
		}
	}
	return best, bestScore, found
}
