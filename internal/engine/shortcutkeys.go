package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/automata-tools/deskagent/internal/config"
	"github.com/automata-tools/deskagent/internal/model"
	"github.com/automata-tools/deskagent/internal/platform"
	"github.com/automata-tools/deskagent/internal/shortcut"
)

// shortcutTier recognizes anticipated intents by name and replays the
// matching key combination. Cheap and deterministic, but it cannot discover
// elements it has no entry for.
type shortcutTier struct {
	wm    platform.WindowManager
	input platform.Inputter
	cfg   config.Config
	log   *slog.Logger
}

func newShortcutTier(wm platform.WindowManager, input platform.Inputter, cfg config.Config, log *slog.Logger) *shortcutTier {
	return &shortcutTier{wm: wm, input: input, cfg: cfg, log: log}
}

func (t *shortcutTier) Name() string { return "shortcut" }

func (t *shortcutTier) Attempt(ctx context.Context, req Request) Outcome {
	if t.input == nil {
		return Unavailable()
	}
	entry, ok := shortcut.Lookup(req.Intent.App, req.Intent.Element)
	if !ok {
		return Unavailable()
	}

	if t.wm != nil {
		if err := t.wm.Focus(req.Win); err != nil {
			t.log.Debug("foreground before shortcut failed", "error", err)
		}
	}

	if err := t.input.KeyTap(entry.Key, entry.Mods...); err != nil {
		return Failure(fmt.Errorf("shortcut %s: %w", entry.Name, err))
	}
	time.Sleep(entry.Settle)

	combo := append(append([]string{}, entry.Mods...), entry.Key)
	if req.Intent.Kind == model.ActionType {
		if err := sendKeys(t.input, req.Intent.Text); err != nil {
			return Failure(fmt.Errorf("type after shortcut %s: %w", entry.Name, err))
		}
		time.Sleep(t.cfg.TypeSettle.Duration)
		return Success("shortcut:"+entry.Name+"+type", model.ShortcutTarget(combo))
	}
	return Success("shortcut:"+entry.Name, model.ShortcutTarget(combo))
}
