package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/automata-tools/deskagent/internal/config"
	"github.com/automata-tools/deskagent/internal/model"
	"github.com/automata-tools/deskagent/internal/platform"
)

// Router sequences the tier strategies in fixed precedence: structured
// document, accessibility, shortcut, visual recognition. The order runs
// from most precise to most invasive, so a failed early tier leaves as
// little state behind as possible for the later ones.
type Router struct {
	tiers []Tier
	wm    platform.WindowManager
	cfg   config.Config
	log   *slog.Logger
}

// NewRouter builds the default tier chain over the provider's backends.
func NewRouter(p *platform.Provider, cfg config.Config, log *slog.Logger) *Router {
	return &Router{
		tiers: []Tier{
			newDocumentTier(cfg, log),
			newAccessibilityTier(p.Reader, p.Inputter, cfg, log),
			newShortcutTier(p.WindowManager, p.Inputter, cfg, log),
			newVisionTier(p, cfg, log),
		},
		wm:  p.WindowManager,
		cfg: cfg,
		log: log,
	}
}

// NewRouterWithTiers builds a router over an explicit tier chain.
func NewRouterWithTiers(wm platform.WindowManager, cfg config.Config, log *slog.Logger, tiers ...Tier) *Router {
	return &Router{tiers: tiers, wm: wm, cfg: cfg, log: log}
}

// Route resolves one intent, stopping at the first tier that succeeds.
// Exhaustion of all tiers is the only failure it reports.
func (r *Router) Route(ctx context.Context, req Request) model.ActionResult {
	// Foreground the target first so tiers that depend on focus are not
	// starved by an earlier tier's side effects. Best-effort.
	if r.wm != nil {
		if err := r.wm.Focus(req.Win); err != nil {
			r.log.Debug("foreground failed", "title", req.Win.Title, "error", err)
		} else {
			time.Sleep(r.cfg.FocusSettle.Duration)
		}
	}

	var lastStrategy string
	for _, tier := range r.tiers {
		outcome := r.attempt(ctx, tier, req)
		switch outcome.Status {
		case StatusSuccess:
			r.log.Info("action resolved",
				"tier", tier.Name(), "strategy", outcome.Strategy,
				"target", outcome.Target.Kind,
				"element", req.Intent.Element)
			return model.Okay(outcome.Strategy)
		case StatusUnavailable:
			r.log.Debug("tier unavailable", "tier", tier.Name())
		case StatusFailed:
			r.log.Warn("tier failed",
				"tier", tier.Name(), "error", outcome.Err)
			lastStrategy = tier.Name()
		}
	}

	msg := fmt.Sprintf("could not %s %q in %q: all strategies exhausted",
		req.Intent.Kind, req.Intent.Element, req.Intent.App)
	if lastStrategy != "" {
		msg += fmt.Sprintf(" (last attempted: %s)", lastStrategy)
	}
	return model.Failed(msg)
}

// attempt shields the router from a misbehaving tier: a panic inside a tier
// becomes a Failed outcome, never an aborted resolution.
func (r *Router) attempt(ctx context.Context, tier Tier, req Request) (out Outcome) {
	defer func() {
		if rec := recover(); rec != nil {
			out = Failure(fmt.Errorf("tier %s panicked: %v", tier.Name(), rec))
		}
	}()
	return tier.Attempt(ctx, req)
}
