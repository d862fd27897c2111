package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/automata-tools/deskagent/internal/config"
	"github.com/automata-tools/deskagent/internal/model"
	"github.com/automata-tools/deskagent/internal/platform"
)

// Verifier confirms an action's visible effect by polling the visual tier's
// detection step. Read-only: it never injects input.
type Verifier struct {
	vision *visionTier
	cfg    config.Config
	log    *slog.Logger
}

// NewVerifier builds a Verifier over the provider's capture and recognition
// backends.
func NewVerifier(p *platform.Provider, cfg config.Config, log *slog.Logger) *Verifier {
	return &Verifier{vision: newVisionTier(p, cfg, log), cfg: cfg, log: log}
}

// Verify reports whether text becomes visible in the window before timeout.
func (v *Verifier) Verify(ctx context.Context, win model.Window, text string, timeout time.Duration) bool {
	if v.vision.provider.Screenshotter == nil || v.vision.provider.NewRecognizer == nil {
		return false
	}
	deadline := time.Now().Add(timeout)

	for {
		detections, err := v.vision.detect(win)
		if err != nil {
			v.log.Debug("verify detection failed", "error", err)
		} else if _, score, ok := bestDetection(detections, text, v.cfg.OCRMatchThreshold); ok {
			v.log.Debug("verify matched", "text", text, "score", score)
			return true
		}

		if !time.Now().Add(v.cfg.VerifyPollInterval.Duration).Before(deadline) {
			return false
		}
		select {
		case <-ctx.Done():
			return false
		case <-time.After(v.cfg.VerifyPollInterval.Duration):
		}
	}
}
