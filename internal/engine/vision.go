package engine

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

// visionTier works on pixels alone: capture, recognize, score, click.
// Strictly last: slow on first use (the provider loads the OCR engine
// once) and imprecise by nature.
type visionTier struct {
	provider *platform.Provider
	cfg      config.Config
	log      *slog.Logger
}

func newVisionTier(p *platform.Provider, cfg config.Config, log *slog.Logger) *visionTier {
	return &visionTier{provider: p, cfg: cfg, log: log}
}

func (t *visionTier) Name() string { return "vision" }

func (t *visionTier) Attempt(ctx context.Context, req Request) Outcome {
	if t.provider.Screenshotter == nil || t.provider.Inputter == nil || t.provider.NewRecognizer == nil {
		return Unavailable()
	}

	detections, err := t.detect(req.Win)
	if err != nil {
		return Failure(err)
	}
	best, score, ok := bestDetection(detections, req.Intent.Element, t.cfg.OCRMatchThreshold)
	if !ok {
		return Unavailable()
	}

	// Detection coordinates are window-local; shift to absolute screen.
	cx, cy := best.Center()
	x := req.Win.Bounds[0] + cx
	y := req.Win.Bounds[1] + cy
	t.log.Debug("ocr target", "text", best.Text, "score", score, "x", x, "y", y)

	switch req.Intent.Kind {
	case model.ActionClick:
		if err := t.clickAt(x, y); err != nil {
			return Failure(err)
		}
		return Success(fmt.Sprintf("ocr:click@%d,%d", x, y), model.PointTarget(x, y))
	case model.ActionType:
		if err := t.clickAt(x, y); err != nil {
			return Failure(err)
		}
		if err := sendKeys(t.provider.Inputter, req.Intent.Text); err != nil {
			return Failure(fmt.Errorf("keystroke injection: %w", err))
		}
		time.Sleep(t.cfg.TypeSettle.Duration)
		return Success(fmt.Sprintf("ocr:type@%d,%d", x, y), model.PointTarget(x, y))
	}
	return Failure(fmt.Errorf("unsupported action %q", req.Intent.Kind))
}

func (t *visionTier) clickAt(x, y int) error {
	if err := t.provider.Inputter.MoveMouse(x, y); err != nil {
		return fmt.Errorf("pointer move: %w", err)
	}
	if err := t.provider.Inputter.Click(x, y); err != nil {
		return fmt.Errorf("pointer click: %w", err)
	}
	time.Sleep(t.cfg.ClickSettle.Duration)
	return nil
}

// detect captures the window rectangle (clamped to the virtual-screen
// bound) and runs one recognition pass over it.
func (t *visionTier) detect(win model.Window) ([]model.Detection, error) {
	rec, err := t.provider.Recognizer()
	if err != nil {
		return nil, fmt.Errorf("load ocr engine: %w", err)
	}

	w, h := win.Bounds[2], win.Bounds[3]
	if w > t.cfg.CaptureMaxWidth {
		w = t.cfg.CaptureMaxWidth
	}
	if h > t.cfg.CaptureMaxHeight {
		h = t.cfg.CaptureMaxHeight
	}
	img, err := t.provider.Screenshotter.CaptureRect(win.Bounds[0], win.Bounds[1], w, h)
	if err != nil {
		return nil, fmt.Errorf("capture window: %w", err)
	}

	detections, err := rec.Detect(img)
	if err != nil {
		return nil, fmt.Errorf("recognize: %w", err)
	}
	return detections, nil
}

// bestDetection scores each detection's text against the element name,
// weighted by recognition confidence, and returns the best hit above the
// threshold.
func bestDetection(detections []model.Detection, name string, threshold float64) (model.Detection, float64, bool) {
	var best model.Detection
	bestScore := 0.0
	found := false
	for _, d := range detections {
		score := float64(fuzzy.Score(name, d.Text)) * d.Confidence
		if score > bestScore {
			bestScore = score
			best = d
			found = true
		}
	}
	if !found || bestScore < threshold {
		return model.Detection{}, 0, false
	}
	return best, bestScore, true
}
