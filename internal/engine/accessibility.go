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

// accessibilityTier resolves elements through the native accessibility
// tree.
type accessibilityTier struct {
	reader platform.Reader
	input  platform.Inputter
	cfg    config.Config
	log    *slog.Logger
}

func newAccessibilityTier(reader platform.Reader, input platform.Inputter, cfg config.Config, log *slog.Logger) *accessibilityTier {
	return &accessibilityTier{reader: reader, input: input, cfg: cfg, log: log}
}

func (t *accessibilityTier) Name() string { return "accessibility" }

// expectedRoles are control roles an element named by a user usually has;
// the first resolution pass filters on them to avoid matching decorative
// text.
var expectedRoles = []string{"edit", "input", "button", "menuitem", "listitem"}

func (t *accessibilityTier) Attempt(ctx context.Context, req Request) Outcome {
	if t.reader == nil {
		return Unavailable()
	}
	elements, err := t.reader.ReadElements(req.Win)
	if err != nil {
		return Failure(fmt.Errorf("read tree: %w", err))
	}

	el, how := t.resolve(model.Flatten(elements), req.Intent.Element)
	if el == nil {
		return Unavailable()
	}

	switch req.Intent.Kind {
	case model.ActionClick:
		return t.click(req.Win, *el, how)
	case model.ActionType:
		return t.typeText(req.Win, *el, how, req.Intent.Text)
	}
	return Failure(fmt.Errorf("unsupported action %q", req.Intent.Kind))
}

// resolve walks the four resolution passes in order: exact title within the
// expected roles, exact title anywhere, identifier match, then the fuzzy
// scan.
func (t *accessibilityTier) resolve(flat []model.Element, name string) (*model.Element, string) {
	for i := range flat {
		if flat[i].Title == name && roleExpected(flat[i].Role) {
			return &flat[i], "title-role"
		}
	}
	for i := range flat {
		if flat[i].Title == name {
			return &flat[i], "title"
		}
	}
	for i := range flat {
		if flat[i].AutoID != "" && flat[i].AutoID == name {
			return &flat[i], "auto-id"
		}
	}

	best := -1
	bestScore := 0
	for i := range flat {
		score := fuzzy.Score(name, flat[i].Title)
		if s := fuzzy.Score(name, flat[i].AutoID); s > score {
			score = s
		}
		if score > bestScore {
			bestScore = score
			best = i
		}
	}
	if best >= 0 && bestScore >= t.cfg.TreeScanThreshold {
		t.log.Debug("fuzzy tree match", "element", flat[best].Title, "score", bestScore)
		return &flat[best], "fuzzy"
	}
	return nil, ""
}

func roleExpected(role string) bool {
	norm := fuzzy.Normalize(role)
	for _, want := range expectedRoles {
		if norm == want {
			return true
		}
	}
	return false
}

func (t *accessibilityTier) click(win model.Window, el model.Element, how string) Outcome {
	if err := t.reader.FocusElement(win, el.ID); err != nil {
		t.log.Debug("element focus failed", "id", el.ID, "error", err)
	}
	x, y := model.CenterOf(el.Bounds)
	if t.input != nil {
		if err := t.input.Click(x, y); err == nil {
			time.Sleep(t.cfg.ClickSettle.Duration)
			return Success("ax:click:"+how, model.NodeTarget(el.ID))
		}
	}
	// Synthetic input failed or is absent; invoke the element directly.
	if err := t.reader.Invoke(win, el.ID); err != nil {
		return Failure(fmt.Errorf("invoke element %d: %w", el.ID, err))
	}
	time.Sleep(t.cfg.ClickSettle.Duration)
	return Success("ax:invoke:"+how, model.NodeTarget(el.ID))
}

func (t *accessibilityTier) typeText(win model.Window, el model.Element, how, text string) Outcome {
	if err := t.reader.FocusElement(win, el.ID); err != nil {
		t.log.Debug("element focus failed", "id", el.ID, "error", err)
	}
	if err := t.reader.SetText(win, el.ID, text); err == nil {
		time.Sleep(t.cfg.TypeSettle.Duration)
		return Success("ax:set-text:"+how, model.NodeTarget(el.ID))
	}
	if t.input == nil {
		return Failure(fmt.Errorf("element %d rejects direct value writes and no input driver is present", el.ID))
	}
	x, y := model.CenterOf(el.Bounds)
	if err := t.input.Click(x, y); err != nil {
		return Failure(fmt.Errorf("focus click: %w", err))
	}
	if err := sendKeys(t.input, text); err != nil {
		return Failure(fmt.Errorf("keystroke injection: %w", err))
	}
	time.Sleep(t.cfg.TypeSettle.Duration)
	return Success("ax:type-keys:"+how, model.NodeTarget(el.ID))
}
