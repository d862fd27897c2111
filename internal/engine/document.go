package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/automata-tools/deskagent/internal/cdp"
	"github.com/automata-tools/deskagent/internal/config"
	"github.com/automata-tools/deskagent/internal/model"
	"github.com/automata-tools/deskagent/internal/selector"
)

// docSession is the slice of the debug-protocol client the tier needs;
// tests substitute their own.
type docSession interface {
	WaitVisible(ctx context.Context, sel string, interval time.Duration) (bool, error)
	Click(ctx context.Context, sel string) error
	ClickByText(ctx context.Context, text string) error
	Fill(ctx context.Context, sel, text string) error
	InsertText(ctx context.Context, text string) error
	PressKey(ctx context.Context, key string) error
	Close() error
}

// documentTier drives applications that expose a structured document over a
// debug endpoint. Tried first: when available it offers exact,
// non-destructive targeting.
type documentTier struct {
	cfg  config.Config
	log  *slog.Logger
	dial func(ctx context.Context, host string, port int) (docSession, error)
}

func newDocumentTier(cfg config.Config, log *slog.Logger) *documentTier {
	return &documentTier{cfg: cfg, log: log, dial: dialPage}
}

func dialPage(ctx context.Context, host string, port int) (docSession, error) {
	pages, err := cdp.ListPages(ctx, host, port)
	if err != nil {
		return nil, err
	}
	page, ok := cdp.PickPage(pages)
	if !ok {
		return nil, fmt.Errorf("endpoint has no debuggable page")
	}
	return cdp.Connect(ctx, page)
}

func (t *documentTier) Name() string { return "document" }

// Document-tier key tokens map onto protocol key names.
var docKeys = map[string]string{
	"enter":  "Enter",
	"tab":    "Tab",
	"escape": "Escape",
}

func (t *documentTier) Attempt(ctx context.Context, req Request) Outcome {
	if !req.Identity.HasEndpoint() {
		return Unavailable()
	}

	session, err := t.dial(ctx, req.Identity.DebugHost, req.Identity.DebugPort)
	if err != nil {
		return Failure(fmt.Errorf("connect debug endpoint: %w", err))
	}
	defer session.Close()

	candidates := selector.Synthesize(req.Intent.Element, req.Intent.App)

	switch req.Intent.Kind {
	case model.ActionClick:
		return t.click(ctx, session, req, candidates)
	case model.ActionType:
		return t.typeText(ctx, session, req, candidates)
	}
	return Failure(fmt.Errorf("unsupported action %q", req.Intent.Kind))
}

func (t *documentTier) click(ctx context.Context, s docSession, req Request, candidates []string) Outcome {
	for _, cand := range candidates {
		if text, ok := selector.IsTextQuery(cand); ok {
			if err := s.ClickByText(ctx, text); err == nil {
				return Success("cdp:text="+text, model.SelectorTarget(cand))
			}
			continue
		}
		if !t.candidateVisible(ctx, s, cand) {
			continue
		}
		if err := s.Click(ctx, cand); err == nil {
			return Success("cdp:"+cand, model.SelectorTarget(cand))
		}
	}

	// Exhausted all candidates: one final visible-text sweep.
	if err := s.ClickByText(ctx, req.Intent.Element); err == nil {
		return Success("cdp:text="+req.Intent.Element,
			model.SelectorTarget(selector.TextQueryPrefix+req.Intent.Element))
	}
	return Failure(fmt.Errorf("no selector candidate matched %q", req.Intent.Element))
}

func (t *documentTier) typeText(ctx context.Context, s docSession, req Request, candidates []string) Outcome {
	// A lone control token is a key press, not field content.
	if key, ok := soleToken(req.Intent.Text); ok {
		docKey, supported := docKeys[key]
		if !supported {
			return Failure(fmt.Errorf("key token %q not supported by document tier", key))
		}
		if err := s.PressKey(ctx, docKey); err != nil {
			return Failure(err)
		}
		return Success("cdp:key="+docKey, model.ShortcutTarget([]string{docKey}))
	}

	// Split trailing control tokens out so "query{ENTER}" fills the field
	// with "query" and presses Enter, instead of depositing literal braces.
	var fieldText string
	var keys []string
	for _, seg := range splitKeyTokens(req.Intent.Text) {
		if seg.key != "" {
			keys = append(keys, seg.key)
			continue
		}
		fieldText += seg.text
	}

	// Translate tokens before touching the page, so an unsupported
	// token cannot leave a half-typed field behind.
	presses := make([]string, 0, len(keys))
	for _, key := range keys {
		docKey, ok := docKeys[key]
		if !ok {
			return Failure(fmt.Errorf("key token %q not supported by document tier", key))
		}
		presses = append(presses, docKey)
	}

	for _, cand := range candidates {
		if _, ok := selector.IsTextQuery(cand); ok {
			// Text queries locate labels, not fields; skip for fill.
			continue
		}
		if !t.candidateVisible(ctx, s, cand) {
			continue
		}
		if err := s.Click(ctx, cand); err != nil {
			continue
		}
		if err := s.Fill(ctx, cand, fieldText); err == nil {
			if err := t.pressKeys(ctx, s, presses); err != nil {
				return Failure(err)
			}
			return Success("cdp:fill="+cand, model.SelectorTarget(cand))
		}
	}

	// Last resort: type into whatever holds focus.
	if err := s.InsertText(ctx, fieldText); err != nil {
		return Failure(fmt.Errorf("focused-element type: %w", err))
	}
	if err := t.pressKeys(ctx, s, presses); err != nil {
		return Failure(err)
	}
	return Success("cdp:focused-type", model.SelectorTarget(":focus"))
}

func (t *documentTier) pressKeys(ctx context.Context, s docSession, presses []string) error {
	for _, docKey := range presses {
		if err := s.PressKey(ctx, docKey); err != nil {
			return err
		}
	}
	return nil
}

// candidateVisible waits up to the per-candidate budget for the selector to
// occupy screen space.
func (t *documentTier) candidateVisible(ctx context.Context, s docSession, sel string) bool {
	waitCtx, cancel := context.WithTimeout(ctx, t.cfg.SelectorWaitTimeout.Duration)
	defer cancel()
	visible, err := s.WaitVisible(waitCtx, sel, t.cfg.SelectorPollInterval.Duration)
	if err != nil {
		t.log.Debug("visibility wait failed", "selector", sel, "error", err)
		return false
	}
	return visible
}
