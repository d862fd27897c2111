package engine

import (
	"context"
	"strings"
	"testing"

	"github.com/automata-tools/deskagent/internal/model"
)

func clickRequest(app, element string) Request {
	return Request{
		Win:    model.Window{Title: app, Bounds: [4]int{0, 0, 800, 600}},
		Intent: model.Intent{App: app, Element: element, Kind: model.ActionClick},
	}
}

func TestRoutePrecedence(t *testing.T) {
	// Both the document tier and the shortcut tier would succeed; the
	// result must reflect the document tier.
	doc := &stubTier{name: "document", outcome: Success("cdp:[aria-label=\"Search\"]", model.SelectorTarget(`[aria-label="Search"]`))}
	sc := &stubTier{name: "shortcut", outcome: Success("shortcut:generic-search", model.ShortcutTarget([]string{"ctrl", "f"}))}
	r := NewRouterWithTiers(&fakeWM{}, fastConfig(), quietLogger(), doc, sc)

	res := r.Route(context.Background(), clickRequest("discord", "search"))
	if !res.Success {
		t.Fatalf("route failed: %s", res.Error)
	}
	if !strings.HasPrefix(res.Strategy, "cdp:") {
		t.Fatalf("strategy = %q, want the document tier's", res.Strategy)
	}
	if sc.called {
		t.Fatal("shortcut tier ran although an earlier tier succeeded")
	}
}

func TestRouteSkipsUnavailable(t *testing.T) {
	first := &stubTier{name: "document", outcome: Unavailable()}
	second := &stubTier{name: "accessibility", outcome: Success("ax:click:title", model.NodeTarget(7))}
	r := NewRouterWithTiers(&fakeWM{}, fastConfig(), quietLogger(), first, second)

	res := r.Route(context.Background(), clickRequest("notepad", "File"))
	if !res.Success || res.Strategy != "ax:click:title" {
		t.Fatalf("got %+v", res)
	}
	if !first.called {
		t.Fatal("first tier was never consulted")
	}
}

func TestRouteExhaustionNamesElementAndApp(t *testing.T) {
	tiers := []Tier{
		&stubTier{name: "document", outcome: Unavailable()},
		&stubTier{name: "accessibility", outcome: Failure(errUnreachable)},
		&stubTier{name: "shortcut", outcome: Unavailable()},
		&stubTier{name: "vision", outcome: Failure(errUnreachable)},
	}
	r := NewRouterWithTiers(&fakeWM{}, fastConfig(), quietLogger(), tiers...)

	res := r.Route(context.Background(), clickRequest("myapp", "Send Button"))
	if res.Success {
		t.Fatal("route succeeded with all tiers exhausted")
	}
	if !strings.Contains(res.Error, "Send Button") || !strings.Contains(res.Error, "myapp") {
		t.Fatalf("exhaustion error %q must name element and app", res.Error)
	}
}

func TestRouteSurvivesPanickingTier(t *testing.T) {
	ok := &stubTier{name: "vision", outcome: Success("ocr:click@5,5", model.PointTarget(5, 5))}
	r := NewRouterWithTiers(&fakeWM{}, fastConfig(), quietLogger(), panicTier{}, ok)

	res := r.Route(context.Background(), clickRequest("app", "el"))
	if !res.Success || res.Strategy != "ocr:click@5,5" {
		t.Fatalf("got %+v", res)
	}
}

func TestRouteForegroundsBestEffort(t *testing.T) {
	wm := &fakeWM{}
	tier := &stubTier{name: "document", outcome: Success("cdp:x", model.SelectorTarget("x"))}
	r := NewRouterWithTiers(wm, fastConfig(), quietLogger(), tier)

	r.Route(context.Background(), clickRequest("Discord", "search"))
	if len(wm.focused) != 1 || wm.focused[0] != "Discord" {
		t.Fatalf("window was not foregrounded: %v", wm.focused)
	}

	// A focus failure must not abort routing.
	wm2 := &fakeWM{focusErr: errUnreachable}
	tier2 := &stubTier{name: "document", outcome: Success("cdp:y", model.SelectorTarget("y"))}
	r2 := NewRouterWithTiers(wm2, fastConfig(), quietLogger(), tier2)
	if res := r2.Route(context.Background(), clickRequest("a", "b")); !res.Success {
		t.Fatalf("focus failure aborted routing: %+v", res)
	}
}
