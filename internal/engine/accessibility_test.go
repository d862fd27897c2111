package engine

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/automata-tools/deskagent/internal/model"
)

func axTree() []model.Element {
	return []model.Element{
		{ID: 1, Role: "Window", Title: "Notepad", Bounds: [4]int{0, 0, 800, 600}, Children: []model.Element{
			{ID: 2, Role: "Text", Title: "Search", Bounds: [4]int{10, 10, 100, 20}},
			{ID: 3, Role: "Button", Title: "Search", Bounds: [4]int{10, 40, 80, 30}},
			{ID: 4, Role: "Edit", Title: "", AutoID: "searchBox", Bounds: [4]int{100, 40, 200, 30}},
			{ID: 5, Role: "MenuItem", Title: "Save As", Bounds: [4]int{0, 0, 60, 20}},
		}},
	}
}

func axTierWith(reader *fakeReader, input *fakeInput) *accessibilityTier {
	return newAccessibilityTier(reader, input, fastConfig(), quietLogger())
}

func axRequest(kind model.ActionKind, element, text string) Request {
	return Request{
		Win:    model.Window{Title: "Notepad", PID: 4},
		Intent: model.Intent{App: "notepad", Element: element, Kind: kind, Text: text},
	}
}

func TestAXUnavailableWithoutReader(t *testing.T) {
	tier := axTierWith(nil, &fakeInput{})
	tier.reader = nil
	if out := tier.Attempt(context.Background(), axRequest(model.ActionClick, "x", "")); out.Status != StatusUnavailable {
		t.Fatalf("status = %v, want unavailable", out.Status)
	}
}

func TestAXExactTitlePrefersExpectedRole(t *testing.T) {
	// "Search" matches both a static text (id 2) and a button (id 3);
	// the role-filtered pass must pick the button.
	reader := &fakeReader{elements: axTree()}
	input := &fakeInput{}
	tier := axTierWith(reader, input)

	out := tier.Attempt(context.Background(), axRequest(model.ActionClick, "Search", ""))
	if out.Status != StatusSuccess {
		t.Fatalf("outcome %+v", out)
	}
	if !strings.HasSuffix(out.Strategy, "title-role") {
		t.Fatalf("strategy = %q", out.Strategy)
	}
	if out.Target.Kind != model.TargetNode || out.Target.NodeID != 3 {
		t.Fatalf("target = %+v", out.Target)
	}
	// Click landed at the button's center, not the text's.
	if len(input.clicks) != 1 || input.clicks[0] != [2]int{50, 55} {
		t.Fatalf("clicks = %v", input.clicks)
	}
	if len(reader.focusedIDs) != 1 || reader.focusedIDs[0] != 3 {
		t.Fatalf("focused = %v", reader.focusedIDs)
	}
}

func TestAXAutoIDMatch(t *testing.T) {
	reader := &fakeReader{elements: axTree()}
	tier := axTierWith(reader, &fakeInput{})

	out := tier.Attempt(context.Background(), axRequest(model.ActionClick, "searchBox", ""))
	if out.Status != StatusSuccess || !strings.HasSuffix(out.Strategy, "auto-id") {
		t.Fatalf("outcome %+v", out)
	}
}

func TestAXFuzzyScanThreshold(t *testing.T) {
	reader := &fakeReader{elements: axTree()}
	tier := axTierWith(reader, &fakeInput{})

	// "save" scores 85 against "Save As" (prefix), above the 45 floor.
	out := tier.Attempt(context.Background(), axRequest(model.ActionClick, "save", ""))
	if out.Status != StatusSuccess || !strings.HasSuffix(out.Strategy, "fuzzy") {
		t.Fatalf("outcome %+v", out)
	}

	// Nothing in the tree resembles this; the tier must step aside.
	out = tier.Attempt(context.Background(), axRequest(model.ActionClick, "qqqqqq", ""))
	if out.Status != StatusUnavailable {
		t.Fatalf("status = %v, want unavailable", out.Status)
	}
}

func TestAXClickFallsBackToInvoke(t *testing.T) {
	reader := &fakeReader{elements: axTree()}
	input := &fakeInput{clickErr: errors.New("injection blocked")}
	tier := axTierWith(reader, input)

	out := tier.Attempt(context.Background(), axRequest(model.ActionClick, "Search", ""))
	if out.Status != StatusSuccess {
		t.Fatalf("outcome %+v", out)
	}
	if !strings.HasPrefix(out.Strategy, "ax:invoke") {
		t.Fatalf("strategy = %q", out.Strategy)
	}
	if len(reader.invokedIDs) != 1 || reader.invokedIDs[0] != 3 {
		t.Fatalf("invoked = %v", reader.invokedIDs)
	}
}

func TestAXTypeSetsTextDirectly(t *testing.T) {
	reader := &fakeReader{elements: axTree()}
	tier := axTierWith(reader, &fakeInput{})

	out := tier.Attempt(context.Background(), axRequest(model.ActionType, "searchBox", "hello"))
	if out.Status != StatusSuccess || !strings.HasPrefix(out.Strategy, "ax:set-text") {
		t.Fatalf("outcome %+v", out)
	}
	if reader.setTexts[4] != "hello" {
		t.Fatalf("setTexts = %v", reader.setTexts)
	}
}

func TestAXTypeFallsBackToKeystrokes(t *testing.T) {
	reader := &fakeReader{elements: axTree(), setTextErr: errors.New("read-only control")}
	input := &fakeInput{}
	tier := axTierWith(reader, input)

	out := tier.Attempt(context.Background(), axRequest(model.ActionType, "searchBox", "abc{ENTER}"))
	if out.Status != StatusSuccess || !strings.HasPrefix(out.Strategy, "ax:type-keys") {
		t.Fatalf("outcome %+v", out)
	}
	if len(input.typed) != 1 || input.typed[0] != "abc" {
		t.Fatalf("typed = %v", input.typed)
	}
	if len(input.taps) != 1 || input.taps[0][0] != "enter" {
		t.Fatalf("taps = %v", input.taps)
	}
}

func TestAXReadFailureIsFailed(t *testing.T) {
	reader := &fakeReader{readErr: errors.New("tree walk crashed")}
	tier := axTierWith(reader, &fakeInput{})

	if out := tier.Attempt(context.Background(), axRequest(model.ActionClick, "x", "")); out.Status != StatusFailed {
		t.Fatalf("status = %v, want failed", out.Status)
	}
}
