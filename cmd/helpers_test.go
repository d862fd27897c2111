package cmd

import (
	"strings"
	"testing"

	"github.com/automata-tools/deskagent/internal/model"
)

func TestSummarizeCapsEntriesAndFields(t *testing.T) {
	longTitle := strings.Repeat("x", 200)
	var flat []model.Element
	for i := 0; i < 120; i++ {
		flat = append(flat, model.Element{ID: i, Role: "Button", Title: longTitle, AutoID: "btn"})
	}

	out := summarize(flat)
	if len(out) != maxListEntries {
		t.Fatalf("entries: got %d, want %d", len(out), maxListEntries)
	}
	for _, s := range out {
		if len(s.Title) != maxFieldChars {
			t.Fatalf("title length: got %d, want %d", len(s.Title), maxFieldChars)
		}
	}
}

func TestTruncateKeepsShortStringsAndRunes(t *testing.T) {
	if got := truncate("Search", 60); got != "Search" {
		t.Errorf("short string altered: %q", got)
	}
	// Multi-byte text must be cut on rune boundaries.
	got := truncate(strings.Repeat("ü", 100), 60)
	if len([]rune(got)) != 60 {
		t.Errorf("rune length: got %d, want 60", len([]rune(got)))
	}
}

func TestPastTense(t *testing.T) {
	if pastTense(model.ActionClick) != "clicked" {
		t.Errorf("click: %q", pastTense(model.ActionClick))
	}
	if pastTense(model.ActionType) != "typed into" {
		t.Errorf("type: %q", pastTense(model.ActionType))
	}
}

func TestParamHelpers(t *testing.T) {
	params := map[string]interface{}{
		"app":     "discord",
		"timeout": float64(5),
		"exact":   true,
	}
	if StringParam(params, "app", "") != "discord" {
		t.Error("string param")
	}
	if StringParam(params, "missing", "fallback") != "fallback" {
		t.Error("string default")
	}
	if IntParam(params, "timeout", 0) != 5 {
		t.Error("int param from float64")
	}
	if IntParam(params, "missing", 7) != 7 {
		t.Error("int default")
	}
	if !BoolParam(params, "exact", false) {
		t.Error("bool param")
	}
	if BoolParam(params, "missing", true) != true {
		t.Error("bool default")
	}
}
