package engine

import (
	"reflect"
	"testing"
)

func TestSplitKeyTokens(t *testing.T) {
	tests := []struct {
		in   string
		want []keySegment
	}{
		{"hello", []keySegment{{text: "hello"}}},
		{"{ENTER}", []keySegment{{key: "enter"}}},
		{"hi{TAB}there", []keySegment{{text: "hi"}, {key: "tab"}, {text: "there"}}},
		{"{ESC}", []keySegment{{key: "escape"}}},
		{"{BACKSPACE}{BACKSPACE}", []keySegment{{key: "backspace"}, {key: "backspace"}}},
		{"{F5}", []keySegment{{key: "f5"}}},
		{"broken{brace", []keySegment{{text: "broken{brace"}}},
		{"", nil},
	}
	for _, tt := range tests {
		if got := splitKeyTokens(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("splitKeyTokens(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestSoleToken(t *testing.T) {
	if key, ok := soleToken("{ENTER}"); !ok || key != "enter" {
		t.Fatalf("soleToken({ENTER}) = %q, %v", key, ok)
	}
	if _, ok := soleToken("press {ENTER}"); ok {
		t.Fatal("mixed text must not be a sole token")
	}
	if _, ok := soleToken("hello"); ok {
		t.Fatal("plain text must not be a sole token")
	}
}

func TestSendKeysInterleavesTextAndTaps(t *testing.T) {
	in := &fakeInput{}
	if err := sendKeys(in, "user{TAB}pass{ENTER}"); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(in.typed, []string{"user", "pass"}) {
		t.Fatalf("typed = %v", in.typed)
	}
	if len(in.taps) != 2 || in.taps[0][0] != "tab" || in.taps[1][0] != "enter" {
		t.Fatalf("taps = %v", in.taps)
	}
}
