package fuzzy

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"What's App", "what'sapp"},
		{"new-tab", "newtab"},
		{"auto_id", "autoid"},
		{"  Mixed Case  ", "mixedcase"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestScoreRules(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		candidate string
		want      int
	}{
		{"exact after normalization", "What's App", "what's-app", 100},
		{"whatsapp window", "WhatsApp", "WhatsApp", 100},
		{"prefix", "Search", "Search the web", 85},
		{"query inside candidate", "tab", "New Tab Button", 70},
		{"candidate inside query", "search everywhere now", "everywhere", 55},
		{"disjoint", "xyz", "qqq", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Score(tt.query, tt.candidate); got != tt.want {
				t.Errorf("Score(%q, %q) = %d, want %d", tt.query, tt.candidate, got, tt.want)
			}
		})
	}
}

// "Srch" is not a substring of "Search" ("srch" vs "search"), so the overlap
// rule applies: all 4 query characters appear in the candidate.
func TestScoreSrchBoundary(t *testing.T) {
	got := Score("Srch", "Search")
	want := 4 * 30 / 4
	if got != want {
		t.Fatalf("Score(Srch, Search) = %d, want %d (overlap rule)", got, want)
	}
}

func TestScoreSelfIsAlways100(t *testing.T) {
	for _, s := range []string{"a", "Discord", "some long-label_here", "検索"} {
		if got := Score(s, s); got != 100 {
			t.Errorf("Score(%q, %q) = %d, want 100", s, s, got)
		}
	}
}

func TestScoreDeterministic(t *testing.T) {
	a := Score("address bar", "Address and search bar")
	for i := 0; i < 10; i++ {
		if b := Score("address bar", "Address and search bar"); b != a {
			t.Fatalf("score not deterministic: %d then %d", a, b)
		}
	}
}

func TestScoreOverlapRange(t *testing.T) {
	// Overlap scores are capped below every containment rule.
	if got := Score("abcdef", "fedcba"); got > 30 {
		t.Fatalf("overlap score %d exceeds 30", got)
	}
}
