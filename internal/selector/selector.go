// Package selector turns an element name and an application identity into an
// ordered list of structured-document query candidates. App-specific
// knowledge ranks first, generic role heuristics next, and a free-text
// search always terminates the list, so known applications get pixel-exact
// targeting while unknown ones still get a reasonable attempt.
package selector

import (
	"fmt"
	"sort"
	"strings"

	"github.com/automata-tools/deskagent/internal/fuzzy"
)

// selectorEntry maps one normalized element-name fragment to its curated
// queries. An entry matches when the requested name contains the key or the
// key contains the name. Entries are ordered; candidate order is part of the
// contract.
type selectorEntry struct {
	key     string
	queries []string
}

var appSelectors = map[string][]selectorEntry{
	"discord": {
		{"search", []string{`[aria-label="Search"]`, `div[class*="searchBar"]`}},
		{"message", []string{`div[role="textbox"]`, `div[class*="slateTextArea"]`}},
		{"channel", []string{`a[role="link"][class*="link"]`}},
	},
	"slack": {
		{"search", []string{`button[data-qa="top_nav_search"]`, `[aria-label="Search"]`}},
		{"message", []string{`div[data-qa="message_input"] .ql-editor`, `div[role="textbox"]`}},
	},
	"whatsapp": {
		{"search", []string{`div[contenteditable="true"][data-tab="3"]`, `[aria-label*="Search"]`}},
		{"message", []string{`div[contenteditable="true"][data-tab="10"]`, `footer div[role="textbox"]`}},
	},
	"spotify": {
		{"search", []string{`input[data-testid="search-input"]`, `[role="searchbox"]`}},
		{"play", []string{`button[data-testid="play-button"]`, `[aria-label="Play"]`}},
	},
	"vscode": {
		{"search", []string{`.search-view .monaco-inputbox textarea`}},
		{"terminal", []string{`.terminal-wrapper textarea`}},
	},
	"notion": {
		{"search", []string{`[aria-label="Search"]`}},
	},
}

// Role keyword sets for the generic-heuristic layer.
var (
	inputKeywords  = []string{"search", "find", "query", "input", "type", "message", "compose"}
	buttonKeywords = []string{"button", "submit", "send", "save", "ok", "cancel", "close", "play", "pause"}
	navKeywords    = []string{"tab", "link", "nav", "menu", "home", "back"}
)

// Synthesize returns the query candidates for elementName within appName,
// most specific first. The result is never empty and never contains
// duplicates; its final entry is always the free-text fallback.
func Synthesize(elementName, appName string) []string {
	var queries []string

	queries = append(queries, appLayer(elementName, appName)...)
	queries = append(queries, heuristicLayer(elementName)...)
	queries = append(queries, textQuery(elementName))

	return dedupe(queries)
}

// TextQueryPrefix marks a candidate that targets visible text rather than a
// CSS selector; the document tier routes these through its text search.
const TextQueryPrefix = "text="

// textQuery builds the free-text fallback candidate.
func textQuery(elementName string) string {
	return TextQueryPrefix + elementName
}

// IsTextQuery reports whether q is a free-text candidate, returning the text.
func IsTextQuery(q string) (string, bool) {
	if strings.HasPrefix(q, TextQueryPrefix) {
		return strings.TrimPrefix(q, TextQueryPrefix), true
	}
	return "", false
}

func appLayer(elementName, appName string) []string {
	normApp := fuzzy.Normalize(appName)
	normEl := fuzzy.Normalize(elementName)

	var table []selectorEntry
	apps := make([]string, 0, len(appSelectors))
	for app := range appSelectors {
		apps = append(apps, app)
	}
	sort.Strings(apps)
	for _, app := range apps {
		if strings.Contains(normApp, app) || strings.Contains(app, normApp) {
			table = appSelectors[app]
			break
		}
	}

	var queries []string
	for _, entry := range table {
		if strings.Contains(normEl, entry.key) || strings.Contains(entry.key, normEl) {
			queries = append(queries, entry.queries...)
		}
	}
	return queries
}

func heuristicLayer(elementName string) []string {
	norm := fuzzy.Normalize(elementName)
	var queries []string

	if containsAny(norm, inputKeywords) {
		queries = append(queries,
			fmt.Sprintf(`input[placeholder*="%s" i]`, elementName),
			fmt.Sprintf(`[aria-label*="%s" i]`, elementName),
			`input[type="search"]`,
			`input[type="text"]`,
			`[role="searchbox"]`,
			`[role="textbox"]`,
			`textarea`,
		)
	}
	if containsAny(norm, buttonKeywords) {
		queries = append(queries,
			fmt.Sprintf(`button[aria-label*="%s" i]`, elementName),
			fmt.Sprintf(`[role="button"][aria-label*="%s" i]`, elementName),
			`button[type="submit"]`,
		)
	}
	if containsAny(norm, navKeywords) {
		queries = append(queries,
			fmt.Sprintf(`a[aria-label*="%s" i]`, elementName),
			fmt.Sprintf(`[role="tab"][aria-label*="%s" i]`, elementName),
			`[role="link"]`,
			`[role="tab"]`,
		)
	}
	return queries
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

// dedupe removes duplicate queries, preserving first occurrence.
func dedupe(queries []string) []string {
	seen := make(map[string]bool, len(queries))
	out := queries[:0]
	for _, q := range queries {
		if !seen[q] {
			seen[q] = true
			out = append(out, q)
		}
	}
	return out
}
