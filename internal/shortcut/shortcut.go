// Package shortcut maps anticipated (app, element) intents to keyboard
// combinations. Pure lookup, no scanning: it can only recognize known
// intents, never discover new elements.
package shortcut

import (
	"sort"
	"strings"
	"time"

	"github.com/automata-tools/deskagent/internal/fuzzy"
)

// Entry is one key combination plus the settle delay the target UI needs
// after it fires.
type Entry struct {
	Name   string
	Key    string
	Mods   []string
	Settle time.Duration
}

type tableEntry struct {
	element string
	entry   Entry
}

// appTables hold application-specific combinations, consulted before the
// generic table. Element keys match by substring containment in either
// direction on normalized names.
var appTables = map[string][]tableEntry{
	"discord": {
		{"search", Entry{Name: "discord-search", Key: "k", Mods: []string{"ctrl"}, Settle: 400 * time.Millisecond}},
		{"message", Entry{Name: "discord-message", Key: "tab", Settle: 200 * time.Millisecond}},
	},
	"slack": {
		{"search", Entry{Name: "slack-search", Key: "k", Mods: []string{"ctrl"}, Settle: 400 * time.Millisecond}},
	},
	"chrome": {
		{"address", Entry{Name: "chrome-address", Key: "l", Mods: []string{"ctrl"}, Settle: 200 * time.Millisecond}},
		{"url", Entry{Name: "chrome-address", Key: "l", Mods: []string{"ctrl"}, Settle: 200 * time.Millisecond}},
		{"new tab", Entry{Name: "chrome-new-tab", Key: "t", Mods: []string{"ctrl"}, Settle: 300 * time.Millisecond}},
		{"refresh", Entry{Name: "chrome-refresh", Key: "f5", Settle: 500 * time.Millisecond}},
	},
	"spotify": {
		{"search", Entry{Name: "spotify-search", Key: "l", Mods: []string{"ctrl"}, Settle: 400 * time.Millisecond}},
	},
	"vscode": {
		{"search", Entry{Name: "vscode-search", Key: "f", Mods: []string{"ctrl", "shift"}, Settle: 300 * time.Millisecond}},
		{"command", Entry{Name: "vscode-palette", Key: "p", Mods: []string{"ctrl", "shift"}, Settle: 300 * time.Millisecond}},
	},
}

// genericTable covers intents common to nearly every application.
var genericTable = []tableEntry{
	{"search", Entry{Name: "generic-search", Key: "f", Mods: []string{"ctrl"}, Settle: 300 * time.Millisecond}},
	{"find", Entry{Name: "generic-find", Key: "f", Mods: []string{"ctrl"}, Settle: 300 * time.Millisecond}},
	{"save", Entry{Name: "generic-save", Key: "s", Mods: []string{"ctrl"}, Settle: 300 * time.Millisecond}},
	{"undo", Entry{Name: "generic-undo", Key: "z", Mods: []string{"ctrl"}, Settle: 200 * time.Millisecond}},
	{"redo", Entry{Name: "generic-redo", Key: "y", Mods: []string{"ctrl"}, Settle: 200 * time.Millisecond}},
	{"copy", Entry{Name: "generic-copy", Key: "c", Mods: []string{"ctrl"}, Settle: 100 * time.Millisecond}},
	{"paste", Entry{Name: "generic-paste", Key: "v", Mods: []string{"ctrl"}, Settle: 100 * time.Millisecond}},
	{"cut", Entry{Name: "generic-cut", Key: "x", Mods: []string{"ctrl"}, Settle: 100 * time.Millisecond}},
}

// Lookup resolves (appName, elementName) to a shortcut entry. The
// application-specific table wins over the generic one.
func Lookup(appName, elementName string) (Entry, bool) {
	normEl := fuzzy.Normalize(elementName)
	if normEl == "" {
		return Entry{}, false
	}

	normApp := fuzzy.Normalize(appName)
	if normApp != "" {
		apps := make([]string, 0, len(appTables))
		for app := range appTables {
			apps = append(apps, app)
		}
		sort.Strings(apps)
		for _, app := range apps {
			if !strings.Contains(normApp, app) && !strings.Contains(app, normApp) {
				continue
			}
			if e, ok := match(appTables[app], normEl); ok {
				return e, true
			}
		}
	}

	return match(genericTable, normEl)
}

func match(entries []tableEntry, normEl string) (Entry, bool) {
	for _, te := range entries {
		key := fuzzy.Normalize(te.element)
		if strings.Contains(normEl, key) || strings.Contains(key, normEl) {
			return te.entry, true
		}
	}
	return Entry{}, false
}
