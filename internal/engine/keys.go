package engine

import (
	"strings"

	"github.com/automata-tools/deskagent/internal/platform"
)

// Control tokens recognized inside type text. Bracket-enclosed names beyond
// these are passed through as raw key taps.
var tokenKeys = map[string]string{
	"ENTER":     "enter",
	"TAB":       "tab",
	"ESC":       "escape",
	"BACKSPACE": "backspace",
}

// keySegment is either literal text or one key tap.
type keySegment struct {
	text string
	key  string
}

// splitKeyTokens splits text into literal runs and {TOKEN} key taps.
// Unterminated braces are treated as literal text.
func splitKeyTokens(text string) []keySegment {
	var segs []keySegment
	for len(text) > 0 {
		open := strings.IndexByte(text, '{')
		if open < 0 {
			segs = append(segs, keySegment{text: text})
			break
		}
		closing := strings.IndexByte(text[open:], '}')
		if closing < 0 {
			segs = append(segs, keySegment{text: text})
			break
		}
		closing += open
		if open > 0 {
			segs = append(segs, keySegment{text: text[:open]})
		}
		name := text[open+1 : closing]
		key, ok := tokenKeys[strings.ToUpper(name)]
		if !ok {
			key = strings.ToLower(name)
		}
		segs = append(segs, keySegment{key: key})
		text = text[closing+1:]
	}
	return segs
}

// soleToken returns the key name when text is exactly one control token.
func soleToken(text string) (string, bool) {
	segs := splitKeyTokens(text)
	if len(segs) == 1 && segs[0].key != "" {
		return segs[0].key, true
	}
	return "", false
}

// sendKeys plays text through the synthetic keyboard, honoring control
// tokens.
func sendKeys(in platform.Inputter, text string) error {
	for _, seg := range splitKeyTokens(text) {
		if seg.key != "" {
			if err := in.KeyTap(seg.key); err != nil {
				return err
			}
			continue
		}
		if err := in.TypeText(seg.text); err != nil {
			return err
		}
	}
	return nil
}
