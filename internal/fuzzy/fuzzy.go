// Package fuzzy scores free-text identifiers against candidate names.
// UI labels are usually truncated or decorated versions of the name a human
// supplies, so prefix and containment matches rank above raw character
// overlap.
package fuzzy

import "strings"

// Normalize lowercases s and strips spaces, hyphens, and underscores.
func Normalize(s string) string {
	s = strings.ToLower(s)
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '_':
			return -1
		}
		return r
	}, s)
}

// Score rates how well candidate matches query on a 0-100 scale.
// First rule wins: exact match after normalization 100, candidate starts
// with query 85, query contained in candidate 70, candidate contained in
// query 55, otherwise character overlap scaled to 0-30.
func Score(query, candidate string) int {
	q := Normalize(query)
	c := Normalize(candidate)
	if q == "" || c == "" {
		return 0
	}
	switch {
	case c == q:
		return 100
	case strings.HasPrefix(c, q):
		return 85
	case strings.Contains(c, q):
		return 70
	case strings.Contains(q, c):
		return 55
	}
	overlap := 0
	for _, r := range q {
		if strings.ContainsRune(c, r) {
			overlap++
		}
	}
	return overlap * 30 / len([]rune(q))
}
