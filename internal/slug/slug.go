// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package slug derives URL slugs from German and English titles.
package slug

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MaxLen caps a base slug, in bytes. Slugs are ASCII after folding.
const MaxLen = 80

// Fallback is used when a title has no letters or digits.
const Fallback = "guide"

var germanFolds = strings.NewReplacer(
	"ä", "ae", "ö", "oe", "ü", "ue", "ß", "ss",
	"Ä", "Ae", "Ö", "Oe", "Ü", "Ue", "ẞ", "SS",
)

// Make returns the slug for title: German umlauts spelled out, other
// diacritics removed, lowercase ASCII letters and digits joined by '-'.
func Make(title string) string {
	folded := germanFolds.Replace(title)
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if s, _, err := transform.String(t, folded); err == nil {
		folded = s
	}

	var b strings.Builder
	pendingDash := false
	for _, r := range strings.ToLower(folded) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
			continue
		}
		pendingDash = true
	}

	s := b.String()
	if len(s) > MaxLen {
		s = strings.TrimRight(s[:MaxLen], "-")
	}
	if s == "" {
		return Fallback
	}
	return s
}

// WithSuffix appends a collision counter: WithSuffix("ki", 2) is "ki-2".
func WithSuffix(base string, n int) string {
	return base + "-" + strconv.Itoa(n)
}
