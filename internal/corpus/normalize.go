package corpus

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

var caseFolder = cases.Fold()

// NormalizeToken canonicalizes a token for the secondary index:
// NFKC normalization, full/half-width folding and case folding.
// Both index building and query-time lookup go through this function.
func NormalizeToken(token string) string {
	token = norm.NFKC.String(token)
	token = width.Fold.String(token)
	return caseFolder.String(strings.TrimSpace(token))
}

// Revised Romanization tables, indexed by jamo position within the
// Hangul syllable block (U+AC00..U+D7A3).
var (
	rrInitials = []string{
		"g", "kk", "n", "d", "tt", "r", "m", "b", "pp", "s",
		"ss", "", "j", "jj", "ch", "k", "t", "p", "h",
	}
	rrMedials = []string{
		"a", "ae", "ya", "yae", "eo", "e", "yeo", "ye", "o", "wa",
		"wae", "oe", "yo", "u", "wo", "we", "wi", "yu", "eu", "ui", "i",
	}
	rrFinals = []string{
		"", "k", "k", "k", "n", "n", "n", "t", "l", "k",
		"m", "p", "l", "l", "p", "l", "m", "p", "p", "t",
		"t", "ng", "t", "t", "k", "t", "p", "t",
	}
)

const (
	hangulBase = 0xAC00
	hangulEnd  = 0xD7A3

	medialCount = 21
	finalCount  = 28
)

// RomanizeHangul transliterates Hangul syllables to Revised Romanization.
// Non-Hangul runes pass through unchanged. The exact transliteration only
// has to be self-consistent: romanized queries match because entry surface
// forms are romanized with the same function at index time.
func RomanizeHangul(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r < hangulBase || r > hangulEnd {
			b.WriteRune(r)
			continue
		}
		idx := int(r - hangulBase)
		initial := idx / (medialCount * finalCount)
		medial := (idx % (medialCount * finalCount)) / finalCount
		final := idx % finalCount
		b.WriteString(rrInitials[initial])
		b.WriteString(rrMedials[medial])
		b.WriteString(rrFinals[final])
	}
	return b.String()
}

// ContainsHangul reports whether the string has at least one Hangul rune
func ContainsHangul(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Hangul, r) {
			return true
		}
	}
	return false
}
