// Package moderation flags message text that contains disallowed terms.
package moderation

import (
	"strings"
	"unicode"
)

// DefaultTerms is the built-in disallowed-term list.
var DefaultTerms = []string{"some_bad_word_examples", "yikes"}

// Filter decides whether message text contains a disallowed term.
//
// Matching is deliberately low-precision: the text is lowercased and
// stripped of punctuation, then each term is tested for plain substring
// containment. There is no word-boundary check, so "yikesterday"
// matches the term "yikes". False positives are acceptable for a
// moderation nudge; masking a term with punctuation is not.
type Filter struct {
	terms []string
}

// New creates a Filter for the given terms. With no terms it uses
// DefaultTerms.
func New(terms ...string) *Filter {
	if len(terms) == 0 {
		terms = DefaultTerms
	}
	return &Filter{terms: terms}
}

// Match reports whether text contains any disallowed term after
// normalization. Pure function, safe for concurrent use.
func (f *Filter) Match(text string) bool {
	normalized := normalize(text)
	for _, term := range f.terms {
		if strings.Contains(normalized, term) {
			return true
		}
	}
	return false
}

// normalize lowercases text and strips punctuation and symbol runes so
// a term can't be masked as "y.i.k.e.s".
func normalize(text string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPunct(r) || unicode.IsSymbol(r) {
			return -1
		}
		return r
	}, strings.ToLower(text))
}
