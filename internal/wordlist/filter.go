package wordlist

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Set is a case-insensitive collection of words to exclude.
type Set map[string]struct{}

// NewSet normalizes words the same way the tokenizer does: NFC, then lowercase.
func NewSet(words []string) Set {
	lower := cases.Lower(language.Und)
	set := make(Set, len(words))
	for _, word := range words {
		if word == "" {
			continue
		}
		set[lower.String(norm.NFC.String(word))] = struct{}{}
	}
	return set
}

// Contains reports whether token is in the set.
func (s Set) Contains(token string) bool {
	_, ok := s[token]
	return ok
}

// Without returns tokens not present in the set, preserving order and duplicates.
// A nil or empty set returns a copy of tokens.
func (s Set) Without(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if s.Contains(tok) {
			continue
		}
		out = append(out, tok)
	}
	return out
}
