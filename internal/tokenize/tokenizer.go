// Package tokenize turns participant messages into normalized word tokens and caches the result.
package tokenize

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"
	"unicode"

	"github.com/clipperhouse/uax29/v2/words"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"github.com/verte-zerg/bibaboba/internal/punkt"
)

// PolicyVersion identifies the normalization rules. Bump it whenever Tokenize output can
// change for the same input so cached sequences are recomputed.
const PolicyVersion = "uax29-nfc-lower-v2"

// DefaultLanguage is the punkt table used when none is configured.
const DefaultLanguage = "english"

// Tokenizer splits messages on Unicode word boundaries and lowercases the words.
type Tokenizer struct {
	language string
	abbrevs  map[string]struct{}
	policy   string
}

// New returns a Tokenizer using the given abbreviation table. A nil table disables
// abbreviation merging.
func New(lang string, abbrevs map[string]struct{}) *Tokenizer {
	lang = normalizeLanguage(lang)
	return &Tokenizer{
		language: lang,
		abbrevs:  abbrevs,
		policy:   BasePolicy(lang) + ":" + tableFingerprint(abbrevs),
	}
}

// NewFromArchive loads the abbreviation table for lang from a punkt archive.
func NewFromArchive(archivePath, lang string) (*Tokenizer, error) {
	lang = normalizeLanguage(lang)
	abbrevs, err := punkt.LoadAbbreviations(archivePath, lang)
	if err != nil {
		return nil, err
	}
	return New(lang, abbrevs), nil
}

// BasePolicy is the policy of lang without an abbreviation table fingerprint.
func BasePolicy(lang string) string {
	return PolicyVersion + ":" + normalizeLanguage(lang)
}

// Policy returns the cache policy identifier. It extends BasePolicy with a fingerprint of
// the abbreviation table.
func (t *Tokenizer) Policy() string {
	return t.policy
}

// Segment implements Segmenter.
func (t *Tokenizer) Segment(messages []string) ([]string, error) {
	return t.Tokenize(messages), nil
}

// Tokenize returns the words of messages in order. Punctuation, whitespace and symbols are
// dropped. A known abbreviation keeps its trailing dot unless it is the last word of the
// message, where the dot ends the sentence.
func (t *Tokenizer) Tokenize(messages []string) []string {
	out := make([]string, 0)
	lower := cases.Lower(language.Und)
	for _, msg := range messages {
		if msg == "" {
			continue
		}
		segs := segments(norm.NFC.String(msg))
		lastWord := -1
		for i, seg := range segs {
			if isWord(seg) {
				lastWord = i
			}
		}
		for i := 0; i < len(segs); i++ {
			seg := segs[i]
			if !isWord(seg) {
				continue
			}
			word := lower.String(seg)
			if i < lastWord && segs[i+1] == "." && t.isAbbrev(word) {
				word += "."
				i++
			}
			out = append(out, word)
		}
	}
	return out
}

func (t *Tokenizer) isAbbrev(word string) bool {
	if len(t.abbrevs) == 0 {
		return false
	}
	_, ok := t.abbrevs[word]
	return ok
}

func normalizeLanguage(lang string) string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if lang == "" {
		return DefaultLanguage
	}
	return lang
}

// tableFingerprint hashes the sorted abbreviation set. An empty table hashes to "none".
func tableFingerprint(abbrevs map[string]struct{}) string {
	if len(abbrevs) == 0 {
		return "none"
	}
	keys := make([]string, 0, len(abbrevs))
	for k := range abbrevs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	sum := sha256.Sum256([]byte(strings.Join(keys, "\n")))
	return hex.EncodeToString(sum[:4])
}

func segments(text string) []string {
	var segs []string
	iter := words.FromString(text)
	for iter.Next() {
		segs = append(segs, iter.Value())
	}
	return segs
}

func isWord(seg string) bool {
	for _, r := range seg {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
