// Package token turns raw text into the normalized word sequence that feeds
// shingle construction.
package token

import (
	"strings"
	"unicode/utf8"

	"github.com/baditaflorin/go_shingle_similarity/internal/ports"
)

// Tokenizer produces an ordered sequence of normalized tokens from raw text.
// Normalization lowercases the text and strips punctuation; splitting happens
// on whitespace runs, discarding empties. No stop-word removal, no stemming.
type Tokenizer struct {
	normalizer ports.Normalizer
}

// NewTokenizer creates a tokenizer backed by the given normalizer.
func NewTokenizer(normalizer ports.Normalizer) *Tokenizer {
	return &Tokenizer{normalizer: normalizer}
}

// Tokenize converts raw text into its token sequence. Malformed byte
// sequences are repaired by substitution so that a source with undecodable
// bytes still yields a best-effort token sequence instead of aborting.
func (t *Tokenizer) Tokenize(text string) []string {
	text = Repair(text)
	return strings.Fields(t.normalizer.Normalize(text))
}

// Repair replaces invalid UTF-8 sequences with the Unicode replacement
// character. Valid input is returned unchanged without allocation.
func Repair(text string) string {
	if utf8.ValidString(text) {
		return text
	}
	return strings.ToValidUTF8(text, string(utf8.RuneError))
}
