package textutil

import (
	"regexp"
	"strings"

	"github.com/reiver/go-porterstemmer"
)

// tokenSplitPattern matches non-alphanumeric character sequences for tokenization.
var tokenSplitPattern = regexp.MustCompile(`[^\p{L}\p{N}]+`)

// Tokenize splits text into lowercase alphanumeric tokens.
func Tokenize(text string) []string {
	raw := tokenSplitPattern.Split(strings.ToLower(text), -1)
	terms := make([]string, 0, len(raw))
	for _, token := range raw {
		if token == "" {
			continue
		}
		terms = append(terms, token)
	}
	return terms
}

// StemTokens tokenizes text and reduces every token to its Porter stem.
func StemTokens(text string) []string {
	tokens := Tokenize(text)
	for i, token := range tokens {
		tokens[i] = porterstemmer.StemString(token)
	}
	return tokens
}

// StemFrequency counts how often phrase occurs in text after both are
// stemmed. Multi-word phrases must match as a contiguous token run.
func StemFrequency(text, phrase string) int {
	needle := StemTokens(phrase)
	if len(needle) == 0 {
		return 0
	}
	return countRuns(StemTokens(text), needle)
}

// StemIndex holds the stemmed tokens of one document so repeated phrase
// lookups do not re-tokenize it.
type StemIndex struct {
	tokens []string
}

// NewStemIndex stems text once for repeated Frequency calls.
func NewStemIndex(text string) *StemIndex {
	return &StemIndex{tokens: StemTokens(text)}
}

// Frequency counts stemmed occurrences of phrase in the indexed text.
func (s *StemIndex) Frequency(phrase string) int {
	if s == nil {
		return 0
	}
	needle := StemTokens(phrase)
	if len(needle) == 0 {
		return 0
	}
	return countRuns(s.tokens, needle)
}

func countRuns(haystack, needle []string) int {
	count := 0
	for i := 0; i+len(needle) <= len(haystack); i++ {
		match := true
		for j, token := range needle {
			if haystack[i+j] != token {
				match = false
				break
			}
		}
		if match {
			count++
		}
	}
	return count
}
