package tally

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/wordspider/wordspider/internal/model"
)

// MinWordLength is the minimum token length, in runes, for a token to
// be counted. Shorter tokens are articles, particles, and markup noise
// that drown out meaningful words.
const MinWordLength = 3

// Count tokenizes text into a frequency map. The text is lower-cased,
// split on runs of non-alphanumeric characters, and every remaining
// token of at least MinWordLength runes is counted. Empty input yields
// an empty, non-nil map.
func Count(text string) model.FrequencyMap {
	freq := model.FrequencyMap{}
	if text == "" {
		return freq
	}

	// A fresh caser per call: cases.Caser carries internal state and
	// must not be shared across goroutines. cases.Lower handles
	// characters that strings.ToLower folds incorrectly outside ASCII.
	lower := cases.Lower(language.Und)

	tokens := strings.FieldsFunc(lower.String(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	for _, token := range tokens {
		if utf8.RuneCountInString(token) < MinWordLength {
			continue
		}
		freq.Add(token)
	}
	return freq
}
