package extract

import (
	"strings"
	"unicode"
)

// CleanText strips control characters and collapses runs of whitespace into
// single spaces (newlines included). Every pipeline result passes through
// here before the acceptance check.
func CleanText(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	lastWasSpace := true // also trims leading whitespace
	for _, r := range text {
		if unicode.IsControl(r) && !unicode.IsSpace(r) {
			continue
		}
		if unicode.IsSpace(r) {
			if !lastWasSpace {
				b.WriteByte(' ')
				lastWasSpace = true
			}
			continue
		}
		b.WriteRune(r)
		lastWasSpace = false
	}

	return strings.TrimRight(b.String(), " ")
}

// EstimateTokens approximates the token count of cleaned text. Four
// characters per token tracks the common embedding tokenizers closely
// enough for usage accounting.
func EstimateTokens(text string) int {
	if text == "" {
		return 0
	}
	return (len(text) + 3) / 4
}
