package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitTextShortInput(t *testing.T) {
	chunks := SplitText("short resume", 1500, 200)
	assert.Equal(t, []string{"short resume"}, chunks)
}

func TestSplitTextOverlap(t *testing.T) {
	text := strings.Repeat("abcdefghij", 40) // 400 chars
	chunks := SplitText(text, 100, 20)

	assert.Greater(t, len(chunks), 1)
	for i := 1; i < len(chunks); i++ {
		prev := chunks[i-1]
		// The tail of each chunk reappears at the head of the next one.
		assert.True(t, strings.HasPrefix(chunks[i], prev[len(prev)-20:]))
	}
}

func TestSplitTextCoversWholeInput(t *testing.T) {
	text := strings.Repeat("x", 3205)
	chunks := SplitText(text, 1500, 200)

	last := chunks[len(chunks)-1]
	assert.True(t, strings.HasSuffix(text, last))

	var rebuilt strings.Builder
	step := 1500 - 200
	for i, chunk := range chunks {
		if i == len(chunks)-1 {
			rebuilt.WriteString(chunk[len(chunk)-(len(text)-i*step):])
			continue
		}
		rebuilt.WriteString(chunk[:step])
	}
	assert.Equal(t, len(text), rebuilt.Len())
}

func TestSplitTextOverlapLargerThanChunk(t *testing.T) {
	chunks := SplitText(strings.Repeat("y", 50), 10, 15)
	assert.Equal(t, 5, len(chunks), "overlap >= chunk size degrades to plain slicing")
}
