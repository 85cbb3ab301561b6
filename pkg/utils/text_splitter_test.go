package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitTextShortInputIsSingleChunk(t *testing.T) {
	chunks := SplitText("short text", 100, 10)
	require.Len(t, chunks, 1)
	assert.Equal(t, "short text", chunks[0])
}

func TestSplitTextCoversWholeInput(t *testing.T) {
	text := strings.Repeat("abcdefghij", 50)
	chunks := SplitText(text, 120, 20)

	require.Greater(t, len(chunks), 1)
	for _, c := range chunks {
		assert.LessOrEqual(t, len(c), 120)
	}
	assert.True(t, strings.HasSuffix(text, chunks[len(chunks)-1]), "last chunk must end where the input ends")
}

func TestSplitTextPrefersNewlineBoundary(t *testing.T) {
	line := strings.Repeat("x", 95) + "\n"
	text := line + line + line
	chunks := SplitText(text, 100, 0)

	require.Greater(t, len(chunks), 1)
	assert.True(t, strings.HasSuffix(chunks[0], "\n"), "chunk should break at the newline near its end")
}

func TestSplitTextOverlapAtLeastChunkSizeStillTerminates(t *testing.T) {
	text := strings.Repeat("y", 300)
	chunks := SplitText(text, 100, 100)
	assert.NotEmpty(t, chunks)
}
