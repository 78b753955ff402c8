package splitter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RejectsInvalidWindow(t *testing.T) {
	_, err := New(0, 0)
	assert.Error(t, err)

	_, err = New(100, 100)
	assert.Error(t, err)

	_, err = New(100, -1)
	assert.Error(t, err)

	_, err = New(100, 99)
	assert.NoError(t, err)
}

func TestSplit_ContentUnderChunkSizeYieldsSingleChunk(t *testing.T) {
	s, err := New(1000, 200)
	require.NoError(t, err)

	chunks := s.Split("main.py", "print('hello')")
	require.Len(t, chunks, 1)
	assert.Equal(t, "print('hello')", chunks[0].Content)
	assert.Equal(t, 0, chunks[0].Index)
	assert.Equal(t, 0, chunks[0].Overlap)
	assert.Equal(t, "main.py", chunks[0].FilePath)
}

func TestSplit_WindowAdvancesWithOverlap(t *testing.T) {
	s, err := New(1000, 200)
	require.NoError(t, err)

	content := strings.Repeat("a", 2500)
	chunks := s.Split("big.go", content)

	require.Len(t, chunks, 3)
	assert.Equal(t, 1000, len([]rune(chunks[0].Content)))
	assert.Equal(t, 1000, len([]rune(chunks[1].Content)))
	assert.Equal(t, 900, len([]rune(chunks[2].Content)))
	assert.Equal(t, 0, chunks[0].Overlap)
	assert.Equal(t, 200, chunks[1].Overlap)
	assert.Equal(t, 200, chunks[2].Overlap)
}

func TestSplit_OverlapRemovalReconstructsContent(t *testing.T) {
	s, err := New(100, 20)
	require.NoError(t, err)

	content := "line one\nline two\nline three\n" + strings.Repeat("x", 180) + "\ntail content here"
	chunks := s.Split("file.txt", content)
	require.Greater(t, len(chunks), 1)

	var b strings.Builder
	for _, c := range chunks {
		runes := []rune(c.Content)
		b.WriteString(string(runes[c.Overlap:]))
	}
	assert.Equal(t, content, b.String())
}

func TestSplit_PrefersNewlineBoundary(t *testing.T) {
	s, err := New(100, 20)
	require.NoError(t, err)

	// A newline sits a few runes before the 100-rune target boundary.
	content := strings.Repeat("a", 95) + "\n" + strings.Repeat("b", 100)
	chunks := s.Split("file.txt", content)

	require.Greater(t, len(chunks), 1)
	assert.True(t, strings.HasSuffix(chunks[0].Content, "\n"),
		"first chunk should break just after the newline, got %q", chunks[0].Content)
	assert.Equal(t, 96, len([]rune(chunks[0].Content)))
}

func TestSplit_InvalidUTF8IsReplaced(t *testing.T) {
	s, err := New(1000, 200)
	require.NoError(t, err)

	chunks := s.Split("bin.dat", "ok\xff\xfestill ok")
	require.Len(t, chunks, 1)
	assert.NotContains(t, chunks[0].Content, "\xff")
	assert.Contains(t, chunks[0].Content, "�")
	assert.Contains(t, chunks[0].Content, "still ok")
}

func TestChunks_LazySequenceStopsEarly(t *testing.T) {
	s, err := New(100, 20)
	require.NoError(t, err)

	content := strings.Repeat("z", 1000)
	seen := 0
	for range s.Chunks("file.txt", content) {
		seen++
		if seen == 2 {
			break
		}
	}
	assert.Equal(t, 2, seen)
}

func TestSplit_EmptyContentYieldsOneEmptyChunk(t *testing.T) {
	s, err := New(1000, 200)
	require.NoError(t, err)

	chunks := s.Split("empty.txt", "")
	require.Len(t, chunks, 1)
	assert.Equal(t, "", chunks[0].Content)
}
