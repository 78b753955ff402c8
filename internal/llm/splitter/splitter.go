// Package splitter slides a fixed-size window over file content to produce
// overlapping chunks suitable for independent model analysis.
package splitter

import (
	"fmt"
	"iter"
	"strings"

	"readmegen/internal/models"
)

// invalidByteMarker replaces byte sequences that do not decode as UTF-8, so
// chunking never fails on arbitrary file content.
const invalidByteMarker = "�"

// maxBoundaryLookback caps how far back from the target boundary the splitter
// searches for a newline to break at.
const maxBoundaryLookback = 64

// Splitter produces overlapping content windows of at most ChunkSize runes,
// with ChunkOverlap runes shared between consecutive chunks.
type Splitter struct {
	chunkSize    int
	chunkOverlap int
	lookback     int
}

// New validates the window parameters. The overlap must be strictly smaller
// than the chunk size or the window could never advance.
func New(chunkSize, chunkOverlap int) (*Splitter, error) {
	if chunkSize <= 0 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", chunkSize)
	}
	if chunkOverlap < 0 || chunkOverlap >= chunkSize {
		return nil, fmt.Errorf("chunk overlap %d must be in [0, %d)", chunkOverlap, chunkSize)
	}
	lookback := (chunkSize - chunkOverlap) / 2
	if lookback > maxBoundaryLookback {
		lookback = maxBoundaryLookback
	}
	return &Splitter{chunkSize: chunkSize, chunkOverlap: chunkOverlap, lookback: lookback}, nil
}

// Chunks returns a lazy, restartable sequence of chunks for one file's
// content. Content at or under the chunk size yields exactly one chunk.
// Every chunk after the first starts exactly ChunkOverlap runes before the
// previous chunk's end, so concatenating the chunks with overlaps removed
// reconstructs the content exactly, regardless of newline boundary
// adjustment.
func (s *Splitter) Chunks(filePath, content string) iter.Seq[models.ContentChunk] {
	runes := []rune(strings.ToValidUTF8(content, invalidByteMarker))
	return func(yield func(models.ContentChunk) bool) {
		start, index := 0, 0
		for {
			end := start + s.chunkSize
			if end >= len(runes) {
				end = len(runes)
			} else if s.lookback > 0 {
				// Prefer breaking just after a newline near the target
				// boundary to avoid splitting mid-statement.
				for i := end - 1; i >= end-s.lookback; i-- {
					if runes[i] == '\n' {
						end = i + 1
						break
					}
				}
			}
			overlap := 0
			if index > 0 {
				overlap = s.chunkOverlap
			}
			ok := yield(models.ContentChunk{
				FilePath: filePath,
				Index:    index,
				Content:  string(runes[start:end]),
				Overlap:  overlap,
			})
			if !ok || end >= len(runes) {
				return
			}
			start = end - s.chunkOverlap
			index++
		}
	}
}

// Split collects the full chunk sequence eagerly.
func (s *Splitter) Split(filePath, content string) []models.ContentChunk {
	var out []models.ContentChunk
	for c := range s.Chunks(filePath, content) {
		out = append(out, c)
	}
	return out
}
