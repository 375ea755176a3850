package indexer

import (
	"errors"
	"fmt"
)

const (
	DefaultChunkSize    = 1000
	DefaultChunkOverlap = 200
)

// ErrInvalidWindow is returned for a chunk size or overlap that cannot produce progress.
var ErrInvalidWindow = errors.New("invalid chunk window")

// Chunker splits text into overlapping rune windows.
type Chunker struct {
	size    int
	overlap int
}

// NewChunker creates a chunker producing windows of size runes that share
// overlap runes with their predecessor. overlap must be smaller than size.
func NewChunker(size, overlap int) (*Chunker, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: size must be positive, got %d", ErrInvalidWindow, size)
	}
	if overlap < 0 || overlap >= size {
		return nil, fmt.Errorf("%w: overlap must be in [0, %d), got %d", ErrInvalidWindow, size, overlap)
	}
	return &Chunker{size: size, overlap: overlap}, nil
}

// Size returns the window size in runes.
func (c *Chunker) Size() int { return c.size }

// Overlap returns the number of runes shared by adjacent windows.
func (c *Chunker) Overlap() int { return c.overlap }

// Split returns the windows of text in source order. Window i starts at
// i*(size-overlap) runes; the last window ends at the end of text.
// Chunks are not trimmed, so dropping the first overlap runes of every
// chunk after the first and concatenating reconstructs text.
func (c *Chunker) Split(text string) []string {
	runes := []rune(text)
	if len(runes) == 0 {
		return nil
	}

	step := c.size - c.overlap
	var chunks []string
	for start := 0; ; start += step {
		end := min(start+c.size, len(runes))
		chunks = append(chunks, string(runes[start:end]))
		if end == len(runes) {
			break
		}
	}
	return chunks
}
