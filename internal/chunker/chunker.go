package chunker

import (
	"regexp"
	"strings"

	"docqa/internal/domain"
)

// DefaultChunkSize is the default number of characters per chunk.
const DefaultChunkSize = 1000

// DefaultOverlap is the default number of overlapping characters.
const DefaultOverlap = 200

// boundaryLookback is how far back from a cut point to search for the end of
// a sentence.
const boundaryLookback = 100

var whitespaceRe = regexp.MustCompile(`\s+`)

// Normalize collapses all whitespace runs to single spaces and trims the ends.
// Chunk offsets are relative to this normalized form.
func Normalize(text string) string {
	return whitespaceRe.ReplaceAllString(strings.TrimSpace(text), " ")
}

// FixedChunker splits text into character-budget chunks that prefer to end on
// sentence boundaries, with a fixed overlap between consecutive chunks.
type FixedChunker struct {
	chunkSize int
	overlap   int
}

func NewFixedChunker(chunkSize, overlap int) *FixedChunker {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if overlap < 0 {
		overlap = DefaultOverlap
	}
	return &FixedChunker{chunkSize: chunkSize, overlap: overlap}
}

// Chunk splits text into overlapping chunks. The cursor always advances by at
// least one character, so overlap >= chunkSize cannot loop forever. Empty
// input yields no chunks.
func (c *FixedChunker) Chunk(text string) []domain.Chunk {
	norm := Normalize(text)
	if norm == "" {
		return nil
	}

	var chunks []domain.Chunk
	cursor := 0
	id := 0
	for cursor < len(norm) {
		end := cursor + c.chunkSize
		if end > len(norm) {
			end = len(norm)
		}

		if end < len(norm) {
			if b := lastSentenceEnd(norm, cursor, end); b > 0 {
				end = b
			}
		}

		if txt := strings.TrimSpace(norm[cursor:end]); txt != "" {
			chunks = append(chunks, domain.Chunk{
				ID:          id,
				Text:        txt,
				StartOffset: cursor,
				Length:      len(txt),
			})
			id++
		}

		if end >= len(norm) {
			break
		}
		next := end - c.overlap
		if next <= cursor {
			next = cursor + 1
		}
		cursor = next
	}
	return chunks
}

// lastSentenceEnd returns the position just after the last '.', '!' or '?'
// within the lookback window before end, or 0 if none is found.
func lastSentenceEnd(text string, cursor, end int) int {
	start := end - boundaryLookback
	if start < cursor {
		start = cursor
	}
	last := 0
	for i := start; i < end; i++ {
		switch text[i] {
		case '.', '!', '?':
			last = i + 1
		}
	}
	return last
}
