package domain

import (
	"context"
	"time"
)

// Document is the single document resident in a session.
type Document struct {
	ID         string
	SourcePath string
	Text       string
	Chunks     []Chunk
	Metadata   map[string]any
}

// Chunk is a contiguous, bounded piece of a document used as a retrieval unit.
// IDs are 0-based and assigned in document order at load time.
type Chunk struct {
	ID          int
	Text        string
	StartOffset int
	Length      int
}

// RankedChunk wraps a chunk with its relevance score for one query.
// Score is an unbounded non-negative keyword-overlap value, not a probability.
type RankedChunk struct {
	Chunk           Chunk
	Score           float64
	MatchedKeywords []string
}

// ConversationTurn is one recorded question/answer exchange.
type ConversationTurn struct {
	Timestamp time.Time
	Question  string
	Answer    string
}

// AnswerResult is the normalized output of answer synthesis.
// Confidence is in [0,1] and comes from the generation step or fallback logic.
type AnswerResult struct {
	Answer         string
	Confidence     float64
	Reasoning      string
	SourceChunkIDs []int
	UsedChunkCount int
}

// IngestResult is what a document ingestor hands back: extracted text plus
// open metadata (page count, format, file size, ...) passed through opaquely.
type IngestResult struct {
	Text     string
	Metadata map[string]any
}

// Chunker splits document text into overlapping retrieval chunks.
type Chunker interface {
	Chunk(text string) []Chunk
}

// Retriever scores chunks against a query and returns the most relevant ones,
// highest score first. Chunks that match nothing are excluded.
type Retriever interface {
	Retrieve(query string, chunks []Chunk, maxChunks int) []RankedChunk
}

// Synthesizer turns a question and its retrieved context into an answer.
// It always produces a valid AnswerResult, even when generation fails.
type Synthesizer interface {
	Synthesize(ctx context.Context, question string, chunks []RankedChunk) AnswerResult
}

// Generator is the external generation capability: prompt in, free-form text
// out. The returned content may or may not be parseable as structured data.
type Generator interface {
	Generate(ctx context.Context, prompt string, maxTokens int) (string, error)
}

// Ingestor extracts text and metadata from a source file.
type Ingestor interface {
	Ingest(path string) (IngestResult, error)
}
