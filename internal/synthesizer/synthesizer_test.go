package synthesizer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docqa/internal/domain"
)

type fakeGenerator struct {
	content    string
	err        error
	calls      int
	lastPrompt string
}

func (f *fakeGenerator) Generate(_ context.Context, prompt string, _ int) (string, error) {
	f.calls++
	f.lastPrompt = prompt
	return f.content, f.err
}

func ranked(texts ...string) []domain.RankedChunk {
	chunks := make([]domain.RankedChunk, len(texts))
	for i, text := range texts {
		chunks[i] = domain.RankedChunk{
			Chunk: domain.Chunk{ID: i, Text: text, Length: len(text)},
			Score: float64(len(texts) - i),
		}
	}
	return chunks
}

func TestSynthesize(t *testing.T) {
	ctx := context.Background()

	t.Run("Empty retrieval skips generation entirely", func(t *testing.T) {
		gen := &fakeGenerator{}
		s := New(gen)

		got := s.Synthesize(ctx, "What is the sale price?", nil)

		assert.Equal(t, 0, gen.calls)
		assert.Equal(t, noContextAnswer, got.Answer)
		assert.Equal(t, NoContextConfidence, got.Confidence)
		assert.Equal(t, "No relevant text chunks were found for the question.", got.Reasoning)
		assert.Equal(t, 0, got.UsedChunkCount)
	})

	t.Run("Prompt carries labeled chunks and the question", func(t *testing.T) {
		gen := &fakeGenerator{content: "{}"}
		s := New(gen)

		s.Synthesize(ctx, "Who is the buyer?", ranked("sale price is 350000", "buyer is John"))

		require.Equal(t, 1, gen.calls)
		assert.Contains(t, gen.lastPrompt, "[Chunk 0]: sale price is 350000")
		assert.Contains(t, gen.lastPrompt, "[Chunk 1]: buyer is John")
		assert.Contains(t, gen.lastPrompt, "QUESTION: Who is the buyer?")
	})

	t.Run("Well-formed structured output is used as-is", func(t *testing.T) {
		gen := &fakeGenerator{content: `{"answer":"The buyer is John.","confidence":0.92,"reasoning":"Stated in chunk 1.","source_chunks":[1]}`}
		s := New(gen)

		got := s.Synthesize(ctx, "Who is the buyer?", ranked("sale price", "buyer is John"))

		assert.Equal(t, "The buyer is John.", got.Answer)
		assert.InDelta(t, 0.92, got.Confidence, 0.001)
		assert.Equal(t, "Stated in chunk 1.", got.Reasoning)
		assert.Equal(t, []int{1}, got.SourceChunkIDs)
		assert.Equal(t, 2, got.UsedChunkCount)
	})

	t.Run("Numeric string confidence coerces", func(t *testing.T) {
		gen := &fakeGenerator{content: `{"answer":"Yes.","confidence":"0.85"}`}
		s := New(gen)

		got := s.Synthesize(ctx, "q", ranked("text"))
		assert.InDelta(t, 0.85, got.Confidence, 0.001)
	})

	t.Run("Missing or junk confidence defaults", func(t *testing.T) {
		for name, content := range map[string]string{
			"absent": `{"answer":"Yes."}`,
			"junk":   `{"answer":"Yes.","confidence":"very high"}`,
		} {
			t.Run(name, func(t *testing.T) {
				gen := &fakeGenerator{content: content}
				s := New(gen)

				got := s.Synthesize(ctx, "q", ranked("text"))
				assert.Equal(t, "Yes.", got.Answer)
				assert.Equal(t, FallbackConfidence, got.Confidence)
			})
		}
	})

	t.Run("Malformed output falls back to raw text", func(t *testing.T) {
		gen := &fakeGenerator{content: "The sale price is 350000, as the document states."}
		s := New(gen)

		got := s.Synthesize(ctx, "q", ranked("sale price is 350000"))

		assert.Equal(t, gen.content, got.Answer)
		assert.Equal(t, FallbackConfidence, got.Confidence)
		assert.Equal(t, "Generated from document analysis", got.Reasoning)
		assert.Equal(t, 1, got.UsedChunkCount)
	})

	t.Run("Generation failure is embedded, not raised", func(t *testing.T) {
		gen := &fakeGenerator{err: errors.New("connection refused")}
		s := New(gen)

		got := s.Synthesize(ctx, "q", ranked("text"))

		assert.Contains(t, got.Answer, "connection refused")
		assert.Equal(t, 0.0, got.Confidence)
		assert.Equal(t, "Error in answer generation", got.Reasoning)
		assert.Equal(t, 1, got.UsedChunkCount)
	})
}
