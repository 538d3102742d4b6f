package synthesizer

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"docqa/internal/domain"
)

// Confidence values produced locally, without or despite the generation step.
const (
	// NoContextConfidence is reported when retrieval found nothing relevant.
	NoContextConfidence = 0.1
	// FallbackConfidence is used when the generated output has no usable
	// confidence field or is not structured at all.
	FallbackConfidence = 0.7
)

// answerMaxTokens bounds the generation budget for one answer.
const answerMaxTokens = 2000

const noContextAnswer = "I couldn't find relevant information in the document to answer your question."

const answerPromptTemplate = `Based on the following document excerpts, please answer the user's question accurately and concisely.

DOCUMENT EXCERPTS:
%s

QUESTION: %s

Please provide your response in the following JSON format:
{
    "answer": "Your detailed answer based on the document content",
    "confidence": 0.0-1.0,
    "reasoning": "Brief explanation of how you arrived at this answer",
    "source_chunks": [list of chunk IDs that were most relevant]
}

Guidelines:
- Only use information from the provided document excerpts
- If the answer isn't in the document, say so clearly
- Provide specific details and quotes when possible
- Rate your confidence based on how well the document supports your answer
- Be concise but comprehensive`

// Synthesizer builds generation prompts from retrieved chunks and normalizes
// whatever comes back into an AnswerResult.
type Synthesizer struct {
	generator domain.Generator
}

func New(generator domain.Generator) *Synthesizer {
	return &Synthesizer{generator: generator}
}

// Synthesize answers the question from the ranked chunks. It never returns an
// error: empty retrieval yields a fixed low-confidence answer without calling
// the generator, generation failures are embedded into the answer with zero
// confidence, and malformed structured output falls back to the raw text.
func (s *Synthesizer) Synthesize(ctx context.Context, question string, chunks []domain.RankedChunk) domain.AnswerResult {
	if len(chunks) == 0 {
		return domain.AnswerResult{
			Answer:     noContextAnswer,
			Confidence: NoContextConfidence,
			Reasoning:  "No relevant text chunks were found for the question.",
		}
	}

	prompt := fmt.Sprintf(answerPromptTemplate, contextBlock(chunks), question)

	content, err := s.generator.Generate(ctx, prompt, answerMaxTokens)
	if err != nil {
		return domain.AnswerResult{
			Answer:         fmt.Sprintf("I encountered an error while generating the answer: %v", err),
			Confidence:     0.0,
			Reasoning:      "Error in answer generation",
			UsedChunkCount: len(chunks),
		}
	}

	result, ok := parseStructured(content)
	if !ok {
		result = domain.AnswerResult{
			Answer:     content,
			Confidence: FallbackConfidence,
			Reasoning:  "Generated from document analysis",
		}
	}
	result.UsedChunkCount = len(chunks)
	return result
}

// contextBlock labels each chunk's text with its id, in ranking order.
func contextBlock(chunks []domain.RankedChunk) string {
	parts := make([]string, len(chunks))
	for i, rc := range chunks {
		parts[i] = fmt.Sprintf("[Chunk %d]: %s", rc.Chunk.ID, rc.Chunk.Text)
	}
	return strings.Join(parts, "\n\n")
}

// structuredAnswer is the JSON shape requested from the generation capability.
// Confidence is kept raw so a numeric string still coerces instead of failing
// the whole parse.
type structuredAnswer struct {
	Answer       string          `json:"answer"`
	Confidence   json.RawMessage `json:"confidence"`
	Reasoning    string          `json:"reasoning"`
	SourceChunks []int           `json:"source_chunks"`
}

// parseStructured attempts to read the generated content as the requested
// JSON shape. The second return value reports whether the content was
// parseable; callers fall back to the raw text when it is not.
func parseStructured(content string) (domain.AnswerResult, bool) {
	var parsed structuredAnswer
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return domain.AnswerResult{}, false
	}

	answer := parsed.Answer
	if answer == "" {
		answer = content
	}
	reasoning := parsed.Reasoning
	if reasoning == "" {
		reasoning = "Generated from document analysis"
	}

	return domain.AnswerResult{
		Answer:         answer,
		Confidence:     coerceConfidence(parsed.Confidence),
		Reasoning:      reasoning,
		SourceChunkIDs: parsed.SourceChunks,
	}, true
}

// coerceConfidence accepts a JSON number or a numeric string; anything else
// defaults to FallbackConfidence.
func coerceConfidence(raw json.RawMessage) float64 {
	if len(raw) == 0 {
		return FallbackConfidence
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return f
		}
	}
	return FallbackConfidence
}
