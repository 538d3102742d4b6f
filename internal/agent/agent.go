package agent

import (
	"context"
	"fmt"
	"strings"

	"docqa/internal/conversation"
	"docqa/internal/domain"
	"docqa/internal/session"
)

// previewLen is how much document text a load result shows.
const previewLen = 500

// summaryChunks is how many leading chunks feed the document summary.
const summaryChunks = 3

const summaryMaxTokens = 1000

const summaryPromptTemplate = `Please provide a concise summary of this document excerpt:

%s

Include:
1. Document type and purpose
2. Key information and details
3. Main parties or entities mentioned
4. Important dates, amounts, or numbers

Keep the summary under 200 words.`

// LoadResult reports the outcome of loading a document.
type LoadResult struct {
	Success     bool
	TextLength  int
	ChunksCount int
	Metadata    map[string]any
	Preview     string
	Error       string
}

// SourceChunk describes one retrieved chunk backing an answer.
type SourceChunk struct {
	ChunkID         int
	Text            string
	Score           float64
	MatchedKeywords []string
}

// AskResult reports the outcome of answering one question.
type AskResult struct {
	Success        bool
	Question       string
	Answer         string
	Confidence     float64
	Reasoning      string
	Sources        []SourceChunk
	SourceChunkIDs []int
	UsedChunkCount int
	Error          string
}

// SummaryResult reports a generated document summary with document stats.
type SummaryResult struct {
	Success     bool
	Summary     string
	TextLength  int
	ChunksCount int
	SourcePath  string
	Error       string
}

// ConversationSummary describes the current conversation state.
type ConversationSummary struct {
	TotalTurns      int
	RecentQuestions []string
	DocumentLoaded  bool
}

// Agent is the caller-facing surface of the question-answering core. It
// coordinates the session document, conversation history, retrieval and
// synthesis. All methods return structured results; none panic.
type Agent struct {
	ingestor  domain.Ingestor
	session   *session.Session
	retriever domain.Retriever
	synth     domain.Synthesizer
	generator domain.Generator
	history   *conversation.History
	maxChunks int
}

func New(ingestor domain.Ingestor, sess *session.Session, retriever domain.Retriever, synth domain.Synthesizer, generator domain.Generator, history *conversation.History, maxChunks int) *Agent {
	return &Agent{
		ingestor:  ingestor,
		session:   sess,
		retriever: retriever,
		synth:     synth,
		generator: generator,
		history:   history,
		maxChunks: maxChunks,
	}
}

// LoadDocument ingests and chunks the file, replacing any resident document
// and clearing the conversation history.
func (a *Agent) LoadDocument(path string) LoadResult {
	ingested, err := a.ingestor.Ingest(path)
	if err != nil {
		return LoadResult{Error: fmt.Sprintf("document loading failed: %v", err)}
	}

	doc := a.session.Load(ingested.Text, ingested.Metadata, path)
	if doc.Text == "" {
		return LoadResult{Error: "document loading failed: document contains no text"}
	}

	// New document, fresh conversation.
	a.history.Clear()

	return LoadResult{
		Success:     true,
		TextLength:  len(doc.Text),
		ChunksCount: len(doc.Chunks),
		Metadata:    doc.Metadata,
		Preview:     preview(doc.Text),
	}
}

// Ask answers a question about the resident document. With includeContext set,
// recent conversation turns are folded into the retrieval and generation
// input; the history always records the caller's original question.
func (a *Agent) Ask(ctx context.Context, question string, includeContext bool) AskResult {
	if _, loaded := a.session.Document(); !loaded {
		return AskResult{
			Question: question,
			Error:    "no document loaded, load a document first",
		}
	}

	effective := question
	if includeContext {
		effective = a.history.Enhance(question)
	}

	ranked := a.retriever.Retrieve(effective, a.session.Chunks(), a.maxChunks)
	answer := a.synth.Synthesize(ctx, effective, ranked)

	a.history.Record(question, answer.Answer)

	sources := make([]SourceChunk, len(ranked))
	for i, rc := range ranked {
		sources[i] = SourceChunk{
			ChunkID:         rc.Chunk.ID,
			Text:            rc.Chunk.Text,
			Score:           rc.Score,
			MatchedKeywords: rc.MatchedKeywords,
		}
	}

	return AskResult{
		Success:        true,
		Question:       question,
		Answer:         answer.Answer,
		Confidence:     answer.Confidence,
		Reasoning:      answer.Reasoning,
		Sources:        sources,
		SourceChunkIDs: answer.SourceChunkIDs,
		UsedChunkCount: answer.UsedChunkCount,
	}
}

// Summarize asks the generation capability for a short summary built from the
// document's leading chunks.
func (a *Agent) Summarize(ctx context.Context) SummaryResult {
	doc, loaded := a.session.Document()
	if !loaded {
		return SummaryResult{Error: "no document loaded"}
	}

	n := summaryChunks
	if n > len(doc.Chunks) {
		n = len(doc.Chunks)
	}
	parts := make([]string, n)
	for i := 0; i < n; i++ {
		parts[i] = doc.Chunks[i].Text
	}

	prompt := fmt.Sprintf(summaryPromptTemplate, strings.Join(parts, " "))
	content, err := a.generator.Generate(ctx, prompt, summaryMaxTokens)
	if err != nil {
		return SummaryResult{Error: fmt.Sprintf("summary generation failed: %v", err)}
	}

	return SummaryResult{
		Success:     true,
		Summary:     content,
		TextLength:  len(doc.Text),
		ChunksCount: len(doc.Chunks),
		SourcePath:  doc.SourcePath,
	}
}

// Info returns a read-only snapshot of the session state.
func (a *Agent) Info() session.Info {
	return a.session.Info()
}

// Clear resets the resident document and the conversation history.
func (a *Agent) Clear() {
	a.session.Clear()
	a.history.Clear()
}

// ClearConversation resets only the conversation history.
func (a *Agent) ClearConversation() {
	a.history.Clear()
}

// Conversation summarizes the recorded exchanges.
func (a *Agent) Conversation() ConversationSummary {
	return ConversationSummary{
		TotalTurns:      a.history.Len(),
		RecentQuestions: a.history.RecentQuestions(3),
		DocumentLoaded:  a.session.Info().Loaded,
	}
}

// SuggestedQuestions proposes starting questions for the loaded document.
// Long documents also get a section-overview question.
func (a *Agent) SuggestedQuestions() []string {
	info := a.session.Info()
	if !info.Loaded {
		return nil
	}

	suggestions := []string{
		"What is the property address?",
		"What is the sale price?",
		"Who are the buyer and seller?",
		"When is the closing date?",
		"What is the commission amount?",
		"Are there any contingencies mentioned?",
		"What are the key terms of this agreement?",
		"What fees are mentioned in the document?",
		"Are there any special conditions?",
		"What is the earnest money amount?",
	}
	if pages := metadataInt(info.Metadata, "pages"); pages > 10 {
		suggestions = append(suggestions, "Can you summarize the main sections of this document?")
	}

	if len(suggestions) > 8 {
		suggestions = suggestions[:8]
	}
	return suggestions
}

func preview(text string) string {
	if len(text) > previewLen {
		return text[:previewLen] + "..."
	}
	return text
}

// metadataInt reads an integer-ish metadata value; metadata is opaque, so
// numeric JSON/YAML decodings may arrive as several types.
func metadataInt(metadata map[string]any, key string) int {
	switch v := metadata[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return 0
	}
}
