package session

import (
	"sync"

	"github.com/google/uuid"

	"docqa/internal/chunker"
	"docqa/internal/domain"
)

// Info is a read-only snapshot of the session's document state.
type Info struct {
	Loaded      bool
	TextLength  int
	ChunksCount int
	Metadata    map[string]any
	SourcePath  string
}

// Session holds at most one resident document. Loading a new document
// replaces the old one atomically; readers never observe a partial load.
type Session struct {
	mu      sync.RWMutex
	chunker domain.Chunker
	doc     domain.Document
}

func New(ch domain.Chunker) *Session {
	return &Session{chunker: ch}
}

// Load chunks the text and swaps in the new document, discarding the old one
// unconditionally. Text is normalized before storage so chunk offsets stay
// valid against what the session holds. Whitespace-only input leaves the
// session in the cleared state.
func (s *Session) Load(text string, metadata map[string]any, sourcePath string) domain.Document {
	norm := chunker.Normalize(text)
	chunks := s.chunker.Chunk(norm)

	doc := domain.Document{}
	if norm != "" && len(chunks) > 0 {
		doc = domain.Document{
			ID:         uuid.New().String(),
			SourcePath: sourcePath,
			Text:       norm,
			Chunks:     chunks,
			Metadata:   metadata,
		}
	}

	s.mu.Lock()
	s.doc = doc
	s.mu.Unlock()
	return doc
}

// Clear resets the session to the empty document.
func (s *Session) Clear() {
	s.mu.Lock()
	s.doc = domain.Document{}
	s.mu.Unlock()
}

// Document returns a snapshot of the resident document and whether one is
// loaded.
func (s *Session) Document() (domain.Document, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc, s.doc.Text != ""
}

// Chunks returns a copy of the resident document's chunks, safe to read while
// a concurrent load replaces the document.
func (s *Session) Chunks() []domain.Chunk {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Chunk, len(s.doc.Chunks))
	copy(out, s.doc.Chunks)
	return out
}

// Info reports the current document state.
func (s *Session) Info() Info {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Info{
		Loaded:      s.doc.Text != "",
		TextLength:  len(s.doc.Text),
		ChunksCount: len(s.doc.Chunks),
		Metadata:    s.doc.Metadata,
		SourcePath:  s.doc.SourcePath,
	}
}
