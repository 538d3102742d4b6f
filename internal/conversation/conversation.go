package conversation

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"docqa/internal/domain"
)

// DefaultMaxTurns caps how many question/answer pairs are retained.
const DefaultMaxTurns = 20

// DefaultContextTurns is how many recent turns are folded into a new query.
const DefaultContextTurns = 2

// answerExcerptLen truncates prior answers when rendering context.
const answerExcerptLen = 200

const enhancedQuestionTemplate = `Given this conversation context:
%s

Current question: %s

Please answer the current question, taking into account the conversation context if relevant.`

// History is a bounded, session-scoped record of question/answer exchanges.
// Oldest turns are evicted first once the cap is reached.
type History struct {
	mu           sync.RWMutex
	maxTurns     int
	contextTurns int
	turns        []domain.ConversationTurn
}

func NewHistory(maxTurns, contextTurns int) *History {
	if maxTurns <= 0 {
		maxTurns = DefaultMaxTurns
	}
	if contextTurns <= 0 {
		contextTurns = DefaultContextTurns
	}
	return &History{maxTurns: maxTurns, contextTurns: contextTurns}
}

// Enhance folds the most recent turns into the question so the generation
// step can resolve references to earlier exchanges. With no history the
// question passes through unchanged. The enhanced form is only ever used as
// generation input; the caller records the original question.
func (h *History) Enhance(question string) string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if len(h.turns) == 0 {
		return question
	}

	recent := h.turns
	if len(recent) > h.contextTurns {
		recent = recent[len(recent)-h.contextTurns:]
	}

	lines := make([]string, len(recent))
	for i, turn := range recent {
		answer := turn.Answer
		if len(answer) > answerExcerptLen {
			answer = answer[:answerExcerptLen]
		}
		lines[i] = fmt.Sprintf("Previous Q: %s\nPrevious A: %s...", turn.Question, answer)
	}

	return fmt.Sprintf(enhancedQuestionTemplate, strings.Join(lines, "\n"), question)
}

// Record appends a turn with the current timestamp, evicting the oldest turns
// beyond the cap.
func (h *History) Record(question, answer string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.turns = append(h.turns, domain.ConversationTurn{
		Timestamp: time.Now(),
		Question:  question,
		Answer:    answer,
	})
	if len(h.turns) > h.maxTurns {
		h.turns = h.turns[len(h.turns)-h.maxTurns:]
	}
}

// Clear empties the history.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.turns = nil
}

// Len reports how many turns are currently retained.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.turns)
}

// Turns returns a copy of the retained turns, oldest first.
func (h *History) Turns() []domain.ConversationTurn {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]domain.ConversationTurn, len(h.turns))
	copy(out, h.turns)
	return out
}

// RecentQuestions returns up to n of the latest questions, oldest first.
func (h *History) RecentQuestions(n int) []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	start := len(h.turns) - n
	if start < 0 {
		start = 0
	}
	var out []string
	for _, turn := range h.turns[start:] {
		out = append(out, turn.Question)
	}
	return out
}
