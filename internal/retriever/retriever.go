package retriever

import (
	"sort"
	"strings"

	"docqa/internal/domain"
	"docqa/internal/keywords"
)

// DefaultMaxChunks is how many chunks a query retrieves when no limit is set.
const DefaultMaxChunks = 5

// keywordWeightDivisor makes longer keywords count more: each occurrence adds
// len(keyword)/10 to the score.
const keywordWeightDivisor = 10

// phraseBonus is added when the chunk contains the query's leading keywords as
// an exact phrase.
const phraseBonus = 5

// phraseKeywords is how many leading query keywords form the phrase.
const phraseKeywords = 3

// KeywordRetriever ranks chunks by lexical keyword overlap with the query.
// This is a deliberately simple substitute for semantic retrieval:
// deterministic and debuggable, good enough for short structured documents.
type KeywordRetriever struct{}

func NewKeywordRetriever() *KeywordRetriever {
	return &KeywordRetriever{}
}

// Retrieve scores every chunk against the query's keywords and returns up to
// maxChunks results ordered by descending score. Ties keep document order.
// Chunks scoring zero are never returned, even when fewer than maxChunks match.
func (r *KeywordRetriever) Retrieve(query string, chunks []domain.Chunk, maxChunks int) []domain.RankedChunk {
	if len(chunks) == 0 {
		return nil
	}
	if maxChunks <= 0 {
		maxChunks = DefaultMaxChunks
	}

	queryKeywords := keywords.Extract(query)

	scored := make([]domain.RankedChunk, 0, len(chunks))
	for _, ch := range chunks {
		text := strings.ToLower(ch.Text)

		score := 0.0
		var matched []string
		for _, kw := range queryKeywords {
			if n := strings.Count(text, kw); n > 0 {
				score += float64(n) * float64(len(kw)) / keywordWeightDivisor
				matched = append(matched, kw)
			}
		}

		if len(queryKeywords) > 1 {
			if strings.Contains(text, leadingPhrase(queryKeywords)) {
				score += phraseBonus
			}
		}

		scored = append(scored, domain.RankedChunk{Chunk: ch, Score: score, MatchedKeywords: matched})
	}

	// Stable: equally scored chunks stay in document order.
	sort.SliceStable(scored, func(i, j int) bool { return scored[i].Score > scored[j].Score })

	out := make([]domain.RankedChunk, 0, maxChunks)
	for _, rc := range scored {
		if len(out) == maxChunks {
			break
		}
		if rc.Score > 0 {
			out = append(out, rc)
		}
	}
	return out
}

func leadingPhrase(queryKeywords []string) string {
	n := phraseKeywords
	if n > len(queryKeywords) {
		n = len(queryKeywords)
	}
	return strings.Join(queryKeywords[:n], " ")
}
