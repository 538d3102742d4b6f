package keywords

import (
	"regexp"
	"strings"
)

// minKeywordLen drops tokens of two characters or fewer.
const minKeywordLen = 3

var tokenRe = regexp.MustCompile(`[a-z0-9]+`)

// Extract tokenizes text into lowercase alphanumeric runs, drops stop words
// and tokens shorter than three characters, and deduplicates while preserving
// first-occurrence order.
func Extract(text string) []string {
	tokens := tokenRe.FindAllString(strings.ToLower(text), -1)
	seen := make(map[string]struct{}, len(tokens))
	var out []string
	for _, tok := range tokens {
		if len(tok) < minKeywordLen {
			continue
		}
		if _, ok := stopwords[tok]; ok {
			continue
		}
		if _, ok := seen[tok]; ok {
			continue
		}
		seen[tok] = struct{}{}
		out = append(out, tok)
	}
	return out
}

var stopwords = toSet([]string{
	"the", "a", "an", "and", "or", "but", "in", "on", "at", "to", "for", "of", "with",
	"by", "is", "are", "was", "were", "be", "been", "have", "has", "had", "do", "does",
	"did", "will", "would", "could", "should", "may", "might", "can", "this", "that",
	"these", "those", "what", "when", "where", "why", "how", "who", "which",
})

func toSet(words []string) map[string]struct{} {
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}
