package keywords

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtract(t *testing.T) {
	t.Run("Drops stop words and duplicates, keeps first-occurrence order", func(t *testing.T) {
		got := Extract("the Sale Price and the sale price")
		assert.Equal(t, []string{"sale", "price"}, got)
	})

	t.Run("Drops tokens of length two or less", func(t *testing.T) {
		got := Extract("go is ok but earnest money it no")
		assert.Equal(t, []string{"earnest", "money"}, got)
	})

	t.Run("Lowercases and splits on non-alphanumeric characters", func(t *testing.T) {
		got := Extract("Buyer: JOHN-SMITH, price=350000!")
		assert.Equal(t, []string{"buyer", "john", "smith", "price", "350000"}, got)
	})

	t.Run("Interrogative words are stop words", func(t *testing.T) {
		got := Extract("What is the commission amount?")
		assert.Equal(t, []string{"commission", "amount"}, got)
	})

	t.Run("Empty and stop-word-only input", func(t *testing.T) {
		assert.Empty(t, Extract(""))
		assert.Empty(t, Extract("the and or but"))
	})

	t.Run("Deterministic", func(t *testing.T) {
		text := "When is the closing date for the purchase agreement?"
		assert.Equal(t, Extract(text), Extract(text))
	})
}
