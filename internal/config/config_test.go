package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("Missing file returns defaults", func(t *testing.T) {
		cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))

		require.NoError(t, err)
		assert.Equal(t, 1000, cfg.Chunker.ChunkSize)
		assert.Equal(t, 200, cfg.Chunker.Overlap)
		assert.Equal(t, 5, cfg.Retriever.MaxChunks)
		assert.Equal(t, 20, cfg.Conversation.MaxTurns)
		assert.Equal(t, 2, cfg.Conversation.ContextTurns)
		require.NotNil(t, cfg.Generator.OpenAI)
		assert.Equal(t, "OPENAI_API_KEY", cfg.Generator.OpenAI.APIKeyEnv)
	})

	t.Run("Partial file is backfilled with defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		data := "chunker:\n  chunk_size: 500\ngenerator:\n  type: openai\n  openai:\n    model: custom-model\n"
		require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

		cfg, err := Load(path)

		require.NoError(t, err)
		assert.Equal(t, 500, cfg.Chunker.ChunkSize)
		assert.Equal(t, 200, cfg.Chunker.Overlap)
		assert.Equal(t, "custom-model", cfg.Generator.OpenAI.Model)
		assert.Equal(t, "https://api.openai.com/v1", cfg.Generator.OpenAI.BaseURL)
		assert.Equal(t, 120, cfg.Generator.OpenAI.TimeoutSecs)
	})

	t.Run("Invalid yaml is an error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("chunker: ["), 0o644))

		_, err := Load(path)
		assert.Error(t, err)
	})
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := defaultConfig()
	cfg.Chunker.ChunkSize = 750

	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
