package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"docqa/internal/agent"
	"docqa/internal/chunker"
	"docqa/internal/config"
	"docqa/internal/conversation"
	"docqa/internal/domain"
	"docqa/internal/generator/openai"
	"docqa/internal/ingest"
	"docqa/internal/retriever"
	"docqa/internal/session"
	"docqa/internal/synthesizer"
	"docqa/internal/tui"
)

func main() {
	_ = godotenv.Load()

	var cfgPath string
	flag.StringVar(&cfgPath, "config", "", "Path to YAML config file (optional; uses ~/.config/docqa/config.yaml if not provided)")
	flag.Parse()
	inputs := flag.Args()
	if len(inputs) != 1 {
		fmt.Println("Usage: docqa [--config=config.yaml] document.txt")
		os.Exit(1)
	}

	var cfg *config.AppConfig
	var err error
	if cfgPath == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(cfgPath)
	}
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Assemble components
	var gen domain.Generator
	switch cfg.Generator.Type {
	case "openai", "":
		if cfg.Generator.OpenAI == nil {
			log.Fatalf("openai generator config missing")
		}
		client, err := openai.NewClient(openai.Config{
			BaseURL:   cfg.Generator.OpenAI.BaseURL,
			APIKeyEnv: cfg.Generator.OpenAI.APIKeyEnv,
			Model:     cfg.Generator.OpenAI.Model,
			Timeout:   time.Duration(cfg.Generator.OpenAI.TimeoutSecs) * time.Second,
		})
		if err != nil {
			log.Fatalf("openai generator init failed: %v", err)
		}
		gen = client
	default:
		log.Fatalf("unknown generator: %s", cfg.Generator.Type)
	}

	sess := session.New(chunker.NewFixedChunker(cfg.Chunker.ChunkSize, cfg.Chunker.Overlap))
	history := conversation.NewHistory(cfg.Conversation.MaxTurns, cfg.Conversation.ContextTurns)
	qa := agent.New(
		ingest.NewFileIngestor(),
		sess,
		retriever.NewKeywordRetriever(),
		synthesizer.New(gen),
		gen,
		history,
		cfg.Retriever.MaxChunks,
	)

	load := qa.LoadDocument(inputs[0])
	if !load.Success {
		log.Fatalf("load failed: %s", load.Error)
	}

	m := tui.New(qa)
	if _, err := tea.NewProgram(m).Run(); err != nil {
		log.Fatal(err)
	}
}
