package main

import (
	"context"
	"fmt"
	"log"

	"github.com/jonathan/skill-profiler/internal/config"
	"github.com/jonathan/skill-profiler/internal/connectors"
	"github.com/jonathan/skill-profiler/internal/githubapi"
	"github.com/jonathan/skill-profiler/internal/jobqueue"
	"github.com/jonathan/skill-profiler/internal/llm"
	"github.com/jonathan/skill-profiler/internal/orchestrator"
	"github.com/jonathan/skill-profiler/internal/store"
)

// configPath is the optional --config flag shared by all commands.
var configPath string

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to JSON config file")
}

// loadConfig merges the config file (if given) over environment variables.
func loadConfig() (config.Config, error) {
	cfg := config.FromEnv()

	if configPath != "" {
		fileCfg, err := config.LoadConfig(configPath)
		if err != nil {
			return config.Config{}, err
		}
		cfg = fileCfg.MergeWithDefaults(cfg)
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// app bundles the wired collaborators behind the CLI commands.
type app struct {
	cfg      config.Config
	ai       *llm.Client
	orch     *orchestrator.Orchestrator
	profiles store.ProfileStore
	queue    *jobqueue.Queue
	db       *store.DB
}

// newApp constructs the full pipeline from configuration. Without an API
// key the AI client runs in deterministic mock mode; without a database
// URL the in-memory stores are used.
func newApp(ctx context.Context, cfg config.Config) (*app, error) {
	var gen llm.Generator
	if cfg.APIKey != "" {
		model := cfg.Model
		if model == "" {
			model = llm.DefaultModel
		}
		g, err := llm.NewGeminiGenerator(ctx, cfg.APIKey, model)
		if err != nil {
			return nil, fmt.Errorf("failed to create Gemini client: %w", err)
		}
		gen = g
	} else {
		log.Println("No API key configured; using deterministic mock extraction")
	}
	ai := llm.NewClient(gen)

	a := &app{cfg: cfg, ai: ai}

	var profiles store.ProfileStore
	var blobs store.BlobStore
	if cfg.DatabaseURL != "" {
		db, err := store.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		a.db = db
		profiles = store.NewPostgresProfileStore(db)
		blobs = store.NewPostgresBlobStore(db, cfg.BlobSignKey)
	} else {
		log.Println("No database URL configured; using in-memory stores")
		profiles = store.NewMemoryProfileStore()
		blobs = store.NewMemoryBlobStore(cfg.BlobSignKey)
	}
	a.profiles = profiles

	a.queue = jobqueue.New(cfg.Workers)
	a.orch = orchestrator.New(
		a.queue,
		connectors.NewCVConnector(blobs, ai),
		connectors.NewGitHubConnector(githubapi.NewRESTClient(cfg.GitHubToken), ai),
		connectors.NewLinkedInConnector(connectors.PlaceholderFetcher{}, ai),
		profiles,
	)
	return a, nil
}

// Close releases the app's resources in reverse construction order.
func (a *app) Close() {
	a.queue.Close()
	if err := a.ai.Close(); err != nil {
		log.Printf("Error closing AI client: %v", err)
	}
	if a.db != nil {
		a.db.Close()
	}
}
