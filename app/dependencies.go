// Package app wires configuration, providers, storage, services, and
// handlers together.
package app

import (
	"context"
	"fmt"

	"github.com/steamlens/steamlens/config"
	"github.com/steamlens/steamlens/handlers"
	"github.com/steamlens/steamlens/repositories"
	"github.com/steamlens/steamlens/repositories/memory"
	"github.com/steamlens/steamlens/repositories/postgres"
	"github.com/steamlens/steamlens/repositories/qdrant"
	"github.com/steamlens/steamlens/services/answer"
	conversation "github.com/steamlens/steamlens/services/memory"
	"github.com/steamlens/steamlens/services/providers"
	"github.com/steamlens/steamlens/services/providers/ollama"
	"github.com/steamlens/steamlens/services/providers/openai"
	"github.com/steamlens/steamlens/services/query"
	"github.com/steamlens/steamlens/services/rerank"
	"github.com/steamlens/steamlens/services/retrieval"
	"github.com/steamlens/steamlens/services/selector"
	"go.uber.org/zap"
)

// Dependencies holds all application dependencies.
// This is the central wiring point for dependency injection.
type Dependencies struct {
	// Infrastructure
	Config *config.Config
	Logger *zap.Logger

	// Storage
	VectorStore repositories.VectorStore

	// Providers
	Registry *providers.Registry

	// Services
	Selector     *selector.Service
	Reranker     *rerank.Service
	Retrieval    *retrieval.Service
	Answer       *answer.Service
	Conversation *conversation.Store
	Query        *query.Service

	// Handlers
	QueryHandler  *handlers.QueryHandler
	HealthHandler *handlers.HealthHandler
}

// NewDependencies creates and wires up all application dependencies
func NewDependencies(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Config: cfg,
		Logger: logger,
	}

	if err := deps.initProviders(cfg); err != nil {
		return nil, fmt.Errorf("failed to initialize providers: %w", err)
	}

	if err := deps.initVectorStore(cfg); err != nil {
		return nil, fmt.Errorf("failed to initialize vector store: %w", err)
	}

	if err := deps.initServices(cfg); err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	deps.initHandlers(cfg)

	logger.Info("all dependencies initialized successfully")
	return deps, nil
}

// initProviders registers the configured model providers
func (d *Dependencies) initProviders(cfg *config.Config) error {
	registry := providers.NewRegistry(d.Logger)

	if cfg.Providers.OpenAI.APIKey != "" {
		adapter := openai.NewAdapter(providers.Config{
			APIKey:         cfg.Providers.OpenAI.APIKey,
			BaseURL:        cfg.Providers.OpenAI.BaseURL,
			ChatModel:      cfg.Providers.OpenAI.ChatModel,
			EmbeddingModel: cfg.Providers.OpenAI.EmbeddingModel,
			Timeout:        cfg.Providers.OpenAI.Timeout,
		})
		registry.RegisterChat(adapter)
		registry.RegisterEmbedder(adapter)
	}

	ollamaAdapter, err := ollama.NewAdapter(providers.Config{
		BaseURL:        cfg.Providers.Ollama.BaseURL,
		ChatModel:      cfg.Providers.Ollama.ChatModel,
		EmbeddingModel: cfg.Providers.Ollama.EmbeddingModel,
		Timeout:        cfg.Providers.Ollama.Timeout,
	})
	if err != nil {
		return fmt.Errorf("failed to create ollama adapter: %w", err)
	}
	registry.RegisterChat(ollamaAdapter)
	registry.RegisterEmbedder(ollamaAdapter)

	d.Registry = registry
	return nil
}

// initVectorStore creates the configured index backend
func (d *Dependencies) initVectorStore(cfg *config.Config) error {
	switch cfg.Index.Backend {
	case "memory":
		d.VectorStore = memory.NewStore()

	case "qdrant":
		store, err := qdrant.NewStore(cfg.Index.Qdrant.Address(), cfg.Index.Collection)
		if err != nil {
			return err
		}
		d.VectorStore = store

	case "pgvector":
		db, err := postgres.NewDB(cfg.Database, d.Logger)
		if err != nil {
			return err
		}
		d.VectorStore = postgres.NewVectorStore(db, d.Logger)

	default:
		return fmt.Errorf("unknown index backend %q", cfg.Index.Backend)
	}

	d.Logger.Info("vector store initialized",
		zap.String("backend", cfg.Index.Backend))
	return nil
}

// initServices wires the question answering pipeline
func (d *Dependencies) initServices(cfg *config.Config) error {
	generationChat, err := d.Registry.Chat(cfg.Providers.Generation)
	if err != nil {
		return err
	}

	embedder, err := d.Registry.Embedder(cfg.Providers.Embedding)
	if err != nil {
		return err
	}

	selectorModel := cfg.Providers.Ollama.ChatModel
	generationModel := cfg.Providers.Ollama.ChatModel
	if cfg.Providers.Generation == "openai" {
		selectorModel = cfg.Providers.OpenAI.SelectorModel
		generationModel = cfg.Providers.OpenAI.ChatModel
	}

	d.Selector = selector.NewService(generationChat, selectorModel,
		cfg.Retrieval.DefaultK, cfg.Retrieval.MaxK, d.Logger)

	scorer := rerank.NewHTTPScorer(cfg.Reranker.Endpoint, cfg.Reranker.Model, cfg.Reranker.Timeout)
	d.Reranker = rerank.NewService(scorer, d.Logger)

	d.Retrieval = retrieval.NewService(d.Selector, embedder, d.VectorStore, d.Reranker, d.Logger)

	d.Answer = answer.NewService(generationChat, generationModel,
		cfg.Retrieval.MaxContextDocs, d.Logger)

	d.Conversation = conversation.NewStore(cfg.Retrieval.MemoryTurns, d.Logger)

	d.Query = query.NewService(d.Retrieval, d.Answer, d.Conversation, d.Selector, d.Logger)

	return nil
}

// initHandlers creates the HTTP handlers
func (d *Dependencies) initHandlers(cfg *config.Config) {
	d.QueryHandler = handlers.NewQueryHandler(d.Query, d.Logger)

	var checkers []handlers.ProviderChecker
	if chat, err := d.Registry.Chat(cfg.Providers.Generation); err == nil {
		checkers = append(checkers, chat)
	}
	d.HealthHandler = handlers.NewHealthHandler(d.VectorStore, checkers, d.Logger)
}

// Close gracefully shuts down all dependencies
func (d *Dependencies) Close(ctx context.Context) error {
	d.Logger.Info("shutting down dependencies")

	var errs []error

	if d.VectorStore != nil {
		if err := d.VectorStore.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close vector store: %w", err))
		}
	}

	if d.Logger != nil {
		_ = d.Logger.Sync()
	}

	if len(errs) > 0 {
		return fmt.Errorf("errors during shutdown: %v", errs)
	}

	return nil
}
