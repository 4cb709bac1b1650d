// catalog-indexer parses the game catalog CSV, embeds each game's
// metadata, and upserts the documents into the vector index.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/steamlens/steamlens/catalog"
	"github.com/steamlens/steamlens/config"
	"github.com/steamlens/steamlens/internal/observability"
	"github.com/steamlens/steamlens/models"
	"github.com/steamlens/steamlens/repositories"
	"github.com/steamlens/steamlens/repositories/postgres"
	"github.com/steamlens/steamlens/repositories/qdrant"
	"github.com/steamlens/steamlens/services/providers"
	"github.com/steamlens/steamlens/services/providers/ollama"
	"github.com/steamlens/steamlens/services/providers/openai"
	"go.uber.org/zap"
)

func main() {
	csvPath := flag.String("csv", "data/games_description.csv", "Path to the game catalog CSV")
	recreate := flag.Bool("recreate", false, "Recreate the collection if it exists")
	batchSize := flag.Int("batch", 100, "Documents per upsert batch")
	limit := flag.Int("limit", 0, "Index at most this many games (0 = all)")
	flag.Parse()

	cfg, err := config.New()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Observability)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	boldGreen := color.New(color.FgGreen, color.Bold).SprintFunc()
	boldRed := color.New(color.FgRed, color.Bold).SprintFunc()

	ctx := context.Background()

	embedder, err := buildEmbedder(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, boldRed("error:"), err)
		os.Exit(1)
	}

	store, err := buildStore(ctx, cfg, *recreate, logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, boldRed("error:"), err)
		os.Exit(1)
	}
	defer store.Close()

	fmt.Printf("Parsing game catalog from %s\n", *csvPath)
	records, err := catalog.ParseFile(*csvPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, boldRed("error:"), err)
		os.Exit(1)
	}
	if *limit > 0 && len(records) > *limit {
		records = records[:*limit]
	}
	fmt.Printf("%s %d games parsed\n", boldGreen("✓"), len(records))

	indexed := 0
	for start := 0; start < len(records); start += *batchSize {
		end := start + *batchSize
		if end > len(records) {
			end = len(records)
		}
		batch := records[start:end]

		texts := make([]string, len(batch))
		for i, rec := range batch {
			texts[i] = rec.Document()
		}

		vectors, err := embedder.EmbedBatch(ctx, texts)
		if err != nil {
			fmt.Fprintln(os.Stderr, boldRed("error:"), fmt.Errorf("embedding batch at %d: %w", start, err))
			os.Exit(1)
		}

		docs := make([]models.Document, len(batch))
		for i := range batch {
			docs[i] = models.Document{
				ID:        uuid.NewString(),
				Text:      texts[i],
				Embedding: vectors[i],
			}
		}

		if err := store.Add(ctx, docs); err != nil {
			fmt.Fprintln(os.Stderr, boldRed("error:"), fmt.Errorf("upserting batch at %d: %w", start, err))
			os.Exit(1)
		}

		indexed += len(docs)
		fmt.Printf("indexed %d/%d\n", indexed, len(records))
	}

	fmt.Printf("%s catalog indexed into %q (%s backend)\n",
		boldGreen("✓"), cfg.Index.Collection, cfg.Index.Backend)
}

// buildEmbedder creates the configured embedding provider
func buildEmbedder(cfg *config.Config) (providers.Embedder, error) {
	switch cfg.Providers.Embedding {
	case "openai":
		if cfg.Providers.OpenAI.APIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is required for the openai embedding provider")
		}
		return openai.NewAdapter(providers.Config{
			APIKey:         cfg.Providers.OpenAI.APIKey,
			BaseURL:        cfg.Providers.OpenAI.BaseURL,
			ChatModel:      cfg.Providers.OpenAI.ChatModel,
			EmbeddingModel: cfg.Providers.OpenAI.EmbeddingModel,
			Timeout:        cfg.Providers.OpenAI.Timeout,
		}), nil
	case "ollama":
		return ollama.NewAdapter(providers.Config{
			BaseURL:        cfg.Providers.Ollama.BaseURL,
			ChatModel:      cfg.Providers.Ollama.ChatModel,
			EmbeddingModel: cfg.Providers.Ollama.EmbeddingModel,
			Timeout:        cfg.Providers.Ollama.Timeout,
		})
	default:
		return nil, fmt.Errorf("unknown embedding provider %q", cfg.Providers.Embedding)
	}
}

// buildStore creates the configured index backend ready for writes
func buildStore(ctx context.Context, cfg *config.Config, recreate bool, logger *zap.Logger) (repositories.VectorStore, error) {
	switch cfg.Index.Backend {
	case "qdrant":
		store, err := qdrant.NewStore(cfg.Index.Qdrant.Address(), cfg.Index.Collection)
		if err != nil {
			return nil, err
		}
		if err := store.EnsureCollection(ctx, cfg.Index.VectorSize, recreate); err != nil {
			store.Close()
			return nil, err
		}
		return store, nil

	case "pgvector":
		db, err := postgres.NewDB(cfg.Database, logger)
		if err != nil {
			return nil, err
		}
		if err := db.InitSchema(ctx, cfg.Index.VectorSize); err != nil {
			db.Close()
			return nil, err
		}
		return postgres.NewVectorStore(db, logger), nil

	default:
		return nil, fmt.Errorf("index backend %q is not persistent, use qdrant or pgvector", cfg.Index.Backend)
	}
}
