// Package retrieval implements the two-stage retrieval pipeline: vector
// search over-fetches candidates, then a cross-encoder narrows them down.
package retrieval

import (
	"context"

	"github.com/steamlens/steamlens/models"
	"github.com/steamlens/steamlens/services"
	"go.uber.org/zap"
)

// ResultCountResolver determines how many results a query asks for
type ResultCountResolver interface {
	ResolveK(ctx context.Context, query string) (int, error)
}

// Embedder converts query text into a vector
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// VectorSearcher finds the nearest stored documents to a vector
type VectorSearcher interface {
	Search(ctx context.Context, vector []float32, k int) ([]models.Candidate, error)
}

// Reranker reorders documents by relevance to the query
type Reranker interface {
	Rerank(ctx context.Context, query string, docs []string) ([]string, error)
}

// Service retrieves the most relevant catalog documents for a query
type Service struct {
	resolver ResultCountResolver
	embedder Embedder
	store    VectorSearcher
	reranker Reranker
	logger   *zap.Logger
}

// NewService creates a retrieval service
func NewService(resolver ResultCountResolver, embedder Embedder, store VectorSearcher, reranker Reranker, logger *zap.Logger) *Service {
	return &Service{
		resolver: resolver,
		embedder: embedder,
		store:    store,
		reranker: reranker,
		logger:   logger,
	}
}

// Retrieve resolves the result count k for the query, fetches 2k
// candidates from the vector store, reranks them, and returns the top k
// document texts.
func (s *Service) Retrieve(ctx context.Context, query string) ([]string, error) {
	k, err := s.resolver.ResolveK(ctx, query)
	if err != nil {
		return nil, services.NewExternalError("failed to resolve result count", err)
	}

	s.logger.Debug("result count resolved",
		zap.String("query", query),
		zap.Int("k", k))

	vector, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, services.NewExternalError("failed to embed query", err)
	}

	candidates, err := s.store.Search(ctx, vector, 2*k)
	if err != nil {
		return nil, services.NewInternalError("vector search failed", err)
	}

	if len(candidates) == 0 {
		return nil, services.ErrEmptyIndex
	}

	texts := make([]string, len(candidates))
	for i, c := range candidates {
		texts[i] = c.Document.Text
	}

	reranked, err := s.reranker.Rerank(ctx, query, texts)
	if err != nil {
		return nil, services.NewExternalError("failed to rerank candidates", err)
	}

	if len(reranked) > k {
		reranked = reranked[:k]
	}

	s.logger.Info("context retrieved",
		zap.Int("k", k),
		zap.Int("candidates", len(candidates)),
		zap.Int("selected", len(reranked)))

	return reranked, nil
}
