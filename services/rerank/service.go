// Package rerank orders retrieved documents by cross-encoder relevance.
package rerank

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"
)

// Service reranks candidate documents against a query
type Service struct {
	scorer Scorer
	logger *zap.Logger
}

// NewService creates a rerank service backed by a scorer
func NewService(scorer Scorer, logger *zap.Logger) *Service {
	return &Service{
		scorer: scorer,
		logger: logger,
	}
}

// Rerank scores each document against the query and returns the documents
// sorted by score descending. Documents with equal scores keep their
// original relative order, so reranking an already ranked list leaves it
// unchanged.
func (s *Service) Rerank(ctx context.Context, query string, docs []string) ([]string, error) {
	if len(docs) == 0 {
		return []string{}, nil
	}

	scores, err := s.scorer.Score(ctx, query, docs)
	if err != nil {
		return nil, fmt.Errorf("scoring documents: %w", err)
	}

	if len(scores) != len(docs) {
		return nil, fmt.Errorf("scorer returned %d scores for %d documents", len(scores), len(docs))
	}

	type scored struct {
		text  string
		score float64
	}

	ranked := make([]scored, len(docs))
	for i, doc := range docs {
		ranked[i] = scored{text: doc, score: scores[i]}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	s.logger.Debug("documents reranked",
		zap.Int("count", len(ranked)),
		zap.Float64("top_score", ranked[0].score))

	result := make([]string, len(ranked))
	for i, r := range ranked {
		result[i] = r.text
	}

	return result, nil
}
