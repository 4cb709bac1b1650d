// Package memory provides an in-process vector store backed by brute-force
// cosine similarity. Suitable for tests and small catalogs.
package memory

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/steamlens/steamlens/models"
)

// Store is an in-memory vector store
type Store struct {
	mu   sync.RWMutex
	docs []models.Document
}

// NewStore creates an empty in-memory vector store
func NewStore() *Store {
	return &Store{}
}

// Add inserts documents with their embeddings
func (s *Store) Add(ctx context.Context, docs []models.Document) error {
	for _, doc := range docs {
		if len(doc.Embedding) == 0 {
			return fmt.Errorf("document %s has no embedding", doc.ID)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs = append(s.docs, docs...)
	return nil
}

// Search returns the k most similar documents by cosine similarity.
// Equal scores preserve insertion order.
func (s *Store) Search(ctx context.Context, vector []float32, k int) ([]models.Candidate, error) {
	if k <= 0 {
		return nil, fmt.Errorf("k must be positive, got %d", k)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	candidates := make([]models.Candidate, 0, len(s.docs))
	for _, doc := range s.docs {
		score, err := cosineSimilarity(vector, doc.Embedding)
		if err != nil {
			return nil, fmt.Errorf("scoring document %s: %w", doc.ID, err)
		}
		candidates = append(candidates, models.Candidate{Document: doc, Score: score})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})

	if len(candidates) > k {
		candidates = candidates[:k]
	}
	return candidates, nil
}

// Count returns the number of indexed documents
func (s *Store) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs), nil
}

// Close is a no-op for the in-memory store
func (s *Store) Close() error {
	return nil
}

// cosineSimilarity computes the cosine of the angle between two vectors
func cosineSimilarity(a, b []float32) (float32, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("dimension mismatch: %d vs %d", len(a), len(b))
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0, nil
	}

	return float32(dot / (math.Sqrt(normA) * math.Sqrt(normB))), nil
}
