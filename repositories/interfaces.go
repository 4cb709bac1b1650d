package repositories

import (
	"context"

	"github.com/steamlens/steamlens/models"
)

// VectorStore is the vector index boundary. The index is populated once by
// the catalog indexer and treated as read-only on the request path.
type VectorStore interface {
	// Add inserts documents with their embeddings into the index
	Add(ctx context.Context, docs []models.Document) error

	// Search returns the k nearest documents to the query vector,
	// most similar first
	Search(ctx context.Context, vector []float32, k int) ([]models.Candidate, error)

	// Count returns the number of indexed documents
	Count(ctx context.Context) (int, error)

	// Close releases resources held by the store
	Close() error
}
