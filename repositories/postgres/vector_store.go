package postgres

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/steamlens/steamlens/models"
	"go.uber.org/zap"
)

// VectorStore persists documents and embeddings in Postgres using the
// pgvector extension. Similarity search orders by cosine distance.
type VectorStore struct {
	db     *DB
	logger *zap.Logger
}

// NewVectorStore creates a Postgres-backed vector store
func NewVectorStore(db *DB, logger *zap.Logger) *VectorStore {
	return &VectorStore{
		db:     db,
		logger: logger,
	}
}

// Add inserts documents, replacing rows that share an ID
func (s *VectorStore) Add(ctx context.Context, docs []models.Document) error {
	query := `
		INSERT INTO game_documents (id, text, embedding)
		VALUES ($1, $2, $3::vector)
		ON CONFLICT (id) DO UPDATE SET text = EXCLUDED.text, embedding = EXCLUDED.embedding`

	for _, doc := range docs {
		if len(doc.Embedding) == 0 {
			return fmt.Errorf("document %s has no embedding", doc.ID)
		}

		id := doc.ID
		if id == "" {
			id = uuid.NewString()
		}

		if _, err := s.db.ExecContext(ctx, query, id, doc.Text, vectorLiteral(doc.Embedding)); err != nil {
			return fmt.Errorf("failed to insert document %s: %w", id, err)
		}
	}

	s.logger.Debug("documents inserted", zap.Int("count", len(docs)))
	return nil
}

// Search returns the k documents nearest to the query vector by cosine
// distance. Scores are reported as similarity (1 - distance).
func (s *VectorStore) Search(ctx context.Context, vector []float32, k int) ([]models.Candidate, error) {
	if k <= 0 {
		return nil, fmt.Errorf("k must be positive, got %d", k)
	}

	query := `
		SELECT id, text, 1 - (embedding <=> $1::vector) AS score
		FROM game_documents
		ORDER BY embedding <=> $1::vector
		LIMIT $2`

	rows, err := s.db.QueryContext(ctx, query, vectorLiteral(vector), k)
	if err != nil {
		return nil, fmt.Errorf("failed to search documents: %w", err)
	}
	defer rows.Close()

	var candidates []models.Candidate
	for rows.Next() {
		var c models.Candidate
		if err := rows.Scan(&c.Document.ID, &c.Document.Text, &c.Score); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		candidates = append(candidates, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate documents: %w", err)
	}

	return candidates, nil
}

// Count returns the number of stored documents
func (s *VectorStore) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM game_documents").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count documents: %w", err)
	}
	return count, nil
}

// Close closes the underlying connection pool
func (s *VectorStore) Close() error {
	return s.db.Close()
}

// vectorLiteral formats an embedding as a pgvector input literal
func vectorLiteral(vector []float32) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, v := range vector {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatFloat(float64(v), 'f', -1, 32))
	}
	b.WriteByte(']')
	return b.String()
}
