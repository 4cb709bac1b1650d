// Package qdrant provides a vector store backed by a Qdrant collection
// over gRPC.
package qdrant

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	qdrantclient "github.com/qdrant/go-client/qdrant"
	"github.com/steamlens/steamlens/models"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

const payloadTextKey = "text"

// Store is a Qdrant-backed vector store
type Store struct {
	conn        *grpc.ClientConn
	points      qdrantclient.PointsClient
	collections qdrantclient.CollectionsClient
	collection  string
}

// NewStore connects to Qdrant and returns a store bound to one collection
func NewStore(addr, collection string) (*Store, error) {
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("connecting to qdrant at %s: %w", addr, err)
	}

	return &Store{
		conn:        conn,
		points:      qdrantclient.NewPointsClient(conn),
		collections: qdrantclient.NewCollectionsClient(conn),
		collection:  collection,
	}, nil
}

// EnsureCollection creates the collection if missing. When recreate is true
// an existing collection is dropped first.
func (s *Store) EnsureCollection(ctx context.Context, vectorSize int, recreate bool) error {
	collections, err := s.collections.List(ctx, &qdrantclient.ListCollectionsRequest{})
	if err != nil {
		return fmt.Errorf("listing collections: %w", err)
	}

	exists := false
	for _, col := range collections.GetCollections() {
		if col.GetName() == s.collection {
			exists = true
			break
		}
	}

	if exists && recreate {
		if _, err := s.collections.Delete(ctx, &qdrantclient.DeleteCollection{
			CollectionName: s.collection,
		}); err != nil {
			return fmt.Errorf("deleting collection: %w", err)
		}
		exists = false
	}

	if !exists {
		_, err = s.collections.Create(ctx, &qdrantclient.CreateCollection{
			CollectionName: s.collection,
			VectorsConfig: &qdrantclient.VectorsConfig{
				Config: &qdrantclient.VectorsConfig_Params{
					Params: &qdrantclient.VectorParams{
						Size:     uint64(vectorSize),
						Distance: qdrantclient.Distance_Cosine,
					},
				},
			},
		})
		if err != nil {
			return fmt.Errorf("creating collection: %w", err)
		}
	}

	return nil
}

// Add upserts documents with their embeddings into the collection
func (s *Store) Add(ctx context.Context, docs []models.Document) error {
	points := make([]*qdrantclient.PointStruct, 0, len(docs))
	for _, doc := range docs {
		if len(doc.Embedding) == 0 {
			return fmt.Errorf("document %s has no embedding", doc.ID)
		}

		id := doc.ID
		if id == "" {
			id = uuid.NewString()
		}

		points = append(points, &qdrantclient.PointStruct{
			Id: &qdrantclient.PointId{
				PointIdOptions: &qdrantclient.PointId_Uuid{
					Uuid: id,
				},
			},
			Vectors: &qdrantclient.Vectors{
				VectorsOptions: &qdrantclient.Vectors_Vector{
					Vector: &qdrantclient.Vector{
						Data: doc.Embedding,
					},
				},
			},
			Payload: map[string]*qdrantclient.Value{
				payloadTextKey: {Kind: &qdrantclient.Value_StringValue{StringValue: doc.Text}},
			},
		})
	}

	if _, err := s.points.Upsert(ctx, &qdrantclient.UpsertPoints{
		CollectionName: s.collection,
		Points:         points,
	}); err != nil {
		return fmt.Errorf("upserting %d points: %w", len(points), err)
	}

	return nil
}

// Search returns the k nearest documents to the query vector
func (s *Store) Search(ctx context.Context, vector []float32, k int) ([]models.Candidate, error) {
	if k <= 0 {
		return nil, fmt.Errorf("k must be positive, got %d", k)
	}

	resp, err := s.points.Search(ctx, &qdrantclient.SearchPoints{
		CollectionName: s.collection,
		Vector:         vector,
		Limit:          uint64(k),
		WithPayload: &qdrantclient.WithPayloadSelector{
			SelectorOptions: &qdrantclient.WithPayloadSelector_Include{
				Include: &qdrantclient.PayloadIncludeSelector{
					Fields: []string{payloadTextKey},
				},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("searching collection %s: %w", s.collection, err)
	}

	candidates := make([]models.Candidate, 0, len(resp.GetResult()))
	for _, point := range resp.GetResult() {
		text := ""
		if textVal, ok := point.Payload[payloadTextKey]; ok {
			text = textVal.GetStringValue()
		}

		candidates = append(candidates, models.Candidate{
			Document: models.Document{
				ID:   point.GetId().GetUuid(),
				Text: text,
			},
			Score: point.GetScore(),
		})
	}

	return candidates, nil
}

// Count returns the number of points in the collection
func (s *Store) Count(ctx context.Context) (int, error) {
	resp, err := s.points.Count(ctx, &qdrantclient.CountPoints{
		CollectionName: s.collection,
	})
	if err != nil {
		return 0, fmt.Errorf("counting points: %w", err)
	}
	return int(resp.GetResult().GetCount()), nil
}

// Close closes the gRPC connection
func (s *Store) Close() error {
	return s.conn.Close()
}
