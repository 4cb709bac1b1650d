package rerank

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockScorer struct {
	mock.Mock
}

func (m *MockScorer) Score(ctx context.Context, query string, docs []string) ([]float64, error) {
	args := m.Called(ctx, query, docs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]float64), args.Error(1)
}

func TestRerank_SortsByScoreDescending(t *testing.T) {
	scorer := new(MockScorer)
	docs := []string{"doc-a", "doc-b", "doc-c"}
	scorer.On("Score", mock.Anything, "query", docs).Return([]float64{0.1, 0.9, 0.5}, nil)

	service := NewService(scorer, zap.NewNop())
	result, err := service.Rerank(context.Background(), "query", docs)

	require.NoError(t, err)
	assert.Equal(t, []string{"doc-b", "doc-c", "doc-a"}, result)
}

func TestRerank_TiesKeepOriginalOrder(t *testing.T) {
	scorer := new(MockScorer)
	docs := []string{"first", "second", "third", "fourth"}
	scorer.On("Score", mock.Anything, "query", docs).Return([]float64{0.5, 0.9, 0.5, 0.5}, nil)

	service := NewService(scorer, zap.NewNop())
	result, err := service.Rerank(context.Background(), "query", docs)

	require.NoError(t, err)
	assert.Equal(t, []string{"second", "first", "third", "fourth"}, result)
}

func TestRerank_Idempotent(t *testing.T) {
	scorer := new(MockScorer)
	scorer.On("Score", mock.Anything, "query", []string{"a", "b", "c"}).
		Return([]float64{0.3, 0.9, 0.6}, nil)
	scorer.On("Score", mock.Anything, "query", []string{"b", "c", "a"}).
		Return([]float64{0.9, 0.6, 0.3}, nil)

	service := NewService(scorer, zap.NewNop())

	once, err := service.Rerank(context.Background(), "query", []string{"a", "b", "c"})
	require.NoError(t, err)

	twice, err := service.Rerank(context.Background(), "query", once)
	require.NoError(t, err)

	assert.Equal(t, once, twice)
}

func TestRerank_PreservesMultiset(t *testing.T) {
	scorer := new(MockScorer)
	docs := []string{"x", "y", "z"}
	scorer.On("Score", mock.Anything, "query", docs).Return([]float64{0.2, 0.8, 0.4}, nil)

	service := NewService(scorer, zap.NewNop())
	result, err := service.Rerank(context.Background(), "query", docs)

	require.NoError(t, err)
	assert.ElementsMatch(t, docs, result)
}

func TestRerank_EmptyInput(t *testing.T) {
	scorer := new(MockScorer)
	service := NewService(scorer, zap.NewNop())

	result, err := service.Rerank(context.Background(), "query", nil)

	require.NoError(t, err)
	assert.Empty(t, result)
	scorer.AssertNotCalled(t, "Score")
}

func TestRerank_ScorerError(t *testing.T) {
	scorer := new(MockScorer)
	scorer.On("Score", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("model not loaded"))

	service := NewService(scorer, zap.NewNop())
	_, err := service.Rerank(context.Background(), "query", []string{"a"})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "scoring documents")
}

func TestRerank_ScoreCountMismatch(t *testing.T) {
	scorer := new(MockScorer)
	scorer.On("Score", mock.Anything, mock.Anything, mock.Anything).
		Return([]float64{0.5}, nil)

	service := NewService(scorer, zap.NewNop())
	_, err := service.Rerank(context.Background(), "query", []string{"a", "b"})

	assert.Error(t, err)
}

func TestHTTPScorer_Score(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"results":[
			{"index":1,"relevance_score":0.91},
			{"index":0,"relevance_score":0.42}
		]}`))
	}))
	defer server.Close()

	scorer := NewHTTPScorer(server.URL, "cross-encoder/ms-marco-MiniLM-L-6-v2", 5*time.Second)
	scores, err := scorer.Score(context.Background(), "query", []string{"a", "b"})

	require.NoError(t, err)
	assert.InDelta(t, 0.42, scores[0], 1e-9)
	assert.InDelta(t, 0.91, scores[1], 1e-9)
}

func TestHTTPScorer_Score_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model loading", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	scorer := NewHTTPScorer(server.URL, "cross-encoder/ms-marco-MiniLM-L-6-v2", 5*time.Second)
	_, err := scorer.Score(context.Background(), "query", []string{"a"})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestHTTPScorer_Score_CountMismatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results":[{"index":0,"relevance_score":0.5}]}`))
	}))
	defer server.Close()

	scorer := NewHTTPScorer(server.URL, "cross-encoder/ms-marco-MiniLM-L-6-v2", 5*time.Second)
	_, err := scorer.Score(context.Background(), "query", []string{"a", "b"})

	assert.Error(t, err)
}

func TestHTTPScorer_Score_EmptyDocs(t *testing.T) {
	scorer := NewHTTPScorer("http://localhost:0", "model", time.Second)
	scores, err := scorer.Score(context.Background(), "query", nil)

	require.NoError(t, err)
	assert.Nil(t, scores)
}
