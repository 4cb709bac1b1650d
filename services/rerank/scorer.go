package rerank

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Scorer computes cross-encoder relevance scores for query/document pairs
type Scorer interface {
	Score(ctx context.Context, query string, docs []string) ([]float64, error)
}

// HTTPScorer calls an external cross-encoder service. The service accepts
// a query and a list of documents and returns a relevance score per
// document index.
type HTTPScorer struct {
	endpoint string
	model    string
	client   *http.Client
}

// NewHTTPScorer creates a scorer for a rerank service endpoint
func NewHTTPScorer(endpoint, model string, timeout time.Duration) *HTTPScorer {
	return &HTTPScorer{
		endpoint: endpoint,
		model:    model,
		client:   &http.Client{Timeout: timeout},
	}
}

type rerankRequest struct {
	Model     string   `json:"model"`
	Query     string   `json:"query"`
	Documents []string `json:"documents"`
}

type rerankResponse struct {
	Results []struct {
		Index          int     `json:"index"`
		RelevanceScore float64 `json:"relevance_score"`
	} `json:"results"`
}

// Score posts the query and documents to the rerank service and returns
// scores aligned with the input document order.
func (s *HTTPScorer) Score(ctx context.Context, query string, docs []string) ([]float64, error) {
	if len(docs) == 0 {
		return nil, nil
	}

	body, err := json.Marshal(rerankRequest{
		Model:     s.model,
		Query:     query,
		Documents: docs,
	})
	if err != nil {
		return nil, fmt.Errorf("marshaling rerank request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating rerank request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling rerank service: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading rerank response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("rerank service returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var parsed rerankResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("decoding rerank response: %w", err)
	}

	if len(parsed.Results) != len(docs) {
		return nil, fmt.Errorf("rerank service returned %d scores for %d documents", len(parsed.Results), len(docs))
	}

	scores := make([]float64, len(docs))
	for _, result := range parsed.Results {
		if result.Index < 0 || result.Index >= len(docs) {
			return nil, fmt.Errorf("rerank result index %d out of range", result.Index)
		}
		scores[result.Index] = result.RelevanceScore
	}

	return scores, nil
}
