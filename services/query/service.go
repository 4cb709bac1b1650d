// Package query orchestrates the full question answering flow: session
// handling, routing, retrieval, and answer generation.
package query

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/steamlens/steamlens/services"
	"go.uber.org/zap"
)

// Retriever fetches relevant catalog context for a query
type Retriever interface {
	Retrieve(ctx context.Context, query string) ([]string, error)
}

// Composer generates an answer from query, context, and history
type Composer interface {
	Compose(ctx context.Context, query string, docs []string, history string) (string, error)
}

// ConversationStore tracks per-session chat history
type ConversationStore interface {
	Has(sessionID string) bool
	Create(sessionID string)
	Append(sessionID, query, answer string)
	RenderHistory(sessionID string) string
}

// Router decides whether a query needs data beyond the catalog
type Router interface {
	NeedsAnalysis(ctx context.Context, query string) (bool, error)
}

// Result is the outcome of answering a query
type Result struct {
	Answer           string
	SessionID        string
	AnalysisRequired bool
}

// Service answers user queries against the game catalog
type Service struct {
	retriever Retriever
	composer  Composer
	memory    ConversationStore
	router    Router
	logger    *zap.Logger
}

// NewService creates a query service
func NewService(retriever Retriever, composer Composer, memory ConversationStore, router Router, logger *zap.Logger) *Service {
	return &Service{
		retriever: retriever,
		composer:  composer,
		memory:    memory,
		router:    router,
		logger:    logger,
	}
}

// Answer runs the full pipeline for a query. A blank session ID starts a
// new session. Routing failures are logged and treated as answerable so
// a flaky classifier never blocks the pipeline.
func (s *Service) Answer(ctx context.Context, queryText, sessionID string) (*Result, error) {
	if strings.TrimSpace(queryText) == "" {
		return nil, services.ErrEmptyQuery
	}

	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	if !s.memory.Has(sessionID) {
		s.memory.Create(sessionID)
	}

	analysisRequired, err := s.router.NeedsAnalysis(ctx, queryText)
	if err != nil {
		s.logger.Warn("query routing failed, proceeding with catalog answer",
			zap.String("session_id", sessionID),
			zap.Error(err))
		analysisRequired = false
	}

	history := s.memory.RenderHistory(sessionID)

	docs, err := s.retriever.Retrieve(ctx, queryText)
	if err != nil {
		return nil, err
	}

	answer, err := s.composer.Compose(ctx, queryText, docs, history)
	if err != nil {
		return nil, err
	}

	s.memory.Append(sessionID, queryText, answer)

	s.logger.Info("query answered",
		zap.String("session_id", sessionID),
		zap.Int("context_docs", len(docs)),
		zap.Bool("analysis_required", analysisRequired))

	return &Result{
		Answer:           answer,
		SessionID:        sessionID,
		AnalysisRequired: analysisRequired,
	}, nil
}
