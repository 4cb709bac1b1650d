package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/steamlens/steamlens/services/query"
	"github.com/steamlens/steamlens/utils"
	"go.uber.org/zap"
)

// QueryRequest is the body accepted by the query endpoints
type QueryRequest struct {
	Query     string `json:"query" validate:"required"`
	SessionID string `json:"session_id,omitempty" validate:"omitempty,uuid"`
}

// QueryResponse is the success body returned by the query endpoints
type QueryResponse struct {
	Result           string `json:"result"`
	SessionID        string `json:"session_id"`
	AnalysisRequired bool   `json:"analysis_required"`
}

// QueryService defines the interface for answering queries
type QueryService interface {
	Answer(ctx context.Context, queryText, sessionID string) (*query.Result, error)
}

// QueryHandler handles question answering HTTP requests
type QueryHandler struct {
	service QueryService
	logger  *zap.Logger
}

// NewQueryHandler creates a new QueryHandler
func NewQueryHandler(service QueryService, logger *zap.Logger) *QueryHandler {
	return &QueryHandler{
		service: service,
		logger:  logger,
	}
}

// HandleQuery handles POST /answer_query and POST /api/v1/query
func (h *QueryHandler) HandleQuery(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetReqID(ctx)

	var req QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("failed to parse request body",
			zap.String("request_id", requestID),
			zap.Error(err))
		_ = utils.WriteBadRequest(w, "Invalid request body", nil)
		return
	}

	if req.Query == "" {
		_ = utils.WriteBadRequest(w, "Query text is required", nil)
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		h.logger.Warn("request validation failed",
			zap.String("request_id", requestID),
			zap.Error(err))
		HandleValidationError(w, err, h.logger)
		return
	}

	h.logger.Debug("answering query",
		zap.String("request_id", requestID),
		zap.String("session_id", req.SessionID))

	result, err := h.service.Answer(ctx, req.Query, req.SessionID)
	if err != nil {
		h.logger.Error("failed to answer query",
			zap.String("request_id", requestID),
			zap.Error(err))
		HandleServiceError(w, err, h.logger)
		return
	}

	h.logger.Info("query answered",
		zap.String("request_id", requestID),
		zap.String("session_id", result.SessionID),
		zap.Bool("analysis_required", result.AnalysisRequired))

	if err := utils.WriteOK(w, QueryResponse{
		Result:           result.Answer,
		SessionID:        result.SessionID,
		AnalysisRequired: result.AnalysisRequired,
	}); err != nil {
		h.logger.Error("failed to write response",
			zap.String("request_id", requestID),
			zap.Error(err))
	}
}
