package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/steamlens/steamlens/utils"
	"go.uber.org/zap"
)

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// IndexChecker reports the number of indexed documents
type IndexChecker interface {
	Count(ctx context.Context) (int, error)
}

// ProviderChecker reports whether a model provider is reachable
type ProviderChecker interface {
	Name() string
	IsAvailable(ctx context.Context) bool
}

// HealthHandler handles health-related HTTP requests
type HealthHandler struct {
	index     IndexChecker
	providers []ProviderChecker
	logger    *zap.Logger
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(index IndexChecker, providers []ProviderChecker, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		index:     index,
		providers: providers,
		logger:    logger,
	}
}

// HandleHealth handles GET /healthz
// Basic health check - always returns 200 if service is running
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	_ = utils.WriteOK(w, response)
}

// HandleReadiness handles GET /readyz
// Readiness check - validates that the index and providers are available
func (h *HealthHandler) HandleReadiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	checks := make(map[string]string)
	allHealthy := true

	if count, err := h.index.Count(ctx); err != nil {
		h.logger.Warn("index health check failed", zap.Error(err))
		checks["index"] = "unhealthy"
		allHealthy = false
	} else if count == 0 {
		checks["index"] = "empty"
		allHealthy = false
	} else {
		checks["index"] = "healthy"
	}

	for _, provider := range h.providers {
		if provider.IsAvailable(ctx) {
			checks["provider:"+provider.Name()] = "healthy"
		} else {
			h.logger.Warn("provider health check failed",
				zap.String("provider", provider.Name()))
			checks["provider:"+provider.Name()] = "unhealthy"
			allHealthy = false
		}
	}

	status := "healthy"
	httpStatus := http.StatusOK
	if !allHealthy {
		status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable
	}

	response := HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
	}

	if err := utils.WriteJSON(w, httpStatus, response); err != nil {
		h.logger.Error("failed to write readiness response", zap.Error(err))
	}
}
