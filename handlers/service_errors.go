package handlers

import (
	"net/http"

	"github.com/steamlens/steamlens/services"
	"github.com/steamlens/steamlens/utils"
	"go.uber.org/zap"
)

// HandleServiceError maps domain errors to HTTP responses. Pipeline
// failures surface their message to the caller in the error body.
func HandleServiceError(w http.ResponseWriter, err error, logger *zap.Logger) {
	if err == nil {
		return
	}

	details := services.GetErrorDetails(err)

	switch {
	case services.IsValidationError(err):
		if writeErr := utils.WriteBadRequest(w, err.Error(), details); writeErr != nil {
			logger.Error("failed to write bad request response", zap.Error(writeErr))
		}

	case services.IsNotFoundError(err):
		if writeErr := utils.WriteNotFound(w, err.Error()); writeErr != nil {
			logger.Error("failed to write not found response", zap.Error(writeErr))
		}

	case services.IsExternalError(err):
		logger.Error("provider error", zap.Error(err))
		if writeErr := utils.WriteInternalServerError(w, err.Error()); writeErr != nil {
			logger.Error("failed to write internal error response", zap.Error(writeErr))
		}

	default:
		logger.Error("internal error", zap.Error(err),
			zap.String("error_type", string(services.GetErrorType(err))))
		if writeErr := utils.WriteInternalServerError(w, err.Error()); writeErr != nil {
			logger.Error("failed to write internal error response", zap.Error(writeErr))
		}
	}
}

// HandleValidationError handles validation errors from request parsing
func HandleValidationError(w http.ResponseWriter, err error, logger *zap.Logger) {
	if utils.IsValidationError(err) {
		fields := utils.GetValidationFields(err)
		details := make(map[string]interface{})
		for k, v := range fields {
			details[k] = v
		}
		if writeErr := utils.WriteBadRequest(w, "Validation failed", details); writeErr != nil {
			logger.Error("failed to write validation error response", zap.Error(writeErr))
		}
		return
	}

	if writeErr := utils.WriteBadRequest(w, err.Error(), nil); writeErr != nil {
		logger.Error("failed to write validation error response", zap.Error(writeErr))
	}
}
