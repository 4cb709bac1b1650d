package services

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainError_Error(t *testing.T) {
	err := NewDomainError(ErrorTypeExternal, "embedding request failed", errors.New("connection refused"))
	assert.Equal(t, "embedding request failed: connection refused", err.Error())

	bare := NewDomainError(ErrorTypeValidation, "query text is required", nil)
	assert.Equal(t, "query text is required", bare.Error())
}

func TestDomainError_Is(t *testing.T) {
	err := NewDomainError(ErrorTypeNotFound, "session not found", nil)
	assert.True(t, errors.Is(err, ErrSessionNotFound))
	assert.False(t, errors.Is(err, ErrEmptyQuery))
}

func TestErrorTypeChecks(t *testing.T) {
	wrapped := fmt.Errorf("answering query: %w", ErrProviderUnavailable)

	assert.True(t, IsExternalError(wrapped))
	assert.False(t, IsValidationError(wrapped))
	assert.True(t, IsValidationError(ErrEmptyQuery))
	assert.False(t, IsNotFoundError(errors.New("plain")))
	assert.Equal(t, ErrorTypeInternal, GetErrorType(errors.New("plain")))
	assert.Equal(t, ErrorTypeExternal, GetErrorType(wrapped))
}

func TestWithDetail(t *testing.T) {
	err := NewDomainError(ErrorTypeValidation, "invalid input", nil).WithDetail("field", "query")
	assert.Equal(t, "query", GetErrorDetails(err)["field"])
	assert.Nil(t, GetErrorDetails(errors.New("plain")))
}
