package services

import (
	"errors"
	"fmt"
)

// ErrorType represents the type/category of error
type ErrorType string

const (
	ErrorTypeNotFound   ErrorType = "not_found"
	ErrorTypeValidation ErrorType = "validation"
	ErrorTypeInternal   ErrorType = "internal"
	ErrorTypeExternal   ErrorType = "external"
)

// DomainError represents a structured error with additional context
type DomainError struct {
	Type    ErrorType
	Message string
	Err     error
	Details map[string]interface{}
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap implements errors.Unwrap
func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

// WithDetail adds a detail to the error
func (e *DomainError) WithDetail(key string, value interface{}) *DomainError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// NewDomainError creates a new domain error
func NewDomainError(errType ErrorType, message string, err error) *DomainError {
	return &DomainError{
		Type:    errType,
		Message: message,
		Err:     err,
	}
}

// NewValidationError creates a validation error
func NewValidationError(message string, err error) *DomainError {
	return NewDomainError(ErrorTypeValidation, message, err)
}

// NewInternalError creates an internal error
func NewInternalError(message string, err error) *DomainError {
	return NewDomainError(ErrorTypeInternal, message, err)
}

// NewExternalError creates an external provider error
func NewExternalError(message string, err error) *DomainError {
	return NewDomainError(ErrorTypeExternal, message, err)
}

// Domain error variables

var (
	ErrSessionNotFound = NewDomainError(ErrorTypeNotFound, "session not found", nil)

	ErrEmptyQuery = NewDomainError(ErrorTypeValidation, "query text is required", nil)

	ErrEmptyIndex = NewDomainError(ErrorTypeInternal, "vector index is empty", nil)

	ErrProviderUnavailable = NewDomainError(ErrorTypeExternal, "model provider unavailable", nil)
)

// IsNotFoundError checks if an error is a not found error
func IsNotFoundError(err error) bool {
	return isErrorType(err, ErrorTypeNotFound)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return isErrorType(err, ErrorTypeValidation)
}

// IsInternalError checks if an error is an internal error
func IsInternalError(err error) bool {
	return isErrorType(err, ErrorTypeInternal)
}

// IsExternalError checks if an error is an external provider error
func IsExternalError(err error) bool {
	return isErrorType(err, ErrorTypeExternal)
}

// GetErrorType returns the type of an error, or internal for unknown errors
func GetErrorType(err error) ErrorType {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Type
	}
	return ErrorTypeInternal
}

// GetErrorDetails returns the details of a domain error, or nil
func GetErrorDetails(err error) map[string]interface{} {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Details
	}
	return nil
}

func isErrorType(err error, t ErrorType) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Type == t
	}
	return false
}
