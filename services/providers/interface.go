package providers

import (
	"context"
	"time"
)

// ChatModel performs single-shot, non-streaming text generation.
type ChatModel interface {
	// Name returns the provider name (e.g., "openai", "ollama")
	Name() string

	// Complete generates a completion for the given request
	Complete(ctx context.Context, req *CompletionRequest) (string, error)

	// IsAvailable checks if the provider is currently reachable
	IsAvailable(ctx context.Context) bool
}

// Embedder maps text to a fixed-length numeric vector.
type Embedder interface {
	// Name returns the provider name
	Name() string

	// Embed generates a vector embedding for the given text
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates embeddings for multiple texts
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

// CompletionRequest represents a unified completion request
type CompletionRequest struct {
	// Model identifier; the adapter's default chat model when empty
	Model string `json:"model"`

	// System is the system instruction
	System string `json:"system,omitempty"`

	// Prompt is the user message
	Prompt string `json:"prompt"`

	// Temperature controls randomness
	Temperature float64 `json:"temperature,omitempty"`

	// MaxTokens limits the response length
	MaxTokens int `json:"max_tokens,omitempty"`
}

// Config holds common configuration for provider adapters
type Config struct {
	// APIKey for authentication
	APIKey string

	// BaseURL for the API
	BaseURL string

	// ChatModel is the default generation model
	ChatModel string

	// EmbeddingModel is the default embedding model
	EmbeddingModel string

	// Timeout for requests
	Timeout time.Duration
}

// ProviderError represents an error from a provider
type ProviderError struct {
	// Provider that generated the error
	Provider string

	// Code is the error code
	Code string

	// Message is the error message
	Message string

	// StatusCode is the HTTP status code (if applicable)
	StatusCode int

	// Cause is the underlying error
	Cause error
}

// Error implements the error interface
func (e *ProviderError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

// Unwrap implements error unwrapping
func (e *ProviderError) Unwrap() error {
	return e.Cause
}

// NewProviderError creates a new provider error
func NewProviderError(provider, code, message string, statusCode int, cause error) *ProviderError {
	return &ProviderError{
		Provider:   provider,
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
		Cause:      cause,
	}
}
