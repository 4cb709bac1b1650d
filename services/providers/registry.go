package providers

import (
	"fmt"

	"go.uber.org/zap"
)

// Registry manages provider instances by name
type Registry struct {
	chat      map[string]ChatModel
	embedders map[string]Embedder
	logger    *zap.Logger
}

// NewRegistry creates a new provider registry
func NewRegistry(logger *zap.Logger) *Registry {
	return &Registry{
		chat:      make(map[string]ChatModel),
		embedders: make(map[string]Embedder),
		logger:    logger,
	}
}

// RegisterChat registers a chat model provider
func (r *Registry) RegisterChat(provider ChatModel) {
	r.chat[provider.Name()] = provider
	r.logger.Info("chat provider registered", zap.String("provider", provider.Name()))
}

// RegisterEmbedder registers an embedding provider
func (r *Registry) RegisterEmbedder(provider Embedder) {
	r.embedders[provider.Name()] = provider
	r.logger.Info("embedding provider registered", zap.String("provider", provider.Name()))
}

// Chat retrieves a chat model provider by name
func (r *Registry) Chat(name string) (ChatModel, error) {
	provider, ok := r.chat[name]
	if !ok {
		return nil, fmt.Errorf("chat provider %q not registered", name)
	}
	return provider, nil
}

// Embedder retrieves an embedding provider by name
func (r *Registry) Embedder(name string) (Embedder, error) {
	provider, ok := r.embedders[name]
	if !ok {
		return nil, fmt.Errorf("embedding provider %q not registered", name)
	}
	return provider, nil
}

// Count returns the number of registered chat providers
func (r *Registry) Count() int {
	return len(r.chat)
}
