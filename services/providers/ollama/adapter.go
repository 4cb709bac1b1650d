package ollama

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ollama/ollama/api"
	"github.com/steamlens/steamlens/services/providers"
)

// Adapter implements providers.ChatModel and providers.Embedder against a
// local Ollama server.
type Adapter struct {
	client *api.Client
	config providers.Config
}

// NewAdapter creates a new Ollama adapter
func NewAdapter(config providers.Config) (*Adapter, error) {
	if config.BaseURL == "" {
		config.BaseURL = "http://localhost:11434"
	}
	if config.Timeout == 0 {
		// Local generation can be slow on first model load
		config.Timeout = 5 * time.Minute
	}

	base, err := url.Parse(config.BaseURL)
	if err != nil {
		return nil, providers.NewProviderError("ollama", "INVALID_BASE_URL", "invalid Ollama base URL", 0, err)
	}

	client := api.NewClient(base, &http.Client{Timeout: config.Timeout})

	return &Adapter{
		client: client,
		config: config,
	}, nil
}

// Name returns the provider name
func (a *Adapter) Name() string {
	return "ollama"
}

// Complete performs a non-streaming chat completion
func (a *Adapter) Complete(ctx context.Context, req *providers.CompletionRequest) (string, error) {
	model := req.Model
	if model == "" {
		model = a.config.ChatModel
	}

	messages := make([]api.Message, 0, 2)
	if req.System != "" {
		messages = append(messages, api.Message{Role: "system", Content: req.System})
	}
	messages = append(messages, api.Message{Role: "user", Content: req.Prompt})

	stream := false
	chatReq := &api.ChatRequest{
		Model:    model,
		Messages: messages,
		Stream:   &stream,
	}
	if req.Temperature > 0 {
		chatReq.Options = map[string]interface{}{"temperature": req.Temperature}
	}

	var sb strings.Builder
	err := a.client.Chat(ctx, chatReq, func(resp api.ChatResponse) error {
		sb.WriteString(resp.Message.Content)
		return nil
	})
	if err != nil {
		return "", providers.NewProviderError(a.Name(), "CHAT_ERROR", "chat request failed", 0, err)
	}

	return sb.String(), nil
}

// Embed generates an embedding for a single text
func (a *Adapter) Embed(ctx context.Context, text string) ([]float32, error) {
	resp, err := a.client.Embeddings(ctx, &api.EmbeddingRequest{
		Model:  a.config.EmbeddingModel,
		Prompt: text,
	})
	if err != nil {
		return nil, providers.NewProviderError(a.Name(), "EMBEDDING_ERROR", "embedding request failed", 0, err)
	}

	vector := make([]float32, len(resp.Embedding))
	for i, v := range resp.Embedding {
		vector[i] = float32(v)
	}
	return vector, nil
}

// EmbedBatch generates embeddings one text at a time; the Ollama embeddings
// endpoint takes a single prompt per call.
func (a *Adapter) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		vector, err := a.Embed(ctx, text)
		if err != nil {
			return nil, err
		}
		vectors[i] = vector
	}
	return vectors, nil
}

// IsAvailable checks if the Ollama server responds to a heartbeat
func (a *Adapter) IsAvailable(ctx context.Context) bool {
	return a.client.Heartbeat(ctx) == nil
}
