// Package answer generates grounded responses from retrieved catalog
// context.
package answer

import (
	"context"
	"fmt"
	"strings"

	"github.com/steamlens/steamlens/services"
	"github.com/steamlens/steamlens/services/providers"
	"go.uber.org/zap"
)

const systemPrompt = "You are a helpful assistant knowledgeable about video games."

const answerPromptTemplate = `You are a knowledgeable assistant answering questions about video games. Use the context below to answer the user's question accurately and informatively.
If you do not know the answer, do not use information outside of the context, just respond with you do not know. Sound natural in your answer as well!

Chat History:
%s

Context:
%s

Question: %s

Answer:`

// Service composes answers with a generation model
type Service struct {
	chat           providers.ChatModel
	model          string
	maxContextDocs int
	logger         *zap.Logger
}

// NewService creates an answer service backed by a chat model
func NewService(chat providers.ChatModel, model string, maxContextDocs int, logger *zap.Logger) *Service {
	return &Service{
		chat:           chat,
		model:          model,
		maxContextDocs: maxContextDocs,
		logger:         logger,
	}
}

// Compose generates an answer to the query grounded in the given context
// documents. Context beyond the configured document limit is dropped, and
// the documents that remain are joined with blank lines in the order
// given. The model's answer is returned with surrounding whitespace
// stripped.
func (s *Service) Compose(ctx context.Context, query string, docs []string, history string) (string, error) {
	if len(docs) > s.maxContextDocs {
		docs = docs[:s.maxContextDocs]
	}

	contextText := strings.Join(docs, "\n\n")
	prompt := fmt.Sprintf(answerPromptTemplate, history, contextText, query)

	s.logger.Debug("composing answer",
		zap.Int("context_docs", len(docs)),
		zap.Int("prompt_chars", len(prompt)))

	output, err := s.chat.Complete(ctx, &providers.CompletionRequest{
		Model:  s.model,
		System: systemPrompt,
		Prompt: prompt,
	})
	if err != nil {
		return "", services.NewExternalError("failed to generate answer", err)
	}

	return strings.TrimSpace(output), nil
}
