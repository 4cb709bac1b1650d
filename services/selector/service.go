// Package selector interprets user queries with a lightweight chat model,
// resolving the requested result count and routing queries that need
// external analysis.
package selector

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/steamlens/steamlens/services/providers"
	"go.uber.org/zap"
)

const systemPrompt = "You are an assistant that extracts information from user queries."

const resultCountPromptTemplate = `You are an intelligent assistant that interprets user queries. Your task is to determine how many results the user is looking for based on their query.
If the user specifies a number of results, extract that number as an integer. If the user does not specify a number, return the default number of results: %d.

User Query: "%s"

How many results is the user looking for? Return only the number of results as an integer and nothing more.`

const analysisPromptTemplate = `I have a vector database where each document contains the following information about a game: game title, description, genre, publisher, and system requirements.

Given a user query about games, determine if the information in the database is sufficient to provide a response or if answering the query requires additional information from an external dataset.

Considerations:

Return 0 if the query can be fully answered using the game titles, descriptions, genres, publishers, or system requirements available in the database.
Return 1 if the query requires information that cannot be directly matched or inferred from the database (e.g., real-world sales data, external reviews, or subjective opinions).
For recommendations, assume the database can retrieve games matching a genre, title, or related metadata unless explicitly stated otherwise.
Query: %s

Output format:
<integer>, <reason>`

// Service resolves per-query retrieval parameters
type Service struct {
	chat     providers.ChatModel
	model    string
	defaultK int
	maxK     int
	logger   *zap.Logger
}

// NewService creates a selector service backed by a chat model
func NewService(chat providers.ChatModel, model string, defaultK, maxK int, logger *zap.Logger) *Service {
	return &Service{
		chat:     chat,
		model:    model,
		defaultK: defaultK,
		maxK:     maxK,
		logger:   logger,
	}
}

// ResolveK asks the model how many results the query requests. Responses
// that do not parse as a positive integer fall back to the default, and
// values above the configured ceiling are clamped.
func (s *Service) ResolveK(ctx context.Context, query string) (int, error) {
	prompt := fmt.Sprintf(resultCountPromptTemplate, s.defaultK, query)

	output, err := s.chat.Complete(ctx, &providers.CompletionRequest{
		Model:  s.model,
		System: systemPrompt,
		Prompt: prompt,
	})
	if err != nil {
		return 0, fmt.Errorf("resolving result count: %w", err)
	}

	k, err := strconv.Atoi(strings.TrimSpace(output))
	if err != nil || k < 1 {
		s.logger.Warn("result count response not a positive integer, using default",
			zap.String("response", output),
			zap.Int("default_k", s.defaultK))
		return s.defaultK, nil
	}

	if k > s.maxK {
		s.logger.Warn("result count exceeds ceiling, clamping",
			zap.Int("requested", k),
			zap.Int("max_k", s.maxK))
		return s.maxK, nil
	}

	return k, nil
}

// NeedsAnalysis asks the model whether the query needs data beyond the
// catalog. The model answers "<integer>, <reason>". Any response that
// does not start with 1 is treated as answerable from the catalog.
func (s *Service) NeedsAnalysis(ctx context.Context, query string) (bool, error) {
	prompt := fmt.Sprintf(analysisPromptTemplate, query)

	output, err := s.chat.Complete(ctx, &providers.CompletionRequest{
		Model:  s.model,
		System: systemPrompt,
		Prompt: prompt,
	})
	if err != nil {
		return false, fmt.Errorf("classifying query: %w", err)
	}

	parts := strings.SplitN(output, ",", 2)
	flag, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		s.logger.Warn("classifier response not parseable, assuming catalog is sufficient",
			zap.String("response", output))
		return false, nil
	}

	reason := ""
	if len(parts) == 2 {
		reason = strings.TrimSpace(parts[1])
	}
	s.logger.Debug("query classified",
		zap.Bool("analysis_required", flag == 1),
		zap.String("reason", reason))

	return flag == 1, nil
}
