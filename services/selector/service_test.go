package selector

import (
	"context"
	"errors"
	"testing"

	"github.com/steamlens/steamlens/services/providers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockChatModel struct {
	mock.Mock
}

func (m *MockChatModel) Name() string {
	return "mock"
}

func (m *MockChatModel) Complete(ctx context.Context, req *providers.CompletionRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func (m *MockChatModel) IsAvailable(ctx context.Context) bool {
	args := m.Called(ctx)
	return args.Bool(0)
}

func newTestService(chat providers.ChatModel) *Service {
	return NewService(chat, "gpt-4o-mini", 5, 50, zap.NewNop())
}

func TestResolveK(t *testing.T) {
	tests := []struct {
		name     string
		response string
		expected int
	}{
		{"plain integer", "3", 3},
		{"surrounding whitespace", "  7\n", 7},
		{"non-numeric falls back to default", "about ten", 5},
		{"empty falls back to default", "", 5},
		{"zero falls back to default", "0", 5},
		{"negative falls back to default", "-2", 5},
		{"above ceiling is clamped", "500", 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chat := new(MockChatModel)
			chat.On("Complete", mock.Anything, mock.Anything).Return(tt.response, nil)

			k, err := newTestService(chat).ResolveK(context.Background(), "recommend me some roguelikes")

			require.NoError(t, err)
			assert.Equal(t, tt.expected, k)
		})
	}
}

func TestResolveK_IncludesQueryInPrompt(t *testing.T) {
	chat := new(MockChatModel)
	chat.On("Complete", mock.Anything, mock.MatchedBy(func(req *providers.CompletionRequest) bool {
		return assert.ObjectsAreEqual("gpt-4o-mini", req.Model) &&
			len(req.Prompt) > 0
	})).Return("5", nil)

	_, err := newTestService(chat).ResolveK(context.Background(), "give me 5 strategy games")

	require.NoError(t, err)
	chat.AssertExpectations(t)
}

func TestResolveK_ProviderError(t *testing.T) {
	chat := new(MockChatModel)
	chat.On("Complete", mock.Anything, mock.Anything).Return("", errors.New("connection refused"))

	_, err := newTestService(chat).ResolveK(context.Background(), "any query")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "resolving result count")
}

func TestNeedsAnalysis(t *testing.T) {
	tests := []struct {
		name     string
		response string
		expected bool
	}{
		{"catalog sufficient", "0, the query asks about genres", false},
		{"analysis required", "1, the query needs sales data", true},
		{"bare integer", "1", true},
		{"whitespace around verdict", " 0 , descriptions cover it", false},
		{"unparseable defaults to false", "maybe, hard to say", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chat := new(MockChatModel)
			chat.On("Complete", mock.Anything, mock.Anything).Return(tt.response, nil)

			needed, err := newTestService(chat).NeedsAnalysis(context.Background(), "which game sold the most copies?")

			require.NoError(t, err)
			assert.Equal(t, tt.expected, needed)
		})
	}
}

func TestNeedsAnalysis_ProviderError(t *testing.T) {
	chat := new(MockChatModel)
	chat.On("Complete", mock.Anything, mock.Anything).Return("", errors.New("timeout"))

	_, err := newTestService(chat).NeedsAnalysis(context.Background(), "any query")

	assert.Error(t, err)
}
