package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/steamlens/steamlens/services"
	"github.com/steamlens/steamlens/services/query"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockQueryService struct {
	mock.Mock
}

func (m *MockQueryService) Answer(ctx context.Context, queryText, sessionID string) (*query.Result, error) {
	args := m.Called(ctx, queryText, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*query.Result), args.Error(1)
}

func postQuery(t *testing.T, handler *QueryHandler, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/answer_query", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	handler.HandleQuery(rec, req)
	return rec
}

func TestHandleQuery_Success(t *testing.T) {
	service := new(MockQueryService)
	service.On("Answer", mock.Anything, "what is Hades?", "").
		Return(&query.Result{
			Answer:    "Hades is an action roguelike by Supergiant Games.",
			SessionID: "7c9e6679-7425-40de-944b-e07fc1f90ae7",
		}, nil)

	handler := NewQueryHandler(service, zap.NewNop())
	rec := postQuery(t, handler, `{"query":"what is Hades?"}`)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp QueryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Hades is an action roguelike by Supergiant Games.", resp.Result)
	assert.Equal(t, "7c9e6679-7425-40de-944b-e07fc1f90ae7", resp.SessionID)
	assert.False(t, resp.AnalysisRequired)
}

func TestHandleQuery_PassesSessionID(t *testing.T) {
	service := new(MockQueryService)
	service.On("Answer", mock.Anything, "follow up", "7c9e6679-7425-40de-944b-e07fc1f90ae7").
		Return(&query.Result{Answer: "answer", SessionID: "7c9e6679-7425-40de-944b-e07fc1f90ae7"}, nil)

	handler := NewQueryHandler(service, zap.NewNop())
	rec := postQuery(t, handler, `{"query":"follow up","session_id":"7c9e6679-7425-40de-944b-e07fc1f90ae7"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	service.AssertExpectations(t)
}

func TestHandleQuery_InvalidBody(t *testing.T) {
	service := new(MockQueryService)
	handler := NewQueryHandler(service, zap.NewNop())

	rec := postQuery(t, handler, `{not json`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	service.AssertNotCalled(t, "Answer")
}

func TestHandleQuery_MissingQuery(t *testing.T) {
	service := new(MockQueryService)
	handler := NewQueryHandler(service, zap.NewNop())

	for _, body := range []string{`{}`, `{"query":""}`, `{"other":"field"}`} {
		rec := postQuery(t, handler, body)

		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "Query text is required", resp["error"])
	}
	service.AssertNotCalled(t, "Answer")
}

func TestHandleQuery_InvalidSessionID(t *testing.T) {
	service := new(MockQueryService)
	handler := NewQueryHandler(service, zap.NewNop())

	rec := postQuery(t, handler, `{"query":"hi","session_id":"not-a-uuid"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	service.AssertNotCalled(t, "Answer")
}

func TestHandleQuery_PipelineErrorSurfacesMessage(t *testing.T) {
	service := new(MockQueryService)
	service.On("Answer", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, services.NewExternalError("failed to embed query", nil))

	handler := NewQueryHandler(service, zap.NewNop())
	rec := postQuery(t, handler, `{"query":"what is Hades?"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "failed to embed query", resp["error"])
}

func TestHandleQuery_ValidationErrorFromService(t *testing.T) {
	service := new(MockQueryService)
	service.On("Answer", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, services.ErrEmptyQuery)

	handler := NewQueryHandler(service, zap.NewNop())
	rec := postQuery(t, handler, `{"query":"   "}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
