package main

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xgenie/xgenie-api/internal/config"
	"github.com/xgenie/xgenie-api/internal/domain"
	"github.com/xgenie/xgenie-api/internal/generation"
	"github.com/xgenie/xgenie-api/internal/mocks"
	"github.com/xgenie/xgenie-api/internal/service/auth"
)

type nopProvider struct{}

func (nopProvider) ListModels(context.Context, string) ([]generation.ModelInfo, error) {
	return nil, nil
}

func (nopProvider) GenerateText(context.Context, string, generation.Request) (string, error) {
	return "", nil
}

func newTestApplication(t *testing.T, userID uuid.UUID) *application {
	t.Helper()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	orch, err := generation.NewOrchestrator(nopProvider{}, log, generation.Settings{
		DefaultAPIKey:  "server-key",
		PriorityModels: generation.DefaultPriorityModels(),
		BaselineModel:  "gemini-1.5-flash",
	})
	require.NoError(t, err)

	return &application{
		config: &config.Config{},
		logger: log,
		tokenValidator: &mocks.MockTokenValidator{
			ValidateTokenFn: func(_ context.Context, token string) (*auth.Claims, error) {
				if token != "good" {
					return nil, auth.ErrInvalidToken
				}
				return &auth.Claims{UserID: userID}, nil
			},
		},
		orchestrator: orch,
		draftService: &mocks.MockDraftService{
			ListDraftsFn: func(_ context.Context, id uuid.UUID, _, _ int) ([]*domain.Draft, error) {
				assert.Equal(t, userID, id)
				return []*domain.Draft{}, nil
			},
		},
		apiKeyService: &mocks.MockAPIKeyService{},
	}
}

func TestRouter(t *testing.T) {
	userID := uuid.New()
	router := newTestApplication(t, userID).setupRouter()

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		body   string
		status int
	}{
		{name: "health is public", method: http.MethodGet, path: "/health", status: http.StatusOK},
		{name: "drafts require auth", method: http.MethodGet, path: "/api/drafts", status: http.StatusUnauthorized},
		{name: "bad token", method: http.MethodGet, path: "/api/drafts", token: "bad", status: http.StatusUnauthorized},
		{name: "list drafts", method: http.MethodGet, path: "/api/drafts", token: "good", status: http.StatusOK},
		{name: "get draft not found", method: http.MethodGet, path: "/api/drafts/" + uuid.NewString(), token: "good", status: http.StatusNotFound},
		{name: "delete draft", method: http.MethodDelete, path: "/api/drafts/" + uuid.NewString(), token: "good", status: http.StatusNoContent},
		{name: "key status", method: http.MethodGet, path: "/api/keys", token: "good", status: http.StatusOK},
		{name: "save key", method: http.MethodPut, path: "/api/keys", token: "good", body: `{"api_key":"AIzaXYZ"}`, status: http.StatusOK},
		{name: "wrong method", method: http.MethodPatch, path: "/api/keys", token: "good", status: http.StatusMethodNotAllowed},
		{name: "unknown route", method: http.MethodGet, path: "/api/cards", token: "good", status: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body io.Reader
			if tt.body != "" {
				body = strings.NewReader(tt.body)
			}
			req := httptest.NewRequest(tt.method, tt.path, body)
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			assert.NotEmpty(t, rec.Header().Get("X-Trace-ID"))
		})
	}
}

func TestRouterHealthBody(t *testing.T) {
	router := newTestApplication(t, uuid.New()).setupRouter()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "unconfigured", body["database"])
	assert.Equal(t, true, body["default_credential"])
}
