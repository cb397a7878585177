package server

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/PantryBook_Go/internal/domain"
	"github.com/osse101/PantryBook_Go/internal/handler"
	"github.com/osse101/PantryBook_Go/internal/session"
	"github.com/osse101/PantryBook_Go/internal/sse"
)

// stubBackend answers every backend call with fixed data
type stubBackend struct {
	healthErr error
}

func (s *stubBackend) SearchIngredients(context.Context, string) ([]domain.IngredientRef, error) {
	return []domain.IngredientRef{{ID: "1", Name: "Flour"}}, nil
}

func (s *stubBackend) CreateRecipe(context.Context, domain.RecipeDraft) error { return nil }

func (s *stubBackend) ListRecipes(context.Context) ([]domain.Recipe, error) { return nil, nil }

func (s *stubBackend) ComputeNutrition(context.Context, []domain.NutritionItem) (map[string]float64, error) {
	return map[string]float64{}, nil
}

func (s *stubBackend) GetList(context.Context, domain.ListKind) ([]domain.ListItem, error) {
	return []domain.ListItem{{ID: "a", Name: "Tomato"}}, nil
}

func (s *stubBackend) AddToList(context.Context, domain.ListKind, []domain.ListItemInput) error {
	return nil
}

func (s *stubBackend) DeleteFromList(context.Context, domain.ListKind, []string) error { return nil }

func (s *stubBackend) CheckHealth(context.Context) error { return s.healthErr }

const testAPIKey = "router-key"

func newTestRouter(t *testing.T, backend *stubBackend) http.Handler {
	t.Helper()
	hub := sse.NewHub()
	hub.Start()
	t.Cleanup(hub.Stop)

	registry := session.NewRegistry(session.Deps{
		Catalog:   backend,
		Recipes:   backend,
		Nutrition: backend,
		Lists:     backend,
		Hub:       hub,
	}, 10, time.Hour)
	t.Cleanup(registry.Close)

	return NewRouter(Options{
		APIKey:   testAPIKey,
		Version:  "1.2.3",
		Sessions: handler.NewSessionHandlers(registry, nil),
		Hub:      hub,
		Ready:    map[string]handler.HealthChecker{"backend": backend},
	})
}

func authed(method, path, body string) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(HeaderAPIKey, testAPIKey)
	return req
}

func createSession(t *testing.T, router http.Handler) string {
	t.Helper()
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authed("POST", "/api/v1/sessions", ""))
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp handler.CreateSessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.SessionID
}

func TestRouter_PublicEndpoints(t *testing.T) {
	router := newTestRouter(t, &stubBackend{})

	tests := []struct {
		path     string
		wantCode int
		wantBody string
	}{
		{"/healthz", http.StatusOK, `"status":"ok"`},
		{"/readyz", http.StatusOK, `"status":"ok"`},
		{"/version", http.StatusOK, `"version":"1.2.3"`},
		{"/metrics", http.StatusOK, "go_goroutines"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest("GET", tt.path, nil))
			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
		})
	}
}

func TestRouter_ReadyzBackendDown(t *testing.T) {
	router := newTestRouter(t, &stubBackend{healthErr: errors.New("down")})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/readyz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestRouter_RequiresAPIKey(t *testing.T) {
	router := newTestRouter(t, &stubBackend{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("POST", "/api/v1/sessions", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_EditorAndListRoutes(t *testing.T) {
	router := newTestRouter(t, &stubBackend{})
	id := createSession(t, router)
	base := "/api/v1/sessions/" + id

	steps := []struct {
		method   string
		path     string
		body     string
		wantCode int
	}{
		{"POST", base + "/editor/open", "", http.StatusOK},
		{"POST", base + "/editor/ingredients", `{"id":"1"}`, http.StatusOK},
		{"PUT", base + "/editor/ingredients/1/quantity", `{"quantity":"2 cups"}`, http.StatusOK},
		{"POST", base + "/editor/steps", `{"step":"Knead"}`, http.StatusOK},
		{"PUT", base + "/editor/name", `{"name":"Dough"}`, http.StatusOK},
		{"PUT", base + "/editor/preparation-time", `{"minutes":15}`, http.StatusOK},
		{"POST", base + "/editor/nutrition", "", http.StatusOK},
		{"POST", base + "/editor/submit", "", http.StatusCreated},
		{"GET", base + "/lists/", "", http.StatusOK},
		{"PUT", base + "/lists/tab", `{"tab":"shopping"}`, http.StatusOK},
		{"POST", base + "/lists/checked", `{"id":"a","checked":true}`, http.StatusOK},
		{"POST", base + "/lists/delete", "", http.StatusOK},
		{"POST", base + "/lists/delete/confirm", "", http.StatusOK},
		{"GET", base + "/catalog?term=fl", "", http.StatusOK},
		{"GET", base + "/recipes", "", http.StatusOK},
		{"DELETE", base + "/", "", http.StatusOK},
		{"GET", base + "/editor/", "", http.StatusNotFound},
	}
	for _, s := range steps {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, authed(s.method, s.path, s.body))
		require.Equal(t, s.wantCode, rec.Code, "%s %s: %s", s.method, s.path, rec.Body.String())
	}
}

func TestRouter_EventStream(t *testing.T) {
	router := newTestRouter(t, &stubBackend{})
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	id := createSession(t, router)

	t.Run("unknown session", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/api/v1/sessions/nope/events?api_key=" + testAPIKey)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("connected event", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		req, err := http.NewRequestWithContext(ctx, "GET", srv.URL+"/api/v1/sessions/"+id+"/events?api_key="+testAPIKey, nil)
		require.NoError(t, err)

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

		reader := bufio.NewReader(resp.Body)
		_, err = reader.ReadString('\n') // id line
		require.NoError(t, err)
		line, err := reader.ReadString('\n')
		require.NoError(t, err)
		assert.Equal(t, "event: "+sse.EventTypeConnected+"\n", line)
	})
}
