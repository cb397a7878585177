package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/PantryBook_Go/internal/domain"
	"github.com/osse101/PantryBook_Go/internal/session"
	"github.com/osse101/PantryBook_Go/internal/worker"
)

var testCatalog = []domain.IngredientRef{
	{ID: "1", Name: "Flour"},
	{ID: "2", Name: "Water"},
	{ID: "3", Name: "Salt"},
}

type testServer struct {
	router   chi.Router
	registry *session.Registry
	backend  *MockBackend
}

func newTestServer(t *testing.T, pool *worker.Pool) *testServer {
	t.Helper()
	backend := &MockBackend{}
	registry := session.NewRegistry(session.Deps{
		Catalog:   backend,
		Recipes:   backend,
		Nutrition: backend,
		Lists:     backend,
	}, 10, time.Hour)
	t.Cleanup(registry.Close)

	h := NewSessionHandlers(registry, pool)
	r := chi.NewRouter()
	r.Post("/sessions", h.HandleCreateSession())
	r.Route("/sessions/{sessionID}", func(r chi.Router) {
		r.Delete("/", h.HandleDeleteSession())
		r.Get("/catalog", h.HandleSearchCatalog())
		r.Route("/editor", func(r chi.Router) {
			r.Get("/", h.HandleGetEditor())
			r.Post("/open", h.HandleOpenEditor())
			r.Post("/cancel", h.HandleCancelEditor())
			r.Get("/catalog", h.HandleEditorCatalog())
			r.Post("/ingredients", h.HandlePickIngredient())
			r.Delete("/ingredients/{ingredientID}", h.HandleRemoveIngredient())
			r.Put("/ingredients/{ingredientID}/quantity", h.HandleSetQuantity())
			r.Post("/steps", h.HandleAddStep())
			r.Delete("/steps/{index}", h.HandleRemoveStep())
			r.Put("/name", h.HandleSetName())
			r.Put("/preparation-time", h.HandleSetPreparationTime())
			r.Post("/nutrition", h.HandleRecomputeNutrition())
			r.Post("/submit", h.HandleSubmit())
		})
		r.Get("/recipes", h.HandleGetRecipes())
		r.Route("/lists", func(r chi.Router) {
			r.Get("/", h.HandleGetLists())
			r.Put("/tab", h.HandleSwitchTab())
			r.Put("/filter", h.HandleSetFilter())
			r.Post("/checked", h.HandleToggle())
			r.Post("/delete", h.HandleRequestDelete())
			r.Post("/delete/confirm", h.HandleConfirmDelete())
			r.Post("/delete/abort", h.HandleAbortDelete())
			r.Post("/picked", h.HandlePickForAdd())
			r.Delete("/picked/{ingredientID}", h.HandleUnpickForAdd())
			r.Post("/picked/save", h.HandleSaveAdded())
		})
	})
	return &testServer{router: r, registry: registry, backend: backend}
}

func (ts *testServer) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

func (ts *testServer) newSession(t *testing.T) string {
	t.Helper()
	w := ts.do(t, http.MethodPost, "/sessions", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	var resp CreateSessionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.SessionID
}

func TestHandleCreateAndDeleteSession(t *testing.T) {
	ts := newTestServer(t, nil)
	id := ts.newSession(t)
	assert.True(t, ts.registry.Exists(id))

	w := ts.do(t, http.MethodDelete, "/sessions/"+id+"/", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.False(t, ts.registry.Exists(id))

	w = ts.do(t, http.MethodDelete, "/sessions/"+id+"/", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestResolveSession(t *testing.T) {
	ts := newTestServer(t, nil)
	id := ts.newSession(t)
	h := NewSessionHandlers(ts.registry, nil)

	for _, tt := range []struct {
		name string
		id   string
		want bool
	}{
		{"live session", id, true},
		{"unknown session", "nope", false},
	} {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add(ParamSessionID, tt.id)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

			got, ok := h.ResolveSession(req)
			assert.Equal(t, tt.want, ok)
			assert.Equal(t, tt.id, got)
		})
	}
}

func TestHandleUnknownSession(t *testing.T) {
	ts := newTestServer(t, nil)

	tests := []struct {
		method string
		path   string
		body   interface{}
	}{
		{http.MethodPost, "/sessions/missing/editor/open", nil},
		{http.MethodGet, "/sessions/missing/editor/", nil},
		{http.MethodPost, "/sessions/missing/editor/steps", AddStepRequest{Step: "Mix"}},
		{http.MethodGet, "/sessions/missing/lists/", nil},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w := ts.do(t, tt.method, tt.path, tt.body)
			assert.Equal(t, http.StatusNotFound, w.Code)
			assert.Contains(t, w.Body.String(), ErrMsgSessionNotFound)
		})
	}
}

func TestHandleSearchCatalog(t *testing.T) {
	ts := newTestServer(t, nil)
	ts.backend.On("SearchIngredients", mock.Anything, "").Return(testCatalog, nil).Once()
	id := ts.newSession(t)

	w := ts.do(t, http.MethodGet, "/sessions/"+id+"/catalog?term=fl", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var got []domain.IngredientRef
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, []domain.IngredientRef{{ID: "1", Name: "Flour"}}, got)

	// Second search is served from the loaded catalog
	w = ts.do(t, http.MethodGet, "/sessions/"+id+"/catalog?term=", nil)
	require.Equal(t, http.StatusOK, w.Code)
	ts.backend.AssertExpectations(t)
}
