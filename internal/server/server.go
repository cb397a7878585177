package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/osse101/PantryBook_Go/internal/handler"
	"github.com/osse101/PantryBook_Go/internal/logger"
	"github.com/osse101/PantryBook_Go/internal/metrics"
	"github.com/osse101/PantryBook_Go/internal/sse"
)

// Options configures the session server
type Options struct {
	Port           int
	APIKey         string
	TrustedProxies []string
	Version        string

	Sessions *handler.SessionHandlers
	Hub      *sse.Hub
	Ready    map[string]handler.HealthChecker
}

type Server struct {
	httpServer *http.Server
}

// NewServer creates a new Server instance
func NewServer(opts Options) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", opts.Port),
			Handler:           NewRouter(opts),
			ReadHeaderTimeout: ReadHeaderTimeout,
			IdleTimeout:       IdleTimeout,
			// No WriteTimeout: SSE streams stay open for the life of a session
		},
	}
}

// NewRouter builds the HTTP routes of the session server
func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()

	// Middleware stack
	// Chi middleware executes in order defined (outermost to innermost)
	detector := NewSuspiciousActivityDetector(DefaultDetectorConfig())
	proxies := newProxyMatcher(opts.TrustedProxies)

	r.Use(SecurityHeadersMiddleware())
	r.Use(AuthMiddleware(opts.APIKey, proxies, detector))
	r.Use(SecurityLoggingMiddleware(proxies, detector))
	r.Use(RequestSizeLimitMiddleware(MaxRequestBodyBytes))
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(opts.Ready))

	// Version endpoint (public, for deployment verification)
	r.Get("/version", handler.HandleVersion(opts.Version))

	// Metrics endpoint (public, for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	h := opts.Sessions
	r.Route("/api/v1/sessions", func(r chi.Router) {
		r.Post("/", h.HandleCreateSession())

		r.Route("/{sessionID}", func(r chi.Router) {
			r.Delete("/", h.HandleDeleteSession())
			r.Get("/events", sse.Handler(opts.Hub, h.ResolveSession))
			r.Get("/catalog", h.HandleSearchCatalog())
			r.Get("/recipes", h.HandleGetRecipes())

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
	})

	return r
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK, // default status
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

func (rw *responseWriter) Flush() {
	if f, ok := rw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func isQuietPath(path string) bool {
	for _, p := range QuietPaths {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		if isQuietPath(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		// Honour a request id set by a fronting proxy
		requestID := r.Header.Get(HeaderRequestID)
		if requestID == "" {
			requestID = logger.GenerateRequestID()
		}
		w.Header().Set(HeaderRequestID, requestID)

		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)
		log := logger.FromContext(ctx)

		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		sanitizedHeaders := make(http.Header)
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, HeaderAuthorization) {
				sanitizedHeaders[k] = []string{RedactedValue}
			} else {
				sanitizedHeaders[k] = v
			}
		}
		log.Debug(LogMsgRequestHeaders, "headers", sanitizedHeaders)

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds())
	})
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
