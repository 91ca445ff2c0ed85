package web

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

// RegisterRoutes sets up all API routes on router. Routes are registered with
// their full paths on router itself: a PathPrefix subrouter answers a method
// mismatch with 404 instead of 405.
func RegisterRoutes(router *mux.Router, h *Handlers) {
	router.HandleFunc("/healthz", h.Healthz).Methods(http.MethodGet)

	router.HandleFunc("/api/timeline", h.GetTimeline).Methods(http.MethodGet)
	router.HandleFunc("/api/timeline.svg", h.GetTimelineSVG).Methods(http.MethodGet)
	router.HandleFunc("/api/columns", h.GetColumns).Methods(http.MethodGet)
	router.HandleFunc("/api/stats", h.GetStats).Methods(http.MethodGet)
	router.HandleFunc("/api/projects/{projectID}/stats", h.GetProjectStats).Methods(http.MethodGet)
	router.HandleFunc("/api/export", h.GetExport).Methods(http.MethodGet)
	router.HandleFunc("/api/import", h.PostImport).Methods(http.MethodPost)

	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", r.Method+" is not allowed on "+r.URL.Path)
	})
	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "no route for "+r.URL.Path)
	})
}

// NewRouter returns a router with every route registered and request
// logging enabled when h.Logger is set.
func NewRouter(h *Handlers) *mux.Router {
	router := mux.NewRouter()
	if h.Logger != nil {
		router.Use(logRequests(h.Logger))
	}
	RegisterRoutes(router, h)
	return router
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func logRequests(logger *slog.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)
			logger.InfoContext(r.Context(), "http_request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", rec.status,
				"duration_ms", time.Since(start).Milliseconds(),
			)
		})
	}
}
