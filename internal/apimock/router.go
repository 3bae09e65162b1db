package apimock

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// NotFoundMessage is the body message for an unknown zpid.
const NotFoundMessage = "Property not found"

type handlers struct {
	fx Fixtures
}

// NewRouter returns the Property API routes over fx.
func NewRouter(fx Fixtures, logger *zap.Logger) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &handlers{fx: fx}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)
	// Browser front-ends served from another origin call the mock directly.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))

	r.Get("/properties/summary", h.summary)
	r.Get("/properties", h.list)
	r.Get("/property", h.detail)
	return r
}

func (h *handlers) summary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.fx.Summary)
}

func (h *handlers) list(w http.ResponseWriter, r *http.Request) {
	if h.fx.Properties == nil {
		writeJSON(w, http.StatusOK, []any{})
		return
	}
	writeJSON(w, http.StatusOK, h.fx.Properties)
}

func (h *handlers) detail(w http.ResponseWriter, r *http.Request) {
	zpid := r.URL.Query().Get("zpid")
	if zpid == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "zpid is required"})
		return
	}
	doc, ok := h.fx.Details[zpid]
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": NotFoundMessage})
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// requestLogger logs one line per request with the id set by middleware.RequestID.
func requestLogger(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			logger.Info("request",
				zap.String("request_id", middleware.GetReqID(r.Context())),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("query", r.URL.RawQuery),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
			)
		})
	}
}
