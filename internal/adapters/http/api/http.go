// Package api exposes the conversion service over HTTP.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	service "github.com/okian/clipmark/internal/app"
	"github.com/okian/clipmark/pkg/logger"
)

const (
	defaultMaxUploadBytes = 32 << 20
	requestTimeout        = 60 * time.Second
)

// Converter runs conversions for the HTTP handlers. Keeping it an interface
// lets tests substitute the service.
type Converter interface {
	Convert(ctx context.Context, req service.Request) (*service.Conversion, error)
	Inspect(ctx context.Context, req service.Request) (*service.Inspection, error)
}

// Option applies a configuration option to the Server.
type Option func(*Server)

// WithMaxUploadBytes caps the accepted request body size.
func WithMaxUploadBytes(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxUploadBytes = n
		}
	}
}

// WithLogger sets a custom logger for the handlers.
func WithLogger(logger logger.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Server wires HTTP routes for the conversion API.
type Server struct {
	maxUploadBytes int64
	logger         logger.Logger

	healthHandler  *HealthHandler
	statsHandler   *StatsHandler
	convertHandler *ConvertHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(conv Converter, statsProvider StatsProvider, opts ...Option) *Server {
	s := &Server{maxUploadBytes: defaultMaxUploadBytes}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	s.logger = s.logger.Named("api")

	s.healthHandler = NewHealthHandler()
	s.statsHandler = NewStatsHandler(statsProvider)
	s.convertHandler = NewConvertHandler(conv, s.maxUploadBytes, s.logger)
	return s
}

// NewRouter returns a chi router carrying the standard middleware stack.
func NewRouter() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))
	return r
}

// Register attaches all API routes to r.
func (s *Server) Register(_ context.Context, r chi.Router) {
	r.Get("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	r.Get("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	r.Post("/convert", MetricsMiddleware(s.convertHandler.HandleConvert, "convert"))
	r.Post("/inspect", MetricsMiddleware(s.convertHandler.HandleInspect, "inspect"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
