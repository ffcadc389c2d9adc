// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/okian/ufcradar/pkg/logger"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	RadarDependencies
	FighterDependencies
	CacheDependencies
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler   *HealthHandler
	statsHandler    *StatsHandler
	radarHandler    *RadarHandler
	fightersHandler *FightersHandler
	cacheHandler    *CacheHandler

	logger logger.Logger
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...Option) *Server {
	s := &Server{logger: logger.Discard()}
	for _, opt := range opts {
		opt(s)
	}
	s.healthHandler = NewHealthHandler()
	s.statsHandler = NewStatsHandler(statsProvider)
	s.radarHandler = NewRadarHandler(deps, s.logger)
	s.fightersHandler = NewFightersHandler(deps, s.logger)
	s.cacheHandler = NewCacheHandler(deps)
	return s
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))

	radar := MetricsMiddleware(RequestIDMiddleware(s.radarHandler.HandleGetRadar), "radar")
	mux.HandleFunc("/ufc/radar/", radar)
	mux.HandleFunc("/ufc/radar", radar)

	mux.HandleFunc("/fighters/known", MetricsMiddleware(RequestIDMiddleware(s.fightersHandler.HandleKnown), "fighters_known"))
	mux.HandleFunc("/admin/cache/invalidate", MetricsMiddleware(RequestIDMiddleware(s.cacheHandler.HandleInvalidate), "cache_invalidate"))
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

// writeServiceError maps err with statusFor and logs server-side failures.
func writeServiceError(ctx context.Context, log logger.Logger, op string, w http.ResponseWriter, err error) {
	status, code := statusFor(err)
	if status >= http.StatusInternalServerError {
		log.Error(ctx, "request failed", logger.String("op", op), logger.Error(err))
	}
	writeError(w, status, code, err)
}
