// Package server exposes the engine's observability surface over HTTP:
// Prometheus metrics, the latest result, and the strategy catalogue.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/eulerlabs/euler/internal/engine"
	"github.com/eulerlabs/euler/internal/metrics"
	"github.com/eulerlabs/euler/internal/weights"
)

// Server wraps an http.Server over the engine's read-only endpoints.
type Server struct {
	engine *engine.Engine
	http   *http.Server
}

// New builds the router and server. The metrics registry may be nil, in
// which case /metrics is omitted.
func New(addr string, eng *engine.Engine, m *metrics.Registry) *Server {
	router := mux.NewRouter()

	s := &Server{engine: eng}
	router.HandleFunc("/status", s.handleStatus).Methods(http.MethodGet)
	router.HandleFunc("/strategies", s.handleStrategies).Methods(http.MethodGet)
	if m != nil {
		router.Handle("/metrics", promhttp.HandlerFor(m.Gatherer(), promhttp.HandlerOpts{}))
	}

	s.http = &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	return s
}

// Start serves until Shutdown. Intended to run in its own goroutine.
func (s *Server) Start() {
	log.Info().Str("addr", s.http.Addr).Msg("status server listening")
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error().Err(err).Msg("status server failed")
	}
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	result := s.engine.LastResult()
	if result == nil {
		http.Error(w, `{"error":"no result yet"}`, http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, result)
}

func (s *Server) handleStrategies(w http.ResponseWriter, r *http.Request) {
	registry := s.engine.Strategies()
	out := make([]strategyStatus, 0)
	for _, m := range registry.Methods() {
		info, err := registry.Describe(m)
		if err != nil {
			continue
		}
		out = append(out, strategyStatus{
			Method: m.String(),
			Info:   info,
			Active: m == registry.Active(),
		})
	}
	writeJSON(w, out)
}

type strategyStatus struct {
	Method string       `json:"method"`
	Info   weights.Info `json:"info"`
	Active bool         `json:"active"`
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("encode response failed")
	}
}
