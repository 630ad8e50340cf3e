// Package api exposes the back office over HTTP: thin JSON wrappers around
// the storage layer and the analytics engine. Handlers load a series, call
// one engine function, and encode the result — no analytical logic lives here.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/stockpilot/stockpilot/internal/config"
	"github.com/stockpilot/stockpilot/internal/logger"
	"github.com/stockpilot/stockpilot/internal/storage"
)

// Server routes API requests to the store and the analytics engine.
type Server struct {
	store  *storage.Store
	cfg    config.AnalyticsConfig
	router *mux.Router
}

// NewServer creates a Server and registers all routes.
func NewServer(store *storage.Store, cfg config.AnalyticsConfig) *Server {
	s := &Server{
		store:  store,
		cfg:    cfg,
		router: mux.NewRouter(),
	}

	s.router.Use(loggingMiddleware)

	s.router.HandleFunc("/health", s.handleHealth).Methods("GET")

	api := s.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/products", s.handleCreateProduct).Methods("POST")
	api.HandleFunc("/products", s.handleListProducts).Methods("GET")
	api.HandleFunc("/products/{id}", s.handleGetProduct).Methods("GET")
	api.HandleFunc("/products/{id}", s.handleUpdateProduct).Methods("PUT")
	api.HandleFunc("/products/{id}", s.handleDeleteProduct).Methods("DELETE")
	api.HandleFunc("/sales", s.handleRecordSale).Methods("POST")

	api.HandleFunc("/analytics/trend", s.handleTrend).Methods("GET")
	api.HandleFunc("/analytics/forecast", s.handleForecast).Methods("GET")
	api.HandleFunc("/analytics/anomalies", s.handleAnomalies).Methods("GET")
	api.HandleFunc("/analytics/reorder/{id}", s.handleReorder).Methods("GET")
	api.HandleFunc("/analytics/abc", s.handleABC).Methods("GET")
	api.HandleFunc("/assistant", s.handleAssistant).Methods("POST")

	return s
}

// Handler returns the root http.Handler for the server.
func (s *Server) Handler() http.Handler {
	return s.router
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logger.Debug("%s %s (%v)", r.Method, r.URL.Path, time.Since(start))
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
