// Package server exposes the matching engine over HTTP.
//
// It produces the same wire contract the remote match client consumes,
// so one Prospect instance can serve as another's semantic backend:
// POST /api/similar-projects and GET /api/health, plus read-only
// analytics and record lookup endpoints.
package server

import (
	"net/http"

	"github.com/hurttlocker/prospect/internal/catalog"
	"github.com/hurttlocker/prospect/internal/remote"
	"go.uber.org/zap"
)

// New builds the HTTP server around a dataset store and a matcher.
func New(addr string, store *catalog.Store, matcher remote.Matcher, log *zap.Logger) *http.Server {
	if log == nil {
		log = zap.NewNop()
	}
	handlers := newHandlers(store, matcher, log)

	mux := http.NewServeMux()
	mux.HandleFunc("/api/similar-projects", handlers.handleSimilarProjects)
	mux.HandleFunc("/api/health", handlers.handleHealth)
	mux.HandleFunc("/api/analytics", handlers.handleAnalytics)
	mux.HandleFunc("/api/projects", handlers.handleProject)
	mux.HandleFunc("/api/combinations", handlers.handleCombinations)

	return &http.Server{
		Addr:    addr,
		Handler: mux,
	}
}
