package api

import "net/http"

// Route paths. itemsPath and itemsPrefix differ only by the trailing
// separator, which is exactly why registration order below matters.
const (
	rootPath    = "/"
	itemsPath   = "/api/v1/items"
	itemsPrefix = "/api/v1/items/"
	healthPath  = "/health"
	readyPath   = "/ready"
	metricsPath = "/metrics"
)

// registerRoutes builds the ordered dispatch table. The exact-match
// collection routes are registered before the prefix id routes so that
// GET /api/v1/items lists the collection instead of being swallowed by
// the id handler, and the root greeting comes last.
func (s *Server) registerRoutes() {
	// Health, readiness and metrics
	s.router.Handle(http.MethodGet, healthPath, MatchExact, s.handleHealth)
	s.router.Handle(http.MethodGet, readyPath, MatchExact, s.handleReady)
	s.router.Handle(http.MethodGet, metricsPath, MatchExact, s.handleMetrics)

	// Item collection
	s.router.Handle(http.MethodGet, itemsPath, MatchExact, s.handleListItems)
	s.router.Handle(http.MethodPost, itemsPath, MatchExact, s.handleCreateItem)

	// Single items, addressed by id after the prefix
	s.router.Handle(http.MethodGet, itemsPrefix, MatchPrefix, s.handleGetItem)
	s.router.Handle(http.MethodPut, itemsPrefix, MatchPrefix, s.handleUpdateItem)
	s.router.Handle(http.MethodDelete, itemsPrefix, MatchPrefix, s.handleDeleteItem)

	// Root greeting
	s.router.Handle(http.MethodGet, rootPath, MatchExact, s.handleRoot)
}
