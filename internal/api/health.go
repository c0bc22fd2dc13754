package api

import (
	"net/http"
	"time"

	"itemd/internal/version"
)

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
}

// ReadyResponse represents the readiness check response
type ReadyResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Items     int       `json:"items"`
	Capacity  int       `json:"capacity"`
}

// handleHealth responds to health check requests (simple liveness check)
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Version:   version.Version,
	}

	WriteJSON(w, response, http.StatusOK)
}

// handleReady responds to readiness check requests. Reading the fill
// level goes through Len, which reports the store as-is without
// triggering the lazy seed.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	items := s.store.Len()
	capacity := s.store.Capacity()

	status := "ready"
	if items >= capacity {
		status = "at_capacity"
	}

	response := ReadyResponse{
		Status:    status,
		Timestamp: time.Now().UTC(),
		Items:     items,
		Capacity:  capacity,
	}

	WriteJSON(w, response, http.StatusOK)
}
