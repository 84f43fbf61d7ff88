// Package ops exposes the HTTP health and stats side endpoint used by
// monitoring. The reservation protocol itself stays on the TCP line socket.
package ops

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"ms-teetime/internal/store"
)

type Handler struct {
	Store     *store.Store
	ConnCount func() int
}

type Stats struct {
	Users        int       `json:"users"`
	Reservations int       `json:"reservations"`
	Events       int       `json:"events"`
	TeeTimes     int       `json:"tee_times"`
	Connections  int       `json:"connections"`
	Timestamp    time.Time `json:"timestamp"`
}

// NewRouter wires the ops routes.
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/healthz", h.Health)
	r.Get("/stats", h.GetStats)
	return r
}

// Health reports liveness for load balancers and monitoring.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

// GetStats reports record and connection counts.
func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats := Stats{
		Users:        len(h.Store.GetAllUsers()),
		Reservations: len(h.Store.GetAllReservations()),
		Events:       len(h.Store.GetAllEvents()),
		TeeTimes:     len(h.Store.GetAllTeeTimes()),
		Timestamp:    time.Now(),
	}
	if h.ConnCount != nil {
		stats.Connections = h.ConnCount()
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stats)
}
