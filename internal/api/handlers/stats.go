package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/wonny/rugscan/internal/metrics"
	"github.com/wonny/rugscan/internal/stats"
	"github.com/wonny/rugscan/pkg/logger"
)

// StatsHandler serves the global usage counters
type StatsHandler struct {
	store   stats.Store
	metrics *metrics.Registry
	logger  *logger.Logger
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(store stats.Store, m *metrics.Registry, log *logger.Logger) *StatsHandler {
	return &StatsHandler{
		store:   store,
		metrics: m,
		logger:  log,
	}
}

// IncrementRequest is the body of POST /api/stats
type IncrementRequest struct {
	Type string `json:"type"` // visit, scan, share, moon
}

// Get returns the current counters
// GET /api/stats
func (h *StatsHandler) Get(w http.ResponseWriter, r *http.Request) {
	counters, err := h.store.Get(r.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to read stats")
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondJSON(w, http.StatusOK, counters)
}

// Increment bumps one counter and returns the new totals
// POST /api/stats
func (h *StatsHandler) Increment(w http.ResponseWriter, r *http.Request) {
	var req IncrementRequest
	// An empty body is treated as {} and fails the type check below
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		respondError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	kind, err := stats.ParseKind(req.Type)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid stat type")
		return
	}

	counters, err := h.store.Increment(r.Context(), kind)
	if err != nil {
		h.logger.WithError(err).WithField("kind", kind).Error("Failed to increment stats")
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	h.metrics.StatsEvent(string(kind))

	respondJSON(w, http.StatusOK, counters)
}
