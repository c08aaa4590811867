package handlers

import (
	"context"
	"net/http"
	"time"
)

// HealthCheck probes one dependency
type HealthCheck func(ctx context.Context) error

// HealthHandler reports service and dependency health
type HealthHandler struct {
	checks       map[string]HealthCheck
	breakerState func() string
}

// NewHealthHandler creates a health handler.
// breakerState may be nil.
func NewHealthHandler(checks map[string]HealthCheck, breakerState func() string) *HealthHandler {
	return &HealthHandler{
		checks:       checks,
		breakerState: breakerState,
	}
}

// Health returns 200 when every configured dependency answers, 503 otherwise
// GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	status := "ok"
	code := http.StatusOK
	deps := make(map[string]string, len(h.checks))

	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			deps[name] = err.Error()
			status = "degraded"
			code = http.StatusServiceUnavailable
			continue
		}
		deps[name] = "ok"
	}

	body := map[string]interface{}{
		"status":       status,
		"service":      "rugscan",
		"dependencies": deps,
	}
	if h.breakerState != nil {
		body["marketData"] = h.breakerState()
	}

	respondJSON(w, code, body)
}
