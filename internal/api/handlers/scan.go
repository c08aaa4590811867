package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/wonny/rugscan/internal/contracts"
	"github.com/wonny/rugscan/internal/scan"
	"github.com/wonny/rugscan/pkg/logger"
)

// Scanner runs and lists scans
type Scanner interface {
	Scan(ctx context.Context, mint string) (*contracts.ScanReport, error)
	History(ctx context.Context, mint string, limit int) ([]contracts.ScanReport, error)
}

// ScanHandler handles scan API endpoints
// ⭐ SSOT: 스캔 API 핸들러는 이 구조체에서만
type ScanHandler struct {
	scanner Scanner
	logger  *logger.Logger
}

// NewScanHandler creates a new scan handler
func NewScanHandler(scanner Scanner, log *logger.Logger) *ScanHandler {
	return &ScanHandler{
		scanner: scanner,
		logger:  log,
	}
}

// Scan scores a token
// GET /api/scan/{mint}
func (h *ScanHandler) Scan(w http.ResponseWriter, r *http.Request) {
	mint := mux.Vars(r)["mint"]

	report, err := h.scanner.Scan(r.Context(), mint)
	switch {
	case errors.Is(err, scan.ErrEmptyMint):
		respondError(w, http.StatusBadRequest, "Mint address is required")
		return
	case err != nil:
		h.logger.WithMint(mint).WithError(err).Error("Scan failed")
		respondError(w, http.StatusInternalServerError, "Scan failed")
		return
	}

	respondJSON(w, http.StatusOK, report)
}

// History lists recent scans of a token
// GET /api/scan/{mint}/history?limit=N
func (h *ScanHandler) History(w http.ResponseWriter, r *http.Request) {
	mint := mux.Vars(r)["mint"]

	limit := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		n, err := strconv.Atoi(limitStr)
		if err != nil || n < 1 {
			respondError(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = n
	}

	reports, err := h.scanner.History(r.Context(), mint, limit)
	switch {
	case errors.Is(err, scan.ErrHistoryDisabled):
		respondError(w, http.StatusServiceUnavailable, "Scan history is not enabled")
		return
	case errors.Is(err, scan.ErrEmptyMint):
		respondError(w, http.StatusBadRequest, "Mint address is required")
		return
	case err != nil:
		h.logger.WithMint(mint).WithError(err).Error("Failed to load scan history")
		respondError(w, http.StatusInternalServerError, "Failed to retrieve scan history")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"mint":  mint,
		"count": len(reports),
		"scans": reports,
	})
}

// MissingMint answers requests that reach the scan route without a mint
// GET /api/scan/
func (h *ScanHandler) MissingMint(w http.ResponseWriter, r *http.Request) {
	respondError(w, http.StatusBadRequest, "Mint address is required")
}
