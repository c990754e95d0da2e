package server

import (
	"fmt"
	"net/http"
	"strconv"
)

// --- Snapshot handlers ---

// handleSnapshots handles GET /api/snapshots and POST /api/snapshots.
func (s *Server) handleSnapshots(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleSnapshotList(w, r)
	case http.MethodPost:
		s.handleSnapshotTake(w, r)
	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPost)
	}
}

func (s *Server) handleSnapshotList(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			WriteError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	snapshots, err := s.app.PortfolioService.ListSnapshots(r.Context(), limit)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, fmt.Sprintf("Error listing snapshots: %v", err))
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"snapshots": snapshots,
		"count":     len(snapshots),
	})
}

func (s *Server) handleSnapshotTake(w http.ResponseWriter, r *http.Request) {
	result, err := s.app.PortfolioService.TakeSnapshot(r.Context())
	if err != nil {
		WriteError(w, http.StatusInternalServerError, fmt.Sprintf("Error taking snapshot: %v", err))
		return
	}

	status := http.StatusCreated
	if !result.Saved {
		status = http.StatusOK
	}
	WriteJSON(w, status, result)
}

// handleSnapshotPrune handles POST /api/snapshots/prune.
func (s *Server) handleSnapshotPrune(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	days := s.app.Config.Analytics.SnapshotRetentionDays
	if raw := r.URL.Query().Get("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			WriteError(w, http.StatusBadRequest, "days must be a positive integer")
			return
		}
		days = n
	}

	count, err := s.app.PortfolioService.PruneSnapshots(r.Context(), days)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, fmt.Sprintf("Error pruning snapshots: %v", err))
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"pruned":         count,
		"retention_days": days,
	})
}

// handleSnapshotChart handles GET /api/snapshots/chart, returning a PNG.
func (s *Server) handleSnapshotChart(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	png, err := s.app.PortfolioService.RenderValueChart(r.Context())
	if err != nil {
		WriteError(w, http.StatusUnprocessableEntity, fmt.Sprintf("Error rendering chart: %v", err))
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(png)))
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}
