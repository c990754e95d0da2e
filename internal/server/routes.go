package server

import (
	"net/http"
	"strings"
)

// registerRoutes sets up all REST API routes on the mux.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	// System
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/version", s.handleVersion)
	mux.HandleFunc("/api/config", s.handleConfig)
	mux.HandleFunc("/api/shutdown", s.handleShutdown)

	// Positions
	mux.HandleFunc("/api/positions/", s.routePositions)
	mux.HandleFunc("/api/positions", s.handlePositions)

	// Trade ledger
	mux.HandleFunc("/api/trades/closed", s.handleClosedTrades)
	mux.HandleFunc("/api/trades", s.handleTrades)

	// Snapshots
	mux.HandleFunc("/api/snapshots/chart", s.handleSnapshotChart)
	mux.HandleFunc("/api/snapshots/prune", s.handleSnapshotPrune)
	mux.HandleFunc("/api/snapshots", s.handleSnapshots)

	// Analytics
	mux.HandleFunc("/api/analytics/winrate", s.handleWinRate)
	mux.HandleFunc("/api/analytics/holding", s.handleHoldingTime)
	mux.HandleFunc("/api/analytics/monthly", s.handleMonthlyPL)
	mux.HandleFunc("/api/analytics/sharpe", s.handleSharpe)
	mux.HandleFunc("/api/analytics/sectors", s.handleSectors)
	mux.HandleFunc("/api/analytics/summary", s.handleAnalyticsSummary)

	// Advisor
	mux.HandleFunc("/api/advisor/analyze/", s.handleAnalyze)
	mux.HandleFunc("/api/advisor/recommend/", s.handleRecommend)
	mux.HandleFunc("/api/advisor/tips", s.handleTips)
	mux.HandleFunc("/api/advisor/sweep", s.handleCacheSweep)

	// Technical indicators
	mux.HandleFunc("/api/indicators/screener", s.handleScreener)
	mux.HandleFunc("/api/indicators/", s.handleIndicators)
}

// routePositions dispatches /api/positions/{id} and
// /api/positions/{ticker}/price to the appropriate handler.
func (s *Server) routePositions(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/positions/")
	if path == "" {
		s.handlePositions(w, r)
		return
	}

	parts := strings.SplitN(path, "/", 2)
	if len(parts) == 2 && parts[1] == "price" {
		s.handlePositionPrice(w, r, parts[0])
		return
	}
	if len(parts) == 1 {
		s.handlePositionDelete(w, r, parts[0])
		return
	}

	WriteError(w, http.StatusNotFound, "Not found")
}
