package server

import (
	"fmt"
	"net/http"
	"strconv"
)

// --- Analytics handlers ---

func (s *Server) handleWinRate(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	stats, err := s.app.AnalyticsService.WinRate(r.Context())
	if err != nil {
		WriteError(w, http.StatusInternalServerError, fmt.Sprintf("Error computing win rate: %v", err))
		return
	}

	WriteJSON(w, http.StatusOK, stats)
}

func (s *Server) handleHoldingTime(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	stats, err := s.app.AnalyticsService.HoldingTime(r.Context())
	if err != nil {
		WriteError(w, http.StatusInternalServerError, fmt.Sprintf("Error computing holding time: %v", err))
		return
	}

	WriteJSON(w, http.StatusOK, stats)
}

func (s *Server) handleMonthlyPL(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	months := 0
	if raw := r.URL.Query().Get("months"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			WriteError(w, http.StatusBadRequest, "months must be a non-negative integer")
			return
		}
		months = n
	}

	monthly, err := s.app.AnalyticsService.MonthlyPL(r.Context(), months)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, fmt.Sprintf("Error computing monthly P/L: %v", err))
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"monthly_pl": monthly,
	})
}

func (s *Server) handleSharpe(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	riskFree := s.app.Config.Analytics.RiskFreeRate
	if raw := r.URL.Query().Get("risk_free_rate"); raw != "" {
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil || f < 0 {
			WriteError(w, http.StatusBadRequest, "risk_free_rate must be a non-negative number")
			return
		}
		riskFree = f
	}

	stats, err := s.app.AnalyticsService.Sharpe(r.Context(), riskFree)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, fmt.Sprintf("Error computing Sharpe ratio: %v", err))
		return
	}

	WriteJSON(w, http.StatusOK, stats)
}

func (s *Server) handleSectors(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	sectors, err := s.app.AnalyticsService.SectorPerformance(r.Context())
	if err != nil {
		WriteError(w, http.StatusInternalServerError, fmt.Sprintf("Error computing sector performance: %v", err))
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"sectors": sectors,
	})
}

func (s *Server) handleAnalyticsSummary(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	summary, err := s.app.AnalyticsService.Summary(r.Context())
	if err != nil {
		WriteError(w, http.StatusInternalServerError, fmt.Sprintf("Error computing analytics summary: %v", err))
		return
	}

	WriteJSON(w, http.StatusOK, summary)
}
