package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/perolav/folio/internal/models"
)

// --- Advisor handlers ---

// handleAnalyze handles GET /api/advisor/analyze/{ticker}.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	ticker := PathParam(r, "/api/advisor/analyze/", "")
	if ticker == "" {
		WriteError(w, http.StatusBadRequest, "ticker is required in path")
		return
	}

	analysis, err := s.app.AdvisorService.AnalyzeTicker(r.Context(), ticker)
	if err != nil {
		WriteError(w, http.StatusBadGateway, fmt.Sprintf("Analysis failed: %v", err))
		return
	}

	WriteJSON(w, http.StatusOK, analysis)
}

// handleRecommend handles GET /api/advisor/recommend/{ticker}?kind=.
func (s *Server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	ticker := PathParam(r, "/api/advisor/recommend/", "")
	if ticker == "" {
		WriteError(w, http.StatusBadRequest, "ticker is required in path")
		return
	}

	kind := r.URL.Query().Get("kind")

	rec, err := s.app.AdvisorService.Recommend(r.Context(), ticker, kind)
	if err != nil {
		WriteError(w, http.StatusBadGateway, fmt.Sprintf("Recommendation failed: %v", err))
		return
	}

	WriteJSON(w, http.StatusOK, rec)
}

// handleTips handles GET /api/advisor/tips.
func (s *Server) handleTips(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	tips, err := s.app.AdvisorService.DailyTips(r.Context())
	if err != nil {
		WriteError(w, http.StatusBadGateway, fmt.Sprintf("Tips generation failed: %v", err))
		return
	}

	WriteJSON(w, http.StatusOK, tips)
}

// handleCacheSweep handles POST /api/advisor/sweep. It purges expired rows
// from every cache family on demand, same as the hourly background sweep.
func (s *Server) handleCacheSweep(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	counts, err := s.app.Storage.SweepCaches(r.Context())
	if err != nil {
		WriteError(w, http.StatusInternalServerError, fmt.Sprintf("Cache sweep failed: %v", err))
		return
	}

	total := 0
	for _, count := range counts {
		total += count
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"removed": counts,
		"total":   total,
	})
}

// --- Indicator handlers ---

// handleIndicators handles GET /api/indicators/{ticker}.
func (s *Server) handleIndicators(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	ticker := PathParam(r, "/api/indicators/", "")
	if ticker == "" {
		WriteError(w, http.StatusBadRequest, "ticker is required in path")
		return
	}

	report, err := s.app.IndicatorsClient.GetIndicators(r.Context(), ticker)
	if err != nil {
		WriteError(w, http.StatusBadGateway, fmt.Sprintf("Indicator fetch failed: %v", err))
		return
	}

	WriteJSON(w, http.StatusOK, report)
}

// handleScreener handles POST /api/indicators/screener.
func (s *Server) handleScreener(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req struct {
		Tickers  []string                `json:"tickers"`
		Criteria models.ScreenerCriteria `json:"criteria"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}

	// Default to screening the held portfolio when no tickers are given.
	if len(req.Tickers) == 0 {
		positions, err := s.app.PortfolioService.ListPositions(r.Context())
		if err != nil {
			WriteError(w, http.StatusInternalServerError, fmt.Sprintf("Error listing positions: %v", err))
			return
		}
		seen := map[string]bool{}
		for _, p := range positions {
			ticker := strings.ToUpper(p.Ticker)
			if !seen[ticker] {
				seen[ticker] = true
				req.Tickers = append(req.Tickers, ticker)
			}
		}
	}
	if len(req.Tickers) == 0 {
		WriteError(w, http.StatusBadRequest, "no tickers to screen")
		return
	}

	result, err := s.app.IndicatorsClient.Screen(r.Context(), req.Tickers, req.Criteria)
	if err != nil {
		WriteError(w, http.StatusBadGateway, fmt.Sprintf("Screener failed: %v", err))
		return
	}

	WriteJSON(w, http.StatusOK, result)
}
