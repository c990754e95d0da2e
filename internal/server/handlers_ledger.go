package server

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/perolav/folio/internal/models"
)

// --- Trade ledger handlers ---

// handleTrades handles GET /api/trades and POST /api/trades.
func (s *Server) handleTrades(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleTradeList(w, r)
	case http.MethodPost:
		s.handleTradeAppend(w, r)
	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPost)
	}
}

func (s *Server) handleTradeList(w http.ResponseWriter, r *http.Request) {
	ticker := r.URL.Query().Get("ticker")

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			WriteError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	trades, err := s.app.LedgerService.ListTrades(r.Context(), ticker, limit)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, fmt.Sprintf("Error listing trades: %v", err))
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"trades": trades,
		"count":  len(trades),
	})
}

func (s *Server) handleTradeAppend(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Ticker string  `json:"ticker"`
		Action string  `json:"action"`
		Shares int     `json:"shares"`
		Price  float64 `json:"price"`
		Fees   float64 `json:"fees"`
		Date   string  `json:"date"`
		Notes  string  `json:"notes"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}

	trade := &models.Trade{
		Ticker: req.Ticker,
		Action: models.TradeAction(req.Action),
		Shares: req.Shares,
		Price:  req.Price,
		Fees:   req.Fees,
		Notes:  req.Notes,
	}
	if req.Date != "" {
		date, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			WriteError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
			return
		}
		trade.Date = date
	}

	saved, err := s.app.LedgerService.AppendTrade(r.Context(), trade)
	if err != nil {
		WriteError(w, http.StatusBadRequest, fmt.Sprintf("Error appending trade: %v", err))
		return
	}

	WriteJSON(w, http.StatusCreated, saved)
}

// handleClosedTrades handles GET /api/trades/closed.
func (s *Server) handleClosedTrades(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	closed, err := s.app.LedgerService.ClosedTrades(r.Context())
	if err != nil {
		WriteError(w, http.StatusInternalServerError, fmt.Sprintf("Error reconciling trades: %v", err))
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"closed_trades": closed,
		"count":         len(closed),
	})
}
