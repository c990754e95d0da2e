package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/perolav/folio/internal/models"
)

// --- Position handlers ---

// handlePositions handles GET /api/positions and POST /api/positions.
func (s *Server) handlePositions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handlePositionList(w, r)
	case http.MethodPost:
		s.handlePositionAdd(w, r)
	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPost)
	}
}

func (s *Server) handlePositionList(w http.ResponseWriter, r *http.Request) {
	positions, err := s.app.PortfolioService.ListPositions(r.Context())
	if err != nil {
		WriteError(w, http.StatusInternalServerError, fmt.Sprintf("Error listing positions: %v", err))
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"positions": positions,
		"count":     len(positions),
	})
}

func (s *Server) handlePositionAdd(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Ticker       string  `json:"ticker"`
		Shares       int     `json:"shares"`
		AvgBuyPrice  float64 `json:"avg_buy_price"`
		PurchaseDate string  `json:"purchase_date"`
		Fees         float64 `json:"fees"`
		Notes        string  `json:"notes"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}

	position := &models.Position{
		Ticker:      req.Ticker,
		Shares:      req.Shares,
		AvgBuyPrice: req.AvgBuyPrice,
		Fees:        req.Fees,
		Notes:       req.Notes,
	}
	if req.PurchaseDate != "" {
		date, err := time.Parse("2006-01-02", req.PurchaseDate)
		if err != nil {
			WriteError(w, http.StatusBadRequest, "purchase_date must be YYYY-MM-DD")
			return
		}
		position.PurchaseDate = date
	}

	saved, err := s.app.PortfolioService.AddPosition(r.Context(), position)
	if err != nil {
		WriteError(w, http.StatusBadRequest, fmt.Sprintf("Error adding position: %v", err))
		return
	}

	WriteJSON(w, http.StatusCreated, saved)
}

// handlePositionPrice handles PUT /api/positions/{ticker}/price.
func (s *Server) handlePositionPrice(w http.ResponseWriter, r *http.Request, ticker string) {
	if !RequireMethod(w, r, http.MethodPut) {
		return
	}

	var req struct {
		Price float64 `json:"price"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}

	count, err := s.app.PortfolioService.UpdatePrice(r.Context(), ticker, req.Price)
	if err != nil {
		WriteError(w, http.StatusBadRequest, fmt.Sprintf("Error updating price: %v", err))
		return
	}
	if count == 0 {
		WriteError(w, http.StatusNotFound, fmt.Sprintf("No positions held for %s", ticker))
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"ticker":  ticker,
		"price":   req.Price,
		"updated": count,
	})
}

// handlePositionDelete handles DELETE /api/positions/{id}.
func (s *Server) handlePositionDelete(w http.ResponseWriter, r *http.Request, id string) {
	if !RequireMethod(w, r, http.MethodDelete) {
		return
	}

	count, err := s.app.PortfolioService.DeletePosition(r.Context(), id)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, fmt.Sprintf("Error deleting position: %v", err))
		return
	}
	if count == 0 {
		WriteError(w, http.StatusNotFound, fmt.Sprintf("Position not found: %s", id))
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"deleted": count,
	})
}
