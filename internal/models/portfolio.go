// Package models defines data structures for Folio
package models

import (
	"strings"
	"time"
)

// TradeAction is the side of a ledger entry
type TradeAction string

const (
	TradeActionBuy  TradeAction = "BUY"
	TradeActionSell TradeAction = "SELL"
)

// ParseTradeAction normalizes a raw action string. Returns "" for unknown actions.
func ParseTradeAction(s string) TradeAction {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "BUY":
		return TradeActionBuy
	case "SELL":
		return TradeActionSell
	default:
		return ""
	}
}

// Position represents one open lot of a holding. Multiple rows per ticker
// are permitted; no dedup is enforced.
type Position struct {
	ID           string    `json:"id"`
	Ticker       string    `json:"ticker"`
	Shares       int       `json:"shares"`
	AvgBuyPrice  float64   `json:"avg_buy_price"`
	CurrentPrice *float64  `json:"current_price"` // last known mark, nil when never priced
	PurchaseDate time.Time `json:"purchase_date"`
	Fees         float64   `json:"fees"`
	Notes        string    `json:"notes,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// MarkPrice returns the current price, falling back to the average buy price
// when no mark is known (zero unrealized gain assumption).
func (p Position) MarkPrice() float64 {
	if p.CurrentPrice != nil {
		return *p.CurrentPrice
	}
	return p.AvgBuyPrice
}

// MarketValue returns shares × mark price.
func (p Position) MarketValue() float64 {
	return float64(p.Shares) * p.MarkPrice()
}

// CostBasis returns shares × average buy price, excluding fees.
func (p Position) CostBasis() float64 {
	return float64(p.Shares) * p.AvgBuyPrice
}

// UnrealizedPL returns market value − cost basis − fees.
func (p Position) UnrealizedPL() float64 {
	return p.MarketValue() - p.CostBasis() - p.Fees
}

// Trade is one append-only ledger entry. Entries are never mutated by the
// core; (ticker, date) ascending with insertion order as tie-break is the
// sole input ordering for FIFO matching.
type Trade struct {
	ID         string      `json:"id"`
	Ticker     string      `json:"ticker"`
	Action     TradeAction `json:"action"`
	Shares     int         `json:"shares"`
	Price      float64     `json:"price"`
	Fees       float64     `json:"fees"`
	TotalValue float64     `json:"total_value"` // net cash: shares×price + fees on BUY, − fees on SELL
	Date       time.Time   `json:"date"`
	Notes      string      `json:"notes,omitempty"`
	CreatedAt  time.Time   `json:"created_at"`
}

// ComputeTotalValue derives the net cash value of the trade from its legs.
func (t *Trade) ComputeTotalValue() float64 {
	gross := float64(t.Shares) * t.Price
	if t.Action == TradeActionSell {
		return gross - t.Fees
	}
	return gross + t.Fees
}

// PortfolioSnapshot is one valuation point of the whole portfolio.
// Exactly one row exists per calendar date; re-snapshotting a date overwrites it.
type PortfolioSnapshot struct {
	Date          string    `json:"date"` // YYYY-MM-DD, caller's local calendar date
	TotalValue    float64   `json:"total_value"`
	TotalCost     float64   `json:"total_cost"`
	TotalFees     float64   `json:"total_fees"`
	TotalPL       float64   `json:"total_pl"`
	PositionCount int       `json:"position_count"`
	CreatedAt     time.Time `json:"created_at"`
}

// SnapshotResult reports the outcome of a snapshot attempt. Saved is false
// when the portfolio was empty and nothing was written.
type SnapshotResult struct {
	Saved    bool               `json:"saved"`
	Reason   string             `json:"reason,omitempty"`
	Snapshot *PortfolioSnapshot `json:"snapshot,omitempty"`
}

// PricePoint is one row of per-ticker price history.
type PricePoint struct {
	Ticker     string    `json:"ticker"`
	Date       string    `json:"date"` // YYYY-MM-DD
	Close      float64   `json:"close"`
	RecordedAt time.Time `json:"recorded_at"`
}
