package models

import "time"

// ClosedTrade is a reconciled buy→sell round-trip for one ticker.
// Matching is FIFO and share-count-blind: one BUY lot closes against one SELL
// event regardless of share-count equality.
type ClosedTrade struct {
	Ticker      string  `json:"ticker"`
	EntryTrade  *Trade  `json:"entry_trade"`
	ExitTrade   *Trade  `json:"exit_trade"`
	RealizedPL  float64 `json:"realized_pl"` // (exit − entry) × exit shares − both legs' fees
	HoldingDays int     `json:"holding_days"`
	Win         bool    `json:"win"`
}

// WinRateStats summarizes closed round-trips.
type WinRateStats struct {
	WinRatePct   float64 `json:"win_rate_pct"` // 1dp, 0 when no closed trades
	Wins         int     `json:"wins"`
	Losses       int     `json:"losses"`
	ClosedTrades int     `json:"closed_trades"`
}

// HoldingStats is the mean holding period over closed round-trips.
type HoldingStats struct {
	AvgHoldingDays int `json:"avg_holding_days"` // rounded to nearest day
	Samples        int `json:"samples"`
}

// MonthlyPL is the average snapshot P/L for one calendar month.
// Months without snapshots are absent, not zero-filled.
type MonthlyPL struct {
	Month string  `json:"month"` // YYYY-MM
	AvgPL float64 `json:"avg_pl"`
}

// SharpeStats carries the annualized return/volatility/Sharpe triple.
// All-zero when fewer than two snapshots exist.
type SharpeStats struct {
	SharpeRatio         float64 `json:"sharpe_ratio"`          // 2dp
	AnnualReturnPct     float64 `json:"annual_return_pct"`     // ×100, 2dp
	AnnualVolatilityPct float64 `json:"annual_volatility_pct"` // ×100, 2dp
	RiskFreeRate        float64 `json:"risk_free_rate"`
	DataPoints          int     `json:"data_points"`
}

// SectorStat accumulates unrealized P/L and position count for one sector.
type SectorStat struct {
	Sector      string  `json:"sector"`
	PL          float64 `json:"pl"` // rounded to nearest integer
	MarketValue float64 `json:"market_value"`
	Positions   int     `json:"positions"`
}

// AnalyticsSummary bundles every metric for the summary endpoint.
type AnalyticsSummary struct {
	WinRate     WinRateStats `json:"win_rate"`
	Holding     HoldingStats `json:"holding"`
	Monthly     []MonthlyPL  `json:"monthly_pl"`
	Sharpe      SharpeStats  `json:"sharpe"`
	Sectors     []SectorStat `json:"sectors"`
	GeneratedAt time.Time    `json:"generated_at"`
}
