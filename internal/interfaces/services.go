// Package interfaces defines service contracts for Folio
package interfaces

import (
	"context"

	"github.com/perolav/folio/internal/models"
)

// PortfolioService manages positions and the snapshot series
type PortfolioService interface {
	// AddPosition stores a new open lot
	AddPosition(ctx context.Context, position *models.Position) (*models.Position, error)

	// ListPositions returns all open lots
	ListPositions(ctx context.Context) ([]*models.Position, error)

	// UpdatePrice marks every lot of a ticker to price and records the
	// point into price history. Returns the number of lots updated.
	UpdatePrice(ctx context.Context, ticker string, price float64) (int, error)

	// DeletePosition removes one lot by id. Returns the number removed.
	DeletePosition(ctx context.Context, id string) (int, error)

	// TakeSnapshot materializes today's valuation point (idempotent per day).
	// An empty portfolio yields Saved=false and no write.
	TakeSnapshot(ctx context.Context) (*models.SnapshotResult, error)

	// ListSnapshots returns the last n snapshots in chronological order
	ListSnapshots(ctx context.Context, n int) ([]*models.PortfolioSnapshot, error)

	// PruneSnapshots deletes snapshots older than retentionDays
	PruneSnapshots(ctx context.Context, retentionDays int) (int, error)

	// RenderValueChart renders the snapshot series as a PNG line chart
	RenderValueChart(ctx context.Context) ([]byte, error)
}

// LedgerService manages the trade ledger and reconciliation
type LedgerService interface {
	// AppendTrade validates and appends one ledger entry
	AppendTrade(ctx context.Context, trade *models.Trade) (*models.Trade, error)

	// ListTrades returns ledger entries, optionally filtered by ticker,
	// bounded by limit (0 = unbounded)
	ListTrades(ctx context.Context, ticker string, limit int) ([]*models.Trade, error)

	// ClosedTrades replays the full ledger through FIFO matching
	ClosedTrades(ctx context.Context) ([]*models.ClosedTrade, error)
}

// AnalyticsService computes performance metrics, cache-first
type AnalyticsService interface {
	WinRate(ctx context.Context) (*models.WinRateStats, error)
	HoldingTime(ctx context.Context) (*models.HoldingStats, error)

	// MonthlyPL averages snapshot P/L per calendar month over the lookback
	MonthlyPL(ctx context.Context, months int) ([]models.MonthlyPL, error)

	// Sharpe computes the annualized Sharpe ratio from the snapshot series
	Sharpe(ctx context.Context, riskFreeRate float64) (*models.SharpeStats, error)

	SectorPerformance(ctx context.Context) ([]models.SectorStat, error)

	// Summary computes every metric in one pass
	Summary(ctx context.Context) (*models.AnalyticsSummary, error)
}

// AdvisorService produces TTL-cached AI analyses, recommendations, and tips
type AdvisorService interface {
	AnalyzeTicker(ctx context.Context, ticker string) (*models.TickerAnalysis, error)
	Recommend(ctx context.Context, ticker, kind string) (*models.Recommendation, error)
	DailyTips(ctx context.Context) (*models.DailyTips, error)
}
