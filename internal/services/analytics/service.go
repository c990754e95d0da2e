package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/perolav/folio/internal/common"
	"github.com/perolav/folio/internal/interfaces"
	"github.com/perolav/folio/internal/models"
)

// Service computes portfolio performance metrics cache-first: each metric is
// served from the metrics cache when a fresh entry exists, recomputed from
// the ledger and snapshot series otherwise, and written back with a short
// TTL. Cache failures degrade to recomputation, never to an error.
type Service struct {
	storage interfaces.StorageManager
	ledger  interfaces.LedgerService
	config  *common.Config
	logger  *common.Logger
}

func NewService(storage interfaces.StorageManager, ledger interfaces.LedgerService, config *common.Config, logger *common.Logger) *Service {
	return &Service{
		storage: storage,
		ledger:  ledger,
		config:  config,
		logger:  logger,
	}
}

func (s *Service) WinRate(ctx context.Context) (*models.WinRateStats, error) {
	var cached models.WinRateStats
	if s.fromCache(ctx, "win_rate", &cached) {
		return &cached, nil
	}

	closed, err := s.ledger.ClosedTrades(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to reconcile ledger: %w", err)
	}

	stats := ComputeWinRate(closed)
	s.writeThrough(ctx, "win_rate", stats)
	return &stats, nil
}

func (s *Service) HoldingTime(ctx context.Context) (*models.HoldingStats, error) {
	var cached models.HoldingStats
	if s.fromCache(ctx, "holding_time", &cached) {
		return &cached, nil
	}

	closed, err := s.ledger.ClosedTrades(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to reconcile ledger: %w", err)
	}

	stats := ComputeHoldingTime(closed)
	s.writeThrough(ctx, "holding_time", stats)
	return &stats, nil
}

func (s *Service) MonthlyPL(ctx context.Context, months int) ([]models.MonthlyPL, error) {
	key := fmt.Sprintf("monthly_pl_%d", months)

	var cached []models.MonthlyPL
	if s.fromCache(ctx, key, &cached) {
		return cached, nil
	}

	snapshots, err := s.storage.SnapshotStore().ListLast(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshots: %w", err)
	}

	result := ComputeMonthlyPL(snapshots, months, time.Now())
	s.writeThrough(ctx, key, result)
	return result, nil
}

func (s *Service) Sharpe(ctx context.Context, riskFreeRate float64) (*models.SharpeStats, error) {
	key := fmt.Sprintf("sharpe_rf_%.4f", riskFreeRate)

	var cached models.SharpeStats
	if s.fromCache(ctx, key, &cached) {
		return &cached, nil
	}

	snapshots, err := s.storage.SnapshotStore().ListLast(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshots: %w", err)
	}

	stats := ComputeSharpe(snapshots, riskFreeRate)
	s.writeThrough(ctx, key, stats)
	return &stats, nil
}

func (s *Service) SectorPerformance(ctx context.Context) ([]models.SectorStat, error) {
	var cached []models.SectorStat
	if s.fromCache(ctx, "sector_performance", &cached) {
		return cached, nil
	}

	positions, err := s.storage.PositionStore().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load positions: %w", err)
	}

	result := ComputeSectorPerformance(positions, s.config.SectorFor)
	s.writeThrough(ctx, "sector_performance", result)
	return result, nil
}

// Summary assembles every metric. The individual metric calls carry their own
// caching, so the summary itself is not cached separately.
func (s *Service) Summary(ctx context.Context) (*models.AnalyticsSummary, error) {
	winRate, err := s.WinRate(ctx)
	if err != nil {
		return nil, err
	}
	holding, err := s.HoldingTime(ctx)
	if err != nil {
		return nil, err
	}
	monthly, err := s.MonthlyPL(ctx, 0)
	if err != nil {
		return nil, err
	}
	sharpe, err := s.Sharpe(ctx, s.config.Analytics.RiskFreeRate)
	if err != nil {
		return nil, err
	}
	sectors, err := s.SectorPerformance(ctx)
	if err != nil {
		return nil, err
	}

	return &models.AnalyticsSummary{
		WinRate:     *winRate,
		Holding:     *holding,
		Monthly:     monthly,
		Sharpe:      *sharpe,
		Sectors:     sectors,
		GeneratedAt: time.Now(),
	}, nil
}

// fromCache loads a fresh cached metric into v. Any cache failure (read
// error, stale entry, malformed payload) reads as a miss.
func (s *Service) fromCache(ctx context.Context, key string, v any) bool {
	entry, err := s.storage.MetricsCache().GetFresh(ctx, key)
	if err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("Metrics cache read failed, recomputing")
		return false
	}
	if entry == nil {
		return false
	}
	if err := entry.Decode(v); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("Malformed cached metric, recomputing")
		return false
	}
	return true
}

func (s *Service) writeThrough(ctx context.Context, key string, v any) {
	if err := s.storage.MetricsCache().Put(ctx, key, v, common.TTLMetrics); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("Failed to cache metric")
	}
}

var _ interfaces.AnalyticsService = (*Service)(nil)
