package portfolio

import (
	"context"
	"fmt"
	"time"

	"github.com/perolav/folio/internal/models"
)

// TakeSnapshot materializes today's valuation point from the open positions.
// One snapshot exists per calendar date; taking a second snapshot the same
// day overwrites the first. An empty portfolio yields Saved=false and writes
// nothing, so an idle snapshot schedule never pollutes the series.
func (s *Service) TakeSnapshot(ctx context.Context) (*models.SnapshotResult, error) {
	positions, err := s.storage.PositionStore().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load positions: %w", err)
	}

	if len(positions) == 0 {
		s.logger.Debug().Msg("Portfolio empty, skipping snapshot")
		return &models.SnapshotResult{Saved: false, Reason: "no open positions"}, nil
	}

	now := time.Now()
	snapshot := &models.PortfolioSnapshot{
		Date:          now.Format("2006-01-02"),
		PositionCount: len(positions),
		CreatedAt:     now,
	}
	for _, pos := range positions {
		if pos.CurrentPrice == nil {
			s.logger.Debug().Str("ticker", pos.Ticker).Msg("No mark price, valuating at cost")
		}
		snapshot.TotalValue += pos.MarketValue()
		snapshot.TotalCost += pos.CostBasis()
		snapshot.TotalFees += pos.Fees
	}
	snapshot.TotalPL = snapshot.TotalValue - snapshot.TotalCost - snapshot.TotalFees

	if err := s.storage.SnapshotStore().Upsert(ctx, snapshot); err != nil {
		return nil, fmt.Errorf("failed to save snapshot: %w", err)
	}

	s.logger.Info().
		Str("date", snapshot.Date).
		Float64("total_value", snapshot.TotalValue).
		Float64("total_pl", snapshot.TotalPL).
		Int("positions", snapshot.PositionCount).
		Msg("Snapshot saved")

	return &models.SnapshotResult{Saved: true, Snapshot: snapshot}, nil
}

// ListSnapshots returns the last n snapshots in chronological order
// (0 = all).
func (s *Service) ListSnapshots(ctx context.Context, n int) ([]*models.PortfolioSnapshot, error) {
	snapshots, err := s.storage.SnapshotStore().ListLast(ctx, n)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	return snapshots, nil
}

// PruneSnapshots deletes snapshots older than retentionDays. Returns the
// number of rows removed.
func (s *Service) PruneSnapshots(ctx context.Context, retentionDays int) (int, error) {
	if retentionDays <= 0 {
		return 0, fmt.Errorf("retention days must be positive")
	}

	cutoff := time.Now().AddDate(0, 0, -retentionDays).Format("2006-01-02")
	count, err := s.storage.SnapshotStore().PruneBefore(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to prune snapshots: %w", err)
	}

	if count > 0 {
		s.logger.Info().Str("cutoff", cutoff).Int("removed", count).Msg("Snapshots pruned")
	}
	return count, nil
}
