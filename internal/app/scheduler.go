package app

import (
	"context"
	"time"

	"github.com/perolav/folio/internal/common"
	"github.com/perolav/folio/internal/interfaces"
)

const (
	snapshotInterval = 24 * time.Hour
	sweepInterval    = time.Hour
)

// startSnapshotScheduler takes one snapshot at startup, then daily. The
// snapshot upsert keys on the calendar date, so restarting mid-day just
// refreshes today's row. Pruning runs after every successful snapshot.
func startSnapshotScheduler(ctx context.Context, portfolioService interfaces.PortfolioService, config *common.Config, logger *common.Logger) {
	takeSnapshot(ctx, portfolioService, config, logger)

	ticker := time.NewTicker(snapshotInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info().Msg("Snapshot scheduler: stopped")
			return
		case <-ticker.C:
			takeSnapshot(ctx, portfolioService, config, logger)
		}
	}
}

func takeSnapshot(ctx context.Context, portfolioService interfaces.PortfolioService, config *common.Config, logger *common.Logger) {
	start := time.Now()

	result, err := portfolioService.TakeSnapshot(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("Scheduled snapshot failed")
		return
	}
	if !result.Saved {
		logger.Debug().Str("reason", result.Reason).Msg("Scheduled snapshot skipped")
		return
	}

	logger.Info().
		Str("date", result.Snapshot.Date).
		Dur("elapsed", time.Since(start)).
		Msg("Scheduled snapshot: complete")

	if days := config.Analytics.SnapshotRetentionDays; days > 0 {
		if _, err := portfolioService.PruneSnapshots(ctx, days); err != nil {
			logger.Warn().Err(err).Msg("Snapshot pruning failed")
		}
	}
}

// startCacheSweeper purges expired cache rows across every family on a fixed
// interval. Reads already ignore stale rows; the sweep just keeps the tables
// from growing unbounded.
func startCacheSweeper(ctx context.Context, storage interfaces.StorageManager, logger *common.Logger) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info().Msg("Cache sweeper: stopped")
			return
		case <-ticker.C:
			counts, err := storage.SweepCaches(ctx)
			if err != nil {
				logger.Warn().Err(err).Msg("Cache sweep failed")
				continue
			}
			total := 0
			for _, n := range counts {
				total += n
			}
			if total > 0 {
				logger.Info().Int("removed", total).Msg("Cache sweep: complete")
			}
		}
	}
}
