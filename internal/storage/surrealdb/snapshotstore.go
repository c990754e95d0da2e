package surrealdb

import (
	"context"
	"fmt"

	"github.com/perolav/folio/internal/common"
	"github.com/perolav/folio/internal/models"
	"github.com/surrealdb/surrealdb.go"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"
)

// SnapshotStore persists the daily portfolio valuation series.
// The record id is the calendar date, which makes the one-row-per-date
// invariant structural: re-snapshotting a date overwrites in place.
type SnapshotStore struct {
	db     *surrealdb.DB
	logger *common.Logger
}

func NewSnapshotStore(db *surrealdb.DB, logger *common.Logger) *SnapshotStore {
	return &SnapshotStore{db: db, logger: logger}
}

func (s *SnapshotStore) Upsert(ctx context.Context, snapshot *models.PortfolioSnapshot) error {
	if snapshot.Date == "" {
		return fmt.Errorf("snapshot date is required")
	}

	sql := "UPSERT $rid CONTENT $snapshot"
	vars := map[string]any{
		"rid":      surrealmodels.NewRecordID("snapshots", snapshot.Date),
		"snapshot": snapshot,
	}

	var lastErr error
	for attempt := 1; attempt <= 3; attempt++ {
		_, err := surrealdb.Query[[]models.PortfolioSnapshot](ctx, s.db, sql, vars)
		if err == nil {
			return nil
		}
		lastErr = err
	}
	return fmt.Errorf("failed to upsert snapshot after retries: %w", lastErr)
}

func (s *SnapshotStore) Get(ctx context.Context, date string) (*models.PortfolioSnapshot, error) {
	snapshot, err := surrealdb.Select[models.PortfolioSnapshot](ctx, s.db, surrealmodels.NewRecordID("snapshots", date))
	if err != nil {
		if isNotFoundError(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to select snapshot: %w", err)
	}
	if snapshot == nil || snapshot.Date == "" {
		return nil, nil
	}
	return snapshot, nil
}

// ListLast returns the most recent n snapshots in chronological order.
// n <= 0 returns the whole series.
func (s *SnapshotStore) ListLast(ctx context.Context, n int) ([]*models.PortfolioSnapshot, error) {
	sql := "SELECT * FROM snapshots ORDER BY date DESC"
	if n > 0 {
		sql += fmt.Sprintf(" LIMIT %d", n)
	}

	results, err := surrealdb.Query[[]models.PortfolioSnapshot](ctx, s.db, sql, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}

	if results == nil || len(*results) == 0 {
		return nil, nil
	}

	// Reverse into chronological order for the metrics engine.
	rows := (*results)[0].Result
	mapped := make([]*models.PortfolioSnapshot, 0, len(rows))
	for i := len(rows) - 1; i >= 0; i-- {
		mapped = append(mapped, &rows[i])
	}
	return mapped, nil
}

// PruneBefore deletes snapshots dated strictly before cutoff (YYYY-MM-DD).
func (s *SnapshotStore) PruneBefore(ctx context.Context, cutoff string) (int, error) {
	sql := "DELETE snapshots WHERE date < $cutoff RETURN BEFORE"
	vars := map[string]any{"cutoff": cutoff}

	results, err := surrealdb.Query[[]models.PortfolioSnapshot](ctx, s.db, sql, vars)
	if err != nil {
		return 0, fmt.Errorf("failed to prune snapshots: %w", err)
	}

	count := 0
	if results != nil && len(*results) > 0 {
		count = len((*results)[0].Result)
	}
	return count, nil
}
