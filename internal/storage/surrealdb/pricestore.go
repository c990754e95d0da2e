package surrealdb

import (
	"context"
	"fmt"
	"time"

	"github.com/perolav/folio/internal/common"
	"github.com/perolav/folio/internal/models"
	"github.com/surrealdb/surrealdb.go"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"
)

// PriceStore persists per-ticker price history, one row per ticker per day.
type PriceStore struct {
	db     *surrealdb.DB
	logger *common.Logger
}

func NewPriceStore(db *surrealdb.DB, logger *common.Logger) *PriceStore {
	return &PriceStore{db: db, logger: logger}
}

func (s *PriceStore) Record(ctx context.Context, point *models.PricePoint) error {
	if point.Ticker == "" || point.Date == "" {
		return fmt.Errorf("price point requires ticker and date")
	}
	if point.RecordedAt.IsZero() {
		point.RecordedAt = time.Now()
	}

	sql := "UPSERT $rid CONTENT $point"
	vars := map[string]any{
		"rid":   surrealmodels.NewRecordID("price_history", point.Ticker+"_"+point.Date),
		"point": point,
	}

	var lastErr error
	for attempt := 1; attempt <= 3; attempt++ {
		_, err := surrealdb.Query[[]models.PricePoint](ctx, s.db, sql, vars)
		if err == nil {
			return nil
		}
		lastErr = err
	}
	return fmt.Errorf("failed to record price point after retries: %w", lastErr)
}

// History returns the most recent points for a ticker, oldest first.
func (s *PriceStore) History(ctx context.Context, ticker string, limit int) ([]*models.PricePoint, error) {
	sql := "SELECT * FROM price_history WHERE ticker = $ticker ORDER BY date DESC"
	if limit > 0 {
		sql += fmt.Sprintf(" LIMIT %d", limit)
	}
	vars := map[string]any{"ticker": ticker}

	results, err := surrealdb.Query[[]models.PricePoint](ctx, s.db, sql, vars)
	if err != nil {
		return nil, fmt.Errorf("failed to get price history: %w", err)
	}

	if results == nil || len(*results) == 0 {
		return nil, nil
	}

	rows := (*results)[0].Result
	mapped := make([]*models.PricePoint, 0, len(rows))
	for i := len(rows) - 1; i >= 0; i-- {
		mapped = append(mapped, &rows[i])
	}
	return mapped, nil
}
