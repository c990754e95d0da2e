package surrealdb

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/perolav/folio/internal/common"
	"github.com/perolav/folio/internal/interfaces"
	"github.com/perolav/folio/internal/models"
	"github.com/surrealdb/surrealdb.go"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"
)

// TradeStore persists the append-only trade ledger. Entries are never
// updated or deleted here; removal is an external administrative action.
type TradeStore struct {
	db     *surrealdb.DB
	logger *common.Logger
}

func NewTradeStore(db *surrealdb.DB, logger *common.Logger) *TradeStore {
	return &TradeStore{db: db, logger: logger}
}

func (s *TradeStore) Append(ctx context.Context, trade *models.Trade) error {
	if trade.ID == "" {
		trade.ID = fmt.Sprintf("trade_%s", uuid.New().String()[:8])
	}
	if trade.CreatedAt.IsZero() {
		trade.CreatedAt = time.Now()
	}
	if trade.TotalValue == 0 {
		trade.TotalValue = trade.ComputeTotalValue()
	}

	sql := "UPSERT $rid CONTENT $trade"
	vars := map[string]any{
		"rid":   surrealmodels.NewRecordID("trades", trade.ID),
		"trade": trade,
	}

	var lastErr error
	for attempt := 1; attempt <= 3; attempt++ {
		_, err := surrealdb.Query[[]models.Trade](ctx, s.db, sql, vars)
		if err == nil {
			return nil
		}
		lastErr = err
	}
	return fmt.Errorf("failed to append trade after retries: %w", lastErr)
}

// List returns ledger entries ordered by (ticker, date) ascending.
// created_at breaks date ties so FIFO replay sees insertion order.
func (s *TradeStore) List(ctx context.Context, opts interfaces.TradeListOptions) ([]*models.Trade, error) {
	sql := "SELECT * FROM trades"
	vars := map[string]any{}

	if opts.Ticker != "" {
		sql += " WHERE ticker = $ticker"
		vars["ticker"] = opts.Ticker
	}

	sql += " ORDER BY ticker ASC, date ASC, created_at ASC"

	if opts.Limit > 0 {
		sql += fmt.Sprintf(" LIMIT %d", opts.Limit)
	}

	results, err := surrealdb.Query[[]models.Trade](ctx, s.db, sql, vars)
	if err != nil {
		return nil, fmt.Errorf("failed to list trades: %w", err)
	}

	if results != nil && len(*results) > 0 {
		var mapped []*models.Trade
		for i := range (*results)[0].Result {
			mapped = append(mapped, &(*results)[0].Result[i])
		}
		return mapped, nil
	}
	return nil, nil
}
