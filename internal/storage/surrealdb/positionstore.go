package surrealdb

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/perolav/folio/internal/common"
	"github.com/perolav/folio/internal/models"
	"github.com/surrealdb/surrealdb.go"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"
)

// PositionStore persists open position lots.
type PositionStore struct {
	db     *surrealdb.DB
	logger *common.Logger
}

func NewPositionStore(db *surrealdb.DB, logger *common.Logger) *PositionStore {
	return &PositionStore{db: db, logger: logger}
}

func (s *PositionStore) Add(ctx context.Context, position *models.Position) error {
	if position.ID == "" {
		position.ID = fmt.Sprintf("pos_%s", uuid.New().String()[:8])
	}
	now := time.Now()
	if position.CreatedAt.IsZero() {
		position.CreatedAt = now
	}
	position.UpdatedAt = now

	sql := "UPSERT $rid CONTENT $position"
	vars := map[string]any{
		"rid":      surrealmodels.NewRecordID("positions", position.ID),
		"position": position,
	}

	var lastErr error
	for attempt := 1; attempt <= 3; attempt++ {
		_, err := surrealdb.Query[[]models.Position](ctx, s.db, sql, vars)
		if err == nil {
			return nil
		}
		lastErr = err
	}
	return fmt.Errorf("failed to add position after retries: %w", lastErr)
}

func (s *PositionStore) Get(ctx context.Context, id string) (*models.Position, error) {
	position, err := surrealdb.Select[models.Position](ctx, s.db, surrealmodels.NewRecordID("positions", id))
	if err != nil {
		if isNotFoundError(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to select position: %w", err)
	}
	if position == nil || position.ID == "" {
		return nil, nil
	}
	return position, nil
}

func (s *PositionStore) List(ctx context.Context) ([]*models.Position, error) {
	sql := "SELECT * FROM positions ORDER BY ticker ASC, purchase_date ASC"

	results, err := surrealdb.Query[[]models.Position](ctx, s.db, sql, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list positions: %w", err)
	}

	if results != nil && len(*results) > 0 {
		var mapped []*models.Position
		for i := range (*results)[0].Result {
			mapped = append(mapped, &(*results)[0].Result[i])
		}
		return mapped, nil
	}
	return nil, nil
}

// UpdatePrice marks every lot of a ticker to price. Returns rows updated.
func (s *PositionStore) UpdatePrice(ctx context.Context, ticker string, price float64) (int, error) {
	sql := "UPDATE positions SET current_price = $price, updated_at = $now WHERE ticker = $ticker RETURN AFTER"
	vars := map[string]any{
		"ticker": ticker,
		"price":  price,
		"now":    time.Now(),
	}

	results, err := surrealdb.Query[[]models.Position](ctx, s.db, sql, vars)
	if err != nil {
		return 0, fmt.Errorf("failed to update price: %w", err)
	}

	count := 0
	if results != nil && len(*results) > 0 {
		count = len((*results)[0].Result)
	}
	return count, nil
}

// Delete removes one lot by id. Returns rows removed (0 for unknown id).
func (s *PositionStore) Delete(ctx context.Context, id string) (int, error) {
	sql := "DELETE $rid RETURN BEFORE"
	vars := map[string]any{
		"rid": surrealmodels.NewRecordID("positions", id),
	}

	results, err := surrealdb.Query[[]models.Position](ctx, s.db, sql, vars)
	if err != nil {
		if isNotFoundError(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to delete position: %w", err)
	}

	count := 0
	if results != nil && len(*results) > 0 {
		count = len((*results)[0].Result)
	}
	return count, nil
}
