package portfolio

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/perolav/folio/internal/common"
	"github.com/perolav/folio/internal/interfaces"
	"github.com/perolav/folio/internal/models"
)

// Service manages open positions, price marks, and the daily snapshot series.
type Service struct {
	storage interfaces.StorageManager
	config  *common.Config
	logger  *common.Logger
}

func NewService(storage interfaces.StorageManager, config *common.Config, logger *common.Logger) *Service {
	return &Service{
		storage: storage,
		config:  config,
		logger:  logger,
	}
}

// AddPosition validates and stores a new open lot. Multiple lots per ticker
// are permitted.
func (s *Service) AddPosition(ctx context.Context, position *models.Position) (*models.Position, error) {
	if position == nil {
		return nil, fmt.Errorf("position is required")
	}

	position.Ticker = strings.ToUpper(strings.TrimSpace(position.Ticker))
	if position.Ticker == "" {
		return nil, fmt.Errorf("ticker is required")
	}
	if position.Shares <= 0 {
		return nil, fmt.Errorf("shares must be positive")
	}
	if position.AvgBuyPrice < 0 {
		return nil, fmt.Errorf("avg buy price must not be negative")
	}
	if position.Fees < 0 {
		return nil, fmt.Errorf("fees must not be negative")
	}
	if position.PurchaseDate.IsZero() {
		position.PurchaseDate = time.Now()
	}

	if err := s.storage.PositionStore().Add(ctx, position); err != nil {
		return nil, fmt.Errorf("failed to add position: %w", err)
	}

	s.logger.Info().
		Str("position_id", position.ID).
		Str("ticker", position.Ticker).
		Int("shares", position.Shares).
		Msg("Position added")

	return position, nil
}

// ListPositions returns every open lot.
func (s *Service) ListPositions(ctx context.Context) ([]*models.Position, error) {
	positions, err := s.storage.PositionStore().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list positions: %w", err)
	}
	return positions, nil
}

// UpdatePrice marks every lot of a ticker to the given price and records the
// point into price history. Returns the number of lots updated.
func (s *Service) UpdatePrice(ctx context.Context, ticker string, price float64) (int, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if ticker == "" {
		return 0, fmt.Errorf("ticker is required")
	}
	if price <= 0 {
		return 0, fmt.Errorf("price must be positive")
	}

	count, err := s.storage.PositionStore().UpdatePrice(ctx, ticker, price)
	if err != nil {
		return 0, fmt.Errorf("failed to update price for %s: %w", ticker, err)
	}

	point := &models.PricePoint{
		Ticker:     ticker,
		Date:       time.Now().Format("2006-01-02"),
		Close:      price,
		RecordedAt: time.Now(),
	}
	if err := s.storage.PriceStore().Record(ctx, point); err != nil {
		s.logger.Warn().Err(err).Str("ticker", ticker).Msg("Failed to record price history point")
	}

	s.logger.Info().
		Str("ticker", ticker).
		Float64("price", price).
		Int("positions_updated", count).
		Msg("Price updated")

	return count, nil
}

// DeletePosition removes one lot by id. Returns the number of rows removed
// (zero when the id did not exist).
func (s *Service) DeletePosition(ctx context.Context, id string) (int, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return 0, fmt.Errorf("position id is required")
	}

	count, err := s.storage.PositionStore().Delete(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("failed to delete position %s: %w", id, err)
	}

	s.logger.Info().Str("position_id", id).Int("removed", count).Msg("Position deleted")
	return count, nil
}

var _ interfaces.PortfolioService = (*Service)(nil)
