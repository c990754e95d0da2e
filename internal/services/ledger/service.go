package ledger

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/perolav/folio/internal/common"
	"github.com/perolav/folio/internal/interfaces"
	"github.com/perolav/folio/internal/models"
)

// Service manages the append-only trade ledger and derives closed round-trips
// from it on demand.
type Service struct {
	storage interfaces.StorageManager
	logger  *common.Logger
}

func NewService(storage interfaces.StorageManager, logger *common.Logger) *Service {
	return &Service{
		storage: storage,
		logger:  logger,
	}
}

// AppendTrade validates and records a new ledger entry. The ledger is
// append-only; entries are never updated or deleted.
func (s *Service) AppendTrade(ctx context.Context, trade *models.Trade) (*models.Trade, error) {
	if trade == nil {
		return nil, fmt.Errorf("trade is required")
	}

	trade.Ticker = strings.ToUpper(strings.TrimSpace(trade.Ticker))
	if trade.Ticker == "" {
		return nil, fmt.Errorf("ticker is required")
	}

	action := models.ParseTradeAction(string(trade.Action))
	if action == "" {
		return nil, fmt.Errorf("invalid trade action: %s", trade.Action)
	}
	trade.Action = action

	if trade.Shares <= 0 {
		return nil, fmt.Errorf("shares must be positive")
	}
	if trade.Price < 0 {
		return nil, fmt.Errorf("price must not be negative")
	}
	if trade.Fees < 0 {
		return nil, fmt.Errorf("fees must not be negative")
	}
	if trade.Date.IsZero() {
		trade.Date = time.Now()
	}

	if err := s.storage.TradeStore().Append(ctx, trade); err != nil {
		return nil, fmt.Errorf("failed to append trade: %w", err)
	}

	s.logger.Info().
		Str("trade_id", trade.ID).
		Str("ticker", trade.Ticker).
		Str("action", string(trade.Action)).
		Int("shares", trade.Shares).
		Msg("Trade appended to ledger")

	return trade, nil
}

// ListTrades returns ledger entries, optionally filtered by ticker and capped
// at limit entries.
func (s *Service) ListTrades(ctx context.Context, ticker string, limit int) ([]*models.Trade, error) {
	opts := interfaces.TradeListOptions{
		Ticker: strings.ToUpper(strings.TrimSpace(ticker)),
		Limit:  limit,
	}
	trades, err := s.storage.TradeStore().List(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list trades: %w", err)
	}
	return trades, nil
}

// ClosedTrades reconciles the full ledger into FIFO-matched round-trips.
func (s *Service) ClosedTrades(ctx context.Context) ([]*models.ClosedTrade, error) {
	trades, err := s.storage.TradeStore().List(ctx, interfaces.TradeListOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger: %w", err)
	}
	return Reconcile(trades), nil
}

var _ interfaces.LedgerService = (*Service)(nil)
