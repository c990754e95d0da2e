// Package interfaces defines service contracts for Folio
package interfaces

import (
	"context"
	"time"

	"github.com/perolav/folio/internal/models"
)

// StorageManager coordinates all storage backends
type StorageManager interface {
	PositionStore() PositionStore
	TradeStore() TradeStore
	SnapshotStore() SnapshotStore
	PriceStore() PriceStore

	// TTL cache families. One CacheStore implementation backs all four,
	// parameterized by table.
	AnalysisCache() CacheStore
	RecommendationCache() CacheStore
	TipsCache() CacheStore
	MetricsCache() CacheStore

	// SweepCaches purges expired rows across every cache family.
	// Returns counts of deleted rows per family.
	SweepCaches(ctx context.Context) (map[string]int, error)

	// Lifecycle
	Close() error
}

// PositionStore manages open position lots.
type PositionStore interface {
	Add(ctx context.Context, position *models.Position) error
	Get(ctx context.Context, id string) (*models.Position, error)
	List(ctx context.Context) ([]*models.Position, error)

	// UpdatePrice sets the current price on every lot of a ticker.
	// Returns the number of rows updated (0 means the ticker is not held).
	UpdatePrice(ctx context.Context, ticker string, price float64) (int, error)

	// Delete removes one lot by id. Returns the number of rows removed.
	Delete(ctx context.Context, id string) (int, error)
}

// TradeStore manages the append-only trade ledger.
type TradeStore interface {
	Append(ctx context.Context, trade *models.Trade) error

	// List returns ledger entries ordered by (ticker, date) ascending with
	// insertion order breaking ties.
	List(ctx context.Context, opts TradeListOptions) ([]*models.Trade, error)
}

// TradeListOptions configures ledger queries.
type TradeListOptions struct {
	Ticker string // filter to one ticker when non-empty
	Limit  int    // 0 means no limit
}

// SnapshotStore manages the daily portfolio valuation series.
type SnapshotStore interface {
	// Upsert writes the snapshot for its calendar date, overwriting any
	// existing row for that date.
	Upsert(ctx context.Context, snapshot *models.PortfolioSnapshot) error

	Get(ctx context.Context, date string) (*models.PortfolioSnapshot, error)

	// ListLast returns the most recent n snapshots in chronological order.
	// n <= 0 returns the whole series.
	ListLast(ctx context.Context, n int) ([]*models.PortfolioSnapshot, error)

	// PruneBefore deletes snapshots dated strictly before cutoff (YYYY-MM-DD).
	// Returns the number of rows removed.
	PruneBefore(ctx context.Context, cutoff string) (int, error)
}

// PriceStore manages per-ticker price history.
type PriceStore interface {
	Record(ctx context.Context, point *models.PricePoint) error

	// History returns the most recent points for a ticker, oldest first.
	History(ctx context.Context, ticker string, limit int) ([]*models.PricePoint, error)
}

// CacheStore is the uniform TTL cache contract shared by every cache family.
type CacheStore interface {
	// Put JSON-encodes payload and upserts it under key with
	// cached_until = now + ttl, replacing any prior entry for the key.
	Put(ctx context.Context, key string, payload any, ttl time.Duration) error

	// GetFresh returns the most recently created entry whose expiry is
	// strictly in the future, or (nil, nil) on a miss. A miss is not an
	// error; it signals the caller must recompute.
	GetFresh(ctx context.Context, key string) (*models.CacheEntry, error)

	// Sweep deletes all expired entries and returns the count removed.
	Sweep(ctx context.Context) (int, error)
}
