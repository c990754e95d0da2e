// Package surrealdb implements Folio's persistent store and TTL cache
// tables on SurrealDB.
package surrealdb

import (
	"context"
	"fmt"

	"github.com/perolav/folio/internal/common"
	"github.com/perolav/folio/internal/interfaces"
	"github.com/surrealdb/surrealdb.go"
)

// Cache table names, one per family.
const (
	tableAnalysisCache       = "ai_analysis"
	tableRecommendationCache = "recommendations"
	tableTipsCache           = "tips"
	tableMetricsCache        = "analytics_cache"
)

// Manager implements interfaces.StorageManager using SurrealDB.
type Manager struct {
	db     *surrealdb.DB
	logger *common.Logger

	positionStore *PositionStore
	tradeStore    *TradeStore
	snapshotStore *SnapshotStore
	priceStore    *PriceStore
	caches        map[string]*CacheStore
}

// NewManager creates a new StorageManager connected to SurrealDB.
func NewManager(logger *common.Logger, config *common.Config) (*Manager, error) {
	ctx := context.Background()

	db, err := surrealdb.New(config.Storage.Address)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to SurrealDB: %w", err)
	}

	if _, err := db.SignIn(ctx, map[string]interface{}{
		"user": config.Storage.Username,
		"pass": config.Storage.Password,
	}); err != nil {
		return nil, fmt.Errorf("failed to sign in to SurrealDB: %w", err)
	}

	if err := db.Use(ctx, config.Storage.Namespace, config.Storage.Database); err != nil {
		return nil, fmt.Errorf("failed to select namespace/database: %w", err)
	}

	m, err := newManagerWithDB(db, logger)
	if err != nil {
		return nil, err
	}

	logger.Info().
		Str("address", config.Storage.Address).
		Str("namespace", config.Storage.Namespace).
		Str("database", config.Storage.Database).
		Msg("SurrealDB storage manager initialized")

	return m, nil
}

// newManagerWithDB wires stores onto an already-connected database.
// Split out so tests can reuse a shared container connection.
func newManagerWithDB(db *surrealdb.DB, logger *common.Logger) (*Manager, error) {
	ctx := context.Background()

	// Define tables to ensure they exist (SurrealDB v3 errors on querying non-existent tables)
	tables := []string{
		"positions", "trades", "snapshots", "price_history",
		tableAnalysisCache, tableRecommendationCache, tableTipsCache, tableMetricsCache,
	}
	for _, table := range tables {
		sql := fmt.Sprintf("DEFINE TABLE IF NOT EXISTS %s SCHEMALESS", table)
		if _, err := surrealdb.Query[any](ctx, db, sql, nil); err != nil {
			return nil, fmt.Errorf("failed to define table %s: %w", table, err)
		}
	}

	m := &Manager{
		db:            db,
		logger:        logger,
		positionStore: NewPositionStore(db, logger),
		tradeStore:    NewTradeStore(db, logger),
		snapshotStore: NewSnapshotStore(db, logger),
		priceStore:    NewPriceStore(db, logger),
		caches: map[string]*CacheStore{
			tableAnalysisCache:       NewCacheStore(db, tableAnalysisCache, logger),
			tableRecommendationCache: NewCacheStore(db, tableRecommendationCache, logger),
			tableTipsCache:           NewCacheStore(db, tableTipsCache, logger),
			tableMetricsCache:        NewCacheStore(db, tableMetricsCache, logger),
		},
	}

	return m, nil
}

func (m *Manager) PositionStore() interfaces.PositionStore {
	return m.positionStore
}

func (m *Manager) TradeStore() interfaces.TradeStore {
	return m.tradeStore
}

func (m *Manager) SnapshotStore() interfaces.SnapshotStore {
	return m.snapshotStore
}

func (m *Manager) PriceStore() interfaces.PriceStore {
	return m.priceStore
}

func (m *Manager) AnalysisCache() interfaces.CacheStore {
	return m.caches[tableAnalysisCache]
}

func (m *Manager) RecommendationCache() interfaces.CacheStore {
	return m.caches[tableRecommendationCache]
}

func (m *Manager) TipsCache() interfaces.CacheStore {
	return m.caches[tableTipsCache]
}

func (m *Manager) MetricsCache() interfaces.CacheStore {
	return m.caches[tableMetricsCache]
}

// SweepCaches purges expired rows from every cache family.
func (m *Manager) SweepCaches(ctx context.Context) (map[string]int, error) {
	counts := make(map[string]int)

	for table, cache := range m.caches {
		count, err := cache.Sweep(ctx)
		if err != nil {
			return counts, fmt.Errorf("failed to sweep %s: %w", table, err)
		}
		counts[table] = count
	}

	m.logger.Info().
		Int(tableAnalysisCache, counts[tableAnalysisCache]).
		Int(tableRecommendationCache, counts[tableRecommendationCache]).
		Int(tableTipsCache, counts[tableTipsCache]).
		Int(tableMetricsCache, counts[tableMetricsCache]).
		Msg("Expired cache entries purged")

	return counts, nil
}

func (m *Manager) Close() error {
	m.db.Close(context.Background())
	return nil
}

// Compile-time check
var _ interfaces.StorageManager = (*Manager)(nil)
