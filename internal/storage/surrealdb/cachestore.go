package surrealdb

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/perolav/folio/internal/common"
	"github.com/perolav/folio/internal/models"
	"github.com/surrealdb/surrealdb.go"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"
)

// CacheStore is the single TTL cache implementation, parameterized by table.
// The Manager exposes one instance per family (ai_analysis, recommendations,
// tips, analytics_cache). Entries are immutable; a recompute for the same
// logical key replaces the row, and an explicit Sweep garbage-collects
// whatever has expired.
type CacheStore struct {
	db     *surrealdb.DB
	table  string
	logger *common.Logger
}

func NewCacheStore(db *surrealdb.DB, table string, logger *common.Logger) *CacheStore {
	return &CacheStore{db: db, table: table, logger: logger}
}

// Put JSON-encodes payload and upserts it under key with
// cached_until = now + ttl. Last write wins for concurrent writers.
func (s *CacheStore) Put(ctx context.Context, key string, payload any, ttl time.Duration) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode cache payload: %w", err)
	}

	now := time.Now()
	entry := &models.CacheEntry{
		Key:         key,
		Payload:     data,
		CachedUntil: now.Add(ttl),
		CreatedAt:   now,
	}

	sql := "UPSERT $rid CONTENT $entry"
	vars := map[string]any{
		"rid":   surrealmodels.NewRecordID(s.table, key),
		"entry": entry,
	}

	var lastErr error
	for attempt := 1; attempt <= 3; attempt++ {
		_, err := surrealdb.Query[[]models.CacheEntry](ctx, s.db, sql, vars)
		if err == nil {
			return nil
		}
		lastErr = err
	}
	return fmt.Errorf("failed to put cache entry after retries: %w", lastErr)
}

// GetFresh returns the most recently created entry for key whose expiry is
// strictly in the future, or (nil, nil) on a miss.
func (s *CacheStore) GetFresh(ctx context.Context, key string) (*models.CacheEntry, error) {
	sql := fmt.Sprintf(
		"SELECT * FROM %s WHERE key = $key AND cached_until > $now ORDER BY created_at DESC LIMIT 1",
		s.table,
	)
	vars := map[string]any{
		"key": key,
		"now": time.Now(),
	}

	results, err := surrealdb.Query[[]models.CacheEntry](ctx, s.db, sql, vars)
	if err != nil {
		return nil, fmt.Errorf("failed to read cache entry: %w", err)
	}

	if results == nil || len(*results) == 0 || len((*results)[0].Result) == 0 {
		return nil, nil
	}
	return &(*results)[0].Result[0], nil
}

// Sweep deletes all entries whose expiry has passed. Safe to call at any time.
func (s *CacheStore) Sweep(ctx context.Context) (int, error) {
	sql := fmt.Sprintf("DELETE %s WHERE cached_until <= $now RETURN BEFORE", s.table)
	vars := map[string]any{"now": time.Now()}

	results, err := surrealdb.Query[[]models.CacheEntry](ctx, s.db, sql, vars)
	if err != nil {
		return 0, fmt.Errorf("failed to sweep cache: %w", err)
	}

	count := 0
	if results != nil && len(*results) > 0 {
		count = len((*results)[0].Result)
	}

	if count > 0 {
		s.logger.Debug().Str("table", s.table).Int("removed", count).Msg("Swept expired cache entries")
	}
	return count, nil
}
