package surrealdb

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedPayload struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

func TestCachePutGetFresh(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()
	cache := m.AnalysisCache()

	err := cache.Put(ctx, "EQNR", cachedPayload{Value: "analysis text", Count: 3}, time.Hour)
	require.NoError(t, err)

	entry, err := cache.GetFresh(ctx, "EQNR")
	require.NoError(t, err)
	require.NotNil(t, entry)

	var got cachedPayload
	require.NoError(t, entry.Decode(&got))
	assert.Equal(t, "analysis text", got.Value)
	assert.Equal(t, 3, got.Count)
}

func TestCacheMissReturnsNilNil(t *testing.T) {
	m := newTestManager(t)

	entry, err := m.AnalysisCache().GetFresh(context.Background(), "UNKNOWN")
	require.NoError(t, err)
	assert.Nil(t, entry)
}

func TestCacheExpiredEntryIsMiss(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()
	cache := m.MetricsCache()

	require.NoError(t, cache.Put(ctx, "win_rate", cachedPayload{Value: "stale"}, -time.Minute))

	entry, err := cache.GetFresh(ctx, "win_rate")
	require.NoError(t, err)
	assert.Nil(t, entry, "expired entry reads as a miss")
}

func TestCachePutReplacesEntry(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()
	cache := m.TipsCache()

	require.NoError(t, cache.Put(ctx, "2024-06-01", cachedPayload{Value: "old"}, time.Hour))
	require.NoError(t, cache.Put(ctx, "2024-06-01", cachedPayload{Value: "new"}, time.Hour))

	entry, err := cache.GetFresh(ctx, "2024-06-01")
	require.NoError(t, err)
	require.NotNil(t, entry)

	var got cachedPayload
	require.NoError(t, entry.Decode(&got))
	assert.Equal(t, "new", got.Value, "same key holds one row, last write wins")
}

func TestCacheSweepRemovesOnlyExpired(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()
	cache := m.RecommendationCache()

	require.NoError(t, cache.Put(ctx, "EQNR_general", cachedPayload{Value: "keep"}, time.Hour))
	require.NoError(t, cache.Put(ctx, "DNB_general", cachedPayload{Value: "expired"}, -time.Minute))
	require.NoError(t, cache.Put(ctx, "TEL_exit", cachedPayload{Value: "expired"}, -time.Minute))

	count, err := cache.Sweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	entry, err := cache.GetFresh(ctx, "EQNR_general")
	require.NoError(t, err)
	assert.NotNil(t, entry, "fresh entry survives the sweep")
}

func TestCacheFamiliesAreIsolated(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	require.NoError(t, m.AnalysisCache().Put(ctx, "EQNR", cachedPayload{Value: "analysis"}, time.Hour))

	entry, err := m.RecommendationCache().GetFresh(ctx, "EQNR")
	require.NoError(t, err)
	assert.Nil(t, entry, "same key in another family is independent")
}

func TestSweepCachesReportsPerFamily(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	require.NoError(t, m.AnalysisCache().Put(ctx, "a", cachedPayload{}, -time.Minute))
	require.NoError(t, m.MetricsCache().Put(ctx, "b", cachedPayload{}, -time.Minute))
	require.NoError(t, m.MetricsCache().Put(ctx, "c", cachedPayload{}, -time.Minute))

	counts, err := m.SweepCaches(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, counts["ai_analysis"])
	assert.Equal(t, 2, counts["analytics_cache"])
	assert.Equal(t, 0, counts["recommendations"])
	assert.Equal(t, 0, counts["tips"])
}
