package analytics

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/perolav/folio/internal/common"
	"github.com/perolav/folio/internal/interfaces"
	"github.com/perolav/folio/internal/models"
)

type fakeLedger struct {
	closed []*models.ClosedTrade
	calls  int
}

func (f *fakeLedger) AppendTrade(_ context.Context, trade *models.Trade) (*models.Trade, error) {
	return trade, nil
}

func (f *fakeLedger) ListTrades(_ context.Context, _ string, _ int) ([]*models.Trade, error) {
	return nil, nil
}

func (f *fakeLedger) ClosedTrades(_ context.Context) ([]*models.ClosedTrade, error) {
	f.calls++
	return f.closed, nil
}

type fakeCache struct {
	entries map[string]*models.CacheEntry
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string]*models.CacheEntry)}
}

func (f *fakeCache) Put(_ context.Context, key string, payload any, ttl time.Duration) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	f.entries[key] = &models.CacheEntry{
		Key:         key,
		Payload:     raw,
		CachedUntil: time.Now().Add(ttl),
		CreatedAt:   time.Now(),
	}
	return nil
}

func (f *fakeCache) GetFresh(_ context.Context, key string) (*models.CacheEntry, error) {
	entry, ok := f.entries[key]
	if !ok || !entry.Fresh(time.Now()) {
		return nil, nil
	}
	return entry, nil
}

func (f *fakeCache) Sweep(_ context.Context) (int, error) { return 0, nil }

type fakeSnapshots struct {
	snapshots []*models.PortfolioSnapshot
}

func (f *fakeSnapshots) Upsert(_ context.Context, _ *models.PortfolioSnapshot) error { return nil }
func (f *fakeSnapshots) Get(_ context.Context, _ string) (*models.PortfolioSnapshot, error) {
	return nil, nil
}
func (f *fakeSnapshots) ListLast(_ context.Context, _ int) ([]*models.PortfolioSnapshot, error) {
	return f.snapshots, nil
}
func (f *fakeSnapshots) PruneBefore(_ context.Context, _ string) (int, error) { return 0, nil }

type fakePositions struct {
	positions []*models.Position
}

func (f *fakePositions) Add(_ context.Context, _ *models.Position) error { return nil }
func (f *fakePositions) Get(_ context.Context, _ string) (*models.Position, error) {
	return nil, nil
}
func (f *fakePositions) List(_ context.Context) ([]*models.Position, error) {
	return f.positions, nil
}
func (f *fakePositions) UpdatePrice(_ context.Context, _ string, _ float64) (int, error) {
	return 0, nil
}
func (f *fakePositions) Delete(_ context.Context, _ string) (int, error) { return 0, nil }

type fakeStorage struct {
	positions *fakePositions
	snapshots *fakeSnapshots
	metrics   *fakeCache
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{
		positions: &fakePositions{},
		snapshots: &fakeSnapshots{},
		metrics:   newFakeCache(),
	}
}

func (f *fakeStorage) PositionStore() interfaces.PositionStore    { return f.positions }
func (f *fakeStorage) TradeStore() interfaces.TradeStore          { return nil }
func (f *fakeStorage) SnapshotStore() interfaces.SnapshotStore    { return f.snapshots }
func (f *fakeStorage) PriceStore() interfaces.PriceStore          { return nil }
func (f *fakeStorage) AnalysisCache() interfaces.CacheStore       { return nil }
func (f *fakeStorage) RecommendationCache() interfaces.CacheStore { return nil }
func (f *fakeStorage) TipsCache() interfaces.CacheStore           { return nil }
func (f *fakeStorage) MetricsCache() interfaces.CacheStore        { return f.metrics }
func (f *fakeStorage) SweepCaches(_ context.Context) (map[string]int, error) {
	return nil, nil
}
func (f *fakeStorage) Close() error { return nil }

func newTestService(ledger *fakeLedger) (*Service, *fakeStorage) {
	storage := newFakeStorage()
	config := &common.Config{}
	config.Analytics.RiskFreeRate = 0.02
	return NewService(storage, ledger, config, common.NewSilentLogger()), storage
}

func TestWinRateComputesThenServesFromCache(t *testing.T) {
	ledger := &fakeLedger{closed: []*models.ClosedTrade{
		{RealizedPL: 100, Win: true},
		{RealizedPL: -40},
	}}
	svc, storage := newTestService(ledger)
	ctx := context.Background()

	first, err := svc.WinRate(ctx)
	require.NoError(t, err)
	assert.Equal(t, 50.0, first.WinRatePct)
	assert.Equal(t, 1, ledger.calls)
	assert.Contains(t, storage.metrics.entries, "win_rate")

	second, err := svc.WinRate(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, ledger.calls, "cache hit skips reconciliation")
}

func TestWinRateStaleCacheRecomputes(t *testing.T) {
	ledger := &fakeLedger{closed: []*models.ClosedTrade{{RealizedPL: 10, Win: true}}}
	svc, storage := newTestService(ledger)

	raw, _ := json.Marshal(models.WinRateStats{WinRatePct: 1.0})
	storage.metrics.entries["win_rate"] = &models.CacheEntry{
		Key:         "win_rate",
		Payload:     raw,
		CachedUntil: time.Now().Add(-time.Minute),
	}

	stats, err := svc.WinRate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 100.0, stats.WinRatePct)
	assert.Equal(t, 1, ledger.calls)
}

func TestWinRateMalformedCacheRecomputes(t *testing.T) {
	ledger := &fakeLedger{}
	svc, storage := newTestService(ledger)

	storage.metrics.entries["win_rate"] = &models.CacheEntry{
		Key:         "win_rate",
		Payload:     json.RawMessage(`{broken`),
		CachedUntil: time.Now().Add(time.Hour),
	}

	_, err := svc.WinRate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, ledger.calls)
}

func TestSharpeKeyVariesWithRiskFreeRate(t *testing.T) {
	svc, storage := newTestService(&fakeLedger{})
	storage.snapshots.snapshots = []*models.PortfolioSnapshot{
		{Date: "2024-01-01", TotalValue: 100},
		{Date: "2024-01-02", TotalValue: 105},
		{Date: "2024-01-03", TotalValue: 103},
	}
	ctx := context.Background()

	_, err := svc.Sharpe(ctx, 0.02)
	require.NoError(t, err)
	_, err = svc.Sharpe(ctx, 0.04)
	require.NoError(t, err)

	assert.Contains(t, storage.metrics.entries, "sharpe_rf_0.0200")
	assert.Contains(t, storage.metrics.entries, "sharpe_rf_0.0400")
}

func TestSummaryAssemblesAllMetrics(t *testing.T) {
	ledger := &fakeLedger{closed: []*models.ClosedTrade{{RealizedPL: 50, HoldingDays: 4, Win: true}}}
	svc, storage := newTestService(ledger)
	storage.snapshots.snapshots = []*models.PortfolioSnapshot{
		{Date: "2024-01-01", TotalValue: 100, TotalPL: 0},
		{Date: "2024-01-02", TotalValue: 110, TotalPL: 10},
	}
	price := 120.0
	storage.positions.positions = []*models.Position{
		{Ticker: "EQNR", Shares: 10, AvgBuyPrice: 100, CurrentPrice: &price},
	}

	summary, err := svc.Summary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 100.0, summary.WinRate.WinRatePct)
	assert.Equal(t, 4, summary.Holding.AvgHoldingDays)
	assert.NotEmpty(t, summary.Monthly)
	assert.Equal(t, 2, summary.Sharpe.DataPoints)
	require.Len(t, summary.Sectors, 1)
	assert.False(t, summary.GeneratedAt.IsZero())
}
