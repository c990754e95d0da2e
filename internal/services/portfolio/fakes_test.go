package portfolio

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/perolav/folio/internal/interfaces"
	"github.com/perolav/folio/internal/models"
)

// In-memory stand-ins for the storage layer.

type fakePositionStore struct {
	positions []*models.Position
	addErr    error
}

func (f *fakePositionStore) Add(_ context.Context, position *models.Position) error {
	if f.addErr != nil {
		return f.addErr
	}
	position.ID = fmt.Sprintf("pos_%d", len(f.positions)+1)
	f.positions = append(f.positions, position)
	return nil
}

func (f *fakePositionStore) Get(_ context.Context, id string) (*models.Position, error) {
	for _, p := range f.positions {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakePositionStore) List(_ context.Context) ([]*models.Position, error) {
	return f.positions, nil
}

func (f *fakePositionStore) UpdatePrice(_ context.Context, ticker string, price float64) (int, error) {
	count := 0
	for _, p := range f.positions {
		if p.Ticker == ticker {
			v := price
			p.CurrentPrice = &v
			count++
		}
	}
	return count, nil
}

func (f *fakePositionStore) Delete(_ context.Context, id string) (int, error) {
	for i, p := range f.positions {
		if p.ID == id {
			f.positions = append(f.positions[:i], f.positions[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

type fakeSnapshotStore struct {
	byDate map[string]*models.PortfolioSnapshot
}

func newFakeSnapshotStore() *fakeSnapshotStore {
	return &fakeSnapshotStore{byDate: make(map[string]*models.PortfolioSnapshot)}
}

func (f *fakeSnapshotStore) Upsert(_ context.Context, snapshot *models.PortfolioSnapshot) error {
	f.byDate[snapshot.Date] = snapshot
	return nil
}

func (f *fakeSnapshotStore) Get(_ context.Context, date string) (*models.PortfolioSnapshot, error) {
	return f.byDate[date], nil
}

func (f *fakeSnapshotStore) ListLast(_ context.Context, n int) ([]*models.PortfolioSnapshot, error) {
	all := make([]*models.PortfolioSnapshot, 0, len(f.byDate))
	for _, s := range f.byDate {
		all = append(all, s)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Date < all[j].Date })
	if n > 0 && len(all) > n {
		all = all[len(all)-n:]
	}
	return all, nil
}

func (f *fakeSnapshotStore) PruneBefore(_ context.Context, cutoff string) (int, error) {
	count := 0
	for date := range f.byDate {
		if date < cutoff {
			delete(f.byDate, date)
			count++
		}
	}
	return count, nil
}

type fakePriceStore struct {
	points []*models.PricePoint
}

func (f *fakePriceStore) Record(_ context.Context, point *models.PricePoint) error {
	f.points = append(f.points, point)
	return nil
}

func (f *fakePriceStore) History(_ context.Context, ticker string, _ int) ([]*models.PricePoint, error) {
	var out []*models.PricePoint
	for _, p := range f.points {
		if p.Ticker == ticker {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeCacheStore struct {
	entries map[string]*models.CacheEntry
}

func newFakeCacheStore() *fakeCacheStore {
	return &fakeCacheStore{entries: make(map[string]*models.CacheEntry)}
}

func (f *fakeCacheStore) Put(_ context.Context, key string, payload any, ttl time.Duration) error {
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

func (f *fakeCacheStore) GetFresh(_ context.Context, key string) (*models.CacheEntry, error) {
	entry, ok := f.entries[key]
	if !ok || !entry.Fresh(time.Now()) {
		return nil, nil
	}
	return entry, nil
}

func (f *fakeCacheStore) Sweep(_ context.Context) (int, error) {
	count := 0
	for key, entry := range f.entries {
		if !entry.Fresh(time.Now()) {
			delete(f.entries, key)
			count++
		}
	}
	return count, nil
}

type fakeStorage struct {
	positions *fakePositionStore
	snapshots *fakeSnapshotStore
	prices    *fakePriceStore
	metrics   *fakeCacheStore
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{
		positions: &fakePositionStore{},
		snapshots: newFakeSnapshotStore(),
		prices:    &fakePriceStore{},
		metrics:   newFakeCacheStore(),
	}
}

func (f *fakeStorage) PositionStore() interfaces.PositionStore     { return f.positions }
func (f *fakeStorage) TradeStore() interfaces.TradeStore           { return nil }
func (f *fakeStorage) SnapshotStore() interfaces.SnapshotStore     { return f.snapshots }
func (f *fakeStorage) PriceStore() interfaces.PriceStore           { return f.prices }
func (f *fakeStorage) AnalysisCache() interfaces.CacheStore        { return nil }
func (f *fakeStorage) RecommendationCache() interfaces.CacheStore  { return nil }
func (f *fakeStorage) TipsCache() interfaces.CacheStore            { return nil }
func (f *fakeStorage) MetricsCache() interfaces.CacheStore         { return f.metrics }

func (f *fakeStorage) SweepCaches(ctx context.Context) (map[string]int, error) {
	n, err := f.metrics.Sweep(ctx)
	if err != nil {
		return nil, err
	}
	return map[string]int{"metrics": n}, nil
}

func (f *fakeStorage) Close() error { return nil }
