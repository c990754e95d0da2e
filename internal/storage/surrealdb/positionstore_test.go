package surrealdb

import (
	"context"
	"testing"
	"time"

	"github.com/perolav/folio/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPositionAddAndGet(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()
	store := m.PositionStore()

	pos := &models.Position{
		Ticker:       "EQNR",
		Shares:       10,
		AvgBuyPrice:  295.5,
		PurchaseDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Fees:         29,
	}
	require.NoError(t, store.Add(ctx, pos))

	assert.NotEmpty(t, pos.ID)
	assert.False(t, pos.CreatedAt.IsZero())
	assert.False(t, pos.UpdatedAt.IsZero())

	got, err := store.Get(ctx, pos.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "EQNR", got.Ticker)
	assert.Equal(t, 295.5, got.AvgBuyPrice)
	assert.Nil(t, got.CurrentPrice, "new lot has no mark")
}

func TestPositionGetMiss(t *testing.T) {
	m := newTestManager(t)

	got, err := m.PositionStore().Get(context.Background(), "pos_missing")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestPositionListOrder(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()
	store := m.PositionStore()

	d := func(day int) time.Time { return time.Date(2024, 3, day, 0, 0, 0, 0, time.UTC) }
	require.NoError(t, store.Add(ctx, &models.Position{Ticker: "TEL", Shares: 5, AvgBuyPrice: 120, PurchaseDate: d(1)}))
	require.NoError(t, store.Add(ctx, &models.Position{Ticker: "EQNR", Shares: 10, AvgBuyPrice: 300, PurchaseDate: d(10)}))
	require.NoError(t, store.Add(ctx, &models.Position{Ticker: "EQNR", Shares: 4, AvgBuyPrice: 310, PurchaseDate: d(2)}))

	listed, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 3)
	assert.Equal(t, "EQNR", listed[0].Ticker)
	assert.Equal(t, 310.0, listed[0].AvgBuyPrice, "ticker then purchase_date ascending")
	assert.Equal(t, "EQNR", listed[1].Ticker)
	assert.Equal(t, "TEL", listed[2].Ticker)
}

func TestPositionUpdatePriceMarksAllLots(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()
	store := m.PositionStore()

	require.NoError(t, store.Add(ctx, &models.Position{Ticker: "EQNR", Shares: 10, AvgBuyPrice: 300, PurchaseDate: time.Now()}))
	require.NoError(t, store.Add(ctx, &models.Position{Ticker: "EQNR", Shares: 5, AvgBuyPrice: 310, PurchaseDate: time.Now()}))
	require.NoError(t, store.Add(ctx, &models.Position{Ticker: "DNB", Shares: 8, AvgBuyPrice: 200, PurchaseDate: time.Now()}))

	count, err := store.UpdatePrice(ctx, "EQNR", 333)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	listed, err := store.List(ctx)
	require.NoError(t, err)
	for _, p := range listed {
		if p.Ticker == "EQNR" {
			require.NotNil(t, p.CurrentPrice)
			assert.Equal(t, 333.0, *p.CurrentPrice)
		} else {
			assert.Nil(t, p.CurrentPrice)
		}
	}
}

func TestPositionUpdatePriceUnknownTicker(t *testing.T) {
	m := newTestManager(t)

	count, err := m.PositionStore().UpdatePrice(context.Background(), "NOPE", 100)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestPositionDelete(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()
	store := m.PositionStore()

	pos := &models.Position{Ticker: "EQNR", Shares: 10, AvgBuyPrice: 300, PurchaseDate: time.Now()}
	require.NoError(t, store.Add(ctx, pos))

	count, err := store.Delete(ctx, pos.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	count, err = store.Delete(ctx, pos.ID)
	require.NoError(t, err)
	assert.Zero(t, count, "second delete finds nothing")

	got, err := store.Get(ctx, pos.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}
