package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/perolav/folio/internal/models"
)

func day(d string) time.Time {
	t, err := time.Parse("2006-01-02", d)
	if err != nil {
		panic(err)
	}
	return t
}

func buy(ticker string, shares int, price float64, date string) *models.Trade {
	return &models.Trade{Ticker: ticker, Action: models.TradeActionBuy, Shares: shares, Price: price, Date: day(date)}
}

func sell(ticker string, shares int, price float64, date string) *models.Trade {
	return &models.Trade{Ticker: ticker, Action: models.TradeActionSell, Shares: shares, Price: price, Date: day(date)}
}

func TestReconcileFIFOOrder(t *testing.T) {
	trades := []*models.Trade{
		buy("EQNR", 10, 100, "2024-01-01"),
		buy("EQNR", 10, 110, "2024-01-05"),
		sell("EQNR", 10, 120, "2024-01-10"),
	}

	closed := Reconcile(trades)
	require.Len(t, closed, 1)

	// The SELL closes against the oldest lot; the second BUY stays open.
	assert.Equal(t, 100.0, closed[0].EntryTrade.Price)
	assert.Equal(t, 200.0, closed[0].RealizedPL)
	assert.Equal(t, 9, closed[0].HoldingDays)
	assert.True(t, closed[0].Win)
}

func TestReconcileUnmatchedSellDropped(t *testing.T) {
	trades := []*models.Trade{
		sell("DNB", 5, 90, "2024-02-01"),
	}

	closed := Reconcile(trades)
	assert.Empty(t, closed)
}

func TestReconcileSellBeforeAnyBuyThenMatched(t *testing.T) {
	trades := []*models.Trade{
		sell("MOWI", 5, 90, "2024-01-02"),
		buy("MOWI", 5, 80, "2024-01-03"),
		sell("MOWI", 5, 100, "2024-01-08"),
	}

	closed := Reconcile(trades)
	require.Len(t, closed, 1)
	assert.Equal(t, 80.0, closed[0].EntryTrade.Price)
	assert.Equal(t, 100.0, closed[0].ExitTrade.Price)
}

func TestReconcileFeesReduceRealizedPL(t *testing.T) {
	entry := buy("TEL", 10, 100, "2024-03-01")
	entry.Fees = 15
	exit := sell("TEL", 10, 105, "2024-03-11")
	exit.Fees = 15

	closed := Reconcile([]*models.Trade{entry, exit})
	require.Len(t, closed, 1)

	// (105-100)*10 - 15 - 15
	assert.Equal(t, 20.0, closed[0].RealizedPL)
	assert.True(t, closed[0].Win)
}

func TestReconcileShareCountBlindMatching(t *testing.T) {
	trades := []*models.Trade{
		buy("NHY", 100, 50, "2024-01-01"),
		sell("NHY", 10, 60, "2024-01-15"),
	}

	closed := Reconcile(trades)
	require.Len(t, closed, 1)

	// Realized P/L uses the exit's share count.
	assert.Equal(t, 100.0, closed[0].RealizedPL)
}

func TestReconcilePartitionsByTicker(t *testing.T) {
	trades := []*models.Trade{
		buy("EQNR", 10, 100, "2024-01-01"),
		buy("DNB", 20, 200, "2024-01-02"),
		sell("DNB", 20, 210, "2024-01-05"),
		sell("EQNR", 10, 95, "2024-01-06"),
	}

	closed := Reconcile(trades)
	require.Len(t, closed, 2)

	byTicker := map[string]*models.ClosedTrade{}
	for _, c := range closed {
		byTicker[c.Ticker] = c
	}

	require.Contains(t, byTicker, "EQNR")
	require.Contains(t, byTicker, "DNB")
	assert.Equal(t, -50.0, byTicker["EQNR"].RealizedPL)
	assert.False(t, byTicker["EQNR"].Win)
	assert.Equal(t, 200.0, byTicker["DNB"].RealizedPL)
	assert.True(t, byTicker["DNB"].Win)
}

func TestReconcileSameDayHoldingIsZeroDays(t *testing.T) {
	trades := []*models.Trade{
		buy("YAR", 10, 300, "2024-04-01"),
		sell("YAR", 10, 305, "2024-04-01"),
	}

	closed := Reconcile(trades)
	require.Len(t, closed, 1)
	assert.Equal(t, 0, closed[0].HoldingDays)
}

func TestReconcileStableOnSameDateUsesInsertionOrder(t *testing.T) {
	first := buy("ORK", 10, 100, "2024-05-01")
	second := buy("ORK", 10, 110, "2024-05-01")
	trades := []*models.Trade{
		first,
		second,
		sell("ORK", 10, 120, "2024-05-10"),
	}

	closed := Reconcile(trades)
	require.Len(t, closed, 1)
	assert.Same(t, first, closed[0].EntryTrade)
}
