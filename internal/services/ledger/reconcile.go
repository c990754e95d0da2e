package ledger

import (
	"sort"

	"github.com/perolav/folio/internal/models"
)

// Reconcile replays a trade ledger and reconstructs closed round-trips using
// FIFO lot matching. Trades are partitioned by ticker and processed in
// ascending (date, input-order) order; each SELL closes against the oldest
// still-open BUY lot.
//
// Matching is share-count-blind: one BUY lot closes against one SELL event
// regardless of share-count equality. A SELL with no open lot is dropped (a
// data-quality situation, not an error) and excess BUY volume stays open and
// contributes nothing to closed-trade metrics.
func Reconcile(trades []*models.Trade) []*models.ClosedTrade {
	byTicker := make(map[string][]*models.Trade)
	var tickerOrder []string

	for _, t := range trades {
		if _, seen := byTicker[t.Ticker]; !seen {
			tickerOrder = append(tickerOrder, t.Ticker)
		}
		byTicker[t.Ticker] = append(byTicker[t.Ticker], t)
	}

	var closed []*models.ClosedTrade
	for _, ticker := range tickerOrder {
		entries := byTicker[ticker]

		// Stable sort keeps input (insertion) order for same-date trades.
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].Date.Before(entries[j].Date)
		})

		var open []*models.Trade // FIFO queue of unmatched BUY lots
		for _, t := range entries {
			switch t.Action {
			case models.TradeActionBuy:
				open = append(open, t)
			case models.TradeActionSell:
				if len(open) == 0 {
					continue // unmatched SELL
				}
				entry := open[0]
				open = open[1:]
				closed = append(closed, closeTrade(entry, t))
			}
		}
	}

	return closed
}

// closeTrade forms one round-trip from a matched BUY/SELL pair.
func closeTrade(entry, exit *models.Trade) *models.ClosedTrade {
	realized := (exit.Price-entry.Price)*float64(exit.Shares) - exit.Fees - entry.Fees

	days := 0
	if exit.Date.After(entry.Date) {
		days = int(exit.Date.Sub(entry.Date).Hours() / 24)
	}

	return &models.ClosedTrade{
		Ticker:      entry.Ticker,
		EntryTrade:  entry,
		ExitTrade:   exit,
		RealizedPL:  realized,
		HoldingDays: days,
		Win:         realized > 0,
	}
}
