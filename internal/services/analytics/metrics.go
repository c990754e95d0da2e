package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/perolav/folio/internal/models"
)

// tradingDaysPerYear is the annualization factor for daily snapshot returns.
const tradingDaysPerYear = 252

// ComputeWinRate counts wins (positive realized P/L) and losses (negative)
// over closed round-trips. Break-even trades count toward neither side.
func ComputeWinRate(closed []*models.ClosedTrade) models.WinRateStats {
	stats := models.WinRateStats{ClosedTrades: len(closed)}

	for _, c := range closed {
		switch {
		case c.RealizedPL > 0:
			stats.Wins++
		case c.RealizedPL < 0:
			stats.Losses++
		}
	}

	decided := stats.Wins + stats.Losses
	if decided > 0 {
		stats.WinRatePct = round1(float64(stats.Wins) / float64(decided) * 100)
	}

	return stats
}

// ComputeHoldingTime averages the holding period of closed round-trips,
// rounded to the nearest whole day.
func ComputeHoldingTime(closed []*models.ClosedTrade) models.HoldingStats {
	stats := models.HoldingStats{Samples: len(closed)}
	if len(closed) == 0 {
		return stats
	}

	total := 0
	for _, c := range closed {
		total += c.HoldingDays
	}
	stats.AvgHoldingDays = int(math.Round(float64(total) / float64(len(closed))))

	return stats
}

// ComputeMonthlyPL groups snapshots by calendar month and averages their
// total P/L. Months with no snapshots are omitted rather than zero-filled.
// When months > 0 only the most recent N calendar months (inclusive of the
// current one) are returned.
func ComputeMonthlyPL(snapshots []*models.PortfolioSnapshot, months int, now time.Time) []models.MonthlyPL {
	sums := make(map[string]float64)
	counts := make(map[string]int)

	cutoff := ""
	if months > 0 {
		cutoff = now.AddDate(0, -(months - 1), 0).Format("2006-01")
	}

	for _, snap := range snapshots {
		if len(snap.Date) < 7 {
			continue
		}
		month := snap.Date[:7]
		if cutoff != "" && month < cutoff {
			continue
		}
		sums[month] += snap.TotalPL
		counts[month]++
	}

	result := make([]models.MonthlyPL, 0, len(sums))
	for month, sum := range sums {
		result = append(result, models.MonthlyPL{
			Month: month,
			AvgPL: math.Round(sum / float64(counts[month])),
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Month < result[j].Month
	})

	return result
}

// ComputeSharpe derives the annualized Sharpe ratio from day-over-day
// snapshot value returns. Population standard deviation, 252 trading days.
// Returns an all-zero result (with DataPoints set) when fewer than two
// snapshots exist, and a zero ratio when volatility is zero.
func ComputeSharpe(snapshots []*models.PortfolioSnapshot, riskFreeRate float64) models.SharpeStats {
	stats := models.SharpeStats{
		RiskFreeRate: riskFreeRate,
		DataPoints:   len(snapshots),
	}
	if len(snapshots) < 2 {
		return stats
	}

	var returns []float64
	for i := 1; i < len(snapshots); i++ {
		prev := snapshots[i-1].TotalValue
		if prev == 0 {
			continue
		}
		returns = append(returns, (snapshots[i].TotalValue-prev)/prev)
	}
	if len(returns) == 0 {
		return stats
	}

	mean := 0.0
	for _, r := range returns {
		mean += r
	}
	mean /= float64(len(returns))

	variance := 0.0
	for _, r := range returns {
		d := r - mean
		variance += d * d
	}
	variance /= float64(len(returns))

	annualReturn := mean * tradingDaysPerYear
	annualVol := math.Sqrt(variance) * math.Sqrt(tradingDaysPerYear)

	stats.AnnualReturnPct = round2(annualReturn * 100)
	stats.AnnualVolatilityPct = round2(annualVol * 100)
	if annualVol > 0 {
		stats.SharpeRatio = round2((annualReturn - riskFreeRate) / annualVol)
	}

	return stats
}

// ComputeSectorPerformance aggregates unrealized P/L, market value and
// position count per sector. sectorFor maps a ticker to its sector name.
func ComputeSectorPerformance(positions []*models.Position, sectorFor func(string) string) []models.SectorStat {
	bySector := make(map[string]*models.SectorStat)

	for _, pos := range positions {
		sector := sectorFor(pos.Ticker)
		stat, ok := bySector[sector]
		if !ok {
			stat = &models.SectorStat{Sector: sector}
			bySector[sector] = stat
		}
		stat.PL += pos.UnrealizedPL()
		stat.MarketValue += pos.MarketValue()
		stat.Positions++
	}

	result := make([]models.SectorStat, 0, len(bySector))
	for _, stat := range bySector {
		stat.PL = math.Round(stat.PL)
		result = append(result, *stat)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Sector < result[j].Sector
	})

	return result
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
