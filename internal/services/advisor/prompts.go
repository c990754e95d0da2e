package advisor

import (
	"fmt"
	"strings"

	"github.com/perolav/folio/internal/models"
)

// buildAnalysisPrompt creates the prompt for a ticker analysis.
func buildAnalysisPrompt(ticker string, positions []*models.Position, report *models.IndicatorReport) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("You are an equity analyst covering the Oslo Stock Exchange. Analyze %s for a private investor.\n", ticker))

	writePositionContext(&sb, positions)
	writeIndicatorContext(&sb, report)

	sb.WriteString(`
Provide a concise analysis in plain prose:
1. Current technical picture and what it suggests short-term.
2. Key risks for this holding.
3. What to watch over the next month.
Keep it under 300 words. No disclaimers.`)

	return sb.String()
}

// buildRecommendationPrompt creates the prompt for a buy/hold/sell style call.
func buildRecommendationPrompt(ticker, kind string, positions []*models.Position, report *models.IndicatorReport) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("You are an equity analyst covering the Oslo Stock Exchange. Give a %s recommendation for %s.\n", kind, ticker))

	writePositionContext(&sb, positions)
	writeIndicatorContext(&sb, report)

	sb.WriteString(`
Start your answer with exactly one of: BUY, SELL, HOLD.
Follow with a short rationale (3-5 sentences) grounded in the data above.`)

	return sb.String()
}

// buildTipsPrompt creates the prompt for the daily tips list.
func buildTipsPrompt(positions []*models.Position, closed []*models.ClosedTrade) string {
	var sb strings.Builder

	sb.WriteString("You are a portfolio coach for a private investor on the Oslo Stock Exchange.\n\nCurrent holdings:\n")
	if len(positions) == 0 {
		sb.WriteString("(none)\n")
	}
	for _, p := range positions {
		sb.WriteString(fmt.Sprintf("- %s: %d shares, avg %.2f, mark %.2f, unrealized P/L %.0f\n",
			p.Ticker, p.Shares, p.AvgBuyPrice, p.MarkPrice(), p.UnrealizedPL()))
	}

	if len(closed) > 0 {
		wins := 0
		for _, c := range closed {
			if c.Win {
				wins++
			}
		}
		sb.WriteString(fmt.Sprintf("\nTrade history: %d closed trades, %d winners.\n", len(closed), wins))

		recent := closed
		if len(recent) > 5 {
			recent = recent[len(recent)-5:]
		}
		for _, c := range recent {
			sb.WriteString(fmt.Sprintf("- %s: P/L %.0f over %d days\n", c.Ticker, c.RealizedPL, c.HoldingDays))
		}
	}

	sb.WriteString(`
Give 3-5 concrete, actionable tips for today. One per line, each starting with "- ". No preamble, no disclaimers.`)

	return sb.String()
}

func writePositionContext(sb *strings.Builder, positions []*models.Position) {
	if len(positions) == 0 {
		sb.WriteString("\nThe investor holds no position in this ticker.\n")
		return
	}
	sb.WriteString("\nThe investor's open lots:\n")
	for _, p := range positions {
		sb.WriteString(fmt.Sprintf("- %d shares bought %s at avg %.2f, current mark %.2f, unrealized P/L %.0f\n",
			p.Shares, p.PurchaseDate.Format("2006-01-02"), p.AvgBuyPrice, p.MarkPrice(), p.UnrealizedPL()))
	}
}

func writeIndicatorContext(sb *strings.Builder, report *models.IndicatorReport) {
	if report == nil {
		return
	}
	sb.WriteString(fmt.Sprintf("\nTechnical indicators (latest price %.2f):\n", report.LatestPrice))
	if report.RSI != nil {
		sb.WriteString(fmt.Sprintf("- RSI(14): %.1f\n", *report.RSI))
	}
	if m := report.MACD; m != nil && m.MACD != nil && m.Signal != nil && m.Histogram != nil {
		sb.WriteString(fmt.Sprintf("- MACD: %.3f, signal %.3f, histogram %.3f\n",
			*m.MACD, *m.Signal, *m.Histogram))
	}
	if b := report.BollingerBands; b != nil && b.Upper != nil && b.Middle != nil && b.Lower != nil {
		sb.WriteString(fmt.Sprintf("- Bollinger: upper %.2f, middle %.2f, lower %.2f\n",
			*b.Upper, *b.Middle, *b.Lower))
	}
	if report.Volume.SpikeRatio >= 2 {
		sb.WriteString(fmt.Sprintf("- Volume spike: %.0f vs %.0f average (%.1fx)\n",
			report.Volume.Current, report.Volume.Average, report.Volume.SpikeRatio))
	}
}

// extractAction pulls the leading BUY/SELL/HOLD verdict from a
// recommendation response, defaulting to HOLD for free-form answers.
func extractAction(text string) string {
	upper := strings.ToUpper(strings.TrimSpace(text))
	for _, action := range []string{"BUY", "SELL", "HOLD"} {
		if strings.HasPrefix(upper, action) {
			return action
		}
	}
	return "HOLD"
}

// parseTips splits a bullet-list response into individual tips, tolerating
// the bullet styles Gemini actually produces.
func parseTips(text string) []string {
	var tips []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		for _, prefix := range []string{"- ", "* ", "• "} {
			if strings.HasPrefix(line, prefix) {
				line = strings.TrimSpace(strings.TrimPrefix(line, prefix))
				break
			}
		}
		if line == "" {
			continue
		}
		tips = append(tips, line)
	}
	return tips
}
