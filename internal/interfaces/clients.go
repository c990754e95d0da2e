// Package interfaces defines service contracts for Folio
package interfaces

import (
	"context"

	"github.com/perolav/folio/internal/models"
)

// AIClient generates text completions (Gemini)
type AIClient interface {
	// GenerateContent generates AI content from a prompt
	GenerateContent(ctx context.Context, prompt string) (string, error)

	// Close releases client resources
	Close() error
}

// IndicatorsClient talks to the technical-indicator sidecar
type IndicatorsClient interface {
	// GetIndicators fetches RSI/MACD/Bollinger/volume stats for a ticker
	GetIndicators(ctx context.Context, ticker string) (*models.IndicatorReport, error)

	// Screen runs the sidecar screener over tickers with the given criteria
	Screen(ctx context.Context, tickers []string, criteria models.ScreenerCriteria) (*models.ScreenerResult, error)

	// Health checks sidecar availability
	Health(ctx context.Context) error
}
