// Package indicators provides a client for the technical-indicator sidecar
package indicators

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/perolav/folio/internal/common"
	"github.com/perolav/folio/internal/interfaces"
	"github.com/perolav/folio/internal/models"
)

const (
	DefaultBaseURL   = "http://localhost:5000"
	DefaultTimeout   = 30 * time.Second
	DefaultRateLimit = 5 // requests per second

	// Oslo Børs exchange suffix expected by the sidecar's data source.
	exchangeSuffix = ".OL"
)

// Client talks to the Flask indicator sidecar over HTTP
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *common.Logger
	limiter    *rate.Limiter
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithBaseURL sets the base URL
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRateLimit sets the rate limit
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		if requestsPerSecond > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
		}
	}
}

// WithTimeout sets the HTTP timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// NewClient creates a new indicator sidecar client
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		logger:  common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// symbolFor appends the Oslo Børs suffix unless the ticker already carries an
// exchange qualifier ("EQNR" → "EQNR.OL", "AAPL.US" untouched).
func symbolFor(ticker string) string {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if strings.Contains(ticker, ".") {
		return ticker
	}
	return ticker + exchangeSuffix
}

// GetIndicators fetches RSI/MACD/Bollinger/volume stats for a ticker
func (c *Client) GetIndicators(ctx context.Context, ticker string) (*models.IndicatorReport, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	symbol := symbolFor(ticker)
	reqURL := fmt.Sprintf("%s/indicators/%s", c.baseURL, symbol)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	c.logger.Debug().Str("symbol", symbol).Msg("Indicator sidecar request")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	elapsed := time.Since(start)
	if err != nil {
		c.logger.Error().Err(err).Str("symbol", symbol).Dur("elapsed", elapsed).Msg("Indicator sidecar request failed")
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("no indicator data for %s", symbol)
	}
	if resp.StatusCode != http.StatusOK {
		c.logger.Warn().Str("symbol", symbol).Int("status", resp.StatusCode).Dur("elapsed", elapsed).Msg("Indicator sidecar non-OK response")
		return nil, fmt.Errorf("indicator sidecar error: status %d for %s", resp.StatusCode, symbol)
	}

	var report models.IndicatorReport
	if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if report.Ticker == "" {
		report.Ticker = symbol
	}

	return &report, nil
}

// screenerRequest is the sidecar screener request body
type screenerRequest struct {
	Tickers  []string                `json:"tickers"`
	Criteria models.ScreenerCriteria `json:"criteria"`
}

// Screen runs the sidecar screener over tickers with the given criteria
func (c *Client) Screen(ctx context.Context, tickers []string, criteria models.ScreenerCriteria) (*models.ScreenerResult, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	symbols := make([]string, len(tickers))
	for i, t := range tickers {
		symbols[i] = symbolFor(t)
	}

	body, err := json.Marshal(screenerRequest{Tickers: symbols, Criteria: criteria})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/screener", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	c.logger.Debug().Int("tickers", len(symbols)).Msg("Indicator sidecar screener request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("indicator sidecar error: status %d", resp.StatusCode)
	}

	var result models.ScreenerResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &result, nil
}

// Health checks sidecar availability
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("indicator sidecar unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("indicator sidecar unhealthy: status %d", resp.StatusCode)
	}
	return nil
}

var _ interfaces.IndicatorsClient = (*Client)(nil)
