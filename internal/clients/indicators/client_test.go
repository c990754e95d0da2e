package indicators

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/perolav/folio/internal/common"
	"github.com/perolav/folio/internal/models"
)

func TestDefaultBaseURLMatchesConfigDefault(t *testing.T) {
	assert.Equal(t, common.NewDefaultConfig().Clients.Indicators.BaseURL, DefaultBaseURL)
}

func TestSymbolFor(t *testing.T) {
	assert.Equal(t, "EQNR.OL", symbolFor("eqnr"))
	assert.Equal(t, "EQNR.OL", symbolFor(" EQNR "))
	assert.Equal(t, "AAPL.US", symbolFor("AAPL.US"))
}

func TestGetIndicators(t *testing.T) {
	rsi := 62.5
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/indicators/EQNR.OL", r.URL.Path)
		json.NewEncoder(w).Encode(models.IndicatorReport{
			Ticker:      "EQNR.OL",
			LatestPrice: 312.5,
			RSI:         &rsi,
		})
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))
	report, err := client.GetIndicators(context.Background(), "EQNR")
	require.NoError(t, err)

	assert.Equal(t, "EQNR.OL", report.Ticker)
	assert.Equal(t, 312.5, report.LatestPrice)
	require.NotNil(t, report.RSI)
	assert.Equal(t, 62.5, *report.RSI)
}

func TestGetIndicatorsNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))
	_, err := client.GetIndicators(context.Background(), "NOPE")
	assert.Error(t, err)
}

func TestScreen(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/screener", r.URL.Path)

		var req screenerRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, []string{"EQNR.OL", "DNB.OL"}, req.Tickers)
		assert.Equal(t, 30.0, req.Criteria.RSIMin)

		json.NewEncoder(w).Encode(models.ScreenerResult{
			Results:      []models.ScreenerMatch{{Ticker: "EQNR.OL", RSI: 35, Score: 0.8}},
			TotalScanned: 2,
			Matches:      1,
		})
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))
	result, err := client.Screen(context.Background(), []string{"EQNR", "DNB"}, models.ScreenerCriteria{RSIMin: 30, RSIMax: 70})
	require.NoError(t, err)

	assert.Equal(t, 2, result.TotalScanned)
	require.Len(t, result.Results, 1)
	assert.Equal(t, "EQNR.OL", result.Results[0].Ticker)
}

func TestHealth(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/health", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))
	assert.NoError(t, client.Health(context.Background()))
}

func TestHealthDown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))
	assert.Error(t, client.Health(context.Background()))
}
