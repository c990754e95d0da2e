// Package common provides shared utilities for Folio
package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds all configuration for Folio
type Config struct {
	Environment string          `toml:"environment"`
	Server      ServerConfig    `toml:"server"`
	Storage     StorageConfig   `toml:"storage"`
	Clients     ClientsConfig   `toml:"clients"`
	Analytics   AnalyticsConfig `toml:"analytics"`
	Logging     LoggingConfig   `toml:"logging"`

	// Sectors maps tickers to sector names for the sector performance
	// breakdown. Tickers absent from the map fall into "Other".
	Sectors map[string]string `toml:"sectors"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// StorageConfig holds SurrealDB connection configuration
type StorageConfig struct {
	Address   string `toml:"address"`
	Namespace string `toml:"namespace"`
	Database  string `toml:"database"`
	Username  string `toml:"username"`
	Password  string `toml:"password"`
}

// ClientsConfig holds API client configurations
type ClientsConfig struct {
	Gemini     GeminiConfig     `toml:"gemini"`
	Indicators IndicatorsConfig `toml:"indicators"`
}

// GeminiConfig holds Gemini API configuration
type GeminiConfig struct {
	APIKey string `toml:"api_key"`
	Model  string `toml:"model"`
}

// IndicatorsConfig holds configuration for the technical-indicator sidecar
type IndicatorsConfig struct {
	BaseURL   string `toml:"base_url"`
	RateLimit int    `toml:"rate_limit"`
	Timeout   string `toml:"timeout"`
}

// GetTimeout parses and returns the timeout duration
func (c *IndicatorsConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// AnalyticsConfig holds tunables for the metrics engine
type AnalyticsConfig struct {
	RiskFreeRate          float64 `toml:"risk_free_rate"`          // annual, as a fraction (0.02 = 2%)
	SnapshotRetentionDays int     `toml:"snapshot_retention_days"` // prune snapshots older than this
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `toml:"level"`
}

// NewDefaultConfig returns a Config with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8090,
		},
		Storage: StorageConfig{
			Address:   "ws://localhost:8000",
			Namespace: "folio",
			Database:  "folio",
			Username:  "root",
			Password:  "root",
		},
		Clients: ClientsConfig{
			Gemini: GeminiConfig{
				Model: "gemini-2.0-flash",
			},
			Indicators: IndicatorsConfig{
				BaseURL:   "http://localhost:5000",
				RateLimit: 5,
				Timeout:   "30s",
			},
		},
		Analytics: AnalyticsConfig{
			RiskFreeRate:          0.02,
			SnapshotRetentionDays: 365,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Sectors: defaultSectors(),
	}
}

// defaultSectors is the built-in Oslo Børs ticker→sector table.
// A [sectors] block in the config file replaces individual entries.
func defaultSectors() map[string]string {
	return map[string]string{
		"EQNR":  "Energy",
		"AKRBP": "Energy",
		"VAR":   "Energy",
		"DNB":   "Finance",
		"STB":   "Finance",
		"GJF":   "Finance",
		"MOWI":  "Seafood",
		"SALM":  "Seafood",
		"LSG":   "Seafood",
		"TEL":   "Telecom",
		"NHY":   "Materials",
		"YAR":   "Materials",
		"KOG":   "Industrials",
		"TOM":   "Technology",
		"FRO":   "Shipping",
		"GOGL":  "Shipping",
		"ORK":   "Consumer",
	}
}

// LoadConfig loads configuration from files with environment overrides
func LoadConfig(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	// Load and merge each config file in order (later files override earlier)
	for _, path := range paths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue // Skip missing files
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("FOLIO_ENV"); env != "" {
		config.Environment = env
	}

	if host := os.Getenv("FOLIO_HOST"); host != "" {
		config.Server.Host = host
	}

	if port := os.Getenv("FOLIO_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}

	if level := os.Getenv("FOLIO_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	if addr := os.Getenv("FOLIO_STORAGE_ADDRESS"); addr != "" {
		config.Storage.Address = addr
	}
	if ns := os.Getenv("FOLIO_STORAGE_NAMESPACE"); ns != "" {
		config.Storage.Namespace = ns
	}
	if db := os.Getenv("FOLIO_STORAGE_DATABASE"); db != "" {
		config.Storage.Database = db
	}

	for _, name := range []string{"FOLIO_GEMINI_API_KEY", "GEMINI_API_KEY", "GOOGLE_API_KEY"} {
		if key := os.Getenv(name); key != "" {
			config.Clients.Gemini.APIKey = key
			break
		}
	}

	if url := os.Getenv("FOLIO_INDICATORS_URL"); url != "" {
		config.Clients.Indicators.BaseURL = url
	}
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	return env == "production" || env == "prod"
}

// SectorFor resolves a ticker to its configured sector, falling back to "Other".
func (c *Config) SectorFor(ticker string) string {
	if sector, ok := c.Sectors[strings.ToUpper(strings.TrimSpace(ticker))]; ok {
		return sector
	}
	return "Other"
}
