// Package app wires configuration, storage, clients, and services together.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/perolav/folio/internal/clients/gemini"
	"github.com/perolav/folio/internal/clients/indicators"
	"github.com/perolav/folio/internal/common"
	"github.com/perolav/folio/internal/interfaces"
	"github.com/perolav/folio/internal/services/advisor"
	"github.com/perolav/folio/internal/services/analytics"
	"github.com/perolav/folio/internal/services/ledger"
	"github.com/perolav/folio/internal/services/portfolio"
	storage "github.com/perolav/folio/internal/storage/surrealdb"
)

// App holds all initialized services and clients. It is the shared core used
// by cmd/folio-server.
type App struct {
	Config           *common.Config
	Logger           *common.Logger
	Storage          interfaces.StorageManager
	AIClient         interfaces.AIClient
	IndicatorsClient interfaces.IndicatorsClient
	PortfolioService interfaces.PortfolioService
	LedgerService    interfaces.LedgerService
	AnalyticsService interfaces.AnalyticsService
	AdvisorService   interfaces.AdvisorService
	StartupTime      time.Time

	schedulerCancel context.CancelFunc
}

// getBinaryDir returns the directory containing the executable.
func getBinaryDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// NewApp initializes configuration, storage, clients, and services.
// configPath may be empty, in which case the default resolution logic is used.
func NewApp(ctx context.Context, configPath string) (*App, error) {
	startupStart := time.Now()

	// Check provided path, FOLIO_CONFIG, then binary dir, then fallback
	if configPath == "" {
		configPath = os.Getenv("FOLIO_CONFIG")
	}
	if configPath == "" {
		configPath = filepath.Join(getBinaryDir(), "folio.toml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = "config/folio.toml" // fallback for development
		}
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger := common.NewLogger(config.Logging.Level)

	storageManager, err := storage.NewManager(logger, config)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	var aiClient interfaces.AIClient
	if config.Clients.Gemini.APIKey != "" {
		client, err := gemini.NewClient(ctx, config.Clients.Gemini.APIKey,
			gemini.WithModel(config.Clients.Gemini.Model),
			gemini.WithLogger(logger),
		)
		if err != nil {
			logger.Warn().Err(err).Msg("Gemini client initialization failed - AI features will be unavailable")
		} else {
			aiClient = client
		}
	} else {
		logger.Warn().Msg("Gemini API key not configured - AI features will be unavailable")
	}

	indicatorsClient := indicators.NewClient(
		indicators.WithBaseURL(config.Clients.Indicators.BaseURL),
		indicators.WithRateLimit(config.Clients.Indicators.RateLimit),
		indicators.WithTimeout(config.Clients.Indicators.GetTimeout()),
		indicators.WithLogger(logger),
	)

	ledgerService := ledger.NewService(storageManager, logger)
	portfolioService := portfolio.NewService(storageManager, config, logger)
	analyticsService := analytics.NewService(storageManager, ledgerService, config, logger)
	advisorService := advisor.NewService(storageManager, aiClient, indicatorsClient, ledgerService, logger)

	app := &App{
		Config:           config,
		Logger:           logger,
		Storage:          storageManager,
		AIClient:         aiClient,
		IndicatorsClient: indicatorsClient,
		PortfolioService: portfolioService,
		LedgerService:    ledgerService,
		AnalyticsService: analyticsService,
		AdvisorService:   advisorService,
		StartupTime:      time.Now(),
	}

	logger.Info().
		Dur("elapsed", time.Since(startupStart)).
		Str("environment", config.Environment).
		Msg("Application initialized")

	return app, nil
}

// StartSchedulers launches the background snapshot and cache-sweep loops.
func (a *App) StartSchedulers() {
	ctx, cancel := context.WithCancel(context.Background())
	a.schedulerCancel = cancel

	go startSnapshotScheduler(ctx, a.PortfolioService, a.Config, a.Logger)
	go startCacheSweeper(ctx, a.Storage, a.Logger)
}

// Close stops the schedulers and releases clients and storage.
func (a *App) Close() error {
	if a.schedulerCancel != nil {
		a.schedulerCancel()
	}

	if a.AIClient != nil {
		if err := a.AIClient.Close(); err != nil {
			a.Logger.Warn().Err(err).Msg("Failed to close AI client")
		}
	}

	if a.Storage != nil {
		if err := a.Storage.Close(); err != nil {
			return fmt.Errorf("failed to close storage: %w", err)
		}
	}

	return nil
}
