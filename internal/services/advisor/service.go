package advisor

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/perolav/folio/internal/common"
	"github.com/perolav/folio/internal/interfaces"
	"github.com/perolav/folio/internal/models"
)

// Service produces AI-generated ticker analyses, recommendations, and daily
// tips. Every result is cached with a family-specific TTL; the AI client is
// invoked only on a cache miss. A generation failure with no cached fallback
// is a hard error.
type Service struct {
	storage    interfaces.StorageManager
	ai         interfaces.AIClient
	indicators interfaces.IndicatorsClient
	ledger     interfaces.LedgerService
	logger     *common.Logger
}

func NewService(storage interfaces.StorageManager, ai interfaces.AIClient, indicators interfaces.IndicatorsClient, ledger interfaces.LedgerService, logger *common.Logger) *Service {
	return &Service{
		storage:    storage,
		ai:         ai,
		indicators: indicators,
		ledger:     ledger,
		logger:     logger,
	}
}

// AnalyzeTicker returns a fresh cached analysis when one exists, otherwise
// generates a new one from position context and technical indicators.
func (s *Service) AnalyzeTicker(ctx context.Context, ticker string) (*models.TickerAnalysis, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if ticker == "" {
		return nil, fmt.Errorf("ticker is required")
	}

	var cached models.TickerAnalysis
	if s.fromCache(ctx, s.storage.AnalysisCache(), ticker, &cached) {
		return &cached, nil
	}

	if s.ai == nil {
		return nil, fmt.Errorf("AI client not configured")
	}

	report := s.fetchIndicators(ctx, ticker)
	positions := s.positionsFor(ctx, ticker)

	prompt := buildAnalysisPrompt(ticker, positions, report)
	text, err := s.ai.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("analysis generation failed for %s: %w", ticker, err)
	}

	analysis := &models.TickerAnalysis{
		Ticker:      ticker,
		Analysis:    text,
		Indicators:  report,
		GeneratedAt: time.Now(),
	}
	s.writeThrough(ctx, s.storage.AnalysisCache(), ticker, analysis, common.TTLAnalysis)

	s.logger.Info().Str("ticker", ticker).Msg("Ticker analysis generated")
	return analysis, nil
}

// Recommend returns a cached or newly generated recommendation. Kind
// distinguishes recommendation types ("general", "entry", "exit") and is part
// of the cache key.
func (s *Service) Recommend(ctx context.Context, ticker, kind string) (*models.Recommendation, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if ticker == "" {
		return nil, fmt.Errorf("ticker is required")
	}
	kind = strings.ToLower(strings.TrimSpace(kind))
	if kind == "" {
		kind = "general"
	}

	key := fmt.Sprintf("%s_%s", ticker, kind)

	var cached models.Recommendation
	if s.fromCache(ctx, s.storage.RecommendationCache(), key, &cached) {
		return &cached, nil
	}

	if s.ai == nil {
		return nil, fmt.Errorf("AI client not configured")
	}

	report := s.fetchIndicators(ctx, ticker)
	positions := s.positionsFor(ctx, ticker)

	prompt := buildRecommendationPrompt(ticker, kind, positions, report)
	text, err := s.ai.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("recommendation generation failed for %s: %w", ticker, err)
	}

	rec := &models.Recommendation{
		Ticker:      ticker,
		Kind:        kind,
		Action:      extractAction(text),
		Rationale:   text,
		GeneratedAt: time.Now(),
	}
	s.writeThrough(ctx, s.storage.RecommendationCache(), key, rec, common.TTLRecommendation)

	s.logger.Info().Str("ticker", ticker).Str("kind", kind).Msg("Recommendation generated")
	return rec, nil
}

// DailyTips returns today's tips, generating them from portfolio state and
// closed-trade history when no fresh cache entry exists. The calendar date is
// the cache key, so tips regenerate at most once per day per TTL.
func (s *Service) DailyTips(ctx context.Context) (*models.DailyTips, error) {
	date := time.Now().Format("2006-01-02")

	var cached models.DailyTips
	if s.fromCache(ctx, s.storage.TipsCache(), date, &cached) {
		return &cached, nil
	}

	if s.ai == nil {
		return nil, fmt.Errorf("AI client not configured")
	}

	positions, err := s.storage.PositionStore().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load positions: %w", err)
	}

	var closed []*models.ClosedTrade
	if s.ledger != nil {
		closed, err = s.ledger.ClosedTrades(ctx)
		if err != nil {
			s.logger.Warn().Err(err).Msg("Ledger reconciliation failed, generating tips without trade history")
		}
	}

	prompt := buildTipsPrompt(positions, closed)
	text, err := s.ai.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("tips generation failed: %w", err)
	}

	tips := &models.DailyTips{
		Date:        date,
		Tips:        parseTips(text),
		GeneratedAt: time.Now(),
	}
	s.writeThrough(ctx, s.storage.TipsCache(), date, tips, common.TTLTips)

	s.logger.Info().Int("tips", len(tips.Tips)).Msg("Daily tips generated")
	return tips, nil
}

// fetchIndicators pulls the technical report for a ticker. Indicator data is
// contextual enrichment; sidecar failures degrade to a nil report.
func (s *Service) fetchIndicators(ctx context.Context, ticker string) *models.IndicatorReport {
	if s.indicators == nil {
		return nil
	}
	report, err := s.indicators.GetIndicators(ctx, ticker)
	if err != nil {
		s.logger.Warn().Err(err).Str("ticker", ticker).Msg("Indicator fetch failed, continuing without")
		return nil
	}
	return report
}

func (s *Service) positionsFor(ctx context.Context, ticker string) []*models.Position {
	all, err := s.storage.PositionStore().List(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Failed to load positions for prompt context")
		return nil
	}
	var matched []*models.Position
	for _, p := range all {
		if p.Ticker == ticker {
			matched = append(matched, p)
		}
	}
	return matched
}

func (s *Service) fromCache(ctx context.Context, cache interfaces.CacheStore, key string, v any) bool {
	entry, err := cache.GetFresh(ctx, key)
	if err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("Cache read failed, regenerating")
		return false
	}
	if entry == nil {
		return false
	}
	if err := entry.Decode(v); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("Malformed cache entry, regenerating")
		return false
	}
	return true
}

func (s *Service) writeThrough(ctx context.Context, cache interfaces.CacheStore, key string, v any, ttl time.Duration) {
	if err := cache.Put(ctx, key, v, ttl); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("Failed to cache AI result")
	}
}

var _ interfaces.AdvisorService = (*Service)(nil)
