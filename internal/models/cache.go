package models

import (
	"encoding/json"
	"time"
)

// CacheEntry is the generic shape shared by every TTL cache table
// (ai_analysis, recommendations, tips, analytics_cache). Entries are
// immutable once written; a recompute replaces the row for the same key.
type CacheEntry struct {
	Key         string          `json:"key"`
	Payload     json.RawMessage `json:"payload"`
	CachedUntil time.Time       `json:"cached_until"`
	CreatedAt   time.Time       `json:"created_at"`
}

// Fresh reports whether the entry's expiry is strictly in the future.
func (e *CacheEntry) Fresh(now time.Time) bool {
	return now.Before(e.CachedUntil)
}

// Decode unmarshals the payload into v.
func (e *CacheEntry) Decode(v any) error {
	return json.Unmarshal(e.Payload, v)
}

// TickerAnalysis is the cached payload of an AI ticker analysis.
type TickerAnalysis struct {
	Ticker      string           `json:"ticker"`
	Analysis    string           `json:"analysis"`
	Indicators  *IndicatorReport `json:"indicators,omitempty"`
	GeneratedAt time.Time        `json:"generated_at"`
}

// Recommendation is the cached payload of an AI recommendation.
// Kind distinguishes recommendation types for the same ticker.
type Recommendation struct {
	Ticker      string    `json:"ticker"`
	Kind        string    `json:"kind"` // general, entry, exit
	Action      string    `json:"action"`
	Rationale   string    `json:"rationale"`
	GeneratedAt time.Time `json:"generated_at"`
}

// DailyTips is the cached payload of the daily tips list.
type DailyTips struct {
	Date        string    `json:"date"` // YYYY-MM-DD
	Tips        []string  `json:"tips"`
	GeneratedAt time.Time `json:"generated_at"`
}
