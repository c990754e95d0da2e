// Package common provides shared utilities for Folio
package common

import "time"

// Cache TTLs per family. Results written to a cache table carry
// cached_until = written_at + TTL; reads past that instant are misses.
const (
	TTLAnalysis       = 24 * time.Hour // AI ticker analyses
	TTLRecommendation = 12 * time.Hour // AI buy/sell/hold recommendations
	TTLTips           = 24 * time.Hour // daily portfolio tips
	TTLMetrics        = 1 * time.Hour  // aggregate analytics metrics
)

// IsFresh returns true if the given expiry instant is still strictly in the future.
func IsFresh(cachedUntil time.Time) bool {
	if cachedUntil.IsZero() {
		return false
	}
	return time.Now().Before(cachedUntil)
}
