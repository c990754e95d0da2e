package server

import (
	"net/http"
	"time"

	"github.com/perolav/folio/internal/common"
)

// --- System handlers ---

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}

	indicatorsUp := false
	if s.app.IndicatorsClient != nil {
		indicatorsUp = s.app.IndicatorsClient.Health(r.Context()) == nil
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":     "ok",
		"uptime":     time.Since(s.app.StartupTime).Round(time.Second).String(),
		"indicators": indicatorsUp,
	})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{
		"version": common.GetVersion(),
		"build":   common.GetBuild(),
		"commit":  common.GetGitCommit(),
	})
}

func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"environment":             s.app.Config.Environment,
		"storage_address":         s.app.Config.Storage.Address,
		"storage_namespace":       s.app.Config.Storage.Namespace,
		"storage_database":        s.app.Config.Storage.Database,
		"logging_level":           s.app.Config.Logging.Level,
		"risk_free_rate":          s.app.Config.Analytics.RiskFreeRate,
		"snapshot_retention_days": s.app.Config.Analytics.SnapshotRetentionDays,
		"indicators_url":          s.app.Config.Clients.Indicators.BaseURL,
		"gemini_configured":       s.app.AIClient != nil,
		"sector_count":            len(s.app.Config.Sectors),
	})
}

// handleShutdown handles POST /api/shutdown (dev mode only).
func (s *Server) handleShutdown(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	if s.app.Config.IsProduction() {
		WriteError(w, http.StatusForbidden, "Shutdown endpoint disabled in production")
		return
	}

	s.logger.Info().Msg("Shutdown requested via HTTP endpoint")

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Shutting down gracefully...\n"))

	if flusher, ok := w.(http.Flusher); ok {
		flusher.Flush()
	}

	if s.shutdownChan != nil {
		go func() {
			time.Sleep(100 * time.Millisecond)
			s.shutdownChan <- struct{}{}
		}()
	}
}
