package server

import (
	"net/http"

	"github.com/bobmcallan/worth/internal/common"
)

// handleHealth handles GET/HEAD /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleVersion handles GET/HEAD /api/version.
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

// handleConfig handles GET /api/config with a redacted config view.
func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	cfg := s.app.Config
	view := map[string]interface{}{
		"environment": cfg.Environment,
		"demo":        cfg.Demo.Enabled,
		"log_level":   cfg.Logging.Level,
	}
	if !cfg.Demo.Enabled {
		view["storage_path"] = cfg.Storage.Path
	}
	WriteJSON(w, http.StatusOK, view)
}
