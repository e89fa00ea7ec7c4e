package server

import (
	"net/http"
	"strings"
)

// routeAccounts dispatches /api/accounts/{id}[/...] subpaths.
func (s *Server) routeAccounts(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/accounts/")
	parts := strings.SplitN(rest, "/", 2)

	id := parts[0]
	if id == "" {
		WriteError(w, http.StatusNotFound, "Account id is required")
		return
	}

	if len(parts) == 1 {
		s.handleAccountGet(w, r, id)
		return
	}

	switch {
	case parts[1] == "snapshots":
		s.handleAccountSnapshots(w, r, id)
	case strings.HasPrefix(parts[1], "snapshots/"):
		s.handleSnapshotDelete(w, r, id, strings.TrimPrefix(parts[1], "snapshots/"))
	case parts[1] == "balance":
		s.handleAccountBalance(w, r, id)
	default:
		WriteError(w, http.StatusNotFound, "Not found")
	}
}

// handleAccountList handles GET /api/accounts.
func (s *Server) handleAccountList(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	views, err := s.app.LedgerService.ListAccounts(r.Context())
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, views)
}

// handleAccountGet handles GET /api/accounts/{id}.
func (s *Server) handleAccountGet(w http.ResponseWriter, r *http.Request, id string) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	view, err := s.app.LedgerService.GetAccount(r.Context(), id)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, view)
}

// handleAccountSnapshots handles GET and POST /api/accounts/{id}/snapshots.
func (s *Server) handleAccountSnapshots(w http.ResponseWriter, r *http.Request, id string) {
	switch r.Method {
	case http.MethodGet:
		snapshots, err := s.app.LedgerService.ListSnapshots(r.Context(), id)
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, snapshots)

	case http.MethodPost:
		var req struct {
			Date         string `json:"date"`
			BalanceMinor int64  `json:"balance_minor"`
		}
		if !DecodeJSON(w, r, &req) {
			return
		}

		snapshot, err := s.app.LedgerService.UpsertSnapshot(r.Context(), id, req.Date, req.BalanceMinor)
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusCreated, snapshot)

	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPost)
	}
}

// handleSnapshotDelete handles DELETE /api/accounts/{id}/snapshots/{date}.
func (s *Server) handleSnapshotDelete(w http.ResponseWriter, r *http.Request, id, date string) {
	if !RequireMethod(w, r, http.MethodDelete) {
		return
	}

	if err := s.app.LedgerService.DeleteSnapshot(r.Context(), id, date); err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// handleAccountBalance handles GET /api/accounts/{id}/balance?period=.
func (s *Server) handleAccountBalance(w http.ResponseWriter, r *http.Request, id string) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	period, err := periodParam(r)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	points, err := s.app.LedgerService.BalanceOverTime(r.Context(), id, period)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, points)
}
