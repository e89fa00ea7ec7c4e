package server

import "net/http"

// handleDashboardSummary handles GET /api/dashboard.
func (s *Server) handleDashboardSummary(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	summary, err := s.app.DashboardService.Summary(r.Context())
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, summary)
}

// handleDashboardBalance handles GET /api/dashboard/balance?period=.
func (s *Server) handleDashboardBalance(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	period, err := periodParam(r)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	points, err := s.app.DashboardService.BalanceOverTime(r.Context(), period)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, points)
}

// handleDashboardChart handles GET /api/dashboard/chart?period= and
// responds with a rendered PNG.
func (s *Server) handleDashboardChart(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	period, err := periodParam(r)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	png, err := s.app.DashboardService.RenderChart(r.Context(), period)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}
