package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/angkringan-pos/admin-api/internal/dashboard"
)

// DashboardHandler serves the landing screen's aggregate stats.
type DashboardHandler struct {
	svc *dashboard.Service
}

func NewDashboardHandler(svc *dashboard.Service) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

func (h *DashboardHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.Get)
	r.Post("/refresh", h.Refresh)
}

// Get re-fetches the collections so the screen always opens on current
// numbers, the same as navigating to the landing page.
func (h *DashboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	stats := h.svc.Refresh(r.Context())
	writeJSON(w, http.StatusOK, stats)
}

// Refresh forces a re-fetch and returns the new snapshot. The refresh also
// fans out to websocket subscribers through the service's callback.
func (h *DashboardHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	stats := h.svc.Refresh(r.Context())
	writeJSON(w, http.StatusOK, stats)
}
