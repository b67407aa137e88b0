// internal/app/features/analytics/routes.go
package analytics

import "github.com/go-chi/chi/v5"

// Routes wires the analytics endpoints. All reads are public; the
// rollup view narrows itself per caller role.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/events", h.HandleEventRollups)
	r.Get("/dashboard", h.HandleDashboard)
	r.Get("/trend", h.HandleTrend)
	return r
}
