// internal/app/features/events/routes.go
package events

import (
	"github.com/dalemusser/hackhub/internal/app/system/auth"
	"github.com/dalemusser/hackhub/internal/app/system/authz"
	"github.com/go-chi/chi/v5"
)

// Routes wires the event endpoints. Listing and reads are public (the
// view policy narrows what each caller sees); writes are organizer only.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.HandleList)
	r.Get("/{eventID}", h.HandleGet)

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireRole(string(authz.RoleOrganizer)))
		r.Post("/", h.HandleCreate)
		r.Post("/{eventID}/status", h.HandleSetStatus)
		r.Post("/{eventID}/judges", h.HandleAssignJudge)
	})

	return r
}
