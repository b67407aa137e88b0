// internal/app/features/registrations/routes.go
package registrations

import (
	"github.com/dalemusser/hackhub/internal/app/system/auth"
	"github.com/dalemusser/hackhub/internal/app/system/authz"
	"github.com/go-chi/chi/v5"
)

// Routes wires the registration endpoints. Signup is public; the roster
// read is organizer only.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.HandleCreate)

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireRole(string(authz.RoleOrganizer)))
		r.Get("/", h.HandleList)
	})

	return r
}
