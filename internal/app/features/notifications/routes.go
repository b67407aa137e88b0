// internal/app/features/notifications/routes.go
package notifications

import (
	"github.com/dalemusser/hackhub/internal/app/system/auth"
	"github.com/dalemusser/hackhub/internal/app/system/authz"
	"github.com/go-chi/chi/v5"
)

// Routes wires the notification endpoints. Sending is organizer only;
// listing and read receipts just need a signed-in caller.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireSignedIn)
		r.Get("/", h.HandleList)
		r.Post("/{notificationID}/read", h.HandleMarkRead)
	})

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireRole(string(authz.RoleOrganizer)))
		r.Post("/", h.HandleCreate)
	})

	return r
}
