// internal/app/features/leaderboard/routes.go
package leaderboard

import (
	"github.com/dalemusser/hackhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes wires the leaderboard endpoints. Standings are public; the
// websocket ticket requires a signed-in caller.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.HandleGet)

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireSignedIn)
		r.Get("/ticket", h.HandleTicket)
	})

	return r
}
