// internal/app/features/submissions/routes.go
package submissions

import (
	"github.com/dalemusser/hackhub/internal/app/system/auth"
	"github.com/dalemusser/hackhub/internal/app/system/authz"
	"github.com/go-chi/chi/v5"
)

// Routes wires the submission endpoints. Creating and submitting are
// participant actions; scoring is restricted to organizers and judges
// (ownership and assignment checks live in the handler).
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.HandleList)

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireRole(string(authz.RoleParticipant)))
		r.Post("/", h.HandleCreate)
		r.Post("/{submissionID}/submit", h.HandleSubmit)
	})

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireRole(string(authz.RoleOrganizer), string(authz.RoleJudge)))
		r.Post("/{submissionID}/score", h.HandleScore)
	})

	return r
}
