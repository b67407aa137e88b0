// internal/app/features/evaluations/routes.go
package evaluations

import (
	"github.com/dalemusser/hackhub/internal/app/system/auth"
	"github.com/dalemusser/hackhub/internal/app/system/authz"
	"github.com/go-chi/chi/v5"
)

// Routes wires the evaluation endpoints. Writes are judge only; the
// list is shared with organizers, whose ownership check lives in the
// view policy.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireRole(string(authz.RoleOrganizer), string(authz.RoleJudge)))
		r.Get("/", h.HandleList)
	})

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireRole(string(authz.RoleJudge)))
		r.Post("/", h.HandleUpsert)
		r.Post("/{evaluationID}/complete", h.HandleComplete)
	})

	return r
}
