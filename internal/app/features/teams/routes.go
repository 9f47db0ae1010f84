// internal/app/features/teams/routes.go
package teams

import "github.com/go-chi/chi/v5"

// Routes registers the team endpoints on the root router (flat legacy
// paths).
func Routes(r chi.Router, h *Handler) {
	r.Post("/add/new-team", h.Create)
	r.Get("/get/all-teams", h.ListByActivity)
	r.Get("/team/details", h.Details)
	r.Post("/update/team-details", h.UpdateDetails)
	r.Post("/add/team-resource", h.AddResource)
	r.Post("/update/team-resource", h.UpdateResource)
}
