// internal/app/features/activities/routes.go
package activities

import "github.com/go-chi/chi/v5"

// Routes registers the activity endpoints on the root router (flat legacy
// paths).
func Routes(r chi.Router, h *Handler) {
	r.Post("/add/activity", h.Add)
	r.Get("/get/all-activity", h.ListForStudent)
	r.Get("/activity/details", h.Details)
}
