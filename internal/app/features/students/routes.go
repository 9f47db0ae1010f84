// internal/app/features/students/routes.go
package students

import "github.com/go-chi/chi/v5"

// Routes registers the student endpoints. The paths are the flat legacy
// wire contract, so they are registered on the root router instead of a
// mounted subrouter.
func Routes(r chi.Router, h *Handler) {
	r.Post("/create/student", h.Register)
	r.Get("/student/info", h.Info)
	r.Post("/update/section", h.UpdateSection)
	r.Post("/request/CR", h.RequestCR)
	r.Get("/cr/status", h.CRStatus)
}
