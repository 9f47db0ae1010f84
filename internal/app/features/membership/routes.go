// internal/app/features/membership/routes.go
package membership

import "github.com/go-chi/chi/v5"

// Routes registers the membership endpoints on the root router (flat
// legacy paths).
func Routes(r chi.Router, h *Handler) {
	r.Post("/request/to/join", h.RequestJoin)
	r.Get("/get/member-requests", h.ListByTeam)
	r.Post("/accept/member-request", h.Accept)
	r.Post("/reject/member-request", h.Reject)
	r.Get("/already/joined", h.AlreadyJoined)
	r.Post("/leave/team", h.Leave)
	r.Post("/remove/team-member", h.Remove)
}
