// internal/app/features/students/classrep.go
package students

import (
	"context"
	"net/http"

	"github.com/campushub/unihub/internal/app/system/httpjson"
	"github.com/campushub/unihub/internal/app/system/sanitize"
	"github.com/campushub/unihub/internal/app/system/timeouts"
	"github.com/campushub/unihub/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
)

type crRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Section string `json:"section"`
}

// RequestCR handles POST /request/CR. The class-representative role is
// first-come-wins per section: the first requester's record is created with
// status "pending", and anyone requesting afterwards is shown who already
// holds it and in what state.
func (h *Handler) RequestCR(w http.ResponseWriter, r *http.Request) {
	var req crRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Section == "" {
		httpjson.Error(w, http.StatusUnprocessableEntity, "section is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	cr, taken, err := h.classreps.Request(ctx, models.ClassRep{
		Name:    sanitize.Text(req.Name),
		Email:   req.Email,
		Section: req.Section,
	})
	if err != nil {
		h.storeError(w, "request CR", err)
		return
	}
	if taken {
		httpjson.Respond(w, http.StatusOK, map[string]string{
			"status": cr.Status,
			"name":   cr.Name,
		})
		return
	}
	httpjson.Respond(w, http.StatusOK, map[string]bool{"success": true})
}

// CRStatus handles GET /cr/status?email=.
func (h *Handler) CRStatus(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	cr, err := h.classreps.GetByEmail(ctx, email)
	if err == mongo.ErrNoDocuments {
		httpjson.Error(w, http.StatusNotFound, "no CR request for this student")
		return
	}
	if err != nil {
		h.storeError(w, "cr status", err)
		return
	}
	httpjson.Respond(w, http.StatusOK, cr)
}
