// internal/app/features/students/register.go
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

type registerRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	StudentID       string `json:"studentId"`
	Department      string `json:"department"`
	SelectedSection string `json:"selectedSection"`
}

// Register handles POST /create/student.
//
// Registration is idempotent by email: the first call creates the profile
// and answers {"success":true}; any later call answers
// {"alreadyExists":true} without touching the stored record.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" {
		httpjson.Error(w, http.StatusUnprocessableEntity, "email is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	_, already, err := h.students.Create(ctx, models.Student{
		Name:            sanitize.Text(req.Name),
		Email:           req.Email,
		StudentID:       sanitize.Text(req.StudentID),
		Department:      sanitize.Text(req.Department),
		SelectedSection: req.SelectedSection,
	})
	if err != nil {
		h.storeError(w, "create student", err)
		return
	}
	if already {
		httpjson.Respond(w, http.StatusOK, map[string]bool{"alreadyExists": true})
		return
	}
	httpjson.Respond(w, http.StatusOK, map[string]bool{"success": true})
}

// Info handles GET /student/info?email=.
func (h *Handler) Info(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	st, err := h.students.GetByEmail(ctx, email)
	if err == mongo.ErrNoDocuments {
		httpjson.Error(w, http.StatusNotFound, "student not found")
		return
	}
	if err != nil {
		h.storeError(w, "get student", err)
		return
	}
	httpjson.Respond(w, http.StatusOK, st)
}

type sectionRequest struct {
	ID              string `json:"id"`
	SelectedSection string `json:"selectedSection"`
}

// UpdateSection handles POST /update/section.
func (h *Handler) UpdateSection(w http.ResponseWriter, r *http.Request) {
	var req sectionRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	id, err := httpjson.ParseID(req.ID)
	if err != nil {
		httpjson.Error(w, http.StatusUnprocessableEntity, "malformed student id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	matched, err := h.students.SetSection(ctx, id, req.SelectedSection)
	if err != nil {
		h.storeError(w, "set section", err)
		return
	}
	if !matched {
		httpjson.Error(w, http.StatusNotFound, "student not found")
		return
	}
	httpjson.Respond(w, http.StatusOK, map[string]bool{"success": true})
}
