// internal/app/features/teams/resources.go
package teams

import (
	"context"
	"net/http"

	"github.com/campushub/unihub/internal/app/system/httpjson"
	"github.com/campushub/unihub/internal/app/system/sanitize"
	"github.com/campushub/unihub/internal/app/system/timeouts"
	"github.com/campushub/unihub/internal/domain/models"
	"github.com/google/uuid"
)

type addResourceRequest struct {
	TeamID string `json:"teamId"`
	Title  string `json:"title"`
	Link   string `json:"link"`
}

// AddResource handles POST /add/team-resource. The resource identifier is
// a UUID, so collisions are not a practical concern and no pre-insert
// uniqueness check is needed.
func (h *Handler) AddResource(w http.ResponseWriter, r *http.Request) {
	var req addResourceRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	id, err := httpjson.ParseID(req.TeamID)
	if err != nil {
		httpjson.Error(w, http.StatusUnprocessableEntity, "malformed team id")
		return
	}

	res := models.TeamResource{
		Identifier: uuid.NewString(),
		Title:      sanitize.Text(req.Title),
		Link:       req.Link,
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	matched, err := h.teams.AddResource(ctx, id, res)
	if err != nil {
		h.storeError(w, "add resource", err)
		return
	}
	if !matched {
		httpjson.Error(w, http.StatusNotFound, "team not found")
		return
	}
	httpjson.Respond(w, http.StatusOK, map[string]any{
		"success":    true,
		"identifier": res.Identifier,
	})
}

type updateResourceRequest struct {
	TeamID     string `json:"teamId"`
	Identifier string `json:"identifier"`
	Title      string `json:"title"`
	Link       string `json:"link"`
}

// UpdateResource handles POST /update/team-resource. A missing team or an
// unknown identifier is a 404, never a fault.
func (h *Handler) UpdateResource(w http.ResponseWriter, r *http.Request) {
	var req updateResourceRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	id, err := httpjson.ParseID(req.TeamID)
	if err != nil {
		httpjson.Error(w, http.StatusUnprocessableEntity, "malformed team id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	matched, err := h.teams.UpdateResource(ctx, id, req.Identifier, sanitize.Text(req.Title), req.Link)
	if err != nil {
		h.storeError(w, "update resource", err)
		return
	}
	if !matched {
		httpjson.Error(w, http.StatusNotFound, "team or resource not found")
		return
	}
	httpjson.Respond(w, http.StatusOK, map[string]bool{"success": true})
}
