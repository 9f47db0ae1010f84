// internal/app/features/activities/handler.go
package activities

import (
	"context"
	"net/http"

	activitystore "github.com/campushub/unihub/internal/app/store/activities"
	studentstore "github.com/campushub/unihub/internal/app/store/students"
	"github.com/campushub/unihub/internal/app/system/httpjson"
	"github.com/campushub/unihub/internal/app/system/sanitize"
	"github.com/campushub/unihub/internal/app/system/timeouts"
	"github.com/campushub/unihub/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves activity posting and section-scoped listings.
type Handler struct {
	activities *activitystore.Store
	students   *studentstore.Store
	log        *zap.Logger
}

// NewHandler constructs an activities Handler.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		activities: activitystore.New(db),
		students:   studentstore.New(db),
		log:        logger,
	}
}

func (h *Handler) storeError(w http.ResponseWriter, op string, err error) {
	h.log.Error("activities: store operation failed", zap.String("op", op), zap.Error(err))
	httpjson.Error(w, http.StatusServiceUnavailable, "storage unavailable")
}

type addActivityRequest struct {
	Title       string `json:"title"`
	Section     string `json:"section"`
	Description string `json:"description"`
	Deadline    string `json:"deadline"`
	PostedBy    string `json:"postedBy"`
}

// Add handles POST /add/activity.
func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	var req addActivityRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	_, err := h.activities.Create(ctx, models.Activity{
		Title:       sanitize.Text(req.Title),
		Section:     req.Section,
		Description: sanitize.Text(req.Description),
		Deadline:    req.Deadline,
		PostedBy:    req.PostedBy,
	})
	if err != nil {
		h.storeError(w, "add activity", err)
		return
	}
	httpjson.Respond(w, http.StatusOK, map[string]bool{"success": true})
}

// ListForStudent handles GET /get/all-activity?email=. Activities are
// scoped to the caller's selected section, which is looked up first.
func (h *Handler) ListForStudent(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
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

	activities, err := h.activities.ListBySection(ctx, st.SelectedSection)
	if err != nil {
		h.storeError(w, "list activities", err)
		return
	}
	if activities == nil {
		activities = []models.Activity{}
	}
	httpjson.Respond(w, http.StatusOK, map[string]any{
		"result":  activities,
		"section": st.SelectedSection,
	})
}

// Details handles GET /activity/details?id=.
func (h *Handler) Details(w http.ResponseWriter, r *http.Request) {
	id, err := httpjson.ParseID(r.URL.Query().Get("id"))
	if err != nil {
		httpjson.Error(w, http.StatusUnprocessableEntity, "malformed activity id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	a, err := h.activities.GetByID(ctx, id)
	if err == mongo.ErrNoDocuments {
		httpjson.Error(w, http.StatusNotFound, "activity not found")
		return
	}
	if err != nil {
		h.storeError(w, "activity details", err)
		return
	}
	httpjson.Respond(w, http.StatusOK, a)
}
