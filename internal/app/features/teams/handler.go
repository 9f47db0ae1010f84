// internal/app/features/teams/handler.go
package teams

import (
	"context"
	"net/http"

	"github.com/campushub/unihub/internal/app/ledger"
	teamstore "github.com/campushub/unihub/internal/app/store/teams"
	"github.com/campushub/unihub/internal/app/system/httpjson"
	"github.com/campushub/unihub/internal/app/system/sanitize"
	"github.com/campushub/unihub/internal/app/system/timeouts"
	"github.com/campushub/unihub/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves team creation, listing, detail edits, and the
// team-resource sub-list. Creation goes through the membership ledger
// because it also records the creator's commitment; everything else is
// single-document work against the teams store.
type Handler struct {
	ledger *ledger.Ledger
	teams  *teamstore.Store
	log    *zap.Logger
}

// NewHandler constructs a teams Handler.
func NewHandler(db *mongo.Database, lgr *ledger.Ledger, logger *zap.Logger) *Handler {
	return &Handler{
		ledger: lgr,
		teams:  teamstore.New(db),
		log:    logger,
	}
}

func (h *Handler) storeError(w http.ResponseWriter, op string, err error) {
	h.log.Error("teams: store operation failed", zap.String("op", op), zap.Error(err))
	httpjson.Error(w, http.StatusServiceUnavailable, "storage unavailable")
}

type createTeamRequest struct {
	ActivityID string `json:"activityId"`
	Email      string `json:"email"`
	TeamName   string `json:"teamName"`
	Title      string `json:"title"`
}

// Create handles POST /add/new-team. Idempotent per (email, activityId):
// a second submission for the same pair answers 409 without mutating.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req createTeamRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" || req.ActivityID == "" {
		httpjson.Error(w, http.StatusUnprocessableEntity, "email and activityId are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	_, already, err := h.ledger.CreateTeam(ctx, models.Team{
		ActivityID: req.ActivityID,
		Email:      req.Email,
		TeamName:   sanitize.Text(req.TeamName),
		Title:      sanitize.Text(req.Title),
	})
	if err != nil {
		h.storeError(w, "create team", err)
		return
	}
	if already {
		httpjson.Respond(w, http.StatusConflict, map[string]bool{"exists": true})
		return
	}
	httpjson.Respond(w, http.StatusOK, map[string]bool{"success": true})
}

// ListByActivity handles GET /get/all-teams?activityId=.
func (h *Handler) ListByActivity(w http.ResponseWriter, r *http.Request) {
	activityID := r.URL.Query().Get("activityId")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	teams, err := h.teams.ListByActivity(ctx, activityID)
	if err != nil {
		h.storeError(w, "list teams", err)
		return
	}
	if teams == nil {
		teams = []models.Team{}
	}
	httpjson.Respond(w, http.StatusOK, teams)
}

// Details handles GET /team/details?teamId=.
func (h *Handler) Details(w http.ResponseWriter, r *http.Request) {
	id, err := httpjson.ParseID(r.URL.Query().Get("teamId"))
	if err != nil {
		httpjson.Error(w, http.StatusUnprocessableEntity, "malformed team id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	t, err := h.teams.GetByID(ctx, id)
	if err == mongo.ErrNoDocuments {
		httpjson.Error(w, http.StatusNotFound, "team not found")
		return
	}
	if err != nil {
		h.storeError(w, "team details", err)
		return
	}
	httpjson.Respond(w, http.StatusOK, t)
}

type updateDetailsRequest struct {
	TeamID          string `json:"teamId"`
	UpdatedTeamName string `json:"updatedTeamName"`
	UpdatedTitle    string `json:"updatedTitle"`
}

// UpdateDetails handles POST /update/team-details.
func (h *Handler) UpdateDetails(w http.ResponseWriter, r *http.Request) {
	var req updateDetailsRequest
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

	matched, err := h.teams.UpdateDetails(ctx, id, sanitize.Text(req.UpdatedTeamName), sanitize.Text(req.UpdatedTitle))
	if err != nil {
		h.storeError(w, "update team details", err)
		return
	}
	if !matched {
		httpjson.Error(w, http.StatusNotFound, "team not found")
		return
	}
	httpjson.Respond(w, http.StatusOK, map[string]bool{"success": true})
}
