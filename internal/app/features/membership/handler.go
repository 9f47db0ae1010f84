// internal/app/features/membership/handler.go
package membership

import (
	"context"
	"errors"
	"net/http"

	"github.com/campushub/unihub/internal/app/ledger"
	requeststore "github.com/campushub/unihub/internal/app/store/requests"
	"github.com/campushub/unihub/internal/app/system/httpjson"
	"github.com/campushub/unihub/internal/app/system/sanitize"
	"github.com/campushub/unihub/internal/app/system/timeouts"
	"github.com/campushub/unihub/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the membership lifecycle: join requests, accept/reject,
// the commitment check, and withdrawal. Every state transition goes
// through the ledger; only the plain request listing reads a store
// directly.
type Handler struct {
	ledger   *ledger.Ledger
	requests *requeststore.Store
	log      *zap.Logger
}

// NewHandler constructs a membership Handler.
func NewHandler(db *mongo.Database, lgr *ledger.Ledger, logger *zap.Logger) *Handler {
	return &Handler{
		ledger:   lgr,
		requests: requeststore.New(db),
		log:      logger,
	}
}

func (h *Handler) storeError(w http.ResponseWriter, op string, err error) {
	h.log.Error("membership: store operation failed", zap.String("op", op), zap.Error(err))
	httpjson.Error(w, http.StatusServiceUnavailable, "storage unavailable")
}

type joinRequest struct {
	TeamID     string `json:"teamId"`
	Email      string `json:"email"`
	StudentID  string `json:"studentId"`
	Name       string `json:"name"`
	ActivityID string `json:"activityId"`
}

// RequestJoin handles POST /request/to/join. A duplicate while the first
// request is still pending answers 409 with the original request's status
// and name so the caller can render it.
func (h *Handler) RequestJoin(w http.ResponseWriter, r *http.Request) {
	var req joinRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.TeamID == "" || req.Email == "" {
		httpjson.Error(w, http.StatusUnprocessableEntity, "teamId and email are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	existing, already, err := h.ledger.RequestJoin(ctx, models.MemberRequest{
		TeamID:     req.TeamID,
		Email:      req.Email,
		StudentID:  sanitize.Text(req.StudentID),
		Name:       sanitize.Text(req.Name),
		ActivityID: req.ActivityID,
	})
	if err != nil {
		h.storeError(w, "request join", err)
		return
	}
	if already {
		httpjson.Respond(w, http.StatusConflict, map[string]any{
			"exists": true,
			"status": existing.Status,
			"name":   existing.Name,
		})
		return
	}
	httpjson.Respond(w, http.StatusOK, map[string]bool{"success": true})
}

// ListByTeam handles GET /get/member-requests?teamId=.
func (h *Handler) ListByTeam(w http.ResponseWriter, r *http.Request) {
	teamID := r.URL.Query().Get("teamId")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	requests, err := h.requests.ListByTeam(ctx, teamID)
	if err != nil {
		h.storeError(w, "list requests", err)
		return
	}
	if requests == nil {
		requests = []models.MemberRequest{}
	}
	httpjson.Respond(w, http.StatusOK, requests)
}

// Accept handles POST /accept/member-request?id&teamId&activityId=. The
// member's email comes from the stored request, not the caller, so the
// roster entry always carries the normalized form.
func (h *Handler) Accept(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	requestID, err := httpjson.ParseID(q.Get("id"))
	if err != nil {
		httpjson.Error(w, http.StatusUnprocessableEntity, "malformed request id")
		return
	}
	teamID, err := httpjson.ParseID(q.Get("teamId"))
	if err != nil {
		httpjson.Error(w, http.StatusUnprocessableEntity, "malformed team id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	err = h.ledger.AcceptRequest(ctx, requestID, teamID, q.Get("activityId"))
	if errors.Is(err, ledger.ErrRequestNotFound) {
		httpjson.Error(w, http.StatusNotFound, "member request not found")
		return
	}
	if err != nil {
		h.storeError(w, "accept request", err)
		return
	}
	httpjson.Respond(w, http.StatusOK, map[string]bool{"success": true})
}

// Reject handles POST /reject/member-request?id=.
func (h *Handler) Reject(w http.ResponseWriter, r *http.Request) {
	requestID, err := httpjson.ParseID(r.URL.Query().Get("id"))
	if err != nil {
		httpjson.Error(w, http.StatusUnprocessableEntity, "malformed request id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	err = h.ledger.RejectRequest(ctx, requestID)
	if errors.Is(err, ledger.ErrRequestNotFound) {
		httpjson.Error(w, http.StatusNotFound, "member request not found")
		return
	}
	if err != nil {
		h.storeError(w, "reject request", err)
		return
	}
	httpjson.Respond(w, http.StatusOK, map[string]bool{"success": true})
}

// AlreadyJoined handles GET /already/joined?email&activityId=.
func (h *Handler) AlreadyJoined(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	exists, err := h.ledger.IsCommitted(ctx, q.Get("email"), q.Get("activityId"))
	if err != nil {
		h.storeError(w, "already joined", err)
		return
	}
	httpjson.Respond(w, http.StatusOK, map[string]bool{"exists": exists})
}

type withdrawRequest struct {
	Email      string `json:"email"`
	StudentID  string `json:"studentId"`
	ActivityID string `json:"activityId"`
}

// Leave handles POST /leave/team (the student withdraws themselves).
func (h *Handler) Leave(w http.ResponseWriter, r *http.Request) {
	h.withdraw(w, r, ledger.ActorSelf)
}

// Remove handles POST /remove/team-member (admin-initiated). Same effect
// as Leave; the actor only changes the log line.
func (h *Handler) Remove(w http.ResponseWriter, r *http.Request) {
	h.withdraw(w, r, ledger.ActorAdmin)
}

func (h *Handler) withdraw(w http.ResponseWriter, r *http.Request, actor ledger.Actor) {
	var req withdrawRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	if err := h.ledger.Withdraw(ctx, req.Email, req.StudentID, req.ActivityID, actor); err != nil {
		h.storeError(w, "withdraw", err)
		return
	}
	httpjson.Respond(w, http.StatusOK, map[string]bool{"success": true})
}
