// Package ledger is the single authority for membership state transitions
// that touch more than one collection.
//
// Three record sets describe a student's stake in an activity: the team
// rosters (teams.team_members), the pending join requests
// (member_requests), and the commitment index (commitments). The store
// gives atomicity per document only, so every multi-collection transition
// here is an ordered sequence of single-document writes. The order is
// chosen so that a crash mid-sequence leaves a state the reconcile sweep
// can repair (see internal/app/system/reconcile):
//
//   - create team: team insert first, commitment second. A crash leaves a
//     team whose creator has no commitment; the sweep inserts it. The
//     reverse order could leave a commitment pointing at nothing.
//   - accept: roster push, request delete, commitment insert. Each step is
//     idempotent (guarded push, keyed delete, dup-tolerant insert), so the
//     caller retries the whole operation on failure.
//
// Existence-check races (two concurrent identical requests) are closed by
// the unique indexes on member_requests(team_id,email),
// commitments(email,activity_id) and teams(email,activity_id); the loser of
// a race sees the same "already exists" outcome as a plain duplicate.
package ledger

import (
	"context"
	"errors"

	commitmentstore "github.com/campushub/unihub/internal/app/store/commitments"
	requeststore "github.com/campushub/unihub/internal/app/store/requests"
	teamstore "github.com/campushub/unihub/internal/app/store/teams"
	"github.com/campushub/unihub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// ErrRequestNotFound is returned by AcceptRequest and RejectRequest when
// the member request does not exist (already resolved, or never created).
var ErrRequestNotFound = errors.New("member request not found")

// Actor distinguishes who initiated a withdrawal. The effect is identical;
// only the log line differs.
type Actor string

const (
	ActorSelf  Actor = "self"  // student leaves the team
	ActorAdmin Actor = "admin" // team admin removes the member
)

// Ledger orchestrates the teams, member_requests, and commitments stores.
type Ledger struct {
	teams       *teamstore.Store
	requests    *requeststore.Store
	commitments *commitmentstore.Store
	log         *zap.Logger
}

func New(db *mongo.Database, logger *zap.Logger) *Ledger {
	return &Ledger{
		teams:       teamstore.New(db),
		requests:    requeststore.New(db),
		commitments: commitmentstore.New(db),
		log:         logger,
	}
}

// CreateTeam registers a team for (creator email, activity). Idempotent per
// pair: if the creator already has a team for the activity the existing
// team comes back with already=true, and the creator's commitment is
// re-asserted in case an earlier attempt failed between its two writes. On
// creation the commitment is recorded as the second step.
func (l *Ledger) CreateTeam(ctx context.Context, t models.Team) (models.Team, bool, error) {
	existing, err := l.teams.FindByCreator(ctx, t.Email, t.ActivityID)
	if err == nil {
		// A retry after a transient commitment-insert failure lands here,
		// so re-issue the insert; Add is dup-tolerant and a no-op when the
		// commitment is already in place.
		if cerr := l.commitments.Add(ctx, existing.Email, existing.ActivityID); cerr != nil {
			return existing, true, cerr
		}
		return existing, true, nil
	}
	if err != mongo.ErrNoDocuments {
		return models.Team{}, false, err
	}

	created, err := l.teams.Create(ctx, t)
	if err != nil {
		if errors.Is(err, teamstore.ErrDuplicateTeam) {
			// Lost a race with an identical submission.
			if existing, ferr := l.teams.FindByCreator(ctx, t.Email, t.ActivityID); ferr == nil {
				if cerr := l.commitments.Add(ctx, existing.Email, existing.ActivityID); cerr != nil {
					return existing, true, cerr
				}
				return existing, true, nil
			}
			return models.Team{}, true, nil
		}
		return models.Team{}, false, err
	}

	if err := l.commitments.Add(ctx, created.Email, created.ActivityID); err != nil {
		// Team exists but the creator's commitment is missing; the sweep
		// will insert it. Surface the error so the caller can retry.
		l.log.Error("create-team: commitment insert failed after team insert",
			zap.String("team_id", created.ID.Hex()),
			zap.String("email", created.Email),
			zap.String("activity_id", created.ActivityID),
			zap.Error(err))
		return created, false, err
	}
	return created, false, nil
}

// IsCommitted reports whether the student already holds a stake in the
// activity: a recorded commitment, or a still-pending join request. Both
// sources are consulted because a pending request reserves the slot just
// like confirmed membership does.
func (l *Ledger) IsCommitted(ctx context.Context, email, activityID string) (bool, error) {
	committed, err := l.commitments.Exists(ctx, email, activityID)
	if err != nil {
		return false, err
	}
	if committed {
		return true, nil
	}
	return l.requests.ExistsForActivity(ctx, email, activityID)
}

// RequestJoin files a join request for (team, email). If a pending request
// already exists it is returned with already=true so the caller can show
// its status; nothing is mutated.
func (l *Ledger) RequestJoin(ctx context.Context, r models.MemberRequest) (models.MemberRequest, bool, error) {
	existing, err := l.requests.FindPending(ctx, r.TeamID, r.Email)
	if err == nil {
		return existing, true, nil
	}
	if err != mongo.ErrNoDocuments {
		return models.MemberRequest{}, false, err
	}

	created, err := l.requests.Create(ctx, r)
	if err != nil {
		if errors.Is(err, requeststore.ErrDuplicateRequest) {
			if existing, ferr := l.requests.FindPending(ctx, r.TeamID, r.Email); ferr == nil {
				return existing, true, nil
			}
			return models.MemberRequest{}, true, nil
		}
		return models.MemberRequest{}, false, err
	}
	return created, false, nil
}

// AcceptRequest resolves a pending request into team membership: the
// student is appended to the team roster, the request is deleted, and the
// commitment is recorded, in that order. The three writes are not atomic;
// on error the caller retries the whole operation and every step tolerates
// having already happened.
//
// The roster entry and commitment are keyed by the request's stored email,
// which the request store normalized on create. Keying them off anything
// else would let a mixed-case roster email dodge the reconcile sweep's
// membership check and get the member's commitment deleted out from under
// them.
func (l *Ledger) AcceptRequest(ctx context.Context, requestID, teamID primitive.ObjectID, activityID string) error {
	req, err := l.requests.GetByID(ctx, requestID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return ErrRequestNotFound
		}
		return err
	}

	member := models.TeamMember{
		Name:       req.Name,
		StudentID:  req.StudentID,
		Email:      req.Email,
		ActivityID: activityID,
	}
	added, err := l.teams.AddMember(ctx, teamID, member)
	if err != nil {
		return err
	}
	if !added {
		// Team missing, or the student is already on the roster from an
		// earlier partial accept. Either way the remaining steps still
		// need to run.
		l.log.Warn("accept: roster unchanged",
			zap.String("team_id", teamID.Hex()),
			zap.String("student_id", req.StudentID))
	}

	if _, err := l.requests.Delete(ctx, requestID); err != nil {
		return err
	}
	return l.commitments.Add(ctx, req.Email, activityID)
}

// RejectRequest resolves a pending request by deleting it. No other record
// set is touched, so a fresh request for the same (team, email) becomes
// possible immediately.
func (l *Ledger) RejectRequest(ctx context.Context, requestID primitive.ObjectID) error {
	deleted, err := l.requests.Delete(ctx, requestID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrRequestNotFound
	}
	return nil
}

// Withdraw removes a student from whichever team roster lists them for the
// activity and clears their commitment. Leaving and admin removal are the
// same transition; actor only labels the log line. Idempotent: withdrawing
// a student who is not on any roster is not an error.
func (l *Ledger) Withdraw(ctx context.Context, email, studentID, activityID string, actor Actor) error {
	removed, err := l.teams.RemoveMember(ctx, activityID, studentID)
	if err != nil {
		return err
	}
	if err := l.commitments.Remove(ctx, email, activityID); err != nil {
		return err
	}
	l.log.Info("member withdrawn",
		zap.String("actor", string(actor)),
		zap.String("student_id", studentID),
		zap.String("activity_id", activityID),
		zap.Bool("roster_changed", removed))
	return nil
}
