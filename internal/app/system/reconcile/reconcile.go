// Package reconcile repairs the membership ledger's denormalized record
// sets. Ledger transitions write to several collections without a
// transaction, so a crash between steps can strand state in two known
// shapes: a roster member (or team creator) without a commitment, and a
// commitment whose owner no longer appears anywhere in the activity. The
// sweep walks both directions and fixes what it finds. Every repair is
// idempotent, so overlapping sweeps and live traffic are safe.
package reconcile

import (
	"context"
	"sync"
	"time"

	commitmentstore "github.com/campushub/unihub/internal/app/store/commitments"
	"github.com/campushub/unihub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Report counts the repairs made by one sweep.
type Report struct {
	CommitmentsAdded   int
	CommitmentsRemoved int
}

// Sweeper is a background worker that periodically reconciles the ledger.
type Sweeper struct {
	teams       *mongo.Collection
	requests    *mongo.Collection
	commitments *mongo.Collection
	cstore      *commitmentstore.Store
	log         *zap.Logger
	interval    time.Duration
	stopCh      chan struct{}
	wg          sync.WaitGroup
}

// NewSweeper creates a sweeper over the given database.
func NewSweeper(db *mongo.Database, logger *zap.Logger, interval time.Duration) *Sweeper {
	return &Sweeper{
		teams:       db.Collection("teams"),
		requests:    db.Collection("member_requests"),
		commitments: db.Collection("commitments"),
		cstore:      commitmentstore.New(db),
		log:         logger,
		interval:    interval,
		stopCh:      make(chan struct{}),
	}
}

// Start begins the periodic sweep loop.
func (w *Sweeper) Start() {
	w.wg.Add(1)
	go w.run()
	w.log.Info("ledger reconcile sweeper started", zap.Duration("interval", w.interval))
}

// Stop signals the worker to stop and waits for it to finish.
func (w *Sweeper) Stop() {
	close(w.stopCh)
	w.wg.Wait()
	w.log.Info("ledger reconcile sweeper stopped")
}

func (w *Sweeper) run() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
			report, err := w.Sweep(ctx)
			cancel()
			if err != nil {
				w.log.Error("ledger sweep failed", zap.Error(err))
				continue
			}
			if report.CommitmentsAdded > 0 || report.CommitmentsRemoved > 0 {
				w.log.Info("ledger sweep repaired records",
					zap.Int("commitments_added", report.CommitmentsAdded),
					zap.Int("commitments_removed", report.CommitmentsRemoved))
			}
		}
	}
}

// Sweep runs one reconciliation pass.
func (w *Sweeper) Sweep(ctx context.Context) (Report, error) {
	var rep Report

	added, err := w.addMissingCommitments(ctx)
	if err != nil {
		return rep, err
	}
	rep.CommitmentsAdded = added

	removed, err := w.removeOrphanedCommitments(ctx)
	if err != nil {
		return rep, err
	}
	rep.CommitmentsRemoved = removed
	return rep, nil
}

// addMissingCommitments inserts a commitment for every team creator and
// roster member that lacks one (create-team or accept crashed after the
// first write).
func (w *Sweeper) addMissingCommitments(ctx context.Context) (int, error) {
	cur, err := w.teams.Find(ctx, bson.M{})
	if err != nil {
		return 0, err
	}
	defer cur.Close(ctx)

	added := 0
	for cur.Next(ctx) {
		var t models.Team
		if err := cur.Decode(&t); err != nil {
			return added, err
		}

		owed := []models.TeamMember{{Email: t.Email, ActivityID: t.ActivityID}}
		owed = append(owed, t.TeamMembers...)
		for _, m := range owed {
			if m.Email == "" {
				continue
			}
			exists, err := w.cstore.Exists(ctx, m.Email, t.ActivityID)
			if err != nil {
				return added, err
			}
			if exists {
				continue
			}
			if err := w.cstore.Add(ctx, m.Email, t.ActivityID); err != nil {
				return added, err
			}
			w.log.Info("sweep: inserted missing commitment",
				zap.String("email", m.Email),
				zap.String("activity_id", t.ActivityID))
			added++
		}
	}
	return added, cur.Err()
}

// removeOrphanedCommitments deletes commitments whose owner has no team in
// the activity: not a creator, not on any roster, and no pending request.
func (w *Sweeper) removeOrphanedCommitments(ctx context.Context) (int, error) {
	cur, err := w.commitments.Find(ctx, bson.M{})
	if err != nil {
		return 0, err
	}
	defer cur.Close(ctx)

	removed := 0
	for cur.Next(ctx) {
		var c models.Commitment
		if err := cur.Decode(&c); err != nil {
			return removed, err
		}

		teamFilter := bson.M{
			"activity_id": c.ActivityID,
			"$or": []bson.M{
				{"email": c.Email},
				{"team_members.email": c.Email},
			},
		}
		n, err := w.teams.CountDocuments(ctx, teamFilter)
		if err != nil {
			return removed, err
		}
		if n > 0 {
			continue
		}

		pending, err := w.requests.CountDocuments(ctx, bson.M{
			"email":       c.Email,
			"activity_id": c.ActivityID,
		})
		if err != nil {
			return removed, err
		}
		if pending > 0 {
			continue
		}

		if _, err := w.commitments.DeleteOne(ctx, bson.M{"_id": c.ID}); err != nil {
			return removed, err
		}
		w.log.Info("sweep: removed orphaned commitment",
			zap.String("email", c.Email),
			zap.String("activity_id", c.ActivityID))
		removed++
	}
	return removed, cur.Err()
}
