// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

/*
EnsureAll is called at startup. Each ensure* function is idempotent
(CreateMany on an existing index with matching options is a no-op). The
unique indexes are load-bearing: they close the check-then-insert races in
registration, team creation, join requests, and the commitment index, so
startup fails fast if any of them cannot be created.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	if err := ensureStudents(ctx, db); err != nil {
		problems = append(problems, "students: "+err.Error())
	}
	if err := ensureClassReps(ctx, db); err != nil {
		problems = append(problems, "class_reps: "+err.Error())
	}
	if err := ensureActivities(ctx, db); err != nil {
		problems = append(problems, "activities: "+err.Error())
	}
	if err := ensureTeams(ctx, db); err != nil {
		problems = append(problems, "teams: "+err.Error())
	}
	if err := ensureMemberRequests(ctx, db); err != nil {
		problems = append(problems, "member_requests: "+err.Error())
	}
	if err := ensureCommitments(ctx, db); err != nil {
		problems = append(problems, "commitments: "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

func ensureIndexSet(ctx context.Context, coll *mongo.Collection, models []mongo.IndexModel) error {
	names, err := coll.Indexes().CreateMany(ctx, models)
	if err != nil {
		return err
	}
	zap.L().Info("ensured indexes",
		zap.String("collection", coll.Name()),
		zap.Strings("indexes", names))
	return nil
}

func ensureStudents(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("students"), []mongo.IndexModel{
		// Identity key: one profile per email, idempotent registration
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_students_email"),
		},
	})
}

func ensureClassReps(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("class_reps"), []mongo.IndexModel{
		// First request per section wins
		{
			Keys:    bson.D{{Key: "section", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_cr_section"),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetName("idx_cr_email"),
		},
	})
}

func ensureActivities(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("activities"), []mongo.IndexModel{
		// Section-scoped listings, newest first
		{
			Keys:    bson.D{{Key: "section", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_activities_section"),
		},
	})
}

func ensureTeams(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("teams"), []mongo.IndexModel{
		// One team per creator per activity
		{
			Keys:    bson.D{{Key: "email", Value: 1}, {Key: "activity_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_teams_creator_activity"),
		},
		// List teams for an activity
		{
			Keys:    bson.D{{Key: "activity_id", Value: 1}, {Key: "created_at", Value: 1}},
			Options: options.Index().SetName("idx_teams_activity"),
		},
		// Roster withdrawal matches on (activity, member student id)
		{
			Keys:    bson.D{{Key: "activity_id", Value: 1}, {Key: "team_members.student_id", Value: 1}},
			Options: options.Index().SetName("idx_teams_activity_member"),
		},
	})
}

func ensureMemberRequests(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("member_requests"), []mongo.IndexModel{
		// At most one pending request per (team, email)
		{
			Keys:    bson.D{{Key: "team_id", Value: 1}, {Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_requests_team_email"),
		},
		// Dual-source commitment check reads by (email, activity)
		{
			Keys:    bson.D{{Key: "email", Value: 1}, {Key: "activity_id", Value: 1}},
			Options: options.Index().SetName("idx_requests_email_activity"),
		},
		// List pending requests for a team, oldest first
		{
			Keys:    bson.D{{Key: "team_id", Value: 1}, {Key: "created_at", Value: 1}},
			Options: options.Index().SetName("idx_requests_team"),
		},
	})
}

func ensureCommitments(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("commitments"), []mongo.IndexModel{
		// One commitment per (email, activity); makes ledger inserts idempotent
		{
			Keys:    bson.D{{Key: "email", Value: 1}, {Key: "activity_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_commitments_email_activity"),
		},
	})
}
