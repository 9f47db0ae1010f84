package reconcile_test

import (
	"testing"
	"time"

	"github.com/campushub/unihub/internal/app/system/reconcile"
	"github.com/campushub/unihub/internal/domain/models"
	"github.com/campushub/unihub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const activityID = "66b2f9a11c9d440000a1b2c3"

func TestSweep_InsertsMissingCommitments(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	sweeper := reconcile.NewSweeper(db, zap.NewNop(), 0)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	// A team whose creator and one roster member both lack commitments, as
	// left behind by a crash between the first and second ledger write.
	team := fixtures.CreateTeam(ctx, "Team Phoenix", "nadia@example.com", activityID)
	fixtures.AddTeamMember(ctx, team.ID, models.TeamMember{
		Name: "Tanvir Ahmed", StudentID: "201914055", Email: "tanvir@example.com", ActivityID: activityID,
	})

	rep, err := sweeper.Sweep(ctx)
	if err != nil {
		t.Fatalf("Sweep failed: %v", err)
	}
	if rep.CommitmentsAdded != 2 {
		t.Errorf("CommitmentsAdded: got %d, want 2", rep.CommitmentsAdded)
	}
	if rep.CommitmentsRemoved != 0 {
		t.Errorf("CommitmentsRemoved: got %d, want 0", rep.CommitmentsRemoved)
	}

	n, err := db.Collection("commitments").CountDocuments(ctx, map[string]any{"activity_id": activityID})
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if n != 2 {
		t.Errorf("commitments: got %d, want 2", n)
	}

	// A second pass finds nothing to do.
	rep, err = sweeper.Sweep(ctx)
	if err != nil {
		t.Fatalf("second Sweep failed: %v", err)
	}
	if rep.CommitmentsAdded != 0 || rep.CommitmentsRemoved != 0 {
		t.Errorf("second sweep made repairs: %+v", rep)
	}
}

func TestSweep_RemovesOrphanedCommitments(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	sweeper := reconcile.NewSweeper(db, zap.NewNop(), 0)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	// A commitment with no team, roster entry, or pending request behind it.
	fixtures.CreateCommitment(ctx, "ghost@example.com", activityID)

	rep, err := sweeper.Sweep(ctx)
	if err != nil {
		t.Fatalf("Sweep failed: %v", err)
	}
	if rep.CommitmentsRemoved != 1 {
		t.Errorf("CommitmentsRemoved: got %d, want 1", rep.CommitmentsRemoved)
	}

	n, err := db.Collection("commitments").CountDocuments(ctx, map[string]any{"email": "ghost@example.com"})
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if n != 0 {
		t.Error("orphaned commitment survived the sweep")
	}
}

func TestSweep_KeepsBackedCommitments(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	sweeper := reconcile.NewSweeper(db, zap.NewNop(), 0)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	// Creator-backed commitment.
	team := fixtures.CreateTeam(ctx, "Team Phoenix", "nadia@example.com", activityID)
	fixtures.CreateCommitment(ctx, "nadia@example.com", activityID)

	// Roster-backed commitment.
	fixtures.AddTeamMember(ctx, team.ID, models.TeamMember{
		Name: "Tanvir Ahmed", StudentID: "201914055", Email: "tanvir@example.com", ActivityID: activityID,
	})
	fixtures.CreateCommitment(ctx, "tanvir@example.com", activityID)

	// Request-backed commitment: a pending request alone protects it.
	fixtures.CreateMemberRequest(ctx, primitive.NewObjectID().Hex(), "rumi@example.com", "201914099", "Rumi Khan", activityID)
	fixtures.CreateCommitment(ctx, "rumi@example.com", activityID)

	rep, err := sweeper.Sweep(ctx)
	if err != nil {
		t.Fatalf("Sweep failed: %v", err)
	}
	if rep.CommitmentsRemoved != 0 {
		t.Errorf("sweep removed backed commitments: %d", rep.CommitmentsRemoved)
	}

	n, err := db.Collection("commitments").CountDocuments(ctx, map[string]any{"activity_id": activityID})
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if n != 3 {
		t.Errorf("commitments: got %d, want 3", n)
	}
}

func TestSweeper_StartStop(t *testing.T) {
	db := testutil.SetupTestDB(t)
	sweeper := reconcile.NewSweeper(db, zap.NewNop(), 50*time.Millisecond)

	sweeper.Start()
	sweeper.Stop()
}
