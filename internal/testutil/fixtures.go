package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/campushub/unihub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateStudent inserts a student with a selected section.
func (f *Fixtures) CreateStudent(ctx context.Context, name, email, studentID, section string) models.Student {
	f.t.Helper()

	st := models.Student{
		ID:              primitive.NewObjectID(),
		Name:            name,
		Email:           email,
		StudentID:       studentID,
		SelectedSection: section,
		CreatedAt:       time.Now().UTC(),
	}
	if _, err := f.db.Collection("students").InsertOne(ctx, st); err != nil {
		f.t.Fatalf("failed to create test student: %v", err)
	}
	return st
}

// CreateActivity inserts an activity for a section.
func (f *Fixtures) CreateActivity(ctx context.Context, title, section string) models.Activity {
	f.t.Helper()

	a := models.Activity{
		ID:        primitive.NewObjectID(),
		Title:     title,
		Section:   section,
		PostedBy:  "staff@test.edu",
		CreatedAt: time.Now().UTC(),
	}
	if _, err := f.db.Collection("activities").InsertOne(ctx, a); err != nil {
		f.t.Fatalf("failed to create test activity: %v", err)
	}
	return a
}

// CreateTeam inserts a team created by the given student for an activity.
func (f *Fixtures) CreateTeam(ctx context.Context, teamName, creatorEmail, activityID string) models.Team {
	f.t.Helper()

	team := models.Team{
		ID:         primitive.NewObjectID(),
		ActivityID: activityID,
		Email:      creatorEmail,
		TeamName:   teamName,
		Title:      teamName + " title",
		CreatedAt:  time.Now().UTC(),
	}
	if _, err := f.db.Collection("teams").InsertOne(ctx, team); err != nil {
		f.t.Fatalf("failed to create test team: %v", err)
	}
	return team
}

// AddTeamMember pushes a roster entry directly onto a team.
func (f *Fixtures) AddTeamMember(ctx context.Context, teamID primitive.ObjectID, m models.TeamMember) {
	f.t.Helper()

	_, err := f.db.Collection("teams").UpdateByID(ctx, teamID,
		map[string]any{"$push": map[string]any{"team_members": m}})
	if err != nil {
		f.t.Fatalf("failed to add test team member: %v", err)
	}
}

// CreateMemberRequest inserts a pending join request.
func (f *Fixtures) CreateMemberRequest(ctx context.Context, teamID, email, studentID, name, activityID string) models.MemberRequest {
	f.t.Helper()

	r := models.MemberRequest{
		ID:         primitive.NewObjectID(),
		TeamID:     teamID,
		Email:      email,
		StudentID:  studentID,
		Name:       name,
		ActivityID: activityID,
		Status:     models.RequestPending,
		CreatedAt:  time.Now().UTC(),
	}
	if _, err := f.db.Collection("member_requests").InsertOne(ctx, r); err != nil {
		f.t.Fatalf("failed to create test member request: %v", err)
	}
	return r
}

// CreateCommitment inserts a commitment index entry.
func (f *Fixtures) CreateCommitment(ctx context.Context, email, activityID string) models.Commitment {
	f.t.Helper()

	c := models.Commitment{
		ID:         primitive.NewObjectID(),
		Email:      email,
		ActivityID: activityID,
		CreatedAt:  time.Now().UTC(),
	}
	if _, err := f.db.Collection("commitments").InsertOne(ctx, c); err != nil {
		f.t.Fatalf("failed to create test commitment: %v", err)
	}
	return c
}
