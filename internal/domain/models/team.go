// internal/domain/models/team.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Team is a student-created team for one activity.
//
// At most one team per (email, activity_id) creator pair, enforced by a
// unique index. TeamMembers is the roster: unique by StudentID within a
// team, and a student appears in at most one team's roster per activity
// (that cross-team invariant is the ledger's job, not the store's).
type Team struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ActivityID string             `bson:"activity_id" json:"activityId"`
	Email      string             `bson:"email" json:"email"` // creator
	TeamName   string             `bson:"team_name" json:"teamName"`
	Title      string             `bson:"title,omitempty" json:"title,omitempty"`

	TeamMembers   []TeamMember   `bson:"team_members,omitempty" json:"teamMembers,omitempty"`
	TeamResources []TeamResource `bson:"team_resources,omitempty" json:"teamResources,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// TeamMember is one roster entry.
type TeamMember struct {
	Name       string `bson:"name" json:"name"`
	StudentID  string `bson:"student_id" json:"studentId"`
	Email      string `bson:"email" json:"email"`
	ActivityID string `bson:"activity_id" json:"activityId"`
}

// TeamResource is a titled link attached to a team, keyed by a generated
// identifier.
type TeamResource struct {
	Identifier string `bson:"identifier" json:"identifier"`
	Title      string `bson:"title" json:"title"`
	Link       string `bson:"link" json:"link"`
}
