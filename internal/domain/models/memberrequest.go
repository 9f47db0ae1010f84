// internal/domain/models/memberrequest.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RequestPending is the only persisted request status. Acceptance and
// rejection are terminal: the record is deleted, which re-opens the
// (team, email) pair for a fresh request.
const RequestPending = "pending"

// MemberRequest is a pending request to join a team. At most one per
// (team_id, email), enforced by a unique index; presence means pending.
type MemberRequest struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TeamID     string             `bson:"team_id" json:"teamId"`
	Email      string             `bson:"email" json:"email"`
	StudentID  string             `bson:"student_id" json:"studentId"`
	Name       string             `bson:"name" json:"name"`
	ActivityID string             `bson:"activity_id" json:"activityId"`
	Status     string             `bson:"status" json:"status"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
