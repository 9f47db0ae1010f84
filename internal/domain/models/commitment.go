// internal/domain/models/commitment.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Commitment marks that a student currently holds a team slot for an
// activity (they created a team or were accepted into one). At most one per
// (email, activity_id), enforced by a unique index. A still-pending join
// request also counts as "committed" at query time; that check lives in the
// ledger, not here.
type Commitment struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email      string             `bson:"email" json:"email"`
	ActivityID string             `bson:"activity_id" json:"activityId"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
