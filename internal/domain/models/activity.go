// internal/domain/models/activity.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Activity is a staff-posted task or competition that students form teams
// for. Immutable after creation; visibility is scoped by Section.
type Activity struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Section     string             `bson:"section" json:"section"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Deadline    string             `bson:"deadline,omitempty" json:"deadline,omitempty"`
	PostedBy    string             `bson:"posted_by,omitempty" json:"postedBy,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
