// internal/domain/models/student.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Student is a registered student profile.
//
// Email is the identity key: registration is idempotent on it, and all
// profile lookups go through it. SelectedSection scopes which activities
// the student sees.
type Student struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name            string             `bson:"name" json:"name"`
	Email           string             `bson:"email" json:"email"`
	StudentID       string             `bson:"student_id,omitempty" json:"studentId,omitempty"`
	Department      string             `bson:"department,omitempty" json:"department,omitempty"`
	SelectedSection string             `bson:"selected_section,omitempty" json:"selectedSection,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
