// internal/domain/models/classrep.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ClassRep records a class-representative request. At most one per section;
// the first student to request the role holds it and later requesters are
// shown the existing record.
type ClassRep struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name    string             `bson:"name" json:"name"`
	Email   string             `bson:"email" json:"email"`
	Section string             `bson:"section" json:"section"`
	Status  string             `bson:"status" json:"status"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
