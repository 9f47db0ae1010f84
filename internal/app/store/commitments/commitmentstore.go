// internal/app/store/commitments/commitmentstore.go
package commitmentstore

import (
	"context"
	"time"

	"github.com/campushub/unihub/internal/app/system/normalize"
	"github.com/campushub/unihub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("commitments")}
}

// Add records that a student holds a team slot for an activity. Idempotent:
// the unique index on (email, activity_id) makes a duplicate insert a
// no-op, which is what ledger retries and the reconcile sweep rely on.
func (s *Store) Add(ctx context.Context, email, activityID string) error {
	c := models.Commitment{
		ID:         primitive.NewObjectID(),
		Email:      normalize.Email(email),
		ActivityID: activityID,
		CreatedAt:  time.Now().UTC(),
	}
	if _, err := s.c.InsertOne(ctx, c); err != nil && !wafflemongo.IsDup(err) {
		return err
	}
	return nil
}

// Exists reports whether a commitment is recorded for (email, activity).
func (s *Store) Exists(ctx context.Context, email, activityID string) (bool, error) {
	filter := bson.M{"email": normalize.Email(email), "activity_id": activityID}
	err := s.c.FindOne(ctx, filter).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Remove deletes the commitment for (email, activity). Removing an absent
// commitment is not an error.
func (s *Store) Remove(ctx context.Context, email, activityID string) error {
	filter := bson.M{"email": normalize.Email(email), "activity_id": activityID}
	_, err := s.c.DeleteOne(ctx, filter)
	return err
}
