// internal/app/store/activities/activitystore.go
package activitystore

import (
	"context"
	"time"

	"github.com/campushub/unihub/internal/app/system/normalize"
	"github.com/campushub/unihub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("activities")}
}

// Create posts a new activity. Activities are immutable after this.
func (s *Store) Create(ctx context.Context, a models.Activity) (models.Activity, error) {
	a.ID = primitive.NewObjectID()
	a.Section = normalize.Section(a.Section)
	a.CreatedAt = time.Now().UTC()
	if _, err := s.c.InsertOne(ctx, a); err != nil {
		return models.Activity{}, err
	}
	return a, nil
}

// ListBySection returns activities visible to a section, newest first.
func (s *Store) ListBySection(ctx context.Context, section string) ([]models.Activity, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{"section": normalize.Section(section)}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var activities []models.Activity
	if err := cur.All(ctx, &activities); err != nil {
		return nil, err
	}
	return activities, nil
}

// GetByID loads one activity. Returns mongo.ErrNoDocuments if absent.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Activity, error) {
	var a models.Activity
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&a); err != nil {
		return models.Activity{}, err
	}
	return a, nil
}
