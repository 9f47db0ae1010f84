// internal/app/store/classreps/classrepstore.go
package classrepstore

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
	return &Store{c: db.Collection("class_reps")}
}

// Request files a class-representative request for a section. The first
// request per section wins; later requesters get the existing record back
// (taken=true) so the caller can show who holds the role and in what state.
func (s *Store) Request(ctx context.Context, cr models.ClassRep) (models.ClassRep, bool, error) {
	cr.Email = normalize.Email(cr.Email)
	cr.Name = normalize.Name(cr.Name)
	cr.Section = normalize.Section(cr.Section)
	if cr.Status == "" {
		cr.Status = "pending"
	}

	var existing models.ClassRep
	err := s.c.FindOne(ctx, bson.M{"section": cr.Section}).Decode(&existing)
	if err == nil {
		return existing, true, nil
	}
	if err != mongo.ErrNoDocuments {
		return models.ClassRep{}, false, err
	}

	cr.ID = primitive.NewObjectID()
	cr.CreatedAt = time.Now().UTC()
	if _, err := s.c.InsertOne(ctx, cr); err != nil {
		if wafflemongo.IsDup(err) {
			if ferr := s.c.FindOne(ctx, bson.M{"section": cr.Section}).Decode(&existing); ferr == nil {
				return existing, true, nil
			}
			return models.ClassRep{}, true, nil
		}
		return models.ClassRep{}, false, err
	}
	return cr, false, nil
}

// GetByEmail returns the CR request filed by a student.
// Returns mongo.ErrNoDocuments if they never filed one.
func (s *Store) GetByEmail(ctx context.Context, email string) (models.ClassRep, error) {
	var cr models.ClassRep
	if err := s.c.FindOne(ctx, bson.M{"email": normalize.Email(email)}).Decode(&cr); err != nil {
		return models.ClassRep{}, err
	}
	return cr, nil
}
