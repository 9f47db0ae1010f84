// internal/app/store/students/studentstore.go
package studentstore

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
	return &Store{c: db.Collection("students")}
}

// Create registers a student unless the email is already taken. Returns the
// stored record and whether it already existed. Registration is idempotent:
// a duplicate is a normal outcome, never an error, and the first-created
// record is left untouched.
func (s *Store) Create(ctx context.Context, st models.Student) (models.Student, bool, error) {
	st.Email = normalize.Email(st.Email)
	st.Name = normalize.Name(st.Name)

	var existing models.Student
	err := s.c.FindOne(ctx, bson.M{"email": st.Email}).Decode(&existing)
	if err == nil {
		return existing, true, nil
	}
	if err != mongo.ErrNoDocuments {
		return models.Student{}, false, err
	}

	st.ID = primitive.NewObjectID()
	st.CreatedAt = time.Now().UTC()
	if _, err := s.c.InsertOne(ctx, st); err != nil {
		// Lost the race to a concurrent registration; the unique index on
		// email closed the check-then-insert window.
		if wafflemongo.IsDup(err) {
			if ferr := s.c.FindOne(ctx, bson.M{"email": st.Email}).Decode(&existing); ferr == nil {
				return existing, true, nil
			}
			return models.Student{}, true, nil
		}
		return models.Student{}, false, err
	}
	return st, false, nil
}

// GetByEmail looks up a student by normalized email.
// Returns mongo.ErrNoDocuments if not found.
func (s *Store) GetByEmail(ctx context.Context, email string) (models.Student, error) {
	var st models.Student
	if err := s.c.FindOne(ctx, bson.M{"email": normalize.Email(email)}).Decode(&st); err != nil {
		return models.Student{}, err
	}
	return st, nil
}

// SetSection sets the student's selected section. Reports whether a student
// matched the id.
func (s *Store) SetSection(ctx context.Context, id primitive.ObjectID, section string) (bool, error) {
	res, err := s.c.UpdateByID(ctx, id, bson.M{
		"$set": bson.M{"selected_section": normalize.Section(section)},
	})
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}
