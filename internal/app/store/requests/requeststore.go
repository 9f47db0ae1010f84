// internal/app/store/requests/requeststore.go
package requeststore

import (
	"context"
	"errors"
	"time"

	"github.com/campushub/unihub/internal/app/system/normalize"
	"github.com/campushub/unihub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

// ErrDuplicateRequest is returned when a pending request already exists for
// the (team, email) pair.
var ErrDuplicateRequest = errors.New("a pending request for this team already exists")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("member_requests")}
}

// Create inserts a pending join request. The unique index on
// (team_id, email) closes the check-then-insert race: a concurrent
// duplicate comes back as ErrDuplicateRequest.
func (s *Store) Create(ctx context.Context, r models.MemberRequest) (models.MemberRequest, error) {
	r.ID = primitive.NewObjectID()
	r.Email = normalize.Email(r.Email)
	r.Name = normalize.Name(r.Name)
	r.Status = models.RequestPending
	r.CreatedAt = time.Now().UTC()
	if _, err := s.c.InsertOne(ctx, r); err != nil {
		if wafflemongo.IsDup(err) {
			return models.MemberRequest{}, ErrDuplicateRequest
		}
		return models.MemberRequest{}, err
	}
	return r, nil
}

// FindPending returns the pending request for (team, email).
// Returns mongo.ErrNoDocuments if there is none.
func (s *Store) FindPending(ctx context.Context, teamID, email string) (models.MemberRequest, error) {
	var r models.MemberRequest
	filter := bson.M{"team_id": teamID, "email": normalize.Email(email)}
	if err := s.c.FindOne(ctx, filter).Decode(&r); err != nil {
		return models.MemberRequest{}, err
	}
	return r, nil
}

// GetByID loads one request. Returns mongo.ErrNoDocuments if absent.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.MemberRequest, error) {
	var r models.MemberRequest
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&r); err != nil {
		return models.MemberRequest{}, err
	}
	return r, nil
}

// ListByTeam returns the pending requests for a team, oldest first.
func (s *Store) ListByTeam(ctx context.Context, teamID string) ([]models.MemberRequest, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{"team_id": teamID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var requests []models.MemberRequest
	if err := cur.All(ctx, &requests); err != nil {
		return nil, err
	}
	return requests, nil
}

// Delete removes a request by id. Reports whether a document was deleted.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

// ExistsForActivity reports whether the student has any pending request in
// the activity, regardless of team. This is one half of the ledger's
// dual-source commitment check.
func (s *Store) ExistsForActivity(ctx context.Context, email, activityID string) (bool, error) {
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
