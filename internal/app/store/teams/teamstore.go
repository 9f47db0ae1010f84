// internal/app/store/teams/teamstore.go
package teamstore

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

// ErrDuplicateTeam is returned when a creator already has a team for the
// activity.
var ErrDuplicateTeam = errors.New("this student already created a team for this activity")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("teams")}
}

// Create inserts a new team. The unique index on (email, activity_id)
// guarantees one team per creator per activity even under concurrent
// submissions; a duplicate surfaces as ErrDuplicateTeam.
func (s *Store) Create(ctx context.Context, t models.Team) (models.Team, error) {
	t.ID = primitive.NewObjectID()
	t.Email = normalize.Email(t.Email)
	t.CreatedAt = time.Now().UTC()
	if _, err := s.c.InsertOne(ctx, t); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Team{}, ErrDuplicateTeam
		}
		return models.Team{}, err
	}
	return t, nil
}

// GetByID loads one team. Returns mongo.ErrNoDocuments if absent.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Team, error) {
	var t models.Team
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&t); err != nil {
		return models.Team{}, err
	}
	return t, nil
}

// FindByCreator returns the team a student created for an activity.
// Returns mongo.ErrNoDocuments if they have not created one.
func (s *Store) FindByCreator(ctx context.Context, email, activityID string) (models.Team, error) {
	var t models.Team
	filter := bson.M{"email": normalize.Email(email), "activity_id": activityID}
	if err := s.c.FindOne(ctx, filter).Decode(&t); err != nil {
		return models.Team{}, err
	}
	return t, nil
}

// ListByActivity returns all teams formed for an activity, oldest first.
func (s *Store) ListByActivity(ctx context.Context, activityID string) ([]models.Team, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{"activity_id": activityID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var teams []models.Team
	if err := cur.All(ctx, &teams); err != nil {
		return nil, err
	}
	return teams, nil
}

// UpdateDetails overwrites the team's name and title. Reports whether a
// team matched the id.
func (s *Store) UpdateDetails(ctx context.Context, id primitive.ObjectID, teamName, title string) (bool, error) {
	res, err := s.c.UpdateByID(ctx, id, bson.M{
		"$set": bson.M{"team_name": teamName, "title": title},
	})
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

// AddMember appends a roster entry. The filter excludes teams that already
// list the student, so the push is a no-op on retry and a studentId appears
// at most once per roster. Reports whether the roster changed.
func (s *Store) AddMember(ctx context.Context, id primitive.ObjectID, m models.TeamMember) (bool, error) {
	filter := bson.M{
		"_id":                     id,
		"team_members.student_id": bson.M{"$ne": m.StudentID},
	}
	res, err := s.c.UpdateOne(ctx, filter, bson.M{"$push": bson.M{"team_members": m}})
	if err != nil {
		return false, err
	}
	return res.ModifiedCount > 0, nil
}

// RemoveMember pulls a student's roster entry from whichever team lists
// them for the activity. Removing an absent member is not an error;
// the bool reports whether anything changed.
func (s *Store) RemoveMember(ctx context.Context, activityID, studentID string) (bool, error) {
	filter := bson.M{
		"activity_id":             activityID,
		"team_members.student_id": studentID,
	}
	update := bson.M{"$pull": bson.M{"team_members": bson.M{"student_id": studentID}}}
	res, err := s.c.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount > 0, nil
}

// AddResource appends a resource link. A single $push covers both the
// empty and non-empty list cases. Reports whether a team matched the id.
func (s *Store) AddResource(ctx context.Context, id primitive.ObjectID, res models.TeamResource) (bool, error) {
	r, err := s.c.UpdateByID(ctx, id, bson.M{"$push": bson.M{"team_resources": res}})
	if err != nil {
		return false, err
	}
	return r.MatchedCount > 0, nil
}

// UpdateResource edits the resource with the given identifier in place via
// the positional operator. Reports whether the (team, identifier) pair
// matched; a missing identifier is a plain not-found, never a fault.
func (s *Store) UpdateResource(ctx context.Context, id primitive.ObjectID, identifier, title, link string) (bool, error) {
	filter := bson.M{"_id": id, "team_resources.identifier": identifier}
	update := bson.M{"$set": bson.M{
		"team_resources.$.title": title,
		"team_resources.$.link":  link,
	}}
	res, err := s.c.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}
