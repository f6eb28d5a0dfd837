package matchstore

import (
	"context"
	"errors"
	"time"

	"github.com/oportuna/oportuna/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("matches")}
}

// ErrDuplicateMatch is returned when a match already exists for the
// same user/opportunity pair. It is driven by the unique compound index
// on (user.user_id, business.business_id).
var ErrDuplicateMatch = errors.New("a match already exists for this user and opportunity")

// GetByID loads a match by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Match, error) {
	var m models.Match
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&m); err != nil {
		return nil, err
	}
	return &m, nil
}

// Create inserts a new match with both responses pending.
func (s *Store) Create(ctx context.Context, m models.Match) (models.Match, error) {
	m.ID = primitive.NewObjectID()
	m.User.Response = models.ResponsePending
	m.Business.Response = models.ResponsePending
	m.CreatedAt = time.Now().UTC()

	if _, err := s.c.InsertOne(ctx, m); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Match{}, ErrDuplicateMatch
		}
		return models.Match{}, err
	}
	return m, nil
}

// ExistsByPair reports whether a match exists for the user/opportunity
// pair. Creation still relies on the unique index; this is the cheap
// pre-check that produces a clean conflict without an insert attempt.
func (s *Store) ExistsByPair(ctx context.Context, userID, businessID primitive.ObjectID) (bool, error) {
	err := s.c.FindOne(ctx, bson.M{
		"user.user_id":         userID,
		"business.business_id": businessID,
	}).Err()
	if err == nil {
		return true, nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	return false, err
}

// List returns all matches, newest first.
func (s *Store) List(ctx context.Context) ([]models.Match, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var matches []models.Match
	if err := cur.All(ctx, &matches); err != nil {
		return nil, err
	}
	return matches, nil
}

// ListByUser returns a user's matches, newest first.
func (s *Store) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Match, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{"user.user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var matches []models.Match
	if err := cur.All(ctx, &matches); err != nil {
		return nil, err
	}
	return matches, nil
}

// Delete deletes a match by ID.
// Returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// SetUserResponse writes the user-side response on the match keyed by
// the user/opportunity pair. Missing pairs are not an error; the match
// may have been deleted while its notification lived on.
func (s *Store) SetUserResponse(ctx context.Context, userID, businessID primitive.ObjectID, response string) error {
	_, err := s.c.UpdateOne(ctx, bson.M{
		"user.user_id":         userID,
		"business.business_id": businessID,
	}, bson.M{"$set": bson.M{"user.response": response}})
	return err
}

// SetBusinessResponse writes the admin-side response, mirroring
// SetUserResponse.
func (s *Store) SetBusinessResponse(ctx context.Context, userID, businessID primitive.ObjectID, response string) error {
	_, err := s.c.UpdateOne(ctx, bson.M{
		"user.user_id":         userID,
		"business.business_id": businessID,
	}, bson.M{"$set": bson.M{"business.response": response}})
	return err
}

// SetBothResponses writes the same response to both sides in one
// update, used when a cancellation closes the whole match.
func (s *Store) SetBothResponses(ctx context.Context, userID, businessID primitive.ObjectID, response string) error {
	_, err := s.c.UpdateOne(ctx, bson.M{
		"user.user_id":         userID,
		"business.business_id": businessID,
	}, bson.M{"$set": bson.M{
		"user.response":     response,
		"business.response": response,
	}})
	return err
}
