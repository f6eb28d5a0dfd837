package oppstore

import (
	"context"
	"time"

	"github.com/oportuna/oportuna/internal/app/system/normalize"
	"github.com/oportuna/oportuna/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("opportunities")}
}

// GetByID loads an opportunity by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Opportunity, error) {
	var o models.Opportunity
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&o); err != nil {
		return nil, err
	}
	return &o, nil
}

// Create inserts a new opportunity after normalizing fields. Status
// defaults to active when empty.
func (s *Store) Create(ctx context.Context, o models.Opportunity) (models.Opportunity, error) {
	o.ID = primitive.NewObjectID()
	o.Title = normalize.Name(o.Title)
	o.TitleCI = text.Fold(o.Title)
	if o.Status == "" {
		o.Status = models.OpportunityActive
	}

	now := time.Now().UTC()
	o.CreatedAt = now
	o.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, o); err != nil {
		return models.Opportunity{}, err
	}
	return o, nil
}

// Update holds the fields an admin may change on an opportunity.
type Update struct {
	Title       string
	Description string
	Status      string
	Industry    int
}

// Update updates an opportunity, but only when it is owned by ownerID.
// A non-owner update matches nothing and reports mongo.ErrNoDocuments;
// the caller distinguishes missing from foreign via GetByID.
func (s *Store) Update(ctx context.Context, id, ownerID primitive.ObjectID, upd Update) error {
	title := normalize.Name(upd.Title)
	set := bson.M{
		"title":       title,
		"title_ci":    text.Fold(title),
		"description": upd.Description,
		"status":      normalize.Status(upd.Status),
		"industry":    upd.Industry,
		"updated_at":  time.Now().UTC(),
	}

	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id, "created_by.user_id": ownerID}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// Delete deletes an opportunity owned by ownerID.
// Returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id, ownerID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id, "created_by.user_id": ownerID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// List returns all opportunities ordered by folded title with a stable
// tiebreak.
func (s *Store) List(ctx context.Context) ([]models.Opportunity, error) {
	opts := options.Find().SetSort(bson.D{{Key: "title_ci", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var opps []models.Opportunity
	if err := cur.All(ctx, &opps); err != nil {
		return nil, err
	}
	return opps, nil
}

// ListByOwner returns the opportunities published by one admin.
func (s *Store) ListByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]models.Opportunity, error) {
	opts := options.Find().SetSort(bson.D{{Key: "title_ci", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{"created_by.user_id": ownerID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var opps []models.Opportunity
	if err := cur.All(ctx, &opps); err != nil {
		return nil, err
	}
	return opps, nil
}
