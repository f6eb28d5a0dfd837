// internal/app/store/tokens/tokenstore.go
package tokenstore

import (
	"context"
	"errors"
	"time"

	"github.com/oportuna/oportuna/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Store tracks revoked bearer tokens by jti until their natural expiry.
type Store struct {
	c *mongo.Collection
}

var ErrAlreadyRevoked = errors.New("token is already revoked")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("revoked_tokens")}
}

// Revoke records the token as logged out. Revoking the same jti twice
// returns ErrAlreadyRevoked.
func (s *Store) Revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	doc := models.RevokedToken{
		ID:        primitive.NewObjectID(),
		JTI:       jti,
		ExpiresAt: expiresAt,
		RevokedAt: time.Now().UTC(),
	}
	if _, err := s.c.InsertOne(ctx, doc); err != nil {
		if wafflemongo.IsDup(err) {
			return ErrAlreadyRevoked
		}
		return err
	}
	return nil
}

// IsRevoked reports whether the jti has been revoked.
func (s *Store) IsRevoked(ctx context.Context, jti string) (bool, error) {
	err := s.c.FindOne(ctx, bson.M{"jti": jti}).Err()
	if err == nil {
		return true, nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	return false, err
}
