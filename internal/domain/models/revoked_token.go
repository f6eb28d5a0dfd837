// internal/domain/models/revoked_token.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RevokedToken marks a bearer token (by jti claim) as logged out before
// its natural expiry. A TTL index on expires_at reaps entries once the
// token would have expired anyway.
type RevokedToken struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	JTI       string             `bson:"jti" json:"jti"`
	ExpiresAt time.Time          `bson:"expires_at" json:"expires_at"`
	RevokedAt time.Time          `bson:"revoked_at" json:"revoked_at"`
}
