// internal/domain/models/match.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Per-party responses on a match, and the status values of the
// notification that coordinates them. They share one vocabulary:
// pending until a party acts, then accepted or cancelled.
const (
	ResponsePending   = "pending"
	ResponseAccepted  = "accepted"
	ResponseCancelled = "cancelled"
)

// Match pairs exactly one user with one business opportunity. At most
// one match may exist per (user.user_id, business.business_id) pair;
// the matches collection enforces this with a unique compound index.
//
// The response fields are written only by the consistency bridge when
// the paired notification changes state.
type Match struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	User     MatchUserSide      `bson:"user" json:"user"`
	Business MatchBusinessSide  `bson:"business" json:"business"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// MatchUserSide is the user half of a match with that party's response.
type MatchUserSide struct {
	UserID     primitive.ObjectID `bson:"user_id" json:"userId"`
	UserName   string             `bson:"user_name" json:"userName"`
	ClientType int                `bson:"client_type" json:"clientType"`
	Response   string             `bson:"response" json:"response"` // pending | accepted | cancelled
}

// MatchBusinessSide is the opportunity half of a match with the
// admin-side response.
type MatchBusinessSide struct {
	BusinessID   primitive.ObjectID `bson:"business_id" json:"businessId"`
	BusinessName string             `bson:"business_name" json:"businessName"`
	BusinessType int                `bson:"business_type" json:"businessType"`
	Response     string             `bson:"response" json:"response"` // pending | accepted | cancelled
}
