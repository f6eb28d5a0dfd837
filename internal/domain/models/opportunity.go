// internal/domain/models/opportunity.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Opportunity statuses.
const (
	OpportunityActive   = "active"
	OpportunityInactive = "inactive"
)

// Opportunity is a business opportunity published by an admin. Industry
// is an id from the industry registry; a match is only eligible when it
// equals the candidate user's client type.
type Opportunity struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	TitleCI     string             `bson:"title_ci" json:"-"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Status      string             `bson:"status" json:"status"` // active | inactive
	Industry    int                `bson:"industry" json:"industry"`
	CreatedBy   CreatedByRef       `bson:"created_by" json:"createdBy"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// CreatedByRef records which admin published the opportunity. The name
// is denormalized so match and notification text can be built without an
// extra lookup.
type CreatedByRef struct {
	UserID   primitive.ObjectID `bson:"user_id" json:"userId"`
	UserName string             `bson:"user_name" json:"userName"`
}
