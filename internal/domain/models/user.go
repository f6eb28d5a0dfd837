// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Roles a user document can carry.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User represents both regular users (job seekers/providers) and the
// admins who publish business opportunities.
//
// NOTE:
//   - Matches and Notifications are non-owning back-references kept for
//     traversal only. The match and notification documents remain the
//     source of truth; nothing here is authoritative beyond the ids.
//   - ClientType is required for role "user" and absent for admins.
type User struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name       string             `bson:"name" json:"name"`
	NameCI     string             `bson:"name_ci" json:"-"` // lowercase, diacritics-stripped
	Email      string             `bson:"email" json:"email"`
	Password   string             `bson:"password" json:"-"` // bcrypt hash, never serialized
	Role       string             `bson:"role" json:"role"`  // admin | user
	ClientType int                `bson:"client_type,omitempty" json:"clientType,omitempty"`

	Matches       []primitive.ObjectID `bson:"matches,omitempty" json:"matches,omitempty"`
	Notifications []NotificationRef    `bson:"notifications,omitempty" json:"notifications,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// NotificationRef is the entry appended to a user's notification list
// when a match notification is created for them. Status is a snapshot at
// creation time; the notification document is authoritative.
type NotificationRef struct {
	NotificationID primitive.ObjectID `bson:"notification_id" json:"notificationId"`
	Status         string             `bson:"status" json:"status"`
}

// IsAdmin reports whether the user carries the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
