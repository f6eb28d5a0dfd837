// internal/domain/models/notification.go
package models

import (
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Transition failures for the notification state machine. Both map to
// an invalid-state (400) response at the HTTP boundary.
var (
	// ErrNotificationClosed is returned for any action on a
	// notification that already reached accepted or cancelled.
	ErrNotificationClosed = errors.New("notification is already resolved")

	// ErrAlreadyAccepted is returned when a party repeats an accept it
	// has already recorded, or tries to cancel after accepting.
	ErrAlreadyAccepted = errors.New("party has already accepted this notification")
)

// Notification is the pending dual-party conversation about one match.
// It is created together with the match and never deleted; the accept
// and cancel transitions below are its only mutations.
//
// Status derives from the two flags: accepted only when both parties
// accepted, cancelled as soon as either party cancels. Cancelled and
// accepted are terminal.
type Notification struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID     primitive.ObjectID `bson:"user_id" json:"userId"`
	AdminID    primitive.ObjectID `bson:"admin_id" json:"adminId"`
	BusinessID primitive.ObjectID `bson:"business_id" json:"businessId"`

	UserMessages    UserMessages `bson:"user_messages" json:"userMessages"`
	Status          string       `bson:"status" json:"status"` // pending | accepted | cancelled
	AcceptedByUser  bool         `bson:"accepted_by_user" json:"acceptedByUser"`
	AcceptedByAdmin bool         `bson:"accepted_by_admin" json:"acceptedByAdmin"`
}

// UserMessages holds the two independent texts: one addressed to the
// user, one to the opportunity's admin. Each party only ever sees its
// own side.
type UserMessages struct {
	User  string `bson:"user" json:"user,omitempty"`
	Admin string `bson:"admin" json:"admin,omitempty"`
}

// AcceptByUser records the user's acceptance. A second accept by the
// same party, or any action after the notification is resolved, fails.
func (n *Notification) AcceptByUser() error {
	if n.Status != ResponsePending {
		return ErrNotificationClosed
	}
	if n.AcceptedByUser {
		return ErrAlreadyAccepted
	}
	n.AcceptedByUser = true
	if n.AcceptedByAdmin {
		n.Status = ResponseAccepted
	}
	return nil
}

// AcceptByAdmin records the admin's acceptance, mirroring AcceptByUser.
func (n *Notification) AcceptByAdmin() error {
	if n.Status != ResponsePending {
		return ErrNotificationClosed
	}
	if n.AcceptedByAdmin {
		return ErrAlreadyAccepted
	}
	n.AcceptedByAdmin = true
	if n.AcceptedByUser {
		n.Status = ResponseAccepted
	}
	return nil
}

// CancelByUser cancels the whole agreement from the user side. A party
// that already committed an accept can no longer cancel.
func (n *Notification) CancelByUser() error {
	if n.Status != ResponsePending {
		return ErrNotificationClosed
	}
	if n.AcceptedByUser {
		return ErrAlreadyAccepted
	}
	n.Status = ResponseCancelled
	return nil
}

// CancelByAdmin cancels the whole agreement from the admin side.
func (n *Notification) CancelByAdmin() error {
	if n.Status != ResponsePending {
		return ErrNotificationClosed
	}
	if n.AcceptedByAdmin {
		return ErrAlreadyAccepted
	}
	n.Status = ResponseCancelled
	return nil
}
