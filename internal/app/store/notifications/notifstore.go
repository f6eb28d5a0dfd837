package notifstore

import (
	"context"
	"errors"

	"github.com/oportuna/oportuna/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("notifications")}
}

var (
	// ErrNotOwner is returned when the caller is neither the user nor
	// the admin party of the notification they tried to act on.
	ErrNotOwner = errors.New("notification does not belong to this account")

	// ErrConflict is returned when the document changed between the
	// transition attempt and the diagnosis read. Callers may retry.
	ErrConflict = errors.New("notification changed concurrently")
)

// GetByID loads a notification by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Notification, error) {
	var n models.Notification
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&n); err != nil {
		return nil, err
	}
	return &n, nil
}

// Create inserts a new pending notification.
func (s *Store) Create(ctx context.Context, n models.Notification) (models.Notification, error) {
	n.ID = primitive.NewObjectID()
	n.Status = models.ResponsePending
	n.AcceptedByUser = false
	n.AcceptedByAdmin = false

	if _, err := s.c.InsertOne(ctx, n); err != nil {
		return models.Notification{}, err
	}
	return n, nil
}

// ListForUser returns the notifications addressed to a user, pending
// first by virtue of insertion order being irrelevant to the caller.
func (s *Store) ListForUser(ctx context.Context, userID primitive.ObjectID) ([]models.Notification, error) {
	return s.list(ctx, bson.M{"user_id": userID})
}

// ListForAdmin returns the notifications addressed to an admin.
func (s *Store) ListForAdmin(ctx context.Context, adminID primitive.ObjectID) ([]models.Notification, error) {
	return s.list(ctx, bson.M{"admin_id": adminID})
}

func (s *Store) list(ctx context.Context, filter bson.M) ([]models.Notification, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: -1}})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var ns []models.Notification
	if err := cur.All(ctx, &ns); err != nil {
		return nil, err
	}
	return ns, nil
}

/*
The transitions below never read-modify-write. Each candidate state
change is expressed as a conditional FindOneAndUpdate whose filter pins
the exact prior state, so two racing requests can never both commit the
same transition; the loser's filter matches nothing and the diagnosis
read explains why.
*/

// AcceptByUser records the user's acceptance and returns the updated
// notification. When the admin already accepted, the notification is
// promoted to accepted in the same write.
func (s *Store) AcceptByUser(ctx context.Context, id, actorID primitive.ObjectID) (*models.Notification, error) {
	// Counterpart already accepted: flag + promote in one write.
	n, ok, err := s.tryUpdate(ctx,
		bson.M{"_id": id, "user_id": actorID, "status": models.ResponsePending,
			"accepted_by_user": false, "accepted_by_admin": true},
		bson.M{"$set": bson.M{"accepted_by_user": true, "status": models.ResponseAccepted}})
	if err != nil || ok {
		return n, err
	}

	// First accept: flag only.
	n, ok, err = s.tryUpdate(ctx,
		bson.M{"_id": id, "user_id": actorID, "status": models.ResponsePending,
			"accepted_by_user": false, "accepted_by_admin": false},
		bson.M{"$set": bson.M{"accepted_by_user": true}})
	if err != nil || ok {
		return n, err
	}

	return nil, s.diagnose(ctx, id, actorID, partyUser, (*models.Notification).AcceptByUser)
}

// AcceptByAdmin mirrors AcceptByUser for the admin party.
func (s *Store) AcceptByAdmin(ctx context.Context, id, actorID primitive.ObjectID) (*models.Notification, error) {
	n, ok, err := s.tryUpdate(ctx,
		bson.M{"_id": id, "admin_id": actorID, "status": models.ResponsePending,
			"accepted_by_admin": false, "accepted_by_user": true},
		bson.M{"$set": bson.M{"accepted_by_admin": true, "status": models.ResponseAccepted}})
	if err != nil || ok {
		return n, err
	}

	n, ok, err = s.tryUpdate(ctx,
		bson.M{"_id": id, "admin_id": actorID, "status": models.ResponsePending,
			"accepted_by_admin": false, "accepted_by_user": false},
		bson.M{"$set": bson.M{"accepted_by_admin": true}})
	if err != nil || ok {
		return n, err
	}

	return nil, s.diagnose(ctx, id, actorID, partyAdmin, (*models.Notification).AcceptByAdmin)
}

// CancelByUser cancels the notification from the user side. A user who
// already committed an accept can no longer cancel.
func (s *Store) CancelByUser(ctx context.Context, id, actorID primitive.ObjectID) (*models.Notification, error) {
	n, ok, err := s.tryUpdate(ctx,
		bson.M{"_id": id, "user_id": actorID, "status": models.ResponsePending,
			"accepted_by_user": false},
		bson.M{"$set": bson.M{"status": models.ResponseCancelled}})
	if err != nil || ok {
		return n, err
	}

	return nil, s.diagnose(ctx, id, actorID, partyUser, (*models.Notification).CancelByUser)
}

// CancelByAdmin cancels the notification from the admin side.
func (s *Store) CancelByAdmin(ctx context.Context, id, actorID primitive.ObjectID) (*models.Notification, error) {
	n, ok, err := s.tryUpdate(ctx,
		bson.M{"_id": id, "admin_id": actorID, "status": models.ResponsePending,
			"accepted_by_admin": false},
		bson.M{"$set": bson.M{"status": models.ResponseCancelled}})
	if err != nil || ok {
		return n, err
	}

	return nil, s.diagnose(ctx, id, actorID, partyAdmin, (*models.Notification).CancelByAdmin)
}

// tryUpdate runs one conditional transition. ok reports whether the
// filter matched; the returned notification is the post-update state.
func (s *Store) tryUpdate(ctx context.Context, filter, update bson.M) (*models.Notification, bool, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var n models.Notification
	err := s.c.FindOneAndUpdate(ctx, filter, update, opts).Decode(&n)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return &n, true, nil
}

type party int

const (
	partyUser party = iota
	partyAdmin
)

// diagnose explains why no conditional transition matched: the document
// is gone, the actor is not a party to it, or the state machine forbids
// the move. The model method reproduces the exact rule violation.
func (s *Store) diagnose(ctx context.Context, id, actorID primitive.ObjectID, p party, transition func(*models.Notification) error) error {
	n, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	owner := n.UserID
	if p == partyAdmin {
		owner = n.AdminID
	}
	if owner != actorID {
		return ErrNotOwner
	}

	if err := transition(n); err != nil {
		return err
	}
	// The transition would succeed now, so the document moved under us
	// between the update attempt and this read.
	return ErrConflict
}
