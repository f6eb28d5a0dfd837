package userstore

import (
	"context"
	"errors"
	"time"

	"github.com/oportuna/oportuna/internal/app/system/normalize"
	"github.com/oportuna/oportuna/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

var (
	// ErrDuplicateEmail is returned when attempting to create a user with an email that already exists.
	ErrDuplicateEmail = errors.New("a user with this email already exists")

	// ErrBadCredentials is returned by VerifyCredentials when the email
	// is unknown or the password does not match. The two cases are not
	// distinguished for the caller.
	ErrBadCredentials = errors.New("invalid email or password")

	errBadRole        = errors.New(`role must be "admin"|"user"`)
	errClientRequired = errors.New(`role "user" requires a client type`)
	errClientOnAdmin  = errors.New("admins must not carry a client type")
)

// GetByID loads a user by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetAdminByID loads a user by ObjectID, returning an error if the user
// does not exist or is not an admin.
func (s *Store) GetAdminByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id, "role": models.RoleAdmin}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByEmail looks up a user by case-insensitive email. Returns mongo.ErrNoDocuments if not found.
func (s *Store) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"email": normalize.Email(email)}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts a new user after normalizing and validating fields.
// u.Password must be plaintext; it is hashed here with the given bcrypt
// cost before the document is written.
func (s *Store) Create(ctx context.Context, u models.User, bcryptCost int) (models.User, error) {
	u.ID = primitive.NewObjectID()
	u.Name = normalize.Name(u.Name)
	u.NameCI = text.Fold(u.Name)
	u.Email = normalize.Email(u.Email)
	u.Role = normalize.Role(u.Role)

	switch u.Role {
	case models.RoleAdmin:
		if u.ClientType != 0 {
			return models.User{}, errClientOnAdmin
		}
	case models.RoleUser:
		if u.ClientType == 0 {
			return models.User{}, errClientRequired
		}
	default:
		return models.User{}, errBadRole
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcryptCost)
	if err != nil {
		return models.User{}, err
	}
	u.Password = string(hash)

	if u.Matches == nil {
		u.Matches = []primitive.ObjectID{}
	}
	if u.Notifications == nil {
		u.Notifications = []models.NotificationRef{}
	}

	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicateEmail
		}
		return models.User{}, err
	}
	return u, nil
}

// Update holds the profile fields a user may change. Role, password,
// and the back-reference arrays are managed elsewhere.
type Update struct {
	Name       string
	Email      string
	ClientType int
}

// Update updates a user's profile fields.
// Returns ErrDuplicateEmail if the email already belongs to another user.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, upd Update) error {
	name := normalize.Name(upd.Name)
	set := bson.M{
		"name":       name,
		"name_ci":    text.Fold(name),
		"email":      normalize.Email(upd.Email),
		"updated_at": time.Now().UTC(),
	}
	if upd.ClientType != 0 {
		set["client_type"] = upd.ClientType
	}

	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		if wafflemongo.IsDup(err) {
			return ErrDuplicateEmail
		}
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// Delete deletes a user by ID.
// Returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// List returns all users ordered by folded name with a stable tiebreak.
func (s *Store) List(ctx context.Context) ([]models.User, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name_ci", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var users []models.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// VerifyCredentials checks an email/password pair and returns the user
// on success. Unknown emails and wrong passwords both yield
// ErrBadCredentials.
func (s *Store) VerifyCredentials(ctx context.Context, email, password string) (*models.User, error) {
	u, err := s.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrBadCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return nil, ErrBadCredentials
	}
	return u, nil
}

// AppendMatch adds a match id to the user's back-reference list.
func (s *Store) AppendMatch(ctx context.Context, userID, matchID primitive.ObjectID) error {
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{
		"$addToSet": bson.M{"matches": matchID},
		"$set":      bson.M{"updated_at": time.Now().UTC()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// RemoveMatch drops a match id from the user's back-reference list.
func (s *Store) RemoveMatch(ctx context.Context, userID, matchID primitive.ObjectID) error {
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{
		"$pull": bson.M{"matches": matchID},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	})
	return err
}

// AppendNotification adds a notification back-reference to the user's
// list. The embedded status is a snapshot at creation time.
func (s *Store) AppendNotification(ctx context.Context, userID primitive.ObjectID, ref models.NotificationRef) error {
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{
		"$push": bson.M{"notifications": ref},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
