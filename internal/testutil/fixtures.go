package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/oportuna/oportuna/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// HashPassword returns a bcrypt hash suitable for fixture users.
// MinCost keeps the suite fast.
func HashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash fixture password: %v", err)
	}
	return string(hash)
}

// CreateUser creates a regular user with the given name, email, and
// client type. The password is "password123".
func (f *Fixtures) CreateUser(ctx context.Context, name, email string, clientType int) models.User {
	f.t.Helper()
	return f.insertUser(ctx, name, email, models.RoleUser, clientType)
}

// CreateAdmin creates an admin user. Admins carry no client type.
func (f *Fixtures) CreateAdmin(ctx context.Context, name, email string) models.User {
	f.t.Helper()
	return f.insertUser(ctx, name, email, models.RoleAdmin, 0)
}

func (f *Fixtures) insertUser(ctx context.Context, name, email, role string, clientType int) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	user := models.User{
		ID:            primitive.NewObjectID(),
		Name:          name,
		NameCI:        text.Fold(name),
		Email:         email,
		Password:      HashPassword(f.t, "password123"),
		Role:          role,
		ClientType:    clientType,
		Matches:       []primitive.ObjectID{},
		Notifications: []models.NotificationRef{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	_, err := f.db.Collection("users").InsertOne(ctx, user)
	if err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateOpportunity creates an active opportunity owned by creator.
func (f *Fixtures) CreateOpportunity(ctx context.Context, title string, industry int, creator models.User) models.Opportunity {
	f.t.Helper()

	now := time.Now().UTC()
	opp := models.Opportunity{
		ID:          primitive.NewObjectID(),
		Title:       title,
		TitleCI:     text.Fold(title),
		Description: "Test opportunity description",
		Status:      models.OpportunityActive,
		Industry:    industry,
		CreatedBy: models.CreatedByRef{
			UserID:   creator.ID,
			UserName: creator.Name,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := f.db.Collection("opportunities").InsertOne(ctx, opp)
	if err != nil {
		f.t.Fatalf("failed to create test opportunity: %v", err)
	}
	return opp
}

// CreateMatch creates a pending/pending match between user and the
// opportunity.
func (f *Fixtures) CreateMatch(ctx context.Context, user models.User, opp models.Opportunity) models.Match {
	f.t.Helper()

	match := models.Match{
		ID: primitive.NewObjectID(),
		User: models.MatchUserSide{
			UserID:     user.ID,
			UserName:   user.Name,
			ClientType: user.ClientType,
			Response:   models.ResponsePending,
		},
		Business: models.MatchBusinessSide{
			BusinessID:   opp.ID,
			BusinessName: opp.Title,
			BusinessType: opp.Industry,
			Response:     models.ResponsePending,
		},
		CreatedAt: time.Now().UTC(),
	}

	_, err := f.db.Collection("matches").InsertOne(ctx, match)
	if err != nil {
		f.t.Fatalf("failed to create test match: %v", err)
	}
	return match
}

// CreateNotification creates a pending notification tying user, admin,
// and opportunity together.
func (f *Fixtures) CreateNotification(ctx context.Context, user, admin models.User, opp models.Opportunity) models.Notification {
	f.t.Helper()

	n := models.Notification{
		ID:         primitive.NewObjectID(),
		UserID:     user.ID,
		AdminID:    admin.ID,
		BusinessID: opp.ID,
		UserMessages: models.UserMessages{
			User:  "You have been matched with " + opp.Title,
			Admin: user.Name + " has been matched with " + opp.Title,
		},
		Status: models.ResponsePending,
	}

	_, err := f.db.Collection("notifications").InsertOne(ctx, n)
	if err != nil {
		f.t.Fatalf("failed to create test notification: %v", err)
	}
	return n
}
