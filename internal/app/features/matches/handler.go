// internal/app/features/matches/handler.go
package matches

import (
	matchstore "github.com/oportuna/oportuna/internal/app/store/matches"
	notifstore "github.com/oportuna/oportuna/internal/app/store/notifications"
	oppstore "github.com/oportuna/oportuna/internal/app/store/opportunities"
	userstore "github.com/oportuna/oportuna/internal/app/store/users"
	"github.com/oportuna/oportuna/internal/app/system/matchsync"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the feature-level entry point for Matches.
type Handler struct {
	Client  *mongo.Client
	Users   *userstore.Store
	Opps    *oppstore.Store
	Matches *matchstore.Store
	Notifs  *notifstore.Store
	Bridge  *matchsync.Bridge
	Log     *zap.Logger
}

// NewHandler constructs a Matches handler bound to a DB and logger.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	matches := matchstore.New(db)
	return &Handler{
		Client:  db.Client(),
		Users:   userstore.New(db),
		Opps:    oppstore.New(db),
		Matches: matches,
		Notifs:  notifstore.New(db),
		Bridge:  matchsync.New(matches, logger),
		Log:     logger,
	}
}
