// internal/app/features/notifications/handler.go
package notifications

import (
	matchstore "github.com/oportuna/oportuna/internal/app/store/matches"
	notifstore "github.com/oportuna/oportuna/internal/app/store/notifications"
	userstore "github.com/oportuna/oportuna/internal/app/store/users"
	"github.com/oportuna/oportuna/internal/app/system/matchsync"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the feature-level entry point for Notifications.
type Handler struct {
	Users  *userstore.Store
	Notifs *notifstore.Store
	Bridge *matchsync.Bridge
	Log    *zap.Logger
}

// NewHandler constructs a Notifications handler bound to a DB and logger.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		Users:  userstore.New(db),
		Notifs: notifstore.New(db),
		Bridge: matchsync.New(matchstore.New(db), logger),
		Log:    logger,
	}
}
