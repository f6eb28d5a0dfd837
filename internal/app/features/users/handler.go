// internal/app/features/users/handler.go
package users

import (
	userstore "github.com/oportuna/oportuna/internal/app/store/users"
	"github.com/oportuna/oportuna/internal/app/system/industries"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the feature-level entry point for Users.
type Handler struct {
	Users      *userstore.Store
	Industries *industries.Registry
	BcryptCost int
	Log        *zap.Logger
}

// NewHandler constructs a Users handler bound to a DB and logger.
func NewHandler(db *mongo.Database, reg *industries.Registry, bcryptCost int, logger *zap.Logger) *Handler {
	return &Handler{
		Users:      userstore.New(db),
		Industries: reg,
		BcryptCost: bcryptCost,
		Log:        logger,
	}
}
