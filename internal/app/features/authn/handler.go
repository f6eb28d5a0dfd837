// internal/app/features/authn/handler.go

// Package authn owns the token endpoints: login, renew, logout. All
// other authenticated surfaces only consume the bearer middleware.
package authn

import (
	userstore "github.com/oportuna/oportuna/internal/app/store/users"
	"github.com/oportuna/oportuna/internal/app/system/auth"
	"github.com/oportuna/oportuna/internal/app/system/ratelimit"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the feature-level entry point for authentication.
type Handler struct {
	Users  *userstore.Store
	Tokens *auth.Manager
	Limits *ratelimit.LoginLimiter
	Log    *zap.Logger
}

// NewHandler constructs an authentication handler bound to a DB, the
// token manager, and a logger.
func NewHandler(db *mongo.Database, tokens *auth.Manager, logger *zap.Logger) *Handler {
	return &Handler{
		Users:  userstore.New(db),
		Tokens: tokens,
		Limits: ratelimit.NewLoginLimiter(),
		Log:    logger,
	}
}
