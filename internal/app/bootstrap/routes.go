// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	authnfeature "github.com/oportuna/oportuna/internal/app/features/authn"
	healthfeature "github.com/oportuna/oportuna/internal/app/features/health"
	matchesfeature "github.com/oportuna/oportuna/internal/app/features/matches"
	notificationsfeature "github.com/oportuna/oportuna/internal/app/features/notifications"
	opportunitiesfeature "github.com/oportuna/oportuna/internal/app/features/opportunities"
	usersfeature "github.com/oportuna/oportuna/internal/app/features/users"
	tokenstore "github.com/oportuna/oportuna/internal/app/store/tokens"
	"github.com/oportuna/oportuna/internal/app/system/auth"
	"github.com/oportuna/oportuna/internal/app/system/industries"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. At this point you have access to:
//   - coreCfg: WAFFLE core configuration (ports, env, timeouts, etc.)
//   - appCfg: app-specific configuration defined in AppConfig
//   - deps: any DB or backend clients bundled in DBDeps
//   - logger: the fully configured zap.Logger for this app
//
// Oportuna creates the token manager, applies the bearer middleware
// globally, and mounts the JSON API routers: auth, users, opportunities,
// matches, and notifications, plus the health endpoint.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Token manager backed by the revoked-token collection so logout
	// takes effect immediately across all requests.
	tokens := auth.NewManager(appCfg.JWTSecret, appCfg.JWTTTL, tokenstore.New(deps.MongoDatabase), logger)

	reg := industries.Default()

	r := chi.NewRouter()

	// Global auth middleware: resolves a bearer token into the request
	// context. Requests without a token pass through anonymously; the
	// per-route RequireSignedIn/RequireAdmin guards do the gating.
	r.Use(tokens.Authenticate)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Authentication: login, renew, logout
	authnHandler := authnfeature.NewHandler(deps.MongoDatabase, tokens, logger)
	r.Mount("/auth", authnfeature.Routes(authnHandler))

	// Account management
	usersHandler := usersfeature.NewHandler(deps.MongoDatabase, reg, appCfg.BcryptCost, logger)
	r.Mount("/users", usersfeature.Routes(usersHandler))

	// Opportunity catalog
	oppsHandler := opportunitiesfeature.NewHandler(deps.MongoDatabase, reg, logger)
	r.Mount("/opportunities", opportunitiesfeature.Routes(oppsHandler))

	// Match lifecycle
	matchesHandler := matchesfeature.NewHandler(deps.MongoDatabase, logger)
	r.Mount("/match", matchesfeature.Routes(matchesHandler))

	// Dual-party notification workflow
	notifsHandler := notificationsfeature.NewHandler(deps.MongoDatabase, logger)
	r.Mount("/notifications", notificationsfeature.Routes(notifsHandler))

	return r, nil
}
