// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/oportuna/oportuna/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after DB connections
// and schema setup are complete, but before the HTTP handler is built.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	// Handler timeouts default sensibly; this is the hook point for
	// overriding them from config if a deployment needs it.
	timeouts.Configure(timeouts.Config{})

	logger.Info("startup complete", zap.Duration("jwt_ttl", appCfg.JWTTTL))
	return nil
}
