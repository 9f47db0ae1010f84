// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/campushub/unihub/internal/app/system/reconcile"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// sweeper is the background ledger-repair worker, started here and stopped
// in Shutdown.
var sweeper *reconcile.Sweeper

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built. UniHub
// uses it to start the ledger reconcile sweep.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if appCfg.ReconcileInterval > 0 {
		sweeper = reconcile.NewSweeper(deps.UniHubMongoDatabase, logger, appCfg.ReconcileInterval)
		sweeper.Start()
	} else {
		logger.Info("ledger reconcile sweep disabled")
	}
	return nil
}
