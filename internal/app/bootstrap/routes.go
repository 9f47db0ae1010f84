// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/campushub/unihub/internal/app/ledger"

	activitiesfeature "github.com/campushub/unihub/internal/app/features/activities"
	healthfeature "github.com/campushub/unihub/internal/app/features/health"
	membershipfeature "github.com/campushub/unihub/internal/app/features/membership"
	studentsfeature "github.com/campushub/unihub/internal/app/features/students"
	teamsfeature "github.com/campushub/unihub/internal/app/features/teams"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE
// app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// Startup hooks have completed. The endpoint paths are the flat legacy wire
// contract of the UniHub frontend (/create/student, /add/new-team, ...), so
// feature packages register on the root router rather than mounted
// subrouters; only /health gets its own subrouter.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	db := deps.UniHubMongoDatabase

	// One ledger instance shared by every feature that performs
	// membership state transitions.
	lgr := ledger.New(db, logger)

	r := chi.NewRouter()

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.UniHubMongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Student registration, profile, section selection, CR workflow
	studentsHandler := studentsfeature.NewHandler(db, logger)
	studentsfeature.Routes(r, studentsHandler)

	// Activity posting and section-scoped listing
	activitiesHandler := activitiesfeature.NewHandler(db, logger)
	activitiesfeature.Routes(r, activitiesHandler)

	// Team creation, details, and resources
	teamsHandler := teamsfeature.NewHandler(db, lgr, logger)
	teamsfeature.Routes(r, teamsHandler)

	// Membership lifecycle: join requests, accept/reject, withdrawal
	membershipHandler := membershipfeature.NewHandler(db, lgr, logger)
	membershipfeature.Routes(r, membershipHandler)

	return r, nil
}
