// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// WAFFLE's CoreConfig handles framework-level settings (HTTP ports, TLS,
// logging level, CORS, body limits); AppConfig is everything specific to
// UniHub. Values come from config files, UNIHUB_* environment variables,
// or command-line flags (loaded in LoadConfig).
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connection pool size
	MongoMinPoolSize uint64 // Min connection pool size

	// Ledger reconciliation
	ReconcileInterval time.Duration // How often the ledger repair sweep runs (0 disables it)
}
