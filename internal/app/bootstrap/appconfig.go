// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration.
//
// WAFFLE's CoreConfig handles framework-level settings like:
//   - HTTP/HTTPS ports and TLS configuration
//   - Logging level and format
//   - Request body size limits
//
// AppConfig carries what is specific to the dashboard: where the scoring
// API lives, how operator sessions are kept, where the audit trail is
// stored, and the scoring defaults shown on the penilaian pages.
type AppConfig struct {
	// Scoring API
	APIBaseURL string        // e.g. https://api.sipelita.example.go.id
	APITimeout time.Duration // per-request timeout of the API client

	// Session management configuration
	SessionKey    string        // Secret key for signing session cookies (must be strong in production)
	SessionName   string        // Cookie name for sessions (default: sipelita-session)
	SessionDomain string        // Cookie domain (blank means current host)
	SessionMaxAge time.Duration // How long a sign-in lasts

	// MongoDB connection configuration (operator audit trail)
	MongoURI      string
	MongoDatabase string

	// Audit logging destinations: all, db, log or off
	AuditLogAuth    string
	AuditLogActions string
	AuditRetention  time.Duration // events older than this are pruned; 0 keeps everything

	// Scoring and table defaults
	PassThreshold  float64 // SLHD total at or above which an agency passes
	DefaultPerPage string  // "all" or a page size offered by the selector
	UploadMaxMB    int     // workbook upload limit

	// Sign-in attempts allowed per client IP per minute
	LoginRateLimit int
}

// UploadMaxBytes is the workbook upload limit in bytes.
func (c AppConfig) UploadMaxBytes() int64 {
	return int64(c.UploadMaxMB) << 20
}
