// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/sipelita/dashboard/internal/app/system/auditlog"
	"github.com/sipelita/dashboard/internal/app/system/paging"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for the dashboard.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: api_base_url, session_name, etc.
//   - Environment variables: SIPELITA_API_BASE_URL, SIPELITA_SESSION_NAME, etc.
//   - Command-line flags: --api_base_url, --session_name, etc.
var appConfigKeys = []config.AppKey{
	{Name: "api_base_url", Default: "http://localhost:8000", Desc: "Base URL of the SIPELITA scoring API"},
	{Name: "api_timeout", Default: "10s", Desc: "Per-request timeout of the scoring API client"},

	{Name: "session_key", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Session signing key (must be strong in production)"},
	{Name: "session_name", Default: "sipelita-session", Desc: "Session cookie name"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},
	{Name: "session_max_age", Default: "24h", Desc: "How long a sign-in lasts"},

	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI (audit trail)"},
	{Name: "mongo_database", Default: "sipelita_dashboard", Desc: "MongoDB database name"},

	// Audit logging settings
	{Name: "audit_log_auth", Default: "all", Desc: "Auth event logging: 'all' (db+log), 'db', 'log', or 'off'"},
	{Name: "audit_log_actions", Default: "all", Desc: "Penilaian action logging: 'all' (db+log), 'db', 'log', or 'off'"},
	{Name: "audit_retention", Default: "8760h", Desc: "How long audit events are kept (0 keeps everything)"},

	// Scoring defaults
	{Name: "pass_threshold", Default: "60", Desc: "SLHD total score needed to pass"},
	{Name: "default_per_page", Default: "all", Desc: "Default table page size: 'all', 10, 25, 50 or 100"},
	{Name: "upload_max_mb", Default: 20, Desc: "Maximum workbook upload size in MB"},

	{Name: "login_rate_limit", Default: 10, Desc: "Sign-in attempts allowed per IP per minute"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, SIPELITA_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "SIPELITA", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		APIBaseURL: appValues.String("api_base_url"),
		APITimeout: appValues.Duration("api_timeout", 10*time.Second),

		SessionKey:    appValues.String("session_key"),
		SessionName:   appValues.String("session_name"),
		SessionDomain: appValues.String("session_domain"),
		SessionMaxAge: appValues.Duration("session_max_age", 24*time.Hour),

		MongoURI:      appValues.String("mongo_uri"),
		MongoDatabase: appValues.String("mongo_database"),

		AuditLogAuth:    appValues.String("audit_log_auth"),
		AuditLogActions: appValues.String("audit_log_actions"),
		AuditRetention:  appValues.Duration("audit_retention", 365*24*time.Hour),

		DefaultPerPage: appValues.String("default_per_page"),
		UploadMaxMB:    appValues.Int("upload_max_mb"),
		LoginRateLimit: appValues.Int("login_rate_limit"),
	}

	threshold, err := parseThreshold(appValues.String("pass_threshold"))
	if err != nil {
		return nil, AppConfig{}, err
	}
	appCfg.PassThreshold = threshold

	return coreCfg, appCfg, nil
}

func parseThreshold(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("pass_threshold %q: %w", s, err)
	}
	return v, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
// Bad URIs and modes are caught here, before anything connects.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}
	if err := validateAPIBaseURL(appCfg.APIBaseURL); err != nil {
		logger.Error("invalid API base URL", zap.Error(err))
		return err
	}
	if appCfg.PassThreshold <= 0 || appCfg.PassThreshold > 100 {
		return fmt.Errorf("pass_threshold must be in (0, 100], got %v", appCfg.PassThreshold)
	}
	if appCfg.UploadMaxMB < 1 {
		return fmt.Errorf("upload_max_mb must be positive, got %d", appCfg.UploadMaxMB)
	}
	if !auditlog.ValidMode(appCfg.AuditLogAuth) {
		return fmt.Errorf("audit_log_auth: unknown mode %q", appCfg.AuditLogAuth)
	}
	if !auditlog.ValidMode(appCfg.AuditLogActions) {
		return fmt.Errorf("audit_log_actions: unknown mode %q", appCfg.AuditLogActions)
	}
	if appCfg.AuditRetention < 0 {
		return fmt.Errorf("audit_retention must not be negative, got %s", appCfg.AuditRetention)
	}
	if paging.ParsePerPageValue(appCfg.DefaultPerPage, -1) < 0 {
		return fmt.Errorf("default_per_page: unsupported value %q", appCfg.DefaultPerPage)
	}
	return nil
}

func validateAPIBaseURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid API base URL: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid API base URL %q: want http(s)://host", raw)
	}
	return nil
}
