// internal/app/bootstrap/routes.go
package bootstrap

import (
	"crypto/sha256"
	"net/http"
	"strings"

	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/csrf"
	auditlogfeature "github.com/sipelita/dashboard/internal/app/features/auditlog"
	dashboardfeature "github.com/sipelita/dashboard/internal/app/features/dashboard"
	errorsfeature "github.com/sipelita/dashboard/internal/app/features/errors"
	hasilfeature "github.com/sipelita/dashboard/internal/app/features/hasil"
	healthfeature "github.com/sipelita/dashboard/internal/app/features/health"
	homefeature "github.com/sipelita/dashboard/internal/app/features/home"
	loginfeature "github.com/sipelita/dashboard/internal/app/features/login"
	logoutfeature "github.com/sipelita/dashboard/internal/app/features/logout"
	penilaianfeature "github.com/sipelita/dashboard/internal/app/features/penilaian"
	"github.com/sipelita/dashboard/internal/app/store/audit"
	"github.com/sipelita/dashboard/internal/app/system/apiclient"
	"github.com/sipelita/dashboard/internal/app/system/auditlog"
	"github.com/sipelita/dashboard/internal/app/system/auth"
	"github.com/sipelita/dashboard/internal/app/system/inflight"
	"github.com/sipelita/dashboard/internal/app/system/latest"
	"github.com/sipelita/dashboard/internal/app/system/paging"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed.
//
// The dashboard boots the template engine, applies session, CSRF and flash
// middleware, and mounts one router per area: public pages, sign-in,
// the admin and pusdatin dashboards, the penilaian workflow and the
// regional result page. Handlers that mutate scoring state share one
// in-flight guard and one stale-response tracker.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, appCfg.SessionMaxAge, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	api, err := apiclient.NewFactory(appCfg.APIBaseURL, appCfg.APITimeout, logger)
	if err != nil {
		logger.Error("api client init failed", zap.Error(err))
		return nil, err
	}

	// Dev mode enables template reloading for faster iteration.
	eng := templates.New(coreCfg.Env == "dev")
	if err := eng.Boot(logger); err != nil {
		logger.Error("template engine boot failed", zap.Error(err))
		return nil, err
	}
	templates.UseEngine(eng, logger)

	errLog := errorsfeature.NewErrorLogger(logger)
	auditStore := audit.New(deps.MongoDatabase)
	auditLog := auditlog.New(auditStore, logger, auditlog.Config{
		Auth:    appCfg.AuditLogAuth,
		Actions: appCfg.AuditLogActions,
	})
	guard := inflight.New()
	tracker := latest.New()

	r := chi.NewRouter()

	r.Use(limitMultipartBody(appCfg.UploadMaxBytes() + uploadFormSlack))
	r.Use(csrfProtect(appCfg.SessionKey, secure))
	r.Use(sessionMgr.LoadSessionUser)
	r.Use(sessionMgr.LoadFlashes)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, appCfg.APIBaseURL, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Static assets with pre-compressed file support (gzip/brotli)
	r.Handle("/static/*", fileserver.Handler("/static", "public"))

	homeHandler := homefeature.NewHandler(logger)
	r.Mount("/", homefeature.Routes(homeHandler))

	// Authentication
	loginHandler := loginfeature.NewHandler(sessionMgr, api, errLog, auditLog, deps.LoginLimiter, logger)
	r.Mount("/login", loginfeature.Routes(loginHandler))

	logoutHandler := logoutfeature.NewHandler(sessionMgr, api, auditLog, logger)
	r.Mount("/logout", logoutfeature.Routes(logoutHandler))

	// Error pages
	errorsHandler := errorsfeature.NewHandler()
	r.Get("/forbidden", errorsHandler.Forbidden)
	r.Get("/unauthorized", errorsHandler.Unauthorized)

	// Role dashboards
	dashboardHandler := dashboardfeature.NewHandler(sessionMgr, api, errLog, logger)
	auditHandler := auditlogfeature.NewHandler(auditStore, errLog, logger)
	r.Route("/admin", func(ar chi.Router) {
		ar.Mount("/audit", auditlogfeature.Routes(auditHandler, sessionMgr))
		ar.Mount("/", dashboardfeature.AdminRoutes(dashboardHandler, sessionMgr))
	})

	penilaianHandler := penilaianfeature.NewHandler(sessionMgr, api, errLog, auditLog, guard, tracker, penilaianfeature.Config{
		PassThreshold:  appCfg.PassThreshold,
		DefaultPerPage: paging.ParsePerPageValue(appCfg.DefaultPerPage, paging.All),
		UploadMaxBytes: appCfg.UploadMaxBytes(),
	}, logger)
	r.Route("/pusdatin", func(pr chi.Router) {
		pr.Mount("/penilaian", penilaianfeature.Routes(penilaianHandler, sessionMgr))
		pr.Mount("/", dashboardfeature.PusdatinRoutes(dashboardHandler, sessionMgr))
	})

	// Regional (DLH) accounts
	hasilHandler := hasilfeature.NewHandler(sessionMgr, api, tracker, logger)
	r.Mount("/dlh", hasilfeature.Routes(hasilHandler, sessionMgr))

	return r, nil
}

// uploadFormSlack covers the multipart envelope around a workbook.
const uploadFormSlack = 1 << 20

// limitMultipartBody caps multipart bodies at max. It runs ahead of CSRF,
// which parses the form itself when the token is not sent as a header.
func limitMultipartBody(max int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil && strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/") {
				r.Body = http.MaxBytesReader(w, r.Body, max)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// csrfProtect guards every unsafe method with gorilla/csrf. The token key is
// derived from the session key. Outside production the server speaks plain
// HTTP, so requests are marked plaintext to skip the TLS referer check.
func csrfProtect(sessionKey string, secure bool) func(http.Handler) http.Handler {
	key := sha256.Sum256([]byte("csrf:" + sessionKey))
	protect := csrf.Protect(key[:],
		csrf.Secure(secure),
		csrf.Path("/"),
		csrf.SameSite(csrf.SameSiteLaxMode),
		csrf.RequestHeader("X-CSRF-Token"),
	)
	return func(next http.Handler) http.Handler {
		h := protect(next)
		if secure {
			return h
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h.ServeHTTP(w, csrf.PlaintextHTTPRequest(r))
		})
	}
}
