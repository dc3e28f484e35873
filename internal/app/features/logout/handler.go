// internal/app/features/logout/handler.go
package logout

import (
	"context"
	"net/http"

	"github.com/sipelita/dashboard/internal/app/store/accounts"
	"github.com/sipelita/dashboard/internal/app/system/apiclient"
	"github.com/sipelita/dashboard/internal/app/system/auditlog"
	"github.com/sipelita/dashboard/internal/app/system/auth"
	"github.com/sipelita/dashboard/internal/app/system/timeouts"
	"go.uber.org/zap"
)

type Handler struct {
	Log        *zap.Logger
	SessionMgr *auth.SessionManager
	API        *apiclient.Factory
	AuditLog   *auditlog.Logger
}

func NewHandler(sessionMgr *auth.SessionManager, api *apiclient.Factory, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		Log:        logger,
		SessionMgr: sessionMgr,
		API:        api,
		AuditLog:   audit,
	}
}

// ServeLogout handles GET and POST /logout. The API token is revoked
// best-effort; the local session is cleared regardless.
func (h *Handler) ServeLogout(w http.ResponseWriter, r *http.Request) {
	if u, ok := auth.CurrentUser(r); ok {
		ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
		if h.API != nil && u.Token != "" {
			if err := accounts.Logout(ctx, h.API.WithToken(u.Token)); err != nil {
				h.Log.Warn("api logout failed", zap.String("user_id", u.ID), zap.Error(err))
			}
		}
		h.AuditLog.Logout(ctx, r)
		cancel()
	}

	if err := h.SessionMgr.SignOut(w, r); err != nil {
		h.Log.Error("logout: save session", zap.Error(err))
	}

	if r.Header.Get("HX-Request") != "" {
		w.Header().Set("HX-Redirect", "/login")
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
