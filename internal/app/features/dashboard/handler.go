// internal/app/features/dashboard/handler.go
package dashboard

import (
	"net/http"

	uierrors "github.com/sipelita/dashboard/internal/app/features/errors"
	"github.com/sipelita/dashboard/internal/app/system/apiclient"
	"github.com/sipelita/dashboard/internal/app/system/auth"
	"go.uber.org/zap"
)

// Handler serves the admin and pusdatin landing dashboards.
type Handler struct {
	Log        *zap.Logger
	SessionMgr *auth.SessionManager
	API        *apiclient.Factory
	ErrLog     *uierrors.ErrorLogger
}

func NewHandler(sm *auth.SessionManager, api *apiclient.Factory, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Log:        logger,
		SessionMgr: sm,
		API:        api,
		ErrLog:     errLog,
	}
}

// client builds the API client bound to the signed-in user's token.
func (h *Handler) client(r *http.Request) *apiclient.Client {
	u, _ := auth.CurrentUser(r)
	if u == nil {
		return h.API.Anonymous()
	}
	return h.API.WithToken(u.Token)
}
