// internal/app/features/hasil/handler.go
package hasil

import (
	"net/http"

	"github.com/sipelita/dashboard/internal/app/system/apiclient"
	"github.com/sipelita/dashboard/internal/app/system/auth"
	"github.com/sipelita/dashboard/internal/app/system/latest"
	"go.uber.org/zap"
)

// Handler serves the regional agency pages: the stage overview and the
// published results.
type Handler struct {
	Log        *zap.Logger
	SessionMgr *auth.SessionManager
	API        *apiclient.Factory
	Latest     *latest.Tracker
}

func NewHandler(sm *auth.SessionManager, api *apiclient.Factory, tracker *latest.Tracker, logger *zap.Logger) *Handler {
	return &Handler{
		Log:        logger,
		SessionMgr: sm,
		API:        api,
		Latest:     tracker,
	}
}

func (h *Handler) client(r *http.Request) *apiclient.Client {
	u, _ := auth.CurrentUser(r)
	if u == nil {
		return h.API.Anonymous()
	}
	return h.API.WithToken(u.Token)
}
