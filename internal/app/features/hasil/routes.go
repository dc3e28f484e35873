// internal/app/features/hasil/routes.go
package hasil

import (
	"github.com/go-chi/chi/v5"
	"github.com/sipelita/dashboard/internal/app/system/auth"
	"github.com/sipelita/dashboard/internal/app/system/authz"
)

// Routes serves the regional agency pages under /dlh.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Use(sm.RequireSignedIn)
	r.Use(authz.HomeForWrongRole(authz.DLHRoles...))
	r.Get("/", h.ServeOverview)
	r.Get("/hasil", h.ServeResult)
	return r
}
