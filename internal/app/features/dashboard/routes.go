// internal/app/features/dashboard/routes.go
package dashboard

import (
	"github.com/go-chi/chi/v5"
	"github.com/sipelita/dashboard/internal/app/system/auth"
	"github.com/sipelita/dashboard/internal/app/system/authz"
	"github.com/sipelita/dashboard/internal/domain/models"
)

// AdminRoutes serves /admin. Other roles are sent to their own dashboard.
func AdminRoutes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Use(sm.RequireSignedIn)
	r.Use(authz.HomeForWrongRole(models.RoleAdmin))
	r.Get("/", h.ServeAdmin)
	return r
}

// PusdatinRoutes serves /pusdatin.
func PusdatinRoutes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Use(sm.RequireSignedIn)
	r.Use(authz.HomeForWrongRole(models.RolePusdatin))
	r.Get("/", h.ServePusdatin)
	return r
}
