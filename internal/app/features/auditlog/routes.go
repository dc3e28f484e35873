// internal/app/features/auditlog/routes.go
package auditlog

import (
	"github.com/go-chi/chi/v5"
	"github.com/sipelita/dashboard/internal/app/system/auth"
	"github.com/sipelita/dashboard/internal/app/system/authz"
	"github.com/sipelita/dashboard/internal/domain/models"
)

// Routes mounts the audit trail under /admin/audit. Only admins read it;
// other roles are sent to their own dashboard.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Use(authz.HomeForWrongRole(models.RoleAdmin))

		pr.Get("/", h.ServeList)
	})

	return r
}
