// internal/app/features/penilaian/routes.go
package penilaian

import (
	"github.com/go-chi/chi/v5"
	"github.com/sipelita/dashboard/internal/app/system/auth"
	"github.com/sipelita/dashboard/internal/app/system/authz"
	"github.com/sipelita/dashboard/internal/domain/models"
)

// Routes serves /pusdatin/penilaian. Static stage paths win over the
// {stage} round routes.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Use(sm.RequireSignedIn)
	r.Use(authz.HomeForWrongRole(models.RolePusdatin))

	r.Get("/", h.ServePage)
	r.Get("/template", h.ServeTemplate)
	r.Get("/export", h.ServeExport)

	r.Post("/{stage}/upload", h.HandleUpload)
	r.Post("/{stage}/finalize", h.HandleFinalizeRound)

	r.Post("/validasi1/finalize", h.HandleFinalizeValidation1)
	r.Post("/validasi2/checklist", h.HandleChecklist)
	r.Post("/validasi2/finalize", h.HandleFinalizeValidation2)
	r.Post("/peringkat/finalize", h.HandleCreateInterviews)
	r.Post("/wawancara/score", h.HandleScore)
	r.Post("/wawancara/finalize", h.HandleFinalizeInterviews)
	return r
}
