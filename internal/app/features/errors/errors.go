// internal/app/features/errors/errors.go
package errors

import (
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/sipelita/dashboard/internal/app/system/viewdata"
)

// pageData is the view model for error pages.
type pageData struct {
	viewdata.BaseVM
	Message string
}

// Handler serves the static error pages. It needs no dependencies.
type Handler struct{}

// NewHandler constructs an errors Handler.
func NewHandler() *Handler {
	return &Handler{}
}

// Forbidden renders the "access denied" page.
// GET /forbidden
func (h *Handler) Forbidden(w http.ResponseWriter, r *http.Request) {
	RenderForbidden(w, r, "", "")
}

// Unauthorized renders the "sign in required" page.
// GET /unauthorized
func (h *Handler) Unauthorized(w http.ResponseWriter, r *http.Request) {
	RenderUnauthorized(w, r, "")
}

// RenderForbidden writes a 403 page with msg. Empty values fall back to a
// generic message and the caller's dashboard.
func RenderForbidden(w http.ResponseWriter, r *http.Request, msg, backURL string) {
	if msg == "" {
		msg = "Anda tidak memiliki akses ke halaman ini."
	}
	data := pageData{
		BaseVM:  viewdata.NewBaseVM(r, "Akses ditolak", "/"),
		Message: msg,
	}
	if backURL != "" {
		data.BackURL = backURL
	} else if data.DashboardURL != "" {
		data.BackURL = data.DashboardURL
	}
	w.WriteHeader(http.StatusForbidden)
	templates.Render(w, r, "error_forbidden", data)
}

// RenderUnauthorized writes a 401 page pointing at the login form.
func RenderUnauthorized(w http.ResponseWriter, r *http.Request, backURL string) {
	if backURL == "" {
		backURL = "/login"
	}
	data := pageData{
		BaseVM:  viewdata.NewBaseVM(r, "Perlu masuk", backURL),
		Message: "Silakan masuk untuk melanjutkan.",
	}
	data.BackURL = backURL
	w.WriteHeader(http.StatusUnauthorized)
	templates.Render(w, r, "error_forbidden", data)
}
