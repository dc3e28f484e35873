// internal/app/features/login/handler.go
package login

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/dalemusser/waffle/pantry/urlutil"
	uierrors "github.com/sipelita/dashboard/internal/app/features/errors"
	"github.com/sipelita/dashboard/internal/app/store/accounts"
	"github.com/sipelita/dashboard/internal/app/system/apiclient"
	"github.com/sipelita/dashboard/internal/app/system/auditlog"
	"github.com/sipelita/dashboard/internal/app/system/auth"
	"github.com/sipelita/dashboard/internal/app/system/authz"
	"github.com/sipelita/dashboard/internal/app/system/inputval"
	"github.com/sipelita/dashboard/internal/app/system/ratelimit"
	"github.com/sipelita/dashboard/internal/app/system/timeouts"
	"github.com/sipelita/dashboard/internal/app/system/viewdata"
	"github.com/sipelita/dashboard/internal/domain/models"
	"go.uber.org/zap"
)

// Operator-facing messages.
const (
	msgBadCredentials = "Email atau password salah."
	msgAPIDown        = "Tidak dapat terhubung ke server. Silakan coba lagi."
	msgSessionFailed  = "Gagal membuat sesi. Silakan coba lagi."
	msgExpired        = "Sesi Anda telah berakhir. Silakan masuk kembali."
)

type Handler struct {
	Log        *zap.Logger
	SessionMgr *auth.SessionManager
	API        *apiclient.Factory
	ErrLog     *uierrors.ErrorLogger
	AuditLog   *auditlog.Logger
	Limiter    *ratelimit.LoginLimiter
}

func NewHandler(sm *auth.SessionManager, api *apiclient.Factory, errLog *uierrors.ErrorLogger, audit *auditlog.Logger, limiter *ratelimit.LoginLimiter, logger *zap.Logger) *Handler {
	return &Handler{
		Log:        logger,
		SessionMgr: sm,
		API:        api,
		ErrLog:     errLog,
		AuditLog:   audit,
		Limiter:    limiter,
	}
}

/*─────────────────────────────────────────────────────────────────────────────*
| Template-data                                                               |
*─────────────────────────────────────────────────────────────────────────────*/

type loginFormData struct {
	viewdata.BaseVM
	Email     string
	ReturnURL string
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /login                                                                  |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	if u, ok := auth.CurrentUser(r); ok {
		http.Redirect(w, r, authz.DashboardPath(u.Role), http.StatusSeeOther)
		return
	}

	data := loginFormData{
		BaseVM:    viewdata.NewBaseVM(r, "Masuk", "/"),
		ReturnURL: query.Get(r, "return"),
	}
	if query.Get(r, "expired") != "" {
		data.SetError(msgExpired)
	}
	templates.Render(w, r, "login", data)
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /login                                                                 |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleLoginPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderFormWithError(w, r, "Form tidak valid.", "")
		return
	}

	form := inputval.Login{
		Email:    strings.TrimSpace(r.FormValue("email")),
		Password: r.FormValue("password"),
	}
	if err := inputval.Check(form); err != nil {
		h.renderFormWithError(w, r, inputval.Message(err), form.Email)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if h.Limiter != nil {
		if ok, msg := h.Limiter.Check(r, form.Email); !ok {
			h.AuditLog.LoginFailedRateLimit(ctx, r, form.Email)
			w.WriteHeader(http.StatusTooManyRequests)
			h.renderFormWithError(w, r, msg, form.Email)
			return
		}
	}

	u, err := accounts.Login(ctx, h.API.Anonymous(), accounts.Credentials{
		Email:    form.Email,
		Password: form.Password,
	})
	switch {
	case err == nil:
	case errors.Is(err, accounts.ErrInvalidCredentials):
		h.AuditLog.LoginFailed(ctx, r, form.Email, "invalid credentials")
		h.renderFormWithError(w, r, msgBadCredentials, form.Email)
		return
	default:
		h.Log.Warn("login request failed", zap.String("email", form.Email), zap.Error(err))
		h.AuditLog.LoginFailed(ctx, r, form.Email, err.Error())
		h.renderFormWithError(w, r, apiclient.UserMessage(err, msgAPIDown), form.Email)
		return
	}

	stored, err := h.SessionMgr.SignIn(w, r, SessionUserFrom(u))
	if err != nil {
		h.Log.Error("save session failed", zap.Error(err), zap.String("email", form.Email))
		h.renderFormWithError(w, r, msgSessionFailed, form.Email)
		return
	}
	if h.Limiter != nil {
		h.Limiter.ResetEmail(form.Email)
	}
	h.AuditLog.LoginSuccess(ctx, r, stored)

	dest := urlutil.SafeReturn(strings.TrimSpace(r.FormValue("return")), "", authz.DashboardPath(stored.Role))
	http.Redirect(w, r, dest, http.StatusSeeOther)
}

// SessionUserFrom maps the login response onto what the session keeps.
// The role name is stored lower-cased since the API is not consistent
// about its casing.
func SessionUserFrom(u models.User) auth.SessionUser {
	su := auth.SessionUser{
		ID:           strconv.FormatInt(u.ID, 10),
		Name:         u.Name,
		Email:        u.Email,
		Role:         strings.ToLower(strings.TrimSpace(u.Role.Name)),
		ProvinceID:   u.ProvinceID.String(),
		ProvinceName: u.ProvinceName,
		RegencyID:    u.RegencyID.String(),
		RegencyName:  u.RegencyName,
		Token:        u.Token,
	}
	if su.Name == "" {
		su.Name = u.Email
	}
	return su
}

/*─────────────────────────────────────────────────────────────────────────────*
| helper: render the form with an error                                       |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) renderFormWithError(w http.ResponseWriter, r *http.Request, msg, email string) {
	ret := strings.TrimSpace(r.FormValue("return"))
	if ret == "" {
		ret = query.Get(r, "return")
	}

	data := loginFormData{
		BaseVM:    viewdata.NewBaseVM(r, "Masuk", "/"),
		Email:     email,
		ReturnURL: ret,
	}
	data.SetError(msg)
	templates.Render(w, r, "login", data)
}
