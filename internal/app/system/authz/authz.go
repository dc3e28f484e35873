// internal/app/system/authz/authz.go
package authz

import (
	"net/http"
	"strings"

	"github.com/sipelita/dashboard/internal/app/system/auth"
	"github.com/sipelita/dashboard/internal/domain/models"
)

// UserCtx returns the user's role (lowercased), name, API user id, and a
// found flag. Without a user it returns "visitor", "", "", false.
func UserCtx(r *http.Request) (role string, name string, userID string, ok bool) {
	user, ok := auth.CurrentUser(r)
	if !ok || user.ID == "" {
		return "visitor", "", "", false
	}
	return user.RoleLower(), user.Name, user.ID, true
}

// HasAnyRole reports whether the current user holds one of roles.
func HasAnyRole(r *http.Request, roles ...string) bool {
	role, _, _, ok := UserCtx(r)
	if !ok {
		return false
	}
	for _, want := range roles {
		if role == strings.ToLower(want) {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the current request's user is an admin.
func IsAdmin(r *http.Request) bool { return HasAnyRole(r, models.RoleAdmin) }

// IsPusdatin reports whether the current request's user is a pusdatin
// operator.
func IsPusdatin(r *http.Request) bool { return HasAnyRole(r, models.RolePusdatin) }

// IsDLH reports whether the current request's user is a regional agency
// (provincial or regency/city).
func IsDLH(r *http.Request) bool {
	return HasAnyRole(r, models.RoleProvinsi, models.RoleKabKota)
}

// DLHRoles are the roles served by the regional dashboard.
var DLHRoles = []string{models.RoleProvinsi, models.RoleKabKota}

// DashboardPath is where a role lands after sign-in. Unknown roles go to
// the landing page.
func DashboardPath(role string) string {
	switch strings.ToLower(strings.TrimSpace(role)) {
	case models.RoleAdmin:
		return "/admin"
	case models.RolePusdatin:
		return "/pusdatin"
	case models.RoleProvinsi, models.RoleKabKota:
		return "/dlh"
	}
	return "/"
}

// SafeReturn accepts only same-site absolute paths as post-login targets.
func SafeReturn(ret string) string {
	if ret == "" || !strings.HasPrefix(ret, "/") || strings.HasPrefix(ret, "//") || strings.HasPrefix(ret, "/\\") {
		return ""
	}
	return ret
}

// HomeForWrongRole lets through users holding one of roles. Anyone else is
// sent to their own dashboard; a user whose dashboard is the current path
// gets /forbidden instead of a redirect loop. Unauthenticated requests pass
// through for RequireSignedIn to handle.
func HomeForWrongRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, _, _, ok := UserCtx(r)
			if !ok || HasAnyRole(r, roles...) {
				next.ServeHTTP(w, r)
				return
			}
			dest := DashboardPath(role)
			if dest == "/" || strings.HasPrefix(r.URL.Path, dest) {
				dest = "/forbidden"
			}
			if r.Header.Get("HX-Request") == "true" {
				w.Header().Set("HX-Redirect", dest)
				w.WriteHeader(http.StatusForbidden)
				return
			}
			http.Redirect(w, r, dest, http.StatusSeeOther)
		})
	}
}
