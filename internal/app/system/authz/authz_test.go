package authz_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sipelita/dashboard/internal/app/system/auth"
	"github.com/sipelita/dashboard/internal/app/system/authz"
)

func reqWithRole(role string) *http.Request {
	r := httptest.NewRequest("GET", "/", nil)
	return auth.WithTestUser(r, &auth.SessionUser{ID: "5", Name: "Dinas", Role: role, Token: "t"})
}

func TestUserCtx_NoUser(t *testing.T) {
	role, name, id, ok := authz.UserCtx(httptest.NewRequest("GET", "/", nil))
	if ok || role != "visitor" || name != "" || id != "" {
		t.Errorf("got %q %q %q %v", role, name, id, ok)
	}
}

func TestUserCtx_LowercasesRole(t *testing.T) {
	role, name, id, ok := authz.UserCtx(reqWithRole("Pusdatin"))
	if !ok || role != "pusdatin" || name != "Dinas" || id != "5" {
		t.Errorf("got %q %q %q %v", role, name, id, ok)
	}
}

func TestRolePredicates(t *testing.T) {
	if !authz.IsAdmin(reqWithRole("admin")) || authz.IsAdmin(reqWithRole("pusdatin")) {
		t.Error("IsAdmin")
	}
	if !authz.IsPusdatin(reqWithRole("pusdatin")) {
		t.Error("IsPusdatin")
	}
	if !authz.IsDLH(reqWithRole("provinsi")) || !authz.IsDLH(reqWithRole("kabupaten/kota")) || authz.IsDLH(reqWithRole("admin")) {
		t.Error("IsDLH")
	}
}

func TestDashboardPath(t *testing.T) {
	tests := map[string]string{
		"admin":          "/admin",
		"PUSDATIN":       "/pusdatin",
		"provinsi":       "/dlh",
		"kabupaten/kota": "/dlh",
		"tamu":           "/",
		"":               "/",
	}
	for role, want := range tests {
		if got := authz.DashboardPath(role); got != want {
			t.Errorf("DashboardPath(%q) = %q, want %q", role, got, want)
		}
	}
}

func TestSafeReturn(t *testing.T) {
	tests := map[string]string{
		"/pusdatin?year=2025": "/pusdatin?year=2025",
		"//evil.example":      "",
		"https://evil":        "",
		"":                    "",
		"/\\evil":             "",
	}
	for in, want := range tests {
		if got := authz.SafeReturn(in); got != want {
			t.Errorf("SafeReturn(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestHomeForWrongRole(t *testing.T) {
	guard := authz.HomeForWrongRole("pusdatin")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name     string
		role     string
		path     string
		wantCode int
		wantLoc  string
	}{
		{"allowed", "pusdatin", "/pusdatin", http.StatusOK, ""},
		{"admin sent home", "admin", "/pusdatin", http.StatusSeeOther, "/admin"},
		{"dlh sent home", "kabupaten/kota", "/pusdatin/penilaian", http.StatusSeeOther, "/dlh"},
		{"unknown role forbidden", "tamu", "/pusdatin", http.StatusSeeOther, "/forbidden"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := auth.WithTestUser(httptest.NewRequest("GET", tc.path, nil), &auth.SessionUser{ID: "1", Role: tc.role, Token: "t"})
			rec := httptest.NewRecorder()
			guard.ServeHTTP(rec, r)
			if rec.Code != tc.wantCode {
				t.Fatalf("code = %d, want %d", rec.Code, tc.wantCode)
			}
			if loc := rec.Header().Get("Location"); loc != tc.wantLoc {
				t.Errorf("Location = %q, want %q", loc, tc.wantLoc)
			}
		})
	}
}

func TestHomeForWrongRole_Anonymous(t *testing.T) {
	called := false
	guard := authz.HomeForWrongRole("admin")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	guard.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/admin", nil))
	if !called {
		t.Error("anonymous requests pass through to the sign-in guard")
	}
}
