package testutil

import (
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/sipelita/dashboard/internal/app/system/auth"
	"github.com/sipelita/dashboard/internal/domain/models"
)

// TestUser represents an operator for handler tests.
type TestUser struct {
	ID           string
	Name         string
	Email        string
	Role         string
	ProvinceID   string
	ProvinceName string
	RegencyID    string
	RegencyName  string
	Token        string
	SessionID    string
}

// AdminUser returns a TestUser with the admin role.
func AdminUser() TestUser {
	return TestUser{
		ID:        "1",
		Name:      "Admin Sistem",
		Email:     "admin@sipelita.test",
		Role:      string(models.RoleAdmin),
		Token:     "token-admin",
		SessionID: "sess-admin",
	}
}

// PusdatinUser returns a TestUser with the pusdatin role.
func PusdatinUser() TestUser {
	return TestUser{
		ID:        "2",
		Name:      "Operator Pusdatin",
		Email:     "pusdatin@sipelita.test",
		Role:      string(models.RolePusdatin),
		Token:     "token-pusdatin",
		SessionID: "sess-pusdatin",
	}
}

// ProvinsiUser returns a TestUser for a provincial environment agency.
func ProvinsiUser() TestUser {
	return TestUser{
		ID:           "3",
		Name:         "DLH Provinsi Jawa Barat",
		Email:        "dlh.jabar@sipelita.test",
		Role:         string(models.RoleProvinsi),
		ProvinceID:   "32",
		ProvinceName: "Jawa Barat",
		Token:        "token-provinsi",
		SessionID:    "sess-provinsi",
	}
}

// KabKotaUser returns a TestUser for a regency/city environment agency.
func KabKotaUser() TestUser {
	return TestUser{
		ID:           "4",
		Name:         "DLH Kota Bandung",
		Email:        "dlh.bandung@sipelita.test",
		Role:         string(models.RoleKabKota),
		ProvinceID:   "32",
		ProvinceName: "Jawa Barat",
		RegencyID:    "3273",
		RegencyName:  "Kota Bandung",
		Token:        "token-kabkota",
		SessionID:    "sess-kabkota",
	}
}

// WithUser adds a user to the request context for testing authenticated handlers.
// This bypasses the session middleware and injects the user directly.
func WithUser(r *http.Request, user TestUser) *http.Request {
	return auth.WithTestUser(r, &auth.SessionUser{
		ID:           user.ID,
		Name:         user.Name,
		Email:        user.Email,
		Role:         user.Role,
		ProvinceID:   user.ProvinceID,
		ProvinceName: user.ProvinceName,
		RegencyID:    user.RegencyID,
		RegencyName:  user.RegencyName,
		Token:        user.Token,
		SessionID:    user.SessionID,
	})
}

// NewAuthenticatedRequest creates an HTTP request with a user in context.
func NewAuthenticatedRequest(method, target string, user TestUser) *http.Request {
	return WithUser(httptest.NewRequest(method, target, nil), user)
}

// HTMX marks the request as an HTMX partial request.
func HTMX(r *http.Request) *http.Request {
	r.Header.Set("HX-Request", "true")
	return r
}

// ResponseRecorder wraps httptest.ResponseRecorder with helper methods.
type ResponseRecorder struct {
	*httptest.ResponseRecorder
}

// NewRecorder creates a new ResponseRecorder.
func NewRecorder() *ResponseRecorder {
	return &ResponseRecorder{httptest.NewRecorder()}
}

// AssertStatus checks the response status code.
func (r *ResponseRecorder) AssertStatus(t interface{ Errorf(string, ...any) }, expected int) {
	if r.Code != expected {
		t.Errorf("status code: got %d, want %d", r.Code, expected)
	}
}

// AssertRedirect checks for a redirect to the expected location.
func (r *ResponseRecorder) AssertRedirect(t interface{ Errorf(string, ...any) }, expectedLocation string) {
	if r.Code != http.StatusSeeOther && r.Code != http.StatusFound && r.Code != http.StatusMovedPermanently {
		t.Errorf("expected redirect status, got %d", r.Code)
	}
	if location := r.Header().Get("Location"); location != expectedLocation {
		t.Errorf("redirect location: got %q, want %q", location, expectedLocation)
	}
}

// AssertContains checks if the response body contains the expected string.
func (r *ResponseRecorder) AssertContains(t interface{ Errorf(string, ...any) }, expected string) {
	if !strings.Contains(r.Body.String(), expected) {
		t.Errorf("response body does not contain %q", expected)
	}
}
