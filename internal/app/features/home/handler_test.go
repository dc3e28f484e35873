package home_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sipelita/dashboard/internal/app/features/home"
	"github.com/sipelita/dashboard/internal/testutil"
	"go.uber.org/zap"
)

func TestServeRoot_RedirectsSignedInUsers(t *testing.T) {
	h := home.NewHandler(zap.NewNop())

	tests := []struct {
		name string
		user testutil.TestUser
		want string
	}{
		{"admin", testutil.AdminUser(), "/admin"},
		{"pusdatin", testutil.PusdatinUser(), "/pusdatin"},
		{"provinsi", testutil.ProvinsiUser(), "/dlh"},
		{"kabkota", testutil.KabKotaUser(), "/dlh"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeRoot(rec, testutil.NewAuthenticatedRequest("GET", "/", tc.user))
			if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != tc.want {
				t.Errorf("got %d %q, want redirect to %q", rec.Code, rec.Header().Get("Location"), tc.want)
			}
		})
	}
}

func TestServeRoot_AnonymousRenders(t *testing.T) {
	h := home.NewHandler(zap.NewNop())
	rec := httptest.NewRecorder()
	func() {
		defer func() { _ = recover() }()
		h.ServeRoot(rec, httptest.NewRequest("GET", "/", nil))
	}()
	if rec.Code == http.StatusSeeOther {
		t.Error("anonymous visitors must not be redirected")
	}
}
