package dashboard_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sipelita/dashboard/internal/app/features/dashboard"
	uierrors "github.com/sipelita/dashboard/internal/app/features/errors"
	"github.com/sipelita/dashboard/internal/app/system/auth"
	"github.com/sipelita/dashboard/internal/domain/models"
	"github.com/sipelita/dashboard/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T, api *testutil.FakeAPI) (*dashboard.Handler, *auth.SessionManager) {
	t.Helper()
	logger := zap.NewNop()
	sm, err := auth.NewSessionManager("test-session-key-must-be-32-chars-long", "test-session", "", 24*time.Hour, false, logger)
	if err != nil {
		t.Fatalf("NewSessionManager failed: %v", err)
	}
	return dashboard.NewHandler(sm, api.Factory(t), uierrors.NewErrorLogger(logger), logger), sm
}

func serveIgnoringRender(h http.HandlerFunc, w http.ResponseWriter, r *http.Request) {
	defer func() { _ = recover() }()
	h(w, r)
}

func TestStatCards(t *testing.T) {
	cards := dashboard.StatCards(models.DashboardStats{
		TotalDLH:    38,
		Buku1Upload: 12, Buku1Approved: 4,
		IKLHUpload: 3,
	})
	if len(cards) != 5 {
		t.Fatalf("expected 5 cards, got %d", len(cards))
	}
	if cards[0].Lines[0] != "38" {
		t.Errorf("total = %v", cards[0].Lines)
	}
	if strings.Join(cards[1].Lines, "|") != "12 Upload|4 Approved" {
		t.Errorf("buku 1 = %v", cards[1].Lines)
	}
	if cards[4].Lines[0] != "Penilaian belum dimulai" {
		t.Errorf("average without score = %v", cards[4].Lines)
	}

	cards = dashboard.StatCards(models.DashboardStats{AvgNilaiSLHD: "78.25"})
	if cards[4].Lines[0] != "78.25" {
		t.Errorf("average = %v", cards[4].Lines)
	}
}

func TestServePusdatin_FetchesAllWidgetsDespiteFailure(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	api.JSON("GET", "/api/pusdatin/dashboard/stats", http.StatusInternalServerError, map[string]string{"message": "boom"})
	api.JSON("GET", "/api/pusdatin/penilaian/progress-stats", http.StatusOK, map[string]any{"total_dlh": 10})
	api.JSON("GET", "/api/pusdatin/dashboard/notifications", http.StatusOK, map[string]any{"announcement": "<b>Batas upload</b>"})
	h, _ := newTestHandler(t, api)

	req := testutil.NewAuthenticatedRequest("GET", "/pusdatin?year=2025", testutil.PusdatinUser())
	serveIgnoringRender(h.ServePusdatin, httptest.NewRecorder(), req)

	for _, path := range []string{
		"/api/pusdatin/dashboard/stats",
		"/api/pusdatin/penilaian/progress-stats",
		"/api/pusdatin/dashboard/notifications",
	} {
		calls := api.CallsTo("GET", path)
		if len(calls) != 1 {
			t.Errorf("%s called %d times", path, len(calls))
			continue
		}
		if calls[0].Query != "year=2025" {
			t.Errorf("%s query = %q", path, calls[0].Query)
		}
		if calls[0].Auth != "Bearer token-pusdatin" {
			t.Errorf("%s auth = %q", path, calls[0].Auth)
		}
	}
}

func TestServePusdatin_UnauthorizedExpiresSession(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	api.JSON("GET", "/api/pusdatin/dashboard/stats", http.StatusUnauthorized, map[string]string{"message": "Unauthenticated."})
	h, _ := newTestHandler(t, api)

	rec := httptest.NewRecorder()
	serveIgnoringRender(h.ServePusdatin, rec, testutil.NewAuthenticatedRequest("GET", "/pusdatin", testutil.PusdatinUser()))

	if rec.Code != http.StatusSeeOther || !strings.HasPrefix(rec.Header().Get("Location"), "/login") {
		t.Errorf("got %d %q", rec.Code, rec.Header().Get("Location"))
	}
}

func TestServeAdmin_UnauthorizedExpiresSession(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	api.JSON("GET", "/api/admin/dashboard", http.StatusUnauthorized, map[string]string{"message": "Unauthenticated."})
	h, _ := newTestHandler(t, api)

	rec := httptest.NewRecorder()
	serveIgnoringRender(h.ServeAdmin, rec, testutil.NewAuthenticatedRequest("GET", "/admin", testutil.AdminUser()))

	if rec.Code != http.StatusSeeOther || !strings.HasPrefix(rec.Header().Get("Location"), "/login") {
		t.Errorf("got %d %q", rec.Code, rec.Header().Get("Location"))
	}
}

func TestRoutes_WrongRoleGoesHome(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	h, sm := newTestHandler(t, api)

	tests := []struct {
		name   string
		router http.Handler
		user   testutil.TestUser
		want   string
	}{
		{"dlh on admin", dashboard.AdminRoutes(h, sm), testutil.ProvinsiUser(), "/dlh"},
		{"pusdatin on admin", dashboard.AdminRoutes(h, sm), testutil.PusdatinUser(), "/pusdatin"},
		{"admin on pusdatin", dashboard.PusdatinRoutes(h, sm), testutil.AdminUser(), "/admin"},
		{"kabkota on pusdatin", dashboard.PusdatinRoutes(h, sm), testutil.KabKotaUser(), "/dlh"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			tc.router.ServeHTTP(rec, testutil.NewAuthenticatedRequest("GET", "/", tc.user))
			if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != tc.want {
				t.Errorf("got %d %q, want %q", rec.Code, rec.Header().Get("Location"), tc.want)
			}
			if len(api.Calls()) != 0 {
				t.Errorf("guarded request reached the API: %+v", api.Calls())
			}
		})
	}
}

func TestRoutes_AnonymousRedirectsToLogin(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	h, sm := newTestHandler(t, api)

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Accept", "text/html")
	rec := httptest.NewRecorder()
	dashboard.PusdatinRoutes(h, sm).ServeHTTP(rec, req)
	if rec.Code != http.StatusSeeOther || !strings.HasPrefix(rec.Header().Get("Location"), "/login") {
		t.Errorf("got %d %q", rec.Code, rec.Header().Get("Location"))
	}
}
