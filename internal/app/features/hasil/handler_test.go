package hasil_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sipelita/dashboard/internal/app/features/hasil"
	"github.com/sipelita/dashboard/internal/app/system/auth"
	"github.com/sipelita/dashboard/internal/app/system/latest"
	"github.com/sipelita/dashboard/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T, api *testutil.FakeAPI, tracker *latest.Tracker) (*hasil.Handler, *auth.SessionManager) {
	t.Helper()
	logger := zap.NewNop()
	sm, err := auth.NewSessionManager("test-session-key-must-be-32-chars-long", "test-session", "", 24*time.Hour, false, logger)
	if err != nil {
		t.Fatalf("NewSessionManager failed: %v", err)
	}
	return hasil.NewHandler(sm, api.Factory(t), tracker, logger), sm
}

func serveIgnoringRender(h http.HandlerFunc, w http.ResponseWriter, r *http.Request) {
	defer func() { _ = recover() }()
	h(w, r)
}

func timelineBody() map[string]any {
	return map[string]any{
		"year":        "2025",
		"tahap_aktif": "validasi_1",
		"timeline": []map[string]string{
			{"tahap": "penilaian_slhd", "nama": "Penilaian SLHD", "status": "completed"},
			{"tahap": "validasi_1", "nama": "Validasi 1", "status": "active"},
		},
	}
}

func TestServeResult_FetchesStageAndDetail(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	api.JSON("GET", "/api/dinas/pengumuman/timeline", http.StatusOK, timelineBody())
	api.JSON("GET", "/api/dinas/pengumuman/2025/penilaian_slhd", http.StatusOK, map[string]any{
		"pengumuman_tersedia": true,
		"hasil":               map[string]any{"status": "LOLOS", "nilai_slhd": "78.5"},
	})
	api.JSON("GET", "/api/dinas/pengumuman/detail-slhd", http.StatusOK, map[string]any{"available": false})
	h, _ := newTestHandler(t, api, latest.New())

	req := testutil.NewAuthenticatedRequest("GET", "/dlh/hasil?tab=penilaian_slhd", testutil.KabKotaUser())
	serveIgnoringRender(h.ServeResult, httptest.NewRecorder(), req)

	if n := len(api.CallsTo("GET", "/api/dinas/pengumuman/2025/penilaian_slhd")); n != 1 {
		t.Errorf("result fetched %d times", n)
	}
	if n := len(api.CallsTo("GET", "/api/dinas/pengumuman/detail-slhd")); n != 1 {
		t.Errorf("slhd detail fetched %d times", n)
	}
	if n := len(api.CallsTo("GET", "/api/dinas/pengumuman/detail-penghargaan")); n != 0 {
		t.Errorf("award detail should not be fetched on the SLHD tab")
	}
}

func TestServeResult_UnknownTabFallsBackToSLHD(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	api.JSON("GET", "/api/dinas/pengumuman/timeline", http.StatusOK, timelineBody())
	h, _ := newTestHandler(t, api, nil)

	req := testutil.NewAuthenticatedRequest("GET", "/dlh/hasil?tab=bogus", testutil.ProvinsiUser())
	serveIgnoringRender(h.ServeResult, httptest.NewRecorder(), req)

	if n := len(api.CallsTo("GET", "/api/dinas/pengumuman/2025/penilaian_slhd")); n != 1 {
		t.Errorf("expected SLHD result fetch, calls = %+v", api.Calls())
	}
}

func TestServeResult_SupersededSwitchIsDropped(t *testing.T) {
	tracker := latest.New()
	user := testutil.KabKotaUser()

	api := testutil.NewFakeAPI(t)
	api.Handle("GET", "/api/dinas/pengumuman/timeline", func(w http.ResponseWriter, r *http.Request) {
		// The operator clicks another tab while this one is loading.
		tracker.Begin(user.SessionID+"|dlh-hasil", "wawancara")
		testutil.WriteJSON(w, http.StatusOK, timelineBody())
	})
	h, _ := newTestHandler(t, api, tracker)

	req := testutil.HTMX(testutil.NewAuthenticatedRequest("GET", "/dlh/hasil?tab=validasi_1", user))
	req.Header.Set("HX-Target", "hasil-panel")
	rec := httptest.NewRecorder()
	serveIgnoringRender(h.ServeResult, rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("expected 204 for a superseded switch, got %d", rec.Code)
	}
}

func TestServeOverview_UnauthorizedExpiresSession(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	api.JSON("GET", "/api/dinas/pengumuman/timeline", http.StatusUnauthorized, map[string]string{"message": "Unauthenticated."})
	h, _ := newTestHandler(t, api, nil)

	rec := httptest.NewRecorder()
	serveIgnoringRender(h.ServeOverview, rec, testutil.NewAuthenticatedRequest("GET", "/dlh", testutil.ProvinsiUser()))

	if rec.Code != http.StatusSeeOther || !strings.HasPrefix(rec.Header().Get("Location"), "/login") {
		t.Errorf("got %d %q", rec.Code, rec.Header().Get("Location"))
	}
}

func TestRoutes_PusdatinSentHome(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	h, sm := newTestHandler(t, api, nil)

	rec := httptest.NewRecorder()
	hasil.Routes(h, sm).ServeHTTP(rec, testutil.NewAuthenticatedRequest("GET", "/hasil", testutil.PusdatinUser()))
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/pusdatin" {
		t.Errorf("got %d %q", rec.Code, rec.Header().Get("Location"))
	}
}
