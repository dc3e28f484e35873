package dashboard_test

import (
	"net/http"
	"testing"

	"github.com/sipelita/dashboard/internal/app/store/dashboard"
	"github.com/sipelita/dashboard/internal/testutil"
)

func TestStats_BareAndWrapped(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	api.JSON("GET", "/api/pusdatin/dashboard/stats", http.StatusOK, map[string]any{
		"total_dlh": 514, "iklh_upload": 120, "avg_nilai_slhd": "71.20",
	})
	api.JSON("GET", "/api/admin/dashboard", http.StatusOK, map[string]any{
		"data": map[string]any{"total_users_aktif": 30, "total_users_pending": 4},
	})
	s := dashboard.New(api.Client(t, "tok"))
	ctx, cancel := testutil.TestContext()
	defer cancel()

	st, err := s.Stats(ctx, 2025)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if st.TotalDLH != 514 || st.IKLHUpload != 120 || st.AvgNilaiSLHD != "71.20" {
		t.Errorf("stats = %+v", st)
	}
	if q := api.Calls()[0].Query; q != "year=2025" {
		t.Errorf("query = %q", q)
	}

	as, err := s.AdminStats(ctx)
	if err != nil {
		t.Fatalf("AdminStats: %v", err)
	}
	if as.TotalUsersAktif != 30 || as.TotalUsersPending != 4 {
		t.Errorf("admin stats = %+v", as)
	}
}

func TestNotifications_Nulls(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	api.JSON("GET", "/api/pusdatin/dashboard/notifications", http.StatusOK, map[string]any{
		"announcement": "Tahap validasi dibuka", "notification": nil,
	})
	s := dashboard.New(api.Client(t, "tok"))
	ctx, cancel := testutil.TestContext()
	defer cancel()

	n, err := s.Notifications(ctx, 2025)
	if err != nil {
		t.Fatalf("Notifications: %v", err)
	}
	if n.Announcement == nil || *n.Announcement != "Tahap validasi dibuka" || n.Notification != nil {
		t.Errorf("notifications = %+v", n)
	}
}

func TestStats_ErrorPropagates(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	s := dashboard.New(api.Client(t, "tok"))
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := s.Stats(ctx, 2025); err == nil {
		t.Fatal("expected error on 404")
	}
}
