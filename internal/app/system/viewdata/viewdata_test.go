package viewdata_test

import (
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/sipelita/dashboard/internal/app/system/auth"
	"github.com/sipelita/dashboard/internal/app/system/viewdata"
)

func TestSelectedYear(t *testing.T) {
	now := time.Now().Year()
	tests := []struct {
		target string
		want   int
	}{
		{"/pusdatin?year=2024", 2024},
		{"/pusdatin", now},
		{"/pusdatin?year=abc", now},
		{"/pusdatin?year=1800", now},
	}
	for _, tc := range tests {
		if got := viewdata.SelectedYear(httptest.NewRequest("GET", tc.target, nil)); got != tc.want {
			t.Errorf("SelectedYear(%q) = %d, want %d", tc.target, got, tc.want)
		}
	}
}

func TestSelectedYear_Form(t *testing.T) {
	body := url.Values{"year": {"2023"}}.Encode()
	r := httptest.NewRequest("POST", "/pusdatin/penilaian/validasi1/finalize", strings.NewReader(body))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if got := viewdata.SelectedYear(r); got != 2023 {
		t.Errorf("SelectedYear = %d, want 2023", got)
	}
}

func TestYearOptions(t *testing.T) {
	got := viewdata.YearOptions(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC))
	if len(got) != 5 || got[0] != 2025 || got[4] != 2021 {
		t.Errorf("YearOptions = %v", got)
	}
}

func TestNewBaseVM(t *testing.T) {
	r := httptest.NewRequest("GET", "/dlh?year=2025", nil)
	r = auth.WithTestUser(r, &auth.SessionUser{
		ID:           "9",
		Name:         "DLH Kota Bandung",
		Role:         "kabupaten/kota",
		ProvinceName: "Jawa Barat",
		RegencyName:  "Kota Bandung",
		Token:        "t",
	})

	vm := viewdata.NewBaseVM(r, "Hasil Penilaian", "/dlh")
	if !vm.IsLoggedIn || vm.Role != "kabupaten/kota" || vm.UserName != "DLH Kota Bandung" {
		t.Errorf("user fields = %+v", vm)
	}
	if vm.DashboardURL != "/dlh" || vm.UserRegion != "Kota Bandung" || vm.Year != 2025 {
		t.Errorf("derived fields = %q %q %d", vm.DashboardURL, vm.UserRegion, vm.Year)
	}
	if vm.SiteName != viewdata.SiteName || vm.Title != "Hasil Penilaian" {
		t.Errorf("page fields = %q %q", vm.SiteName, vm.Title)
	}
}

func TestNewBaseVM_Anonymous(t *testing.T) {
	vm := viewdata.NewBaseVM(httptest.NewRequest("GET", "/login", nil), "Masuk", "/")
	if vm.IsLoggedIn || vm.DashboardURL != "" || vm.Role != "visitor" {
		t.Errorf("anonymous vm = %+v", vm)
	}
}
