package navigation_test

import (
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/sipelita/dashboard/internal/app/system/navigation"
)

func TestSafeBackURL(t *testing.T) {
	tests := []struct {
		name   string
		target string
		form   url.Values
		want   string
	}{
		{"valid return", "/x?return=" + url.QueryEscape("/pusdatin/penilaian?tab=validasi1&year=2025"), nil, "/pusdatin/penilaian?tab=validasi1&year=2025"},
		{"foreign host", "/x?return=" + url.QueryEscape("//evil.example/pusdatin/penilaian"), nil, "/pusdatin/penilaian"},
		{"wrong prefix", "/x?return=" + url.QueryEscape("/admin"), nil, "/pusdatin/penilaian"},
		{"action path", "/x?return=" + url.QueryEscape("/pusdatin/penilaian/slhd/finalize"), nil, "/pusdatin/penilaian"},
		{"fallback keeps params", "/x", url.Values{"tab": {"wawancara"}, "year": {"2024"}}, "/pusdatin/penilaian?tab=wawancara&year=2024"},
		{"form return", "/x", url.Values{"return": {"/pusdatin/penilaian?tab=peringkat"}}, "/pusdatin/penilaian?tab=peringkat"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest("POST", tc.target, strings.NewReader(tc.form.Encode()))
			r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			if got := navigation.SafeBackURL(r, navigation.PenilaianBackURL); got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}
