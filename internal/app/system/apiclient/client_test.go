package apiclient_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sipelita/dashboard/internal/app/system/apiclient"
	"go.uber.org/zap"
)

func newTestFactory(t *testing.T, h http.HandlerFunc) *apiclient.Factory {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	f, err := apiclient.NewFactory(srv.URL, 5*time.Second, zap.NewNop())
	if err != nil {
		t.Fatalf("NewFactory: %v", err)
	}
	return f
}

func TestNewFactory_RejectsBadScheme(t *testing.T) {
	if _, err := apiclient.NewFactory("ftp://example.com", time.Second, nil); err == nil {
		t.Fatal("expected error for ftp scheme")
	}
}

func TestClient_SendsStandardHeadersAndBearer(t *testing.T) {
	var got http.Header
	f := newTestFactory(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.Write([]byte(`{}`))
	})

	if err := f.WithToken("tok-123").Get(context.Background(), "/api/x", nil, nil); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Get("Authorization") != "Bearer tok-123" {
		t.Errorf("Authorization = %q", got.Get("Authorization"))
	}
	if got.Get("X-Requested-With") != "XMLHttpRequest" {
		t.Errorf("X-Requested-With = %q", got.Get("X-Requested-With"))
	}
	if got.Get("Accept") != "application/json" {
		t.Errorf("Accept = %q", got.Get("Accept"))
	}
}

func TestClient_AnonymousHasNoBearer(t *testing.T) {
	var auth string
	f := newTestFactory(t, func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
	})
	if err := f.Anonymous().Get(context.Background(), "/api/login", nil, nil); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if auth != "" {
		t.Errorf("expected no Authorization header, got %q", auth)
	}
}

func TestClient_StripsLeadingC(t *testing.T) {
	f := newTestFactory(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("  c{\"name\":\"ok\"}"))
	})
	var out struct{ Name string }
	if err := f.Anonymous().Get(context.Background(), "/x", nil, &out); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if out.Name != "ok" {
		t.Errorf("Name = %q, want ok", out.Name)
	}
}

func TestClient_UnauthorizedMapsToSentinel(t *testing.T) {
	f := newTestFactory(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"Unauthenticated."}`))
	})
	err := f.WithToken("expired").Get(context.Background(), "/x", nil, nil)
	if !errors.Is(err, apiclient.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if got := apiclient.UserMessage(err, "fallback"); got != "Unauthenticated." {
		t.Errorf("UserMessage = %q", got)
	}
}

func TestClient_ErrorWithoutMessageUsesFallback(t *testing.T) {
	f := newTestFactory(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("<html>boom</html>"))
	})
	err := f.Anonymous().Get(context.Background(), "/x", nil, nil)
	var apiErr *apiclient.Error
	if !errors.As(err, &apiErr) || apiErr.Status != 500 {
		t.Fatalf("expected *Error with 500, got %v", err)
	}
	if got := apiclient.UserMessage(err, "Gagal"); got != "Gagal" {
		t.Errorf("UserMessage = %q, want fallback", got)
	}
}

func TestClient_SendJSON(t *testing.T) {
	var body, method, ct string
	f := newTestFactory(t, func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		body, method, ct = string(b), r.Method, r.Header.Get("Content-Type")
		w.Write([]byte(`{"message":"ok"}`))
	})
	in := map[string]bool{"Kriteria_WTP": true, "Kriteria_Kasus_Hukum": false}
	if err := f.WithToken("t").Send(context.Background(), http.MethodPatch, "/v/1/checklist", in, nil); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if method != http.MethodPatch || ct != "application/json" {
		t.Errorf("method=%s content-type=%s", method, ct)
	}
	if !strings.Contains(body, `"Kriteria_Kasus_Hukum":false`) {
		t.Errorf("body missing false criterion: %s", body)
	}
}

func TestClient_PostMultipart(t *testing.T) {
	var fileBody, note, filename string
	f := newTestFactory(t, func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("ParseMultipartForm: %v", err)
			return
		}
		note = r.FormValue("catatan")
		file, hdr, err := r.FormFile("file")
		if err != nil {
			t.Errorf("FormFile: %v", err)
			return
		}
		defer file.Close()
		b, _ := io.ReadAll(file)
		fileBody, filename = string(b), hdr.Filename
	})
	err := f.WithToken("t").PostMultipart(context.Background(), "/upload/2025",
		map[string]string{"catatan": "revisi", "empty": ""},
		apiclient.FilePart{Field: "file", Filename: "nilai.xlsx", Content: strings.NewReader("DATA")},
		nil)
	if err != nil {
		t.Fatalf("PostMultipart: %v", err)
	}
	if fileBody != "DATA" || filename != "nilai.xlsx" || note != "revisi" {
		t.Errorf("got file=%q name=%q note=%q", fileBody, filename, note)
	}
}

func TestClient_Download(t *testing.T) {
	f := newTestFactory(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("tipe") != "provinsi" {
			t.Errorf("tipe = %q", r.URL.Query().Get("tipe"))
		}
		w.Header().Set("Content-Disposition", `attachment; filename="template_2025.xlsx"`)
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Write([]byte("XLSX"))
	})
	d, err := f.WithToken("t").Download(context.Background(), "/template", map[string][]string{"tipe": {"provinsi"}}, "fallback.xlsx")
	if err != nil {
		t.Fatalf("Download: %v", err)
	}
	if d.Filename != "template_2025.xlsx" || string(d.Body) != "XLSX" {
		t.Errorf("got %q %q", d.Filename, d.Body)
	}
}

func TestDecodeList(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{"bare array", `[{"id":1},{"id":2}]`, 2},
		{"data envelope", `{"data":[{"id":1}]}`, 1},
		{"prefixed", `c[{"id":1}]`, 1},
		{"null", `null`, 0},
		{"empty", ``, 0},
		{"envelope with null data", `{"data":null}`, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := apiclient.DecodeList[struct{ ID int }]([]byte(tt.body))
			if err != nil {
				t.Fatalf("DecodeList: %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("len = %d, want %d", len(got), tt.want)
			}
		})
	}
}

func TestDecodeObject(t *testing.T) {
	type stats struct {
		TotalDLH int `json:"total_dlh"`
	}
	tests := []struct {
		name string
		body string
		want int
	}{
		{"bare", `{"total_dlh": 514}`, 514},
		{"wrapped", `{"data": {"total_dlh": 38}}`, 38},
		{"prefixed", `c{"data": {"total_dlh": 7}}`, 7},
		{"null", `null`, 0},
		{"empty", ``, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got stats
			if err := apiclient.DecodeObject([]byte(tt.body), &got); err != nil {
				t.Fatalf("DecodeObject: %v", err)
			}
			if got.TotalDLH != tt.want {
				t.Errorf("TotalDLH = %d, want %d", got.TotalDLH, tt.want)
			}
		})
	}
}
