package bootstrap

import (
	"bytes"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/csrf"
	"go.uber.org/zap"
)

func validConfig() AppConfig {
	return AppConfig{
		APIBaseURL:      "https://api.sipelita.example.go.id",
		APITimeout:      10 * time.Second,
		SessionKey:      "test-session-key-must-be-32-chars-long",
		MongoURI:        "mongodb://localhost:27017",
		MongoDatabase:   "sipelita_dashboard",
		AuditLogAuth:    "all",
		AuditLogActions: "db",
		PassThreshold:   60,
		DefaultPerPage:  "all",
		UploadMaxMB:     20,
		LoginRateLimit:  10,
	}
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*AppConfig)
		wantErr string
	}{
		{"valid", func(*AppConfig) {}, ""},
		{"api without scheme", func(c *AppConfig) { c.APIBaseURL = "api.example.go.id" }, "API base URL"},
		{"api ftp", func(c *AppConfig) { c.APIBaseURL = "ftp://api.example.go.id" }, "API base URL"},
		{"zero threshold", func(c *AppConfig) { c.PassThreshold = 0 }, "pass_threshold"},
		{"threshold over 100", func(c *AppConfig) { c.PassThreshold = 101 }, "pass_threshold"},
		{"no upload size", func(c *AppConfig) { c.UploadMaxMB = 0 }, "upload_max_mb"},
		{"audit auth mode", func(c *AppConfig) { c.AuditLogAuth = "everything" }, "audit_log_auth"},
		{"audit actions mode", func(c *AppConfig) { c.AuditLogActions = "" }, "audit_log_actions"},
		{"negative retention", func(c *AppConfig) { c.AuditRetention = -time.Hour }, "audit_retention"},
		{"per page", func(c *AppConfig) { c.DefaultPerPage = "7" }, "default_per_page"},
		{"per page size", func(c *AppConfig) { c.DefaultPerPage = "25" }, ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(&cfg)
			err := ValidateConfig(nil, cfg, zap.NewNop())
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("error = %v, want mention of %q", err, tc.wantErr)
			}
		})
	}
}

func TestParseThreshold(t *testing.T) {
	if v, err := parseThreshold(" 62.5 "); err != nil || v != 62.5 {
		t.Errorf("parseThreshold = %v, %v", v, err)
	}
	if _, err := parseThreshold("enam puluh"); err == nil {
		t.Error("expected error for non-numeric threshold")
	}
}

func TestUploadMaxBytes(t *testing.T) {
	cfg := AppConfig{UploadMaxMB: 20}
	if got := cfg.UploadMaxBytes(); got != 20<<20 {
		t.Errorf("UploadMaxBytes = %d", got)
	}
}

func TestCSRFProtect(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	h := csrfProtect("test-session-key-must-be-32-chars-long", false)(ok)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/login", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("GET: got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("POST", "/pusdatin/penilaian/validasi1/finalize", nil))
	if rec.Code != http.StatusForbidden {
		t.Errorf("POST without token: got %d, want 403", rec.Code)
	}
}

func TestLimitMultipartBody_AheadOfCSRF(t *testing.T) {
	const limit = 4 << 10
	var parseErr error
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			_, _ = io.WriteString(w, csrf.Token(r))
			return
		}
		parseErr = r.ParseMultipartForm(limit)
		w.WriteHeader(http.StatusOK)
	})
	h := limitMultipartBody(limit)(csrfProtect("test-session-key-must-be-32-chars-long", false)(inner))

	get := httptest.NewRecorder()
	h.ServeHTTP(get, httptest.NewRequest("GET", "/pusdatin/penilaian", nil))
	token := get.Body.String()
	if token == "" {
		t.Fatal("no token issued")
	}

	upload := func(withHeader bool) *httptest.ResponseRecorder {
		var body bytes.Buffer
		mw := multipart.NewWriter(&body)
		fw, _ := mw.CreateFormFile("file", "besar.xlsx")
		_, _ = fw.Write(bytes.Repeat([]byte("x"), 4*limit))
		_ = mw.Close()
		req := httptest.NewRequest("POST", "/pusdatin/penilaian/slhd/upload", &body)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		if withHeader {
			req.Header.Set("X-CSRF-Token", token)
		}
		for _, c := range get.Result().Cookies() {
			req.AddCookie(c)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	if rec := upload(true); rec.Code != http.StatusOK {
		t.Fatalf("header token: got %d", rec.Code)
	}
	var tooLarge *http.MaxBytesError
	if !errors.As(parseErr, &tooLarge) {
		t.Errorf("handler should see the body cap, got %v", parseErr)
	}

	parseErr = nil
	if rec := upload(false); rec.Code != http.StatusForbidden {
		t.Errorf("oversized form without header token: got %d, want 403", rec.Code)
	}
	if parseErr != nil {
		t.Error("handler must not run when the token cannot be read")
	}
}
