package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sipelita/dashboard/internal/app/system/apiclient"
	"go.uber.org/zap"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		rctx = chi.NewRouteContext()
	}
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Call is one request received by a FakeAPI.
type Call struct {
	Method string
	Path   string
	Query  string
	Auth   string
	Body   []byte
}

// FakeAPI is an in-process stand-in for the scoring backend. Unregistered
// routes answer 404 with a JSON message.
type FakeAPI struct {
	Server *httptest.Server

	router chi.Router
	mu     sync.Mutex
	calls  []Call
}

// NewFakeAPI starts a FakeAPI that is closed when the test finishes.
func NewFakeAPI(t *testing.T) *FakeAPI {
	t.Helper()
	f := &FakeAPI{router: chi.NewRouter()}
	f.router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, http.StatusNotFound, map[string]string{"message": "Data tidak ditemukan"})
	})
	f.Server = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.Server.Close)
	return f
}

func (f *FakeAPI) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	f.mu.Lock()
	f.calls = append(f.calls, Call{
		Method: r.Method,
		Path:   r.URL.Path,
		Query:  r.URL.RawQuery,
		Auth:   r.Header.Get("Authorization"),
		Body:   body,
	})
	f.mu.Unlock()
	r.Body = io.NopCloser(bytes.NewReader(body))
	f.router.ServeHTTP(w, r)
}

// Handle registers h for method and chi pattern.
func (f *FakeAPI) Handle(method, pattern string, h http.HandlerFunc) {
	f.router.MethodFunc(method, pattern, h)
}

// JSON registers a fixed JSON response.
func (f *FakeAPI) JSON(method, pattern string, status int, body any) {
	f.Handle(method, pattern, func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, status, body)
	})
}

// Raw registers a fixed raw body with the given content type.
func (f *FakeAPI) Raw(method, pattern string, status int, contentType string, body []byte) {
	f.Handle(method, pattern, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(status)
		_, _ = w.Write(body)
	})
}

// Calls returns a copy of the requests received so far.
func (f *FakeAPI) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Call, len(f.calls))
	copy(out, f.calls)
	return out
}

// CallsTo returns the received requests matching method and exact path.
func (f *FakeAPI) CallsTo(method, path string) []Call {
	var out []Call
	for _, c := range f.Calls() {
		if c.Method == method && c.Path == path {
			out = append(out, c)
		}
	}
	return out
}

// Factory returns an apiclient.Factory pointed at the fake server.
func (f *FakeAPI) Factory(t *testing.T) *apiclient.Factory {
	t.Helper()
	fac, err := apiclient.NewFactory(f.Server.URL, 5*time.Second, zap.NewNop())
	if err != nil {
		t.Fatalf("api factory: %v", err)
	}
	return fac
}

// Client returns a client bound to token.
func (f *FakeAPI) Client(t *testing.T, token string) *apiclient.Client {
	t.Helper()
	return f.Factory(t).WithToken(token)
}

// WriteJSON writes v as a JSON response.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
