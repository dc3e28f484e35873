// internal/app/system/apiclient/client.go
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

// maxBody caps how much of a response is read into memory.
const maxBody = 32 << 20

// Factory builds clients bound to one base URL. A client is created per
// request with that request's session token; clients are never shared
// across sessions.
type Factory struct {
	base      *url.URL
	timeout   time.Duration
	transport http.RoundTripper
	log       *zap.Logger
}

// NewFactory validates baseURL and returns a Factory.
func NewFactory(baseURL string, timeout time.Duration, logger *zap.Logger) (*Factory, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse api base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("api base url must be http or https, got %q", baseURL)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Factory{
		base:      u,
		timeout:   timeout,
		transport: http.DefaultTransport,
		log:       logger,
	}, nil
}

// WithTransport replaces the underlying transport. Tests use it to point
// the factory at an httptest server's client transport.
func (f *Factory) WithTransport(rt http.RoundTripper) *Factory {
	cp := *f
	cp.transport = rt
	return &cp
}

// Anonymous returns a client that sends no bearer token (login only).
func (f *Factory) Anonymous() *Client {
	return f.newClient(headerTransport{base: f.transport})
}

// WithToken returns a client that authenticates with the given bearer token.
func (f *Factory) WithToken(token string) *Client {
	if token == "" {
		return f.Anonymous()
	}
	rt := &oauth2.Transport{
		Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}),
		Base:   headerTransport{base: f.transport},
	}
	return f.newClient(rt)
}

func (f *Factory) newClient(rt http.RoundTripper) *Client {
	return &Client{
		base: f.base,
		http: &http.Client{Transport: rt, Timeout: f.timeout},
		log:  f.log,
	}
}

// headerTransport adds the headers every API call carries.
type headerTransport struct {
	base http.RoundTripper
}

func (t headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r := req.Clone(req.Context())
	r.Header.Set("X-Requested-With", "XMLHttpRequest")
	r.Header.Set("Accept", "application/json")
	return t.base.RoundTrip(r)
}

// Client talks to the scoring API on behalf of one session.
type Client struct {
	base *url.URL
	http *http.Client
	log  *zap.Logger
}

// URL resolves path (and optional query) against the base URL.
func (c *Client) URL(path string, q url.Values) string {
	u := *c.base
	u.Path = strings.TrimRight(c.base.Path, "/") + "/" + strings.TrimLeft(path, "/")
	if len(q) > 0 {
		u.RawQuery = q.Encode()
	}
	return u.String()
}

// Raw performs the request and returns the cleaned response body. Non-2xx
// responses are returned as *Error.
func (c *Client) Raw(ctx context.Context, method, path string, q url.Values, body io.Reader, contentType string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.URL(path, q), body)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("api request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err))
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, fmt.Errorf("%s %s: read body: %w", method, path, err)
	}

	c.log.Debug("api request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &Error{
			Method:  method,
			Path:    path,
			Status:  resp.StatusCode,
			Message: messageOf(b),
		}
	}
	return CleanBody(b), nil
}

// Get issues a GET and decodes the body into out (when non-nil).
func (c *Client) Get(ctx context.Context, path string, q url.Values, out any) error {
	b, err := c.Raw(ctx, http.MethodGet, path, q, nil, "")
	if err != nil {
		return err
	}
	return decode(describe(http.MethodGet, path), b, out)
}

// GetBytes issues a GET and returns the cleaned body.
func (c *Client) GetBytes(ctx context.Context, path string, q url.Values) ([]byte, error) {
	return c.Raw(ctx, http.MethodGet, path, q, nil, "")
}

// Send issues method with a JSON body (nil sends no body) and decodes the
// response into out (when non-nil).
func (c *Client) Send(ctx context.Context, method, path string, in, out any) error {
	var (
		rdr io.Reader
		ct  string
	)
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		rdr = bytes.NewReader(buf)
		ct = "application/json"
	}
	b, err := c.Raw(ctx, method, path, nil, rdr, ct)
	if err != nil {
		return err
	}
	return decode(describe(method, path), b, out)
}

// FilePart is the file half of a multipart upload.
type FilePart struct {
	Field    string
	Filename string
	Content  io.Reader
}

// PostMultipart uploads a file plus plain form fields. Empty field values
// are omitted.
func (c *Client) PostMultipart(ctx context.Context, path string, fields map[string]string, file FilePart, out any) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if v == "" {
			continue
		}
		if err := mw.WriteField(k, v); err != nil {
			return err
		}
	}
	fw, err := mw.CreateFormFile(file.Field, file.Filename)
	if err != nil {
		return err
	}
	if _, err := io.Copy(fw, file.Content); err != nil {
		return err
	}
	if err := mw.Close(); err != nil {
		return err
	}
	b, err := c.Raw(ctx, http.MethodPost, path, nil, &buf, mw.FormDataContentType())
	if err != nil {
		return err
	}
	return decode(describe(http.MethodPost, path), b, out)
}

// Download is a file fetched from the API.
type Download struct {
	Filename    string
	ContentType string
	Body        []byte
}

// Download fetches a binary resource. fallbackName is used when the response
// has no Content-Disposition filename.
func (c *Client) Download(ctx context.Context, path string, q url.Values, fallbackName string) (*Download, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL(path, q), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, fmt.Errorf("GET %s: read body: %w", path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &Error{Method: http.MethodGet, Path: path, Status: resp.StatusCode, Message: messageOf(b)}
	}

	name := fallbackName
	if cd := resp.Header.Get("Content-Disposition"); cd != "" {
		if _, params, err := mime.ParseMediaType(cd); err == nil && params["filename"] != "" {
			name = params["filename"]
		}
	}
	ct := resp.Header.Get("Content-Type")
	if ct == "" {
		ct = "application/octet-stream"
	}
	return &Download{Filename: name, ContentType: ct, Body: b}, nil
}

func describe(m, path string) string { return m + " " + path }

func decode(what string, b []byte, out any) error {
	if out == nil || len(b) == 0 {
		return nil
	}
	if err := json.Unmarshal(b, out); err != nil {
		return fmt.Errorf("decode %s: %w", what, err)
	}
	return nil
}
