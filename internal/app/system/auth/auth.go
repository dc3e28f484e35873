package auth

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"github.com/sipelita/dashboard/internal/app/system/apiclient"
	"go.uber.org/zap"
)

/*─────────────────────────────────────────────────────────────────────────────*
| Session constants                                                          |
*─────────────────────────────────────────────────────────────────────────────*/

const (
	// DefaultSessionName is used when no session name is configured.
	DefaultSessionName = "sipelita-session"

	isAuthKey       = "is_authenticated"
	sessionIDKey    = "session_id"
	tokenKey        = "api_token"
	userIDKey       = "user_id"
	userNameKey     = "user_name"
	userEmailKey    = "user_email"
	userRoleKey     = "user_role"
	provinceIDKey   = "province_id"
	provinceNameKey = "province_name"
	regencyIDKey    = "regency_id"
	regencyNameKey  = "regency_name"
	signedInAtKey   = "signed_in_at"
)

/*─────────────────────────────────────────────────────────────────────────────*
| Current-User helper                                                        |
*─────────────────────────────────────────────────────────────────────────────*/

// SessionUser is what we cache in the session & inject into r.Context().
//
// Token is the bearer token issued by the scoring API. It never leaves the
// encrypted cookie except to build that user's API client. SessionID is a
// random id minted at sign-in, used to key per-session guards.
type SessionUser struct {
	ID           string
	Name         string
	Email        string
	Role         string
	ProvinceID   string
	ProvinceName string
	RegencyID    string
	RegencyName  string
	Token        string
	SessionID    string
	SignedInAt   time.Time
}

// RoleLower returns the role normalised for comparison.
func (u *SessionUser) RoleLower() string {
	return strings.ToLower(strings.TrimSpace(u.Role))
}

type ctxKey string

const (
	currentUserKey ctxKey = "currentUser"
	flashesKey     ctxKey = "flashes"
)

// CurrentUser returns the user & "found?" flag.
func CurrentUser(r *http.Request) (*SessionUser, bool) {
	u, ok := r.Context().Value(currentUserKey).(*SessionUser)
	return u, ok && u != nil
}

// WithTestUser injects a user into the request context the way
// LoadSessionUser does. Handlers under test use it to skip the cookie.
func WithTestUser(r *http.Request, u *SessionUser) *http.Request {
	return withUser(r, u)
}

/*─────────────────────────────────────────────────────────────────────────────*
| Session manager                                                            |
*─────────────────────────────────────────────────────────────────────────────*/

// SessionManager owns the cookie store and the sign-in lifecycle
// none → authenticated → cleared.
type SessionManager struct {
	store  *sessions.CookieStore
	name   string
	logger *zap.Logger
}

// NewSessionManager builds a manager whose cookies are signed with
// sessionKey and encrypted with a key derived from it.
//
// In dev (secure=false) an empty key is replaced by a random one, which
// logs everybody out on restart. In production an empty key is an error.
func NewSessionManager(sessionKey, name, domain string, maxAge time.Duration, secure bool, logger *zap.Logger) (*SessionManager, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if sessionKey == "" {
		if secure {
			return nil, fmt.Errorf("session key is empty; provide ≥32 random chars")
		}
		sessionKey = string(securecookie.GenerateRandomKey(32))
		logger.Warn("session key not configured; using an ephemeral random key")
	}
	if len(sessionKey) < 32 {
		logger.Warn("session key is short; 32+ chars recommended",
			zap.Int("length", len(sessionKey)))
	}
	if name == "" {
		name = DefaultSessionName
	}

	blockKey := sha256.Sum256([]byte("sipelita-block:" + sessionKey))
	store := sessions.NewCookieStore([]byte(sessionKey), blockKey[:])
	opts := &sessions.Options{
		Domain:   domain,
		Path:     "/",
		MaxAge:   int(maxAge / time.Second),
		Secure:   secure,
		HttpOnly: true,
	}
	// Secure cookies may cross sites behind HTTPS; plain-http dev stays Lax.
	if secure {
		opts.SameSite = http.SameSiteNoneMode
	} else {
		opts.SameSite = http.SameSiteLaxMode
	}
	store.Options = opts
	store.MaxAge(opts.MaxAge)

	logger.Info("session store initialized",
		zap.String("name", name),
		zap.Bool("secure", secure),
		zap.String("domain", domain),
		zap.Duration("max_age", maxAge))

	return &SessionManager{store: store, name: name, logger: logger}, nil
}

// Name returns the cookie name.
func (sm *SessionManager) Name() string { return sm.name }

func (sm *SessionManager) session(r *http.Request) *sessions.Session {
	// A cookie that fails to decode (rotated key, tampering) yields a fresh
	// session; Get still returns it alongside the error.
	sess, err := sm.store.Get(r, sm.name)
	if err != nil {
		sm.logger.Debug("session decode failed; starting fresh", zap.Error(err))
	}
	return sess
}

// LoadSessionUser injects the user into context if they are logged in.
func (sm *SessionManager) LoadSessionUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := sm.session(r)
		if isAuth, _ := sess.Values[isAuthKey].(bool); isAuth && getString(sess, tokenKey) != "" {
			u := &SessionUser{
				ID:           getString(sess, userIDKey),
				Name:         getString(sess, userNameKey),
				Email:        getString(sess, userEmailKey),
				Role:         getString(sess, userRoleKey),
				ProvinceID:   getString(sess, provinceIDKey),
				ProvinceName: getString(sess, provinceNameKey),
				RegencyID:    getString(sess, regencyIDKey),
				RegencyName:  getString(sess, regencyNameKey),
				Token:        getString(sess, tokenKey),
				SessionID:    getString(sess, sessionIDKey),
			}
			if ts, ok := sess.Values[signedInAtKey].(int64); ok {
				u.SignedInAt = time.Unix(ts, 0)
			}
			r = withUser(r, u)
		}
		next.ServeHTTP(w, r)
	})
}

// SignIn replaces whatever the session held with u and saves it. A new
// SessionID is minted; the stored copy is returned.
func (sm *SessionManager) SignIn(w http.ResponseWriter, r *http.Request, u SessionUser) (*SessionUser, error) {
	if u.Token == "" {
		return nil, errors.New("sign in: empty api token")
	}
	sess := sm.session(r)
	for k := range sess.Values {
		delete(sess.Values, k)
	}
	u.SessionID = uuid.NewString()
	u.SignedInAt = time.Now().UTC().Truncate(time.Second)

	sess.Values[isAuthKey] = true
	sess.Values[sessionIDKey] = u.SessionID
	sess.Values[tokenKey] = u.Token
	sess.Values[userIDKey] = u.ID
	sess.Values[userNameKey] = u.Name
	sess.Values[userEmailKey] = u.Email
	sess.Values[userRoleKey] = u.Role
	sess.Values[provinceIDKey] = u.ProvinceID
	sess.Values[provinceNameKey] = u.ProvinceName
	sess.Values[regencyIDKey] = u.RegencyID
	sess.Values[regencyNameKey] = u.RegencyName
	sess.Values[signedInAtKey] = u.SignedInAt.Unix()
	sess.Options.MaxAge = sm.store.Options.MaxAge

	if err := sess.Save(r, w); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return &u, nil
}

// SignOut clears the session cookie. It is safe to call without a session.
func (sm *SessionManager) SignOut(w http.ResponseWriter, r *http.Request) error {
	sess := sm.session(r)
	for k := range sess.Values {
		delete(sess.Values, k)
	}
	sess.Options.MaxAge = -1
	return sess.Save(r, w)
}

// ExpireIfUnauthorized handles an API 401: the stored credentials are
// cleared and the browser is sent to the login page. It reports whether it
// wrote a response.
func (sm *SessionManager) ExpireIfUnauthorized(w http.ResponseWriter, r *http.Request, err error) bool {
	if !errors.Is(err, apiclient.ErrUnauthorized) {
		return false
	}
	if u, ok := CurrentUser(r); ok {
		sm.logger.Info("api token rejected; signing out",
			zap.String("user_id", u.ID),
			zap.String("session_id", u.SessionID))
	}
	if serr := sm.SignOut(w, r); serr != nil {
		sm.logger.Warn("clear session after 401 failed", zap.Error(serr))
	}
	redirectToLogin(w, r, "/login?expired=1")
	return true
}

/*─────────────────────────────────────────────────────────────────────────────*
| Flash messages                                                             |
*─────────────────────────────────────────────────────────────────────────────*/

// Flash kinds.
const (
	FlashSuccess = "success"
	FlashError   = "error"
	FlashInfo    = "info"
)

// Flash is a one-shot notice shown on the next page render.
type Flash struct {
	Kind    string
	Message string
}

// AddFlash queues a notice for the next render.
func (sm *SessionManager) AddFlash(w http.ResponseWriter, r *http.Request, kind, msg string) {
	sess := sm.session(r)
	sess.AddFlash(kind + "|" + msg)
	if err := sess.Save(r, w); err != nil {
		sm.logger.Warn("save flash failed", zap.Error(err))
	}
}

// PopFlashes returns and clears the queued notices. It must run before the
// response body is written.
func (sm *SessionManager) PopFlashes(w http.ResponseWriter, r *http.Request) []Flash {
	sess := sm.session(r)
	raw := sess.Flashes()
	if len(raw) == 0 {
		return nil
	}
	if err := sess.Save(r, w); err != nil {
		sm.logger.Warn("clear flashes failed", zap.Error(err))
	}
	out := make([]Flash, 0, len(raw))
	for _, v := range raw {
		s, ok := v.(string)
		if !ok {
			continue
		}
		kind, msg, found := strings.Cut(s, "|")
		if !found {
			kind, msg = FlashInfo, s
		}
		out = append(out, Flash{Kind: kind, Message: msg})
	}
	return out
}

// LoadFlashes pops queued notices on full-page GET requests and keeps them
// in the request context for FlashesFrom. HTMX partials leave them queued.
func (sm *SessionManager) LoadFlashes(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet && r.Header.Get("HX-Request") != "true" {
			if fl := sm.PopFlashes(w, r); len(fl) > 0 {
				r = r.WithContext(context.WithValue(r.Context(), flashesKey, fl))
			}
		}
		next.ServeHTTP(w, r)
	})
}

// FlashesFrom returns the notices loaded by LoadFlashes.
func FlashesFrom(r *http.Request) []Flash {
	fl, _ := r.Context().Value(flashesKey).([]Flash)
	return fl
}

/*─────────────────────────────────────────────────────────────────────────────*
| Guards                                                                     |
*─────────────────────────────────────────────────────────────────────────────*/

// RequireSignedIn ensures there is a user in context (set by LoadSessionUser).
// If not signed in:
//   - HTMX: sends HX-Redirect to /login?return=...
//   - HTML: 303 redirect to /login?return=...
//   - API:  401 Unauthorized with a plain error body.
func (sm *SessionManager) RequireSignedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentUser(r); ok {
			next.ServeHTTP(w, r)
			return
		}
		denyUnauthenticated(w, r)
	})
}

// RequireRole ensures there is a user with one of the allowed roles.
// Wrong-role users get /forbidden (403 for non-HTML callers).
func (sm *SessionManager) RequireRole(allowed ...string) func(http.Handler) http.Handler {
	set := make(map[string]struct{}, len(allowed))
	for _, role := range allowed {
		set[strings.ToLower(strings.TrimSpace(role))] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := CurrentUser(r)
			if !ok {
				denyUnauthenticated(w, r)
				return
			}
			if _, has := set[u.RoleLower()]; !has {
				if r.Header.Get("HX-Request") == "true" {
					w.Header().Set("HX-Redirect", "/forbidden")
					w.WriteHeader(http.StatusForbidden)
					return
				}
				if wantsHTML(r) {
					http.Redirect(w, r, "/forbidden", http.StatusSeeOther)
					return
				}
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func denyUnauthenticated(w http.ResponseWriter, r *http.Request) {
	ret := url.QueryEscape(currentURI(r))
	if r.Header.Get("HX-Request") == "true" || wantsHTML(r) {
		redirectToLogin(w, r, "/login?return="+ret)
		return
	}
	http.Error(w, "unauthorized", http.StatusUnauthorized)
}

// redirectToLogin sends HTMX requests a full-page HX-Redirect and everything
// else a 303.
func redirectToLogin(w http.ResponseWriter, r *http.Request, dest string) {
	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("HX-Redirect", dest)
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	http.Redirect(w, r, dest, http.StatusSeeOther)
}

// helpers

func withUser(r *http.Request, u *SessionUser) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentUserKey, u))
}

// getString safely extracts a string from a session value.
func getString(s *sessions.Session, key string) string {
	if v, ok := s.Values[key].(string); ok {
		return v
	}
	return ""
}

func wantsHTML(r *http.Request) bool {
	if r.Header.Get("HX-Request") == "true" {
		return true
	}
	return strings.Contains(r.Header.Get("Accept"), "text/html")
}

func currentURI(r *http.Request) string {
	u := *r.URL
	return u.RequestURI()
}
