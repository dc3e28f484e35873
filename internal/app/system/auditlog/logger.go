// internal/app/system/auditlog/logger.go
package auditlog

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/sipelita/dashboard/internal/app/store/audit"
	"github.com/sipelita/dashboard/internal/app/system/auth"
	"github.com/sipelita/dashboard/internal/app/system/ratelimit"
	"go.uber.org/zap"
)

// Destination modes for Config fields.
const (
	ModeAll = "all" // MongoDB + zap
	ModeDB  = "db"  // MongoDB only
	ModeLog = "log" // zap only
	ModeOff = "off" // disabled
)

// ValidMode reports whether m is a known destination mode.
func ValidMode(m string) bool {
	switch m {
	case ModeAll, ModeDB, ModeLog, ModeOff:
		return true
	}
	return false
}

// Config holds audit logging configuration.
type Config struct {
	// Auth covers login, logout and session expiry.
	Auth string
	// Actions covers uploads, finalizations, checklist and interview edits.
	Actions string
}

// Logger records operator actions to MongoDB (via audit.Store) and to
// structured logs (via zap). A nil *Logger is a no-op.
type Logger struct {
	store  *audit.Store
	zapLog *zap.Logger
	config Config
}

// New creates a new audit Logger. store may be nil when no database is
// configured; events then go to zap only.
func New(store *audit.Store, zapLog *zap.Logger, config Config) *Logger {
	if zapLog == nil {
		zapLog = zap.NewNop()
	}
	return &Logger{
		store:  store,
		zapLog: zapLog,
		config: config,
	}
}

func (l *Logger) logToZap(event audit.Event) {
	fields := []zap.Field{
		zap.Bool("audit", true),
		zap.String("category", event.Category),
		zap.String("event_type", event.EventType),
		zap.Bool("success", event.Success),
		zap.String("ip", event.IP),
	}
	if event.ActorID != "" {
		fields = append(fields, zap.String("actor_id", event.ActorID), zap.String("actor_role", event.ActorRole))
	}
	if event.Year > 0 {
		fields = append(fields, zap.Int("year", event.Year))
	}
	if event.Stage != "" {
		fields = append(fields, zap.String("stage", event.Stage))
	}
	if event.Target != "" {
		fields = append(fields, zap.String("target", event.Target))
	}
	if event.FailureReason != "" {
		fields = append(fields, zap.String("failure_reason", event.FailureReason))
	}
	for k, v := range event.Details {
		fields = append(fields, zap.String("detail_"+k, v))
	}

	if event.Success {
		l.zapLog.Info("audit event", fields...)
	} else {
		l.zapLog.Warn("audit event", fields...)
	}
}

func (l *Logger) mode(category string) string {
	var m string
	switch category {
	case audit.CategoryAuth:
		m = l.config.Auth
	case audit.CategoryPenilaian:
		m = l.config.Actions
	}
	if m == "" {
		return ModeAll
	}
	return m
}

// Log records an audit event according to the category's mode.
func (l *Logger) Log(ctx context.Context, event audit.Event) {
	if l == nil {
		return
	}
	m := l.mode(event.Category)
	if m == ModeOff {
		return
	}
	if m == ModeAll || m == ModeLog {
		l.logToZap(event)
	}
	if (m == ModeAll || m == ModeDB) && l.store != nil {
		if err := l.store.Log(ctx, event); err != nil {
			l.zapLog.Error("failed to store audit event",
				zap.Error(err),
				zap.String("event_type", event.EventType),
			)
		}
	}
}

// fromRequest fills request and actor fields.
func fromRequest(r *http.Request, u *auth.SessionUser, e audit.Event) audit.Event {
	e.IP = ratelimit.ClientIP(r)
	e.UserAgent = r.UserAgent()
	if u != nil {
		e.ActorID = u.ID
		e.ActorName = u.Name
		e.ActorRole = u.RoleLower()
		e.SessionID = u.SessionID
	}
	return e
}

func actor(r *http.Request) *auth.SessionUser {
	u, _ := auth.CurrentUser(r)
	return u
}

// --- Authentication events ---

// LoginSuccess logs a successful sign-in for the freshly stored user.
func (l *Logger) LoginSuccess(ctx context.Context, r *http.Request, u *auth.SessionUser) {
	l.Log(ctx, fromRequest(r, u, audit.Event{
		Category:  audit.CategoryAuth,
		EventType: audit.EventLoginSuccess,
		Success:   true,
		Details:   map[string]string{"email": u.Email},
	}))
}

// LoginFailed logs a sign-in rejected by the API.
func (l *Logger) LoginFailed(ctx context.Context, r *http.Request, email, reason string) {
	l.Log(ctx, fromRequest(r, nil, audit.Event{
		Category:      audit.CategoryAuth,
		EventType:     audit.EventLoginFailed,
		FailureReason: reason,
		Details:       map[string]string{"attempted_email": email},
	}))
}

// LoginFailedRateLimit logs a sign-in refused by the local limiter.
func (l *Logger) LoginFailedRateLimit(ctx context.Context, r *http.Request, email string) {
	l.Log(ctx, fromRequest(r, nil, audit.Event{
		Category:      audit.CategoryAuth,
		EventType:     audit.EventLoginFailedRateLimit,
		FailureReason: "rate limit exceeded",
		Details:       map[string]string{"attempted_email": email},
	}))
}

// Logout logs a sign-out of the current user.
func (l *Logger) Logout(ctx context.Context, r *http.Request) {
	l.Log(ctx, fromRequest(r, actor(r), audit.Event{
		Category:  audit.CategoryAuth,
		EventType: audit.EventLogout,
		Success:   true,
	}))
}

// SessionExpired logs a session cleared because the API rejected its token.
func (l *Logger) SessionExpired(ctx context.Context, r *http.Request) {
	l.Log(ctx, fromRequest(r, actor(r), audit.Event{
		Category:      audit.CategoryAuth,
		EventType:     audit.EventSessionExpired,
		FailureReason: "token rejected by api",
	}))
}

// --- Penilaian events ---

// Action describes one penilaian mutation.
type Action struct {
	Event   string
	Year    int
	Stage   string
	Target  string
	Err     error
	Details map[string]string
}

// Action logs a penilaian mutation performed by the current user. A non-nil
// a.Err marks the event as failed.
func (l *Logger) Action(ctx context.Context, r *http.Request, a Action) {
	e := audit.Event{
		Category:  audit.CategoryPenilaian,
		EventType: a.Event,
		Year:      a.Year,
		Stage:     a.Stage,
		Target:    a.Target,
		Success:   a.Err == nil,
		Details:   a.Details,
	}
	if a.Err != nil {
		e.FailureReason = a.Err.Error()
	}
	l.Log(ctx, fromRequest(r, actor(r), e))
}

// RoundUploaded logs a workbook upload.
func (l *Logger) RoundUploaded(ctx context.Context, r *http.Request, year int, stage, filename string, err error) {
	l.Action(ctx, r, Action{Event: audit.EventRoundUploaded, Year: year, Stage: stage, Target: filename, Err: err})
}

// RoundFinalized logs the finalization of an upload round.
func (l *Logger) RoundFinalized(ctx context.Context, r *http.Request, year int, stage string, roundID int64, err error) {
	l.Action(ctx, r, Action{Event: audit.EventRoundFinalized, Year: year, Stage: stage, Target: "round " + strconv.FormatInt(roundID, 10), Err: err})
}

// Validation1Finalized logs the finalization of Validasi 1.
func (l *Logger) Validation1Finalized(ctx context.Context, r *http.Request, year int, err error) {
	l.Action(ctx, r, Action{Event: audit.EventValidasi1Finalized, Year: year, Stage: "validasi1", Err: err})
}

// ChecklistUpdated logs a Validasi 2 criteria change for one agency.
func (l *Logger) ChecklistUpdated(ctx context.Context, r *http.Request, year int, rowID int64, wtp, kasusHukum bool, err error) {
	l.Action(ctx, r, Action{
		Event:  audit.EventChecklistUpdated,
		Year:   year,
		Stage:  "validasi2",
		Target: "row " + strconv.FormatInt(rowID, 10),
		Err:    err,
		Details: map[string]string{
			"kriteria_wtp":         strconv.FormatBool(wtp),
			"kriteria_kasus_hukum": strconv.FormatBool(kasusHukum),
		},
	})
}

// Validation2Finalized logs the finalization of Validasi 2.
func (l *Logger) Validation2Finalized(ctx context.Context, r *http.Request, year int, err error) {
	l.Action(ctx, r, Action{Event: audit.EventValidasi2Finalized, Year: year, Stage: "validasi2", Err: err})
}

// InterviewsCreated logs the ranking finalization that seeds the interview roster.
func (l *Logger) InterviewsCreated(ctx context.Context, r *http.Request, year, top int, err error) {
	l.Action(ctx, r, Action{Event: audit.EventInterviewsCreated, Year: year, Stage: "peringkat", Target: fmt.Sprintf("top %d", top), Err: err})
}

// InterviewScored logs an interview score entry.
func (l *Logger) InterviewScored(ctx context.Context, r *http.Request, year int, rowID int64, score float64, err error) {
	l.Action(ctx, r, Action{
		Event:   audit.EventInterviewScored,
		Year:    year,
		Stage:   "wawancara",
		Target:  "row " + strconv.FormatInt(rowID, 10),
		Err:     err,
		Details: map[string]string{"nilai_wawancara": strconv.FormatFloat(score, 'f', -1, 64)},
	})
}

// InterviewsFinalized logs the finalization of the interview stage.
func (l *Logger) InterviewsFinalized(ctx context.Context, r *http.Request, year int, err error) {
	l.Action(ctx, r, Action{Event: audit.EventInterviewsFinalized, Year: year, Stage: "wawancara", Err: err})
}

// Exported logs a table export.
func (l *Logger) Exported(ctx context.Context, r *http.Request, year int, stage, target string) {
	l.Action(ctx, r, Action{Event: audit.EventExport, Year: year, Stage: stage, Target: target})
}
