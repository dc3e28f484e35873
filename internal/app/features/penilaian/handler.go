// internal/app/features/penilaian/handler.go
package penilaian

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	uierrors "github.com/sipelita/dashboard/internal/app/features/errors"
	"github.com/sipelita/dashboard/internal/app/store/wilayah"
	"github.com/sipelita/dashboard/internal/app/system/apiclient"
	"github.com/sipelita/dashboard/internal/app/system/auditlog"
	"github.com/sipelita/dashboard/internal/app/system/auth"
	"github.com/sipelita/dashboard/internal/app/system/inflight"
	"github.com/sipelita/dashboard/internal/app/system/latest"
	"github.com/sipelita/dashboard/internal/app/system/navigation"
	"github.com/sipelita/dashboard/internal/app/system/paging"
	"github.com/sipelita/dashboard/internal/app/system/rowfilter"
	"github.com/sipelita/dashboard/internal/app/system/scoring"
	"github.com/sipelita/dashboard/internal/domain/models"
	"go.uber.org/zap"
)

// Operator-facing notices.
const (
	msgBusy             = "Permintaan sebelumnya masih diproses. Silakan tunggu."
	msgLocked           = "Data sudah difinalisasi, tidak dapat diubah"
	msgLoadFailed       = "Gagal memuat data penilaian."
	msgUploadOK         = "File berhasil diupload dan sedang diproses"
	msgUploadFailed     = "Gagal mengupload file"
	msgUploadTooLarge   = "Ukuran file melebihi batas yang diizinkan."
	msgFinalizeFailed   = "Gagal memfinalisasi"
	msgTemplateFailed   = "Gagal mengunduh template"
	msgChecklistFailed  = "Gagal mengupdate checklist"
	msgInterviewsOK     = "Penetapan peringkat berhasil difinalisasi. Data peserta wawancara telah dibuat."
	msgInterviewsFailed = "Gagal membuat data wawancara"
	msgScoreOK          = "Nilai wawancara berhasil disimpan"
	msgScoreFailed      = "Gagal mengupdate nilai"
	msgInterviewsDone   = "Hasil wawancara berhasil difinalisasi. Nilai akhir telah dihitung."
	msgExportFailed     = "Gagal mengekspor data"
)

// Config carries the tunables of the assessment page.
type Config struct {
	PassThreshold  float64
	DefaultPerPage paging.PerPage
	UploadMaxBytes int64
}

// Handler serves the pusdatin assessment page and its mutations.
type Handler struct {
	Log        *zap.Logger
	SessionMgr *auth.SessionManager
	API        *apiclient.Factory
	ErrLog     *uierrors.ErrorLogger
	AuditLog   *auditlog.Logger
	Inflight   *inflight.Guard
	Latest     *latest.Tracker
	Cfg        Config
}

func NewHandler(sm *auth.SessionManager, api *apiclient.Factory, errLog *uierrors.ErrorLogger, audit *auditlog.Logger, guard *inflight.Guard, tracker *latest.Tracker, cfg Config, logger *zap.Logger) *Handler {
	if cfg.PassThreshold <= 0 {
		cfg.PassThreshold = scoring.DefaultPassThreshold
	}
	if cfg.UploadMaxBytes <= 0 {
		cfg.UploadMaxBytes = 20 << 20
	}
	if guard == nil {
		guard = inflight.New()
	}
	if tracker == nil {
		tracker = latest.New()
	}
	return &Handler{
		Log:        logger,
		SessionMgr: sm,
		API:        api,
		ErrLog:     errLog,
		AuditLog:   audit,
		Inflight:   guard,
		Latest:     tracker,
		Cfg:        cfg,
	}
}

// regionNames feeds the province filter: the reference list when the API
// serves one, else the provinces present in subs.
func (h *Handler) regionNames(ctx context.Context, r *http.Request, subs []models.Submission) []string {
	ps, err := wilayah.New(h.client(r)).Provinces(ctx)
	if err != nil {
		h.Log.Debug("province list unavailable", zap.Error(err))
	}
	if names := wilayah.ProvinceNames(ps); len(names) > 0 {
		return names
	}
	return rowfilter.Regions(subs)
}

func (h *Handler) client(r *http.Request) *apiclient.Client {
	u, _ := auth.CurrentUser(r)
	if u == nil {
		return h.API.Anonymous()
	}
	return h.API.WithToken(u.Token)
}

func sessionID(r *http.Request) string {
	if u, ok := auth.CurrentUser(r); ok {
		return u.SessionID
	}
	return ""
}

/*─────────────────────────────────────────────────────────────────────────────*
| Mutation plumbing                                                           |
*─────────────────────────────────────────────────────────────────────────────*/

// acquire takes the in-flight slot of control for this session. A duplicate
// submit gets 409 and a flash; HTMX is pointed back at the tab.
func (h *Handler) acquire(w http.ResponseWriter, r *http.Request, control ...string) (func(), bool) {
	release, ok := h.Inflight.TryAcquire(inflight.Key(sessionID(r), control...))
	if ok {
		return release, true
	}
	h.Log.Info("duplicate submit rejected",
		zap.String("control", strings.Join(control, "/")),
		zap.String("session_id", sessionID(r)))
	h.SessionMgr.AddFlash(w, r, auth.FlashInfo, msgBusy)
	if r.Header.Get("HX-Request") != "" {
		w.Header().Set("HX-Redirect", navigation.SafeBackURL(r, navigation.PenilaianBackURL))
	}
	http.Error(w, msgBusy, http.StatusConflict)
	return release, false
}

// finish flashes msg and sends the browser back to the tab, which refetches
// everything the mutation touched.
func (h *Handler) finish(w http.ResponseWriter, r *http.Request, kind, msg string) {
	if msg != "" {
		h.SessionMgr.AddFlash(w, r, kind, msg)
	}
	dest := navigation.SafeBackURL(r, navigation.PenilaianBackURL)
	if r.Header.Get("HX-Request") != "" {
		w.Header().Set("HX-Redirect", dest)
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, dest, http.StatusSeeOther)
}

// failed reports a mutation error. A rejected token ends the session;
// anything else is flashed with the API's message or fallback.
func (h *Handler) failed(w http.ResponseWriter, r *http.Request, op string, err error, fallback string) {
	if h.SessionMgr.ExpireIfUnauthorized(w, r, err) {
		h.AuditLog.SessionExpired(r.Context(), r)
		return
	}
	h.Log.Warn(op+" failed", zap.Error(err))
	h.finish(w, r, auth.FlashError, apiclient.UserMessage(err, fallback))
}

func formInt(r *http.Request, key string) int {
	n, _ := strconv.Atoi(strings.TrimSpace(r.FormValue(key)))
	return n
}

func formInt64(r *http.Request, key string) int64 {
	n, _ := strconv.ParseInt(strings.TrimSpace(r.FormValue(key)), 10, 64)
	return n
}

// formBool reads a checkbox value.
func formBool(r *http.Request, key string) bool {
	switch strings.ToLower(strings.TrimSpace(r.FormValue(key))) {
	case "1", "on", "true", "yes":
		return true
	}
	return false
}
