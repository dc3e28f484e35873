// internal/app/features/hasil/result.go
package hasil

import (
	"context"
	"net/http"
	"time"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/sipelita/dashboard/internal/app/store/pengumuman"
	"github.com/sipelita/dashboard/internal/app/system/apiclient"
	"github.com/sipelita/dashboard/internal/app/system/auth"
	"github.com/sipelita/dashboard/internal/app/system/latest"
	"github.com/sipelita/dashboard/internal/app/system/settle"
	"github.com/sipelita/dashboard/internal/app/system/timeouts"
	"github.com/sipelita/dashboard/internal/app/system/viewdata"
	"github.com/sipelita/dashboard/internal/domain/models"
	"go.uber.org/zap"
)

const (
	panelTarget    = "hasil-panel"
	msgNotYet      = "Hasil penilaian untuk tahap ini belum tersedia. Silakan tunggu hingga tahap selesai."
	msgInProgress  = "Tahap penilaian ini sedang berlangsung. Hasil akhir akan tersedia setelah tahap selesai."
	msgLoadFailure = "Gagal memuat hasil penilaian."
)

type overviewData struct {
	viewdata.BaseVM
	Timeline      []TimelineRow
	ActiveLabel   string
	Open          bool
	Note          string
	TimelineError bool
}

type resultData struct {
	viewdata.BaseVM
	Tab        string
	TabLabel   string
	Tabs       []Tab
	Timeline   []TimelineRow
	StageLabel string

	Available  bool
	InProgress bool
	Result     *models.StageResult
	Tone       string
	Notice     string
	Table      Table
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /dlh – overview                                                         |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeOverview(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "dlh timeline")
	defer cancel()

	data := overviewData{BaseVM: viewdata.NewBaseVM(r, "Dashboard DLH", "/dlh")}

	tl, err := pengumuman.New(h.client(r)).Timeline(ctx)
	if err != nil {
		if h.SessionMgr.ExpireIfUnauthorized(w, r, err) {
			return
		}
		h.Log.Warn("dlh timeline failed", zap.Error(err))
		data.TimelineError = true
		data.SetError(apiclient.UserMessage(err, msgLoadFailure))
	}
	data.Timeline = TimelineRows(tl)
	data.Open = tl.PengumumanTerbuka
	data.Note = tl.Keterangan
	if tl.TahapAktif != "" {
		data.ActiveLabel = pengumuman.TahapLabel(tl.TahapAktif)
	}

	templates.Render(w, r, "dlh_overview", data)
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /dlh/hasil?tab=                                                         |
*─────────────────────────────────────────────────────────────────────────────*/

// ServeResult shows the announced result of one stage. Tab switches arrive
// as HTMX requests targeting the panel; a switch superseded by a newer one
// from the same session is answered with 204 so it cannot overwrite it.
func (h *Handler) ServeResult(w http.ResponseWriter, r *http.Request) {
	tab := pengumuman.ParseTahap(query.Get(r, "tab"))

	var ticket latest.Ticket
	if u, ok := auth.CurrentUser(r); ok && h.Latest != nil {
		ticket = h.Latest.Begin(u.SessionID+"|dlh-hasil", tab)
		defer ticket.Done()
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "dlh result")
	defer cancel()

	data := resultData{
		BaseVM:   viewdata.NewBaseVM(r, "Hasil Penilaian", "/dlh"),
		Tab:      tab,
		TabLabel: pengumuman.TahapLabel(tab),
		Tabs:     Tabs(tab),
	}

	store := pengumuman.New(h.client(r))
	var (
		tl    models.Timeline
		ann   models.Announcement
		slhd  models.DetailSLHD
		award models.DetailPenghargaan
	)
	tasks := []settle.Task{{Name: "timeline", Run: func(ctx context.Context) (err error) {
		tl, err = store.Timeline(ctx)
		if err != nil {
			return err
		}
		ann, err = store.Result(ctx, TimelineYear(tl, time.Now()), tab)
		return err
	}}}
	switch tab {
	case pengumuman.TahapSLHD:
		tasks = append(tasks, settle.Task{Name: "detail-slhd", Run: func(ctx context.Context) (err error) {
			slhd, err = store.DetailSLHD(ctx)
			return err
		}})
	case pengumuman.TahapPenghargaan:
		tasks = append(tasks, settle.Task{Name: "detail-penghargaan", Run: func(ctx context.Context) (err error) {
			award, err = store.DetailPenghargaan(ctx)
			return err
		}})
	}

	results := settle.All(ctx, tasks...)
	if !ticket.Current() {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	for _, res := range settle.Failed(results) {
		if h.SessionMgr.ExpireIfUnauthorized(w, r, res.Err) {
			return
		}
		h.Log.Warn("dlh result fetch failed",
			zap.String("part", res.Name), zap.String("tab", tab), zap.Error(res.Err))
		data.SetError(apiclient.UserMessage(res.Err, msgLoadFailure))
	}

	data.Timeline = TimelineRows(tl)
	for _, row := range data.Timeline {
		if row.Tahap == tab {
			data.StageLabel = row.Label
		}
	}
	data.Available = ann.Available && ann.Hasil != nil
	data.Result = ann.Hasil
	data.InProgress = tl.TahapAktif != "" && tl.TahapAktif == tab
	switch {
	case data.InProgress:
		data.Notice = msgInProgress
	case !data.Available:
		data.Notice = msgNotYet
	}
	if data.Result != nil {
		data.Tone = StatusTone(data.Result.Status, data.InProgress)
	}
	data.Table = BuildTable(tab, data.Result, &slhd, &award)

	if r.Header.Get("HX-Request") != "" && r.Header.Get("HX-Target") == panelTarget {
		templates.RenderSnippet(w, "hasil_panel", data)
		return
	}
	templates.Render(w, r, "dlh_hasil", data)
}
