// internal/app/features/penilaian/page.go
package penilaian

import (
	"context"
	"net/http"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	penilaianstore "github.com/sipelita/dashboard/internal/app/store/penilaian"
	"github.com/sipelita/dashboard/internal/app/system/apiclient"
	"github.com/sipelita/dashboard/internal/app/system/latest"
	"github.com/sipelita/dashboard/internal/app/system/scoring"
	"github.com/sipelita/dashboard/internal/app/system/settle"
	"github.com/sipelita/dashboard/internal/app/system/stages"
	"github.com/sipelita/dashboard/internal/app/system/timeouts"
	"github.com/sipelita/dashboard/internal/app/system/viewdata"
	"github.com/sipelita/dashboard/internal/domain/models"
	"go.uber.org/zap"
)

type pageData struct {
	viewdata.BaseVM

	Tab       stages.Stage
	TabLabel  string
	Tabs      []TabLink
	ReturnURL string

	Filters *FilterBar

	ProgressCards []scoring.ProgressCard
	ProgressError bool

	Rounds    *RoundsView
	V1        *Validation1View
	V2        *Validation2View
	Ranking   *RankingView
	Interview *InterviewView
}

// tabLoader fills the tab-specific part of data.
type tabLoader func(ctx context.Context, r *http.Request, store *penilaianstore.Store, data *pageData) error

func (h *Handler) loaderFor(tab stages.Stage) tabLoader {
	switch tab {
	case stages.Validasi1:
		return h.loadValidation1
	case stages.Validasi2:
		return h.loadValidation2
	case stages.Peringkat:
		return h.loadRanking
	case stages.Wawancara:
		return h.loadInterviews
	}
	return h.loadRounds
}

// ServePage handles GET /pusdatin/penilaian. The progress cards and the
// active tab load concurrently; a failure in one leaves the other intact.
// Panel swaps carry HX-Target and are dropped with 204 once a newer
// selection has been made in the same session.
func (h *Handler) ServePage(w http.ResponseWriter, r *http.Request) {
	tab := stages.Parse(query.Get(r, "tab"))
	partial := r.Header.Get("HX-Request") != "" && r.Header.Get("HX-Target") == panelTarget

	var ticket latest.Ticket
	if partial {
		ticket = h.Latest.Begin(sessionID(r)+"|penilaian", r.URL.RawQuery)
		defer ticket.Done()
	}

	data := pageData{
		BaseVM:   viewdata.NewBaseVM(r, "Penilaian", "/pusdatin"),
		Tab:      tab,
		TabLabel: tab.Label(),
	}
	data.Tabs = Tabs(tab, data.Year)
	data.ReturnURL = tabURL(tab, data.Year, r.URL.Query())

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "penilaian "+string(tab))
	defer cancel()

	store := penilaianstore.New(h.client(r))
	load := h.loaderFor(tab)
	var progress models.ProgressStats
	results := settle.All(ctx,
		settle.Task{Name: "progress", Run: func(ctx context.Context) (err error) {
			progress, err = store.ProgressStats(ctx, data.Year)
			return err
		}},
		settle.Task{Name: string(tab), Run: func(ctx context.Context) error {
			return load(ctx, r, store, &data)
		}},
	)

	if partial && !ticket.Current() {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	data.ProgressCards = scoring.ProgressCards(progress)
	for _, res := range settle.Failed(results) {
		if h.SessionMgr.ExpireIfUnauthorized(w, r, res.Err) {
			h.AuditLog.SessionExpired(r.Context(), r)
			return
		}
		h.Log.Warn("penilaian load failed",
			zap.String("part", res.Name),
			zap.Int("year", data.Year),
			zap.Error(res.Err))
		if res.Name == "progress" {
			data.ProgressError = true
			data.ProgressCards = scoring.LoadingCards("Gagal memuat progres")
			continue
		}
		data.SetError(apiclient.UserMessage(res.Err, msgLoadFailed))
	}

	if partial {
		templates.RenderSnippet(w, "penilaian_panel", data)
		return
	}
	templates.Render(w, r, "penilaian_page", data)
}
