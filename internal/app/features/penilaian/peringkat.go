// internal/app/features/penilaian/peringkat.go
package penilaian

import (
	"context"
	"net/http"
	"net/url"

	"github.com/dalemusser/waffle/pantry/query"
	penilaianstore "github.com/sipelita/dashboard/internal/app/store/penilaian"
	"github.com/sipelita/dashboard/internal/app/system/auth"
	"github.com/sipelita/dashboard/internal/app/system/inputval"
	"github.com/sipelita/dashboard/internal/app/system/stages"
	"github.com/sipelita/dashboard/internal/app/system/timeouts"
	"github.com/sipelita/dashboard/internal/app/system/viewdata"
)

func rankingSelection(r *http.Request) (stages.Category, stages.Kind) {
	return stages.ParseCategory(query.Get(r, "kategori")), stages.ParseKind(query.Get(r, "jenis"))
}

func (h *Handler) loadRanking(ctx context.Context, r *http.Request, store *penilaianstore.Store, data *pageData) error {
	category, kind := rankingSelection(r)
	view := &RankingView{
		Category:   category,
		Kind:       kind,
		Categories: CategoryOptions(string(category), false),
		Kinds:      KindOptions(kind),
		TopN:       kind.BadgeTop(),
		ExportURL: exportURL(stages.Peringkat, data.Year, url.Values{
			"kategori": {string(category)},
			"jenis":    {string(kind)},
		}),
	}
	data.Ranking = view

	rows, err := store.Ranked(ctx, data.Year, category, kind.RequestTop())
	if err != nil {
		return err
	}
	view.Rows = RankLines(rows, view.TopN)
	view.CanCreate = len(rows) > 0
	return nil
}

// HandleCreateInterviews handles POST /pusdatin/penilaian/peringkat/finalize.
// It closes the ranking and seeds the interview roster with the top agencies
// of every category.
func (h *Handler) HandleCreateInterviews(w http.ResponseWriter, r *http.Request) {
	year := viewdata.SelectedYear(r)
	top := formInt(r, "top")
	if top == 0 {
		top = stages.ParseKind(r.FormValue("jenis")).BadgeTop()
	}
	if err := inputval.Check(inputval.Ranking{Year: year, Top: top}); err != nil {
		h.finish(w, r, auth.FlashError, inputval.Message(err))
		return
	}

	release, ok := h.acquire(w, r, "finalize", string(stages.Peringkat))
	if !ok {
		return
	}
	defer release()

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "create interviews")
	defer cancel()

	err := penilaianstore.New(h.client(r)).CreateInterviews(ctx, year, top)
	h.AuditLog.InterviewsCreated(ctx, r, year, top, err)
	if err != nil {
		h.failed(w, r, "create interviews", err, msgInterviewsFailed)
		return
	}
	h.finish(w, r, auth.FlashSuccess, msgInterviewsOK)
}
