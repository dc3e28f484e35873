// internal/app/features/penilaian/validasi.go
package penilaian

import (
	"context"
	"net/http"
	"net/url"

	penilaianstore "github.com/sipelita/dashboard/internal/app/store/penilaian"
	"github.com/sipelita/dashboard/internal/app/system/auth"
	"github.com/sipelita/dashboard/internal/app/system/paging"
	"github.com/sipelita/dashboard/internal/app/system/rowfilter"
	"github.com/sipelita/dashboard/internal/app/system/settle"
	"github.com/sipelita/dashboard/internal/app/system/stages"
	"github.com/sipelita/dashboard/internal/app/system/timeouts"
	"github.com/sipelita/dashboard/internal/app/system/viewdata"
	"github.com/sipelita/dashboard/internal/domain/models"
)

const (
	msgValidation1Done = "Validasi 1 berhasil difinalisasi"
	msgValidation2Done = "Validasi 2 berhasil difinalisasi"
	msgNoRow           = "Data tidak ditemukan."
)

// Validation1StatusOptions are the result filter choices of Validasi 1.
func Validation1StatusOptions(selected string) []Option {
	return markSelected([]Option{
		{Value: rowfilter.AnyValue, Label: "Semua Status"},
		{Value: models.ResultLulus, Label: "Lulus"},
		{Value: models.ResultTidakLulus, Label: "Tidak Lulus"},
	}, selected)
}

// Validation2StatusOptions are the status filter choices of Validasi 2.
func Validation2StatusOptions(selected string) []Option {
	return markSelected([]Option{
		{Value: rowfilter.AnyValue, Label: "Semua Status"},
		{Value: models.ValidationLolos, Label: "Lolos"},
		{Value: models.ValidationTidakLolos, Label: "Tidak Lolos"},
		{Value: models.ValidationPending, Label: "Pending"},
	}, selected)
}

// withSubmissions runs fetch alongside the submission list the filters join
// against.
func withSubmissions(ctx context.Context, store *penilaianstore.Store, year int, fetch func(context.Context) error) ([]models.Submission, error) {
	var subs []models.Submission
	results := settle.All(ctx,
		settle.Task{Name: "rows", Run: fetch},
		settle.Task{Name: "submissions", Run: func(ctx context.Context) (err error) {
			subs, err = store.Submissions(ctx, year)
			return err
		}},
	)
	if failed := settle.Failed(results); len(failed) > 0 {
		return subs, failed[0].Err
	}
	return subs, nil
}

func exportURL(target stages.Stage, year int, extra url.Values) string {
	q := tabQuery(target, year, extra)
	q.Del("tab")
	q.Del("per_page")
	q.Set("target", string(target))
	return basePath + "/export?" + q.Encode()
}

func (h *Handler) loadValidation1(ctx context.Context, r *http.Request, store *penilaianstore.Store, data *pageData) error {
	year := data.Year
	c := rowfilter.FromRequest(r, "")
	perPage := paging.ParsePerPage(r, h.Cfg.DefaultPerPage)
	view := &Validation1View{
		Filter:    c,
		Types:     TypeOptions(c.Type),
		Statuses:  Validation1StatusOptions(c.Status),
		PerPage:   PerPageOptions(perPage),
		ExportURL: exportURL(stages.Validasi1, year, filterValues(c, perPage)),
	}
	data.V1 = view
	data.Filters = &FilterBar{Tab: stages.Validasi1, Year: year, Types: view.Types, Statuses: view.Statuses, PerPage: view.PerPage}

	var rows []models.Validation1Row
	subs, err := withSubmissions(ctx, store, year, func(ctx context.Context) (err error) {
		rows, err = store.Validation1(ctx, year)
		return err
	})
	view.Regions = RegionOptions(h.regionNames(ctx, r, subs), c.Region)
	data.Filters.Regions = view.Regions
	view.Counts = CountValidation1(rows)
	view.Finalized = stages.Validation1Finalized(rows)
	view.CanFinalize = len(rows) > 0 && !view.Finalized

	filtered := filterValidation1(rows, subs, c)
	view.Rows = paging.Paginate(Validation1Lines(filtered), perPage, paging.ParsePage(r))
	view.Pager = pager(view.Rows, stages.Validasi1, year, c, perPage)
	return err
}

func filterValidation1(rows []models.Validation1Row, subs []models.Submission, c rowfilter.Criteria) []models.Validation1Row {
	idx := rowfilter.NewIndex(subs)
	return rowfilter.Filter(rows, c,
		rowfilter.By(idx, func(v models.Validation1Row) int64 { return v.IDDinas }),
		func(v models.Validation1Row) string { return v.Result() })
}

func (h *Handler) loadValidation2(ctx context.Context, r *http.Request, store *penilaianstore.Store, data *pageData) error {
	year := data.Year
	c := rowfilter.FromRequest(r, "")
	perPage := paging.ParsePerPage(r, h.Cfg.DefaultPerPage)
	view := &Validation2View{
		Filter:    c,
		Types:     TypeOptions(c.Type),
		Statuses:  Validation2StatusOptions(c.Status),
		PerPage:   PerPageOptions(perPage),
		ExportURL: exportURL(stages.Validasi2, year, filterValues(c, perPage)),
	}
	data.V2 = view
	data.Filters = &FilterBar{Tab: stages.Validasi2, Year: year, Types: view.Types, Statuses: view.Statuses, PerPage: view.PerPage}

	var rows []models.Validation2Row
	subs, err := withSubmissions(ctx, store, year, func(ctx context.Context) (err error) {
		rows, err = store.Validation2(ctx, year)
		return err
	})
	view.Regions = RegionOptions(h.regionNames(ctx, r, subs), c.Region)
	data.Filters.Regions = view.Regions
	view.Counts = CountValidation2(rows)
	view.Finalized = stages.Validation2Finalized(rows)
	view.CanFinalize = len(rows) > 0 && !view.Finalized

	filtered := filterValidation2(rows, subs, c)
	view.Rows = paging.Paginate(Validation2Lines(filtered), perPage, paging.ParsePage(r))
	view.Pager = pager(view.Rows, stages.Validasi2, year, c, perPage)
	return err
}

func filterValidation2(rows []models.Validation2Row, subs []models.Submission, c rowfilter.Criteria) []models.Validation2Row {
	idx := rowfilter.NewIndex(subs)
	return rowfilter.Filter(rows, c,
		rowfilter.By(idx, func(v models.Validation2Row) int64 { return v.IDDinas }),
		func(v models.Validation2Row) string { return v.StatusValidasi })
}

// HandleFinalizeValidation1 handles POST /pusdatin/penilaian/validasi1/finalize.
// The rows are re-read first; a finalized year is never sent again.
func (h *Handler) HandleFinalizeValidation1(w http.ResponseWriter, r *http.Request) {
	release, ok := h.acquire(w, r, "finalize", string(stages.Validasi1))
	if !ok {
		return
	}
	defer release()

	year := viewdata.SelectedYear(r)
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "validasi1 finalize")
	defer cancel()

	store := penilaianstore.New(h.client(r))
	rows, err := store.Validation1(ctx, year)
	if err != nil {
		h.failed(w, r, "validasi1 finalize", err, msgFinalizeFailed)
		return
	}
	if stages.Validation1Finalized(rows) {
		h.finish(w, r, auth.FlashInfo, msgLocked)
		return
	}

	err = store.FinalizeValidation1(ctx, year)
	h.AuditLog.Validation1Finalized(ctx, r, year, err)
	if err != nil {
		h.failed(w, r, "validasi1 finalize", err, msgFinalizeFailed)
		return
	}
	h.finish(w, r, auth.FlashSuccess, msgValidation1Done)
}

// HandleChecklist handles POST /pusdatin/penilaian/validasi2/checklist. Both
// criteria are always sent; the row set is re-read so a finalized year is
// refused before the API is touched.
func (h *Handler) HandleChecklist(w http.ResponseWriter, r *http.Request) {
	rowID := formInt64(r, "id")
	if rowID <= 0 {
		h.finish(w, r, auth.FlashError, msgNoRow)
		return
	}
	update := models.ChecklistUpdate{
		KriteriaWTP:        formBool(r, "wtp"),
		KriteriaKasusHukum: formBool(r, "kasus"),
	}

	release, ok := h.acquire(w, r, "checklist", r.FormValue("id"))
	if !ok {
		return
	}
	defer release()

	year := viewdata.SelectedYear(r)
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "validasi2 checklist")
	defer cancel()

	store := penilaianstore.New(h.client(r))
	rows, err := store.Validation2(ctx, year)
	if err != nil {
		h.failed(w, r, "validasi2 checklist", err, msgChecklistFailed)
		return
	}
	if stages.Validation2Finalized(rows) {
		h.finish(w, r, auth.FlashInfo, msgLocked)
		return
	}
	if !hasValidation2Row(rows, rowID) {
		h.finish(w, r, auth.FlashError, msgNoRow)
		return
	}

	err = store.UpdateChecklist(ctx, rowID, update)
	h.AuditLog.ChecklistUpdated(ctx, r, year, rowID, update.KriteriaWTP, update.KriteriaKasusHukum, err)
	if err != nil {
		h.failed(w, r, "validasi2 checklist", err, msgChecklistFailed)
		return
	}
	h.finish(w, r, "", "")
}

func hasValidation2Row(rows []models.Validation2Row, id int64) bool {
	for _, row := range rows {
		if row.ID == id {
			return true
		}
	}
	return false
}

// HandleFinalizeValidation2 handles POST /pusdatin/penilaian/validasi2/finalize.
// A finalized year is refused before the API is touched.
func (h *Handler) HandleFinalizeValidation2(w http.ResponseWriter, r *http.Request) {
	release, ok := h.acquire(w, r, "finalize", string(stages.Validasi2))
	if !ok {
		return
	}
	defer release()

	year := viewdata.SelectedYear(r)
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "validasi2 finalize")
	defer cancel()

	store := penilaianstore.New(h.client(r))
	rows, err := store.Validation2(ctx, year)
	if err != nil {
		h.failed(w, r, "validasi2 finalize", err, msgFinalizeFailed)
		return
	}
	if stages.Validation2Finalized(rows) {
		h.finish(w, r, auth.FlashInfo, msgLocked)
		return
	}

	err = store.FinalizeValidation2(ctx, year)
	h.AuditLog.Validation2Finalized(ctx, r, year, err)
	if err != nil {
		h.failed(w, r, "validasi2 finalize", err, msgFinalizeFailed)
		return
	}
	h.finish(w, r, auth.FlashSuccess, msgValidation2Done)
}
