// internal/app/features/penilaian/wawancara.go
package penilaian

import (
	"context"
	"net/http"
	"strconv"

	"github.com/dalemusser/waffle/pantry/query"
	penilaianstore "github.com/sipelita/dashboard/internal/app/store/penilaian"
	"github.com/sipelita/dashboard/internal/app/system/auth"
	"github.com/sipelita/dashboard/internal/app/system/inputval"
	"github.com/sipelita/dashboard/internal/app/system/scoring"
	"github.com/sipelita/dashboard/internal/app/system/stages"
	"github.com/sipelita/dashboard/internal/app/system/timeouts"
	"github.com/sipelita/dashboard/internal/app/system/viewdata"
	"github.com/sipelita/dashboard/internal/domain/models"
)

// InterviewLines lists the roster.
func InterviewLines(rows []models.InterviewRow) []InterviewLine {
	out := make([]InterviewLine, 0, len(rows))
	for _, row := range rows {
		out = append(out, InterviewLine{
			ID:       row.ID,
			Name:     row.NamaDinas,
			Category: stages.ParseCategory(row.Kategori).Label(),
			Province: row.Provinsi,
			Score:    scoring.Format(row.NilaiWawancara),
		})
	}
	return out
}

// AgencyOptions lists the roster agencies of category for the picker.
func AgencyOptions(rows []models.InterviewRow, category string, selected int64) []Option {
	opts := []Option{{Value: "", Label: "-- Pilih DLH --", Selected: selected == 0}}
	for _, row := range rows {
		if row.Kategori != category {
			continue
		}
		opts = append(opts, Option{
			Value:    strconv.FormatInt(row.ID, 10),
			Label:    row.NamaDinas,
			Selected: row.ID == selected,
		})
	}
	return opts
}

func findInterview(rows []models.InterviewRow, id int64) (models.InterviewRow, bool) {
	for _, row := range rows {
		if row.ID == id {
			return row, true
		}
	}
	return models.InterviewRow{}, false
}

func (h *Handler) loadInterviews(ctx context.Context, r *http.Request, store *penilaianstore.Store, data *pageData) error {
	category := query.Get(r, "kategori")
	selected := parseID(query.Get(r, "dinas"))
	view := &InterviewView{
		Category:   category,
		Categories: CategoryOptions(category, true),
	}
	data.Interview = view

	rows, err := store.Interviews(ctx, data.Year)
	if err != nil {
		return err
	}
	view.Roster = InterviewLines(rows)
	view.Agencies = AgencyOptions(rows, category, selected)
	view.Finalized = stages.InterviewsFinalized(rows)
	view.CanFinalize = len(rows) > 0 && !view.Finalized

	row, ok := findInterview(rows, selected)
	if !ok || category == "" {
		return nil
	}
	recap, loaded, err := store.Recap(ctx, data.Year, row.IDDinas)
	detail := NewInterviewDetail(row, recap, loaded && err == nil)
	view.Selected = &detail
	return err
}

// HandleScore handles POST /pusdatin/penilaian/wawancara/score.
func (h *Handler) HandleScore(w http.ResponseWriter, r *http.Request) {
	rowID := formInt64(r, "id")
	score, err := inputval.ParseScore(r.FormValue("score"))
	if err != nil {
		h.finish(w, r, auth.FlashError, err.Error())
		return
	}
	if err := inputval.Check(inputval.InterviewScore{ID: rowID, Score: score}); err != nil {
		h.finish(w, r, auth.FlashError, inputval.Message(err))
		return
	}

	release, ok := h.acquire(w, r, "score", r.FormValue("id"))
	if !ok {
		return
	}
	defer release()

	year := viewdata.SelectedYear(r)
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "interview score")
	defer cancel()

	store := penilaianstore.New(h.client(r))
	rows, err := store.Interviews(ctx, year)
	if err != nil {
		h.failed(w, r, "interview score", err, msgScoreFailed)
		return
	}
	if stages.InterviewsFinalized(rows) {
		h.finish(w, r, auth.FlashInfo, msgLocked)
		return
	}
	if _, found := findInterview(rows, rowID); !found {
		h.finish(w, r, auth.FlashError, msgNoRow)
		return
	}

	err = store.UpdateInterviewScore(ctx, rowID, score)
	h.AuditLog.InterviewScored(ctx, r, year, rowID, score, err)
	if err != nil {
		h.failed(w, r, "interview score", err, msgScoreFailed)
		return
	}
	h.finish(w, r, auth.FlashSuccess, msgScoreOK)
}

// HandleFinalizeInterviews handles POST /pusdatin/penilaian/wawancara/finalize.
// Like the scoring form it is refused once the roster is finalized.
func (h *Handler) HandleFinalizeInterviews(w http.ResponseWriter, r *http.Request) {
	release, ok := h.acquire(w, r, "finalize", string(stages.Wawancara))
	if !ok {
		return
	}
	defer release()

	year := viewdata.SelectedYear(r)
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "interviews finalize")
	defer cancel()

	store := penilaianstore.New(h.client(r))
	rows, err := store.Interviews(ctx, year)
	if err != nil {
		h.failed(w, r, "interviews finalize", err, msgFinalizeFailed)
		return
	}
	if stages.InterviewsFinalized(rows) {
		h.finish(w, r, auth.FlashInfo, msgLocked)
		return
	}

	err = store.FinalizeInterviews(ctx, year)
	h.AuditLog.InterviewsFinalized(ctx, r, year, err)
	if err != nil {
		h.failed(w, r, "interviews finalize", err, msgFinalizeFailed)
		return
	}
	h.finish(w, r, auth.FlashSuccess, msgInterviewsDone)
}
