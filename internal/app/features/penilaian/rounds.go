// internal/app/features/penilaian/rounds.go
package penilaian

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/go-chi/chi/v5"
	penilaianstore "github.com/sipelita/dashboard/internal/app/store/penilaian"
	"github.com/sipelita/dashboard/internal/app/system/auth"
	"github.com/sipelita/dashboard/internal/app/system/inflight"
	"github.com/sipelita/dashboard/internal/app/system/inputval"
	"github.com/sipelita/dashboard/internal/app/system/paging"
	"github.com/sipelita/dashboard/internal/app/system/rowfilter"
	"github.com/sipelita/dashboard/internal/app/system/scoring"
	"github.com/sipelita/dashboard/internal/app/system/settle"
	"github.com/sipelita/dashboard/internal/app/system/sheets"
	"github.com/sipelita/dashboard/internal/app/system/stages"
	"github.com/sipelita/dashboard/internal/app/system/timeouts"
	"github.com/sipelita/dashboard/internal/app/system/viewdata"
	"github.com/sipelita/dashboard/internal/domain/models"
	"go.uber.org/zap"
)

const (
	msgNoFile     = "Pilih file Excel terlebih dahulu."
	msgNoRound    = "Penilaian tidak ditemukan."
	msgNoData     = "File tidak berisi data penilaian."
	msgUnreadable = "File bukan workbook Excel yang valid."
)

// uploadFormSlack covers the multipart envelope and the note field.
const uploadFormSlack = 1 << 20

// Query parameters of the parsed-results table. The submission table above
// it uses the unprefixed names.
const (
	parsedPrefix    = "parsed_"
	parsedPageParam = parsedPrefix + "page"
)

// roundState is what shapes the SLHD or Penghargaan tab besides tab and
// year: both tables' filters and pages plus the round being viewed.
type roundState struct {
	Filter        rowfilter.Criteria
	PerPage       paging.PerPage
	Page          int
	Parsed        rowfilter.Criteria
	ParsedPerPage paging.PerPage
	ParsedPage    int
	Round         int64
}

func parseRoundState(r *http.Request, def paging.PerPage) roundState {
	st := roundState{
		Filter:        rowfilter.FromRequest(r, ""),
		PerPage:       paging.ParsePerPage(r, def),
		Page:          paging.ParsePage(r),
		Parsed:        rowfilter.FromRequest(r, parsedPrefix),
		ParsedPerPage: paging.ParsePerPageParam(r, parsedPrefix+"per_page", def),
		ParsedPage:    paging.ParsePageParam(r, parsedPageParam),
		Round:         parseID(query.Get(r, "round")),
	}
	st.Filter.Status = ""
	st.Parsed.Status = ""
	return st
}

// values encodes st without the page parameter named skip, which the pager
// or a filter change supplies.
func (st roundState) values(skip string) url.Values {
	q := url.Values{
		"tipe":                    {st.Filter.Type},
		"provinsi":                {st.Filter.Region},
		"per_page":                {st.PerPage.String()},
		parsedPrefix + "tipe":     {st.Parsed.Type},
		parsedPrefix + "provinsi": {st.Parsed.Region},
		parsedPrefix + "per_page": {st.ParsedPerPage.String()},
	}
	if skip != "page" && st.Page > 1 {
		q.Set("page", strconv.Itoa(st.Page))
	}
	if skip != parsedPageParam && st.ParsedPage > 1 {
		q.Set(parsedPageParam, strconv.Itoa(st.ParsedPage))
	}
	if st.Round > 0 {
		q.Set("round", strconv.FormatInt(st.Round, 10))
	}
	return q
}

// loadRounds fills the SLHD or Penghargaan tab: the submission table, the
// round history and the parsed rows of the selected round. Each table keeps
// its own filters and page; every link and form carries the rest of the
// state, including an explicitly chosen round.
func (h *Handler) loadRounds(ctx context.Context, r *http.Request, store *penilaianstore.Store, data *pageData) error {
	stage := data.Tab
	kind, _ := penilaianstore.KindFor(stage)
	year := data.Year
	st := parseRoundState(r, h.Cfg.DefaultPerPage)

	view := &RoundsView{
		Stage:       stage,
		Filter:      st.Filter,
		Types:       TypeOptions(st.Filter.Type),
		PerPage:     PerPageOptions(st.PerPage),
		UploadMaxMB: h.Cfg.UploadMaxBytes >> 20,
		Threshold:   scoring.FormatValue(h.Cfg.PassThreshold),
		TemplateURL: templateURL(stage, year, st.Filter.Type),
		IsAward:     stage == stages.Penghargaan,
		RoundHidden: hiddenFields(st.values(parsedPageParam), "round"),
	}
	data.Rounds = view
	data.Filters = &FilterBar{
		Tab:     stage,
		Year:    year,
		Hidden:  hiddenFields(st.values("page"), "tipe", "provinsi", "per_page"),
		Types:   view.Types,
		PerPage: view.PerPage,
	}
	view.ParsedFilters = &FilterBar{
		Tab:     stage,
		Year:    year,
		Prefix:  parsedPrefix,
		Hidden:  hiddenFields(st.values(parsedPageParam), parsedPrefix+"tipe", parsedPrefix+"provinsi", parsedPrefix+"per_page"),
		Types:   TypeOptions(st.Parsed.Type),
		PerPage: PerPageOptions(st.ParsedPerPage),
	}

	var (
		subs   []models.Submission
		rounds []models.Round
	)
	results := settle.All(ctx,
		settle.Task{Name: "submissions", Run: func(ctx context.Context) (err error) {
			subs, err = store.Submissions(ctx, year)
			return err
		}},
		settle.Task{Name: "rounds", Run: func(ctx context.Context) (err error) {
			rounds, err = store.Rounds(ctx, kind, year)
			return err
		}},
	)

	regions := h.regionNames(ctx, r, subs)
	view.Regions = RegionOptions(regions, st.Filter.Region)
	data.Filters.Regions = view.Regions
	view.ParsedFilters.Regions = RegionOptions(regions, st.Parsed.Region)

	view.Submissions = paging.Paginate(SubmissionRows(rowfilter.Submissions(subs, st.Filter)), st.PerPage, st.Page)
	view.Pager = viewdata.Pager{
		Page:    view.Submissions,
		PageURL: tabURL(stage, year, st.values("page")),
		Target:  "#" + panelTarget,
	}

	uploading := h.Inflight.Busy(inflight.Key(sessionID(r), "upload", string(stage)))
	view.Control = stages.FinalizeControl(nil, 0, uploading)
	if failed := settle.Failed(results); len(failed) > 0 {
		return failed[0].Err
	}

	stages.SortRounds(rounds)
	round, ok := stages.Find(rounds, st.Round)
	if !ok {
		return nil
	}
	view.Round = &round
	view.RoundNote = round.Note()
	view.Rounds = RoundOptions(rounds, round.ID)

	idx := rowfilter.NewIndex(subs)
	if view.IsAward {
		parsed, err := store.ParsedAwards(ctx, round.ID)
		if err != nil {
			return err
		}
		view.ParsedCount = len(parsed)
		rows := rowfilter.Filter(parsed, st.Parsed,
			rowfilter.By(idx, func(p models.ParsedAward) int64 { return p.IDDinas }), nil)
		view.Awards = paging.Paginate(AwardRows(rows), st.ParsedPerPage, st.ParsedPage)
		view.ParsedPager = parsedPager(view.Awards, stage, year, st)
	} else {
		parsed, err := store.ParsedSLHD(ctx, round.ID)
		if err != nil {
			return err
		}
		view.ParsedCount = len(parsed)
		rows := rowfilter.Filter(parsed, st.Parsed,
			rowfilter.By(idx, func(p models.ParsedSLHD) int64 { return p.IDDinas }), nil)
		view.SLHD = paging.Paginate(SLHDRows(rows, h.Cfg.PassThreshold), st.ParsedPerPage, st.ParsedPage)
		view.ParsedPager = parsedPager(view.SLHD, stage, year, st)
	}
	view.Control = stages.FinalizeControl(view.Round, view.ParsedCount, uploading)
	return nil
}

func parsedPager[T any](page paging.Page[T], stage stages.Stage, year int, st roundState) viewdata.Pager {
	return viewdata.Pager{
		Page:    page,
		PageURL: tabURL(stage, year, st.values(parsedPageParam)),
		Target:  "#" + panelTarget,
		Param:   parsedPageParam,
	}
}

func parseID(raw string) int64 {
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func templateURL(stage stages.Stage, year int, agencyType string) string {
	q := url.Values{"stage": {string(stage)}, "year": {strconv.Itoa(year)}}
	if agencyType != "" && agencyType != rowfilter.AnyValue {
		q.Set("tipe", agencyType)
	}
	return basePath + "/template?" + q.Encode()
}

// HandleUpload handles POST /pusdatin/penilaian/{stage}/upload. The workbook
// is checked locally before it is forwarded, so empty or corrupt files never
// create a round.
func (h *Handler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	stage := stages.Stage(chi.URLParam(r, "stage"))
	kind, ok := penilaianstore.KindFor(stage)
	if !ok {
		http.NotFound(w, r)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.Cfg.UploadMaxBytes+uploadFormSlack)
	if err := r.ParseMultipartForm(h.Cfg.UploadMaxBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.finish(w, r, auth.FlashError, msgUploadTooLarge)
			return
		}
		h.Log.Warn("upload form unreadable", zap.Error(err))
		h.finish(w, r, auth.FlashError, msgUploadFailed)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.finish(w, r, auth.FlashError, msgNoFile)
		return
	}
	defer file.Close()

	content, err := io.ReadAll(io.LimitReader(file, h.Cfg.UploadMaxBytes+1))
	if err != nil {
		h.Log.Warn("upload read failed", zap.Error(err))
		h.finish(w, r, auth.FlashError, msgUploadFailed)
		return
	}
	if int64(len(content)) > h.Cfg.UploadMaxBytes {
		h.finish(w, r, auth.FlashError, msgUploadTooLarge)
		return
	}

	year := viewdata.SelectedYear(r)
	form := inputval.Upload{
		Year:     year,
		Filename: header.Filename,
		Size:     int64(len(content)),
		Note:     r.FormValue("catatan"),
	}
	if err := inputval.Check(form); err != nil {
		h.finish(w, r, auth.FlashError, inputval.Message(err))
		return
	}

	if _, _, err := sheets.Preflight(form.Filename, content); err != nil {
		msg := msgUnreadable
		if errors.Is(err, sheets.ErrNoData) {
			msg = msgNoData
		}
		h.finish(w, r, auth.FlashError, msg)
		return
	}

	release, ok := h.acquire(w, r, "upload", string(stage))
	if !ok {
		return
	}
	defer release()

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Upload(), h.Log, string(stage)+" upload")
	defer cancel()

	err = penilaianstore.New(h.client(r)).Upload(ctx, kind, year, form.Filename, bytes.NewReader(content), form.Note)
	h.AuditLog.RoundUploaded(ctx, r, year, string(stage), form.Filename, err)
	if err != nil {
		h.failed(w, r, string(stage)+" upload", err, msgUploadFailed)
		return
	}
	h.finish(w, r, auth.FlashSuccess, msgUploadOK)
}

// HandleFinalizeRound handles POST /pusdatin/penilaian/{stage}/finalize. The
// round is re-read first; a locked round is never sent again.
func (h *Handler) HandleFinalizeRound(w http.ResponseWriter, r *http.Request) {
	stage := stages.Stage(chi.URLParam(r, "stage"))
	kind, ok := penilaianstore.KindFor(stage)
	if !ok {
		http.NotFound(w, r)
		return
	}
	roundID := formInt64(r, "round_id")
	if roundID <= 0 {
		h.finish(w, r, auth.FlashError, msgNoRound)
		return
	}

	release, ok := h.acquire(w, r, "finalize", string(stage))
	if !ok {
		return
	}
	defer release()

	year := viewdata.SelectedYear(r)
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, string(stage)+" finalize")
	defer cancel()

	store := penilaianstore.New(h.client(r))
	rounds, err := store.Rounds(ctx, kind, year)
	if err != nil {
		h.failed(w, r, string(stage)+" finalize", err, msgFinalizeFailed)
		return
	}
	round, found := stages.Find(rounds, roundID)
	if !found || round.ID != roundID {
		h.finish(w, r, auth.FlashError, msgNoRound)
		return
	}
	if round.Locked() {
		h.finish(w, r, auth.FlashInfo, msgLocked)
		return
	}

	err = store.FinalizeRound(ctx, kind, roundID)
	h.AuditLog.RoundFinalized(ctx, r, year, string(stage), roundID, err)
	if err != nil {
		h.failed(w, r, string(stage)+" finalize", err, msgFinalizeFailed)
		return
	}
	h.finish(w, r, auth.FlashSuccess, fmt.Sprintf("%s berhasil difinalisasi", stage.Label()))
}

// ServeTemplate handles GET /pusdatin/penilaian/template and streams the
// blank workbook of a round stage.
func (h *Handler) ServeTemplate(w http.ResponseWriter, r *http.Request) {
	stage := stages.Parse(query.Get(r, "stage"))
	kind, ok := penilaianstore.KindFor(stage)
	if !ok {
		http.NotFound(w, r)
		return
	}
	year := viewdata.SelectedYear(r)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, string(stage)+" template")
	defer cancel()

	dl, err := penilaianstore.New(h.client(r)).Template(ctx, kind, year, query.Get(r, "tipe"))
	if err != nil {
		if h.SessionMgr.ExpireIfUnauthorized(w, r, err) {
			return
		}
		h.Log.Warn("template download failed", zap.String("stage", string(stage)), zap.Error(err))
		h.SessionMgr.AddFlash(w, r, auth.FlashError, msgTemplateFailed)
		http.Redirect(w, r, tabURL(stage, year, nil), http.StatusSeeOther)
		return
	}

	contentType := dl.ContentType
	if contentType == "" {
		contentType = sheets.ContentType
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": dl.Filename}))
	w.Header().Set("Content-Length", strconv.Itoa(len(dl.Body)))
	_, _ = w.Write(dl.Body)
}
