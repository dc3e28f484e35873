// internal/app/features/penilaian/export.go
package penilaian

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strconv"

	"github.com/dalemusser/waffle/pantry/query"
	penilaianstore "github.com/sipelita/dashboard/internal/app/store/penilaian"
	"github.com/sipelita/dashboard/internal/app/system/auth"
	"github.com/sipelita/dashboard/internal/app/system/rowfilter"
	"github.com/sipelita/dashboard/internal/app/system/sheets"
	"github.com/sipelita/dashboard/internal/app/system/stages"
	"github.com/sipelita/dashboard/internal/app/system/timeouts"
	"github.com/sipelita/dashboard/internal/app/system/viewdata"
	"github.com/sipelita/dashboard/internal/domain/models"
	"go.uber.org/zap"
)

// exportTable builds the workbook for target, applying the same filters as
// the on-screen table.
func (h *Handler) exportTable(ctx context.Context, r *http.Request, store *penilaianstore.Store, target stages.Stage, year int) (sheets.Table, string, error) {
	c := rowfilter.FromRequest(r, "")
	switch target {
	case stages.Validasi1:
		var rows []models.Validation1Row
		subs, err := withSubmissions(ctx, store, year, func(ctx context.Context) (err error) {
			rows, err = store.Validation1(ctx, year)
			return err
		})
		if err != nil {
			return sheets.Table{}, "", err
		}
		return sheets.Validation1Table(filterValidation1(rows, subs, c), h.Cfg.PassThreshold),
			fmt.Sprintf("validasi1_%d.xlsx", year), nil
	case stages.Validasi2:
		var rows []models.Validation2Row
		subs, err := withSubmissions(ctx, store, year, func(ctx context.Context) (err error) {
			rows, err = store.Validation2(ctx, year)
			return err
		})
		if err != nil {
			return sheets.Table{}, "", err
		}
		return sheets.Validation2Table(filterValidation2(rows, subs, c)),
			fmt.Sprintf("validasi2_%d.xlsx", year), nil
	case stages.Peringkat:
		category, kind := rankingSelection(r)
		rows, err := store.Ranked(ctx, year, category, kind.RequestTop())
		if err != nil {
			return sheets.Table{}, "", err
		}
		return sheets.RankedTable(category.Label(), rows),
			fmt.Sprintf("peringkat_%s_%d.xlsx", category, year), nil
	}
	return sheets.Table{}, "", errUnknownExport
}

var errUnknownExport = errors.New("unknown export target")

// ServeExport handles GET /pusdatin/penilaian/export?target=. The workbook
// is built in memory so a failure can still redirect with a flash.
func (h *Handler) ServeExport(w http.ResponseWriter, r *http.Request) {
	target := stages.Stage(query.Get(r, "target"))
	switch target {
	case stages.Validasi1, stages.Validasi2, stages.Peringkat:
	default:
		http.NotFound(w, r)
		return
	}
	year := viewdata.SelectedYear(r)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "export "+string(target))
	defer cancel()

	table, filename, err := h.exportTable(ctx, r, penilaianstore.New(h.client(r)), target, year)
	var buf bytes.Buffer
	if err == nil {
		err = sheets.Write(&buf, table)
	}
	if err != nil {
		if h.SessionMgr.ExpireIfUnauthorized(w, r, err) {
			h.AuditLog.SessionExpired(r.Context(), r)
			return
		}
		h.Log.Warn("export failed", zap.String("target", string(target)), zap.Error(err))
		h.SessionMgr.AddFlash(w, r, auth.FlashError, msgExportFailed)
		http.Redirect(w, r, tabURL(target, year, nil), http.StatusSeeOther)
		return
	}

	h.AuditLog.Exported(ctx, r, year, string(target), filename)
	w.Header().Set("Content-Type", sheets.ContentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	_, _ = w.Write(buf.Bytes())
}
