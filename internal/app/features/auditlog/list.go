// internal/app/features/auditlog/list.go
package auditlog

import (
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/sipelita/dashboard/internal/app/store/audit"
	"github.com/sipelita/dashboard/internal/app/system/paging"
	"github.com/sipelita/dashboard/internal/app/system/timeouts"
	"github.com/sipelita/dashboard/internal/app/system/viewdata"
	"go.uber.org/zap"
)

const pageSize = 50

const dateLayout = "2006-01-02"

// listTarget is the element the pager swaps.
const listTarget = "audit-list"

// wib is the zone operators read timestamps in. Events are stored in UTC.
var wib = time.FixedZone("WIB", 7*60*60)

// listFilter is the parsed query string of the trail page.
type listFilter struct {
	Category  string
	EventType string
	Year      int
	Stage     string
	StartDate string
	EndDate   string
	Page      int
}

func parseFilter(r *http.Request) listFilter {
	f := listFilter{
		Category:  query.Get(r, "category"),
		EventType: query.Get(r, "event_type"),
		Stage:     query.Get(r, "stage"),
		StartDate: query.Get(r, "start_date"),
		EndDate:   query.Get(r, "end_date"),
		Page:      paging.ParsePage(r),
	}
	if y, err := strconv.Atoi(query.Get(r, "year")); err == nil && y > 0 {
		f.Year = y
	}
	if _, ok := categoryLabels[f.Category]; !ok {
		f.Category = ""
	}
	return f
}

// store converts the page filter into a store query. Dates are whole days
// in WIB; an unparseable date is ignored.
func (f listFilter) store() audit.QueryFilter {
	qf := audit.QueryFilter{
		Category:  f.Category,
		EventType: f.EventType,
		Year:      f.Year,
		Stage:     f.Stage,
		Limit:     pageSize,
		Offset:    int64((f.Page - 1) * pageSize),
	}
	if t, err := time.ParseInLocation(dateLayout, f.StartDate, wib); err == nil {
		start := t.UTC()
		qf.StartTime = &start
	}
	if t, err := time.ParseInLocation(dateLayout, f.EndDate, wib); err == nil {
		end := t.Add(24*time.Hour - time.Nanosecond).UTC()
		qf.EndTime = &end
	}
	return qf
}

// pageURL is the list URL carrying the filters, ready for "&page=N".
func (f listFilter) pageURL() string {
	v := url.Values{}
	set := func(k, s string) {
		if s != "" {
			v.Set(k, s)
		}
	}
	set("category", f.Category)
	set("event_type", f.EventType)
	set("stage", f.Stage)
	set("start_date", f.StartDate)
	set("end_date", f.EndDate)
	if f.Year > 0 {
		v.Set("year", strconv.Itoa(f.Year))
	}
	return "/admin/audit?" + v.Encode()
}

// ServeList handles GET /admin/audit.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "audit log list")
	defer cancel()

	f := parseFilter(r)
	qf := f.store()

	events, err := h.Store.Query(ctx, qf)
	if err != nil {
		h.Log.Error("failed to query audit events", zap.Error(err))
		h.ErrLog.LogServerError(w, r, "database error", err, "Gagal memuat log aktivitas.", "/admin")
		return
	}

	total, err := h.Store.CountByFilter(ctx, qf)
	if err != nil {
		h.Log.Error("failed to count audit events", zap.Error(err))
		h.ErrLog.LogServerError(w, r, "database error", err, "Gagal memuat log aktivitas.", "/admin")
		return
	}

	items := make([]listItem, 0, len(events))
	for _, e := range events {
		items = append(items, toItem(e))
	}

	page := pageOf(items, f.Page, total)
	data := listData{
		BaseVM:     viewdata.NewBaseVM(r, "Log Aktivitas", "/admin"),
		Items:      items,
		Category:   f.Category,
		EventType:  f.EventType,
		FilterYear: f.Year,
		Stage:      f.Stage,
		StartDate:  f.StartDate,
		EndDate:    f.EndDate,
		Categories: allCategories(),
		EventTypes: eventTypesForCategory(f.Category),
		Stages:     stages,
		Page:       page,
		Pager:      viewdata.Pager{Page: page, PageURL: f.pageURL(), Target: "#" + listTarget},
	}

	if r.Header.Get("HX-Request") == "true" && r.Header.Get("HX-Target") == listTarget {
		templates.RenderSnippet(w, "audit_table", data)
		return
	}
	templates.Render(w, r, "audit_list", data)
}

func toItem(e audit.Event) listItem {
	actor := e.ActorName
	if actor == "" {
		actor = e.ActorID
	}
	return listItem{
		ID:        e.ID.Hex(),
		When:      e.Timestamp.In(wib).Format("02/01/2006 15:04:05"),
		Category:  categoryLabels[e.Category],
		EventType: e.EventType,
		Label:     eventLabel(e.EventType),
		ActorName: actor,
		ActorRole: e.ActorRole,
		Year:      e.Year,
		Stage:     e.Stage,
		Target:    e.Target,
		IP:        e.IP,
		Success:   e.Success,
		Reason:    e.FailureReason,
		Details:   e.Details,
	}
}

// pageOf wraps one store page in the shared pager model.
func pageOf(items []listItem, number int, total int64) paging.Page[listItem] {
	pages := int((total + pageSize - 1) / pageSize)
	if pages < 1 {
		pages = 1
	}
	p := paging.Page[listItem]{
		Items:      items,
		Number:     number,
		TotalPages: pages,
		Total:      int(total),
		PerPage:    pageSize,
	}
	if len(items) > 0 {
		p.RangeStart = (number-1)*pageSize + 1
		p.RangeEnd = p.RangeStart + len(items) - 1
	}
	return p
}
