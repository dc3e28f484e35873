// internal/app/features/penilaian/view.go
package penilaian

import (
	"fmt"
	"net/url"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/sipelita/dashboard/internal/app/system/paging"
	"github.com/sipelita/dashboard/internal/app/system/rowfilter"
	"github.com/sipelita/dashboard/internal/app/system/scoring"
	"github.com/sipelita/dashboard/internal/app/system/stages"
	"github.com/sipelita/dashboard/internal/app/system/viewdata"
	"github.com/sipelita/dashboard/internal/domain/models"
)

const (
	basePath    = "/pusdatin/penilaian"
	panelTarget = "penilaian-panel"
)

// Option is one entry of a select control.
type Option struct {
	Value    string
	Label    string
	Selected bool
}

// TabLink is one tab of the assessment page.
type TabLink struct {
	Key    string
	Label  string
	URL    string
	Active bool
}

// Tabs lists the six pipeline tabs for year.
func Tabs(active stages.Stage, year int) []TabLink {
	out := make([]TabLink, 0, len(stages.Order))
	for _, s := range stages.Order {
		q := url.Values{"tab": {string(s)}, "year": {strconv.Itoa(year)}}
		out = append(out, TabLink{
			Key:    string(s),
			Label:  s.Label(),
			URL:    basePath + "?" + q.Encode(),
			Active: s == active,
		})
	}
	return out
}

// keepValue reports whether a query value changes the view. "all" is the
// default of every filter select, but a real choice for a page size.
func keepValue(key, v string) bool {
	if v == "" {
		return false
	}
	return v != rowfilter.AnyValue || strings.HasSuffix(key, "per_page")
}

// tabQuery is the query of the current view without the page number.
func tabQuery(tab stages.Stage, year int, extra url.Values) url.Values {
	q := url.Values{}
	for k, vs := range extra {
		for _, v := range vs {
			if keepValue(k, v) {
				q.Add(k, v)
			}
		}
	}
	q.Set("tab", string(tab))
	q.Set("year", strconv.Itoa(year))
	return q
}

// tabURL renders the URL of the current view.
func tabURL(tab stages.Stage, year int, extra url.Values) string {
	return basePath + "?" + tabQuery(tab, year, extra).Encode()
}

func filterValues(c rowfilter.Criteria, perPage paging.PerPage) url.Values {
	return url.Values{
		"tipe":     {c.Type},
		"provinsi": {c.Region},
		"status":   {c.Status},
		"per_page": {perPage.String()},
	}
}

func pager[T any](page paging.Page[T], tab stages.Stage, year int, c rowfilter.Criteria, perPage paging.PerPage) viewdata.Pager {
	return viewdata.Pager{
		Page:    page,
		PageURL: tabURL(tab, year, filterValues(c, perPage)),
		Target:  "#" + panelTarget,
	}
}

// TypeOptions are the agency type choices of the filter bar.
func TypeOptions(selected string) []Option {
	opts := []Option{
		{Value: rowfilter.AnyValue, Label: "Semua Jenis"},
		{Value: models.TypeProvinsi, Label: "Provinsi"},
		{Value: models.TypeKabKota, Label: "Kabupaten/Kota"},
	}
	return markSelected(opts, selected)
}

// RegionOptions turns region names into filter choices.
func RegionOptions(regions []string, selected string) []Option {
	opts := make([]Option, 0, len(regions)+1)
	opts = append(opts, Option{Value: rowfilter.AnyValue, Label: "Semua Provinsi"})
	for _, r := range regions {
		opts = append(opts, Option{Value: r, Label: r})
	}
	return markSelected(opts, selected)
}

// PerPageOptions are the page size choices.
func PerPageOptions(selected paging.PerPage) []Option {
	opts := make([]Option, 0, len(paging.Options))
	for _, p := range paging.Options {
		label := p.String()
		if p == paging.All {
			label = "Semua"
		}
		opts = append(opts, Option{Value: p.String(), Label: label, Selected: p == selected})
	}
	return opts
}

func markSelected(opts []Option, selected string) []Option {
	if selected == "" {
		selected = rowfilter.AnyValue
	}
	for i := range opts {
		opts[i].Selected = opts[i].Value == selected
	}
	return opts
}

/*─────────────────────────────────────────────────────────────────────────────*
| SLHD / Penghargaan                                                          |
*─────────────────────────────────────────────────────────────────────────────*/

// SubmissionRow is one agency of the submission table.
type SubmissionRow struct {
	Name        string
	Province    string
	Type        string
	Buku1       string
	Buku2       string
	Tabel       string
	AllApproved bool
}

// DocStatusLabel names a document state. Older payloads only carry the
// finalized flag.
func DocStatusLabel(status string, finalized bool) string {
	switch status {
	case models.DocApproved:
		return "Approved"
	case models.DocFinalized:
		return "Finalized"
	case models.DocDraft:
		return "Draft"
	}
	if finalized {
		return "Finalized"
	}
	return "Draft"
}

// SubmissionRows maps submissions for display.
func SubmissionRows(subs []models.Submission) []SubmissionRow {
	out := make([]SubmissionRow, 0, len(subs))
	for _, s := range subs {
		out = append(out, SubmissionRow{
			Name:        s.NamaDinas,
			Province:    s.Provinsi,
			Type:        s.Tipe,
			Buku1:       DocStatusLabel(s.Buku1Status, s.Buku1Finalized),
			Buku2:       DocStatusLabel(s.Buku2Status, s.Buku2Finalized),
			Tabel:       DocStatusLabel(s.TabelStatus, s.TabelFinalized),
			AllApproved: s.AllApproved(),
		})
	}
	return out
}

// RoundLabel describes a round in the history selector.
func RoundLabel(r models.Round) string {
	when := "-"
	if r.UploadedAt != nil {
		when = r.UploadedAt.Local().Format("02/01/2006 15:04")
	}
	label := fmt.Sprintf("#%d - %s", r.ID, when)
	if r.Locked() {
		label += " (Final)"
	}
	return label
}

// RoundOptions builds the history selector, marking selected.
func RoundOptions(rounds []models.Round, selected int64) []Option {
	out := make([]Option, 0, len(rounds))
	for _, r := range rounds {
		out = append(out, Option{
			Value:    strconv.FormatInt(r.ID, 10),
			Label:    RoundLabel(r),
			Selected: r.ID == selected,
		})
	}
	return out
}

// SLHDRow is one parsed SLHD line.
type SLHDRow struct {
	Name  string
	Bab1  string
	Bab2  string
	Bab3  string
	Bab4  string
	Bab5  string
	Total string
	Label string
	Pass  bool
}

// SLHDRows formats parsed SLHD rows. Bab 2 is the mean of the present matra
// scores, shown with one decimal, and the label compares the total against
// threshold.
func SLHDRows(rows []models.ParsedSLHD, threshold float64) []SLHDRow {
	out := make([]SLHDRow, 0, len(rows))
	for _, p := range rows {
		label := scoring.PassFailLabel(p.TotalSkor, threshold)
		out = append(out, SLHDRow{
			Name:  p.NamaDinas,
			Bab1:  scoring.Format(p.Bab1),
			Bab2:  scoring.FormatDigits(scoring.ChapterTwoAverage(p), 1),
			Bab3:  scoring.Format(p.Bab3),
			Bab4:  scoring.Format(p.Bab4),
			Bab5:  scoring.Format(p.Bab5),
			Total: scoring.Format(p.TotalSkor),
			Label: label,
			Pass:  label == scoring.LabelPass,
		})
	}
	return out
}

// AwardRow is one parsed award line.
type AwardRow struct {
	Name      string
	Adipura   string
	Adiwiyata string
	Proklim   string
	Proper    string
	Kalpataru string
	Total     string
}

func scoreOf(score, max *float64) string {
	if max == nil {
		return scoring.Format(score)
	}
	return scoring.Format(score) + " / " + scoring.Format(max)
}

// AwardRows formats parsed award rows as score over maximum.
func AwardRows(rows []models.ParsedAward) []AwardRow {
	out := make([]AwardRow, 0, len(rows))
	for _, p := range rows {
		out = append(out, AwardRow{
			Name:      p.NamaDinas,
			Adipura:   scoreOf(p.AdipuraSkor, p.AdipuraMax),
			Adiwiyata: scoreOf(p.AdiwiyataSkor, p.AdiwiyataMax),
			Proklim:   scoreOf(p.ProklimSkor, p.ProklimMax),
			Proper:    scoreOf(p.ProperSkor, p.ProperMax),
			Kalpataru: scoreOf(p.KalpataruSkor, p.KalpataruMax),
			Total:     scoring.Format(p.TotalSkor),
		})
	}
	return out
}

// RoundsView is the SLHD or Penghargaan tab.
type RoundsView struct {
	Stage   stages.Stage
	Filter  rowfilter.Criteria
	Types   []Option
	Regions []Option
	PerPage []Option

	Submissions paging.Page[SubmissionRow]
	Pager       viewdata.Pager

	Rounds    []Option
	Round     *models.Round
	RoundNote string

	// RoundHidden keeps the table state when another round is picked.
	RoundHidden []Hidden

	IsAward       bool
	SLHD          paging.Page[SLHDRow]
	Awards        paging.Page[AwardRow]
	ParsedPager   viewdata.Pager
	ParsedFilters *FilterBar
	ParsedCount   int
	Control       stages.Control

	TemplateURL string
	UploadMaxMB int64
	Threshold   string
}

/*─────────────────────────────────────────────────────────────────────────────*
| Validasi 1 / Validasi 2                                                     |
*─────────────────────────────────────────────────────────────────────────────*/

// Validation1Line is one Validasi 1 row.
type Validation1Line struct {
	Name     string
	Award    string
	Index    string
	Total    string
	Weighted string
	Result   string
	Pass     bool
}

// Validation1Lines formats Validasi 1 rows.
func Validation1Lines(rows []models.Validation1Row) []Validation1Line {
	out := make([]Validation1Line, 0, len(rows))
	for _, v := range rows {
		res := v.Result()
		label := "-"
		switch res {
		case models.ResultLulus:
			label = scoring.LabelPass
		case models.ResultTidakLulus:
			label = scoring.LabelFail
		}
		out = append(out, Validation1Line{
			Name:     v.NamaDinas,
			Award:    scoring.Format(v.NilaiPenghargaan),
			Index:    scoring.Format(v.NilaiIKLH),
			Total:    scoring.Format(v.TotalSkor),
			Weighted: scoring.FormatValue(scoring.Validation1WeightedScore(v.NilaiPenghargaan, v.NilaiIKLH)),
			Result:   label,
			Pass:     res == models.ResultLulus,
		})
	}
	return out
}

// Validation1Counts tallies the outcomes of the whole year.
type Validation1Counts struct {
	Total      int
	Lulus      int
	TidakLulus int
}

// CountValidation1 tallies rows by result.
func CountValidation1(rows []models.Validation1Row) Validation1Counts {
	c := Validation1Counts{Total: len(rows)}
	for _, v := range rows {
		switch v.Result() {
		case models.ResultLulus:
			c.Lulus++
		case models.ResultTidakLulus:
			c.TidakLulus++
		}
	}
	return c
}

// Validation1View is the Validasi 1 tab.
type Validation1View struct {
	Filter      rowfilter.Criteria
	Types       []Option
	Regions     []Option
	Statuses    []Option
	PerPage     []Option
	Rows        paging.Page[Validation1Line]
	Pager       viewdata.Pager
	Counts      Validation1Counts
	Finalized   bool
	CanFinalize bool
	ExportURL   string
}

// Validation2Line is one Validasi 2 row with its checklist.
type Validation2Line struct {
	ID     int64
	Name   string
	Award  string
	Index  string
	Total  string
	WTP    bool
	Kasus  bool
	Status string
}

// Validation2Lines formats Validasi 2 rows.
func Validation2Lines(rows []models.Validation2Row) []Validation2Line {
	out := make([]Validation2Line, 0, len(rows))
	for _, v := range rows {
		out = append(out, Validation2Line{
			ID:     v.ID,
			Name:   v.NamaDinas,
			Award:  scoring.Format(v.NilaiPenghargaan),
			Index:  scoring.Format(v.NilaiIKLH),
			Total:  scoring.Format(v.TotalSkor),
			WTP:    v.KriteriaWTP,
			Kasus:  v.KriteriaKasusHukum,
			Status: v.StatusValidasi,
		})
	}
	return out
}

// Validation2Counts tallies the checklist outcomes.
type Validation2Counts struct {
	Total      int
	Lolos      int
	TidakLolos int
	Pending    int
}

// CountValidation2 tallies rows by validation status.
func CountValidation2(rows []models.Validation2Row) Validation2Counts {
	c := Validation2Counts{Total: len(rows)}
	for _, v := range rows {
		switch v.StatusValidasi {
		case models.ValidationLolos:
			c.Lolos++
		case models.ValidationTidakLolos:
			c.TidakLolos++
		case models.ValidationPending:
			c.Pending++
		}
	}
	return c
}

// Validation2View is the Validasi 2 tab.
type Validation2View struct {
	Filter      rowfilter.Criteria
	Types       []Option
	Regions     []Option
	Statuses    []Option
	PerPage     []Option
	Rows        paging.Page[Validation2Line]
	Pager       viewdata.Pager
	Counts      Validation2Counts
	Finalized   bool
	CanFinalize bool
	ExportURL   string
}

/*─────────────────────────────────────────────────────────────────────────────*
| Peringkat                                                                   |
*─────────────────────────────────────────────────────────────────────────────*/

// RankLine is one ranked agency.
type RankLine struct {
	Rank     int
	Medal    string
	InTop    bool
	Name     string
	Province string
	Award    string
	Index    string
	Total    string
	Bonus    string
}

// RankLines decorates ranked rows with medals, the Top-N badge and the
// bonus column.
func RankLines(rows []models.RankedRow, topN int) []RankLine {
	out := make([]RankLine, 0, len(rows))
	for _, r := range rows {
		out = append(out, RankLine{
			Rank:     r.Peringkat,
			Medal:    scoring.Medal(r.Peringkat),
			InTop:    scoring.InTopN(r.Peringkat, topN),
			Name:     r.NamaDinas,
			Province: r.Provinsi,
			Award:    scoring.FormatValue(r.NilaiPenghargaan),
			Index:    scoring.FormatValue(r.NilaiIKLH),
			Total:    scoring.FormatValue(r.TotalSkor),
			Bonus:    scoring.FormatValue(scoring.Bonus(r.TotalSkor)),
		})
	}
	return out
}

// CategoryOptions lists the ranking categories. An empty placeholder is
// prepended when withPrompt is set.
func CategoryOptions(selected string, withPrompt bool) []Option {
	opts := make([]Option, 0, len(stages.Categories)+1)
	if withPrompt {
		opts = append(opts, Option{Value: "", Label: "-- Pilih Jenis DLH --", Selected: selected == ""})
	}
	for _, c := range stages.Categories {
		opts = append(opts, Option{Value: string(c), Label: c.Label(), Selected: string(c) == selected})
	}
	return opts
}

// KindOptions lists the ranking views.
func KindOptions(selected stages.Kind) []Option {
	kinds := []stages.Kind{stages.KindTop5, stages.KindTop10, stages.KindAll}
	opts := make([]Option, 0, len(kinds))
	for _, k := range kinds {
		opts = append(opts, Option{Value: string(k), Label: k.Label(), Selected: k == selected})
	}
	return opts
}

// RankingView is the Peringkat tab.
type RankingView struct {
	Category   stages.Category
	Kind       stages.Kind
	Categories []Option
	Kinds      []Option
	TopN       int
	Rows       []RankLine
	CanCreate  bool
	ExportURL  string
}

/*─────────────────────────────────────────────────────────────────────────────*
| Wawancara                                                                   |
*─────────────────────────────────────────────────────────────────────────────*/

// InterviewLine is one agency of the interview roster.
type InterviewLine struct {
	ID       int64
	Name     string
	Category string
	Province string
	Score    string
}

// InterviewDetail is the selected agency with its recap and NT Final.
type InterviewDetail struct {
	ID          int64
	Name        string
	Province    string
	Category    string
	ScoreInput  string
	RecapLoaded bool
	RecapSLHD   string
	RecapAward  string
	Validasi1   string
	Validasi2   string
	FinalScore  string
}

func passLabel(ok bool) string {
	if ok {
		return "Lolos"
	}
	return "Tidak Lolos"
}

// NewInterviewDetail combines the roster row with its recap. NT Final is
// only computed once the recap has been loaded.
func NewInterviewDetail(row models.InterviewRow, recap models.Recap, recapLoaded bool) InterviewDetail {
	d := InterviewDetail{
		ID:          row.ID,
		Name:        row.NamaDinas,
		Province:    row.Provinsi,
		Category:    stages.ParseCategory(row.Kategori).Label(),
		RecapLoaded: recapLoaded,
		RecapSLHD:   scoring.LabelMissing,
		RecapAward:  scoring.LabelMissing,
		Validasi1:   scoring.LabelMissing,
		Validasi2:   scoring.LabelMissing,
	}
	if row.NilaiWawancara != nil {
		d.ScoreInput = strconv.FormatFloat(*row.NilaiWawancara, 'f', -1, 64)
	}
	if recapLoaded {
		d.RecapSLHD = scoring.Format(recap.NilaiSLHD.Ptr())
		d.RecapAward = scoring.Format(recap.NilaiPenghargaan.Ptr())
		d.Validasi1 = passLabel(recap.LolosValidasi1)
		d.Validasi2 = passLabel(recap.LolosValidasi2)
	}
	d.FinalScore = scoring.Format(scoring.InterviewFinalScore(recap.NilaiSLHD.Ptr(), recapLoaded, row.NilaiWawancara))
	return d
}

// InterviewView is the Wawancara tab.
type InterviewView struct {
	Category    string
	Categories  []Option
	Agencies    []Option
	Selected    *InterviewDetail
	Roster      []InterviewLine
	Finalized   bool
	CanFinalize bool
}

// Hidden is a query value a form carries unchanged.
type Hidden struct {
	Name  string
	Value string
}

// hiddenFields lists the kept values of q except the names in skip, sorted
// by name.
func hiddenFields(q url.Values, skip ...string) []Hidden {
	out := make([]Hidden, 0, len(q))
	for k, vs := range q {
		if slices.Contains(skip, k) {
			continue
		}
		for _, v := range vs {
			if keepValue(k, v) {
				out = append(out, Hidden{Name: k, Value: v})
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// FilterBar drives the shared filter form above a table. Nil option lists
// hide their control. Prefix namespaces the control names when a page has
// more than one filtered table; Hidden carries the state of the others.
type FilterBar struct {
	Tab      stages.Stage
	Year     int
	Prefix   string
	Hidden   []Hidden
	Types    []Option
	Regions  []Option
	Statuses []Option
	PerPage  []Option
}
