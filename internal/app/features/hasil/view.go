// internal/app/features/hasil/view.go
package hasil

import (
	"strconv"
	"strings"
	"time"

	"github.com/sipelita/dashboard/internal/app/store/pengumuman"
	"github.com/sipelita/dashboard/internal/app/system/scoring"
	"github.com/sipelita/dashboard/internal/domain/models"
)

// Tone classes for the result banner.
const (
	TonePass    = "pass"
	ToneWait    = "wait"
	ToneFail    = "fail"
	ToneProcess = "process"
)

// passStatuses are the announced statuses that count as a pass.
var passStatuses = map[string]bool{
	"LOLOS":             true,
	"LOLOS FINAL":       true,
	"MASUK KATEGORI":    true,
	"SELESAI":           true,
	"SELESAI WAWANCARA": true,
}

// StatusTone classifies an announced status for display. A stage that is
// still active always reads as in progress.
func StatusTone(status string, inProgress bool) string {
	switch {
	case inProgress:
		return ToneProcess
	case passStatuses[strings.ToUpper(strings.TrimSpace(status))]:
		return TonePass
	case strings.EqualFold(strings.TrimSpace(status), "MENUNGGU"):
		return ToneWait
	}
	return ToneFail
}

// TimelineRow is one stage of the timeline strip.
type TimelineRow struct {
	Tahap  string
	Name   string
	Status string
	Label  string
	Active bool
}

// TimelineRows labels the timeline items.
func TimelineRows(t models.Timeline) []TimelineRow {
	rows := make([]TimelineRow, 0, len(t.Items))
	for _, it := range t.Items {
		rows = append(rows, TimelineRow{
			Tahap:  it.Tahap,
			Name:   it.Nama,
			Status: it.Status,
			Label:  scoring.TimelineLabel(it),
			Active: it.Tahap == t.TahapAktif,
		})
	}
	return rows
}

// TimelineYear is the assessment year the timeline reports, or the current
// year when it carries none.
func TimelineYear(t models.Timeline, now time.Time) int {
	if y, err := strconv.Atoi(strings.TrimSpace(t.Year.String())); err == nil && y > 0 {
		return y
	}
	return now.Year()
}

// Tab is one stage tab of the result page.
type Tab struct {
	Key    string
	Label  string
	Active bool
}

// Tabs lists the stage tabs with active marked.
func Tabs(active string) []Tab {
	out := make([]Tab, 0, len(pengumuman.Tahaps))
	for _, k := range pengumuman.Tahaps {
		out = append(out, Tab{Key: k, Label: pengumuman.TahapLabel(k), Active: k == active})
	}
	return out
}

// Table is the breakdown table of one stage.
type Table struct {
	Title     string
	Subtitle  string
	Header    []string
	Rows      []scoring.BreakdownRow
	ShowTotal bool
	Total     float64
	// Criteria tables have no weights and show status and note columns.
	Criteria bool
	// WithNote adds the KETERANGAN column to weighted tables.
	WithNote bool
}

var (
	weightedHeader = []string{"NO", "KOMPONEN", "BOBOT (%)", "NILAI (0-100)", "SKOR AKHIR"}
	awardHeader    = []string{"NO", "KATEGORI", "BOBOT (%)", "NILAI (0-100)", "SKOR AKHIR", "KETERANGAN"}
	criteriaHeader = []string{"NO", "KRITERIA VALIDASI", "STATUS", "KETERANGAN"}
)

func sumScores(rows []scoring.BreakdownRow) float64 {
	var total float64
	for _, r := range rows {
		total += r.Score
	}
	return total
}

// BuildTable assembles the breakdown for tahap from the announced result
// and the published details. Missing inputs fall back to zeroed defaults.
func BuildTable(tahap string, res *models.StageResult, slhd *models.DetailSLHD, award *models.DetailPenghargaan) Table {
	var t Table
	switch tahap {
	case pengumuman.TahapPenghargaan:
		t = Table{
			Title:    "Hasil Penilaian Penghargaan",
			Subtitle: "Penentuan Bobot Antar Penghargaan",
			Header:   awardHeader,
			Rows:     scoring.AwardRows(award),
			WithNote: true,
		}
	case pengumuman.TahapValidasi1:
		t = Table{
			Title:    "Hasil Validasi 1",
			Subtitle: "Validasi 1 - Rerata IKLH & Penghargaan",
			Header:   awardHeader,
			Rows:     scoring.Validation1Rows(res),
			WithNote: true,
		}
	case pengumuman.TahapValidasi2:
		return Table{
			Title:    "Hasil Validasi 2",
			Subtitle: "Validasi 2 - Administratif & Kepatuhan",
			Header:   criteriaHeader,
			Rows:     scoring.Validation2Rows(res),
			Criteria: true,
		}
	case pengumuman.TahapWawancara:
		t = Table{
			Title:    "Hasil Penilaian Wawancara",
			Subtitle: "Wawancara & Perhitungan Nilai Tahap Akhir (NT Final)",
			Header:   weightedHeader,
			Rows:     scoring.InterviewRows(res),
		}
	default:
		t = Table{
			Title:    "Hasil Penilaian SLHD",
			Subtitle: "Penilaian dokumen SLHD per BAB",
			Header:   weightedHeader,
			Rows:     scoring.ChapterRows(slhd),
		}
	}
	t.ShowTotal = len(t.Rows) > 0
	t.Total = sumScores(t.Rows)
	return t
}
