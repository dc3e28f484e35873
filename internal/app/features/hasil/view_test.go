package hasil_test

import (
	"math"
	"testing"
	"time"

	"github.com/sipelita/dashboard/internal/app/features/hasil"
	"github.com/sipelita/dashboard/internal/app/store/pengumuman"
	"github.com/sipelita/dashboard/internal/domain/models"
)

func TestStatusTone(t *testing.T) {
	tests := []struct {
		status     string
		inProgress bool
		want       string
	}{
		{"LOLOS", false, hasil.TonePass},
		{"lolos final", false, hasil.TonePass},
		{"MASUK KATEGORI", false, hasil.TonePass},
		{"SELESAI WAWANCARA", false, hasil.TonePass},
		{"MENUNGGU", false, hasil.ToneWait},
		{"TIDAK LOLOS", false, hasil.ToneFail},
		{"LOLOS", true, hasil.ToneProcess},
	}
	for _, tc := range tests {
		if got := hasil.StatusTone(tc.status, tc.inProgress); got != tc.want {
			t.Errorf("StatusTone(%q, %v) = %q, want %q", tc.status, tc.inProgress, got, tc.want)
		}
	}
}

func TestTimelineRows(t *testing.T) {
	rows := hasil.TimelineRows(models.Timeline{
		TahapAktif: pengumuman.TahapValidasi1,
		Items: []models.TimelineItem{
			{Tahap: pengumuman.TahapSLHD, Nama: "Penilaian SLHD", Status: models.TimelineCompleted},
			{Tahap: pengumuman.TahapValidasi1, Nama: "Validasi 1", Status: models.TimelineActive},
			{Tahap: pengumuman.TahapWawancara, Nama: "Wawancara", Status: models.TimelinePending},
			{Tahap: "lain", Nama: "Lain", Status: "ditunda", Keterangan: "Ditunda"},
		},
	})
	want := []string{"SELESAI", "SEDANG BERLANGSUNG", "BELUM DIMULAI", "Ditunda"}
	for i, w := range want {
		if rows[i].Label != w {
			t.Errorf("row %d label = %q, want %q", i, rows[i].Label, w)
		}
	}
	if !rows[1].Active || rows[0].Active {
		t.Error("only the active stage should be marked")
	}
}

func TestTimelineYear(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	if got := hasil.TimelineYear(models.Timeline{Year: "2025"}, now); got != 2025 {
		t.Errorf("got %d", got)
	}
	if got := hasil.TimelineYear(models.Timeline{}, now); got != 2026 {
		t.Errorf("empty year: got %d", got)
	}
}

func TestTabs(t *testing.T) {
	tabs := hasil.Tabs(pengumuman.TahapValidasi2)
	if len(tabs) != 5 {
		t.Fatalf("expected 5 tabs, got %d", len(tabs))
	}
	for _, tab := range tabs {
		if tab.Active != (tab.Key == pengumuman.TahapValidasi2) {
			t.Errorf("tab %s active = %v", tab.Key, tab.Active)
		}
	}
	if tabs[4].Label != "Wawancara & Nilai Akhir" {
		t.Errorf("last tab label = %q", tabs[4].Label)
	}
}

func TestBuildTable(t *testing.T) {
	t.Run("slhd defaults", func(t *testing.T) {
		tbl := hasil.BuildTable(pengumuman.TahapSLHD, nil, nil, nil)
		if len(tbl.Rows) != 5 || tbl.Total != 0 || !tbl.ShowTotal {
			t.Errorf("table = %+v", tbl)
		}
	})

	t.Run("slhd published", func(t *testing.T) {
		detail := &models.DetailSLHD{Available: true, DetailBab: []models.ChapterDetail{
			{No: 1, Komponen: "BAB I", Bobot: models.FlexNumber{Value: 10, Valid: true}, Nilai: models.FlexNumber{Value: 80, Valid: true}, Skor: models.FlexNumber{Value: 8, Valid: true}},
			{No: 2, Komponen: "BAB II", Bobot: models.FlexNumber{Value: 50, Valid: true}, Nilai: models.FlexNumber{Value: 70, Valid: true}, Skor: models.FlexNumber{Value: 35, Valid: true}},
		}}
		tbl := hasil.BuildTable(pengumuman.TahapSLHD, nil, detail, nil)
		if len(tbl.Rows) != 2 || tbl.Total != 43 {
			t.Errorf("rows=%d total=%v", len(tbl.Rows), tbl.Total)
		}
	})

	t.Run("validasi 1 weights", func(t *testing.T) {
		res := &models.StageResult{
			NilaiPenghargaan: models.FlexNumber{Value: 80, Valid: true},
			NilaiIKLH:        models.FlexNumber{Value: 70, Valid: true},
			Status:           "LOLOS",
		}
		tbl := hasil.BuildTable(pengumuman.TahapValidasi1, res, nil, nil)
		if math.Abs(tbl.Total-76) > 1e-9 {
			t.Errorf("total = %v, want 76", tbl.Total)
		}
	})

	t.Run("validasi 2 criteria", func(t *testing.T) {
		tbl := hasil.BuildTable(pengumuman.TahapValidasi2, nil, nil, nil)
		if !tbl.Criteria || tbl.ShowTotal || len(tbl.Rows) != 2 {
			t.Errorf("table = %+v", tbl)
		}
	})

	t.Run("wawancara without score", func(t *testing.T) {
		tbl := hasil.BuildTable(pengumuman.TahapWawancara, &models.StageResult{}, nil, nil)
		if len(tbl.Rows) != 0 || tbl.ShowTotal {
			t.Errorf("table = %+v", tbl)
		}
	})
}
