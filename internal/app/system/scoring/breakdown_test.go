package scoring

import (
	"encoding/json"
	"testing"

	"github.com/sipelita/dashboard/internal/domain/models"
)

func TestValidation1Rows_FromStringScores(t *testing.T) {
	var res models.StageResult
	if err := json.Unmarshal([]byte(`{"nilai_penghargaan":"80","nilai_iklh":50,"status":"lulus"}`), &res); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	rows := Validation1Rows(&res)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if !approx(rows[0].Score, 48) || !approx(rows[1].Score, 20) {
		t.Errorf("scores = %v, %v; want 48, 20", rows[0].Score, rows[1].Score)
	}
	if rows[0].Weight != 60 || rows[1].Weight != 40 {
		t.Errorf("weights = %v, %v", rows[0].Weight, rows[1].Weight)
	}
	if rows[0].Status != "lulus" {
		t.Errorf("status = %q", rows[0].Status)
	}
}

func TestValidation1Rows_Unpublished(t *testing.T) {
	rows := Validation1Rows(nil)
	if rows[0].Score != 0 || rows[0].Status != LabelMissing {
		t.Errorf("unexpected row %+v", rows[0])
	}
}

func TestValidation2Rows(t *testing.T) {
	met, unmet := CriterionMet, "Tidak Memenuhi"
	rows := Validation2Rows(&models.StageResult{KriteriaWTP: &met, KriteriaKasus: &unmet})
	if rows[0].Note != "Laporan keuangan daerah mendapat opini WTP dari BPK" {
		t.Errorf("wtp note = %q", rows[0].Note)
	}
	if rows[1].Note != "Terdapat kasus hukum lingkungan yang sedang berjalan" {
		t.Errorf("legal note = %q", rows[1].Note)
	}
}

func TestChapterRows_FallsBackToDefaults(t *testing.T) {
	rows := ChapterRows(&models.DetailSLHD{Available: false})
	if len(rows) != 5 || rows[1].Weight != 50 {
		t.Errorf("unexpected defaults %+v", rows)
	}
}

func TestTimelineLabel(t *testing.T) {
	tests := map[string]string{
		models.TimelinePending:   "BELUM DIMULAI",
		models.TimelineActive:    "SEDANG BERLANGSUNG",
		models.TimelineCompleted: "SELESAI",
	}
	for status, want := range tests {
		if got := TimelineLabel(models.TimelineItem{Status: status}); got != want {
			t.Errorf("TimelineLabel(%s) = %q, want %q", status, got, want)
		}
	}
	if got := TimelineLabel(models.TimelineItem{Status: "other", Keterangan: "Ditunda"}); got != "Ditunda" {
		t.Errorf("fallback = %q", got)
	}
}
