package scoring

import (
	"math"
	"testing"

	"github.com/sipelita/dashboard/internal/domain/models"
)

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestChapterTwoAverage_AllNil(t *testing.T) {
	if got := ChapterTwoAverage(models.ParsedSLHD{}); got != nil {
		t.Errorf("ChapterTwoAverage(empty) = %v, want nil", *got)
	}
}

func TestChapterTwoAverage_IgnoresMissing(t *testing.T) {
	row := models.ParsedSLHD{
		KualitasAir:    Ptr(80),
		KualitasUdara:  Ptr(60),
		PerubahanIklim: Ptr(70),
	}
	got := ChapterTwoAverage(row)
	if got == nil || !approx(*got, 70) {
		t.Fatalf("ChapterTwoAverage = %v, want 70", got)
	}
}

func TestChapterTwoAverage_AllPresent(t *testing.T) {
	row := models.ParsedSLHD{}
	vals := []*float64{}
	for i := 1; i <= 12; i++ {
		vals = append(vals, Ptr(float64(i)))
	}
	row.JumlahPemanfaatanPelayananLaboratorium = vals[0]
	row.DayaDukungDanDayaTampung = vals[1]
	row.KajianLingkunganHidupStrategis = vals[2]
	row.KeanekaragamanHayati = vals[3]
	row.KualitasAir = vals[4]
	row.LautPesisirDanPantai = vals[5]
	row.KualitasUdara = vals[6]
	row.PengelolaanSampahDanLimbah = vals[7]
	row.LahanDanHutan = vals[8]
	row.PerubahanIklim = vals[9]
	row.RisikoBencana = vals[10]
	row.PenetapanIsuPrioritas = vals[11]

	got := ChapterTwoAverage(row)
	if got == nil || !approx(*got, 6.5) {
		t.Fatalf("ChapterTwoAverage = %v, want 6.5", got)
	}
}

func TestMeanPresent_SkipsNaN(t *testing.T) {
	got := MeanPresent(Ptr(math.NaN()), Ptr(10), nil, Ptr(math.Inf(1)))
	if got == nil || !approx(*got, 10) {
		t.Fatalf("MeanPresent = %v, want 10", got)
	}
}

func TestValidation1WeightedScore(t *testing.T) {
	tests := []struct {
		name         string
		award, index *float64
		want         float64
	}{
		{"zeros", Ptr(0), Ptr(0), 0},
		{"hundreds", Ptr(100), Ptr(100), 100},
		{"mixed", Ptr(80), Ptr(50), 68},
		{"nil award", nil, Ptr(50), 20},
		{"nil both", nil, nil, 0},
		{"nan index", Ptr(50), Ptr(math.NaN()), 30},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Validation1WeightedScore(tt.award, tt.index); !approx(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPassFailLabel(t *testing.T) {
	tests := []struct {
		total *float64
		want  string
	}{
		{Ptr(59.999), LabelFail},
		{Ptr(60), LabelPass},
		{Ptr(95), LabelPass},
		{nil, LabelMissing},
		{Ptr(math.NaN()), LabelMissing},
	}
	for _, tt := range tests {
		if got := PassFailLabel(tt.total, DefaultPassThreshold); got != tt.want {
			t.Errorf("PassFailLabel(%v) = %q, want %q", Format(tt.total), got, tt.want)
		}
	}
}

func TestInterviewFinalScore(t *testing.T) {
	got := InterviewFinalScore(Ptr(80), true, Ptr(50))
	if got == nil || !approx(*got, 77) {
		t.Fatalf("InterviewFinalScore(80, 50) = %v, want 77", got)
	}

	if got := InterviewFinalScore(Ptr(80), false, Ptr(50)); got != nil {
		t.Errorf("expected nil before recap loads, got %v", *got)
	}

	got = InterviewFinalScore(nil, true, nil)
	if got == nil || *got != 0 {
		t.Errorf("expected 0 for loaded but empty recap, got %v", got)
	}

	got = InterviewFinalScore(Ptr(80), true, nil)
	if got == nil || !approx(*got, 72) {
		t.Errorf("expected 72 without interview score, got %v", got)
	}
}

func TestMedalAndTopN(t *testing.T) {
	if Medal(1) != MedalGold || Medal(2) != MedalSilver || Medal(3) != MedalBronze || Medal(4) != "" {
		t.Error("unexpected medal assignment")
	}
	if !InTopN(5, 5) || InTopN(6, 5) || InTopN(0, 5) || InTopN(1, 0) {
		t.Error("unexpected Top-N membership")
	}
}

func TestBonus(t *testing.T) {
	if got := Bonus(80); !approx(got, 4) {
		t.Errorf("Bonus(80) = %v, want 4", got)
	}
	if got := Bonus(math.Inf(1)); got != 0 {
		t.Errorf("Bonus(+Inf) = %v, want 0", got)
	}
}

func TestFormat(t *testing.T) {
	if Format(nil) != "-" {
		t.Errorf("Format(nil) = %q", Format(nil))
	}
	if Format(Ptr(77)) != "77.00" {
		t.Errorf("Format(77) = %q", Format(Ptr(77)))
	}
	if got := FormatDigits(Ptr(77.56), 1); got != "77.6" {
		t.Errorf("FormatDigits(77.56, 1) = %q", got)
	}
	if got := FormatDigits(Ptr(80), 1); got != "80.0" {
		t.Errorf("FormatDigits(80, 1) = %q", got)
	}
	if FormatDigits(nil, 1) != LabelMissing {
		t.Error("FormatDigits(nil) should be missing")
	}
}
