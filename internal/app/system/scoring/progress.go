package scoring

import (
	"fmt"
	"math"

	"github.com/sipelita/dashboard/internal/domain/models"
)

// ProgressCard is one stage card of the progress strip.
type ProgressCard struct {
	Stage     string
	Tab       string
	Progress  int
	Detail    string
	Completed bool
}

// ratioPercent is round(num/den*100) with JavaScript rounding (half up).
// A zero denominator yields 0.
func ratioPercent(num, den int) int {
	if den <= 0 {
		return 0
	}
	return int(math.Floor(float64(num)/float64(den)*100 + 0.5))
}

func binary(finalized bool) int {
	if finalized {
		return 100
	}
	return 0
}

// ProgressCards builds the five stage cards from progress statistics.
//
// The formulas differ by stage on purpose: stage 1 is a finalized/total
// ratio, stages 2 and 3 are all-or-nothing, stages 4 and 5 are a
// processed/eligible ratio until finalized. Every division is guarded
// against a zero denominator.
func ProgressCards(s models.ProgressStats) []ProgressCard {
	cards := make([]ProgressCard, 0, 5)

	slhd := ProgressCard{
		Stage:     "Tahap 1 (SLHD)",
		Tab:       "slhd",
		Progress:  ratioPercent(s.SLHD.Finalized, s.TotalDLH),
		Completed: s.SLHD.IsFinalized,
	}
	if s.SLHD.IsFinalized {
		slhd.Detail = fmt.Sprintf("Difinalisasi - %d/%d DLH", s.SLHD.Finalized, s.TotalDLH)
	} else {
		slhd.Detail = fmt.Sprintf("Terbuka - %d/%d DLH", s.SLHD.Finalized, s.TotalDLH)
	}
	cards = append(cards, slhd)

	award := ProgressCard{
		Stage:     "Tahap 2 (Penghargaan)",
		Tab:       "penghargaan",
		Progress:  binary(s.Penghargaan.IsFinalized),
		Completed: s.Penghargaan.IsFinalized,
	}
	switch {
	case !s.SLHD.IsFinalized:
		award.Detail = "Menunggu SLHD"
	case s.Penghargaan.IsFinalized:
		award.Detail = fmt.Sprintf("Difinalisasi - %d DLH Lulus", s.Penghargaan.Finalized)
	default:
		award.Detail = fmt.Sprintf("Terbuka - %d/%d DLH", s.Penghargaan.Finalized, s.TotalDLH)
	}
	cards = append(cards, award)

	v1 := ProgressCard{
		Stage:     "Tahap 3 (Validasi 1)",
		Tab:       "validasi1",
		Progress:  binary(s.Validasi1.IsFinalized),
		Completed: s.Validasi1.IsFinalized,
	}
	switch {
	case !s.Penghargaan.IsFinalized:
		v1.Detail = "Menunggu Penghargaan"
	case s.Validasi1.IsFinalized:
		v1.Detail = fmt.Sprintf("Difinalisasi - Lulus: %d/%d DLH", s.Validasi1.Lolos, s.Validasi1.Processed)
	default:
		v1.Detail = fmt.Sprintf("memproses %d DLH", s.Validasi1.Processed)
	}
	cards = append(cards, v1)

	v2 := ProgressCard{
		Stage:     "Tahap 4 (Validasi 2)",
		Tab:       "validasi2",
		Completed: s.Validasi2.IsFinalized,
	}
	if s.Validasi2.IsFinalized {
		v2.Progress = 100
	} else {
		v2.Progress = ratioPercent(s.Validasi2.Checked, s.Validasi2.Processed)
	}
	switch {
	case !s.Validasi1.IsFinalized:
		v2.Detail = "Menunggu Validasi 1"
	case s.Validasi2.IsFinalized:
		v2.Detail = fmt.Sprintf("Difinalisasi - Lulus: %d/%d DLH", s.Validasi2.Lolos, s.Validasi2.Processed)
	default:
		v2.Detail = fmt.Sprintf("memproses: %d/%d DLH", s.Validasi2.Checked, s.Validasi2.Processed)
	}
	cards = append(cards, v2)

	iv := ProgressCard{
		Stage:     "Tahap 5 (Wawancara)",
		Tab:       "wawancara",
		Completed: s.Wawancara.IsFinalized,
	}
	if s.Wawancara.IsFinalized {
		iv.Progress = 100
	} else {
		iv.Progress = ratioPercent(s.Wawancara.WithNilai, s.Validasi2.Lolos)
	}
	switch {
	case !s.Validasi2.IsFinalized:
		iv.Detail = "Menunggu Validasi 2"
	case s.Wawancara.IsFinalized:
		iv.Detail = fmt.Sprintf("Selesai - %d DLH Diproses", s.Wawancara.Processed)
	default:
		iv.Detail = fmt.Sprintf("memproses: %d/%d DLH", s.Wawancara.WithNilai, s.Validasi2.Lolos)
	}
	cards = append(cards, iv)

	return cards
}

// LoadingCards is the placeholder strip shown before statistics arrive or
// when they failed to load.
func LoadingCards(detail string) []ProgressCard {
	return []ProgressCard{
		{Stage: "Tahap 1 (SLHD)", Tab: "slhd", Detail: detail},
		{Stage: "Tahap 2 (Penghargaan)", Tab: "penghargaan", Detail: detail},
		{Stage: "Tahap 3 (Validasi 1)", Tab: "validasi1", Detail: detail},
		{Stage: "Tahap 4 (Validasi 2)", Tab: "validasi2", Detail: detail},
		{Stage: "Tahap 5 (Wawancara)", Tab: "wawancara", Detail: detail},
	}
}
