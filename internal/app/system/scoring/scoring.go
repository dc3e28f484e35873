// Package scoring holds the score formulas shown on the assessment pages
// and exports. None of the functions panic; nil, NaN and infinite inputs are
// treated as absent.
package scoring

import (
	"fmt"
	"math"
	"strconv"

	"github.com/sipelita/dashboard/internal/domain/models"
)

// DefaultPassThreshold is the inclusive pass mark for SLHD totals.
const DefaultPassThreshold = 60.0

// Weights used by the formulas below.
const (
	AwardWeight     = 0.6
	IndexWeight     = 0.4
	RecapWeight     = 0.9
	InterviewWeight = 0.1
	RankingBonus    = 0.05
)

// Labels for PassFailLabel.
const (
	LabelPass    = "Lulus"
	LabelFail    = "Tidak Lulus"
	LabelMissing = "-"
)

// finite returns the value of p and whether it is usable.
func finite(p *float64) (float64, bool) {
	if p == nil || math.IsNaN(*p) || math.IsInf(*p, 0) {
		return 0, false
	}
	return *p, true
}

// orZero returns *p, or 0 when p is absent or not finite.
func orZero(p *float64) float64 {
	v, _ := finite(p)
	return v
}

// ChapterTwoAverage returns the mean of the present matra scores of row.
// Missing matra values shrink the denominator instead of counting as zero.
// It returns nil when no matra score is present.
func ChapterTwoAverage(row models.ParsedSLHD) *float64 {
	matra := row.Matra()
	return MeanPresent(matra[:]...)
}

// MeanPresent averages the finite, non-nil values. nil when there are none.
func MeanPresent(vals ...*float64) *float64 {
	var sum float64
	n := 0
	for _, p := range vals {
		if v, ok := finite(p); ok {
			sum += v
			n++
		}
	}
	if n == 0 {
		return nil
	}
	avg := sum / float64(n)
	return &avg
}

// Validation1WeightedScore returns 0.6*award + 0.4*index. Absent inputs
// count as 0.
func Validation1WeightedScore(award, index *float64) float64 {
	return orZero(award)*AwardWeight + orZero(index)*IndexWeight
}

// PassFailLabel labels total against threshold. The threshold itself passes.
// A missing total yields the neutral "-".
func PassFailLabel(total *float64, threshold float64) string {
	v, ok := finite(total)
	if !ok {
		return LabelMissing
	}
	if v >= threshold {
		return LabelPass
	}
	return LabelFail
}

// InterviewFinalScore returns the NT Final score 0.9*recap + 0.1*interview.
// recapLoaded reports whether the recap request has completed; until it
// has, the result is nil. Absent values count as 0 once loaded.
func InterviewFinalScore(recap *float64, recapLoaded bool, interview *float64) *float64 {
	if !recapLoaded {
		return nil
	}
	v := orZero(recap)*RecapWeight + orZero(interview)*InterviewWeight
	return &v
}

// Bonus is the ranking bonus column (5% of the total score).
func Bonus(total float64) float64 {
	if math.IsNaN(total) || math.IsInf(total, 0) {
		return 0
	}
	return total * RankingBonus
}

// Medal names for the top three ranks.
const (
	MedalGold   = "gold"
	MedalSilver = "silver"
	MedalBronze = "bronze"
)

// Medal returns the medal for a 1-based rank, or "" below third place.
func Medal(rank int) string {
	switch rank {
	case 1:
		return MedalGold
	case 2:
		return MedalSilver
	case 3:
		return MedalBronze
	}
	return ""
}

// InTopN reports whether rank earns the Top-N badge.
func InTopN(rank, topN int) bool {
	return rank >= 1 && topN > 0 && rank <= topN
}

// Format renders a score with two decimals, or "-" when absent.
func Format(p *float64) string {
	return FormatDigits(p, 2)
}

// FormatDigits renders a score with the given number of decimals, or "-"
// when absent.
func FormatDigits(p *float64, digits int) string {
	v, ok := finite(p)
	if !ok {
		return LabelMissing
	}
	return strconv.FormatFloat(v, 'f', digits, 64)
}

// FormatValue renders a present score with two decimals.
func FormatValue(v float64) string {
	return Format(&v)
}

// Percent renders an integer percentage.
func Percent(p int) string {
	return fmt.Sprintf("%d%%", p)
}

// Ptr returns a pointer to v. Templates and tests build optional scores
// with it.
func Ptr(v float64) *float64 { return &v }
