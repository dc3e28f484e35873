// Package stages describes the six-step assessment pipeline and the
// finalize gates of each step.
package stages

import (
	"sort"

	"github.com/sipelita/dashboard/internal/domain/models"
)

// Stage identifies a pipeline step. The value doubles as the tab key.
type Stage string

const (
	SLHD        Stage = "slhd"
	Penghargaan Stage = "penghargaan"
	Validasi1   Stage = "validasi1"
	Validasi2   Stage = "validasi2"
	Peringkat   Stage = "peringkat"
	Wawancara   Stage = "wawancara"
)

// Order is the pipeline order. A stage only has data once its predecessor
// has been finalized on the server.
var Order = []Stage{SLHD, Penghargaan, Validasi1, Validasi2, Peringkat, Wawancara}

var labels = map[Stage]string{
	SLHD:        "Penilaian SLHD",
	Penghargaan: "Penilaian Penghargaan",
	Validasi1:   "Validasi 1",
	Validasi2:   "Validasi 2",
	Peringkat:   "Penetapan Peringkat",
	Wawancara:   "Wawancara",
}

// Label returns the tab label.
func (s Stage) Label() string { return labels[s] }

// Valid reports whether s is a known stage.
func (s Stage) Valid() bool {
	_, ok := labels[s]
	return ok
}

// Parse returns the stage for a tab key, defaulting to SLHD.
func Parse(key string) Stage {
	s := Stage(key)
	if s.Valid() {
		return s
	}
	return SLHD
}

// HasRounds reports whether the stage is driven by uploaded rounds.
func (s Stage) HasRounds() bool { return s == SLHD || s == Penghargaan }

// SortRounds orders rounds newest first by upload time, then by id. Rounds
// without a timestamp sort last. The sort is applied regardless of the order
// the API returned.
func SortRounds(rounds []models.Round) {
	sort.SliceStable(rounds, func(i, j int) bool {
		a, b := rounds[i], rounds[j]
		switch {
		case a.UploadedAt == nil && b.UploadedAt != nil:
			return false
		case a.UploadedAt != nil && b.UploadedAt == nil:
			return true
		case a.UploadedAt != nil && b.UploadedAt != nil && !a.UploadedAt.Equal(*b.UploadedAt):
			return a.UploadedAt.After(*b.UploadedAt)
		}
		return a.ID > b.ID
	})
}

// Current returns the newest round of an already sorted slice.
func Current(rounds []models.Round) (models.Round, bool) {
	if len(rounds) == 0 {
		return models.Round{}, false
	}
	return rounds[0], true
}

// Find returns the round with id, or the current round when id is 0 or not
// present.
func Find(rounds []models.Round, id int64) (models.Round, bool) {
	if id != 0 {
		for _, r := range rounds {
			if r.ID == id {
				return r, true
			}
		}
	}
	return Current(rounds)
}

// Control is what the round panel may show.
type Control struct {
	ShowFinalize   bool
	ShowLock       bool
	UploadDisabled bool
}

// FinalizeControl decides the round panel controls. Finalize is offered only
// for an unlocked round that has parsed rows. A locked round shows the lock
// indicator and can never be finalized again.
func FinalizeControl(round *models.Round, parsedCount int, uploading bool) Control {
	if round == nil {
		return Control{UploadDisabled: uploading}
	}
	locked := round.Locked()
	return Control{
		ShowFinalize:   !locked && parsedCount > 0,
		ShowLock:       locked,
		UploadDisabled: locked || uploading,
	}
}

// Validation1Finalized reports whether Validation 1 is locked: any row
// carrying the finalized status locks the whole year.
func Validation1Finalized(rows []models.Validation1Row) bool {
	for _, r := range rows {
		if r.Status == models.DocFinalized {
			return true
		}
	}
	return false
}

// Validation2Finalized reports whether Validation 2 is locked, judged by the
// first row.
func Validation2Finalized(rows []models.Validation2Row) bool {
	return len(rows) > 0 && rows[0].Status == models.DocFinalized
}

// InterviewsFinalized reports whether the interview stage is locked, judged
// by the first row.
func InterviewsFinalized(rows []models.InterviewRow) bool {
	return len(rows) > 0 && rows[0].IsFinalized
}
