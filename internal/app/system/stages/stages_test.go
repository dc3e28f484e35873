package stages

import (
	"testing"
	"time"

	"github.com/sipelita/dashboard/internal/domain/models"
)

func at(s string) *time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return &t
}

func TestSortRounds_NewestFirst(t *testing.T) {
	rounds := []models.Round{
		{ID: 1, UploadedAt: at("2025-01-01T00:00:00Z")},
		{ID: 3, UploadedAt: nil},
		{ID: 2, UploadedAt: at("2025-03-01T00:00:00Z")},
		{ID: 4, UploadedAt: at("2025-03-01T00:00:00Z")},
	}
	SortRounds(rounds)
	want := []int64{4, 2, 1, 3}
	for i, id := range want {
		if rounds[i].ID != id {
			t.Fatalf("order = %v, want %v", []int64{rounds[0].ID, rounds[1].ID, rounds[2].ID, rounds[3].ID}, want)
		}
	}
	cur, ok := Current(rounds)
	if !ok || cur.ID != 4 {
		t.Errorf("Current = %d, want 4", cur.ID)
	}
}

func TestFind(t *testing.T) {
	rounds := []models.Round{{ID: 9}, {ID: 7}}
	if r, _ := Find(rounds, 7); r.ID != 7 {
		t.Errorf("Find(7) = %d", r.ID)
	}
	if r, _ := Find(rounds, 0); r.ID != 9 {
		t.Errorf("Find(0) = %d, want current", r.ID)
	}
	if r, _ := Find(rounds, 42); r.ID != 9 {
		t.Errorf("Find(missing) = %d, want current", r.ID)
	}
	if _, ok := Find(nil, 0); ok {
		t.Error("Find on empty should report false")
	}
}

func TestFinalizeControl_Lifecycle(t *testing.T) {
	round := &models.Round{ID: 1, Status: models.RoundUploaded}

	c := FinalizeControl(round, 0, false)
	if c.ShowFinalize || c.ShowLock {
		t.Errorf("uploaded round without rows: %+v", c)
	}

	round.Status = models.RoundParsedOK
	c = FinalizeControl(round, 12, false)
	if !c.ShowFinalize || c.ShowLock || c.UploadDisabled {
		t.Errorf("parsed round with rows: %+v", c)
	}

	round.Status = models.RoundFinalized
	c = FinalizeControl(round, 12, false)
	if c.ShowFinalize || !c.ShowLock || !c.UploadDisabled {
		t.Errorf("finalized round: %+v", c)
	}
}

func TestFinalizeControl_FlagOnly(t *testing.T) {
	c := FinalizeControl(&models.Round{Status: models.RoundParsedOK, IsFinalized: true}, 3, false)
	if c.ShowFinalize || !c.ShowLock {
		t.Errorf("is_finalized flag should lock: %+v", c)
	}
}

func TestFinalizeControl_NoRound(t *testing.T) {
	c := FinalizeControl(nil, 5, true)
	if c.ShowFinalize || c.ShowLock || !c.UploadDisabled {
		t.Errorf("no round while uploading: %+v", c)
	}
}

func TestValidationFinalizedDetectors(t *testing.T) {
	v1 := []models.Validation1Row{{Status: "draft"}, {Status: models.DocFinalized}}
	if !Validation1Finalized(v1) {
		t.Error("any finalized row should lock Validation 1")
	}
	v2 := []models.Validation2Row{{Status: "draft"}, {Status: models.DocFinalized}}
	if Validation2Finalized(v2) {
		t.Error("Validation 2 is judged by the first row only")
	}
	if Validation2Finalized(nil) || InterviewsFinalized(nil) {
		t.Error("empty stages are not finalized")
	}
}

func TestParse(t *testing.T) {
	if Parse("validasi2") != Validasi2 || Parse("bogus") != SLHD {
		t.Error("unexpected Parse result")
	}
}
