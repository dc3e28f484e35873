package audit_test

import (
	"testing"
	"time"

	"github.com/sipelita/dashboard/internal/app/store/audit"
	"github.com/sipelita/dashboard/internal/testutil"
)

func TestStore_Log_FillsDefaults(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := audit.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	before := time.Now().Add(-time.Second)
	err := store.Log(ctx, audit.Event{
		Category:  audit.CategoryAuth,
		EventType: audit.EventLoginSuccess,
		ActorID:   "7",
		IP:        "10.0.0.1",
		Success:   true,
	})
	if err != nil {
		t.Fatalf("Log failed: %v", err)
	}

	events, err := store.GetByActor(ctx, "7", 10)
	if err != nil {
		t.Fatalf("GetByActor failed: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	e := events[0]
	if e.ID.IsZero() {
		t.Error("expected ID to be generated")
	}
	if e.Timestamp.Before(before) {
		t.Errorf("timestamp %v not set", e.Timestamp)
	}
	if e.CorrelationID == "" {
		t.Error("expected correlation id")
	}
}

func TestStore_Query_Filters(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := audit.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := store.EnsureIndexes(ctx); err != nil {
		t.Fatalf("EnsureIndexes: %v", err)
	}

	base := time.Now().UTC().Add(-time.Hour)
	seed := []audit.Event{
		{Timestamp: base, Category: audit.CategoryPenilaian, EventType: audit.EventRoundUploaded, ActorID: "2", Year: 2025, Stage: "slhd", Success: true},
		{Timestamp: base.Add(time.Minute), Category: audit.CategoryPenilaian, EventType: audit.EventRoundFinalized, ActorID: "2", Year: 2025, Stage: "slhd", Success: true},
		{Timestamp: base.Add(2 * time.Minute), Category: audit.CategoryPenilaian, EventType: audit.EventRoundUploaded, ActorID: "2", Year: 2024, Stage: "penghargaan", Success: true},
		{Timestamp: base.Add(3 * time.Minute), Category: audit.CategoryAuth, EventType: audit.EventLoginFailed, IP: "10.0.0.9"},
	}
	for _, e := range seed {
		if err := store.Log(ctx, e); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	got, err := store.Query(ctx, audit.QueryFilter{Year: 2025, Stage: "slhd"})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 slhd events for 2025, got %d", len(got))
	}
	if got[0].EventType != audit.EventRoundFinalized {
		t.Errorf("expected newest first, got %s", got[0].EventType)
	}

	n, err := store.CountByFilter(ctx, audit.QueryFilter{Category: audit.CategoryPenilaian})
	if err != nil {
		t.Fatalf("CountByFilter: %v", err)
	}
	if n != 3 {
		t.Errorf("penilaian count = %d, want 3", n)
	}

	failed, err := store.GetFailedLogins(ctx, base, 10)
	if err != nil {
		t.Fatalf("GetFailedLogins: %v", err)
	}
	if len(failed) != 1 || failed[0].IP != "10.0.0.9" {
		t.Errorf("failed logins = %+v", failed)
	}

	recent, err := store.GetRecent(ctx, 2)
	if err != nil {
		t.Fatalf("GetRecent: %v", err)
	}
	if len(recent) != 2 {
		t.Errorf("GetRecent limit: got %d", len(recent))
	}
}

func TestStore_Query_Empty(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := audit.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	events, err := store.Query(ctx, audit.QueryFilter{ActorID: "nobody"})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if events == nil || len(events) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", events)
	}
}

func TestStore_DeleteBefore(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := audit.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	now := time.Now().UTC()
	for _, ts := range []time.Time{now.Add(-48 * time.Hour), now.Add(-30 * time.Hour), now} {
		if err := store.Log(ctx, audit.Event{Timestamp: ts, Category: audit.CategoryAuth, EventType: audit.EventLogout}); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	n, err := store.DeleteBefore(ctx, now.Add(-24*time.Hour))
	if err != nil {
		t.Fatalf("DeleteBefore: %v", err)
	}
	if n != 2 {
		t.Errorf("deleted %d, want 2", n)
	}
	left, err := store.CountByFilter(ctx, audit.QueryFilter{})
	if err != nil || left != 1 {
		t.Errorf("left = %d, %v", left, err)
	}
}
