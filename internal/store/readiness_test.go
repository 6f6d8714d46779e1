// ABOUTME: Tests for the readiness repository: one live entry per day, soft delete, patching.
package store

import (
	"fmt"
	"sync"
	"testing"

	"github.com/harperreed/trainlog/internal/models"
)

func restedAnswers() models.ReadinessAnswers {
	a := models.DefaultAnswers()
	a.SleepLastNight = 9
	a.RecoveryEnergyToday = 9
	a.MuscleFatigue = 1
	a.MentalStress = 1
	return a
}

func tiredAnswers() models.ReadinessAnswers {
	a := models.DefaultAnswers()
	a.SleepLastNight = 2
	a.RecoveryEnergyToday = 2
	a.MuscleFatigue = 8
	a.MentalStress = 8
	return a
}

func TestUpsertCreatesThenOverwrites(t *testing.T) {
	rs, _ := newReadinessFixture(t)

	first, err := rs.UpsertForDate("2025-06-10", tiredAnswers())
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if first.ID == "" || first.UserID != testUserID {
		t.Fatalf("identity not assigned: %+v", first)
	}

	second, err := rs.UpsertForDate("2025-06-10", restedAnswers())
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("upsert created a new entry: %q vs %q", second.ID, first.ID)
	}
	if second.Score <= first.Score {
		t.Fatalf("rested score %.1f not above tired score %.1f", second.Score, first.Score)
	}
	if second.UpdatedAt == first.UpdatedAt {
		t.Fatal("updatedAt not advanced on overwrite")
	}
	if second.CreatedAt != first.CreatedAt {
		t.Fatal("createdAt must survive overwrite")
	}

	all, err := rs.GetAll()
	if err != nil {
		t.Fatalf("get all: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("len = %d, want exactly one entry for the day", len(all))
	}
	if all[0].Answers.SleepLastNight != 9 {
		t.Fatalf("stored answers must be the latest write: %+v", all[0].Answers)
	}
}

func TestReadinessGetByDate(t *testing.T) {
	rs, _ := newReadinessFixture(t)

	if _, err := rs.UpsertForDate("2025-06-10", models.DefaultAnswers()); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	got, err := rs.GetByDate("2025-06-10")
	if err != nil {
		t.Fatalf("get by date: %v", err)
	}
	if got == nil || got.Date != "2025-06-10" {
		t.Fatalf("got %+v", got)
	}

	missing, err := rs.GetByDate("2025-06-11")
	if err != nil {
		t.Fatalf("get by date: %v", err)
	}
	if missing != nil {
		t.Fatalf("want nil for absent day, got %+v", missing)
	}
}

func TestDeleteByDateIsSoft(t *testing.T) {
	rs, backend := newReadinessFixture(t)

	entry, err := rs.UpsertForDate("2025-06-10", models.DefaultAnswers())
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if err := rs.DeleteByDate("2025-06-10"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	got, err := rs.GetByDate("2025-06-10")
	if err != nil {
		t.Fatalf("get by date: %v", err)
	}
	if got != nil {
		t.Fatalf("soft-deleted entry still visible: %+v", got)
	}

	// Cell stays resident with the tombstone flag set.
	if _, err := backend.Get(readinessRecordPrefix + entry.ID); err != nil {
		t.Fatalf("tombstoned cell gone from backend: %v", err)
	}
}

func TestDeleteByDateMissingIsNoError(t *testing.T) {
	rs, _ := newReadinessFixture(t)

	if err := rs.DeleteByDate("2025-06-10"); err != nil {
		t.Fatalf("delete of absent day: %v", err)
	}
}

func TestUpsertAfterSoftDeleteCreatesFreshEntry(t *testing.T) {
	rs, _ := newReadinessFixture(t)

	old, err := rs.UpsertForDate("2025-06-10", tiredAnswers())
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if err := rs.DeleteByDate("2025-06-10"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	fresh, err := rs.UpsertForDate("2025-06-10", restedAnswers())
	if err != nil {
		t.Fatalf("re-upsert: %v", err)
	}
	if fresh.ID == old.ID {
		t.Fatal("expected a new id after soft delete")
	}

	all, err := rs.GetAll()
	if err != nil {
		t.Fatalf("get all: %v", err)
	}
	if len(all) != 1 || all[0].ID != fresh.ID {
		t.Fatalf("live entries = %+v", all)
	}
}

func TestUpdatePatchRecomputesScore(t *testing.T) {
	rs, _ := newReadinessFixture(t)

	entry, err := rs.UpsertForDate("2025-06-10", tiredAnswers())
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}

	better := restedAnswers()
	updated, err := rs.Update(entry.ID, ReadinessPatch{Answers: &better})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated == nil {
		t.Fatal("update returned nil for live id")
	}
	if updated.Score != models.ComputeReadinessScore(better) {
		t.Fatalf("score %.1f not recomputed from patched answers", updated.Score)
	}
}

func TestUpdatePatchDateMovesEntry(t *testing.T) {
	rs, _ := newReadinessFixture(t)

	entry, err := rs.UpsertForDate("2025-06-01", models.DefaultAnswers())
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if _, err := rs.UpsertForDate("2025-06-05", models.DefaultAnswers()); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	newDate := "2025-06-09"
	if _, err := rs.Update(entry.ID, ReadinessPatch{Date: &newDate}); err != nil {
		t.Fatalf("update: %v", err)
	}

	all, err := rs.GetAll()
	if err != nil {
		t.Fatalf("get all: %v", err)
	}
	if all[0].ID != entry.ID || all[0].Date != newDate {
		t.Fatalf("moved entry not first: %+v", all[0])
	}
}

func TestReadinessRangeAscending(t *testing.T) {
	rs, _ := newReadinessFixture(t)

	for _, d := range []string{"2025-06-03", "2025-06-01", "2025-06-05"} {
		if _, err := rs.UpsertForDate(d, models.DefaultAnswers()); err != nil {
			t.Fatalf("upsert %s: %v", d, err)
		}
	}

	got, err := rs.GetRangeInclusive("2025-06-01", "2025-06-03")
	if err != nil {
		t.Fatalf("range: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Date != "2025-06-01" || got[1].Date != "2025-06-03" {
		t.Fatalf("order: %q then %q", got[0].Date, got[1].Date)
	}
}

func TestConcurrentUpsertsSameDayYieldOneEntry(t *testing.T) {
	rs, _ := newReadinessFixture(t)
	rs.now = models.NowISO

	// Concurrent upserts for one day must not both take the insert path;
	// the day keeps exactly one live entry no matter the interleaving.
	for round := 0; round < 100; round++ {
		date := fmt.Sprintf("2025-06-%02d", round%28+1)

		var wg sync.WaitGroup
		errs := make(chan error, 2)
		wg.Add(2)
		for _, a := range []models.ReadinessAnswers{restedAnswers(), tiredAnswers()} {
			go func(a models.ReadinessAnswers) {
				defer wg.Done()
				_, err := rs.UpsertForDate(date, a)
				errs <- err
			}(a)
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			if err != nil {
				t.Fatalf("upsert: %v", err)
			}
		}

		all, err := rs.GetAll()
		if err != nil {
			t.Fatalf("get all: %v", err)
		}
		seen := map[string]int{}
		for _, e := range all {
			seen[e.Date]++
		}
		if seen[date] != 1 {
			t.Fatalf("round %d: %d live entries for %s, want 1", round, seen[date], date)
		}
	}
}
