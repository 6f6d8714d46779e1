// ABOUTME: Tests for the settings blob and goal bucket mapping.
package settings

import (
	"testing"

	"github.com/harperreed/trainlog/internal/kv"
	"github.com/harperreed/trainlog/internal/models"
)

func setupStore(t *testing.T) (*Store, kv.Backend) {
	t.Helper()
	backend, err := kv.OpenBadgerInMemory()
	if err != nil {
		t.Fatalf("open backend: %v", err)
	}
	t.Cleanup(func() { _ = backend.Close() })
	return NewStore(backend), backend
}

func TestGetMissingReturnsDefaults(t *testing.T) {
	store, _ := setupStore(t)

	got, err := store.Get()
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.MonthlyTargets == nil || len(got.MonthlyTargets) != 0 {
		t.Fatalf("defaults: %+v", got)
	}
	if got.MonthlyMinutesTarget != 0 {
		t.Fatalf("minutes target = %d, want 0", got.MonthlyMinutesTarget)
	}
}

func TestGetMalformedReturnsDefaults(t *testing.T) {
	store, backend := setupStore(t)

	if err := backend.Set("app_settings_v1", []byte("{broken")); err != nil {
		t.Fatalf("seed: %v", err)
	}
	got, err := store.Get()
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got.MonthlyTargets) != 0 {
		t.Fatalf("malformed blob must read as defaults: %+v", got)
	}
}

func TestUpsertAndRemoveTarget(t *testing.T) {
	store, _ := setupStore(t)

	if err := store.UpsertMonthlyTarget(GoalStrength, 8.4); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	got, err := store.Get()
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.MonthlyTargets[GoalStrength] != 8 {
		t.Fatalf("target = %d, want rounded 8", got.MonthlyTargets[GoalStrength])
	}

	if err := store.UpsertMonthlyTarget(GoalStrength, 0); err != nil {
		t.Fatalf("remove: %v", err)
	}
	got, err = store.Get()
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if _, ok := got.MonthlyTargets[GoalStrength]; ok {
		t.Fatal("zero value must remove the target")
	}
}

func TestKeyFromRecord(t *testing.T) {
	tests := []struct {
		name string
		rec  models.TrainingRecord
		want GoalKey
	}{
		{"ice individual", models.TrainingRecord{Category: models.CategoryIce, Subtype: "Individuál"}, GoalIceIndividual},
		{"ice team", models.TrainingRecord{Category: models.CategoryIce, Subtype: "Tímový"}, GoalIceTeam},
		{"ice other subtype", models.TrainingRecord{Category: models.CategoryIce, Subtype: "Zápas"}, ""},
		{"strength", models.TrainingRecord{Category: models.CategoryConditioning, Group: models.GroupStrength}, GoalStrength},
		{"cardio", models.TrainingRecord{Category: models.CategoryConditioning, Group: models.GroupCardio}, GoalCardio},
		{"mobility", models.TrainingRecord{Category: models.CategoryConditioning, Group: models.GroupMobility}, GoalMobility},
		{"classroom", models.TrainingRecord{Category: models.CategoryClassroom}, ""},
		{"empty", models.TrainingRecord{}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KeyFromRecord(tt.rec); got != tt.want {
				t.Errorf("KeyFromRecord = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMonthlyProgress(t *testing.T) {
	cfg := Settings{MonthlyTargets: map[GoalKey]int{
		GoalStrength: 8,
		GoalCardio:   4,
	}}
	records := []models.TrainingRecord{
		{Category: models.CategoryConditioning, Group: models.GroupStrength},
		{Category: models.CategoryConditioning, Group: models.GroupStrength},
		{Category: models.CategoryIce, Subtype: "Individuál"},
		{Category: models.CategoryClassroom}, // no bucket
	}

	progress := MonthlyProgress(cfg, records)

	byKey := map[GoalKey]Progress{}
	for _, p := range progress {
		byKey[p.Key] = p
	}
	if p := byKey[GoalStrength]; p.Done != 2 || p.Target != 8 {
		t.Fatalf("strength progress: %+v", p)
	}
	if p := byKey[GoalCardio]; p.Done != 0 || p.Target != 4 {
		t.Fatalf("cardio target with no sessions must still show: %+v", p)
	}
	if p := byKey[GoalIceIndividual]; p.Done != 1 || p.Target != 0 {
		t.Fatalf("untargeted sessions must still show: %+v", p)
	}
	if _, ok := byKey[GoalMobility]; ok {
		t.Fatal("bucket with no target and no sessions must be omitted")
	}
}
