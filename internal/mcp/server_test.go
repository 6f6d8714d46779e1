// ABOUTME: Tests for MCP tool handlers against an in-memory backend.
package mcp

import (
	"context"
	"reflect"
	"strings"
	"testing"

	"github.com/harperreed/trainlog/internal/identity"
	"github.com/harperreed/trainlog/internal/kv"
	"github.com/harperreed/trainlog/internal/models"
	"github.com/harperreed/trainlog/internal/store"
)

func setupServer(t *testing.T) *Server {
	t.Helper()
	backend, err := kv.OpenBadgerInMemory()
	if err != nil {
		t.Fatalf("open backend: %v", err)
	}
	t.Cleanup(func() { _ = backend.Close() })

	ident := identity.NewProvider(backend)
	s, err := NewServer(
		store.NewTrainingStore(backend, ident),
		store.NewReadinessStore(backend, ident),
	)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	return s
}

func TestHandleAddTraining(t *testing.T) {
	s := setupServer(t)

	_, out, err := s.handleAddTraining(context.Background(), nil, addTrainingInput{
		Date:     "2025-06-10",
		Duration: 45,
		Category: "Kondice",
		Group:    "Silovy",
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if out.ID == "" || out.Date != "2025-06-10" {
		t.Fatalf("output: %+v", out)
	}
	if out.Type != "Silový" {
		t.Fatalf("type = %q, want Silový", out.Type)
	}
}

func TestHandleListTrainingsEmpty(t *testing.T) {
	s := setupServer(t)

	_, out, err := s.handleListTrainings(context.Background(), nil, listTrainingsInput{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	msg, ok := out.(map[string]interface{})
	if !ok || msg["message"] == nil {
		t.Fatalf("expected empty message, got %#v", out)
	}
}

func TestHandleListTrainingsPaginates(t *testing.T) {
	s := setupServer(t)

	for _, d := range []string{"2025-06-01", "2025-06-02", "2025-06-03"} {
		if _, _, err := s.handleAddTraining(context.Background(), nil, addTrainingInput{Date: d, Duration: 30}); err != nil {
			t.Fatalf("add: %v", err)
		}
	}

	_, out, err := s.handleListTrainings(context.Background(), nil, listTrainingsInput{Limit: 2})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	page := out.(map[string]interface{})
	items := page["items"].([]models.TrainingRecord)
	if len(items) != 2 {
		t.Fatalf("items = %d, want 2", len(items))
	}
	if page["hasMore"] != true || page["nextCursor"] == "" {
		t.Fatalf("pagination fields: %#v", page)
	}
}

func TestHandleDeleteTraining(t *testing.T) {
	s := setupServer(t)

	_, added, err := s.handleAddTraining(context.Background(), nil, addTrainingInput{Date: "2025-06-10", Duration: 30})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	if _, _, err := s.handleDeleteTraining(context.Background(), nil, deleteTrainingInput{ID: added.ID}); err != nil {
		t.Fatalf("delete: %v", err)
	}

	got, err := s.trainings.GetByID(added.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != nil {
		t.Fatal("training still present after delete")
	}
}

func TestHandleLogAndGetReadiness(t *testing.T) {
	s := setupServer(t)

	sleep := 9.0
	fatigue := 1.0
	_, logged, err := s.handleLogReadiness(context.Background(), nil, logReadinessInput{
		Date:           "2025-06-10",
		SleepLastNight: &sleep,
		MuscleFatigue:  &fatigue,
	})
	if err != nil {
		t.Fatalf("log: %v", err)
	}
	if logged.Score <= 6.4 {
		t.Fatalf("score %.1f should beat neutral", logged.Score)
	}

	_, out, err := s.handleGetReadiness(context.Background(), nil, getReadinessInput{Date: "2025-06-10"})
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	entry, ok := out.(*models.ReadinessEntry)
	if !ok {
		t.Fatalf("expected entry, got %#v", out)
	}
	if entry.Answers.SleepLastNight != 9 {
		t.Fatalf("answers not stored: %+v", entry.Answers)
	}
}

func TestHandleGetReadinessMissing(t *testing.T) {
	s := setupServer(t)

	_, out, err := s.handleGetReadiness(context.Background(), nil, getReadinessInput{Date: "2025-06-10"})
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if _, ok := out.(map[string]interface{}); !ok {
		t.Fatalf("expected message for missing day, got %#v", out)
	}
}

func TestHandleReadinessRange(t *testing.T) {
	s := setupServer(t)

	for _, d := range []string{"2025-06-01", "2025-06-03", "2025-06-05"} {
		if _, _, err := s.handleLogReadiness(context.Background(), nil, logReadinessInput{Date: d}); err != nil {
			t.Fatalf("log %s: %v", d, err)
		}
	}

	_, out, err := s.handleReadinessRange(context.Background(), nil, readinessRangeInput{From: "2025-06-01", To: "2025-06-03"})
	if err != nil {
		t.Fatalf("range: %v", err)
	}
	entries, ok := out.([]models.ReadinessEntry)
	if !ok {
		t.Fatalf("expected entries, got %#v", out)
	}
	if len(entries) != 2 || entries[0].Date != "2025-06-01" {
		t.Fatalf("entries: %+v", entries)
	}
}

// The schema descriptions steer MCP clients; each sub-score's polarity
// must match how the score formula treats it (positives add, negatives
// are inverted).
func TestLogReadinessSchemaPolarity(t *testing.T) {
	worse := []string{
		"TrainingLoadYesterday", "MuscleSoreness", "MuscleFatigue", "MentalStress",
		"Injury", "Illness", "Menstrual",
	}
	better := []string{"SleepLastNight", "NutritionQuality", "Mood24h", "RecoveryEnergyToday"}

	typ := reflect.TypeOf(logReadinessInput{})
	check := func(fields []string, want string) {
		for _, name := range fields {
			f, ok := typ.FieldByName(name)
			if !ok {
				t.Fatalf("no field %s", name)
			}
			if tag := f.Tag.Get("jsonschema"); !strings.Contains(tag, want) {
				t.Errorf("%s schema %q, want %q", name, tag, want)
			}
		}
	}
	check(worse, "higher is worse")
	check(better, "higher is better")
}
