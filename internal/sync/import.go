// ABOUTME: Health-platform workout import: maps exported workouts to trainings.
// ABOUTME: De-duplicates against existing records on (date, duration, distance) tolerance.
package sync

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"github.com/harperreed/trainlog/internal/logger"
	"github.com/harperreed/trainlog/internal/models"
)

// Workout is one entry of a health-platform export file.
type Workout struct {
	ID             string  `json:"id"`
	Start          string  `json:"start"`
	End            string  `json:"end"`
	Type           string  `json:"type"`
	DistanceMeters float64 `json:"distanceMeters,omitempty"`
	CaloriesKcal   float64 `json:"caloriesKcal,omitempty"`
}

// normalizeType maps a platform exercise type string to a training type.
func normalizeType(hwType string) models.TrainingType {
	t := strings.ToLower(hwType)
	switch {
	case strings.Contains(t, "run"):
		return models.TypeRunning
	case strings.Contains(t, "cycle"), strings.Contains(t, "bike"):
		return models.TypeCycling
	case strings.Contains(t, "walk"):
		return models.TypeWalking
	case strings.Contains(t, "swim"):
		return models.TypeSwimming
	}
	return models.TypeCardio
}

// MapWorkout converts a workout to a training draft. Imports are filed
// under Kondice/Kardio with the broad type normalized from the platform's
// exercise type string.
func MapWorkout(w Workout) (models.TrainingDraft, error) {
	start, err := time.Parse(time.RFC3339, w.Start)
	if err != nil {
		return models.TrainingDraft{}, fmt.Errorf("parse workout start: %w", err)
	}
	end, err := time.Parse(time.RFC3339, w.End)
	if err != nil {
		return models.TrainingDraft{}, fmt.Errorf("parse workout end: %w", err)
	}

	durSec := int(math.Round(end.Sub(start).Seconds()))
	if durSec < 0 {
		durSec = 0
	}

	return models.TrainingDraft{
		Date:            start.UTC().Format("2006-01-02"),
		Duration:        int(math.Round(float64(durSec) / 60)),
		Description:     "Import z Health",
		Category:        models.CategoryConditioning,
		Group:           models.GroupCardio,
		Type:            normalizeType(w.Type),
		DistanceMeters:  w.DistanceMeters,
		DurationSeconds: durSec,
	}, nil
}

// TrainingRepo is the slice of the training store the importer needs.
type TrainingRepo interface {
	GetAll() ([]models.TrainingRecord, error)
	Add(draft models.TrainingDraft) (*models.TrainingRecord, error)
}

// Importer adds workouts that are not already present.
type Importer struct {
	trainings TrainingRepo
}

func NewImporter(trainings TrainingRepo) *Importer {
	return &Importer{trainings: trainings}
}

// durationSeconds prefers the recorded second-precision duration and falls
// back to the minute field.
func durationSeconds(durSec, durMin int) int {
	if durSec > 0 {
		return durSec
	}
	return durMin * 60
}

// isDuplicate reports whether a draft matches an existing record: same day,
// duration within a minute, distance within 50 meters.
func isDuplicate(existing []models.TrainingRecord, draft models.TrainingDraft) bool {
	draftSec := durationSeconds(draft.DurationSeconds, draft.Duration)
	for _, r := range existing {
		if r.Date != draft.Date {
			continue
		}
		if abs(durationSeconds(r.DurationSeconds, r.Duration)-draftSec) > 60 {
			continue
		}
		if math.Abs(r.DistanceMeters-draft.DistanceMeters) > 50 {
			continue
		}
		return true
	}
	return false
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// Import maps and stores the given workouts, skipping duplicates and
// unparseable entries. Returns the number of trainings created.
func (im *Importer) Import(workouts []Workout) (int, error) {
	existing, err := im.trainings.GetAll()
	if err != nil {
		return 0, err
	}

	created := 0
	for _, w := range workouts {
		draft, err := MapWorkout(w)
		if err != nil {
			logger.Warn("skipping unparseable workout", "id", w.ID, "error", err)
			continue
		}
		if isDuplicate(existing, draft) {
			continue
		}
		rec, err := im.trainings.Add(draft)
		if err != nil {
			return created, err
		}
		existing = append(existing, *rec)
		created++
	}
	return created, nil
}

// ImportFile reads a JSON export file (an array of workouts) and imports it.
func (im *Importer) ImportFile(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read export file: %w", err)
	}
	var workouts []Workout
	if err := json.Unmarshal(data, &workouts); err != nil {
		return 0, fmt.Errorf("parse export file: %w", err)
	}
	return im.Import(workouts)
}
