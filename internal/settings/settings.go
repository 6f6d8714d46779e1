// ABOUTME: User settings blob: monthly per-goal targets plus an optional total minutes target.
// ABOUTME: Stored as one JSON value in the KV backend; malformed data reads as defaults.
package settings

import (
	"encoding/json"
	"errors"
	"math"

	"github.com/harperreed/trainlog/internal/kv"
	"github.com/harperreed/trainlog/internal/models"
)

const settingsKey = "app_settings_v1"

// GoalKey identifies one of the fixed monthly goal buckets.
type GoalKey string

const (
	GoalIceIndividual GoalKey = "Led:Individuál"
	GoalIceTeam       GoalKey = "Led:Tímový"
	GoalStrength      GoalKey = "Kondice:Silovy"
	GoalCardio        GoalKey = "Kondice:Kardio"
	GoalMobility      GoalKey = "Kondice:Mobilita"
)

// GoalKeys lists every goal bucket in display order.
var GoalKeys = []GoalKey{
	GoalIceIndividual,
	GoalIceTeam,
	GoalStrength,
	GoalCardio,
	GoalMobility,
}

// Settings holds the user's monthly targets.
type Settings struct {
	// MonthlyTargets maps a goal bucket to a per-month session count.
	MonthlyTargets map[GoalKey]int `json:"monthlyTargets"`
	// MonthlyMinutesTarget is an optional total minutes-per-month goal.
	MonthlyMinutesTarget int `json:"monthlyMinutesTarget,omitempty"`
}

func defaults() Settings {
	return Settings{MonthlyTargets: map[GoalKey]int{}}
}

// Store reads and writes the settings blob.
type Store struct {
	backend kv.Backend
}

func NewStore(backend kv.Backend) *Store {
	return &Store{backend: backend}
}

// Get loads settings; a missing or malformed blob yields defaults.
func (s *Store) Get() (Settings, error) {
	raw, err := s.backend.Get(settingsKey)
	if errors.Is(err, kv.ErrNotFound) {
		return defaults(), nil
	}
	if err != nil {
		return defaults(), err
	}
	var out Settings
	if err := json.Unmarshal(raw, &out); err != nil {
		return defaults(), nil
	}
	if out.MonthlyTargets == nil {
		out.MonthlyTargets = map[GoalKey]int{}
	}
	return out, nil
}

// Save persists settings.
func (s *Store) Save(next Settings) error {
	raw, err := json.Marshal(next)
	if err != nil {
		return err
	}
	return s.backend.Set(settingsKey, raw)
}

// UpsertMonthlyTarget sets the target for one goal bucket; a value of
// zero or less removes it.
func (s *Store) UpsertMonthlyTarget(key GoalKey, value float64) error {
	cur, err := s.Get()
	if err != nil {
		return err
	}
	if value <= 0 {
		delete(cur.MonthlyTargets, key)
	} else {
		cur.MonthlyTargets[key] = int(math.Round(value))
	}
	return s.Save(cur)
}

// KeyFromRecord maps a training record to its goal bucket, or "" when the
// record does not count toward any goal. Ice trainings count only for the
// Individuál and Tímový subtypes.
func KeyFromRecord(rec models.TrainingRecord) GoalKey {
	switch rec.Category {
	case models.CategoryIce:
		switch rec.Subtype {
		case "Individuál":
			return GoalIceIndividual
		case "Tímový":
			return GoalIceTeam
		}
	case models.CategoryConditioning:
		switch rec.Group {
		case models.GroupStrength:
			return GoalStrength
		case models.GroupCardio:
			return GoalCardio
		case models.GroupMobility:
			return GoalMobility
		}
	}
	return ""
}

// Progress is one goal bucket's standing for a month.
type Progress struct {
	Key    GoalKey
	Done   int
	Target int
}

// MonthlyProgress counts this month's sessions per goal bucket against the
// configured targets. Buckets with no target and no sessions are omitted.
func MonthlyProgress(cfg Settings, monthRecords []models.TrainingRecord) []Progress {
	done := map[GoalKey]int{}
	for _, rec := range monthRecords {
		if key := KeyFromRecord(rec); key != "" {
			done[key]++
		}
	}

	out := make([]Progress, 0, len(GoalKeys))
	for _, key := range GoalKeys {
		target := cfg.MonthlyTargets[key]
		if target == 0 && done[key] == 0 {
			continue
		}
		out = append(out, Progress{Key: key, Done: done[key], Target: target})
	}
	return out
}
