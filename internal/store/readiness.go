// ABOUTME: ReadinessStore: public repository over the sharded store for readiness entries.
// ABOUTME: Enforces one live entry per (user, date) through upsert semantics; delete is soft.
package store

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/harperreed/trainlog/internal/identity"
	"github.com/harperreed/trainlog/internal/kv"
	"github.com/harperreed/trainlog/internal/models"
)

const (
	readinessRecordPrefix = "R_V2:"
	readinessIndexPrefix  = "R_V2_IDX:"
	readinessBlobKey      = "readiness_v2"
)

var readinessLegacyKeys = []string{"readiness_v1", "readiness"}

// ReadinessPatch is a partial update; nil fields are left unchanged.
type ReadinessPatch struct {
	Date    *string
	Answers *models.ReadinessAnswers
}

// ReadinessStore is the public API for daily readiness entries.
type ReadinessStore struct {
	store *Store[models.ReadinessEntry]
	ident *identity.Provider
	now   func() string
}

// NewReadinessStore creates the readiness repository over backend.
func NewReadinessStore(backend kv.Backend, ident *identity.Provider) *ReadinessStore {
	return &ReadinessStore{
		store: New(backend, Config[models.ReadinessEntry]{
			RecordPrefix: readinessRecordPrefix,
			IndexPrefix:  readinessIndexPrefix,
			BlobKey:      readinessBlobKey,
			LegacyKeys:   readinessLegacyKeys,
			DecodeLegacy: decodeLegacyReadiness,
			Shape: Shape[models.ReadinessEntry]{
				ID:        func(e models.ReadinessEntry) string { return e.ID },
				UserID:    func(e models.ReadinessEntry) string { return e.UserID },
				Date:      func(e models.ReadinessEntry) string { return e.Date },
				UpdatedAt: func(e models.ReadinessEntry) string { return e.UpdatedAt },
				Deleted:   func(e models.ReadinessEntry) bool { return e.Deleted },
			},
		}),
		ident: ident,
		now:   models.NowISO,
	}
}

// EnsureIndex migrates and repairs the current user's index. Idempotent.
func (rs *ReadinessStore) EnsureIndex() error {
	userID, err := rs.ident.UserID()
	if err != nil {
		return err
	}
	return rs.store.EnsureIndex(userID)
}

// GetAll returns the current user's live entries, newest first.
func (rs *ReadinessStore) GetAll() ([]models.ReadinessEntry, error) {
	userID, err := rs.ident.UserID()
	if err != nil {
		return nil, err
	}
	return rs.store.GetAll(userID)
}

// GetByDate returns the live entry for a day, or nil.
func (rs *ReadinessStore) GetByDate(date string) (*models.ReadinessEntry, error) {
	userID, err := rs.ident.UserID()
	if err != nil {
		return nil, err
	}
	return rs.store.GetByDate(userID, date)
}

// UpsertForDate creates or overwrites the entry for a day. An existing
// live entry keeps its id, createdAt, and index position (the date is
// unchanged); only answers, score, and updatedAt are rewritten. The
// existence check and the write are one atomic store operation.
func (rs *ReadinessStore) UpsertForDate(date string, answers models.ReadinessAnswers) (*models.ReadinessEntry, error) {
	userID, err := rs.ident.UserID()
	if err != nil {
		return nil, err
	}

	score := models.ComputeReadinessScore(answers)
	now := rs.now()

	entry := models.ReadinessEntry{
		SchemaVersion: 1,
		ID:            uuid.NewString(),
		UserID:        userID,
		Date:          date,
		Answers:       answers,
		Score:         score,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	return rs.store.UpsertByDate(entry, func(prev models.ReadinessEntry) models.ReadinessEntry {
		prev.Answers = answers
		prev.Score = score
		prev.UpdatedAt = now
		prev.SchemaVersion = 1
		return prev
	})
}

// Update applies a partial patch by id; the score is recomputed when the
// answers change. Returns nil for a missing id.
func (rs *ReadinessStore) Update(id string, patch ReadinessPatch) (*models.ReadinessEntry, error) {
	return rs.store.Update(id, func(prev models.ReadinessEntry) models.ReadinessEntry {
		next := prev
		if patch.Date != nil {
			next.Date = *patch.Date
		}
		if patch.Answers != nil {
			next.Answers = *patch.Answers
			next.Score = models.ComputeReadinessScore(*patch.Answers)
		}
		next.UpdatedAt = rs.now()
		return next
	})
}

// DeleteByDate soft-deletes the live entry for a day. The entry stays
// resident (and indexed) but is excluded from all reads. No-op when the
// day has no live entry.
func (rs *ReadinessStore) DeleteByDate(date string) error {
	userID, err := rs.ident.UserID()
	if err != nil {
		return err
	}
	existing, err := rs.store.GetByDate(userID, date)
	if err != nil || existing == nil {
		return err
	}
	_, err = rs.store.UpdateInPlace(existing.ID, func(prev models.ReadinessEntry) models.ReadinessEntry {
		prev.Deleted = true
		prev.UpdatedAt = rs.now()
		return prev
	})
	return err
}

// Remove hard-deletes an entry and its index slot.
func (rs *ReadinessStore) Remove(id string) error {
	return rs.store.Remove(id)
}

// ListPaginated returns one page of the current user's live entries.
func (rs *ReadinessStore) ListPaginated(limit int, cursor string) (Page[models.ReadinessEntry], error) {
	userID, err := rs.ident.UserID()
	if err != nil {
		return Page[models.ReadinessEntry]{}, err
	}
	return rs.store.ListPaginated(userID, limit, cursor)
}

// GetRangeInclusive returns live entries with from <= date <= to, ascending.
func (rs *ReadinessStore) GetRangeInclusive(from, to string) ([]models.ReadinessEntry, error) {
	userID, err := rs.ident.UserID()
	if err != nil {
		return nil, err
	}
	return rs.store.GetRangeInclusive(userID, from, to)
}

// legacyAnswers enumerates the old survey shape; absent sub-scores take
// the neutral defaults.
type legacyAnswers struct {
	TrainingLoadYesterday *float64 `json:"trainingLoadYesterday"`
	MuscleSoreness        *float64 `json:"muscleSoreness"`
	MuscleFatigue         *float64 `json:"muscleFatigue"`
	MentalStress          *float64 `json:"mentalStress"`
	Injury                *float64 `json:"injury"`
	Illness               *float64 `json:"illness"`
	SleepLastNight        *float64 `json:"sleepLastNight"`
	NutritionQuality      *float64 `json:"nutritionQuality"`
	Mood24h               *float64 `json:"mood24h"`
	RecoveryEnergyToday   *float64 `json:"recoveryEnergyToday"`
	Menstrual             *float64 `json:"menstrual"`
}

type legacyReadiness struct {
	ID        string         `json:"id"`
	Date      string         `json:"date"`
	Answers   *legacyAnswers `json:"answers"`
	Score     *float64       `json:"score"`
	CreatedAt string         `json:"createdAt"`
}

func (la *legacyAnswers) toAnswers() models.ReadinessAnswers {
	a := models.DefaultAnswers()
	if la == nil {
		return a
	}
	set := func(dst *float64, src *float64) {
		if src != nil {
			*dst = *src
		}
	}
	set(&a.TrainingLoadYesterday, la.TrainingLoadYesterday)
	set(&a.MuscleSoreness, la.MuscleSoreness)
	set(&a.MuscleFatigue, la.MuscleFatigue)
	set(&a.MentalStress, la.MentalStress)
	set(&a.Injury, la.Injury)
	set(&a.Illness, la.Illness)
	set(&a.SleepLastNight, la.SleepLastNight)
	set(&a.NutritionQuality, la.NutritionQuality)
	set(&a.Mood24h, la.Mood24h)
	set(&a.RecoveryEnergyToday, la.RecoveryEnergyToday)
	set(&a.Menstrual, la.Menstrual)
	return a
}

// decodeLegacyReadiness upgrades a bare legacy array. The very oldest
// entries used the day string as their id, so that is accepted as the
// date; entries with no derivable date are dropped.
func decodeLegacyReadiness(raw []byte, userID, nowISO string) ([]models.ReadinessEntry, error) {
	var legacy []*legacyReadiness
	if err := json.Unmarshal(raw, &legacy); err != nil {
		return nil, err
	}

	migrated := make([]models.ReadinessEntry, 0, len(legacy))
	for _, old := range legacy {
		if old == nil {
			continue
		}
		date := old.Date
		if date == "" && models.IsYMD(old.ID) {
			date = old.ID
		}
		if date == "" {
			continue
		}

		answers := old.Answers.toAnswers()
		score := models.ComputeReadinessScore(answers)
		if old.Score != nil {
			score = *old.Score
		}
		createdAt := old.CreatedAt
		if createdAt == "" {
			createdAt = nowISO
		}

		migrated = append(migrated, models.ReadinessEntry{
			SchemaVersion: 1,
			ID:            uuid.NewString(),
			UserID:        userID,
			Date:          date,
			Answers:       answers,
			Score:         score,
			CreatedAt:     createdAt,
			UpdatedAt:     nowISO,
		})
	}
	return migrated, nil
}
