// ABOUTME: TrainingStore: public repository over the sharded store for training records.
// ABOUTME: Resolves the current user, assigns ids/timestamps, and derives the broad type tag.
package store

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/harperreed/trainlog/internal/identity"
	"github.com/harperreed/trainlog/internal/kv"
	"github.com/harperreed/trainlog/internal/models"
)

const (
	trainingRecordPrefix = "T_V2:"
	trainingIndexPrefix  = "T_V2_IDX:"
	trainingBlobKey      = "treninky_v2"
)

// Oldest format used a single bare array with no ids.
var trainingLegacyKeys = []string{"treninky"}

// TrainingStore is the public API consumed by the CLI and health import.
type TrainingStore struct {
	store *Store[models.TrainingRecord]
	ident *identity.Provider
	now   func() string
}

// NewTrainingStore creates the training repository over backend.
func NewTrainingStore(backend kv.Backend, ident *identity.Provider) *TrainingStore {
	return &TrainingStore{
		store: New(backend, Config[models.TrainingRecord]{
			RecordPrefix: trainingRecordPrefix,
			IndexPrefix:  trainingIndexPrefix,
			BlobKey:      trainingBlobKey,
			LegacyKeys:   trainingLegacyKeys,
			DecodeLegacy: decodeLegacyTrainings,
			Shape: Shape[models.TrainingRecord]{
				ID:        func(r models.TrainingRecord) string { return r.ID },
				UserID:    func(r models.TrainingRecord) string { return r.UserID },
				Date:      func(r models.TrainingRecord) string { return r.Date },
				UpdatedAt: func(r models.TrainingRecord) string { return r.UpdatedAt },
				Deleted:   func(r models.TrainingRecord) bool { return r.Deleted },
			},
		}),
		ident: ident,
		now:   models.NowISO,
	}
}

// EnsureIndex migrates and repairs the current user's index. Idempotent.
func (ts *TrainingStore) EnsureIndex() error {
	userID, err := ts.ident.UserID()
	if err != nil {
		return err
	}
	return ts.store.EnsureIndex(userID)
}

// GetAll returns the current user's trainings, newest first.
func (ts *TrainingStore) GetAll() ([]models.TrainingRecord, error) {
	userID, err := ts.ident.UserID()
	if err != nil {
		return nil, err
	}
	return ts.store.GetAll(userID)
}

// GetByID returns one training by id, or nil when missing.
func (ts *TrainingStore) GetByID(id string) (*models.TrainingRecord, error) {
	return ts.store.Get(id)
}

// GetByDate returns the first training on the given day, or nil.
func (ts *TrainingStore) GetByDate(date string) (*models.TrainingRecord, error) {
	userID, err := ts.ident.UserID()
	if err != nil {
		return nil, err
	}
	return ts.store.GetByDate(userID, date)
}

// Add creates a new training from the draft. Trainings have no natural-key
// uniqueness; every call creates a record. The broad type tag is computed
// when the draft does not supply one.
func (ts *TrainingStore) Add(draft models.TrainingDraft) (*models.TrainingRecord, error) {
	userID, err := ts.ident.UserID()
	if err != nil {
		return nil, err
	}

	now := ts.now()
	rec := models.TrainingRecord{
		SchemaVersion:   1,
		ID:              uuid.NewString(),
		UserID:          userID,
		Date:            models.NormalizeDate(draft.Date),
		Duration:        draft.Duration,
		Description:     draft.Description,
		Category:        draft.Category,
		Group:           draft.Group,
		Subtype:         draft.Subtype,
		Type:            draft.Type,
		CreatedAt:       now,
		UpdatedAt:       now,
		DistanceMeters:  draft.DistanceMeters,
		DurationSeconds: draft.DurationSeconds,
		AvgPaceSecPerKm: draft.AvgPaceSecPerKm,
		ElevationGainM:  draft.ElevationGainM,
		Route:           draft.Route,
		SyncedAt:        draft.SyncedAt,
	}
	if rec.Type == "" {
		rec.Type = models.InferType(models.InferInput{
			Category:    draft.Category,
			Group:       draft.Group,
			Subtype:     draft.Subtype,
			Type:        string(draft.Type),
			Description: draft.Description,
		})
	}

	if err := ts.store.Insert(rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// Update applies a partial patch by id. Returns nil for a missing id.
// The type tag is re-derived unless the patch sets it explicitly.
func (ts *TrainingStore) Update(id string, patch models.TrainingPatch) (*models.TrainingRecord, error) {
	return ts.store.Update(id, func(prev models.TrainingRecord) models.TrainingRecord {
		next := prev
		if patch.Date != nil {
			next.Date = models.NormalizeDate(*patch.Date)
		}
		if patch.Duration != nil {
			next.Duration = *patch.Duration
		}
		if patch.Description != nil {
			next.Description = *patch.Description
		}
		if patch.Category != nil {
			next.Category = *patch.Category
		}
		if patch.Group != nil {
			next.Group = *patch.Group
		}
		if patch.Subtype != nil {
			next.Subtype = *patch.Subtype
		}
		if patch.Type != nil {
			next.Type = *patch.Type
		} else {
			next.Type = models.InferType(models.InferInput{
				Category:    next.Category,
				Group:       next.Group,
				Subtype:     next.Subtype,
				Type:        string(prev.Type),
				Description: next.Description,
			})
		}
		next.UpdatedAt = ts.now()
		return next
	})
}

// Remove hard-deletes a training and its index entry.
func (ts *TrainingStore) Remove(id string) error {
	return ts.store.Remove(id)
}

// ListPaginated returns one page of the current user's trainings.
func (ts *TrainingStore) ListPaginated(limit int, cursor string) (Page[models.TrainingRecord], error) {
	userID, err := ts.ident.UserID()
	if err != nil {
		return Page[models.TrainingRecord]{}, err
	}
	return ts.store.ListPaginated(userID, limit, cursor)
}

// GetRangeInclusive returns trainings with from <= date <= to, ascending.
func (ts *TrainingStore) GetRangeInclusive(from, to string) ([]models.TrainingRecord, error) {
	userID, err := ts.ident.UserID()
	if err != nil {
		return nil, err
	}
	return ts.store.GetRangeInclusive(userID, from, to)
}

// legacyTraining enumerates the bare pre-id record shape explicitly.
// Fields that may be absent are pointers so defaults are deliberate.
type legacyTraining struct {
	Date        string          `json:"date"`
	Duration    *float64        `json:"duration"`
	Description string          `json:"description"`
	Category    models.Category `json:"category"`
	Group       models.Group    `json:"group"`
	Subtype     string          `json:"subtype"`
	Type        string          `json:"type"`
	CreatedAt   string          `json:"createdAt"`
	UpdatedAt   string          `json:"updatedAt"`
}

// decodeLegacyTrainings upgrades a bare legacy array: fresh ids, the
// current user as owner, defaulted numerics, and a derived type tag.
func decodeLegacyTrainings(raw []byte, userID, nowISO string) ([]models.TrainingRecord, error) {
	var legacy []*legacyTraining
	if err := json.Unmarshal(raw, &legacy); err != nil {
		return nil, err
	}

	migrated := make([]models.TrainingRecord, 0, len(legacy))
	for _, old := range legacy {
		if old == nil {
			continue
		}
		date := models.Today()
		if old.Date != "" {
			date = models.NormalizeDate(old.Date)
		}
		duration := 0
		if old.Duration != nil {
			duration = int(*old.Duration)
		}
		createdAt := old.CreatedAt
		if createdAt == "" {
			createdAt = nowISO
		}
		updatedAt := old.UpdatedAt
		if updatedAt == "" {
			updatedAt = nowISO
		}

		migrated = append(migrated, models.TrainingRecord{
			SchemaVersion: 1,
			ID:            uuid.NewString(),
			UserID:        userID,
			Date:          date,
			Duration:      duration,
			Description:   old.Description,
			Category:      old.Category,
			Group:         old.Group,
			Subtype:       old.Subtype,
			Type: models.InferType(models.InferInput{
				Category:    old.Category,
				Group:       old.Group,
				Subtype:     old.Subtype,
				Type:        old.Type,
				Description: old.Description,
			}),
			CreatedAt: createdAt,
			UpdatedAt: updatedAt,
		})
	}
	return migrated, nil
}
