// ABOUTME: Lazy one-way migration chain: bare legacy array -> versioned blob -> sharded cells.
// ABOUTME: Gated on index absence, so re-running after a partial migration cannot duplicate data.
package store

import (
	"encoding/json"
	"errors"

	"github.com/harperreed/trainlog/internal/kv"
	"github.com/harperreed/trainlog/internal/logger"
	"github.com/harperreed/trainlog/internal/models"
)

// migrateToSharded fans the intermediate blob (creating it from a bare
// legacy array first if needed) out into per-id cells and builds one
// index per distinct userId found in the blob, so one pass migrates
// every user's data. The obsolete blob key is left in place.
func (s *Store[T]) migrateToSharded(currentUser string) error {
	var all []T

	raw, err := s.backend.Get(s.cfg.BlobKey)
	switch {
	case errors.Is(err, kv.ErrNotFound):
		items, merr := s.migrateLegacy(currentUser)
		if merr != nil {
			return merr
		}
		if items == nil {
			return nil // nothing to migrate
		}
		all = items
	case err != nil:
		return err
	default:
		if uerr := json.Unmarshal(raw, &all); uerr != nil {
			// Unreadable blob: start this user with an empty baseline
			// rather than blocking every read.
			logger.Warn("unreadable migration blob, starting empty", "key", s.cfg.BlobKey)
			return s.writeIndex(currentUser, nil)
		}
	}

	if len(all) == 0 {
		return s.writeIndex(currentUser, nil)
	}

	byUser := map[string][]T{}
	for _, rec := range all {
		if s.cfg.Shape.ID(rec) == "" || s.cfg.Shape.UserID(rec) == "" {
			continue
		}
		if err := s.writeRecord(rec); err != nil {
			return err
		}
		uid := s.cfg.Shape.UserID(rec)
		byUser[uid] = append(byUser[uid], rec)
	}

	for uid, list := range byUser {
		s.sortCanonical(list)
		ids := make([]string, len(list))
		for i, rec := range list {
			ids[i] = s.cfg.Shape.ID(rec)
		}
		if err := s.writeIndex(uid, ids); err != nil {
			return err
		}
	}

	logger.Info("migrated blob to sharded format",
		"key", s.cfg.BlobKey, "records", len(all), "users", len(byUser))
	return nil
}

// migrateLegacy upgrades the oldest bare-array format into the blob.
// Candidate keys are tried in order; a key that fails to decode is
// skipped in favor of the next one. All records are attributed to
// currentUser, since the bare format predates multi-user support.
// Returns nil when no candidate produced data.
func (s *Store[T]) migrateLegacy(currentUser string) ([]T, error) {
	now := models.NowISO()
	for _, key := range s.cfg.LegacyKeys {
		raw, err := s.backend.Get(key)
		if errors.Is(err, kv.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}

		items, derr := s.cfg.DecodeLegacy(raw, currentUser, now)
		if derr != nil {
			logger.Warn("skipping undecodable legacy key", "key", key, "error", derr)
			continue
		}

		blob, merr := json.Marshal(items)
		if merr != nil {
			return nil, merr
		}
		if err := s.backend.Set(s.cfg.BlobKey, blob); err != nil {
			return nil, err
		}
		logger.Info("migrated bare legacy array", "key", key, "records", len(items))
		return items, nil
	}
	return nil, nil
}
