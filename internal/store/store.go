// ABOUTME: Generic sharded record store: one KV cell per record plus an ordered per-user id index.
// ABOUTME: Index order is the canonical display order (date desc, updatedAt desc), maintained incrementally.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/harperreed/trainlog/internal/kv"
	"github.com/harperreed/trainlog/internal/logger"
)

// Shape tells the store how to read identity and ordering fields of T.
type Shape[T any] struct {
	ID        func(T) string
	UserID    func(T) string
	Date      func(T) string
	UpdatedAt func(T) string
	Deleted   func(T) bool
}

// Config wires one entity type to its key scheme and legacy formats.
type Config[T any] struct {
	RecordPrefix string   // per-record cell keys: <RecordPrefix><id>
	IndexPrefix  string   // per-user index keys:  <IndexPrefix><userId>
	BlobKey      string   // intermediate versioned array blob
	LegacyKeys   []string // oldest bare-array candidates, tried in order

	// DecodeLegacy parses one bare legacy array into fully-shaped records,
	// attributing them to userID. A decode error means "try the next
	// candidate key", not a failed operation.
	DecodeLegacy func(raw []byte, userID, nowISO string) ([]T, error)

	Shape Shape[T]
}

// Page is one slice of a cursor-paginated listing.
type Page[T any] struct {
	Items      []T
	NextCursor string
	HasMore    bool
}

// Store owns the durable representation of one entity type.
// Mutating operations are serialized per user id.
type Store[T any] struct {
	backend kv.Backend
	cfg     Config[T]

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// New creates a Store over the given backend.
func New[T any](backend kv.Backend, cfg Config[T]) *Store[T] {
	return &Store[T]{
		backend: backend,
		cfg:     cfg,
		locks:   map[string]*sync.Mutex{},
	}
}

func (s *Store[T]) recKey(id string) string     { return s.cfg.RecordPrefix + id }
func (s *Store[T]) idxKey(userID string) string { return s.cfg.IndexPrefix + userID }

// userLock returns the mutex serializing operations for one user.
func (s *Store[T]) userLock(userID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.locks[userID]
	if !ok {
		m = &sync.Mutex{}
		s.locks[userID] = m
	}
	return m
}

// compare implements the canonical comparator: date descending, then
// updatedAt descending. Records with no updatedAt sort last within a tie.
func (s *Store[T]) compare(a, b T) int {
	if d := strings.Compare(s.cfg.Shape.Date(b), s.cfg.Shape.Date(a)); d != 0 {
		return d
	}
	return strings.Compare(s.cfg.Shape.UpdatedAt(b), s.cfg.Shape.UpdatedAt(a))
}

func (s *Store[T]) sortCanonical(items []T) {
	sort.SliceStable(items, func(i, j int) bool { return s.compare(items[i], items[j]) < 0 })
}

// decode parses a stored cell. Malformed JSON is treated as absent.
func (s *Store[T]) decode(raw []byte) (T, bool) {
	var v T
	if len(raw) == 0 {
		return v, false
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		var zero T
		return zero, false
	}
	return v, true
}

// readRecord loads one cell by id. Missing or malformed cells come back
// as absent; backend failures propagate.
func (s *Store[T]) readRecord(id string) (T, bool, error) {
	var zero T
	raw, err := s.backend.Get(s.recKey(id))
	if errors.Is(err, kv.ErrNotFound) {
		return zero, false, nil
	}
	if err != nil {
		return zero, false, err
	}
	v, ok := s.decode(raw)
	return v, ok, nil
}

func (s *Store[T]) writeRecord(rec T) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}
	return s.backend.Set(s.recKey(s.cfg.Shape.ID(rec)), raw)
}

// readIndex loads a user's ordered id list. Missing or malformed
// indexes read as empty.
func (s *Store[T]) readIndex(userID string) ([]string, error) {
	raw, err := s.backend.Get(s.idxKey(userID))
	if errors.Is(err, kv.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var ids []string
	if err := json.Unmarshal(raw, &ids); err != nil {
		return nil, nil
	}
	return ids, nil
}

func (s *Store[T]) writeIndex(userID string, ids []string) error {
	if ids == nil {
		ids = []string{}
	}
	raw, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("marshal index: %w", err)
	}
	return s.backend.Set(s.idxKey(userID), raw)
}

func (s *Store[T]) hasIndex(userID string) (bool, error) {
	_, err := s.backend.Get(s.idxKey(userID))
	if errors.Is(err, kv.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// findInsertPos scans the index for the position where rec belongs,
// comparing against existing members. Holes (missing cells) are skipped;
// pruning handles them later. Linear scan is fine at journal cardinality.
func (s *Store[T]) findInsertPos(ids []string, rec T) (int, error) {
	for i, id := range ids {
		other, ok, err := s.readRecord(id)
		if err != nil {
			return 0, err
		}
		if !ok {
			continue
		}
		if s.compare(rec, other) < 0 {
			return i, nil
		}
	}
	return len(ids), nil
}

// pruneDangling drops index ids whose record cell no longer exists.
// Writes the corrected index only when something was removed.
func (s *Store[T]) pruneDangling(userID string) error {
	ids, err := s.readIndex(userID)
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		return nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = s.recKey(id)
	}
	vals, err := s.backend.MultiGet(keys)
	if err != nil {
		return err
	}

	ok := ids[:0:0]
	for i, id := range ids {
		if vals[i] != nil {
			ok = append(ok, id)
		}
	}
	if len(ok) != len(ids) {
		logger.Debug("pruned dangling index entries", "user", userID, "removed", len(ids)-len(ok))
		return s.writeIndex(userID, ok)
	}
	return nil
}

// ensureIndexLocked guarantees a consistent index exists for userID,
// migrating legacy formats on first access. Caller holds the user lock.
func (s *Store[T]) ensureIndexLocked(userID string) error {
	has, err := s.hasIndex(userID)
	if err != nil {
		return err
	}
	if !has {
		if err := s.migrateToSharded(userID); err != nil {
			return err
		}
		has, err = s.hasIndex(userID)
		if err != nil {
			return err
		}
		if !has {
			if err := s.writeIndex(userID, nil); err != nil {
				return err
			}
		}
	}
	return s.pruneDangling(userID)
}

// EnsureIndex is the exported form for explicit migration runs. Idempotent.
func (s *Store[T]) EnsureIndex(userID string) error {
	mu := s.userLock(userID)
	mu.Lock()
	defer mu.Unlock()
	return s.ensureIndexLocked(userID)
}

func (s *Store[T]) getAllLocked(userID string) ([]T, error) {
	if err := s.ensureIndexLocked(userID); err != nil {
		return nil, err
	}
	ids, err := s.readIndex(userID)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []T{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = s.recKey(id)
	}
	vals, err := s.backend.MultiGet(keys)
	if err != nil {
		return nil, err
	}

	items := make([]T, 0, len(ids))
	for _, raw := range vals {
		if rec, ok := s.decode(raw); ok && !s.cfg.Shape.Deleted(rec) {
			items = append(items, rec)
		}
	}

	// Index should already be in order; re-sort in case it ever drifts.
	s.sortCanonical(items)
	return items, nil
}

// GetAll returns a user's live records in canonical order.
func (s *Store[T]) GetAll(userID string) ([]T, error) {
	mu := s.userLock(userID)
	mu.Lock()
	defer mu.Unlock()
	return s.getAllLocked(userID)
}

// findByDateLocked scans the index for the first live record matching
// date. Linear scan; expected cardinality is low thousands at most.
// Caller holds the user lock.
func (s *Store[T]) findByDateLocked(userID, date string) (*T, error) {
	ids, err := s.readIndex(userID)
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		rec, ok, err := s.readRecord(id)
		if err != nil {
			return nil, err
		}
		if !ok || s.cfg.Shape.Deleted(rec) {
			continue
		}
		if s.cfg.Shape.Date(rec) == date && s.cfg.Shape.UserID(rec) == userID {
			return &rec, nil
		}
	}
	return nil, nil
}

// GetByDate returns the first live record matching date, or nil.
func (s *Store[T]) GetByDate(userID, date string) (*T, error) {
	mu := s.userLock(userID)
	mu.Lock()
	defer mu.Unlock()

	if err := s.ensureIndexLocked(userID); err != nil {
		return nil, err
	}
	return s.findByDateLocked(userID, date)
}

// Get returns one record by id regardless of index state, or nil.
func (s *Store[T]) Get(id string) (*T, error) {
	rec, ok, err := s.readRecord(id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

// insertLocked writes a new record cell and splices its id into the
// owner's index at the canonical position. Caller holds the user lock.
func (s *Store[T]) insertLocked(userID string, rec T) error {
	if err := s.writeRecord(rec); err != nil {
		return err
	}
	ids, err := s.readIndex(userID)
	if err != nil {
		return err
	}
	pos, err := s.findInsertPos(ids, rec)
	if err != nil {
		return err
	}
	ids = append(ids[:pos], append([]string{s.cfg.Shape.ID(rec)}, ids[pos:]...)...)
	return s.writeIndex(userID, ids)
}

// Insert writes a new record cell and splices its id into the owner's
// index at the canonical position.
func (s *Store[T]) Insert(rec T) error {
	userID := s.cfg.Shape.UserID(rec)
	mu := s.userLock(userID)
	mu.Lock()
	defer mu.Unlock()

	if err := s.ensureIndexLocked(userID); err != nil {
		return err
	}
	return s.insertLocked(userID, rec)
}

// UpsertByDate enforces at most one live record per (user, date). When a
// live record already exists for rec's date it is rewritten through
// overwrite, keeping its id and index position; otherwise rec is
// inserted. The existence check and the write share one lock hold so
// concurrent upserts cannot both take the insert path.
func (s *Store[T]) UpsertByDate(rec T, overwrite func(prev T) T) (*T, error) {
	userID := s.cfg.Shape.UserID(rec)
	mu := s.userLock(userID)
	mu.Lock()
	defer mu.Unlock()

	if err := s.ensureIndexLocked(userID); err != nil {
		return nil, err
	}
	existing, err := s.findByDateLocked(userID, s.cfg.Shape.Date(rec))
	if err != nil {
		return nil, err
	}
	if existing != nil {
		next := overwrite(*existing)
		if err := s.writeRecord(next); err != nil {
			return nil, err
		}
		return &next, nil
	}
	if err := s.insertLocked(userID, rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// lockRecord resolves a record's owner and acquires that user's lock,
// then re-reads the cell so the caller sees the latest write. The owner
// id of a record never changes, so the pre-lock read is only used for
// lock routing. Callers must unlock the returned mutex.
func (s *Store[T]) lockRecord(id string) (T, *sync.Mutex, bool, error) {
	var zero T
	hint, ok, err := s.readRecord(id)
	if err != nil || !ok {
		return zero, nil, false, err
	}
	mu := s.userLock(s.cfg.Shape.UserID(hint))
	mu.Lock()
	rec, ok, err := s.readRecord(id)
	if err != nil || !ok {
		mu.Unlock()
		return zero, nil, false, err
	}
	return rec, mu, true, nil
}

// Update loads a record by id, applies fn, and rewrites it. The id is
// removed from its old index position and re-inserted, since both date
// and updatedAt participate in the ordering. Returns nil for a missing id.
// The read, fn, and both writes happen under one hold of the owner's lock.
func (s *Store[T]) Update(id string, fn func(T) T) (*T, error) {
	prev, mu, ok, err := s.lockRecord(id)
	if err != nil || !ok {
		return nil, err
	}
	defer mu.Unlock()

	userID := s.cfg.Shape.UserID(prev)
	next := fn(prev)
	if err := s.writeRecord(next); err != nil {
		return nil, err
	}

	if err := s.ensureIndexLocked(userID); err != nil {
		return nil, err
	}
	ids, err := s.readIndex(userID)
	if err != nil {
		return nil, err
	}
	for i, existing := range ids {
		if existing == id {
			ids = append(ids[:i], ids[i+1:]...)
			break
		}
	}
	pos, err := s.findInsertPos(ids, next)
	if err != nil {
		return nil, err
	}
	ids = append(ids[:pos], append([]string{id}, ids[pos:]...)...)
	if err := s.writeIndex(userID, ids); err != nil {
		return nil, err
	}
	return &next, nil
}

// UpdateInPlace rewrites a record cell without touching the index.
// Used where the caller knows the sort position cannot change
// (soft delete, same-date overwrites).
func (s *Store[T]) UpdateInPlace(id string, fn func(T) T) (*T, error) {
	prev, mu, ok, err := s.lockRecord(id)
	if err != nil || !ok {
		return nil, err
	}
	defer mu.Unlock()

	next := fn(prev)
	if err := s.writeRecord(next); err != nil {
		return nil, err
	}
	return &next, nil
}

// Remove hard-deletes a record cell and its index entry. When the cell
// is already gone the id is still swept out of any index that holds it.
func (s *Store[T]) Remove(id string) error {
	rec, mu, ok, err := s.lockRecord(id)
	if err != nil {
		return err
	}
	if !ok {
		if err := s.backend.Delete(s.recKey(id)); err != nil {
			return err
		}
		return s.removeFromAllIndexes(id)
	}
	defer mu.Unlock()

	userID := s.cfg.Shape.UserID(rec)
	if err := s.backend.Delete(s.recKey(id)); err != nil {
		return err
	}
	if err := s.ensureIndexLocked(userID); err != nil {
		return err
	}
	ids, err := s.readIndex(userID)
	if err != nil {
		return err
	}
	for i, existing := range ids {
		if existing == id {
			ids = append(ids[:i], ids[i+1:]...)
			return s.writeIndex(userID, ids)
		}
	}
	return nil
}

// removeFromAllIndexes sweeps an orphaned id out of every user index.
func (s *Store[T]) removeFromAllIndexes(id string) error {
	keys, err := s.backend.Keys()
	if err != nil {
		return err
	}
	for _, key := range keys {
		if !strings.HasPrefix(key, s.cfg.IndexPrefix) {
			continue
		}
		userID := strings.TrimPrefix(key, s.cfg.IndexPrefix)
		mu := s.userLock(userID)
		mu.Lock()
		ids, rerr := s.readIndex(userID)
		if rerr == nil {
			for i, existing := range ids {
				if existing == id {
					ids = append(ids[:i], ids[i+1:]...)
					rerr = s.writeIndex(userID, ids)
					break
				}
			}
		}
		mu.Unlock()
		if rerr != nil {
			return rerr
		}
	}
	return nil
}

// ListPaginated returns one page of records. The cursor is the last id of
// the previous page; an unknown cursor falls back to the start rather than
// erroring. A short page signals end of data.
func (s *Store[T]) ListPaginated(userID string, limit int, cursor string) (Page[T], error) {
	mu := s.userLock(userID)
	mu.Lock()
	defer mu.Unlock()

	empty := Page[T]{Items: []T{}}
	if err := s.ensureIndexLocked(userID); err != nil {
		return empty, err
	}
	ids, err := s.readIndex(userID)
	if err != nil {
		return empty, err
	}
	if len(ids) == 0 {
		return empty, nil
	}

	start := 0
	if cursor != "" {
		for i, id := range ids {
			if id == cursor {
				start = i + 1
				break
			}
		}
	}
	if start >= len(ids) {
		return empty, nil
	}

	end := start + limit
	if end > len(ids) {
		end = len(ids)
	}
	pageIDs := ids[start:end]
	if len(pageIDs) == 0 {
		return empty, nil
	}

	keys := make([]string, len(pageIDs))
	for i, id := range pageIDs {
		keys[i] = s.recKey(id)
	}
	vals, err := s.backend.MultiGet(keys)
	if err != nil {
		return empty, err
	}

	items := make([]T, 0, len(pageIDs))
	for _, raw := range vals {
		if rec, ok := s.decode(raw); ok && !s.cfg.Shape.Deleted(rec) {
			items = append(items, rec)
		}
	}
	s.sortCanonical(items)

	page := Page[T]{Items: items}
	if len(pageIDs) == limit {
		page.NextCursor = pageIDs[len(pageIDs)-1]
		page.HasMore = true
	}
	return page, nil
}

// GetRangeInclusive returns live records with from <= date <= to, in
// ascending date order for chronological rendering.
func (s *Store[T]) GetRangeInclusive(userID, from, to string) ([]T, error) {
	mu := s.userLock(userID)
	mu.Lock()
	defer mu.Unlock()

	all, err := s.getAllLocked(userID)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(all))
	for _, rec := range all {
		d := s.cfg.Shape.Date(rec)
		if d >= from && d <= to {
			out = append(out, rec)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return s.cfg.Shape.Date(out[i]) < s.cfg.Shape.Date(out[j])
	})
	return out, nil
}
