// ABOUTME: Shared test fixtures for the store package.
// ABOUTME: In-memory Badger backend, a pinned user id, and a deterministic clock.
package store

import (
	"fmt"
	"testing"

	"github.com/harperreed/trainlog/internal/identity"
	"github.com/harperreed/trainlog/internal/kv"
)

const testUserID = "11111111-2222-3333-4444-555555555555"

func setupBackend(t *testing.T) kv.Backend {
	t.Helper()
	backend, err := kv.OpenBadgerInMemory()
	if err != nil {
		t.Fatalf("open in-memory backend: %v", err)
	}
	t.Cleanup(func() { _ = backend.Close() })
	return backend
}

func setupIdentity(t *testing.T, backend kv.Backend) *identity.Provider {
	t.Helper()
	ident := identity.NewProvider(backend)
	if err := ident.SetUserID(testUserID); err != nil {
		t.Fatalf("seed user id: %v", err)
	}
	return ident
}

// fakeClock emits strictly increasing ISO timestamps so updatedAt ties
// never occur and index order is deterministic.
type fakeClock struct {
	tick int
}

func (c *fakeClock) Now() string {
	c.tick++
	return fmt.Sprintf("2025-06-01T10:00:%02d.000Z", c.tick)
}

func newTrainingFixture(t *testing.T) (*TrainingStore, kv.Backend) {
	t.Helper()
	backend := setupBackend(t)
	ts := NewTrainingStore(backend, setupIdentity(t, backend))
	clock := &fakeClock{}
	ts.now = clock.Now
	return ts, backend
}

func newReadinessFixture(t *testing.T) (*ReadinessStore, kv.Backend) {
	t.Helper()
	backend := setupBackend(t)
	rs := NewReadinessStore(backend, setupIdentity(t, backend))
	clock := &fakeClock{}
	rs.now = clock.Now
	return rs, backend
}
