// ABOUTME: Identity provider for the per-install user id.
// ABOUTME: Lazily creates and persists an opaque id, cached for the process lifetime.
package identity

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/harperreed/trainlog/internal/kv"
)

const userIDKey = "auth_user_id"

// Provider supplies the stable per-install user identifier.
type Provider struct {
	backend kv.Backend

	mu     sync.Mutex
	cached string
}

// NewProvider creates a Provider backed by the given store.
func NewProvider(backend kv.Backend) *Provider {
	return &Provider{backend: backend}
}

// UserID returns the stored identifier, creating and persisting a new one
// on first access. Backend failures propagate; there is no fallback identity.
func (p *Provider) UserID() (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cached != "" {
		return p.cached, nil
	}

	val, err := p.backend.Get(userIDKey)
	if err != nil && !errors.Is(err, kv.ErrNotFound) {
		return "", fmt.Errorf("read user id: %w", err)
	}
	if len(val) > 0 {
		p.cached = string(val)
		return p.cached, nil
	}

	id := uuid.NewString()
	if err := p.backend.Set(userIDKey, []byte(id)); err != nil {
		return "", fmt.Errorf("persist user id: %w", err)
	}
	p.cached = id
	return id, nil
}

// SetUserID overrides the stored identifier. Used by migration tooling
// and tests; normal operation never switches users.
func (p *Provider) SetUserID(id string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.backend.Set(userIDKey, []byte(id)); err != nil {
		return fmt.Errorf("persist user id: %w", err)
	}
	p.cached = id
	return nil
}
