// ABOUTME: Charm Cloud implementation of the kv.Backend interface.
// ABOUTME: Mirrors the local Badger semantics with automatic cloud sync after writes.
package kv

import (
	"errors"
	"fmt"
	"os"
	"sync"

	charmkv "github.com/charmbracelet/charm/kv"
	badger "github.com/dgraph-io/badger/v3"
)

const charmHost = "charm.2389.dev"

// CharmBackend stores keys in Charm KV, synced to Charm Cloud.
// Opens in read-only fallback mode when another process holds the lock.
type CharmBackend struct {
	kv *charmkv.KV
	mu sync.RWMutex
}

// OpenCharm opens the named Charm KV database.
func OpenCharm(name string) (*CharmBackend, error) {
	if err := os.Setenv("CHARM_HOST", charmHost); err != nil {
		return nil, err
	}

	db, err := charmkv.OpenWithDefaultsFallback(name)
	if err != nil {
		return nil, fmt.Errorf("open charm kv: %w", err)
	}

	// Pull remote data on startup (skip in read-only mode)
	if !db.IsReadOnly() {
		_ = db.Sync()
	}

	return &CharmBackend{kv: db}, nil
}

func (c *CharmBackend) Get(key string) ([]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	val, err := c.kv.Get([]byte(key))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", key, err)
	}
	return val, nil
}

func (c *CharmBackend) Set(key string, value []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.kv.IsReadOnly() {
		return ErrReadOnly
	}
	if err := c.kv.Set([]byte(key), value); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	_ = c.kv.Sync()
	return nil
}

func (c *CharmBackend) Delete(key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.kv.IsReadOnly() {
		return ErrReadOnly
	}
	if err := c.kv.Delete([]byte(key)); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	_ = c.kv.Sync()
	return nil
}

// MultiGet reads each key individually; Charm KV has no batched read.
func (c *CharmBackend) MultiGet(keys []string) ([][]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([][]byte, len(keys))
	for i, key := range keys {
		val, err := c.kv.Get([]byte(key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("multiget %s: %w", key, err)
		}
		out[i] = val
	}
	return out, nil
}

func (c *CharmBackend) Keys() ([]string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	raw, err := c.kv.Keys()
	if err != nil {
		return nil, fmt.Errorf("keys: %w", err)
	}
	keys := make([]string, len(raw))
	for i, k := range raw {
		keys[i] = string(k)
	}
	return keys, nil
}

func (c *CharmBackend) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.kv != nil {
		return c.kv.Close()
	}
	return nil
}
