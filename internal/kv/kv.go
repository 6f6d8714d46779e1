// ABOUTME: Key-value backend interface for trainlog storage.
// ABOUTME: Defines the minimal durable string-keyed contract the record store needs.
package kv

import "errors"

// ErrNotFound is returned by Get when a key has no value.
// Backends must map their native not-found errors to this one.
var ErrNotFound = errors.New("kv: key not found")

// ErrReadOnly is returned on writes when the backend is locked by
// another process (Charm KV opened in fallback read-only mode).
var ErrReadOnly = errors.New("kv: backend is read-only")

// Backend is an atomic, durable, string-keyed byte-valued map.
// No transactions and no range queries; MultiGet is the only batched read.
type Backend interface {
	// Get returns the value for key, or ErrNotFound.
	Get(key string) ([]byte, error)

	// Set stores value under key, overwriting any previous value.
	Set(key string, value []byte) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(key string) error

	// MultiGet returns values positionally aligned with keys.
	// Missing keys yield a nil entry, not an error.
	MultiGet(keys []string) ([][]byte, error)

	// Keys returns every key currently stored.
	Keys() ([]string, error)

	Close() error
}
