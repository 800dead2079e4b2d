// Package store provides durable key-value persistence for application state.
// The fixed keys hold the current candidate profile and the generation
// history; the vacancy page cache derives its keys from fetched URLs. Writes
// are best-effort; a failed write is logged by the caller and never blocks
// the in-memory state transition that triggered it.
package store

import (
	"context"
	"errors"
)

// Fixed storage keys.
const (
	KeyProfile = "candidateProfile"
	KeyHistory = "generationHistory"
)

// ErrNotFound indicates no value has been stored under a key yet.
var ErrNotFound = errors.New("store: key not found")

// Store persists JSON-serialized application state under fixed keys.
type Store interface {
	// Load returns the stored value for key, or ErrNotFound.
	Load(ctx context.Context, key string) ([]byte, error)
	// Save stores value under key, replacing any previous value.
	Save(ctx context.Context, key string, value []byte) error
	// Close releases any resources held by the store.
	Close()
}
