// Package store provides the durable single-record stores the session
// manager persists into. Exactly one record exists at a time; every write
// replaces the whole value.
package store

import (
	"context"
	"errors"
)

// ErrNoRecord is returned by Load when no record has been saved yet.
// Callers should match it with errors.Is.
var ErrNoRecord = errors.New("no persisted record")

// Store is a durable holder for a single opaque record.
//
// Contract:
//   - Load returns the last saved record, or ErrNoRecord when absent.
//   - Save atomically replaces the record as a whole.
//   - Delete removes the record; deleting an absent record is not an error.
//   - Close releases underlying resources.
//
// All methods must honor context cancellation where the backend supports it.
type Store interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
	Delete(ctx context.Context) error
	Close() error
}
