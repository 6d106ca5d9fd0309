// Package artifact persists generated flatten documents, keyed by task id.
package artifact

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when no document exists for a task id.
var ErrNotFound = errors.New("artifact: not found")

// Store is the persistence surface for finished documents.
type Store interface {
	Put(ctx context.Context, taskID string, doc []byte) error
	Get(ctx context.Context, taskID string) ([]byte, error)
	Delete(ctx context.Context, taskID string) error
}

// Sweeper is implemented by stores that can drop documents past a retention
// cutoff, including orphans with no surviving task record.
type Sweeper interface {
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int, error)
}
