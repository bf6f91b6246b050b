// Package repository defines the snapshot cache interface and errors.
package repository

import (
	"context"
	"time"

	"profilehub/internal/domain/payload"
)

// Snapshot is one session's cached profile dataset. User is nil for the
// empty-dataset sentinel stored after a degraded fetch.
type Snapshot struct {
	User      *payload.User
	FetchedAt time.Time
	Degraded  bool
}

// Store provides per-session access to cached snapshots.
type Store interface {
	// Put stores the snapshot for a session id. The cache is write-once per
	// session: a second Put for the same id returns ErrAlreadySet.
	Put(ctx context.Context, id string, snap Snapshot) error

	// Get returns the snapshot for a session id.
	// Returns ErrNotFound if no snapshot was stored.
	Get(ctx context.Context, id string) (Snapshot, error)

	// Drop removes the snapshot for a session id. Unknown ids are a no-op.
	Drop(ctx context.Context, id string)

	// Count returns the number of cached snapshots.
	Count(ctx context.Context) int
}
