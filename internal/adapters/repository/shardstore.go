// Package repository defines the snapshot cache interface and errors.
package repository

import (
	"context"
	"hash/fnv"
	"sync"

	"profilehub/pkg/metrics"
)

// Sharded, in-memory Store implementation.
//
// Session ids are uuid strings, so FNV-1a spreads them evenly across shards
// and keeps lock contention local to one shard per operation.

const defaultShardCount = 8

type shard struct {
	mu        sync.RWMutex
	snapshots map[string]Snapshot
}

// ShardStore implements Store over a fixed set of mutex-guarded shards.
type ShardStore struct {
	shardCount int
	shards     []*shard
}

// NewShardStore creates a sharded snapshot store with configuration options.
func NewShardStore(opts ...Option) *ShardStore {
	s := &ShardStore{shardCount: defaultShardCount}
	for _, opt := range opts {
		opt(s)
	}
	s.shards = make([]*shard, s.shardCount)
	for i := range s.shards {
		s.shards[i] = &shard{snapshots: make(map[string]Snapshot)}
	}
	return s
}

func (s *ShardStore) shardFor(id string) *shard {
	h := fnv.New32a()
	h.Write([]byte(id))
	return s.shards[int(h.Sum32())%len(s.shards)]
}

// Put stores the snapshot for a session id, write-once per id.
func (s *ShardStore) Put(ctx context.Context, id string, snap Snapshot) error {
	sh := s.shardFor(id)
	sh.mu.Lock()
	if _, exists := sh.snapshots[id]; exists {
		sh.mu.Unlock()
		return ErrAlreadySet
	}
	sh.snapshots[id] = snap
	sh.mu.Unlock()

	metrics.UpdateSnapshotCount(s.count())
	return nil
}

// Get returns the snapshot for a session id.
func (s *ShardStore) Get(ctx context.Context, id string) (Snapshot, error) {
	sh := s.shardFor(id)
	sh.mu.RLock()
	defer sh.mu.RUnlock()

	snap, ok := sh.snapshots[id]
	if !ok {
		return Snapshot{}, ErrNotFound
	}
	return snap, nil
}

// Drop removes the snapshot for a session id.
func (s *ShardStore) Drop(ctx context.Context, id string) {
	sh := s.shardFor(id)
	sh.mu.Lock()
	delete(sh.snapshots, id)
	sh.mu.Unlock()
	metrics.UpdateSnapshotCount(s.count())
}

// Count returns the number of cached snapshots.
func (s *ShardStore) Count(ctx context.Context) int {
	return s.count()
}

func (s *ShardStore) count() int {
	total := 0
	for _, sh := range s.shards {
		sh.mu.RLock()
		total += len(sh.snapshots)
		sh.mu.RUnlock()
	}
	return total
}
