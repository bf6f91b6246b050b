// Package repository defines the snapshot cache interface and errors.
package repository

// Option applies a configuration option to the ShardStore.
type Option func(*ShardStore)

// WithShardCount sets the number of shards. Values below 1 keep the default.
func WithShardCount(count int) Option {
	return func(s *ShardStore) {
		if count > 0 {
			s.shardCount = count
		}
	}
}
