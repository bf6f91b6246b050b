// Package session tracks authenticated dashboard sessions in memory.
package session

import "time"

// Option applies a configuration option to the in-memory registry.
type Option func(*inMemoryRegistry)

// WithCapacity sets the maximum number of live sessions.
// If capacity > 0: bounded mode with oldest-first eviction.
// If capacity <= 0: unbounded mode (no eviction, no size limit).
func WithCapacity(capacity int) Option {
	return func(r *inMemoryRegistry) {
		r.capacity = capacity
	}
}

// WithClock overrides the session creation clock, used by tests.
func WithClock(now func() time.Time) Option {
	return func(r *inMemoryRegistry) {
		if now != nil {
			r.now = now
		}
	}
}

// WithIDGenerator overrides session id generation, used by tests.
func WithIDGenerator(newID func() string) Option {
	return func(r *inMemoryRegistry) {
		if newID != nil {
			r.newID = newID
		}
	}
}
