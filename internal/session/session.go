// Package session tracks authenticated dashboard sessions in memory.
package session

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Session is one authenticated login: the bearer token obtained at sign-in
// plus the session's currently selected view.
type Session struct {
	ID        string
	Login     string
	Token     string
	View      string
	CreatedAt time.Time
}

// Registry stores live sessions keyed by opaque id.
type Registry interface {
	// Create registers a new session for the given login and token and
	// returns it. When the registry is full the oldest session is evicted.
	Create(ctx context.Context, login, token string) Session

	// Get returns the session for id, or false when unknown.
	Get(ctx context.Context, id string) (Session, bool)

	// SetView records the session's active view selection. It returns false
	// when the session is unknown.
	SetView(ctx context.Context, id, view string) bool

	// Delete removes the session. Unknown ids are a no-op.
	Delete(ctx context.Context, id string)

	Len() int64
}

// node is one entry in the eviction list, oldest at the tail.
type node struct {
	session Session
	next    *node
}

func (n *node) reset() {
	n.session = Session{}
	n.next = nil
}

// inMemoryRegistry implements Registry with a map plus a linked list for
// oldest-first eviction. Capacity 0 or negative means unbounded.
type inMemoryRegistry struct {
	mu       sync.RWMutex
	sessions map[string]*node
	head     *node
	capacity int
	size     atomic.Int64
	nodePool sync.Pool
	now      func() time.Time
	newID    func() string
}

// NewInMemoryRegistry creates a registry with configuration options.
func NewInMemoryRegistry(opts ...Option) Registry {
	r := &inMemoryRegistry{
		capacity: 10000,
		now:      time.Now,
		newID:    uuid.NewString,
	}

	for _, opt := range opts {
		opt(r)
	}

	r.sessions = make(map[string]*node)
	r.nodePool = sync.Pool{
		New: func() interface{} {
			return &node{}
		},
	}

	return r
}

func (r *inMemoryRegistry) Create(ctx context.Context, login, token string) Session {
	s := Session{
		ID:        r.newID(),
		Login:     login,
		Token:     token,
		CreatedAt: r.now(),
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.capacity > 0 && len(r.sessions) >= r.capacity {
		r.evictOldest()
	}

	n := r.nodePool.Get().(*node)
	n.session = s
	n.next = r.head
	r.head = n
	r.sessions[s.ID] = n
	r.size.Add(1)
	return s
}

func (r *inMemoryRegistry) Get(ctx context.Context, id string) (Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n, ok := r.sessions[id]
	if !ok {
		return Session{}, false
	}
	return n.session, true
}

func (r *inMemoryRegistry) SetView(ctx context.Context, id, view string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	n, ok := r.sessions[id]
	if !ok {
		return false
	}
	n.session.View = view
	return true
}

func (r *inMemoryRegistry) Delete(ctx context.Context, id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n, ok := r.sessions[id]
	if !ok {
		return
	}
	delete(r.sessions, id)
	r.unlink(n)
	n.reset()
	r.nodePool.Put(n)
	r.size.Add(-1)
}

func (r *inMemoryRegistry) Len() int64 {
	return r.size.Load()
}

// unlink removes n from the eviction list. Must be called with r.mu held.
func (r *inMemoryRegistry) unlink(n *node) {
	if r.head == n {
		r.head = n.next
		return
	}
	current := r.head
	for current != nil && current.next != n {
		current = current.next
	}
	if current != nil {
		current.next = n.next
	}
}

// evictOldest drops the tail of the list, the oldest live session. Must be
// called with r.mu held.
func (r *inMemoryRegistry) evictOldest() {
	if r.head == nil {
		return
	}

	var prev *node
	current := r.head
	for current.next != nil {
		prev = current
		current = current.next
	}

	delete(r.sessions, current.session.ID)
	if prev != nil {
		prev.next = nil
	} else {
		r.head = nil
	}
	current.reset()
	r.nodePool.Put(current)
	r.size.Add(-1)
}
