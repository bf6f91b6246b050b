// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"profilehub/internal/adapters/graphql"
	"profilehub/internal/adapters/repository"
	"profilehub/internal/domain/derive"
	"profilehub/internal/domain/model"
	"profilehub/internal/domain/payload"
	"profilehub/internal/domain/view"
	"profilehub/internal/session"
	"profilehub/pkg/logger"
	"profilehub/pkg/metrics"
)

// Transport performs the two upstream operations the dashboard needs.
type Transport interface {
	SignIn(ctx context.Context, username, password string) (string, error)
	FetchUserData(ctx context.Context, token string) (payload.Raw, error)
}

// Service owns the session registry, the snapshot cache, and the renderer
// registry, and implements the API dependencies for the dashboard.
type Service struct {
	mu sync.RWMutex

	// Core components
	transport Transport
	sessions  session.Registry
	snapshots repository.Store
	views     *view.Registry

	// Configuration
	sessionCapacity int
	shardCount      int
	listLimit       int
	skillLimit      int

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithTransport sets the upstream transport. Required before Start.
func WithTransport(t Transport) Option {
	return func(s *Service) {
		if t != nil {
			s.transport = t
		}
	}
}

// WithSessionCapacity bounds the session registry.
func WithSessionCapacity(capacity int) Option {
	return func(s *Service) {
		if capacity > 0 {
			s.sessionCapacity = capacity
		}
	}
}

// WithShardCount sets the snapshot store shard count.
func WithShardCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.shardCount = count
		}
	}
}

// WithListLimit caps the transaction lists in rendered views.
func WithListLimit(limit int) Option {
	return func(s *Service) {
		if limit > 0 {
			s.listLimit = limit
		}
	}
}

// WithSkillLimit caps the skill series in rendered views.
func WithSkillLimit(limit int) Option {
	return func(s *Service) {
		if limit > 0 {
			s.skillLimit = limit
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		sessionCapacity: 10000,
		shardCount:      8,
		listLimit:       10,
		skillLimit:      6,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}
	if s.transport == nil {
		return fmt.Errorf("service requires a transport")
	}

	s.logger.Info(ctx, "starting dashboard service...")

	s.sessions = session.NewInMemoryRegistry(
		session.WithCapacity(s.sessionCapacity),
	)
	s.snapshots = repository.NewShardStore(
		repository.WithShardCount(s.shardCount),
	)
	s.views = view.NewRegistry(derive.New(
		derive.WithListLimit(s.listLimit),
		derive.WithSkillLimit(s.skillLimit),
	))

	s.started = true
	s.logger.Info(ctx, "dashboard service started",
		logger.Int("sessionCapacity", s.sessionCapacity),
		logger.Int("shardCount", s.shardCount),
	)

	return nil
}

// Stop shuts the service down.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.started = false
	s.logger.Info(context.Background(), "dashboard service stopped")
}

// Login signs the user in upstream, fetches the profile payload once, and
// caches the extracted record for the new session. An expired token aborts
// the login; any other fetch failure degrades to an empty dataset so the
// dashboard still opens.
func (s *Service) Login(ctx context.Context, username, password string) (model.LoginResult, error) {
	token, err := s.transport.SignIn(ctx, username, password)
	if err != nil {
		metrics.RecordLoginFailure()
		metrics.RecordErrorByComponent("service", "signin")
		s.logger.Warn(ctx, "signin rejected", logger.Error(err))
		return model.LoginResult{}, fmt.Errorf("%w: %v", ErrInvalidCredentials, err)
	}

	snap := repository.Snapshot{FetchedAt: time.Now()}
	raw, err := s.transport.FetchUserData(ctx, token)
	if err != nil {
		if graphql.IsSessionExpired(err) {
			metrics.RecordSessionExpired()
			s.logger.Warn(ctx, "token expired during login", logger.Error(err))
			return model.LoginResult{}, fmt.Errorf("%w: %v", ErrSessionExpired, err)
		}
		// Degraded mode: cache the empty sentinel and let every view render
		// its empty state.
		metrics.RecordErrorByComponent("service", "fetch")
		s.logger.Warn(ctx, "profile fetch failed, continuing with empty dataset", logger.Error(err))
		snap.Degraded = true
	} else {
		snap.User = payload.ExtractUser(raw)
	}

	sess := s.sessions.Create(ctx, username, token)
	if err := s.snapshots.Put(ctx, sess.ID, snap); err != nil {
		// A fresh uuid can only collide with itself; treat it as fatal.
		s.sessions.Delete(ctx, sess.ID)
		return model.LoginResult{}, err
	}

	metrics.RecordLogin()
	metrics.UpdateActiveSessions(int(s.sessions.Len()))

	login := username
	if snap.User != nil && snap.User.Login != "" {
		login = snap.User.Login
	}
	s.logger.Info(ctx, "login succeeded",
		logger.String("login", login),
		logger.Bool("degraded", snap.Degraded),
	)
	return model.LoginResult{SessionID: sess.ID, Login: login, Degraded: snap.Degraded}, nil
}

// Logout removes the session and its cached snapshot. Unknown sessions are a
// no-op so logout is always safe to call.
func (s *Service) Logout(ctx context.Context, sessionID string) {
	s.sessions.Delete(ctx, sessionID)
	s.snapshots.Drop(ctx, sessionID)
	metrics.UpdateActiveSessions(int(s.sessions.Len()))
}

// SelectView makes the requested view the session's active one and renders
// it from the cached snapshot. Unknown view names fall back to the welcome
// view; an unknown session is an error.
func (s *Service) SelectView(ctx context.Context, sessionID, rawView string) (model.ViewResult, error) {
	_, ok := s.sessions.Get(ctx, sessionID)
	if !ok {
		return model.ViewResult{}, ErrNoSession
	}

	id := view.Normalize(rawView)
	s.sessions.SetView(ctx, sessionID, string(id))

	snap, err := s.snapshots.Get(ctx, sessionID)
	if err != nil {
		return model.ViewResult{}, ErrNoSession
	}

	start := time.Now()
	result := s.views.Render(id, snap.User)
	metrics.RecordDeriveLatency(float64(time.Since(start).Microseconds()) / 1000.0)
	metrics.RecordViewRender(string(id))
	return result, nil
}

// CurrentView renders the session's active view without changing the
// selection.
func (s *Service) CurrentView(ctx context.Context, sessionID string) (model.ViewResult, error) {
	sess, ok := s.sessions.Get(ctx, sessionID)
	if !ok {
		return model.ViewResult{}, ErrNoSession
	}
	return s.SelectView(ctx, sessionID, sess.View)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":         s.started,
		"sessionCapacity": s.sessionCapacity,
		"shardCount":      s.shardCount,
	}

	if s.started {
		sessions := s.sessions.Len()
		snapshots := s.snapshots.Count(ctx)

		stats["activeSessions"] = sessions
		stats["cachedSnapshots"] = snapshots

		metrics.UpdateActiveSessions(int(sessions))
		metrics.UpdateSnapshotCount(snapshots)
	}

	return stats
}
