package wizard

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"matrimonial/services/photos"
	"matrimonial/services/preview"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Session is one open wizard. Calls are serialised; Status and Events can be read
// while a submit is running.
type Session struct {
	ID     string
	UserID string

	mu         sync.Mutex
	ctrl       *Controller
	notifier   *EventNotifier
	closed     bool
	submitting atomic.Bool
	lastSeen   atomic.Int64
}

func (s *Session) touch(now time.Time) {
	s.lastSeen.Store(now.UnixNano())
}

// Do runs fn against the controller while holding the session lock.
func (s *Session) Do(fn func(c *Controller) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSessionNotFound
	}
	s.touch(time.Now())
	return fn(s.ctrl)
}

// Submit rejects overlapping calls instead of queueing them behind the lock.
func (s *Session) Submit(ctx context.Context) (*SubmitResult, error) {
	if !s.submitting.CompareAndSwap(false, true) {
		return nil, ErrSubmitInProgress
	}
	defer s.submitting.Store(false)

	var res *SubmitResult
	err := s.Do(func(c *Controller) error {
		var err error
		res, err = c.Submit(ctx)
		return err
	})
	return res, err
}

func (s *Session) Status() Status {
	return s.ctrl.Status()
}

// Events drains the queued UI side effects.
func (s *Session) Events() []Event {
	return s.notifier.Drain()
}

func (s *Session) teardown(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.ctrl.Close(ctx)
}

// Registry tracks open wizard sessions and tears down idle ones.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Session
	previews preview.Store
	idleTTL  time.Duration
	logger   *zap.Logger
}

func NewRegistry(previews preview.Store, idleTTL time.Duration, logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		sessions: make(map[string]*Session),
		previews: previews,
		idleTTL:  idleTTL,
		logger:   logger,
	}
}

// Open starts a wizard for the session's user, loading any stored profile. Earlier
// sessions of the same user are closed.
func (r *Registry) Open(ctx context.Context, store ProfileStore, sess SessionContext) (*Session, error) {
	user := sess.CurrentUser()
	notifier := NewEventNotifier()
	logger := r.logger.With(zap.String("userID", user.ID))
	ctrl, err := New(Deps{
		Store:    store,
		Session:  sess,
		Notifier: notifier,
		Photos:   photos.NewManager(r.previews, photos.WithLogger(logger)),
		Logger:   logger,
	})
	if err != nil {
		return nil, err
	}
	if err := ctrl.Open(ctx); err != nil {
		_ = ctrl.Close(ctx)
		return nil, err
	}

	s := &Session{
		ID:       uuid.NewString(),
		UserID:   user.ID,
		ctrl:     ctrl,
		notifier: notifier,
	}
	s.touch(time.Now())

	r.mu.Lock()
	var stale []*Session
	for id, other := range r.sessions {
		if other.UserID == user.ID {
			stale = append(stale, other)
			delete(r.sessions, id)
		}
	}
	r.sessions[s.ID] = s
	r.mu.Unlock()

	for _, other := range stale {
		if err := other.teardown(ctx); err != nil {
			logger.Warn("failed to tear down replaced wizard session", zap.String("sessionID", other.ID), zap.Error(err))
		}
	}
	logger.Info("wizard session opened", zap.String("sessionID", s.ID), zap.Bool("editMode", ctrl.EditMode()))
	return s, nil
}

// Get returns the session if it exists and belongs to userID.
func (r *Registry) Get(id, userID string) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok || s.UserID != userID {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// Close tears a session down and releases its previews.
func (r *Registry) Close(ctx context.Context, id string) error {
	r.mu.Lock()
	s, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()
	if !ok {
		return ErrSessionNotFound
	}
	if err := s.teardown(ctx); err != nil {
		return fmt.Errorf("failed to close wizard session %s: %w", id, err)
	}
	r.logger.Debug("wizard session closed", zap.String("sessionID", id))
	return nil
}

// Sweep closes sessions idle since before now-idleTTL. Sessions in the middle of
// a submit are skipped. It returns how many were closed.
func (r *Registry) Sweep(ctx context.Context, now time.Time) int {
	cutoff := now.Add(-r.idleTTL).UnixNano()

	r.mu.Lock()
	var idle []*Session
	for id, s := range r.sessions {
		if s.lastSeen.Load() < cutoff && !s.submitting.Load() {
			idle = append(idle, s)
			delete(r.sessions, id)
		}
	}
	r.mu.Unlock()

	for _, s := range idle {
		if err := s.teardown(ctx); err != nil {
			r.logger.Warn("failed to tear down idle wizard session", zap.String("sessionID", s.ID), zap.Error(err))
		}
	}
	if len(idle) > 0 {
		r.logger.Info("idle wizard sessions closed", zap.Int("count", len(idle)))
	}
	return len(idle)
}

// CloseAll tears down every session, for shutdown.
func (r *Registry) CloseAll(ctx context.Context) error {
	r.mu.Lock()
	all := make([]*Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		all = append(all, s)
	}
	r.sessions = make(map[string]*Session)
	r.mu.Unlock()

	var errs []error
	for _, s := range all {
		errs = append(errs, s.teardown(ctx))
	}
	return errors.Join(errs...)
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
