package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/gpacalc/internal/courses"
)

// ErrNotFound is returned for an unknown or expired session id.
var ErrNotFound = errors.New("session not found")

type entry struct {
	mu      sync.Mutex
	session *Session
}

// Registry keeps live sessions in memory and expires idle ones.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*entry
	ttl      time.Duration
	ids      courses.IDGenerator
	now      func() time.Time
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithCourseIDs sets the generator used for course ids in new sessions.
func WithCourseIDs(gen courses.IDGenerator) RegistryOption {
	return func(r *Registry) { r.ids = gen }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) RegistryOption {
	return func(r *Registry) { r.now = now }
}

// NewRegistry creates a registry. Sessions idle for longer than ttl are
// removed by Prune; a zero ttl disables expiry.
func NewRegistry(ttl time.Duration, opts ...RegistryOption) *Registry {
	r := &Registry{
		sessions: make(map[string]*entry),
		ttl:      ttl,
		ids:      courses.RandomIDs,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Create starts a new session seeded with one blank course.
func (r *Registry) Create() View {
	s := New(uuid.NewString(), r.ids)
	s.lastUsed = r.now()

	r.mu.Lock()
	r.sessions[s.id] = &entry{session: s}
	r.mu.Unlock()

	return s.View()
}

// Do runs fn with exclusive access to the session and marks it as used.
func (r *Registry) Do(id string, fn func(*Session) error) error {
	r.mu.Lock()
	e, ok := r.sessions[id]
	r.mu.Unlock()
	if !ok {
		return ErrNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.session.lastUsed = r.now()
	return fn(e.session)
}

// Delete removes a session. It reports whether the session existed.
func (r *Registry) Delete(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.sessions[id]
	delete(r.sessions, id)
	return ok
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Prune removes sessions idle since before now-ttl and returns how many
// were removed.
func (r *Registry) Prune(now time.Time) int {
	if r.ttl <= 0 {
		return 0
	}
	cutoff := now.Add(-r.ttl)

	r.mu.Lock()
	defer r.mu.Unlock()
	removed := 0
	for id, e := range r.sessions {
		e.mu.Lock()
		idle := e.session.lastUsed.Before(cutoff)
		e.mu.Unlock()
		if idle {
			delete(r.sessions, id)
			removed++
		}
	}
	return removed
}

// Run prunes expired sessions every interval until ctx is cancelled.
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Prune(r.now()); n > 0 {
				slog.Debug("Expired idle sessions", "count", n, "remaining", r.Len())
			}
		}
	}
}
