package chat

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Store holds sessions in memory keyed by an opaque id. Nothing is persisted;
// a restart clears every conversation.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
	onUpdate func(count int)
}

// NewStore creates a store evicting sessions idle for longer than ttl.
// onUpdate, if not nil, receives the session count after every change.
func NewStore(ttl time.Duration, onUpdate func(count int)) *Store {
	return &Store{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		onUpdate: onUpdate,
	}
}

// Get returns the session for id. ok is false for an unknown or blank id.
func (s *Store) Get(id string) (*Session, bool) {
	if id == "" {
		return nil, false
	}
	// Touch while holding the lock so a concurrent Sweep cannot evict a
	// session that is being handed out.
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if ok {
		sess.touch()
	}
	return sess, ok
}

// GetOrCreate returns the session for id, starting a new one with a fresh
// id when id is unknown. created reports whether a new session was made.
func (s *Store) GetOrCreate(id string) (sess *Session, created bool) {
	if sess, ok := s.Get(id); ok {
		return sess, false
	}

	sess = NewSession(uuid.NewString())

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	count := len(s.sessions)
	s.mu.Unlock()

	s.notify(count)
	return sess, true
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Sweep removes sessions idle longer than the TTL and returns how many it
// removed. Sessions with a reply in flight are kept.
func (s *Store) Sweep(now time.Time) int {
	s.mu.Lock()
	removed := 0
	for id, sess := range s.sessions {
		if now.Sub(sess.LastUsed()) > s.ttl && !sess.Loading() {
			delete(s.sessions, id)
			removed++
		}
	}
	count := len(s.sessions)
	s.mu.Unlock()

	if removed > 0 {
		s.notify(count)
	}
	return removed
}

// Run sweeps every interval until ctx is done.
func (s *Store) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			s.Sweep(now)
		}
	}
}

func (s *Store) notify(count int) {
	if s.onUpdate != nil {
		s.onUpdate(count)
	}
}
