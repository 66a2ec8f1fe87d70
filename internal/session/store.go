package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type entry struct {
	sess *Session
	seen time.Time
}

// Store keeps sessions by id. Sessions idle for longer than ttl are dropped
// the next time the store is touched.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*entry
	ttl      time.Duration
	factory  Factory
	now      func() time.Time
}

func NewStore(ttl time.Duration, factory Factory) *Store {
	return &Store{
		sessions: make(map[string]*entry),
		ttl:      ttl,
		factory:  factory,
		now:      time.Now,
	}
}

// Create builds a new session and returns it with its id.
func (s *Store) Create() (string, *Session, error) {
	sess, err := s.factory()
	if err != nil {
		return "", nil, err
	}

	id := uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.prune()
	s.sessions[id] = &entry{sess: sess, seen: s.now()}

	return id, sess, nil
}

// Get returns the session for id and marks it as active.
func (s *Store) Get(id string) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.prune()
	e, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	e.seen = s.now()
	return e.sess, true
}

// Len reports the number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// prune must be called with mu held.
func (s *Store) prune() {
	if s.ttl <= 0 {
		return
	}
	cutoff := s.now().Add(-s.ttl)
	for id, e := range s.sessions {
		if e.seen.Before(cutoff) {
			delete(s.sessions, id)
		}
	}
}
