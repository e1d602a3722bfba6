package launchpad

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// stateTTL bounds how long an authorization redirect stays valid. Launchpad
// sessions are interactive, so ten minutes is generous.
const stateTTL = 10 * time.Minute

// stateStore tracks outstanding OAuth state values. Each value is single
// use: Consume removes it whether or not it is still valid, so a replayed
// callback always fails.
type stateStore struct {
	mu     sync.Mutex
	states map[string]time.Time
	now    func() time.Time
}

func newStateStore() *stateStore {
	return &stateStore{
		states: make(map[string]time.Time),
		now:    time.Now,
	}
}

// Issue creates a new state value. Expired entries are pruned here rather
// than in a background goroutine; authorization starts are rare enough that
// the map stays tiny.
func (s *stateStore) Issue() string {
	value := uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for v, expiry := range s.states {
		if now.After(expiry) {
			delete(s.states, v)
		}
	}
	s.states[value] = now.Add(stateTTL)
	return value
}

// Consume validates and removes a state value. It reports false for
// unknown, expired, or already consumed values.
func (s *stateStore) Consume(value string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	expiry, ok := s.states[value]
	if !ok {
		return false
	}
	delete(s.states, value)
	return !s.now().After(expiry)
}
