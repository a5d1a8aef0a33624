// Package activity persists last-activity timestamps per tourist. The
// presence classifier reads these; activity events (any authenticated tourist
// request) write them.
package activity

import (
	"context"
	"fmt"
	"sync"
	"time"

	"tourshield/internal/sentinel"
	id "tourshield/pkg/domain"
)

// Error Contract:
// All store methods follow this error pattern:
// - Return sentinel.ErrNotFound (wrapped) when no activity has been recorded
// - Return nil for successful operations
// - Return wrapped errors with context for infrastructure failures

// InMemoryActivityStore stores activity timestamps in memory for tests and
// development.
type InMemoryActivityStore struct {
	mu         sync.RWMutex
	lastActive map[id.UserID]time.Time
}

// New constructs an empty in-memory activity store.
func New() *InMemoryActivityStore {
	return &InMemoryActivityStore{lastActive: make(map[id.UserID]time.Time)}
}

// Touch records activity at the given time. Later-or-equal timestamps win:
// an out-of-order touch never moves the clock backwards.
func (s *InMemoryActivityStore) Touch(_ context.Context, userID id.UserID, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if current, ok := s.lastActive[userID]; ok && current.After(at) {
		return nil
	}
	s.lastActive[userID] = at
	return nil
}

func (s *InMemoryActivityStore) LastActive(_ context.Context, userID id.UserID) (time.Time, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if at, ok := s.lastActive[userID]; ok {
		return at, nil
	}
	return time.Time{}, fmt.Errorf("no activity recorded: %w", sentinel.ErrNotFound)
}

func (s *InMemoryActivityStore) ListLastActive(_ context.Context) (map[id.UserID]time.Time, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make(map[id.UserID]time.Time, len(s.lastActive))
	for userID, at := range s.lastActive {
		result[userID] = at
	}
	return result, nil
}
