package session

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/grocerylist/backend/internal/domain"
)

// entry represents a single session with its expiration
type entry struct {
	state      domain.SessionState
	expiration time.Time
}

// MemoryStore is a thread-safe in-memory session store with sliding TTL
type MemoryStore struct {
	data  map[string]entry
	mutex sync.RWMutex
	ttl   time.Duration

	stop     chan struct{}
	stopOnce sync.Once
	done     chan struct{}
}

// NewMemoryStore creates a store whose sessions expire ttl after their last write.
// Expired sessions are swept every cleanupInterval until Close is called.
func NewMemoryStore(ttl, cleanupInterval time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	if cleanupInterval <= 0 {
		cleanupInterval = 10 * time.Minute
	}

	store := &MemoryStore{
		data: make(map[string]entry),
		ttl:  ttl,
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}

	go store.cleanupExpired(cleanupInterval)

	return store
}

// Get returns the state of a session; missing or expired sessions read as a fresh state
func (s *MemoryStore) Get(ctx context.Context, id string) (domain.SessionState, error) {
	if err := ctx.Err(); err != nil {
		return domain.SessionState{}, err
	}

	s.mutex.RLock()
	defer s.mutex.RUnlock()

	item, exists := s.data[id]
	if !exists || time.Now().After(item.expiration) {
		return domain.NewSessionState(), nil
	}

	return clone(item.state)
}

// Update applies fn to the session state under the write lock and stores the result.
// If fn returns an error nothing is stored.
func (s *MemoryStore) Update(ctx context.Context, id string, fn func(*domain.SessionState) error) (domain.SessionState, error) {
	if err := ctx.Err(); err != nil {
		return domain.SessionState{}, err
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	state := domain.NewSessionState()
	if item, exists := s.data[id]; exists && !time.Now().After(item.expiration) {
		var err error
		if state, err = clone(item.state); err != nil {
			return domain.SessionState{}, err
		}
	}

	if err := fn(&state); err != nil {
		return domain.SessionState{}, err
	}

	// Store a private copy so callers cannot alias the stored cart
	stored, err := clone(state)
	if err != nil {
		return domain.SessionState{}, err
	}

	s.data[id] = entry{
		state:      stored,
		expiration: time.Now().Add(s.ttl),
	}

	return state, nil
}

// Delete removes a session; deleting an unknown session is not an error
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	delete(s.data, id)
	return nil
}

// Close stops the cleanup goroutine and waits for it to exit
func (s *MemoryStore) Close() error {
	s.stopOnce.Do(func() {
		close(s.stop)
	})
	<-s.done
	return nil
}

// cleanupExpired removes expired sessions periodically
func (s *MemoryStore) cleanupExpired(interval time.Duration) {
	defer close(s.done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.removeExpired(time.Now())
		}
	}
}

func (s *MemoryStore) removeExpired(now time.Time) int {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	removed := 0
	for id, item := range s.data {
		if now.After(item.expiration) {
			delete(s.data, id)
			removed++
		}
	}
	return removed
}

// Size returns the current number of stored sessions (for debugging/monitoring)
func (s *MemoryStore) Size() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.data)
}

// Clear removes all sessions
func (s *MemoryStore) Clear() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.data = make(map[string]entry)
}

// clone deep-copies a state through JSON, the same shape an external store would return
func clone(state domain.SessionState) (domain.SessionState, error) {
	data, err := json.Marshal(state)
	if err != nil {
		return domain.SessionState{}, err
	}

	var out domain.SessionState
	if err := json.Unmarshal(data, &out); err != nil {
		return domain.SessionState{}, err
	}
	if out.Cart == nil {
		out.Cart = domain.Cart{}
	}
	return out, nil
}
