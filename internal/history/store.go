// Package history keeps a bounded, newest-first record of completed scans.
package history

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/sahilmaurya2006/website-security-scanner/internal/domain/scan"
	consts "github.com/sahilmaurya2006/website-security-scanner/internal/shared/constants"
	sharedErrors "github.com/sahilmaurya2006/website-security-scanner/internal/shared/errors"
)

const subscriberBuffer = 10

// Store is a fixed-capacity ring of scan results. When full, each Submit
// evicts the oldest record. Safe for concurrent use.
type Store struct {
	mu          sync.RWMutex
	slots       []scan.Result
	next        int // slot the next submission lands in
	count       int
	index       map[string]int
	subscribers map[chan scan.Result]struct{}
	newID       func() string
}

// NewStore returns an empty store holding at most capacity results. A
// non-positive capacity falls back to the default of 50.
func NewStore(capacity int) *Store {
	if capacity <= 0 {
		capacity = consts.DefaultHistoryCapacity
	}
	return &Store{
		slots:       make([]scan.Result, capacity),
		index:       make(map[string]int, capacity),
		subscribers: make(map[chan scan.Result]struct{}),
		newID:       generateID,
	}
}

// Capacity returns the maximum number of retained results.
func (s *Store) Capacity() int {
	return len(s.slots)
}

// Submit stores result under a fresh identifier and returns it. Any ID
// already on result is replaced.
func (s *Store) Submit(result scan.Result) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.newID()
	for {
		if _, taken := s.index[id]; !taken {
			break
		}
		id = s.newID()
	}
	result.ID = id

	if s.count == len(s.slots) {
		delete(s.index, s.slots[s.next].ID)
	} else {
		s.count++
	}
	s.slots[s.next] = result
	s.index[id] = s.next
	s.next = (s.next + 1) % len(s.slots)

	s.broadcast(result)
	return id
}

// List returns a snapshot of the stored results, newest first.
func (s *Store) List() []scan.Result {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]scan.Result, 0, s.count)
	for i := 1; i <= s.count; i++ {
		slot := (s.next - i + len(s.slots)) % len(s.slots)
		out = append(out, s.slots[slot])
	}
	return out
}

// Get returns the result stored under id.
func (s *Store) Get(id string) (scan.Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	slot, ok := s.index[id]
	if !ok {
		return scan.Result{}, fmt.Errorf("%w: %s", sharedErrors.ErrNotFound, id)
	}
	return s.slots[slot], nil
}

// Clear drops every stored result and returns how many there were.
func (s *Store) Clear() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cleared := s.count
	for i := range s.slots {
		s.slots[i] = scan.Result{}
	}
	clear(s.index)
	s.next, s.count = 0, 0
	return cleared
}

// Len returns the number of stored results.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.count
}

// Subscribe registers for submitted results. Slow subscribers miss events
// rather than block Submit. The returned func unsubscribes and closes the
// channel.
func (s *Store) Subscribe() (<-chan scan.Result, func()) {
	ch := make(chan scan.Result, subscriberBuffer)
	s.mu.Lock()
	s.subscribers[ch] = struct{}{}
	s.mu.Unlock()

	return ch, func() {
		s.mu.Lock()
		if _, ok := s.subscribers[ch]; ok {
			delete(s.subscribers, ch)
			close(ch)
		}
		s.mu.Unlock()
	}
}

// broadcast must be called with mu held.
func (s *Store) broadcast(result scan.Result) {
	for ch := range s.subscribers {
		select {
		case ch <- result:
		default:
		}
	}
}

// generateID returns a time-ordered UUIDv7, or a random UUIDv4 if the clock
// source fails.
func generateID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
