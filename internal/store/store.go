// Package store holds the last-fetched collection for one entity. Each
// screen owns exactly one store; the collection is replaced wholesale after
// every successful fetch, never patched in place.
package store

import (
	"context"
	"sync"
	"time"
)

// Store keeps a collection snapshot and a loading flag. Replacement is
// last-write-wins: a later response overwrites an earlier one with no
// ordering guard, matching the single-writer screen model.
type Store[T any] struct {
	mu        sync.RWMutex
	records   []T
	loading   bool
	fetchedAt time.Time
}

func New[T any]() *Store[T] {
	return &Store[T]{}
}

// Snapshot returns a copy of the held collection; callers never alias the
// store's slice.
func (s *Store[T]) Snapshot() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]T, len(s.records))
	copy(out, s.records)
	return out
}

// Loading reports whether a fetch is in flight.
func (s *Store[T]) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// FetchedAt is the time of the last successful replacement, zero if none.
func (s *Store[T]) FetchedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fetchedAt
}

// Replace swaps in a freshly fetched collection and clears the loading flag.
func (s *Store[T]) Replace(records []T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = records
	s.loading = false
	s.fetchedAt = time.Now()
}

// Refresh runs one fetch lifecycle: raise the loading flag, call fetch, and
// either replace the collection or keep the stale snapshot on failure. The
// error is returned for logging; the store itself degrades gracefully.
func (s *Store[T]) Refresh(ctx context.Context, fetch func(context.Context) ([]T, error)) error {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()

	records, err := fetch(ctx)
	if err != nil {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
		return err
	}

	s.Replace(records)
	return nil
}
