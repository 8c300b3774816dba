package dashboard

import (
	"context"
	"log"
	"sync"

	"github.com/angkringan-pos/admin-api/internal/model"
	"github.com/angkringan-pos/admin-api/internal/store"
)

// Fetcher lists the four collections the dashboard aggregates.
// Satisfied by *upstream.Client; narrow interface for testability.
type Fetcher interface {
	ListUsers(ctx context.Context) ([]model.User, error)
	ListPromos(ctx context.Context) ([]model.Promo, error)
	ListReviews(ctx context.Context) ([]model.Review, error)
	ListTransactions(ctx context.Context) ([]model.Transaction, error)
}

// Service fetches the dashboard's collections concurrently and keeps the
// last reduced snapshot. Each fetch is isolated: one collection failing
// falls back to its stale snapshot instead of voiding the others.
type Service struct {
	fetcher Fetcher

	users   *store.Store[model.User]
	promos  *store.Store[model.Promo]
	reviews *store.Store[model.Review]
	txns    *store.Store[model.Transaction]

	mu    sync.RWMutex
	stats Stats

	// notify, when set, receives every freshly reduced snapshot.
	notify func(Stats)
}

func NewService(fetcher Fetcher) *Service {
	return &Service{
		fetcher: fetcher,
		users:   store.New[model.User](),
		promos:  store.New[model.Promo](),
		reviews: store.New[model.Review](),
		txns:    store.New[model.Transaction](),
	}
}

// OnRefresh registers a callback invoked with each new snapshot. Must be
// set before the first Refresh.
func (s *Service) OnRefresh(fn func(Stats)) {
	s.notify = fn
}

// Stats returns the last reduced snapshot.
func (s *Service) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stats
}

// Refresh fetches all four collections concurrently, reduces them, and
// returns the new snapshot. A failed fetch is logged and that collection's
// previous snapshot is used.
func (s *Service) Refresh(ctx context.Context) Stats {
	var wg sync.WaitGroup
	wg.Add(4)

	go func() {
		defer wg.Done()
		if err := s.users.Refresh(ctx, s.fetcher.ListUsers); err != nil {
			log.Printf("ERROR: dashboard fetch users: %v", err)
		}
	}()
	go func() {
		defer wg.Done()
		if err := s.promos.Refresh(ctx, s.fetcher.ListPromos); err != nil {
			log.Printf("ERROR: dashboard fetch promos: %v", err)
		}
	}()
	go func() {
		defer wg.Done()
		if err := s.reviews.Refresh(ctx, s.fetcher.ListReviews); err != nil {
			log.Printf("ERROR: dashboard fetch reviews: %v", err)
		}
	}()
	go func() {
		defer wg.Done()
		if err := s.txns.Refresh(ctx, s.fetcher.ListTransactions); err != nil {
			log.Printf("ERROR: dashboard fetch transactions: %v", err)
		}
	}()

	wg.Wait()

	stats := Reduce(s.users.Snapshot(), s.promos.Snapshot(), s.reviews.Snapshot(), s.txns.Snapshot())

	s.mu.Lock()
	s.stats = stats
	s.mu.Unlock()

	if s.notify != nil {
		s.notify(stats)
	}
	return stats
}
