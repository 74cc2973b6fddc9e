package config

import (
	"sync"

	"phone_hunter/internal/domain"
	"phone_hunter/internal/domain/value"
	"phone_hunter/pkg/errcodes"
)

// CatalogStore hands out immutable catalog snapshots. Runtime adjustments
// (the /setbudget command, /reload) swap the whole snapshot under the lock;
// a scan cycle that already took a snapshot keeps scoring against it.
type CatalogStore struct {
	mu      sync.RWMutex
	current value.Catalog
}

func NewCatalogStore(catalog value.Catalog) *CatalogStore {
	return &CatalogStore{current: catalog}
}

func (s *CatalogStore) Snapshot() value.Catalog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// SetBudget publishes a new snapshot with the adjusted budget and returns it.
func (s *CatalogStore) SetBudget(budget int64) (value.Catalog, error) {
	if budget <= 0 {
		return value.Catalog{}, domain.NewError(errcodes.InvalidBudget, "budget must be positive")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = s.current.WithBudget(budget)
	return s.current, nil
}

// SetMinProfit publishes a new snapshot with the profit floor applied to
// every model and returns it.
func (s *CatalogStore) SetMinProfit(minProfit int64) (value.Catalog, error) {
	if minProfit < 0 {
		return value.Catalog{}, domain.NewError(errcodes.InvalidBudget, "min profit must not be negative")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = s.current.WithMinProfit(minProfit)
	return s.current, nil
}

// Replace swaps in a freshly loaded catalog, keeping the version monotonic.
func (s *CatalogStore) Replace(catalog value.Catalog) value.Catalog {
	s.mu.Lock()
	defer s.mu.Unlock()

	catalog.Version = s.current.Version + 1
	s.current = catalog
	return s.current
}
