package roster

import (
	"context"
	"sync"

	"boxbook/models"
)

// MemStore is an in-memory Store with the same per-date serialization
// contract as MongoStore. Used in tests and local development.
type MemStore struct {
	mu      sync.RWMutex
	rosters map[string]*models.Roster
	locks   *keyedMutex
}

func NewMemStore() *MemStore {
	return &MemStore{
		rosters: make(map[string]*models.Roster),
		locks:   newKeyedMutex(),
	}
}

func (s *MemStore) Get(_ context.Context, date string) (*models.Roster, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if r, ok := s.rosters[date]; ok {
		return cloneRoster(r), nil
	}
	return emptyRoster(date), nil
}

func (s *MemStore) Update(ctx context.Context, date string, mutate func(*models.Roster) error) (*models.Roster, error) {
	lock := s.locks.get(date)
	lock.Lock()
	defer lock.Unlock()

	current, err := s.Get(ctx, date)
	if err != nil {
		return nil, err
	}

	next := cloneRoster(current)
	if err := mutate(next); err != nil {
		return nil, err
	}
	touch(next)

	s.mu.Lock()
	s.rosters[date] = next
	s.mu.Unlock()
	return cloneRoster(next), nil
}
