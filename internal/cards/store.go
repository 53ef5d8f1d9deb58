package cards

import (
	"context"
	"sync"
)

// Store keeps rendered cards for download.
type Store interface {
	Save(ctx context.Context, c Card) error
	Get(ctx context.Context, id string) (Card, error)
}

// MemoryStore keeps cards in process memory. It is meant for development
// and single instance deployments; cards never expire.
type MemoryStore struct {
	mu    sync.RWMutex
	cards map[string]Card
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{cards: map[string]Card{}}
}

func (s *MemoryStore) Save(_ context.Context, c Card) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cards[c.ID] = c
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (Card, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.cards[id]
	if !ok {
		return Card{}, ErrNotFound
	}
	return c, nil
}
