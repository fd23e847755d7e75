package session

import (
	"context"
	"time"

	"github.com/Cheertaboi/storefront/internal/cache"
)

// MemoryStore keeps sessions in process. Sessions idle longer than ttl are forgotten.
type MemoryStore struct {
	store *cache.ViewCache[string]
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		store: cache.NewViewCache[string](ttl),
	}
}

func (s *MemoryStore) Get(_ context.Context, sessionID string) (string, error) {
	userID, ok := s.store.Get(sessionID)
	if !ok {
		return "", ErrNotFound
	}
	return userID, nil
}

func (s *MemoryStore) Set(_ context.Context, sessionID, userID string) error {
	s.store.Set(sessionID, userID)
	return nil
}

// Len reports how many sessions are held.
func (s *MemoryStore) Len() int {
	return s.store.Len()
}
