package cache

import (
	"context"
	"sync"

	"github.com/dbkarmindj67/TicketsandGear/internal/model"
)

// MemoryStore is the in-process detail cache used when no Redis is
// configured, and in tests.
type MemoryStore struct {
	mu      sync.RWMutex
	details map[string]*model.EnrichedEvent
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{details: make(map[string]*model.EnrichedEvent)}
}

func (s *MemoryStore) Get(_ context.Context, sessionID, eventID string) (*model.EnrichedEvent, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	detail, ok := s.details[sessionID+":"+eventID]
	return detail, ok, nil
}

func (s *MemoryStore) Set(_ context.Context, sessionID, eventID string, detail *model.EnrichedEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.details[sessionID+":"+eventID] = detail
	return nil
}
