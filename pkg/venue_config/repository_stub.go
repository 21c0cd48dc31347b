package venue_config

import (
	"context"
	"slices"
	"sync"
)

type RepositoryStub struct {
	mu      sync.RWMutex
	configs map[int]ConfigPatch
	// FailWrites makes StoreConfig fail with this error when set.
	FailWrites error
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{configs: map[int]ConfigPatch{}}
}

func (s *RepositoryStub) GetConfig(ctx context.Context, venueId int) (ConfigPatch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	patch, ok := s.configs[venueId]
	if !ok {
		return ConfigPatch{}, ErrConfigNotFound
	}
	return ConfigPatch{}.Overlay(patch), nil
}

func (s *RepositoryStub) StoreConfig(ctx context.Context, venueId int, patch ConfigPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWrites != nil {
		return s.FailWrites
	}
	stored := ConfigPatch{}.Overlay(patch)
	if len(stored.Locations) == 0 {
		stored.Locations = nil
	}
	if len(stored.CustomCategories) == 0 {
		stored.CustomCategories = nil
	}
	if len(stored.CustomPriorities) == 0 {
		stored.CustomPriorities = nil
	}
	s.configs[venueId] = stored
	return nil
}

func (s *RepositoryStub) ListCategories(ctx context.Context, venueId int) ([]CategoryOption, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append(DefaultCategories(), slices.Clone(s.configs[venueId].CustomCategories)...), nil
}

func (s *RepositoryStub) ListPriorities(ctx context.Context, venueId int) ([]PriorityOption, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append(DefaultPriorities(), slices.Clone(s.configs[venueId].CustomPriorities)...), nil
}

func (s *RepositoryStub) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.configs = map[int]ConfigPatch{}
	s.FailWrites = nil
}
