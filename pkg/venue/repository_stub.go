package venue

import (
	"context"
	"sort"
	"sync"
	"time"
)

type RepositoryStub struct {
	mu     sync.RWMutex
	nextId int
	venues map[int]Venue
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{venues: map[int]Venue{}}
}

func (s *RepositoryStub) CreateVenue(ctx context.Context, venue Venue) (Venue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.venues {
		if existing.Code == venue.Code {
			return Venue{}, ErrVenueCodeTaken
		}
	}
	s.nextId++
	venue.Id = s.nextId
	venue.CreatedAt = time.Now()
	s.venues[venue.Id] = venue
	return venue, nil
}

func (s *RepositoryStub) GetVenue(ctx context.Context, id int) (Venue, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	venue, ok := s.venues[id]
	if !ok {
		return Venue{}, ErrVenueNotFound
	}
	return venue, nil
}

func (s *RepositoryStub) GetVenueByCode(ctx context.Context, code string) (Venue, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, venue := range s.venues {
		if venue.Code == code {
			return venue, nil
		}
	}
	return Venue{}, ErrVenueNotFound
}

func (s *RepositoryStub) UpdateVenue(ctx context.Context, venue Venue) (Venue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.venues[venue.Id]
	if !ok {
		return Venue{}, ErrVenueNotFound
	}
	existing.Name = venue.Name
	existing.GoogleCalendarId = venue.GoogleCalendarId
	s.venues[venue.Id] = existing
	return existing, nil
}

func (s *RepositoryStub) ListVenues(ctx context.Context) ([]Venue, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	venues := make([]Venue, 0, len(s.venues))
	for _, venue := range s.venues {
		venues = append(venues, venue)
	}
	sort.Slice(venues, func(i, j int) bool { return venues[i].Id < venues[j].Id })
	return venues, nil
}

func (s *RepositoryStub) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextId = 0
	s.venues = map[int]Venue{}
}
