package venue

import (
	"context"
	"fmt"
	"strings"
)

type Service interface {
	CreateVenue(ctx context.Context, code, name string) (Venue, error)
	GetVenue(ctx context.Context, id int) (Venue, error)
	GetVenueByCode(ctx context.Context, code string) (Venue, error)
	GetCurrentVenue(ctx context.Context) (Venue, error)
	UpdateCurrentVenue(ctx context.Context, name, googleCalendarId string) (Venue, error)
	ListVenues(ctx context.Context) ([]Venue, error)
}

// Provider is the read-only view other packages need to look venues up.
type Provider interface {
	GetVenue(ctx context.Context, id int) (Venue, error)
}

type ServiceImpl struct {
	repo Repository
}

func NewService(repo Repository) *ServiceImpl {
	return &ServiceImpl{repo: repo}
}

func (s *ServiceImpl) CreateVenue(ctx context.Context, code, name string) (Venue, error) {
	code = strings.TrimSpace(code)
	if err := validateCode(code); err != nil {
		return Venue{}, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return Venue{}, errNameRequired
	}
	created, err := s.repo.CreateVenue(ctx, Venue{Code: code, Name: name})
	if err != nil {
		return Venue{}, fmt.Errorf("failed to create venue %s: %w", code, err)
	}
	return created, nil
}

func (s *ServiceImpl) GetVenue(ctx context.Context, id int) (Venue, error) {
	return s.repo.GetVenue(ctx, id)
}

func (s *ServiceImpl) GetVenueByCode(ctx context.Context, code string) (Venue, error) {
	return s.repo.GetVenueByCode(ctx, code)
}

func (s *ServiceImpl) GetCurrentVenue(ctx context.Context) (Venue, error) {
	venueId, err := CurrentId(ctx)
	if err != nil {
		return Venue{}, fmt.Errorf("failed to get current venue: %w", err)
	}
	return s.repo.GetVenue(ctx, venueId)
}

func (s *ServiceImpl) UpdateCurrentVenue(ctx context.Context, name, googleCalendarId string) (Venue, error) {
	venueId, err := CurrentId(ctx)
	if err != nil {
		return Venue{}, fmt.Errorf("failed to get current venue: %w", err)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return Venue{}, errNameRequired
	}
	updated, err := s.repo.UpdateVenue(ctx, Venue{
		Id:               venueId,
		Name:             name,
		GoogleCalendarId: strings.TrimSpace(googleCalendarId),
	})
	if err != nil {
		return Venue{}, fmt.Errorf("failed to update venue %d: %w", venueId, err)
	}
	return updated, nil
}

func (s *ServiceImpl) ListVenues(ctx context.Context) ([]Venue, error) {
	return s.repo.ListVenues(ctx)
}
