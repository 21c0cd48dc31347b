package calendar

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/venuecal/venuecal/internal/apperr"
	"github.com/venuecal/venuecal/internal/event_bus"
	"github.com/venuecal/venuecal/internal/utils"
	"github.com/venuecal/venuecal/pkg/date_grid"
	"github.com/venuecal/venuecal/pkg/venue"
	"github.com/venuecal/venuecal/pkg/venue_config"
)

// ConfigProvider returns the effective configuration of the venue in the context.
type ConfigProvider func(ctx context.Context) (venue_config.VenueConfig, error)

type Service interface {
	AddEvent(ctx context.Context, draft EventDraft) (Event, error)
	AddEvents(ctx context.Context, drafts []EventDraft) ([]Event, error)
	GetEvent(ctx context.Context, uid uuid.UUID) (Event, error)
	GetEvents(ctx context.Context, from, to time.Time) ([]Event, error)
	EventsOnDate(ctx context.Context, date date_grid.CalendarDate) ([]Event, error)
	MonthView(ctx context.Context, year int, month time.Month) (MonthView, error)
	Stats(ctx context.Context) (Stats, error)
	Feed(ctx context.Context, from, to time.Time) (string, error)
	ModifyEvent(ctx context.Context, uid uuid.UUID, draft EventDraft, lastSeen time.Time) (Event, error)
	DeleteEvent(ctx context.Context, uid uuid.UUID) error
}

type ServiceImpl struct {
	repo     Repository
	config   ConfigProvider
	eventBus *event_bus.EventBus
	clock    utils.Clock
}

func NewService(repo Repository, config ConfigProvider, eventBus *event_bus.EventBus, clock utils.Clock) *ServiceImpl {
	return &ServiceImpl{
		repo:     repo,
		config:   config,
		eventBus: eventBus,
		clock:    clock,
	}
}

func (s *ServiceImpl) AddEvent(ctx context.Context, draft EventDraft) (Event, error) {
	venueId, err := venue.CurrentId(ctx)
	if err != nil {
		return Event{}, fmt.Errorf("failed to get current venue: %w", err)
	}
	config, err := s.config(ctx)
	if err != nil {
		return Event{}, fmt.Errorf("failed to get venue configuration: %w", err)
	}

	event, err := s.newEvent(draft, config)
	if err != nil {
		return Event{}, err
	}
	event.UID, err = s.repo.StoreEvent(ctx, venueId, event)
	if err != nil {
		return Event{}, fmt.Errorf("failed to store event: %w", err)
	}

	s.publish(ctx, event_bus.CalendarEventCreated, venueId, event)
	return event, nil
}

// AddEvents stores all drafts or none of them.
func (s *ServiceImpl) AddEvents(ctx context.Context, drafts []EventDraft) ([]Event, error) {
	venueId, err := venue.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current venue: %w", err)
	}
	config, err := s.config(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get venue configuration: %w", err)
	}

	events := make([]Event, 0, len(drafts))
	for i, draft := range drafts {
		event, err := s.newEvent(draft, config)
		if err != nil {
			return nil, fmt.Errorf("event %d: %w", i, err)
		}
		events = append(events, event)
	}

	err = s.repo.WithTransaction(ctx, func(repo Repository) error {
		for i := range events {
			uid, err := repo.StoreEvent(ctx, venueId, events[i])
			if err != nil {
				return fmt.Errorf("failed to store event: %w", err)
			}
			events[i].UID = uid
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to perform transaction: %w", err)
	}

	for _, event := range events {
		s.publish(ctx, event_bus.CalendarEventCreated, venueId, event)
	}
	return events, nil
}

func (s *ServiceImpl) newEvent(draft EventDraft, config venue_config.VenueConfig) (Event, error) {
	now := s.timestamp()
	event := Event{
		Title:       draft.Title,
		Description: draft.Description,
		StartDate:   wallClock(draft.StartDate),
		EndDate:     wallClock(draft.EndDate),
		Category:    draft.Category,
		Priority:    draft.Priority,
		Attendees:   cleanAttendees(draft.Attendees),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if event.Category == "" {
		event.Category = config.DefaultCategory
	}
	if event.Priority == "" {
		event.Priority = config.DefaultPriority
	}
	if draft.EndDate.IsZero() && !event.StartDate.IsZero() {
		event.EndDate = event.StartDate.Add(time.Duration(config.DefaultEventDuration) * time.Minute)
	}
	if err := validateEvent(event); err != nil {
		return Event{}, err
	}
	if err := validateCodes(event, config); err != nil {
		return Event{}, err
	}

	location, err := resolveLocation(draft.Location, config)
	if err != nil {
		return Event{}, err
	}
	event.Location = location
	return event, nil
}

func validateCodes(event Event, config venue_config.VenueConfig) error {
	if _, ok := venue_config.FindCategory(config, event.Category); !ok {
		return apperr.Invalid("category", "unknown category %q", event.Category)
	}
	if _, ok := venue_config.FindPriority(config, event.Priority); !ok {
		return apperr.Invalid("priority", "unknown priority %q", event.Priority)
	}
	return nil
}

func (s *ServiceImpl) GetEvent(ctx context.Context, uid uuid.UUID) (Event, error) {
	venueId, err := venue.CurrentId(ctx)
	if err != nil {
		return Event{}, fmt.Errorf("failed to get current venue: %w", err)
	}
	return s.repo.GetEvent(ctx, venueId, uid)
}

func (s *ServiceImpl) GetEvents(ctx context.Context, from, to time.Time) ([]Event, error) {
	venueId, err := venue.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current venue: %w", err)
	}
	from, to = wallClock(from), wallClock(to)
	if to.Before(from) {
		return nil, apperr.Invalid("to", "must not be before from")
	}
	return s.repo.GetEvents(ctx, venueId, from, to)
}

// eventsBetween loads the events touching any day of [from, to].
func (s *ServiceImpl) eventsBetween(ctx context.Context, venueId int, from, to date_grid.CalendarDate) ([]Event, error) {
	events, err := s.repo.GetEvents(ctx, venueId, from.In(time.UTC), date_grid.EndOfDay(to.In(time.UTC)))
	if err != nil {
		return nil, fmt.Errorf("failed to get events: %w", err)
	}
	return events, nil
}

func (s *ServiceImpl) EventsOnDate(ctx context.Context, date date_grid.CalendarDate) ([]Event, error) {
	venueId, err := venue.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current venue: %w", err)
	}
	events, err := s.eventsBetween(ctx, venueId, date, date)
	if err != nil {
		return nil, err
	}
	return EventsOnDate(events, date), nil
}

func (s *ServiceImpl) MonthView(ctx context.Context, year int, month time.Month) (MonthView, error) {
	venueId, err := venue.CurrentId(ctx)
	if err != nil {
		return MonthView{}, fmt.Errorf("failed to get current venue: %w", err)
	}
	config, err := s.config(ctx)
	if err != nil {
		return MonthView{}, fmt.Errorf("failed to get venue configuration: %w", err)
	}

	grid := date_grid.NewGrid(year, month, time.Weekday(config.FirstDayOfWeek))
	events, err := s.eventsBetween(ctx, venueId, grid.First(), grid.Last())
	if err != nil {
		return MonthView{}, err
	}
	return buildMonthView(grid, time.Weekday(config.FirstDayOfWeek), events, date_grid.DateOf(s.now()))
}

func (s *ServiceImpl) Stats(ctx context.Context) (Stats, error) {
	venueId, err := venue.CurrentId(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("failed to get current venue: %w", err)
	}
	events, err := s.repo.GetAllEvents(ctx, venueId)
	if err != nil {
		return Stats{}, fmt.Errorf("failed to get events: %w", err)
	}
	return StatsFor(events, s.now()), nil
}

// Feed renders the venue's events as iCalendar. Zero bounds select all events.
func (s *ServiceImpl) Feed(ctx context.Context, from, to time.Time) (string, error) {
	venueId, err := venue.CurrentId(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to get current venue: %w", err)
	}
	config, err := s.config(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to get venue configuration: %w", err)
	}

	var events []Event
	if from.IsZero() && to.IsZero() {
		events, err = s.repo.GetAllEvents(ctx, venueId)
	} else {
		events, err = s.GetEvents(ctx, from, to)
	}
	if err != nil {
		return "", fmt.Errorf("failed to get events: %w", err)
	}

	name := config.VenueName
	if name == "" {
		name = config.CompanyName
	}
	return RenderICal(name, events, venue_config.AllPriorities(config, venueId)), nil
}

// ModifyEvent replaces the event's fields with the draft; an empty category or priority keeps the
// current code. A non-zero lastSeen must match the stored UpdatedAt, otherwise ErrEventChanged is returned and nothing is written.
func (s *ServiceImpl) ModifyEvent(ctx context.Context, uid uuid.UUID, draft EventDraft, lastSeen time.Time) (Event, error) {
	venueId, err := venue.CurrentId(ctx)
	if err != nil {
		return Event{}, fmt.Errorf("failed to get current venue: %w", err)
	}
	current, err := s.repo.GetEvent(ctx, venueId, uid)
	if err != nil {
		return Event{}, err
	}
	config, err := s.config(ctx)
	if err != nil {
		return Event{}, fmt.Errorf("failed to get venue configuration: %w", err)
	}

	if draft.Category == "" {
		draft.Category = current.Category
	}
	if draft.Priority == "" {
		draft.Priority = current.Priority
	}
	// codes already on the event stay valid even if the option was deactivated since
	if draft.Category == current.Category {
		config.CustomCategories = withCategory(config.CustomCategories, current.Category)
	}
	if draft.Priority == current.Priority {
		config.CustomPriorities = withPriority(config.CustomPriorities, current.Priority)
	}
	updated, err := s.newEvent(draft, config)
	if err != nil {
		return Event{}, err
	}
	updated.UID = current.UID
	updated.CreatedAt = current.CreatedAt

	written, err := s.repo.UpdateEvent(ctx, venueId, updated, lastSeen)
	if err != nil {
		return Event{}, fmt.Errorf("failed to update event: %w", err)
	}
	if !written {
		if _, err := s.repo.GetEvent(ctx, venueId, uid); err != nil {
			return Event{}, err
		}
		return Event{}, ErrEventChanged
	}

	s.publish(ctx, event_bus.CalendarEventUpdated, venueId, updated)
	return updated, nil
}

func (s *ServiceImpl) DeleteEvent(ctx context.Context, uid uuid.UUID) error {
	venueId, err := venue.CurrentId(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current venue: %w", err)
	}
	deleted, err := s.repo.DeleteEvent(ctx, venueId, uid)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	if !deleted {
		return ErrEventNotFound
	}
	s.publish(ctx, event_bus.CalendarEventDeleted, venueId, Event{UID: uid})
	return nil
}

func (s *ServiceImpl) publish(ctx context.Context, eventType event_bus.EventType, venueId int, e Event) {
	payload := event_bus.CalendarEventChanged{
		VenueId:     venueId,
		UID:         e.UID.String(),
		Title:       e.Title,
		Description: e.Description,
		Location:    e.LocationName(),
		Category:    e.Category,
		Priority:    e.Priority,
		Attendees:   e.Attendees,
		StartDate:   e.StartDate,
		EndDate:     e.EndDate,
	}
	if err := s.eventBus.Publish(event_bus.NewEvent(ctx, eventType, payload)); err != nil {
		log.Errorf("failed to publish %s for event %s: %v", eventType, e.UID, err)
	}
}

// now is the current wall-clock time, comparable with event dates.
func (s *ServiceImpl) now() time.Time {
	return wallClock(s.clock.Now())
}

// timestamp is the current instant for CreatedAt/UpdatedAt, truncated to what the database keeps.
func (s *ServiceImpl) timestamp() time.Time {
	return s.clock.Now().UTC().Truncate(time.Microsecond)
}

// wallClock keeps the clock reading of t and drops its zone. Event dates are local calendar
// dates, so 09:00 in any zone stays 09:00.
func wallClock(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

func withCategory(custom []venue_config.CategoryOption, id string) []venue_config.CategoryOption {
	for i, c := range custom {
		if c.Id == id && !c.IsActive {
			activated := append([]venue_config.CategoryOption(nil), custom...)
			activated[i].IsActive = true
			return activated
		}
	}
	return custom
}

func withPriority(custom []venue_config.PriorityOption, id string) []venue_config.PriorityOption {
	for i, p := range custom {
		if p.Id == id && !p.IsActive {
			activated := append([]venue_config.PriorityOption(nil), custom...)
			activated[i].IsActive = true
			return activated
		}
	}
	return custom
}
