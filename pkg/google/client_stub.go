package google

import (
	"context"
	"fmt"
	"sync"

	gcal "google.golang.org/api/calendar/v3"
)

type ClientStub struct {
	mu        sync.Mutex
	events    map[string]map[string]*gcal.Event // calendarId -> eventId -> event
	calendars []CalendarItem
	// Fail makes every call fail with this error when set.
	Fail error
}

func NewClientStub(calendars ...CalendarItem) *ClientStub {
	return &ClientStub{
		events:    make(map[string]map[string]*gcal.Event),
		calendars: calendars,
	}
}

func (c *ClientStub) InsertEvent(ctx context.Context, calendarId string, event *gcal.Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Fail != nil {
		return c.Fail
	}
	if c.events[calendarId] == nil {
		c.events[calendarId] = make(map[string]*gcal.Event)
	}
	c.events[calendarId][event.Id] = event
	return nil
}

func (c *ClientStub) UpdateEvent(ctx context.Context, calendarId string, event *gcal.Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Fail != nil {
		return c.Fail
	}
	if _, ok := c.events[calendarId][event.Id]; !ok {
		return fmt.Errorf("%w: %s", ErrRemoteEventNotFound, event.Id)
	}
	c.events[calendarId][event.Id] = event
	return nil
}

func (c *ClientStub) DeleteEvent(ctx context.Context, calendarId, eventId string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Fail != nil {
		return c.Fail
	}
	if _, ok := c.events[calendarId][eventId]; !ok {
		return fmt.Errorf("%w: %s", ErrRemoteEventNotFound, eventId)
	}
	delete(c.events[calendarId], eventId)
	return nil
}

func (c *ClientStub) ListCalendars(ctx context.Context) ([]CalendarItem, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Fail != nil {
		return nil, c.Fail
	}
	return c.calendars, nil
}

// Event returns the stored event, or nil.
func (c *ClientStub) Event(calendarId, eventId string) *gcal.Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.events[calendarId][eventId]
}

func (c *ClientStub) Count(calendarId string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.events[calendarId])
}
