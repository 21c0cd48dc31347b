package google

import (
	"context"
	"errors"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/venuecal/venuecal/internal/event_bus"
	"github.com/venuecal/venuecal/pkg/venue"
	gcal "google.golang.org/api/calendar/v3"
)

const localDateTimeFormat = "2006-01-02T15:04:05"

// VenueLookup resolves the venue an event belongs to.
type VenueLookup func(ctx context.Context, venueId int) (venue.Venue, error)

// Publisher mirrors venue events into the venue's Google calendar.
type Publisher struct {
	client   Client
	venues   VenueLookup
	timeZone string
}

// NewPublisher creates a publisher. Event dates have no zone, Google receives them in timeZone.
func NewPublisher(client Client, venues VenueLookup, timeZone string) *Publisher {
	return &Publisher{client: client, venues: venues, timeZone: timeZone}
}

// Subscribe registers the publisher for calendar changes.
func (p *Publisher) Subscribe(bus *event_bus.EventBus) (unsubscribe func()) {
	handlers := map[event_bus.EventType]func(context.Context, string, event_bus.CalendarEventChanged) error{
		event_bus.CalendarEventCreated: p.insert,
		event_bus.CalendarEventUpdated: p.update,
		event_bus.CalendarEventDeleted: p.delete,
	}
	unsubscribes := make([]func(), 0, len(handlers))
	for eventType, handle := range handlers {
		unsubscribes = append(unsubscribes, event_bus.SubscribeTyped(bus, eventType,
			func(e event_bus.EventT[event_bus.CalendarEventChanged]) error {
				p.publish(e.Context(), eventType, e.Data, handle)
				return nil
			}))
	}
	return func() {
		for _, unsubscribe := range unsubscribes {
			unsubscribe()
		}
	}
}

// publish never fails the originating request, errors are only logged.
func (p *Publisher) publish(ctx context.Context, eventType event_bus.EventType, e event_bus.CalendarEventChanged,
	handle func(context.Context, string, event_bus.CalendarEventChanged) error) {
	v, err := p.venues(ctx, e.VenueId)
	if err != nil {
		log.Errorf("google: failed to get venue %d: %v", e.VenueId, err)
		return
	}
	if v.GoogleCalendarId == "" {
		return
	}
	if err := handle(ctx, v.GoogleCalendarId, e); err != nil {
		log.Errorf("google: failed to publish %s for event %s: %v", eventType, e.UID, err)
		return
	}
	log.Debugf("google: published %s for event %s to %s", eventType, e.UID, v.GoogleCalendarId)
}

func (p *Publisher) insert(ctx context.Context, calendarId string, e event_bus.CalendarEventChanged) error {
	return p.client.InsertEvent(ctx, calendarId, p.toGoogleEvent(e))
}

func (p *Publisher) update(ctx context.Context, calendarId string, e event_bus.CalendarEventChanged) error {
	err := p.client.UpdateEvent(ctx, calendarId, p.toGoogleEvent(e))
	if errors.Is(err, ErrRemoteEventNotFound) {
		// created before the venue had a calendar
		return p.insert(ctx, calendarId, e)
	}
	return err
}

func (p *Publisher) delete(ctx context.Context, calendarId string, e event_bus.CalendarEventChanged) error {
	err := p.client.DeleteEvent(ctx, calendarId, EventId(e.UID))
	if errors.Is(err, ErrRemoteEventNotFound) {
		return nil
	}
	return err
}

func (p *Publisher) toGoogleEvent(e event_bus.CalendarEventChanged) *gcal.Event {
	description := e.Description
	if len(e.Attendees) > 0 {
		description = strings.TrimSpace(fmt.Sprintf("%s\n\nAttendees: %s", description, strings.Join(e.Attendees, ", ")))
	}
	return &gcal.Event{
		Id:          EventId(e.UID),
		Summary:     e.Title,
		Description: description,
		Location:    e.Location,
		Start: &gcal.EventDateTime{
			DateTime: e.StartDate.Format(localDateTimeFormat),
			TimeZone: p.timeZone,
		},
		End: &gcal.EventDateTime{
			DateTime: e.EndDate.Format(localDateTimeFormat),
			TimeZone: p.timeZone,
		},
	}
}

// EventId is the Google event id for an event uid. Google only accepts base32hex characters.
func EventId(uid string) string {
	return strings.ReplaceAll(uid, "-", "")
}
