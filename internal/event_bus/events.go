package event_bus

import "time"

const (
	CalendarEventCreated EventType = "calendar.event.created"
	CalendarEventUpdated EventType = "calendar.event.updated"
	CalendarEventDeleted EventType = "calendar.event.deleted"
	VenueConfigUpdated   EventType = "venue.config.updated"
)

// CalendarEventChanged describes an event after it was created or updated. For deletions only
// VenueId and UID are set.
type CalendarEventChanged struct {
	VenueId     int
	UID         string
	Title       string
	Description string
	Location    string
	Category    string
	Priority    string
	Attendees   []string
	StartDate   time.Time
	EndDate     time.Time
}

type VenueConfigChanged struct {
	VenueId int
}
