package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/venuecal/venuecal/internal/apperr"
)

var (
	ErrEventNotFound = fmt.Errorf("event %w", apperr.ErrNotFound)
	// ErrEventChanged is returned when an update carries a stale UpdatedAt.
	ErrEventChanged = fmt.Errorf("event was modified by someone else: %w", apperr.ErrConflict)
)

// PriorityUrgent is the priority code counted by Stats.Urgent.
const PriorityUrgent = "urgent"

type Event struct {
	UID         uuid.UUID
	Title       string
	Description string
	StartDate   time.Time
	EndDate     time.Time
	Location    *string
	Category    string
	Priority    string
	Attendees   []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// EventDraft is an event as submitted by a form, before defaults are filled in and the
// location is resolved.
type EventDraft struct {
	Title       string
	Description string
	StartDate   time.Time
	// EndDate defaults to StartDate plus the venue's default duration when zero.
	EndDate   time.Time
	Location  LocationInput
	Category  string
	Priority  string
	Attendees []string
}

func (e Event) LocationName() string {
	if e.Location == nil {
		return ""
	}
	return *e.Location
}

func validateEvent(e Event) error {
	if strings.TrimSpace(e.Title) == "" {
		return apperr.Invalid("title", "is required")
	}
	if e.StartDate.IsZero() {
		return apperr.Invalid("startDate", "is required")
	}
	if !e.EndDate.After(e.StartDate) {
		return apperr.Invalid("endDate", "must be after startDate")
	}
	return nil
}

// cleanAttendees trims names and drops empty entries.
func cleanAttendees(attendees []string) []string {
	cleaned := make([]string, 0, len(attendees))
	for _, attendee := range attendees {
		if name := strings.TrimSpace(attendee); name != "" {
			cleaned = append(cleaned, name)
		}
	}
	return cleaned
}
