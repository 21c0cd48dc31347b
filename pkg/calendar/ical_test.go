package calendar

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/venuecal/venuecal/pkg/venue_config"
)

func TestRenderICal(t *testing.T) {
	location := "Main Hall"
	event := testEvent("Gala", at(2024, 6, 20, 18, 0), at(2024, 6, 20, 23, 30))
	event.UID = uuid.MustParse("6f1c2a9e-2b7d-4f3e-9a51-0c8d7e6b5a41")
	event.Location = &location
	event.Description = "Black tie"
	event.Priority = "high"
	event.CreatedAt = at(2024, 6, 1, 8, 0)
	event.UpdatedAt = at(2024, 6, 2, 8, 0)

	feed := RenderICal("Harbour Hall", []Event{event}, venue_config.DefaultPriorities())

	for _, line := range []string{
		"BEGIN:VCALENDAR",
		"X-WR-CALNAME:Harbour Hall",
		"BEGIN:VEVENT",
		"UID:6f1c2a9e-2b7d-4f3e-9a51-0c8d7e6b5a41",
		"DTSTART:20240620T180000",
		"DTEND:20240620T233000",
		"SUMMARY:Gala",
		"DESCRIPTION:Black tie",
		"LOCATION:Main Hall",
		"CATEGORIES:MEETING",
		"PRIORITY:2",
		"END:VCALENDAR",
	} {
		assert.Contains(t, feed, line)
	}
	// floating times carry no zone designator
	assert.NotContains(t, feed, "DTSTART:20240620T180000Z")
}

func TestRenderICal_Empty(t *testing.T) {
	feed := RenderICal("Harbour Hall", nil, nil)

	assert.Contains(t, feed, "BEGIN:VCALENDAR")
	assert.False(t, strings.Contains(feed, "BEGIN:VEVENT"))
}

func TestICalPriority(t *testing.T) {
	assert.Equal(t, 1, icalPriority(10))
	assert.Equal(t, 2, icalPriority(8))
	assert.Equal(t, 5, icalPriority(5))
	assert.Equal(t, 9, icalPriority(1))
}
