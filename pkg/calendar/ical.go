package calendar

import (
	"strconv"
	"strings"

	ical "github.com/arran4/golang-ical"
	"github.com/venuecal/venuecal/pkg/venue_config"
)

const floatingTimeFormat = "20060102T150405"

// RenderICal renders the events as an iCalendar feed. Event dates are written as floating
// local times since they carry no zone. Priority levels are mapped onto the iCalendar 1 (highest)
// to 9 (lowest) scale.
func RenderICal(calendarName string, events []Event, priorities []venue_config.PriorityOption) string {
	levels := make(map[string]int, len(priorities))
	for _, p := range priorities {
		levels[p.Id] = p.Level
	}

	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId("-//venuecal//venuecal//EN")
	cal.SetXWRCalName(calendarName)

	for _, e := range events {
		vevent := cal.AddEvent(e.UID.String())
		vevent.SetDtStampTime(e.UpdatedAt)
		vevent.SetCreatedTime(e.CreatedAt)
		vevent.SetModifiedAt(e.UpdatedAt)
		vevent.SetProperty(ical.ComponentPropertyDtStart, e.StartDate.Format(floatingTimeFormat))
		vevent.SetProperty(ical.ComponentPropertyDtEnd, e.EndDate.Format(floatingTimeFormat))
		vevent.SetSummary(e.Title)
		if e.Description != "" {
			vevent.SetDescription(e.Description)
		}
		if e.Location != nil {
			vevent.SetLocation(*e.Location)
		}
		vevent.SetProperty(ical.ComponentPropertyCategories, strings.ToUpper(e.Category))
		if level, ok := levels[e.Priority]; ok {
			vevent.SetProperty(ical.ComponentPropertyPriority, strconv.Itoa(icalPriority(level)))
		}
	}
	return cal.Serialize()
}

func icalPriority(level int) int {
	return min(max(10-level, 1), 9)
}
