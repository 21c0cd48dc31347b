package calendar

import (
	"slices"
	"time"

	"github.com/venuecal/venuecal/pkg/date_grid"
)

// Stats summarizes a venue's events relative to a point in time.
type Stats struct {
	Total    int `json:"total"`
	Today    int `json:"today"`
	Upcoming int `json:"upcoming"`
	Urgent   int `json:"urgent"`
}

// spans reports whether the event covers the day, comparing whole days only. Both the start
// and the end day are included.
func spans(e Event, day date_grid.CalendarDate) bool {
	return !day.Before(date_grid.DateOf(e.StartDate)) && !day.After(date_grid.DateOf(e.EndDate))
}

// EventsOnDate returns the events covering date ordered by start. Events starting at the same
// time keep their input order. The input is not modified.
func EventsOnDate(events []Event, date date_grid.CalendarDate) []Event {
	return EventsInRange(events, date, date)
}

// EventsInRange returns the events covering at least one day of [from, to], ordered by start.
func EventsInRange(events []Event, from, to date_grid.CalendarDate) []Event {
	matching := make([]Event, 0)
	for _, e := range events {
		if !from.After(date_grid.DateOf(e.EndDate)) && !to.Before(date_grid.DateOf(e.StartDate)) {
			matching = append(matching, e)
		}
	}
	sortByStart(matching)
	return matching
}

// AssociateGrid maps every cell of the grid to the events covering it.
func AssociateGrid(events []Event, grid date_grid.Grid) map[date_grid.CalendarDate][]Event {
	candidates := EventsInRange(events, grid.First(), grid.Last())
	byDay := make(map[date_grid.CalendarDate][]Event, date_grid.Cells)
	for _, cell := range grid.Cells() {
		onDay := make([]Event, 0)
		for _, e := range candidates {
			if spans(e, cell) {
				onDay = append(onDay, e)
			}
		}
		byDay[cell] = onDay
	}
	return byDay
}

// StatsFor counts events in four independent passes. An event starting later today counts
// both as today's and as upcoming.
func StatsFor(events []Event, now time.Time) Stats {
	stats := Stats{Total: len(events)}
	today := date_grid.DateOf(now)
	startOfToday := date_grid.StartOfDay(now)
	for _, e := range events {
		if spans(e, today) {
			stats.Today++
		}
		if e.StartDate.After(startOfToday) {
			stats.Upcoming++
		}
		if e.Priority == PriorityUrgent && !e.StartDate.Before(now) {
			stats.Urgent++
		}
	}
	return stats
}

func sortByStart(events []Event) {
	slices.SortStableFunc(events, func(a, b Event) int {
		return a.StartDate.Compare(b.StartDate)
	})
}
