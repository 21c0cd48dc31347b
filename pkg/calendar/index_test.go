package calendar

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/venuecal/venuecal/pkg/date_grid"
)

func at(year int, month time.Month, day, hour, minute int) time.Time {
	return time.Date(year, month, day, hour, minute, 0, 0, time.UTC)
}

func testEvent(title string, start, end time.Time) Event {
	return Event{UID: uuid.New(), Title: title, StartDate: start, EndDate: end, Category: "meeting", Priority: "medium"}
}

func titles(events []Event) []string {
	result := make([]string, 0, len(events))
	for _, e := range events {
		result = append(result, e.Title)
	}
	return result
}

func TestEventsOnDate_MultiDayEventCoversEveryDay(t *testing.T) {
	events := []Event{testEvent("Festival", at(2024, 6, 1, 10, 0), at(2024, 6, 3, 12, 0))}

	testCases := []struct {
		date date_grid.CalendarDate
		want int
	}{
		{date: date_grid.NewDate(2024, 5, 31), want: 0},
		{date: date_grid.NewDate(2024, 6, 1), want: 1},
		{date: date_grid.NewDate(2024, 6, 2), want: 1},
		{date: date_grid.NewDate(2024, 6, 3), want: 1},
		{date: date_grid.NewDate(2024, 6, 4), want: 0},
	}
	for _, tc := range testCases {
		t.Run(tc.date.String(), func(t *testing.T) {
			assert.Len(t, EventsOnDate(events, tc.date), tc.want)
		})
	}
}

func TestEventsOnDate_IgnoresTimeOfDay(t *testing.T) {
	events := []Event{
		testEvent("Late", at(2024, 3, 15, 23, 59), at(2024, 3, 16, 0, 30)),
		testEvent("Early", at(2024, 3, 14, 22, 0), at(2024, 3, 15, 0, 0)),
		testEvent("Next day", at(2024, 3, 16, 0, 0), at(2024, 3, 16, 1, 0)),
	}

	onDay := EventsOnDate(events, date_grid.NewDate(2024, 3, 15))

	assert.Equal(t, []string{"Early", "Late"}, titles(onDay))
}

func TestEventsOnDate_OrderedByStartAndStable(t *testing.T) {
	events := []Event{
		testEvent("Lunch", at(2024, 6, 1, 12, 0), at(2024, 6, 1, 13, 0)),
		testEvent("Breakfast A", at(2024, 6, 1, 8, 0), at(2024, 6, 1, 9, 0)),
		testEvent("Breakfast B", at(2024, 6, 1, 8, 0), at(2024, 6, 1, 8, 30)),
		testEvent("Elsewhere", at(2024, 7, 1, 8, 0), at(2024, 7, 1, 8, 30)),
	}
	original := append([]Event(nil), events...)
	date := date_grid.NewDate(2024, 6, 1)

	first := EventsOnDate(events, date)
	second := EventsOnDate(events, date)

	assert.Equal(t, []string{"Breakfast A", "Breakfast B", "Lunch"}, titles(first))
	assert.Equal(t, first, second)
	assert.Equal(t, original, events)
}

func TestEventsOnDate_EmptyInput(t *testing.T) {
	onDay := EventsOnDate(nil, date_grid.NewDate(2024, 6, 1))

	assert.NotNil(t, onDay)
	assert.Empty(t, onDay)
}

func TestEventsInRange(t *testing.T) {
	events := []Event{
		testEvent("Before", at(2024, 5, 30, 10, 0), at(2024, 5, 31, 10, 0)),
		testEvent("Spanning", at(2024, 5, 31, 10, 0), at(2024, 6, 2, 10, 0)),
		testEvent("Inside", at(2024, 6, 5, 10, 0), at(2024, 6, 5, 11, 0)),
		testEvent("After", at(2024, 6, 8, 10, 0), at(2024, 6, 8, 11, 0)),
	}

	inRange := EventsInRange(events, date_grid.NewDate(2024, 6, 1), date_grid.NewDate(2024, 6, 7))

	assert.Equal(t, []string{"Spanning", "Inside"}, titles(inRange))
}

func TestAssociateGrid(t *testing.T) {
	grid := date_grid.NewGrid(2024, time.June, time.Sunday)
	events := []Event{
		testEvent("Month change", at(2024, 5, 31, 18, 0), at(2024, 6, 1, 2, 0)),
		testEvent("Outside grid", at(2024, 8, 1, 18, 0), at(2024, 8, 1, 20, 0)),
	}

	byDay := AssociateGrid(events, grid)

	require.Len(t, byDay, date_grid.Cells)
	assert.Equal(t, []string{"Month change"}, titles(byDay[date_grid.NewDate(2024, 5, 31)]))
	assert.Equal(t, []string{"Month change"}, titles(byDay[date_grid.NewDate(2024, 6, 1)]))
	assert.Empty(t, byDay[date_grid.NewDate(2024, 6, 2)])
	for _, cell := range grid.Cells() {
		assert.Equal(t, EventsOnDate(events, cell), byDay[cell], cell.String())
	}
}

func TestStatsFor(t *testing.T) {
	now := at(2024, 6, 15, 22, 30)
	a := testEvent("A", at(2024, 6, 15, 9, 0), at(2024, 6, 15, 10, 0))
	b := testEvent("B", at(2024, 6, 16, 12, 0), at(2024, 6, 16, 13, 0))
	c := testEvent("C", at(2024, 6, 14, 10, 0), at(2024, 6, 16, 10, 0))
	d := testEvent("D", now.Add(2*time.Hour), now.Add(3*time.Hour))
	d.Priority = PriorityUrgent

	stats := StatsFor([]Event{a, b, c, d}, now)

	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, 2, stats.Today)
	// A started later than midnight, so it counts as upcoming too
	assert.Equal(t, 3, stats.Upcoming)
	assert.Equal(t, 1, stats.Urgent)
}

func TestStatsFor_UrgentInThePastIsNotCounted(t *testing.T) {
	now := at(2024, 6, 15, 12, 0)
	past := testEvent("Past", at(2024, 6, 15, 11, 0), at(2024, 6, 15, 13, 0))
	past.Priority = PriorityUrgent
	exactlyNow := testEvent("Now", now, now.Add(time.Hour))
	exactlyNow.Priority = PriorityUrgent

	stats := StatsFor([]Event{past, exactlyNow}, now)

	assert.Equal(t, 1, stats.Urgent)
	assert.Equal(t, Stats{Total: 2, Today: 2, Upcoming: 2, Urgent: 1}, stats)
}

func TestStatsFor_Empty(t *testing.T) {
	assert.Equal(t, Stats{}, StatsFor(nil, time.Now()))
}
