package date_grid

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGrid_CoversEveryMonth(t *testing.T) {
	years := []int{2000, 2023, 2024, 2025, 2026}
	weekdays := []time.Weekday{time.Sunday, time.Monday, time.Saturday}

	for _, year := range years {
		for month := time.January; month <= time.December; month++ {
			for _, firstDay := range weekdays {
				grid := NewGrid(year, month, firstDay)
				firstOfMonth := NewDate(year, month, 1)
				lastOfMonth := NewDate(year, month+1, 0)

				assert.Len(t, grid.Weeks, Rows)
				for _, week := range grid.Weeks {
					assert.Len(t, week, Columns)
				}
				assert.Len(t, grid.Cells(), Cells)
				assert.True(t, grid.Contains(firstOfMonth), "%d-%02d should contain the 1st", year, month)
				assert.True(t, grid.Contains(lastOfMonth), "%d-%02d should contain %s", year, month, lastOfMonth)
				assert.Equal(t, firstDay, grid.First().Weekday())
			}
		}
	}
}

func TestNewGrid_CellsAreConsecutiveDays(t *testing.T) {
	grid := NewGrid(2024, time.February, time.Sunday)

	cells := grid.Cells()
	for i := 1; i < len(cells); i++ {
		assert.Equal(t, cells[i-1].AddDays(1), cells[i])
	}
	assert.Equal(t, grid.First().AddDays(Cells-1), grid.Last())
}

func TestNewGrid_EdgeCases(t *testing.T) {
	testCases := []struct {
		name      string
		year      int
		month     time.Month
		firstDay  time.Weekday
		wantFirst CalendarDate
		wantLast  CalendarDate
	}{
		{
			name:      "month starting on the first weekday has no leading days",
			year:      2024,
			month:     time.September,
			firstDay:  time.Sunday,
			wantFirst: CalendarDate{2024, time.September, 1},
			wantLast:  CalendarDate{2024, time.October, 12},
		},
		{
			name:      "31-day month starting on the last weekday still fits in 42 cells",
			year:      2024,
			month:     time.June,
			firstDay:  time.Sunday,
			wantFirst: CalendarDate{2024, time.May, 26},
			wantLast:  CalendarDate{2024, time.July, 6},
		},
		{
			name:      "monday start steps back to the previous monday",
			year:      2024,
			month:     time.March,
			firstDay:  time.Monday,
			wantFirst: CalendarDate{2024, time.February, 26},
			wantLast:  CalendarDate{2024, time.April, 7},
		},
		{
			name:      "leap february",
			year:      2024,
			month:     time.February,
			firstDay:  time.Sunday,
			wantFirst: CalendarDate{2024, time.January, 28},
			wantLast:  CalendarDate{2024, time.March, 9},
		},
		{
			name:      "invalid first day falls back to sunday",
			year:      2024,
			month:     time.September,
			firstDay:  time.Weekday(9),
			wantFirst: CalendarDate{2024, time.September, 1},
			wantLast:  CalendarDate{2024, time.October, 12},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			grid := NewGrid(tc.year, tc.month, tc.firstDay)

			assert.Equal(t, tc.wantFirst, grid.First())
			assert.Equal(t, tc.wantLast, grid.Last())
		})
	}
}

func TestNewGrid_NormalizesMonth(t *testing.T) {
	grid := NewGrid(2024, 13, time.Sunday)

	assert.Equal(t, 2025, grid.Year)
	assert.Equal(t, time.January, grid.Month)
}

func TestGrid_InMonth(t *testing.T) {
	grid := NewGrid(2024, time.June, time.Sunday)

	assert.False(t, grid.InMonth(grid.First()))
	assert.True(t, grid.InMonth(CalendarDate{2024, time.June, 15}))
	assert.False(t, grid.InMonth(grid.Last()))
}

func TestIsSameDay(t *testing.T) {
	midnight := time.Date(2024, 3, 15, 0, 0, 0, 0, time.Local)
	lateEvening := time.Date(2024, 3, 15, 23, 59, 0, 0, time.Local)
	nextMidnight := time.Date(2024, 3, 16, 0, 0, 0, 0, time.Local)

	assert.True(t, IsSameDay(midnight, lateEvening))
	assert.True(t, IsSameDay(lateEvening, midnight))
	assert.False(t, IsSameDay(lateEvening, nextMidnight))
}

func TestStartAndEndOfDay(t *testing.T) {
	moment := time.Date(2024, 3, 15, 13, 45, 12, 99, time.UTC)

	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), StartOfDay(moment))
	assert.Equal(t, time.Date(2024, 3, 15, 23, 59, 59, 999999999, time.UTC), EndOfDay(moment))
}

func TestCalendarDate_Compare(t *testing.T) {
	day := CalendarDate{2024, time.March, 15}

	assert.Equal(t, 0, day.Compare(CalendarDate{2024, time.March, 15}))
	assert.True(t, day.Before(CalendarDate{2024, time.March, 16}))
	assert.True(t, day.Before(CalendarDate{2024, time.April, 1}))
	assert.True(t, day.After(CalendarDate{2023, time.December, 31}))
	assert.True(t, day.Equal(DateOf(time.Date(2024, 3, 15, 22, 0, 0, 0, time.UTC))))
}

func TestParseDate(t *testing.T) {
	day, err := ParseDate("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, CalendarDate{2024, time.February, 29}, day)
	assert.Equal(t, "2024-02-29", day.String())

	_, err = ParseDate("2024-02-30")
	assert.Error(t, err)
}

func TestNameLookups(t *testing.T) {
	name, err := MonthName(time.January)
	require.NoError(t, err)
	assert.Equal(t, "January", name)

	name, err = MonthName(time.December)
	require.NoError(t, err)
	assert.Equal(t, "December", name)

	name, err = DayName(0)
	require.NoError(t, err)
	assert.Equal(t, "Sunday", name)

	name, err = ShortDayName(6)
	require.NoError(t, err)
	assert.Equal(t, "Sat", name)

	_, err = MonthName(13)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
	_, err = MonthName(0)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
	_, err = DayName(7)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
	_, err = ShortDayName(-1)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestWeekdayHeaders(t *testing.T) {
	assert.Equal(t, []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}, WeekdayHeaders(time.Sunday))
	assert.Equal(t, []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}, WeekdayHeaders(time.Monday))
}
