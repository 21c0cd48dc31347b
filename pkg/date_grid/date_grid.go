package date_grid

import (
	"errors"
	"fmt"
	"time"
)

const (
	Rows    = 6
	Columns = 7
	Cells   = Rows * Columns
)

var ErrIndexOutOfRange = errors.New("index out of range")

var monthNames = [12]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

var dayNames = [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

var shortDayNames = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// CalendarDate is a day on the wall-clock calendar. It carries no time-of-day and no zone, so two
// values are equal exactly when they name the same day.
type CalendarDate struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf returns the calendar day of t as seen in t's own location.
func DateOf(t time.Time) CalendarDate {
	year, month, day := t.Date()
	return CalendarDate{Year: year, Month: month, Day: day}
}

// NewDate normalizes out-of-range components the way time.Date does (e.g. April 31 is May 1).
func NewDate(year int, month time.Month, day int) CalendarDate {
	return DateOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// ParseDate parses "YYYY-MM-DD".
func ParseDate(value string) (CalendarDate, error) {
	t, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return CalendarDate{}, fmt.Errorf("invalid date %q: %w", value, err)
	}
	return DateOf(t), nil
}

// In returns midnight of the day in loc.
func (d CalendarDate) In(loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

func (d CalendarDate) AddDays(n int) CalendarDate {
	return DateOf(d.In(time.UTC).AddDate(0, 0, n))
}

func (d CalendarDate) Weekday() time.Weekday {
	return d.In(time.UTC).Weekday()
}

// Compare returns -1, 0 or +1 depending on whether d is before, the same day as, or after other.
func (d CalendarDate) Compare(other CalendarDate) int {
	switch {
	case d.Year != other.Year:
		return compareInts(d.Year, other.Year)
	case d.Month != other.Month:
		return compareInts(int(d.Month), int(other.Month))
	default:
		return compareInts(d.Day, other.Day)
	}
}

func (d CalendarDate) Equal(other CalendarDate) bool {
	return d == other
}

func (d CalendarDate) Before(other CalendarDate) bool {
	return d.Compare(other) < 0
}

func (d CalendarDate) After(other CalendarDate) bool {
	return d.Compare(other) > 0
}

// String returns the ISO 8601 date, e.g. "2024-03-15".
func (d CalendarDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

func compareInts(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// IsSameDay reports whether a and b fall on the same calendar day, ignoring time-of-day.
func IsSameDay(a, b time.Time) bool {
	return DateOf(a) == DateOf(b)
}

// StartOfDay truncates t to midnight in t's location.
func StartOfDay(t time.Time) time.Time {
	return DateOf(t).In(t.Location())
}

// EndOfDay returns the last nanosecond of t's day.
func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// Grid is a month view: six weeks of seven days starting on the configured first day of week.
type Grid struct {
	Year  int
	Month time.Month
	Weeks [Rows][Columns]CalendarDate
}

// NewGrid builds the 42-day grid covering the given month. The grid starts on the most recent
// firstDay on or before the 1st of the month, so a month whose 1st already is firstDay gets no
// leading days from the previous month.
func NewGrid(year int, month time.Month, firstDay time.Weekday) Grid {
	if firstDay < time.Sunday || firstDay > time.Saturday {
		firstDay = time.Sunday
	}
	first := NewDate(year, month, 1)

	delta := (int(first.Weekday()) - int(firstDay) + 7) % 7
	anchor := first.AddDays(-delta)

	grid := Grid{Year: first.Year, Month: first.Month}
	for i := 0; i < Cells; i++ {
		grid.Weeks[i/Columns][i%Columns] = anchor.AddDays(i)
	}
	return grid
}

func (g Grid) First() CalendarDate {
	return g.Weeks[0][0]
}

func (g Grid) Last() CalendarDate {
	return g.Weeks[Rows-1][Columns-1]
}

// Cells returns the grid in reading order.
func (g Grid) Cells() []CalendarDate {
	cells := make([]CalendarDate, 0, Cells)
	for _, week := range g.Weeks {
		cells = append(cells, week[:]...)
	}
	return cells
}

func (g Grid) Contains(d CalendarDate) bool {
	return !d.Before(g.First()) && !d.After(g.Last())
}

// InMonth reports whether the cell belongs to the grid's month rather than a neighbouring one.
func (g Grid) InMonth(d CalendarDate) bool {
	return d.Year == g.Year && d.Month == g.Month
}

// MonthName uses the same 1-based month as NewGrid.
func MonthName(month time.Month) (string, error) {
	if month < time.January || month > time.December {
		return "", fmt.Errorf("month %d: %w", month, ErrIndexOutOfRange)
	}
	return monthNames[month-1], nil
}

// DayName looks up a weekday index (0 = Sunday).
func DayName(weekday int) (string, error) {
	if weekday < 0 || weekday >= len(dayNames) {
		return "", fmt.Errorf("weekday %d: %w", weekday, ErrIndexOutOfRange)
	}
	return dayNames[weekday], nil
}

func ShortDayName(weekday int) (string, error) {
	if weekday < 0 || weekday >= len(shortDayNames) {
		return "", fmt.Errorf("weekday %d: %w", weekday, ErrIndexOutOfRange)
	}
	return shortDayNames[weekday], nil
}

// WeekdayHeaders returns the short day names in grid column order.
func WeekdayHeaders(firstDay time.Weekday) []string {
	if firstDay < time.Sunday || firstDay > time.Saturday {
		firstDay = time.Sunday
	}
	headers := make([]string, 0, Columns)
	for i := 0; i < Columns; i++ {
		headers = append(headers, shortDayNames[(int(firstDay)+i)%Columns])
	}
	return headers
}
