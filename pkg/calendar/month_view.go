package calendar

import (
	"time"

	"github.com/venuecal/venuecal/pkg/date_grid"
)

type DayCell struct {
	Date    date_grid.CalendarDate
	InMonth bool
	IsToday bool
	Events  []Event
}

// MonthView is a month grid with the events of every cell.
type MonthView struct {
	Year           int
	Month          time.Month
	MonthName      string
	WeekdayHeaders []string
	Weeks          [date_grid.Rows][date_grid.Columns]DayCell
}

func buildMonthView(grid date_grid.Grid, firstDay time.Weekday, events []Event, today date_grid.CalendarDate) (MonthView, error) {
	monthName, err := date_grid.MonthName(grid.Month)
	if err != nil {
		return MonthView{}, err
	}
	view := MonthView{
		Year:           grid.Year,
		Month:          grid.Month,
		MonthName:      monthName,
		WeekdayHeaders: date_grid.WeekdayHeaders(firstDay),
	}
	byDay := AssociateGrid(events, grid)
	for row, week := range grid.Weeks {
		for col, date := range week {
			view.Weeks[row][col] = DayCell{
				Date:    date,
				InMonth: grid.InMonth(date),
				IsToday: date == today,
				Events:  byDay[date],
			}
		}
	}
	return view, nil
}
