package calendar

import (
	"fmt"
	"time"
)

// Weekdays are the grid column headers, Sunday first.
var Weekdays = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// Cell is one slot of the 7-column month grid. Day 0 is padding.
type Cell struct {
	Day int `json:"day"`
}

// IsEmpty reports whether the cell is leading padding
func (c Cell) IsEmpty() bool {
	return c.Day == 0
}

// MonthBounds returns the first day of the month and the number of days in it.
// month is zero-based; values outside 0..11 roll into neighbouring years.
func MonthBounds(year, month int) (first time.Time, daysInMonth int) {
	first = time.Date(year, time.Month(month+1), 1, 0, 0, 0, 0, time.UTC)
	// day 0 of the following month is the last day of this one
	daysInMonth = time.Date(year, time.Month(month+2), 0, 0, 0, 0, 0, time.UTC).Day()
	return first, daysInMonth
}

// BuildMonthGrid returns firstWeekday empty cells followed by 1..daysInMonth.
func BuildMonthGrid(year, month int) []Cell {
	first, days := MonthBounds(year, month)
	lead := int(first.Weekday())

	cells := make([]Cell, lead+days)
	for d := 1; d <= days; d++ {
		cells[lead+d-1] = Cell{Day: d}
	}
	return cells
}

// Normalize folds an out-of-range zero-based month into its year.
func Normalize(year, month int) (int, int) {
	first, _ := MonthBounds(year, month)
	return first.Year(), int(first.Month()) - 1
}

// Navigate moves delta months from (year, month).
func Navigate(year, month, delta int) (int, int) {
	return Normalize(year, month+delta)
}

// FormatDate builds the catalog key for a day of a zero-based month.
func FormatDate(year, month, day int) string {
	y, m := Normalize(year, month)
	return fmt.Sprintf("%04d-%02d-%02d", y, m+1, day)
}
