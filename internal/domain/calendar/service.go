package calendar

import (
	"context"
	"fmt"
	"time"

	"github.com/libraryhall/hallbook-api/internal/domain/booking"
)

// BookingSource provides the bookings of one month (zero-based)
type BookingSource interface {
	InMonth(ctx context.Context, year, month int) ([]booking.Event, error)
}

// MonthRef points at a month; Month is zero-based
type MonthRef struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

// DayCell is a grid cell with the day's bookings attached
type DayCell struct {
	Day      int                     `json:"day"`
	Date     string                  `json:"date,omitempty"`
	IsToday  bool                    `json:"is_today,omitempty"`
	Bookings []booking.EventResponse `json:"bookings,omitempty"`
}

// MonthView is everything needed to render one calendar page
type MonthView struct {
	MonthRef
	MonthName string    `json:"month_name"`
	Weekdays  []string  `json:"weekdays"`
	Cells     []DayCell `json:"cells"`
	Prev      MonthRef  `json:"prev"`
	Next      MonthRef  `json:"next"`
	Today     MonthRef  `json:"today"`
}

// Service assembles month views
type Service struct {
	bookings BookingSource
}

// NewService creates calendar service
func NewService(bookings BookingSource) *Service {
	return &Service{bookings: bookings}
}

// Month builds the view for (year, month). now decides the today marker.
func (s *Service) Month(ctx context.Context, year, month int, now time.Time) (*MonthView, error) {
	year, month = Normalize(year, month)

	events, err := s.bookings.InMonth(ctx, year, month)
	if err != nil {
		return nil, fmt.Errorf("load month bookings: %w", err)
	}

	byDate := make(map[string][]booking.EventResponse)
	for _, e := range events {
		byDate[e.Date] = append(byDate[e.Date], booking.EventResponseFromEntity(e))
	}

	todayKey := now.Format(booking.DateLayout)

	grid := BuildMonthGrid(year, month)
	cells := make([]DayCell, len(grid))
	for i, c := range grid {
		if c.IsEmpty() {
			continue
		}
		date := FormatDate(year, month, c.Day)
		cells[i] = DayCell{
			Day:      c.Day,
			Date:     date,
			IsToday:  date == todayKey,
			Bookings: byDate[date],
		}
	}

	first, _ := MonthBounds(year, month)
	prevY, prevM := Navigate(year, month, -1)
	nextY, nextM := Navigate(year, month, 1)

	return &MonthView{
		MonthRef:  MonthRef{Year: year, Month: month},
		MonthName: first.Format("January 2006"),
		Weekdays:  Weekdays,
		Cells:     cells,
		Prev:      MonthRef{Year: prevY, Month: prevM},
		Next:      MonthRef{Year: nextY, Month: nextM},
		Today:     MonthRef{Year: now.Year(), Month: int(now.Month()) - 1},
	}, nil
}
