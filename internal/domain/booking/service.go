package booking

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"
)

// Service answers catalog queries
type Service struct {
	repo Repository
}

// NewService creates booking service
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// All returns the full catalog
func (s *Service) All(ctx context.Context) ([]Event, error) {
	return s.repo.List(ctx)
}

// ForDate returns every booking whose date equals date, whatever its status.
// The comparison is on the raw text, so callers must zero-pad month and day.
func (s *Service) ForDate(ctx context.Context, date string) ([]Event, error) {
	events, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	matched := make([]Event, 0)
	for _, e := range events {
		if e.Date == date {
			matched = append(matched, e)
		}
	}
	return matched, nil
}

// Upcoming returns approved bookings ordered by date.
// Same-date bookings keep catalog order; malformed dates go last.
func (s *Service) Upcoming(ctx context.Context) ([]Event, error) {
	events, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	approved := make([]Event, 0, len(events))
	for _, e := range events {
		if e.Status == StatusApproved {
			approved = append(approved, e)
		}
	}

	SortByDate(approved)
	return approved, nil
}

// InMonth returns the bookings dated inside the given month.
// month is zero-based and normalized like time.Date (-1 is December of the previous year).
func (s *Service) InMonth(ctx context.Context, year, month int) ([]Event, error) {
	events, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	first := time.Date(year, time.Month(month+1), 1, 0, 0, 0, 0, time.UTC)
	prefix := first.Format("2006-01-")

	matched := make([]Event, 0)
	for _, e := range events {
		if strings.HasPrefix(e.Date, prefix) {
			matched = append(matched, e)
		}
	}
	SortByDate(matched)
	return matched, nil
}

// SortByDate stable-sorts events ascending by parsed date.
func SortByDate(events []Event) {
	sort.SliceStable(events, func(i, j int) bool {
		ti, okI := events[i].ParsedDate()
		tj, okJ := events[j].ParsedDate()
		switch {
		case okI && okJ:
			return ti.Before(tj)
		case okI != okJ:
			return okI
		default:
			return false
		}
	})
}
