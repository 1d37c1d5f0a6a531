package booking

import "time"

// DateLayout is the catalog date format (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// Status represents booking approval status
type Status string

const (
	StatusApproved Status = "approved"
	StatusPending  Status = "pending"
	StatusRejected Status = "rejected"
)

// IsValid checks if status is valid
func (s Status) IsValid() bool {
	switch s {
	case StatusApproved, StatusPending, StatusRejected:
		return true
	}
	return false
}

// Color returns the badge color used for the status.
// Nothing in the catalog is rejected yet; the branch is kept for the admin review path.
func (s Status) Color() string {
	switch s {
	case StatusApproved:
		return "#32CD32"
	case StatusPending:
		return "#E7AF36"
	case StatusRejected:
		return "#CF1020"
	}
	return ""
}

// Event is one reservation of the hall
type Event struct {
	ID        string `json:"id" yaml:"id" db:"id"`
	Title     string `json:"title" yaml:"title" db:"title"`
	Date      string `json:"date" yaml:"date" db:"date"`
	StartTime string `json:"start_time" yaml:"start_time" db:"start_time"`
	EndTime   string `json:"end_time" yaml:"end_time" db:"end_time"`
	Organizer string `json:"organizer" yaml:"organizer" db:"organizer"`
	Status    Status `json:"status" yaml:"status" db:"status"`
}

// ParsedDate parses Date; ok is false for malformed dates.
func (e Event) ParsedDate() (t time.Time, ok bool) {
	t, err := time.Parse(DateLayout, e.Date)
	return t, err == nil
}

// EventResponse is Event plus display fields
type EventResponse struct {
	Event
	StatusColor  string `json:"status_color"`
	StartDisplay string `json:"start_display"`
	EndDisplay   string `json:"end_display"`
}

// EventResponseFromEntity adds the display fields
func EventResponseFromEntity(e Event) EventResponse {
	return EventResponse{
		Event:        e,
		StatusColor:  e.Status.Color(),
		StartDisplay: FormatTime(e.StartTime),
		EndDisplay:   FormatTime(e.EndTime),
	}
}

// EventResponses maps a slice; never returns nil so JSON encodes [].
func EventResponses(events []Event) []EventResponse {
	out := make([]EventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, EventResponseFromEntity(e))
	}
	return out
}
