package shell

// TabType identifies a top-level view of the hall page
type TabType string

const (
	TabBooking  TabType = "booking"
	TabCalendar TabType = "calendar"
)

// Tab is a selectable navigation entry
type Tab struct {
	ID    TabType `json:"id"`
	Label string  `json:"label"`
}

// Tabs returns the navigation entries in display order
func Tabs() []Tab {
	return []Tab{
		{ID: TabBooking, Label: "Book Hall"},
		{ID: TabCalendar, Label: "View Calendar"},
	}
}

// ParseTab maps a query value to a tab. Unknown or empty values select booking.
func ParseTab(s string) TabType {
	switch TabType(s) {
	case TabCalendar:
		return TabCalendar
	default:
		return TabBooking
	}
}
