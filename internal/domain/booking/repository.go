package booking

import (
	"context"
	"fmt"
	"os"

	"github.com/libraryhall/hallbook-api/internal/pkg/validator"
	"gopkg.in/yaml.v3"
)

// Repository is the read-only source of the booking catalog.
// There is no write path: the catalog is fixed for the life of the process.
type Repository interface {
	List(ctx context.Context) ([]Event, error)
}

// StaticRepository serves a catalog held in memory
type StaticRepository struct {
	events []Event
}

// NewStaticRepository copies events so later changes to the argument are not visible.
func NewStaticRepository(events []Event) *StaticRepository {
	return &StaticRepository{events: append([]Event(nil), events...)}
}

// List returns a copy of the catalog
func (r *StaticRepository) List(ctx context.Context) ([]Event, error) {
	return append([]Event(nil), r.events...), nil
}

// DefaultEvents is the built-in catalog shown when no other source is configured.
func DefaultEvents() []Event {
	return []Event{
		{ID: "1", Title: "Tech Talk: AI in Education", Date: "2025-12-18", StartTime: "10:00", EndTime: "12:00", Organizer: "Computer Science Club", Status: StatusApproved},
		{ID: "2", Title: "Literary Workshop", Date: "2025-12-20", StartTime: "14:00", EndTime: "16:00", Organizer: "English Department", Status: StatusApproved},
		{ID: "3", Title: "Robotics Exhibition", Date: "2025-12-22", StartTime: "09:00", EndTime: "17:00", Organizer: "Robotics Club", Status: StatusApproved},
		{ID: "4", Title: "Career Fair 2025", Date: "2025-12-25", StartTime: "10:00", EndTime: "15:00", Organizer: "Placement Cell", Status: StatusPending},
		{ID: "5", Title: "Music Concert", Date: "2025-12-28", StartTime: "18:00", EndTime: "21:00", Organizer: "Music Society", Status: StatusApproved},
		{ID: "6", Title: "Hackathon Kickoff", Date: "2025-12-30", StartTime: "09:00", EndTime: "11:00", Organizer: "LOCUS Team", Status: StatusApproved},
	}
}

// catalogFile is the YAML layout of BOOKINGS_FILE
type catalogFile struct {
	Bookings []catalogEntry `yaml:"bookings"`
}

type catalogEntry struct {
	ID        string `yaml:"id" validate:"required"`
	Title     string `yaml:"title" validate:"required"`
	Date      string `yaml:"date" validate:"required,isodate"`
	StartTime string `yaml:"start_time" validate:"required,hhmm"`
	EndTime   string `yaml:"end_time" validate:"required,hhmm"`
	Organizer string `yaml:"organizer"`
	Status    string `yaml:"status" validate:"required,booking_status"`
}

// LoadStaticRepository reads a YAML catalog. Every entry is checked once at load.
func LoadStaticRepository(path string) (*StaticRepository, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return ParseCatalog(data)
}

// ParseCatalog decodes a YAML catalog document
func ParseCatalog(data []byte) (*StaticRepository, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}

	seen := make(map[string]bool, len(file.Bookings))
	events := make([]Event, 0, len(file.Bookings))
	for i, entry := range file.Bookings {
		if errs := validator.Validate(&entry); errs != nil {
			return nil, fmt.Errorf("%w: entry %d: %v", ErrInvalidCatalog, i, errs)
		}
		if seen[entry.ID] {
			return nil, fmt.Errorf("%w: duplicate id %q", ErrInvalidCatalog, entry.ID)
		}
		seen[entry.ID] = true

		events = append(events, Event{
			ID:        entry.ID,
			Title:     entry.Title,
			Date:      entry.Date,
			StartTime: entry.StartTime,
			EndTime:   entry.EndTime,
			Organizer: entry.Organizer,
			Status:    Status(entry.Status),
		})
	}

	return &StaticRepository{events: events}, nil
}
