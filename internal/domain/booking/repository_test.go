package booking

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestStaticRepositoryIsImmutable(t *testing.T) {
	src := DefaultEvents()
	repo := NewStaticRepository(src)

	src[0].Title = "changed by caller"

	first, _ := repo.List(context.Background())
	if first[0].Title != "Tech Talk: AI in Education" {
		t.Fatalf("catalog changed through constructor argument: %q", first[0].Title)
	}

	first[1].Status = StatusRejected
	second, _ := repo.List(context.Background())
	if second[1].Status != StatusApproved {
		t.Fatal("catalog changed through returned slice")
	}
}

const catalogYAML = `
bookings:
  - id: "10"
    title: Poetry Evening
    date: "2026-02-14"
    start_time: "18:00"
    end_time: "20:00"
    organizer: Literature Society
    status: approved
  - id: "11"
    title: Chess Open
    date: "2026-02-01"
    start_time: "09:00"
    end_time: "13:00"
    organizer: Chess Club
    status: pending
`

func TestLoadStaticRepository(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bookings.yaml")
	if err := os.WriteFile(path, []byte(catalogYAML), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	repo, err := LoadStaticRepository(path)
	if err != nil {
		t.Fatalf("LoadStaticRepository: %v", err)
	}

	events, _ := repo.List(context.Background())
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].Title != "Poetry Evening" || events[0].Status != StatusApproved || events[1].StartTime != "09:00" {
		t.Fatalf("unexpected events: %+v", events)
	}
}

func TestParseCatalogRejectsBadEntries(t *testing.T) {
	cases := map[string]string{
		"bad status": `
bookings:
  - {id: "1", title: T, date: "2026-01-01", start_time: "10:00", end_time: "11:00", status: cancelled}
`,
		"bad date": `
bookings:
  - {id: "1", title: T, date: "2026-1-1", start_time: "10:00", end_time: "11:00", status: approved}
`,
		"duplicate id": `
bookings:
  - {id: "1", title: T, date: "2026-01-01", start_time: "10:00", end_time: "11:00", status: approved}
  - {id: "1", title: U, date: "2026-01-02", start_time: "10:00", end_time: "11:00", status: approved}
`,
		"not yaml": "bookings: [",
	}

	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := ParseCatalog([]byte(doc)); !errors.Is(err, ErrInvalidCatalog) {
				t.Fatalf("expected ErrInvalidCatalog, got %v", err)
			}
		})
	}
}

func TestFormatTime(t *testing.T) {
	cases := map[string]string{
		"00:30": "12:30 AM",
		"09:00": "9:00 AM",
		"12:00": "12:00 PM",
		"14:05": "2:05 PM",
		"23:59": "11:59 PM",
		"noon":  "noon",
		"25:00": "25:00",
	}
	for in, want := range cases {
		if got := FormatTime(in); got != want {
			t.Errorf("FormatTime(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestOpenRepositoryFallbacks(t *testing.T) {
	repo, err := OpenRepository(nil, "")
	if err != nil {
		t.Fatalf("OpenRepository: %v", err)
	}
	events, _ := repo.List(context.Background())
	if len(events) != len(DefaultEvents()) {
		t.Fatalf("built-in catalog has %d events", len(events))
	}

	if _, err := OpenRepository(nil, filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("a missing catalog file must be an error")
	}
}
