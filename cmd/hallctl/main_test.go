package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/libraryhall/hallbook-api/internal/domain/booking"
)

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()

	open := func(ctx context.Context) (booking.Repository, func(), error) {
		return booking.NewStaticRepository(booking.DefaultEvents()), func() {}, nil
	}
	now := func() time.Time { return time.Date(2025, time.December, 18, 12, 0, 0, 0, time.UTC) }

	cmd := newRootCmd(open, now)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestBookingsForDate(t *testing.T) {
	out, err := runCmd(t, "bookings", "--date", "2025-12-25")
	if err != nil {
		t.Fatalf("bookings: %v", err)
	}
	if !strings.Contains(out, "Career Fair 2025") || !strings.Contains(out, "pending") {
		t.Fatalf("output:\n%s", out)
	}

	out, _ = runCmd(t, "bookings", "--date", "2025-12-19")
	if !strings.Contains(out, "no bookings") {
		t.Fatalf("empty date output:\n%s", out)
	}
}

func TestUpcomingSkipsPending(t *testing.T) {
	out, err := runCmd(t, "upcoming")
	if err != nil {
		t.Fatalf("upcoming: %v", err)
	}
	if strings.Contains(out, "pending") {
		t.Fatalf("pending booking listed:\n%s", out)
	}
	if !strings.Contains(out, "2:00 PM") {
		t.Fatalf("times should be 12-hour:\n%s", out)
	}
}

func TestCalendarMarksTodayAndBookings(t *testing.T) {
	out, err := runCmd(t, "calendar")
	if err != nil {
		t.Fatalf("calendar: %v", err)
	}
	if !strings.HasPrefix(out, "December 2025\n") {
		t.Fatalf("header:\n%s", out)
	}
	if !strings.Contains(out, "[18]*") {
		t.Fatalf("today with a booking should read [18]*:\n%s", out)
	}
	if !strings.Contains(out, "20*") || strings.Contains(out, "19*") {
		t.Fatalf("booked days wrong:\n%s", out)
	}
}

func TestExportWritesWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dec.xlsx")
	if _, err := runCmd(t, "export", "--year", "2025", "--month", "12", "-o", path); err != nil {
		t.Fatalf("export: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil || info.Size() == 0 {
		t.Fatalf("workbook not written: %v", err)
	}
}

type brokenCatalog struct{}

func (brokenCatalog) List(context.Context) ([]booking.Event, error) {
	return nil, errors.New("catalog unavailable")
}

func TestExportFailureLeavesNoFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dec.xlsx")

	err := exportFile(context.Background(), booking.NewService(brokenCatalog{}), path, 2025, 11)
	if err == nil {
		t.Fatal("expected export error")
	}
	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Fatalf("partial workbook left on disk: %v", statErr)
	}
}

func TestCheckRejectsMissingFile(t *testing.T) {
	if _, err := runCmd(t, "check", filepath.Join(t.TempDir(), "none.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
	if _, err := runCmd(t, "check"); err == nil {
		t.Fatal("check needs exactly one argument")
	}
}
