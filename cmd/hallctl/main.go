package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/libraryhall/hallbook-api/internal/config"
	"github.com/libraryhall/hallbook-api/internal/domain/booking"
	"github.com/libraryhall/hallbook-api/internal/domain/calendar"
	"github.com/libraryhall/hallbook-api/internal/pkg/database"
	"github.com/libraryhall/hallbook-api/internal/pkg/logger"
)

// openCatalog resolves the booking catalog the same way the API does
type openCatalog func(ctx context.Context) (booking.Repository, func(), error)

func main() {
	cfg := config.Load()
	_ = logger.Init(logger.Config{Level: "error", Environment: "cli"})

	open := func(ctx context.Context) (booking.Repository, func(), error) {
		db, err := database.NewPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		repo, err := booking.OpenRepository(db, cfg.BookingsFile)
		if err != nil {
			database.ClosePostgres(db)
			return nil, nil, err
		}
		return repo, func() { database.ClosePostgres(db) }, nil
	}

	if err := newRootCmd(open, time.Now).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd(open openCatalog, now func() time.Time) *cobra.Command {
	root := &cobra.Command{
		Use:           "hallctl",
		Short:         "Inspect and export the library hall booking catalog",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	withService := func(cmd *cobra.Command, fn func(s *booking.Service) error) error {
		repo, closeFn, err := open(cmd.Context())
		if err != nil {
			return err
		}
		defer closeFn()
		return fn(booking.NewService(repo))
	}

	var date string
	bookingsCmd := &cobra.Command{
		Use:   "bookings",
		Short: "List bookings, optionally for one date (YYYY-MM-DD)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd, func(s *booking.Service) error {
				var (
					events []booking.Event
					err    error
				)
				if cmd.Flags().Changed("date") {
					events, err = s.ForDate(cmd.Context(), date)
				} else {
					events, err = s.All(cmd.Context())
				}
				if err != nil {
					return err
				}
				printEvents(cmd.OutOrStdout(), events)
				return nil
			})
		},
	}
	bookingsCmd.Flags().StringVar(&date, "date", "", "Only bookings on this date")

	upcomingCmd := &cobra.Command{
		Use:   "upcoming",
		Short: "List approved bookings by date",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd, func(s *booking.Service) error {
				events, err := s.Upcoming(cmd.Context())
				if err != nil {
					return err
				}
				printEvents(cmd.OutOrStdout(), events)
				return nil
			})
		},
	}

	var year, month int
	monthFlags := func(cmd *cobra.Command) {
		cmd.Flags().IntVar(&year, "year", 0, "Year (default: current)")
		cmd.Flags().IntVar(&month, "month", 0, "Month 1-12 (default: current)")
	}
	// resolveMonth turns the one-based flag into the zero-based month used internally
	resolveMonth := func(cmd *cobra.Command) (int, int) {
		t := now()
		y, m := t.Year(), int(t.Month())-1
		if cmd.Flags().Changed("year") {
			y = year
		}
		if cmd.Flags().Changed("month") {
			m = month - 1
		}
		return calendar.Normalize(y, m)
	}

	calendarCmd := &cobra.Command{
		Use:   "calendar",
		Short: "Print a month grid with booked days marked",
		RunE: func(cmd *cobra.Command, args []string) error {
			y, m := resolveMonth(cmd)
			return withService(cmd, func(s *booking.Service) error {
				view, err := calendar.NewService(s).Month(cmd.Context(), y, m, now())
				if err != nil {
					return err
				}
				printMonth(cmd.OutOrStdout(), view)
				return nil
			})
		},
	}
	monthFlags(calendarCmd)

	var out string
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Write a month's bookings to an .xlsx file",
		RunE: func(cmd *cobra.Command, args []string) error {
			y, m := resolveMonth(cmd)
			if out == "" {
				out = fmt.Sprintf("hall-bookings-%04d-%02d.xlsx", y, m+1)
			}
			return withService(cmd, func(s *booking.Service) error {
				if err := exportFile(cmd.Context(), s, out, y, m); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", out)
				return nil
			})
		},
	}
	monthFlags(exportCmd)
	exportCmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default hall-bookings-YYYY-MM.xlsx)")

	checkCmd := &cobra.Command{
		Use:   "check FILE",
		Short: "Validate a YAML booking catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := booking.LoadStaticRepository(args[0])
			if err != nil {
				return err
			}
			events, _ := repo.List(cmd.Context())
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d bookings OK\n", args[0], len(events))
			return nil
		},
	}

	root.AddCommand(bookingsCmd, upcomingCmd, calendarCmd, exportCmd, checkCmd)
	return root
}

func printEvents(w io.Writer, events []booking.Event) {
	if len(events) == 0 {
		fmt.Fprintln(w, "no bookings")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tTIME\tTITLE\tORGANIZER\tSTATUS")
	for _, e := range events {
		fmt.Fprintf(tw, "%s\t%s - %s\t%s\t%s\t%s\n",
			e.Date, booking.FormatTime(e.StartTime), booking.FormatTime(e.EndTime), e.Title, e.Organizer, e.Status)
	}
	tw.Flush()
}

// printMonth renders the grid 7 columns wide; booked days carry a '*', today is bracketed
func printMonth(w io.Writer, view *calendar.MonthView) {
	fmt.Fprintf(w, "%s\n", view.MonthName)
	for _, d := range view.Weekdays {
		fmt.Fprintf(w, "%5s", d)
	}
	fmt.Fprintln(w)

	var line strings.Builder
	for i, c := range view.Cells {
		cell := ""
		if c.Day != 0 {
			cell = fmt.Sprintf("%d", c.Day)
			if c.IsToday {
				cell = "[" + cell + "]"
			}
			if len(c.Bookings) > 0 {
				cell += "*"
			}
		}
		fmt.Fprintf(&line, "%5s", cell)
		if i%7 == 6 {
			fmt.Fprintln(w, strings.TrimRight(line.String(), " "))
			line.Reset()
		}
	}
	if line.Len() > 0 {
		fmt.Fprintln(w, strings.TrimRight(line.String(), " "))
	}
}

// exportFile writes the workbook to path; a failed export leaves no file behind
func exportFile(ctx context.Context, s *booking.Service, path string, year, month int) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			os.Remove(path)
		}
	}()

	return s.ExportMonth(ctx, f, year, month)
}
