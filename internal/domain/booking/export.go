package booking

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"
)

const exportSheet = "Bookings"

var exportHeaders = []string{"Date", "Start", "End", "Title", "Organizer", "Status"}

// ExportMonth writes the month's bookings as an .xlsx workbook to w.
// month is zero-based.
func (s *Service) ExportMonth(ctx context.Context, w io.Writer, year, month int) error {
	events, err := s.InMonth(ctx, year, month)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	first := time.Date(year, time.Month(month+1), 1, 0, 0, 0, 0, time.UTC)
	if err := f.SetCellValue(exportSheet, "A1", fmt.Sprintf("Library Hall bookings: %s", first.Format("January 2006"))); err != nil {
		return fmt.Errorf("write title: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	header := make([]interface{}, len(exportHeaders))
	for i, h := range exportHeaders {
		header[i] = h
	}
	if err := setRow(f, exportSheet, 2, header, headerStyle); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	statusStyles := make(map[Status]int)
	for _, st := range []Status{StatusApproved, StatusPending, StatusRejected} {
		id, err := f.NewStyle(&excelize.Style{
			Font: &excelize.Font{Bold: true, Color: st.Color()},
		})
		if err != nil {
			return fmt.Errorf("create status style: %w", err)
		}
		statusStyles[st] = id
	}

	for i, e := range events {
		row := i + 3
		values := []interface{}{e.Date, FormatTime(e.StartTime), FormatTime(e.EndTime), e.Title, e.Organizer, string(e.Status)}
		if err := setRow(f, exportSheet, row, values, 0); err != nil {
			return fmt.Errorf("write booking %s: %w", e.ID, err)
		}
		if style, ok := statusStyles[e.Status]; ok {
			cell, _ := excelize.CoordinatesToCellName(len(values), row)
			if err := f.SetCellStyle(exportSheet, cell, cell, style); err != nil {
				return fmt.Errorf("style booking %s: %w", e.ID, err)
			}
		}
	}

	if err := f.SetColWidth(exportSheet, "A", "C", 12); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}
	if err := f.SetColWidth(exportSheet, "D", "E", 32); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// setRow writes values from column A on row; a non-zero style is applied to every written cell
func setRow(f *excelize.File, sheet string, row int, values []interface{}, style int) error {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return err
		}
		if style != 0 {
			if err := f.SetCellStyle(sheet, cell, cell, style); err != nil {
				return err
			}
		}
	}
	return nil
}
