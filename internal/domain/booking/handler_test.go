package booking

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"
)

type listBody struct {
	Success bool            `json:"success"`
	Data    []EventResponse `json:"data"`
}

func newTestHandler() *Handler {
	h := NewHandler(NewService(NewStaticRepository(DefaultEvents())))
	h.now = func() time.Time { return time.Date(2025, time.December, 10, 12, 0, 0, 0, time.UTC) }
	return h
}

func get(t *testing.T, h *Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	h.Routes().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, target, nil))
	return rr
}

func decodeList(t *testing.T, rr *httptest.ResponseRecorder) listBody {
	t.Helper()
	var body listBody
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return body
}

func TestListByDate(t *testing.T) {
	rr := get(t, newTestHandler(), "/?date=2025-12-25")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}

	body := decodeList(t, rr)
	if len(body.Data) != 1 {
		t.Fatalf("expected one booking, got %d", len(body.Data))
	}
	got := body.Data[0]
	if got.Title != "Career Fair 2025" || got.Status != StatusPending || got.StatusColor != "#E7AF36" {
		t.Fatalf("unexpected booking: %+v", got)
	}
	if got.StartDisplay != "10:00 AM" || got.EndDisplay != "3:00 PM" {
		t.Fatalf("unexpected display times: %q - %q", got.StartDisplay, got.EndDisplay)
	}
}

func TestListEmptyDateEncodesEmptyArray(t *testing.T) {
	rr := get(t, newTestHandler(), "/?date=2024-01-01")
	if !strings.Contains(rr.Body.String(), `"data":[]`) {
		t.Fatalf("expected empty array, got %s", rr.Body.String())
	}
}

func TestListWithoutDateReturnsCatalog(t *testing.T) {
	body := decodeList(t, get(t, newTestHandler(), "/"))
	if len(body.Data) != len(DefaultEvents()) {
		t.Fatalf("expected full catalog, got %d", len(body.Data))
	}
}

func TestUpcomingRoute(t *testing.T) {
	body := decodeList(t, get(t, newTestHandler(), "/upcoming"))
	if len(body.Data) != 5 {
		t.Fatalf("expected 5 upcoming, got %d", len(body.Data))
	}
	if body.Data[0].ID != "1" || body.Data[4].ID != "6" {
		t.Fatalf("unexpected order: first %s last %s", body.Data[0].ID, body.Data[4].ID)
	}
}

func TestExportWorkbook(t *testing.T) {
	rr := get(t, newTestHandler(), "/export")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", rr.Code, rr.Body.String())
	}
	if ct := rr.Header().Get("Content-Type"); ct != xlsxContentType {
		t.Fatalf("content type = %q", ct)
	}
	if cd := rr.Header().Get("Content-Disposition"); !strings.Contains(cd, "hall-bookings-2025-12.xlsx") {
		t.Fatalf("content disposition = %q", cd)
	}

	f, err := excelize.OpenReader(bytes.NewReader(rr.Body.Bytes()))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(exportSheet)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	// title + header + six December bookings
	if len(rows) != 8 {
		t.Fatalf("expected 8 rows, got %d", len(rows))
	}
	if rows[2][3] != "Tech Talk: AI in Education" || rows[2][1] != "10:00 AM" {
		t.Fatalf("unexpected first data row: %v", rows[2])
	}
}

func TestExportRejectsBadParams(t *testing.T) {
	rr := get(t, newTestHandler(), "/export?year=abc")
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
}

func TestExportStylesHeaderRow(t *testing.T) {
	rr := get(t, newTestHandler(), "/export")
	f, err := excelize.OpenReader(bytes.NewReader(rr.Body.Bytes()))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	for _, cell := range []string{"A2", "F2"} {
		if style, _ := f.GetCellStyle(exportSheet, cell); style == 0 {
			t.Errorf("header cell %s has no style", cell)
		}
	}
	if w, _ := f.GetColWidth(exportSheet, "D"); w != 32 {
		t.Fatalf("column D width = %v", w)
	}
}
