package booking

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/libraryhall/hallbook-api/internal/pkg/errorhandler"
	"github.com/libraryhall/hallbook-api/internal/pkg/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Handler handles booking catalog HTTP requests
type Handler struct {
	service *Service
	now     func() time.Time
}

// NewHandler creates booking handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service, now: time.Now}
}

// List handles GET /bookings?date=YYYY-MM-DD
// Without a date the whole catalog is returned.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	var (
		events []Event
		err    error
	)

	if date, ok := r.URL.Query()["date"]; ok {
		events, err = h.service.ForDate(r.Context(), date[0])
	} else {
		events, err = h.service.All(r.Context())
	}
	if err != nil {
		errorhandler.HandleInternal(r.Context(), w, err)
		return
	}

	response.OK(w, EventResponses(events))
}

// Upcoming handles GET /bookings/upcoming
func (h *Handler) Upcoming(w http.ResponseWriter, r *http.Request) {
	events, err := h.service.Upcoming(r.Context())
	if err != nil {
		errorhandler.HandleInternal(r.Context(), w, err)
		return
	}

	response.OK(w, EventResponses(events))
}

// Export handles GET /bookings/export?year=&month= (month zero-based)
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	now := h.now()
	year, err := intParam(r, "year", now.Year())
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}
	month, err := intParam(r, "month", int(now.Month())-1)
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	// Buffer so a failure can still produce a JSON error
	var buf bytes.Buffer
	if err := h.service.ExportMonth(r.Context(), &buf, year, month); err != nil {
		errorhandler.HandleInternal(r.Context(), w, err)
		return
	}

	first := time.Date(year, time.Month(month+1), 1, 0, 0, 0, 0, time.UTC)
	response.Download(w, fmt.Sprintf("hall-bookings-%s.xlsx", first.Format("2006-01")), xlsxContentType, &buf)
}

func intParam(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("Invalid %s parameter", name)
	}
	return v, nil
}
