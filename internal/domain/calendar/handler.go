package calendar

import (
	"net/http"
	"strconv"
	"time"

	"github.com/libraryhall/hallbook-api/internal/pkg/errorhandler"
	"github.com/libraryhall/hallbook-api/internal/pkg/response"
)

// Handler handles calendar HTTP requests
type Handler struct {
	service *Service
	now     func() time.Time
}

// NewHandler creates calendar handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service, now: time.Now}
}

// Month handles GET /calendar?year=2025&month=11
// month is zero-based; both default to the current month.
func (h *Handler) Month(w http.ResponseWriter, r *http.Request) {
	now := h.now()

	year := now.Year()
	if raw := r.URL.Query().Get("year"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			response.BadRequest(w, "Invalid year parameter")
			return
		}
		year = v
	}

	month := int(now.Month()) - 1
	if raw := r.URL.Query().Get("month"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			response.BadRequest(w, "Invalid month parameter")
			return
		}
		month = v
	}

	view, err := h.service.Month(r.Context(), year, month, now)
	if err != nil {
		errorhandler.HandleInternal(r.Context(), w, err)
		return
	}

	response.OK(w, view)
}
