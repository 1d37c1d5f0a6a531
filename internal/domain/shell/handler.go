package shell

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/libraryhall/hallbook-api/internal/pkg/response"
)

// Response is the page chrome: title, tabs and the selected tab
type Response struct {
	HallName  string  `json:"hall_name"`
	Tabs      []Tab   `json:"tabs"`
	ActiveTab TabType `json:"active_tab"`
}

// Handler serves the shell
type Handler struct {
	hallName string
}

// NewHandler creates shell handler
func NewHandler(hallName string) *Handler {
	return &Handler{hallName: hallName}
}

// Routes returns shell router
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.Get)
	return r
}

// Get handles GET /shell?tab=calendar
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	response.OK(w, Response{
		HallName:  h.hallName,
		Tabs:      Tabs(),
		ActiveTab: ParseTab(r.URL.Query().Get("tab")),
	})
}
