package calendar

import (
	"github.com/go-chi/chi/v5"
)

// Routes returns calendar router
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.Month)
	return r
}
