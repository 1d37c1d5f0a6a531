package booking

import (
	"github.com/go-chi/chi/v5"
)

// Routes returns booking catalog router
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.List)
	r.Get("/upcoming", h.Upcoming)
	r.Get("/export", h.Export)

	return r
}
