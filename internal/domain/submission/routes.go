package submission

import (
	"github.com/go-chi/chi/v5"
)

// Routes returns booking form router
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Create)

	r.Route("/{id}", func(r chi.Router) {
		r.Get("/", h.Get)
		r.Patch("/", h.Update)
		r.Delete("/", h.Delete)

		r.Put("/attachment", h.Attach)
		r.Delete("/attachment", h.RemoveAttachment)

		r.Post("/submit", h.Submit)
		r.Get("/events", h.Events)
	})

	return r
}
