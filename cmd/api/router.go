package main

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/libraryhall/hallbook-api/internal/domain/booking"
	"github.com/libraryhall/hallbook-api/internal/domain/calendar"
	"github.com/libraryhall/hallbook-api/internal/domain/shell"
	"github.com/libraryhall/hallbook-api/internal/domain/submission"
	"github.com/libraryhall/hallbook-api/internal/middleware"
	"github.com/libraryhall/hallbook-api/internal/pkg/metrics"
	"github.com/libraryhall/hallbook-api/internal/pkg/response"
)

type routerDeps struct {
	AllowedOrigins []string
	Metrics        *metrics.Metrics
	MediaDir       string // empty when previews are not served from disk
	MediaURL       string

	Shell    *shell.Handler
	Bookings *booking.Handler
	Calendar *calendar.Handler
	Forms    *submission.Handler
}

func newRouter(d routerDeps) chi.Router {
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recover)
	r.Use(middleware.CORSHandler(d.AllowedOrigins))
	r.Use(middleware.Metrics(d.Metrics))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		response.OK(w, map[string]string{
			"status": "ok",
		})
	})

	r.Handle("/metrics", d.Metrics.Handler())

	if d.MediaDir != "" {
		prefix := "/" + strings.Trim(d.MediaURL, "/")
		r.Handle(prefix+"/*", http.StripPrefix(prefix, http.FileServer(http.Dir(d.MediaDir))))
	}

	r.Route("/api/v1", func(r chi.Router) {
		// Form event stream is a websocket; keep it out of the compressed group
		r.Get("/forms/{id}/events", d.Forms.Events)

		r.Group(func(r chi.Router) {
			r.Use(chimw.Compress(5))

			r.Mount("/shell", d.Shell.Routes())
			r.Mount("/bookings", d.Bookings.Routes())
			r.Mount("/calendar", d.Calendar.Routes())
			r.Mount("/forms", d.Forms.Routes())
		})
	})

	return r
}
