package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/sumanachary99/dentalclinic/internal/auth"
	"github.com/sumanachary99/dentalclinic/internal/booking"
	"github.com/sumanachary99/dentalclinic/internal/clinic"
	"github.com/sumanachary99/dentalclinic/internal/dashboard"
	httpmiddleware "github.com/sumanachary99/dentalclinic/internal/http/middleware"
	"github.com/sumanachary99/dentalclinic/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger             *logging.Logger
	BookingHandler     *booking.Handler
	DashboardHandler   *dashboard.Handler
	ClinicHandler      *clinic.Handler
	Sessions           *auth.Sessions
	MetricsHandler     http.Handler
	CORSAllowedOrigins []string
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	// Public endpoints
	r.Group(func(public chi.Router) {
		public.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"status":"ok"}`))
		})
		if cfg.MetricsHandler != nil {
			public.Handle("/metrics", cfg.MetricsHandler)
		}
		if cfg.ClinicHandler != nil {
			public.Route("/clinic", func(r chi.Router) {
				r.Get("/profile", cfg.ClinicHandler.GetProfile)
				r.Get("/services", cfg.ClinicHandler.GetServices)
				r.Get("/faqs", cfg.ClinicHandler.GetFAQs)
			})
		}
		if cfg.BookingHandler != nil {
			public.Mount("/booking", cfg.BookingHandler.Routes())
		}
	})

	// Dashboard routes. Login is open; everything else needs a session token.
	if cfg.DashboardHandler != nil && cfg.Sessions != nil {
		r.Route("/dashboard", func(dash chi.Router) {
			dash.Post("/login", cfg.DashboardHandler.Login)
			dash.Group(func(authed chi.Router) {
				authed.Use(httpmiddleware.DashboardSession(cfg.Sessions))
				authed.Get("/appointments", cfg.DashboardHandler.List)
				authed.Patch("/appointments/{id}/status", cfg.DashboardHandler.SetStatus)
				authed.Post("/appointments/{id}/followup", cfg.DashboardHandler.SendFollowUp)
				authed.Get("/stats", cfg.DashboardHandler.Stats)
			})
		})
	}

	return r
}
