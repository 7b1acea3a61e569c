/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

ROUTER: chi
  Chi was chosen for:
  - Lightweight and fast
  - Context-based
  - Middleware support
  - RESTful route patterns

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for frontend

ROUTE GROUPS:
  /api/employees/*     Employee management
  /api/absences/*      Absence intervals
  /api/settings        Shift duration/staffing configuration
  /api/festivities/*   Working-day overrides
  /api/roster/*        Generation, repair, snapshots, statistics
  /api/admin/*         Carry-over recompute

SECURITY NOTE:
  No authentication middleware currently. All endpoints are public.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Employee routes
		r.Route("/employees", func(r chi.Router) {
			r.Get("/", h.ListEmployees)
			r.Post("/", h.CreateEmployee)
			r.Get("/{id}", h.GetEmployee)
			r.Put("/{id}", h.UpdateEmployee)
			r.Delete("/{id}", h.DeleteEmployee)
		})

		// Absence routes
		r.Route("/absences", func(r chi.Router) {
			r.Get("/", h.ListAbsences)
			r.Post("/", h.CreateAbsence)
			r.Delete("/{id}", h.DeleteAbsence)
		})

		// Settings routes
		r.Route("/settings", func(r chi.Router) {
			r.Get("/", h.GetSettings)
			r.Put("/", h.UpdateSettings)
		})

		// Festivity routes
		r.Route("/festivities", func(r chi.Router) {
			r.Get("/", h.ListFestivities)
			r.Post("/", h.SaveFestivity)
		})

		// Roster routes
		r.Route("/roster/{year}/{month}", func(r chi.Router) {
			r.Get("/", h.GetRoster)
			r.Get("/stats", h.GetRosterStats)
			r.Post("/generate", h.GenerateRoster)
			r.Post("/repair", h.RepairRoster)
		})

		// Admin routes
		r.Route("/admin", func(r chi.Router) {
			r.Post("/carryover", h.TriggerCarryOver)
		})
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	return r
}
