/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route
  definitions. This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for the frontend

ROUTE GROUPS:
  /api/requests/*     Submission, lookup, decisions, withdrawal entry
  /api/withdrawals/*  Withdrawal decisions
  /api/staff/*        Per-staff schedule and expire sweep
  /api/managers/*     Hierarchy resolution and team schedules

SEE ALSO:
  - handlers.go: handler implementations
  - cmd/server/main.go: server startup
*/
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler, allowedOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", headerStaffID},
		AllowCredentials: true,
	}))

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Route("/requests", func(r chi.Router) {
			r.Post("/", h.SubmitRequest)
			r.Post("/recurring", h.SubmitRecurring)
			r.Get("/{id}", h.GetRequest)
			r.Delete("/{id}", h.DeleteRequest)
			r.Post("/{id}/approve", h.ApproveRequest)
			r.Post("/{id}/reject", h.RejectRequest)
			r.Post("/{id}/withdraw", h.WithdrawRequest)
		})

		r.Route("/withdrawals", func(r chi.Router) {
			r.Post("/{id}/approve", h.ApproveWithdrawal)
			r.Post("/{id}/reject", h.RejectWithdrawal)
		})

		r.Route("/staff", func(r chi.Router) {
			r.Get("/{id}/requests", h.ListStaffRequests)
			r.Post("/{id}/expire-sweep", h.ExpireSweep)
		})

		r.Route("/managers", func(r chi.Router) {
			r.Get("/{id}/subordinates", h.GetSubordinates)
			r.Get("/{id}/team-schedule", h.GetTeamSchedule)
		})
	})

	return r
}
