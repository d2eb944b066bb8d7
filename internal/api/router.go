package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/carewell/clinic-booking/internal/booking"
)

type RouterConfig struct {
	Service *booking.BookingService
	PgPool  *pgxpool.Pool
	Redis   *redis.Client
	Env     string
	Version string
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware)

	health := NewHealthHandler(cfg.PgPool, cfg.Redis, cfg.Env, cfg.Version)
	r.Get("/health/live", health.Liveness)
	r.Get("/health/ready", health.Readiness)

	r.Route("/v1", func(r chi.Router) {
		r.Route("/appointments", func(r chi.Router) {
			r.Post("/", createAppointmentHandler(cfg.Service))
			r.Get("/", listCustomerAppointmentsHandler(cfg.Service))
			r.Get("/{id}", getAppointmentHandler(cfg.Service))
			r.Post("/{id}/cancel", cancelAppointmentHandler(cfg.Service))
			r.Post("/{id}/confirm", confirmAppointmentHandler(cfg.Service))
		})

		r.Route("/services", func(r chi.Router) {
			r.Get("/", listServicesHandler(cfg.Service))
			r.Get("/{id}", getServiceHandler(cfg.Service))
		})

		r.Route("/health-professionals", func(r chi.Router) {
			r.Get("/", listProfessionalsHandler(cfg.Service))
			r.Get("/{id}", getProfessionalHandler(cfg.Service))
		})
	})

	return r
}
