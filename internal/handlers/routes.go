package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/T14g/react-tdd/internal/middleware"
)

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(s.Log))
	r.Use(middleware.CORS(s.Cfg.FrontendOrigin))
	r.Use(chiMiddleware.Timeout(30 * time.Second))

	submitLimiter := middleware.NewRateLimiter(s.Cfg.RateLimitSubmit, time.Duration(s.Cfg.RateLimitWindowSec)*time.Second)

	r.Route("/api", func(api chi.Router) {
		api.Get("/services", s.GetServices)
		api.Get("/time-slots", s.GetTimeSlots)
		api.Get("/week", s.GetWeek)
		api.Get("/grid", s.GetGrid)
		api.Get("/appointments", s.GetDayAppointments)
		api.Get("/customers", s.ListCustomers)
		api.Post("/validate/{form}", s.ValidateForm)
		api.With(submitLimiter.Middleware).Post("/customers", s.CreateCustomer)
		api.With(submitLimiter.Middleware).Post("/appointments", s.CreateAppointment)
	})

	return r
}
