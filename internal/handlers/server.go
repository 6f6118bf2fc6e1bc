package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/T14g/react-tdd/internal/cache"
	"github.com/T14g/react-tdd/internal/config"
	"github.com/T14g/react-tdd/internal/middleware"
	"github.com/T14g/react-tdd/internal/models"
	"github.com/T14g/react-tdd/internal/schedule"
	"github.com/T14g/react-tdd/internal/validation"
)

// Backend is the booking backend the UI saves to and reads availability from.
type Backend interface {
	AvailableTimeSlots(ctx context.Context) ([]schedule.AvailableSlot, error)
	Customers(ctx context.Context) ([]models.Customer, error)
	CreateCustomer(ctx context.Context, customer models.Customer) (models.Customer, error)
	CreateAppointment(ctx context.Context, appointment models.NewAppointment) error
	AppointmentsBetween(ctx context.Context, from, to schedule.Instant) ([]models.Appointment, error)
}

type Server struct {
	Cfg     *config.Config
	Val     *validation.Validator
	Log     *slog.Logger
	Cache   cache.Cache
	Backend Backend
	Now     func() time.Time
}

func (s *Server) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Server) logWithRequest(r *http.Request) *slog.Logger {
	if r == nil {
		return s.Log
	}
	if id := middleware.RequestIDFromContext(r.Context()); id != "" {
		return s.Log.With(slog.String("request_id", id))
	}
	return s.Log
}
