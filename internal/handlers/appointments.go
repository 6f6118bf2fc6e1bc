package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sort"

	"github.com/T14g/react-tdd/internal/form"
	"github.com/T14g/react-tdd/internal/httpx"
	"github.com/T14g/react-tdd/internal/models"
	"github.com/T14g/react-tdd/internal/schedule"
	"github.com/T14g/react-tdd/internal/transport"
	"github.com/T14g/react-tdd/internal/validation"
)

type dayAppointment struct {
	models.Appointment
	TimeOfDay string `json:"timeOfDay"`
}

// GetDayAppointments lists the appointments of one day, earliest first.
func (s *Server) GetDayAppointments(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	day, dateStr, err := s.anchorDate(r.URL.Query().Get("date"))
	if err != nil {
		log.Warn("appointments day: invalid date")
		transport.WriteError(w, http.StatusBadRequest, "invalid date", nil)
		return
	}
	if s.Backend == nil {
		transport.WriteError(w, http.StatusServiceUnavailable, "backend not configured", nil)
		return
	}

	from, to := schedule.DayBounds(day, s.Cfg.Timezone)

	ctx, cancel := context.WithTimeout(r.Context(), backendTimeout(s.Cfg.BackendTimeout()))
	defer cancel()
	appointments, err := s.Backend.AppointmentsBetween(ctx, from, to)
	if err != nil {
		log.Error("appointments day: backend error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusBadGateway, "backend error", nil)
		return
	}

	sort.SliceStable(appointments, func(i, j int) bool {
		return appointments[i].StartsAt < appointments[j].StartsAt
	})
	out := make([]dayAppointment, len(appointments))
	for i, a := range appointments {
		out[i] = dayAppointment{Appointment: a, TimeOfDay: schedule.FormatTimeOfDay(a.StartsAt, s.Cfg.Timezone)}
	}

	log.Info("appointments day: ok", slog.String("date", dateStr), slog.Int("appointments", len(out)))
	transport.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"date":         dateStr,
		"from":         from,
		"to":           to,
		"appointments": out,
	})
}

func (s *Server) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	var req models.NewAppointment
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		log.Warn("appointments create: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}
	if s.Backend == nil {
		transport.WriteError(w, http.StatusServiceUnavailable, "backend not configured", nil)
		return
	}

	f := form.New(validation.AppointmentRules(models.SelectableServices), req.Fields())
	state, err := f.Submit(r.Context(), func(ctx context.Context, _ map[string]any) error {
		ctx, cancel := context.WithTimeout(ctx, backendTimeout(s.Cfg.BackendTimeout()))
		defer cancel()
		return s.Backend.CreateAppointment(ctx, req)
	})
	if err != nil {
		log.Error("appointments create: rule table error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "validation error", nil)
		return
	}

	switch state {
	case form.Valid:
		s.invalidateGrids(r.Context(), log)
		log.Info("appointments create: booked",
			slog.Int64("starts_at", int64(req.StartsAt)),
			slog.String("service", req.Service),
		)
		transport.WriteJSON(w, http.StatusCreated, req)
	case form.Invalid:
		log.Warn("appointments create: validation error")
		transport.WriteFieldErrors(w, f.Errors().Details())
	default:
		log.Error("appointments create: save failed", slog.String("error", fmt.Sprint(f.SubmitErr())))
		transport.WriteError(w, http.StatusBadGateway, form.SaveFailedMessage, nil)
	}
}
