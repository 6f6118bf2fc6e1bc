package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/T14g/react-tdd/internal/form"
	"github.com/T14g/react-tdd/internal/httpx"
	"github.com/T14g/react-tdd/internal/models"
	"github.com/T14g/react-tdd/internal/transport"
	"github.com/T14g/react-tdd/internal/validation"
)

func (s *Server) ListCustomers(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	if s.Backend == nil {
		transport.WriteError(w, http.StatusServiceUnavailable, "backend not configured", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), backendTimeout(s.Cfg.BackendTimeout()))
	defer cancel()
	customers, err := s.Backend.Customers(ctx)
	if err != nil {
		log.Error("customers list: backend error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusBadGateway, "backend error", nil)
		return
	}

	log.Info("customers list: ok", slog.Int("customers", len(customers)))
	transport.WriteJSON(w, http.StatusOK, customers)
}

func (s *Server) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	var req models.Customer
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		log.Warn("customers create: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}
	if s.Backend == nil {
		transport.WriteError(w, http.StatusServiceUnavailable, "backend not configured", nil)
		return
	}

	var saved models.Customer
	f := form.New(validation.CustomerRules(), req.Fields())
	state, err := f.Submit(r.Context(), func(ctx context.Context, values map[string]any) error {
		ctx, cancel := context.WithTimeout(ctx, backendTimeout(s.Cfg.BackendTimeout()))
		defer cancel()
		out, err := s.Backend.CreateCustomer(ctx, customerFromValues(values))
		if err != nil {
			return err
		}
		saved = out
		return nil
	})
	if err != nil {
		log.Error("customers create: rule table error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "validation error", nil)
		return
	}

	switch state {
	case form.Valid:
		log.Info("customers create: saved", slog.Int("customer_id", saved.ID))
		transport.WriteJSON(w, http.StatusCreated, saved)
	case form.Invalid:
		log.Warn("customers create: validation error")
		transport.WriteFieldErrors(w, f.Errors().Details())
	default:
		log.Error("customers create: save failed", slog.String("error", fmt.Sprint(f.SubmitErr())))
		transport.WriteError(w, http.StatusBadGateway, form.SaveFailedMessage, nil)
	}
}

func customerFromValues(values map[string]any) models.Customer {
	str := func(key string) string {
		v, _ := values[key].(string)
		return v
	}
	return models.Customer{
		FirstName:   str("firstName"),
		LastName:    str("lastName"),
		PhoneNumber: str("phoneNumber"),
	}
}
