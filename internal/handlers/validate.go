package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/T14g/react-tdd/internal/httpx"
	"github.com/T14g/react-tdd/internal/models"
	"github.com/T14g/react-tdd/internal/transport"
	"github.com/T14g/react-tdd/internal/validation"
)

func rulesFor(formName string) (validation.RuleSet, bool) {
	switch formName {
	case "customer":
		return validation.CustomerRules(), true
	case "appointment":
		return validation.AppointmentRules(models.SelectableServices), true
	default:
		return nil, false
	}
}

// ValidateForm runs the client-side rules for the fields present in the body,
// so a single blurred field can be checked as well as a whole form.
func (s *Server) ValidateForm(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	formName := chi.URLParam(r, "form")
	rules, ok := rulesFor(formName)
	if !ok {
		transport.WriteError(w, http.StatusNotFound, "unknown form", nil)
		return
	}

	var values map[string]any
	if err := httpx.DecodeJSON(r.Body, &values); err != nil {
		log.Warn("validate: invalid json", slog.String("form", formName))
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}

	errs, err := validation.ValidateAll(rules, values)
	if err != nil {
		if errors.Is(err, validation.ErrNoRule) {
			log.Warn("validate: unknown field", slog.String("form", formName), slog.String("error", err.Error()))
			transport.WriteError(w, http.StatusBadRequest, err.Error(), nil)
			return
		}
		transport.WriteError(w, http.StatusInternalServerError, "validation error", nil)
		return
	}

	transport.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"form":   formName,
		"valid":  !validation.HasAnyError(errs),
		"errors": errs,
	})
}
