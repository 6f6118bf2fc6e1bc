package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/T14g/react-tdd/internal/models"
	"github.com/T14g/react-tdd/internal/schedule"
	"github.com/T14g/react-tdd/internal/validation"
)

// ValidationError is returned when the backend rejects a submission with 422.
type ValidationError struct {
	Errors validation.ErrorMap
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("backend validation failed: %d field(s)", len(e.Errors))
}

// StatusError is any other non-2xx response.
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("backend request failed: status=%d body=%s", e.Status, e.Body)
}

// Client talks to the booking backend. Every call is a single attempt.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if strings.TrimSpace(baseURL) == "" {
		return nil
	}
	if timeout <= 0 {
		timeout = 8 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) AvailableTimeSlots(ctx context.Context) ([]schedule.AvailableSlot, error) {
	slots := make([]schedule.AvailableSlot, 0)
	if err := c.do(ctx, http.MethodGet, "/availableTimeSlots", nil, &slots); err != nil {
		return nil, err
	}
	return slots, nil
}

func (c *Client) Customers(ctx context.Context) ([]models.Customer, error) {
	customers := make([]models.Customer, 0)
	if err := c.do(ctx, http.MethodGet, "/customers", nil, &customers); err != nil {
		return nil, err
	}
	return customers, nil
}

func (c *Client) CreateCustomer(ctx context.Context, customer models.Customer) (models.Customer, error) {
	var out models.Customer
	if err := c.do(ctx, http.MethodPost, "/customers", customer, &out); err != nil {
		return models.Customer{}, err
	}
	return out, nil
}

func (c *Client) CreateAppointment(ctx context.Context, appointment models.NewAppointment) error {
	return c.do(ctx, http.MethodPost, "/appointments", appointment, nil)
}

// AppointmentsBetween lists appointments starting within [from, to].
func (c *Client) AppointmentsBetween(ctx context.Context, from, to schedule.Instant) ([]models.Appointment, error) {
	appointments := make([]models.Appointment, 0)
	path := fmt.Sprintf("/appointments/%d-%d", from, to)
	if err := c.do(ctx, http.MethodGet, path, nil, &appointments); err != nil {
		return nil, err
	}
	return appointments, nil
}

type validationResponse struct {
	Errors validation.ErrorMap `json:"errors"`
}

func (c *Client) do(ctx context.Context, method, path string, in, out interface{}) error {
	if c == nil {
		return errors.New("backend client is nil")
	}

	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("backend marshal payload: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("backend create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("backend request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnprocessableEntity {
		var vr validationResponse
		if err := json.NewDecoder(resp.Body).Decode(&vr); err != nil {
			return fmt.Errorf("backend decode validation errors: %w", err)
		}
		return &ValidationError{Errors: vr.Errors}
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &StatusError{Status: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("backend decode response: %w", err)
	}
	return nil
}

// FieldErrors exposes the backend's per-field messages for merging into a form.
func (e *ValidationError) FieldErrors() validation.ErrorMap {
	return e.Errors
}
