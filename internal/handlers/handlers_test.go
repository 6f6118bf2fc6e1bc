package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/T14g/react-tdd/internal/backend"
	"github.com/T14g/react-tdd/internal/cache"
	"github.com/T14g/react-tdd/internal/config"
	"github.com/T14g/react-tdd/internal/models"
	"github.com/T14g/react-tdd/internal/schedule"
	"github.com/T14g/react-tdd/internal/validation"
)

type fakeBackend struct {
	slots        []schedule.AvailableSlot
	slotCalls    int
	appointments []models.Appointment
	createErr    error
	created      []models.Customer
	booked       []models.NewAppointment
	from, to     schedule.Instant
}

func (f *fakeBackend) AvailableTimeSlots(ctx context.Context) ([]schedule.AvailableSlot, error) {
	f.slotCalls++
	return f.slots, nil
}

func (f *fakeBackend) Customers(ctx context.Context) ([]models.Customer, error) {
	return f.created, nil
}

func (f *fakeBackend) CreateCustomer(ctx context.Context, customer models.Customer) (models.Customer, error) {
	if f.createErr != nil {
		return models.Customer{}, f.createErr
	}
	customer.ID = len(f.created) + 1
	f.created = append(f.created, customer)
	return customer, nil
}

func (f *fakeBackend) CreateAppointment(ctx context.Context, appointment models.NewAppointment) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.booked = append(f.booked, appointment)
	remaining := f.slots[:0]
	for _, slot := range f.slots {
		if slot.StartsAt != appointment.StartsAt {
			remaining = append(remaining, slot)
		}
	}
	f.slots = remaining
	return nil
}

func (f *fakeBackend) AppointmentsBetween(ctx context.Context, from, to schedule.Instant) ([]models.Appointment, error) {
	f.from, f.to = from, to
	return f.appointments, nil
}

var testLoc = time.FixedZone("WAT", 60*60)

func newTestServer(b *fakeBackend) *Server {
	return &Server{
		Cfg: &config.Config{
			FrontendOrigin:     "http://localhost:3000",
			SalonOpensAt:       9,
			SalonClosesAt:      19,
			BackendTimeoutSec:  1,
			CacheTTLSeconds:    60,
			RateLimitSubmit:    100,
			RateLimitWindowSec: 60,
			Timezone:           testLoc,
		},
		Val:     validation.New(),
		Log:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		Cache:   cache.NewMemory(),
		Backend: b,
		Now:     func() time.Time { return time.Date(2022, time.February, 2, 10, 15, 0, 0, testLoc) },
	}
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode response: %v (%s)", err, rec.Body.String())
	}
}

func TestGetServices(t *testing.T) {
	rec := do(t, newTestServer(&fakeBackend{}).Router(), http.MethodGet, "/api/services", "")
	var out struct {
		Services []string `json:"services"`
	}
	decode(t, rec, &out)
	if rec.Code != http.StatusOK || len(out.Services) != len(models.SelectableServices) {
		t.Fatalf("unexpected response %d: %s", rec.Code, rec.Body.String())
	}
}

func TestGetTimeSlots(t *testing.T) {
	rec := do(t, newTestServer(&fakeBackend{}).Router(), http.MethodGet, "/api/time-slots?date=2022-02-02&open=9&close=11", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var out struct {
		Slots []labelledInstant `json:"slots"`
	}
	decode(t, rec, &out)
	want := []string{"09:00", "09:30", "10:00", "10:30"}
	if len(out.Slots) != len(want) {
		t.Fatalf("expected %d slots, got %d", len(want), len(out.Slots))
	}
	for i, s := range out.Slots {
		if s.Label != want[i] {
			t.Fatalf("slot %d: expected %s, got %s", i, want[i], s.Label)
		}
	}
}

func TestGetTimeSlotsClosedHoursAreEmpty(t *testing.T) {
	rec := do(t, newTestServer(&fakeBackend{}).Router(), http.MethodGet, "/api/time-slots?open=12&close=10", "")
	var out struct {
		Slots []labelledInstant `json:"slots"`
	}
	decode(t, rec, &out)
	if rec.Code != http.StatusOK || len(out.Slots) != 0 {
		t.Fatalf("expected empty slots, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestGetTimeSlotsInvalidQuery(t *testing.T) {
	h := newTestServer(&fakeBackend{}).Router()

	rec := do(t, h, http.MethodGet, "/api/time-slots?open=30", "")
	var out struct {
		Details map[string]string `json:"details"`
	}
	decode(t, rec, &out)
	if rec.Code != http.StatusBadRequest || out.Details["open"] != "hour" {
		t.Fatalf("expected hour detail for open, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = do(t, h, http.MethodGet, "/api/time-slots?close=late", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestGetWeekDefaultsToToday(t *testing.T) {
	rec := do(t, newTestServer(&fakeBackend{}).Router(), http.MethodGet, "/api/week", "")
	var out struct {
		Date  string            `json:"date"`
		Dates []labelledInstant `json:"dates"`
	}
	decode(t, rec, &out)
	if out.Date != "2022-02-02" || len(out.Dates) != 7 {
		t.Fatalf("unexpected week: %s", rec.Body.String())
	}
	if out.Dates[0].Label != "Wed 02" || out.Dates[6].Label != "Tue 08" {
		t.Fatalf("unexpected labels: %+v", out.Dates)
	}
}

func TestGetGridMarksAvailableCellAndCaches(t *testing.T) {
	target := schedule.InstantOf(time.Date(2022, time.February, 3, 9, 30, 0, 0, testLoc))
	fb := &fakeBackend{slots: []schedule.AvailableSlot{{StartsAt: target}}}
	h := newTestServer(fb).Router()

	for i := 0; i < 2; i++ {
		rec := do(t, h, http.MethodGet, "/api/grid?week=2022-02-02", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		var out gridResponse
		decode(t, rec, &out)
		if len(out.Rows) != 20 || len(out.Columns) != 7 {
			t.Fatalf("unexpected grid shape: %d x %d", len(out.Rows), len(out.Columns))
		}
		if out.Selectable != 1 || !out.Cells[1][1].Selectable || out.Cells[1][1].At != target {
			t.Fatalf("expected only Thu 09:30 to be selectable: %+v", out.Cells[1][1])
		}
	}
	if fb.slotCalls != 1 {
		t.Fatalf("expected second request to be served from cache, backend called %d times", fb.slotCalls)
	}
}

func TestGetDayAppointments(t *testing.T) {
	fb := &fakeBackend{appointments: []models.Appointment{
		{StartsAt: schedule.InstantOf(time.Date(2022, time.February, 2, 13, 0, 0, 0, testLoc)), Customer: models.Customer{FirstName: "Jordan"}},
		{StartsAt: schedule.InstantOf(time.Date(2022, time.February, 2, 9, 0, 0, 0, testLoc)), Customer: models.Customer{FirstName: "Charlie"}},
	}}
	rec := do(t, newTestServer(fb).Router(), http.MethodGet, "/api/appointments?date=2022-02-02", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var out struct {
		Appointments []dayAppointment `json:"appointments"`
	}
	decode(t, rec, &out)
	if len(out.Appointments) != 2 || out.Appointments[0].TimeOfDay != "09:00" || out.Appointments[0].Customer.FirstName != "Charlie" {
		t.Fatalf("unexpected appointments: %s", rec.Body.String())
	}
	if int64(fb.to-fb.from) != schedule.Day-1 {
		t.Fatalf("expected whole day range, got %d-%d", fb.from, fb.to)
	}
}

func TestValidateCustomerForm(t *testing.T) {
	h := newTestServer(&fakeBackend{}).Router()
	rec := do(t, h, http.MethodPost, "/api/validate/customer", `{"firstName":"","lastName":"Silva","phoneNumber":"555"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var out struct {
		Valid  bool                `json:"valid"`
		Errors validation.ErrorMap `json:"errors"`
	}
	decode(t, rec, &out)
	if out.Valid {
		t.Fatalf("expected form to be invalid")
	}
	if out.Errors["firstName"] != "First name is required" || out.Errors["lastName"] != "" || out.Errors["phoneNumber"] != "" {
		t.Fatalf("unexpected errors: %v", out.Errors)
	}
	if len(out.Errors) != 3 {
		t.Fatalf("expected three entries, got %v", out.Errors)
	}
}

func TestValidateFormUnknown(t *testing.T) {
	h := newTestServer(&fakeBackend{}).Router()
	if rec := do(t, h, http.MethodPost, "/api/validate/invoice", `{}`); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if rec := do(t, h, http.MethodPost, "/api/validate/customer", `{"nickname":"Al"}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestCreateCustomer(t *testing.T) {
	fb := &fakeBackend{}
	rec := do(t, newTestServer(fb).Router(), http.MethodPost, "/api/customers", `{"firstName":"Ashley","lastName":"Santos","phoneNumber":"+1 555"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var out models.Customer
	decode(t, rec, &out)
	if out.ID != 1 || len(fb.created) != 1 {
		t.Fatalf("unexpected customer: %+v", out)
	}
}

func TestCreateCustomerInvalidSkipsBackend(t *testing.T) {
	fb := &fakeBackend{}
	rec := do(t, newTestServer(fb).Router(), http.MethodPost, "/api/customers", `{"firstName":" ","lastName":"Santos","phoneNumber":"abc"}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	var out struct {
		Details map[string]string `json:"details"`
	}
	decode(t, rec, &out)
	if out.Details["firstName"] != "First name is required" || out.Details["phoneNumber"] == "" {
		t.Fatalf("unexpected details: %v", out.Details)
	}
	if _, ok := out.Details["lastName"]; ok {
		t.Fatalf("expected passing field to be left out of details")
	}
	if len(fb.created) != 0 {
		t.Fatalf("expected backend not to be called")
	}
}

func TestCreateCustomerServerValidation(t *testing.T) {
	fb := &fakeBackend{createErr: &backend.ValidationError{Errors: validation.ErrorMap{
		"phoneNumber": "Phone number already exists in the system",
	}}}
	rec := do(t, newTestServer(fb).Router(), http.MethodPost, "/api/customers", `{"firstName":"A","lastName":"B","phoneNumber":"555"}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	var out struct {
		Details map[string]string `json:"details"`
	}
	decode(t, rec, &out)
	if out.Details["phoneNumber"] != "Phone number already exists in the system" {
		t.Fatalf("expected server error in details, got %v", out.Details)
	}
}

func TestCreateCustomerSaveFailed(t *testing.T) {
	fb := &fakeBackend{createErr: errors.New("connection refused")}
	rec := do(t, newTestServer(fb).Router(), http.MethodPost, "/api/customers", `{"firstName":"A","lastName":"B","phoneNumber":"555"}`)
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}
	var out struct {
		Error string `json:"error"`
	}
	decode(t, rec, &out)
	if out.Error != "An error occurred during save." {
		t.Fatalf("unexpected error message: %q", out.Error)
	}
}

func TestCreateAppointment(t *testing.T) {
	fb := &fakeBackend{}
	h := newTestServer(fb).Router()

	rec := do(t, h, http.MethodPost, "/api/appointments", `{"startsAt":1643797800000,"customer":1,"service":"Blow-dry"}`)
	if rec.Code != http.StatusCreated || len(fb.booked) != 1 {
		t.Fatalf("expected booking, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = do(t, h, http.MethodPost, "/api/appointments", `{"customer":1,"service":"Perm"}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	var out struct {
		Details map[string]string `json:"details"`
	}
	decode(t, rec, &out)
	if out.Details["service"] != "Service is not offered by the salon" || out.Details["startsAt"] != "Time slot is required" {
		t.Fatalf("unexpected details: %v", out.Details)
	}
}

func TestCreateAppointmentRefreshesCachedGrid(t *testing.T) {
	target := schedule.InstantOf(time.Date(2022, time.February, 3, 9, 30, 0, 0, testLoc))
	fb := &fakeBackend{slots: []schedule.AvailableSlot{{StartsAt: target}}}
	h := newTestServer(fb).Router()

	grid := func() gridResponse {
		t.Helper()
		rec := do(t, h, http.MethodGet, "/api/grid?week=2022-02-02", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		var out gridResponse
		decode(t, rec, &out)
		return out
	}

	if before := grid(); before.Selectable != 1 {
		t.Fatalf("expected one selectable cell before booking, got %d", before.Selectable)
	}

	body := fmt.Sprintf(`{"startsAt":%d,"customer":1,"service":"Cut"}`, target)
	if rec := do(t, h, http.MethodPost, "/api/appointments", body); rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	after := grid()
	if after.Selectable != 0 || after.Cells[1][1].Selectable {
		t.Fatalf("expected booked slot to be gone from the grid, selectable=%d", after.Selectable)
	}
	if fb.slotCalls != 2 {
		t.Fatalf("expected availability to be fetched again after booking, got %d calls", fb.slotCalls)
	}
}
