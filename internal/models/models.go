package models

import "github.com/T14g/react-tdd/internal/schedule"

// SelectableServices lists what the salon offers, in display order.
var SelectableServices = []string{
	"Cut",
	"Blow-dry",
	"Cut & color",
	"Beard trim",
	"Cut & beard trim",
	"Extensions",
}

type Customer struct {
	ID          int    `json:"id,omitempty"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	PhoneNumber string `json:"phoneNumber"`
}

func (c Customer) Fields() map[string]any {
	return map[string]any{
		"firstName":   c.FirstName,
		"lastName":    c.LastName,
		"phoneNumber": c.PhoneNumber,
	}
}

type Appointment struct {
	StartsAt schedule.Instant `json:"startsAt"`
	Customer Customer         `json:"customer"`
	Service  string           `json:"service"`
	Stylist  string           `json:"stylist,omitempty"`
	Notes    string           `json:"notes,omitempty"`
}

// NewAppointment is what the appointment form submits; the customer is referenced by id.
type NewAppointment struct {
	StartsAt   schedule.Instant `json:"startsAt"`
	CustomerID int              `json:"customer"`
	Service    string           `json:"service"`
	Stylist    string           `json:"stylist,omitempty"`
	Notes      string           `json:"notes,omitempty"`
}

func (a NewAppointment) Fields() map[string]any {
	var startsAt any
	if a.StartsAt != 0 {
		startsAt = a.StartsAt
	}
	return map[string]any{
		"service":  a.Service,
		"startsAt": startsAt,
		"stylist":  a.Stylist,
		"notes":    a.Notes,
	}
}
