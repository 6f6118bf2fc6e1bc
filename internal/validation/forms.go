package validation

import "regexp"

var phoneNumberPattern = regexp.MustCompile(`^[0-9+()\- ]*$`)

func CustomerRules() RuleSet {
	return RuleSet{
		"firstName": Required("First name is required"),
		"lastName":  Required("Last name is required"),
		"phoneNumber": Sequence(
			Required("Phone number is required"),
			Pattern(phoneNumberPattern, "Only numbers, spaces and these symbols are allowed: ( ) + -"),
		),
	}
}

// AppointmentRules validates the appointment form against the services on offer.
func AppointmentRules(services []string) RuleSet {
	return RuleSet{
		"service": Sequence(
			Required("Service is required"),
			OneOf(services, "Service is not offered by the salon"),
		),
		"startsAt": Required("Time slot is required"),
		"stylist":  Optional(),
		"notes":    Optional(),
	}
}
