package validation

import (
	"errors"
	"fmt"
)

var ErrNoRule = errors.New("no rule for field")

// ErrorMap holds one entry per validated field; NoError marks a field that passed.
type ErrorMap map[string]string

// RuleSet assigns a rule to each field name.
type RuleSet map[string]Rule

// ValidateAll applies the matching rule to every field in values. Fields
// missing from values are missing from the result.
func ValidateAll(rules RuleSet, values map[string]any) (ErrorMap, error) {
	result := make(ErrorMap, len(values))
	for field, value := range values {
		rule, ok := rules[field]
		if !ok || rule == nil {
			return nil, fmt.Errorf("%w: %s", ErrNoRule, field)
		}
		result[field] = rule(value)
	}
	return result, nil
}

func HasAnyError(errs ErrorMap) bool {
	for _, msg := range errs {
		if msg != NoError {
			return true
		}
	}
	return false
}

func HasFieldError(errs ErrorMap, field string) bool {
	msg, ok := errs[field]
	return ok && msg != NoError
}

// MergeErrorMaps returns a new map with server entries overriding client ones.
func MergeErrorMaps(client, server ErrorMap) ErrorMap {
	merged := make(ErrorMap, len(client)+len(server))
	for field, msg := range client {
		merged[field] = msg
	}
	for field, msg := range server {
		merged[field] = msg
	}
	return merged
}

// Details drops passing fields, leaving only the messages worth showing.
func (m ErrorMap) Details() map[string]string {
	details := make(map[string]string)
	for field, msg := range m {
		if msg != NoError {
			details[field] = msg
		}
	}
	return details
}
