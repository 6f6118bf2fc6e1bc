package validation

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
)

// NoError is the description a Rule returns for a value it accepts.
const NoError = ""

// Rule checks a single field value and describes what is wrong with it.
type Rule func(value any) string

// Required rejects nil values and strings that are blank after trimming.
// Non-string values such as 0 or false count as present.
func Required(description string) Rule {
	return func(value any) string {
		if isBlank(value) {
			return description
		}
		return NoError
	}
}

// Pattern rejects values that re does not match. Anchors in re decide whether
// a partial match is enough.
func Pattern(re *regexp.Regexp, description string) Rule {
	return func(value any) string {
		if !re.MatchString(stringValue(value)) {
			return description
		}
		return NoError
	}
}

// Optional accepts every value, including a missing one.
func Optional() Rule {
	return func(any) string { return NoError }
}

// OneOf rejects values that are not one of options.
func OneOf(options []string, description string) Rule {
	allowed := make(map[string]struct{}, len(options))
	for _, o := range options {
		allowed[o] = struct{}{}
	}
	return func(value any) string {
		if _, ok := allowed[stringValue(value)]; !ok {
			return description
		}
		return NoError
	}
}

// Sequence runs rules in order and stops at the first error.
func Sequence(rules ...Rule) Rule {
	return func(value any) string {
		for _, rule := range rules {
			if msg := rule(value); msg != NoError {
				return msg
			}
		}
		return NoError
	}
}

func ValidateField(rule Rule, value any) string {
	return rule(value)
}

func isBlank(value any) bool {
	if value == nil {
		return true
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return true
		}
		value = rv.Elem().Interface()
	}
	s, ok := value.(string)
	if !ok {
		return false
	}
	return strings.TrimSpace(s) == ""
}

func stringValue(value any) string {
	if value == nil {
		return ""
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return ""
		}
		value = rv.Elem().Interface()
	}
	switch v := value.(type) {
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}
