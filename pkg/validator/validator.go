package validator

import (
	"fmt"
	"regexp"
	"strings"
)

// ValidationError reports the first configuration field that failed a check.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Integer checks an optional integer field against a minimum.
// A nil value is treated as absent and passes.
func Integer(field string, value *int, minimum int) error {
	if value == nil {
		return nil
	}
	if *value < minimum {
		return &ValidationError{
			Field:  field,
			Reason: fmt.Sprintf("value %d is below minimum %d", *value, minimum),
		}
	}
	return nil
}

// String checks an optional string field against a set of allowed values.
// A nil value is treated as absent and passes.
func String(field string, value *string, allowed ...string) error {
	if value == nil {
		return nil
	}
	for _, v := range allowed {
		if *value == v {
			return nil
		}
	}
	return &ValidationError{
		Field:  field,
		Reason: fmt.Sprintf("value %q is not one of: %s", *value, strings.Join(allowed, ", ")),
	}
}

// Pattern checks an optional string field against a compiled regular
// expression. A nil value is treated as absent and passes.
func Pattern(field string, value *string, pattern *regexp.Regexp) error {
	if value == nil {
		return nil
	}
	if !pattern.MatchString(*value) {
		return &ValidationError{
			Field:  field,
			Reason: fmt.Sprintf("value %q does not match %s", *value, pattern.String()),
		}
	}
	return nil
}
