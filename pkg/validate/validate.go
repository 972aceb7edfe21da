// Package validate holds small, entity-agnostic validation helpers that
// report the same field/message/value shape regardless of what is being
// validated. No other package in this module imports it.
package validate

import (
	"fmt"
	"strings"
)

// Error represents one field-level validation failure.
type Error struct {
	Field   string
	Value   interface{}
	Message string
}

func (e Error) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("field '%s': %s", e.Field, e.Message)
}

// Errors is a collection of validation errors.
type Errors []Error

func (es Errors) Error() string {
	if len(es) == 0 {
		return "no validation errors"
	}
	if len(es) == 1 {
		return es[0].Error()
	}
	var messages []string
	for _, e := range es {
		messages = append(messages, e.Error())
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(messages, "; "))
}

func (es Errors) HasErrors() bool { return len(es) > 0 }

func (es *Errors) Add(field, message string, value ...interface{}) {
	var val interface{}
	if len(value) > 0 {
		val = value[0]
	}
	*es = append(*es, Error{Field: field, Value: val, Message: message})
}

// Required checks that a string field is not empty.
func Required(field, value, entityType string) error {
	if strings.TrimSpace(value) == "" {
		return Error{Field: field, Value: value, Message: fmt.Sprintf("is required for %s", entityType)}
	}
	return nil
}

// OneOf checks that value is a member of allowed.
func OneOf(field, value string, allowed []string) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return Error{Field: field, Value: value, Message: fmt.Sprintf("must be one of: %s", strings.Join(allowed, ", "))}
}

// MinLength checks a minimum trimmed string length.
func MinLength(field, value string, minLength int) error {
	if len(strings.TrimSpace(value)) < minLength {
		return Error{Field: field, Value: value, Message: fmt.Sprintf("must be at least %d characters long", minLength)}
	}
	return nil
}

// MaxLength checks a maximum string length.
func MaxLength(field, value string, maxLength int) error {
	if len(value) > maxLength {
		return Error{Field: field, Value: value, Message: fmt.Sprintf("must not exceed %d characters", maxLength)}
	}
	return nil
}
