package board

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate is shared by every field check.
var validate = validator.New()

// FieldKind selects how a field value is interpreted.
type FieldKind int

// FieldText and FieldNumber are the supported field kinds.
const (
	FieldText FieldKind = iota
	FieldNumber
)

// Constraints lists the checks applied to one field. Nil bounds are absent.
// Every bound is exclusive: MinLength 5 accepts six characters or more.
type Constraints struct {
	Required  bool
	MinLength *int
	MaxLength *int
	Min       *int
	Max       *int
}

// Bound returns a pointer to n for use in Constraints.
func Bound(n int) *int {
	return &n
}

// Field describes one form input.
type Field struct {
	Name        string
	Label       string
	Kind        FieldKind
	Constraints Constraints
}

// FieldError is one failed constraint.
type FieldError struct {
	Field string
	Tag   string
	Param string
}

// Message renders a human-readable description of the failure.
func (e FieldError) Message() string {
	switch e.Tag {
	case "required":
		return fmt.Sprintf("%s is required", e.Field)
	case "number":
		return fmt.Sprintf("%s must be a whole number", e.Field)
	case "min_length":
		return fmt.Sprintf("%s must be longer than %s characters", e.Field, e.Param)
	case "max_length":
		return fmt.Sprintf("%s must be shorter than %s characters", e.Field, e.Param)
	case "min":
		return fmt.Sprintf("%s must be greater than %s", e.Field, e.Param)
	case "max":
		return fmt.Sprintf("%s must be less than %s", e.Field, e.Param)
	default:
		return fmt.Sprintf("%s is invalid", e.Field)
	}
}

// ValidationError lists every field failure of a rejected submission.
type ValidationError struct {
	Fields []FieldError
}

// Error implements error.
func (e *ValidationError) Error() string {
	if e == nil || len(e.Fields) == 0 {
		return "invalid input"
	}
	parts := make([]string, 0, len(e.Fields))
	for _, fe := range e.Fields {
		parts = append(parts, fe.Message())
	}
	return "invalid input: " + strings.Join(parts, "; ")
}

// Check validates raw against the field constraints.
func (f Field) Check(raw string) []FieldError {
	var out []FieldError
	c := f.Constraints
	trimmed := strings.TrimSpace(raw)
	if c.Required {
		out = appendFailure(out, f.Name, "required", "", validate.Var(trimmed, "required"))
	}
	switch f.Kind {
	case FieldText:
		if c.MinLength != nil {
			out = appendFailure(out, f.Name, "min_length", strconv.Itoa(*c.MinLength), validate.Var(raw, "gt="+strconv.Itoa(*c.MinLength)))
		}
		if c.MaxLength != nil {
			out = appendFailure(out, f.Name, "max_length", strconv.Itoa(*c.MaxLength), validate.Var(raw, "lt="+strconv.Itoa(*c.MaxLength)))
		}
	case FieldNumber:
		if trimmed == "" {
			return out
		}
		n, err := strconv.Atoi(trimmed)
		if err != nil {
			return append(out, FieldError{Field: f.Name, Tag: "number"})
		}
		if c.Min != nil {
			out = appendFailure(out, f.Name, "min", strconv.Itoa(*c.Min), validate.Var(n, "gt="+strconv.Itoa(*c.Min)))
		}
		if c.Max != nil {
			out = appendFailure(out, f.Name, "max", strconv.Itoa(*c.Max), validate.Var(n, "lt="+strconv.Itoa(*c.Max)))
		}
	}
	return out
}

// appendFailure records a FieldError when the validator rejected the value.
// A malformed tag also surfaces as a failure so checks never pass silently.
func appendFailure(out []FieldError, field, tag, param string, err error) []FieldError {
	if err == nil {
		return out
	}
	return append(out, FieldError{Field: field, Tag: tag, Param: param})
}
