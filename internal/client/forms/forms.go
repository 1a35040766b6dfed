// Package forms holds the local validation schemas for user-entered data.
// Validation runs before any network call; a rejected form never reaches
// the gateway.
package forms

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// CloseOutForm collects the fields for closing out a completed
// appointment.
type CloseOutForm struct {
	Status  string `validate:"required,oneof=completed no-show cancelled"`
	EndTime string `validate:"omitempty,datetime=15:04"`
	Notes   string `validate:"max=2000"`
}

// FollowUpForm collects the fields for booking a follow-up visit.
type FollowUpForm struct {
	PatientID  string `validate:"required"`
	FacilityID string `validate:"required"`
	Date       string `validate:"required,datetime=2006-01-02"`
	StartTime  string `validate:"required,datetime=15:04"`
	EndTime    string `validate:"omitempty,datetime=15:04"`
	Notes      string `validate:"max=2000"`
}

// PushTokenForm wraps the device push token sent to the profile endpoint.
type PushTokenForm struct {
	Token string `validate:"required,min=8"`
}

// ValidationError reports field-level schema failures. It is rendered by
// the UI layer only; nothing network-related ever wraps it.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		names = append(names, f)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, f := range names {
		parts = append(parts, f+": "+e.Fields[f])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Validate checks v against its schema tags and returns a
// *ValidationError describing every failed field, or nil.
func Validate(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	fields := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields[fe.Field()] = describe(fe)
	}
	return &ValidationError{Fields: fields}
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "datetime":
		return "must match format " + fe.Param()
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "min":
		return "must be at least " + fe.Param() + " characters"
	default:
		return fmt.Sprintf("failed %q check", fe.Tag())
	}
}
