package usecase

import (
	"errors"
	"fmt"
	"time"

	"taxi-booking/internal/data/entity"
	"taxi-booking/pkg/routing"
	"taxi-booking/pkg/utils"
)

var (
	ErrIllegalTransition    = entity.ErrIllegalTransition
	ErrSlotUnavailable      = entity.ErrSlotUnavailable
	ErrRouteNotFound        = routing.ErrRouteNotFound
	ErrConfirmationRequired = errors.New("confirmation required")
	ErrTaxiUnavailable      = errors.New("taxi not available")
	ErrAlreadySubmitted     = errors.New("booking already submitted")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrUnauthorized         = errors.New("invalid or expired session")
)

// ValidationError lists rejected fields with a readable message each.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + utils.FormatValidationErrors(e.Fields)
}

func validate(data any) error {
	if errs := utils.ValidateStruct(data); len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return nil
}

func fieldError(field, message string) error {
	return &ValidationError{Fields: map[string]string{field: message}}
}

func missingFields(fields []string) error {
	errs := make(map[string]string, len(fields))
	for _, f := range fields {
		errs[f] = "This field is required"
	}
	return &ValidationError{Fields: errs}
}

func notFound(what string, id fmt.Stringer) error {
	return fmt.Errorf("%s %s not found", what, id)
}

// parseDay reads a YYYY-MM-DD label in loc and returns it as the UTC
// midnight DATE columns are compared in.
func parseDay(field, value string, loc *time.Location) (time.Time, error) {
	day, err := utils.ParseDate(value, loc)
	if err != nil {
		return time.Time{}, fieldError(field, "Must match format "+utils.DateLayout)
	}
	return utils.DateOnly(day), nil
}
