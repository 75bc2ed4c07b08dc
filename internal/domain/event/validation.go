package event

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// CreateRequest describes an event creation request.
type CreateRequest struct {
	Title           string    `json:"title" validate:"required,max=200"`
	Date            time.Time `json:"date"`
	Time            TimeOfDay `json:"time"`
	Client          *string   `json:"client,omitempty" validate:"omitempty,max=100"`
	Type            *string   `json:"type,omitempty" validate:"omitempty,max=50"`
	ReminderMinutes *int      `json:"reminderMinutes,omitempty" validate:"omitempty,min=0,max=1440"`
	Notes           *string   `json:"notes,omitempty" validate:"omitempty,max=500"`
	Email           string    `json:"email" validate:"required,email"`
}

// UpdateRequest replaces every mutable field of an event.
type UpdateRequest struct {
	Title           string    `json:"title" validate:"required,min=3,max=200"`
	Date            time.Time `json:"date"`
	Time            TimeOfDay `json:"time"`
	Client          *string   `json:"client,omitempty" validate:"omitempty,max=100"`
	Type            *string   `json:"type,omitempty" validate:"omitempty,max=50"`
	ReminderMinutes *int      `json:"reminderMinutes,omitempty" validate:"omitempty,min=0,max=1440"`
	Notes           *string   `json:"notes,omitempty" validate:"omitempty,max=500"`
	Email           string    `json:"email" validate:"required,email"`
}

// NewValidator returns a validator that reports fields by their JSON names.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidateCreateInput validates fields required to create an event.
func ValidateCreateInput(v *validator.Validate, req CreateRequest) error {
	return validateStruct(v, req, scheduleErrors(req.Date, req.Time))
}

// ValidateUpdateInput validates a full replacement of an event.
func ValidateUpdateInput(v *validator.Validate, req UpdateRequest) error {
	return validateStruct(v, req, scheduleErrors(req.Date, req.Time))
}

func scheduleErrors(date time.Time, tod TimeOfDay) []FieldError {
	var fields []FieldError
	if date.IsZero() {
		fields = append(fields, FieldError{Field: "date", Message: "is required"})
	}
	if !tod.Valid() {
		fields = append(fields, FieldError{Field: "time", Message: "must be within a single day"})
	}
	return fields
}

func validateStruct(v *validator.Validate, req any, fields []FieldError) error {
	if err := v.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		for _, fe := range verrs {
			fields = append(fields, FieldError{Field: fe.Field(), Message: describe(fe)})
		}
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func describe(fe validator.FieldError) string {
	unit := ""
	if fe.Kind() == reflect.String {
		unit = " characters"
	}
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "must be at least " + fe.Param() + unit
	case "max":
		return "must be at most " + fe.Param() + unit
	default:
		return "failed " + fe.Tag() + " validation"
	}
}
