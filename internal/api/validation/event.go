package validation

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// CreateEventRequest mirrors the fields needed for create event validation.
type CreateEventRequest struct {
	ID         string
	Title      string
	Start      string
	End        string
	EmployeeID string
}

// UpdateEventRequest mirrors the fields needed for update event validation.
type UpdateEventRequest struct {
	Start string
	End   string
}

// ValidateCreateEventRequest validates the fields of a create event request.
// Instants must be ISO-8601; end > start is expected but deliberately not
// enforced.
func ValidateCreateEventRequest(req CreateEventRequest) []FieldError {
	var errs []FieldError

	if req.ID == "" {
		errs = append(errs, FieldError{Field: "id", Message: "id is required"})
	} else if _, err := uuid.Parse(req.ID); err != nil {
		errs = append(errs, FieldError{Field: "id", Message: "id must be a valid UUID"})
	}

	if strings.TrimSpace(req.Title) == "" {
		errs = append(errs, FieldError{Field: "title", Message: "title is required"})
	}

	errs = append(errs, validateInstant("start", req.Start)...)
	errs = append(errs, validateInstant("end", req.End)...)

	if req.EmployeeID == "" {
		errs = append(errs, FieldError{Field: "employeeId", Message: "employeeId is required"})
	} else if _, err := uuid.Parse(req.EmployeeID); err != nil {
		errs = append(errs, FieldError{Field: "employeeId", Message: "employeeId must be a valid UUID"})
	}

	return errs
}

// ValidateUpdateEventRequest validates the fields of an update event request.
func ValidateUpdateEventRequest(req UpdateEventRequest) []FieldError {
	var errs []FieldError
	errs = append(errs, validateInstant("start", req.Start)...)
	errs = append(errs, validateInstant("end", req.End)...)
	return errs
}

func validateInstant(field, value string) []FieldError {
	if value == "" {
		return []FieldError{{Field: field, Message: field + " is required"}}
	}
	if _, err := time.Parse(time.RFC3339Nano, value); err != nil {
		return []FieldError{{Field: field, Message: field + " must be an ISO-8601 instant"}}
	}
	return nil
}
