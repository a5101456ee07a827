package validation

import (
	"strings"

	"github.com/google/uuid"
)

// FieldError describes a single invalid request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ColorsPayload mirrors the colors object of a create member request.
type ColorsPayload struct {
	BG     string
	Border string
	Text   string
}

// CreateMemberRequest mirrors the fields needed for create member validation.
type CreateMemberRequest struct {
	ID         string
	Name       string
	ColorIndex *int
	Colors     *ColorsPayload
}

// ValidateCreateMemberRequest validates the fields of a create member request.
func ValidateCreateMemberRequest(req CreateMemberRequest) []FieldError {
	var errs []FieldError

	if req.ID == "" {
		errs = append(errs, FieldError{Field: "id", Message: "id is required"})
	} else if _, err := uuid.Parse(req.ID); err != nil {
		errs = append(errs, FieldError{Field: "id", Message: "id must be a valid UUID"})
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		errs = append(errs, FieldError{Field: "name", Message: "name is required"})
	} else if len(name) > 255 {
		errs = append(errs, FieldError{Field: "name", Message: "name must be at most 255 characters"})
	}

	if req.ColorIndex == nil {
		errs = append(errs, FieldError{Field: "colorIndex", Message: "colorIndex is required"})
	} else if *req.ColorIndex < 0 {
		errs = append(errs, FieldError{Field: "colorIndex", Message: "colorIndex must not be negative"})
	}

	if req.Colors == nil {
		errs = append(errs, FieldError{Field: "colors", Message: "colors is required"})
	} else {
		if req.Colors.BG == "" {
			errs = append(errs, FieldError{Field: "colors.bg", Message: "colors.bg is required"})
		}
		if req.Colors.Border == "" {
			errs = append(errs, FieldError{Field: "colors.border", Message: "colors.border is required"})
		}
		if req.Colors.Text == "" {
			errs = append(errs, FieldError{Field: "colors.text", Message: "colors.text is required"})
		}
	}

	return errs
}
