package validation_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/teamplan/teamplan/internal/api/validation"
)

func validCreateEvent() validation.CreateEventRequest {
	return validation.CreateEventRequest{
		ID:         uuid.New().String(),
		Title:      "Alice",
		Start:      "2024-03-01T09:00:00Z",
		End:        "2024-03-01T17:00:00Z",
		EmployeeID: uuid.New().String(),
	}
}

func TestValidateCreateEventRequest_Valid(t *testing.T) {
	assert.Empty(t, validation.ValidateCreateEventRequest(validCreateEvent()))
}

func TestValidateCreateEventRequest_EndBeforeStartIsAccepted(t *testing.T) {
	req := validCreateEvent()
	req.Start = "2024-03-01T17:00:00Z"
	req.End = "2024-03-01T09:00:00Z"
	assert.Empty(t, validation.ValidateCreateEventRequest(req), "end > start is expected but not enforced")
}

func TestValidateCreateEventRequest_MalformedInstant(t *testing.T) {
	req := validCreateEvent()
	req.Start = "March 1st, 9am"
	errs := validation.ValidateCreateEventRequest(req)
	assert.Len(t, errs, 1)
	assert.Equal(t, "start", errs[0].Field)
}

func TestValidateCreateEventRequest_MissingOwner(t *testing.T) {
	req := validCreateEvent()
	req.EmployeeID = ""
	errs := validation.ValidateCreateEventRequest(req)
	assert.Len(t, errs, 1)
	assert.Equal(t, "employeeId", errs[0].Field)
}

func TestValidateUpdateEventRequest_MissingInstants(t *testing.T) {
	errs := validation.ValidateUpdateEventRequest(validation.UpdateEventRequest{})
	assert.Len(t, errs, 2)
}

func TestValidateUpdateEventRequest_Valid(t *testing.T) {
	errs := validation.ValidateUpdateEventRequest(validation.UpdateEventRequest{
		Start: "2024-03-02T10:00:00Z",
		End:   "2024-03-02T12:00:00Z",
	})
	assert.Empty(t, errs)
}
