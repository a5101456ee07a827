package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/teamplan/teamplan/internal/api/middleware"
	"github.com/teamplan/teamplan/internal/api/response"
	"github.com/teamplan/teamplan/internal/api/validation"
	"github.com/teamplan/teamplan/internal/event"
)

type createEventRequest struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Start       string `json:"start"`
	End         string `json:"end"`
	EmployeeID  string `json:"employeeId"`
}

type updateEventRequest struct {
	Start       string `json:"start"`
	End         string `json:"end"`
	Description string `json:"description"`
}

type eventResponse struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Description     string `json:"description,omitempty"`
	Start           string `json:"start"`
	End             string `json:"end"`
	EmployeeID      string `json:"employeeId"`
	BackgroundColor string `json:"backgroundColor"`
	BorderColor     string `json:"borderColor"`
	TextColor       string `json:"textColor"`
}

func toEventResponse(e *event.Event) eventResponse {
	return eventResponse{
		ID:              e.ID.String(),
		Title:           e.Title,
		Description:     e.Description,
		Start:           e.Start.UTC().Format(time.RFC3339Nano),
		End:             e.End.UTC().Format(time.RFC3339Nano),
		EmployeeID:      e.MemberID.String(),
		BackgroundColor: e.Colors.BG,
		BorderColor:     e.Colors.Border,
		TextColor:       e.Colors.Text,
	}
}

// EventHandler handles event CRUD endpoints.
type EventHandler struct {
	repo event.Repository
}

// NewEventHandler creates a new EventHandler.
func NewEventHandler(repo event.Repository) *EventHandler {
	return &EventHandler{repo: repo}
}

// Create handles POST /api/events.
func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req createEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_JSON", "Request body must be valid JSON", requestID)
		return
	}

	fieldErrors := validation.ValidateCreateEventRequest(validation.CreateEventRequest{
		ID:         req.ID,
		Title:      req.Title,
		Start:      req.Start,
		End:        req.End,
		EmployeeID: req.EmployeeID,
	})
	if len(fieldErrors) > 0 {
		response.ErrWithDetails(w, http.StatusBadRequest, "VALIDATION_ERROR", "Input validation failed", fieldErrors, requestID)
		return
	}

	id, _ := uuid.Parse(req.ID)
	memberID, _ := uuid.Parse(req.EmployeeID)
	start, _ := time.Parse(time.RFC3339Nano, req.Start)
	end, _ := time.Parse(time.RFC3339Nano, req.End)

	e := &event.Event{
		ID:          id,
		Title:       req.Title,
		Description: req.Description,
		Start:       start,
		End:         end,
		MemberID:    memberID,
	}

	if err := h.repo.Create(r.Context(), e); err != nil {
		if errors.Is(err, event.ErrOwnerNotFound) {
			response.Err(w, http.StatusNotFound, "NOT_FOUND", "Owning member not found", requestID)
			return
		}
		slog.Error("failed to create event", "error", err)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create event", requestID)
		return
	}

	response.Success(w, http.StatusCreated, statusResponse{Success: true}, requestID)
}

// List handles GET /api/events. Items carry the owning member's current
// colors; events whose owner is gone are omitted by the repository join.
func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	events, err := h.repo.List(r.Context())
	if err != nil {
		slog.Error("failed to list events", "error", err)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list events", requestID)
		return
	}

	items := make([]eventResponse, 0, len(events))
	for i := range events {
		items = append(items, toEventResponse(&events[i]))
	}

	response.Success(w, http.StatusOK, items, requestID)
}

// Update handles PUT /api/events/{id}.
func (h *EventHandler) Update(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	idStr := chi.URLParam(r, "id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_ID", "id must be a valid UUID", requestID)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req updateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_JSON", "Request body must be valid JSON", requestID)
		return
	}

	fieldErrors := validation.ValidateUpdateEventRequest(validation.UpdateEventRequest{
		Start: req.Start,
		End:   req.End,
	})
	if len(fieldErrors) > 0 {
		response.ErrWithDetails(w, http.StatusBadRequest, "VALIDATION_ERROR", "Input validation failed", fieldErrors, requestID)
		return
	}

	start, _ := time.Parse(time.RFC3339Nano, req.Start)
	end, _ := time.Parse(time.RFC3339Nano, req.End)

	err = h.repo.Update(r.Context(), id, event.Update{
		Start:       start,
		End:         end,
		Description: req.Description,
	})
	if err != nil {
		if errors.Is(err, event.ErrEventNotFound) {
			response.Err(w, http.StatusNotFound, "NOT_FOUND", "Event not found", requestID)
			return
		}
		slog.Error("failed to update event", "error", err, "id", id)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update event", requestID)
		return
	}

	response.Success(w, http.StatusOK, statusResponse{Success: true}, requestID)
}

// Delete handles DELETE /api/events/{id}.
func (h *EventHandler) Delete(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	idStr := chi.URLParam(r, "id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_ID", "id must be a valid UUID", requestID)
		return
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, event.ErrEventNotFound) {
			response.Err(w, http.StatusNotFound, "NOT_FOUND", "Event not found", requestID)
			return
		}
		slog.Error("failed to delete event", "error", err, "id", id)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete event", requestID)
		return
	}

	response.Success(w, http.StatusOK, statusResponse{Success: true}, requestID)
}
