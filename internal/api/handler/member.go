package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/teamplan/teamplan/internal/api/middleware"
	"github.com/teamplan/teamplan/internal/api/response"
	"github.com/teamplan/teamplan/internal/api/validation"
	"github.com/teamplan/teamplan/internal/member"
	"github.com/teamplan/teamplan/internal/palette"
)

type colorsPayload struct {
	BG     string `json:"bg"`
	Border string `json:"border"`
	Text   string `json:"text"`
}

type createMemberRequest struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	ColorIndex *int           `json:"colorIndex"`
	Colors     *colorsPayload `json:"colors"`
}

type memberResponse struct {
	ID         string        `json:"id"`
	Name       string        `json:"name"`
	ColorIndex int           `json:"colorIndex"`
	Colors     colorsPayload `json:"colors"`
}

type statusResponse struct {
	Success bool `json:"success"`
}

func toMemberResponse(m *member.Member) memberResponse {
	return memberResponse{
		ID:         m.ID.String(),
		Name:       m.Name,
		ColorIndex: m.ColorIndex,
		Colors: colorsPayload{
			BG:     m.Colors.BG,
			Border: m.Colors.Border,
			Text:   m.Colors.Text,
		},
	}
}

// MemberHandler handles member CRUD endpoints.
type MemberHandler struct {
	repo member.Repository
}

// NewMemberHandler creates a new MemberHandler.
func NewMemberHandler(repo member.Repository) *MemberHandler {
	return &MemberHandler{repo: repo}
}

// Create handles POST /api/members.
func (h *MemberHandler) Create(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req createMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_JSON", "Request body must be valid JSON", requestID)
		return
	}

	var colors *validation.ColorsPayload
	if req.Colors != nil {
		colors = &validation.ColorsPayload{BG: req.Colors.BG, Border: req.Colors.Border, Text: req.Colors.Text}
	}
	fieldErrors := validation.ValidateCreateMemberRequest(validation.CreateMemberRequest{
		ID:         req.ID,
		Name:       req.Name,
		ColorIndex: req.ColorIndex,
		Colors:     colors,
	})
	if len(fieldErrors) > 0 {
		response.ErrWithDetails(w, http.StatusBadRequest, "VALIDATION_ERROR", "Input validation failed", fieldErrors, requestID)
		return
	}

	id, _ := uuid.Parse(req.ID)
	m := &member.Member{
		ID:         id,
		Name:       req.Name,
		ColorIndex: *req.ColorIndex,
		Colors: palette.Colors{
			BG:     req.Colors.BG,
			Border: req.Colors.Border,
			Text:   req.Colors.Text,
		},
	}

	if err := h.repo.Create(r.Context(), m); err != nil {
		if errors.Is(err, member.ErrDuplicateMemberID) {
			response.Err(w, http.StatusConflict, "DUPLICATE_ID", fmt.Sprintf("A member with id %q already exists", req.ID), requestID)
			return
		}
		slog.Error("failed to create member", "error", err)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create member", requestID)
		return
	}

	response.Success(w, http.StatusCreated, toMemberResponse(m), requestID)
}

// List handles GET /api/members.
func (h *MemberHandler) List(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	members, err := h.repo.List(r.Context())
	if err != nil {
		slog.Error("failed to list members", "error", err)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list members", requestID)
		return
	}

	items := make([]memberResponse, 0, len(members))
	for i := range members {
		items = append(items, toMemberResponse(&members[i]))
	}

	response.Success(w, http.StatusOK, items, requestID)
}

// Delete handles DELETE /api/members/{id}. The store's cascade rule removes
// the member's events in the same statement.
func (h *MemberHandler) Delete(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	idStr := chi.URLParam(r, "id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_ID", "id must be a valid UUID", requestID)
		return
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, member.ErrMemberNotFound) {
			response.Err(w, http.StatusNotFound, "NOT_FOUND", "Member not found", requestID)
			return
		}
		slog.Error("failed to delete member", "error", err, "id", id)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete member", requestID)
		return
	}

	response.Success(w, http.StatusOK, statusResponse{Success: true}, requestID)
}
