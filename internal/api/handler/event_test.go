package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teamplan/teamplan/internal/api/handler"
	"github.com/teamplan/teamplan/internal/event"
	"github.com/teamplan/teamplan/internal/palette"
)

// --- Mock event repository ---

type mockEventRepo struct {
	createFn func(ctx context.Context, e *event.Event) error
	listFn   func(ctx context.Context) ([]event.Event, error)
	updateFn func(ctx context.Context, id uuid.UUID, upd event.Update) error
	deleteFn func(ctx context.Context, id uuid.UUID) error
}

func (m *mockEventRepo) Create(ctx context.Context, e *event.Event) error {
	if m.createFn != nil {
		return m.createFn(ctx, e)
	}
	return nil
}

func (m *mockEventRepo) List(ctx context.Context) ([]event.Event, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return []event.Event{}, nil
}

func (m *mockEventRepo) Update(ctx context.Context, id uuid.UUID, upd event.Update) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, upd)
	}
	return nil
}

func (m *mockEventRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func sampleEventBody() map[string]interface{} {
	return map[string]interface{}{
		"id":         uuid.New().String(),
		"title":      "Alice",
		"start":      "2024-03-01T09:00:00Z",
		"end":        "2024-03-01T17:00:00Z",
		"employeeId": uuid.New().String(),
	}
}

// ===== POST /api/events =====

func TestEventCreate_Success(t *testing.T) {
	t.Parallel()

	var created *event.Event
	repo := &mockEventRepo{
		createFn: func(ctx context.Context, e *event.Event) error {
			created = e
			return nil
		},
	}
	h := handler.NewEventHandler(repo)

	body, _ := json.Marshal(sampleEventBody())
	req, w := makeChiRequest(http.MethodPost, "/api/events", body, nil)

	h.Create(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, created)
	assert.True(t, created.Start.Equal(time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)))
	assert.True(t, created.End.Equal(time.Date(2024, 3, 1, 17, 0, 0, 0, time.UTC)))
}

func TestEventCreate_MissingFields(t *testing.T) {
	t.Parallel()

	h := handler.NewEventHandler(&mockEventRepo{
		createFn: func(ctx context.Context, e *event.Event) error {
			t.Fatal("repository must not be called on validation failure")
			return nil
		},
	})

	body, _ := json.Marshal(map[string]interface{}{"title": "Alice"})
	req, w := makeChiRequest(http.MethodPost, "/api/events", body, nil)

	h.Create(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	env := parseEnvelope(t, w)
	errObj := env["error"].(map[string]interface{})
	assert.Equal(t, "VALIDATION_ERROR", errObj["code"])
}

func TestEventCreate_OwnerMissing(t *testing.T) {
	t.Parallel()

	repo := &mockEventRepo{
		createFn: func(ctx context.Context, e *event.Event) error {
			return event.ErrOwnerNotFound
		},
	}
	h := handler.NewEventHandler(repo)

	body, _ := json.Marshal(sampleEventBody())
	req, w := makeChiRequest(http.MethodPost, "/api/events", body, nil)

	h.Create(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	env := parseEnvelope(t, w)
	errObj := env["error"].(map[string]interface{})
	assert.Equal(t, "NOT_FOUND", errObj["code"])
}

// ===== GET /api/events =====

func TestEventList_EnrichedWithColors(t *testing.T) {
	t.Parallel()

	repo := &mockEventRepo{
		listFn: func(ctx context.Context) ([]event.Event, error) {
			return []event.Event{{
				ID:       uuid.New(),
				Title:    "Alice",
				Start:    time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
				End:      time.Date(2024, 3, 1, 17, 0, 0, 0, time.UTC),
				MemberID: uuid.New(),
				Colors:   palette.Default[1],
			}}, nil
		},
	}
	h := handler.NewEventHandler(repo)

	req, w := makeChiRequest(http.MethodGet, "/api/events", nil, nil)
	h.List(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	env := parseEnvelope(t, w)
	data := env["data"].([]interface{})
	require.Len(t, data, 1)
	item := data[0].(map[string]interface{})
	assert.Equal(t, "2024-03-01T09:00:00Z", item["start"])
	assert.Equal(t, "2024-03-01T17:00:00Z", item["end"])
	assert.Equal(t, palette.Default[1].BG, item["backgroundColor"])
	assert.Equal(t, palette.Default[1].Border, item["borderColor"])
	assert.Equal(t, palette.Default[1].Text, item["textColor"])
}

// ===== PUT /api/events/{id} =====

func TestEventUpdate_Success(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	var got event.Update
	repo := &mockEventRepo{
		updateFn: func(ctx context.Context, gotID uuid.UUID, upd event.Update) error {
			assert.Equal(t, id, gotID)
			got = upd
			return nil
		},
	}
	h := handler.NewEventHandler(repo)

	body, _ := json.Marshal(map[string]interface{}{
		"start":       "2024-03-02T10:00:00Z",
		"end":         "2024-03-02T12:00:00Z",
		"description": "moved",
	})
	req, w := makeChiRequest(http.MethodPut, "/api/events/"+id.String(), body, map[string]string{"id": id.String()})

	h.Update(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "moved", got.Description)
	assert.True(t, got.Start.Equal(time.Date(2024, 3, 2, 10, 0, 0, 0, time.UTC)))
}

func TestEventUpdate_MissingInstants(t *testing.T) {
	t.Parallel()

	h := handler.NewEventHandler(&mockEventRepo{})

	id := uuid.New()
	body, _ := json.Marshal(map[string]interface{}{"description": "only text"})
	req, w := makeChiRequest(http.MethodPut, "/api/events/"+id.String(), body, map[string]string{"id": id.String()})

	h.Update(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	env := parseEnvelope(t, w)
	errObj := env["error"].(map[string]interface{})
	assert.Equal(t, "VALIDATION_ERROR", errObj["code"])
}

func TestEventUpdate_NotFound(t *testing.T) {
	t.Parallel()

	repo := &mockEventRepo{
		updateFn: func(ctx context.Context, id uuid.UUID, upd event.Update) error {
			return event.ErrEventNotFound
		},
	}
	h := handler.NewEventHandler(repo)

	id := uuid.New()
	body, _ := json.Marshal(map[string]interface{}{
		"start": "2024-03-02T10:00:00Z",
		"end":   "2024-03-02T12:00:00Z",
	})
	req, w := makeChiRequest(http.MethodPut, "/api/events/"+id.String(), body, map[string]string{"id": id.String()})

	h.Update(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

// ===== DELETE /api/events/{id} =====

func TestEventDelete_Success(t *testing.T) {
	t.Parallel()

	h := handler.NewEventHandler(&mockEventRepo{})
	id := uuid.New()
	req, w := makeChiRequest(http.MethodDelete, "/api/events/"+id.String(), nil, map[string]string{"id": id.String()})

	h.Delete(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestEventDelete_NotFound(t *testing.T) {
	t.Parallel()

	repo := &mockEventRepo{
		deleteFn: func(ctx context.Context, id uuid.UUID) error {
			return event.ErrEventNotFound
		},
	}
	h := handler.NewEventHandler(repo)

	id := uuid.New()
	req, w := makeChiRequest(http.MethodDelete, "/api/events/"+id.String(), nil, map[string]string{"id": id.String()})

	h.Delete(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
