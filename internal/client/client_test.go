package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teamplan/teamplan/internal/audit"
	"github.com/teamplan/teamplan/internal/client"
	"github.com/teamplan/teamplan/internal/event"
	"github.com/teamplan/teamplan/internal/member"
	"github.com/teamplan/teamplan/internal/palette"
	"github.com/teamplan/teamplan/internal/schedule"
)

func envelopeJSON(data any) string {
	buf, _ := json.Marshal(map[string]any{"data": data, "error": nil})
	return string(buf)
}

func errorJSON(code, message string) string {
	buf, _ := json.Marshal(map[string]any{
		"data":  nil,
		"error": map[string]string{"code": code, "message": message},
	})
	return string(buf)
}

func stubServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestListMembers_DecodesPayload(t *testing.T) {
	id := uuid.New()
	srv := stubServer(t, http.StatusOK, envelopeJSON([]map[string]any{{
		"id":         id.String(),
		"name":       "Alice",
		"colorIndex": 2,
		"colors": map[string]string{
			"bg":     palette.Default[2].BG,
			"border": palette.Default[2].Border,
			"text":   palette.Default[2].Text,
		},
	}}))

	c := client.New(srv.URL)
	members, err := c.ListMembers(context.Background())
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, id, members[0].ID)
	assert.Equal(t, "Alice", members[0].Name)
	assert.Equal(t, palette.Default[2], members[0].Colors)
}

func TestListEvents_DecodesInstants(t *testing.T) {
	srv := stubServer(t, http.StatusOK, envelopeJSON([]map[string]any{{
		"id":              uuid.New().String(),
		"title":           "Alice",
		"start":           "2024-03-01T09:00:00Z",
		"end":             "2024-03-01T17:00:00Z",
		"employeeId":      uuid.New().String(),
		"backgroundColor": palette.Default[0].BG,
		"borderColor":     palette.Default[0].Border,
		"textColor":       palette.Default[0].Text,
	}}))

	c := client.New(srv.URL)
	events, err := c.ListEvents(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.True(t, events[0].Start.Equal(time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)))
	assert.True(t, events[0].End.Equal(time.Date(2024, 3, 1, 17, 0, 0, 0, time.UTC)))
	assert.Equal(t, palette.Default[0], events[0].Colors)
}

func TestStatusMapping(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{"validation", http.StatusBadRequest, errorJSON("VALIDATION_ERROR", "Input validation failed"), schedule.ErrValidation},
		{"not found", http.StatusNotFound, errorJSON("NOT_FOUND", "Member not found"), schedule.ErrNotFound},
		{"conflict", http.StatusConflict, errorJSON("DUPLICATE_ID", "duplicate"), schedule.ErrConflict},
		{"server error", http.StatusInternalServerError, errorJSON("INTERNAL_ERROR", "boom"), schedule.ErrUnavailable},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := stubServer(t, tc.status, tc.body)
			c := client.New(srv.URL)

			err := c.DeleteMember(context.Background(), uuid.New())
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestTransportFailure_MapsToUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing listening anymore

	c := client.New(srv.URL)
	err := c.CreateMember(context.Background(), member.Member{ID: uuid.New(), Name: "Alice"})
	assert.ErrorIs(t, err, schedule.ErrUnavailable)
}

func TestCreateEvent_SendsNoColors(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(envelopeJSON(map[string]bool{"success": true})))
	}))
	t.Cleanup(srv.Close)

	c := client.New(srv.URL)
	err := c.CreateEvent(context.Background(), event.Event{
		ID:       uuid.New(),
		Title:    "Alice",
		Start:    time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
		End:      time.Date(2024, 3, 1, 17, 0, 0, 0, time.UTC),
		MemberID: uuid.New(),
		Colors:   palette.Default[0],
	})
	require.NoError(t, err)

	assert.Equal(t, "2024-03-01T09:00:00Z", got["start"])
	assert.NotContains(t, got, "backgroundColor", "colors are derived by the server on read")
}

func TestOperationsAreRecorded(t *testing.T) {
	srv := stubServer(t, http.StatusOK, envelopeJSON([]any{}))
	log := audit.NewLog()
	c := client.New(srv.URL, client.WithRecorder(log))

	_, err := c.ListMembers(context.Background())
	require.NoError(t, err)

	err = c.DeleteEvent(context.Background(), uuid.New())
	require.NoError(t, err)

	entries := log.Recent()
	require.Len(t, entries, 2)
	assert.Equal(t, audit.OpQuery, entries[0].Op)
	assert.Equal(t, audit.OutcomeSuccess, entries[0].Outcome)
	assert.Equal(t, audit.OpDelete, entries[1].Op)
}

func TestFailedOperationRecordsError(t *testing.T) {
	srv := stubServer(t, http.StatusNotFound, errorJSON("NOT_FOUND", "Event not found"))
	log := audit.NewLog()
	c := client.New(srv.URL, client.WithRecorder(log))

	err := c.DeleteEvent(context.Background(), uuid.New())
	require.Error(t, err)

	entries := log.Recent()
	require.Len(t, entries, 1)
	assert.Equal(t, audit.OutcomeError, entries[0].Outcome)
	assert.NotEmpty(t, entries[0].Err)
}
