// Package client implements the persistence gateway over the REST API.
// Every call, success or failure, is reported to the audit recorder.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/teamplan/teamplan/internal/audit"
	"github.com/teamplan/teamplan/internal/event"
	"github.com/teamplan/teamplan/internal/member"
	"github.com/teamplan/teamplan/internal/palette"
	"github.com/teamplan/teamplan/internal/schedule"
)

// Client talks to the scheduling API and satisfies schedule.Gateway.
type Client struct {
	baseURL string
	httpc   *http.Client
	rec     audit.Recorder
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) { cl.httpc = c }
}

// WithRecorder attaches an audit recorder. Without one, operations are not
// recorded.
func WithRecorder(rec audit.Recorder) Option {
	return func(cl *Client) { cl.rec = rec }
}

// New creates a Client for the API at baseURL (e.g. "http://localhost:3111").
func New(baseURL string, opts ...Option) *Client {
	cl := &Client{
		baseURL: baseURL,
		httpc:   &http.Client{},
	}
	for _, opt := range opts {
		opt(cl)
	}
	return cl
}

var _ schedule.Gateway = (*Client)(nil)

// Wire payloads mirror the server's handler types.

type colorsPayload struct {
	BG     string `json:"bg"`
	Border string `json:"border"`
	Text   string `json:"text"`
}

type memberPayload struct {
	ID         string        `json:"id"`
	Name       string        `json:"name"`
	ColorIndex int           `json:"colorIndex"`
	Colors     colorsPayload `json:"colors"`
}

type eventPayload struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Description     string `json:"description,omitempty"`
	Start           string `json:"start"`
	End             string `json:"end"`
	EmployeeID      string `json:"employeeId"`
	BackgroundColor string `json:"backgroundColor,omitempty"`
	BorderColor     string `json:"borderColor,omitempty"`
	TextColor       string `json:"textColor,omitempty"`
}

type updateEventPayload struct {
	Start       string `json:"start"`
	End         string `json:"end"`
	Description string `json:"description"`
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// ListMembers fetches all members.
func (c *Client) ListMembers(ctx context.Context) ([]member.Member, error) {
	var payload []memberPayload
	err := c.do(ctx, http.MethodGet, "/api/members", nil, &payload)
	if err != nil {
		c.record(audit.OpQuery, "Failed to fetch members", err)
		return nil, err
	}
	c.record(audit.OpQuery, "Fetched all members", nil)

	members := make([]member.Member, 0, len(payload))
	for _, p := range payload {
		id, err := uuid.Parse(p.ID)
		if err != nil {
			return nil, fmt.Errorf("parsing member id: %w", err)
		}
		members = append(members, member.Member{
			ID:         id,
			Name:       p.Name,
			ColorIndex: p.ColorIndex,
			Colors:     palette.Colors{BG: p.Colors.BG, Border: p.Colors.Border, Text: p.Colors.Text},
		})
	}
	return members, nil
}

// CreateMember persists a new member.
func (c *Client) CreateMember(ctx context.Context, m member.Member) error {
	payload := memberPayload{
		ID:         m.ID.String(),
		Name:       m.Name,
		ColorIndex: m.ColorIndex,
		Colors:     colorsPayload{BG: m.Colors.BG, Border: m.Colors.Border, Text: m.Colors.Text},
	}
	err := c.do(ctx, http.MethodPost, "/api/members", payload, nil)
	if err != nil {
		c.record(audit.OpInsert, "Failed to create member: "+m.Name, err)
		return err
	}
	c.record(audit.OpInsert, "Created member: "+m.Name, nil)
	return nil
}

// DeleteMember removes a member; the server cascades to its events.
func (c *Client) DeleteMember(ctx context.Context, id uuid.UUID) error {
	err := c.do(ctx, http.MethodDelete, "/api/members/"+id.String(), nil, nil)
	if err != nil {
		c.record(audit.OpDelete, "Failed to delete member: "+id.String(), err)
		return err
	}
	c.record(audit.OpDelete, "Deleted member: "+id.String(), nil)
	return nil
}

// ListEvents fetches all events, enriched with their owner's colors.
func (c *Client) ListEvents(ctx context.Context) ([]event.Event, error) {
	var payload []eventPayload
	err := c.do(ctx, http.MethodGet, "/api/events", nil, &payload)
	if err != nil {
		c.record(audit.OpQuery, "Failed to fetch events", err)
		return nil, err
	}
	c.record(audit.OpQuery, "Fetched all events", nil)

	events := make([]event.Event, 0, len(payload))
	for _, p := range payload {
		e, err := fromEventPayload(p)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, nil
}

// CreateEvent persists a new event. Colors are not sent; the server derives
// them from the owner on every read.
func (c *Client) CreateEvent(ctx context.Context, e event.Event) error {
	payload := eventPayload{
		ID:          e.ID.String(),
		Title:       e.Title,
		Description: e.Description,
		Start:       e.Start.UTC().Format(time.RFC3339Nano),
		End:         e.End.UTC().Format(time.RFC3339Nano),
		EmployeeID:  e.MemberID.String(),
	}
	err := c.do(ctx, http.MethodPost, "/api/events", payload, nil)
	if err != nil {
		c.record(audit.OpInsert, "Failed to create event: "+e.Title, err)
		return err
	}
	c.record(audit.OpInsert, "Created event: "+e.Title, nil)
	return nil
}

// UpdateEvent rewrites an event's start, end, and description.
func (c *Client) UpdateEvent(ctx context.Context, id uuid.UUID, upd event.Update) error {
	payload := updateEventPayload{
		Start:       upd.Start.UTC().Format(time.RFC3339Nano),
		End:         upd.End.UTC().Format(time.RFC3339Nano),
		Description: upd.Description,
	}
	err := c.do(ctx, http.MethodPut, "/api/events/"+id.String(), payload, nil)
	if err != nil {
		c.record(audit.OpUpdate, "Failed to update event: "+id.String(), err)
		return err
	}
	c.record(audit.OpUpdate, "Updated event: "+id.String(), nil)
	return nil
}

// DeleteEvent removes an event.
func (c *Client) DeleteEvent(ctx context.Context, id uuid.UUID) error {
	err := c.do(ctx, http.MethodDelete, "/api/events/"+id.String(), nil, nil)
	if err != nil {
		c.record(audit.OpDelete, "Failed to delete event: "+id.String(), err)
		return err
	}
	c.record(audit.OpDelete, "Deleted event: "+id.String(), nil)
	return nil
}

func fromEventPayload(p eventPayload) (event.Event, error) {
	var e event.Event
	var err error
	if e.ID, err = uuid.Parse(p.ID); err != nil {
		return event.Event{}, fmt.Errorf("parsing event id: %w", err)
	}
	if e.MemberID, err = uuid.Parse(p.EmployeeID); err != nil {
		return event.Event{}, fmt.Errorf("parsing event member id: %w", err)
	}
	if e.Start, err = time.Parse(time.RFC3339Nano, p.Start); err != nil {
		return event.Event{}, fmt.Errorf("parsing event start: %w", err)
	}
	if e.End, err = time.Parse(time.RFC3339Nano, p.End); err != nil {
		return event.Event{}, fmt.Errorf("parsing event end: %w", err)
	}
	e.Title = p.Title
	e.Description = p.Description
	e.Colors = palette.Colors{BG: p.BackgroundColor, Border: p.BorderColor, Text: p.TextColor}
	return e, nil
}

// do performs one request and decodes the response envelope's data into
// out when non-nil. Transport failures map to ErrUnavailable; HTTP error
// statuses map to the gateway taxonomy.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", schedule.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("%w: decoding response: %v", schedule.ErrUnavailable, err)
	}

	if resp.StatusCode >= 400 {
		message := ""
		if env.Error != nil {
			message = env.Error.Message
		}
		return fmt.Errorf("%w: %s", statusErr(resp.StatusCode), message)
	}

	if out != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decoding response data: %w", err)
		}
	}
	return nil
}

func statusErr(status int) error {
	switch status {
	case http.StatusBadRequest:
		return schedule.ErrValidation
	case http.StatusNotFound:
		return schedule.ErrNotFound
	case http.StatusConflict:
		return schedule.ErrConflict
	default:
		return schedule.ErrUnavailable
	}
}

func (c *Client) record(op audit.Op, description string, err error) {
	if c.rec == nil {
		return
	}
	if err != nil {
		c.rec.Record(op, description, audit.OutcomeError, err.Error())
		return
	}
	c.rec.Record(op, description, audit.OutcomeSuccess, "")
}
