// Package schedule keeps a client-side mirror of members and events
// synchronized with the persistence gateway using a request-then-apply
// discipline: the mirror changes only after the gateway reports success.
package schedule

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/teamplan/teamplan/internal/event"
	"github.com/teamplan/teamplan/internal/member"
)

// Gateway failure taxonomy. None of these are retried automatically.
var (
	// ErrValidation means the gateway rejected missing or malformed
	// required fields.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound means a referenced member or event is absent.
	ErrNotFound = errors.New("not found")
	// ErrConflict means a create collided with an existing identity.
	ErrConflict = errors.New("conflict")
	// ErrUnavailable means the gateway could not be reached.
	ErrUnavailable = errors.New("gateway unavailable")
)

// Gateway is the persistence contract the store reconciles against.
// Operations are not cancelable once issued and carry no store-imposed
// timeout; failure is signaled only by the returned error.
type Gateway interface {
	ListMembers(ctx context.Context) ([]member.Member, error)
	CreateMember(ctx context.Context, m member.Member) error
	DeleteMember(ctx context.Context, id uuid.UUID) error

	ListEvents(ctx context.Context) ([]event.Event, error)
	CreateEvent(ctx context.Context, e event.Event) error
	UpdateEvent(ctx context.Context, id uuid.UUID, upd event.Update) error
	DeleteEvent(ctx context.Context, id uuid.UUID) error
}

// Surface is the calendar widget capability the store drives. It holds no
// domain state of its own.
type Surface interface {
	// Unselect clears the widget's transient selection visualization.
	Unselect()
}

type noopSurface struct{}

func (noopSurface) Unselect() {}
