package event

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrEventNotFound is returned when an event record is not found.
var ErrEventNotFound = errors.New("event not found")

// ErrOwnerNotFound is returned when the owning member of a new event does
// not exist.
var ErrOwnerNotFound = errors.New("owning member not found")

// Repository provides CRUD operations on the events table.
type Repository interface {
	Create(ctx context.Context, e *Event) error
	// List returns all events joined with their current owner's colors.
	// Events whose owner is missing are omitted.
	List(ctx context.Context) ([]Event, error)
	Update(ctx context.Context, id uuid.UUID, upd Update) error
	Delete(ctx context.Context, id uuid.UUID) error
}
