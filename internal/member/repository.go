package member

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrMemberNotFound is returned when a member record is not found.
var ErrMemberNotFound = errors.New("member not found")

// ErrDuplicateMemberID is returned when a member with the same id already
// exists.
var ErrDuplicateMemberID = errors.New("member id already exists")

// Repository provides CRUD operations on the members table.
type Repository interface {
	Create(ctx context.Context, m *Member) error
	GetByID(ctx context.Context, id uuid.UUID) (*Member, error)
	List(ctx context.Context) ([]Member, error)
	// Delete removes a member; the store's foreign-key cascade removes the
	// member's events in the same statement.
	Delete(ctx context.Context, id uuid.UUID) error
}
