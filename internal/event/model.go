package event

import (
	"time"

	"github.com/google/uuid"

	"github.com/teamplan/teamplan/internal/palette"
)

// Event represents a row in the events table. Colors are not persisted on
// the row; listings populate them from the current owner so a member's
// colors paint all of its events at read time.
type Event struct {
	ID          uuid.UUID
	Title       string
	Description string
	Start       time.Time
	End         time.Time
	MemberID    uuid.UUID
	Colors      palette.Colors
}

// Update carries the mutable fields of an event.
type Update struct {
	Start       time.Time
	End         time.Time
	Description string
}
