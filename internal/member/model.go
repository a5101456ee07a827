package member

import (
	"github.com/google/uuid"

	"github.com/teamplan/teamplan/internal/palette"
)

// Member represents a row in the members table. Colors are derived from
// ColorIndex at creation time and stored alongside it.
type Member struct {
	ID         uuid.UUID
	Name       string
	ColorIndex int
	Colors     palette.Colors
}
