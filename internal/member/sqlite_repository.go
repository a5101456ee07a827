package member

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	sqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// SQLiteRepository implements Repository over a database/sql handle.
type SQLiteRepository struct {
	db *sql.DB
}

// NewRepository creates a new Repository backed by the given database.
func NewRepository(db *sql.DB) Repository {
	return &SQLiteRepository{db: db}
}

// Create inserts a new member record.
func (r *SQLiteRepository) Create(ctx context.Context, m *Member) error {
	query := `
		INSERT INTO members (id, name, color_index, bg_color, border_color, text_color)
		VALUES (?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		m.ID.String(), m.Name, m.ColorIndex, m.Colors.BG, m.Colors.Border, m.Colors.Text)
	if err != nil {
		if isConstraintErr(err, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3.SQLITE_CONSTRAINT_UNIQUE) {
			return ErrDuplicateMemberID
		}
		return fmt.Errorf("inserting member: %w", err)
	}

	return nil
}

// GetByID retrieves a single member by its UUID.
func (r *SQLiteRepository) GetByID(ctx context.Context, id uuid.UUID) (*Member, error) {
	query := `
		SELECT id, name, color_index, bg_color, border_color, text_color
		FROM members
		WHERE id = ?`

	var (
		m     Member
		rawID string
	)
	err := r.db.QueryRowContext(ctx, query, id.String()).Scan(
		&rawID, &m.Name, &m.ColorIndex, &m.Colors.BG, &m.Colors.Border, &m.Colors.Text)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("querying member: %w", err)
	}

	m.ID, err = uuid.Parse(rawID)
	if err != nil {
		return nil, fmt.Errorf("parsing member id: %w", err)
	}

	return &m, nil
}

// List retrieves all members in insertion order.
func (r *SQLiteRepository) List(ctx context.Context) ([]Member, error) {
	query := `
		SELECT id, name, color_index, bg_color, border_color, text_color
		FROM members
		ORDER BY rowid ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing members: %w", err)
	}
	defer rows.Close()

	var members []Member
	for rows.Next() {
		var (
			m     Member
			rawID string
		)
		err := rows.Scan(&rawID, &m.Name, &m.ColorIndex, &m.Colors.BG, &m.Colors.Border, &m.Colors.Text)
		if err != nil {
			return nil, fmt.Errorf("scanning member row: %w", err)
		}
		m.ID, err = uuid.Parse(rawID)
		if err != nil {
			return nil, fmt.Errorf("parsing member id: %w", err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating member rows: %w", err)
	}

	if members == nil {
		members = []Member{}
	}

	return members, nil
}

// Delete removes a member by its UUID. The ON DELETE CASCADE rule on the
// events table removes the member's events.
func (r *SQLiteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM members WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, id.String())
	if err != nil {
		return fmt.Errorf("deleting member: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting member: %w", err)
	}
	if affected == 0 {
		return ErrMemberNotFound
	}

	return nil
}

func isConstraintErr(err error, codes ...int) bool {
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return false
	}
	for _, code := range codes {
		if se.Code() == code {
			return true
		}
	}
	return false
}
