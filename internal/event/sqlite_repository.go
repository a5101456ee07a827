package event

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

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

// Instants are stored as RFC 3339 UTC text so they round-trip exactly.
func encodeInstant(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func decodeInstant(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}

// Create inserts a new event record. Returns ErrOwnerNotFound when the
// owning member does not exist (FK violation).
func (r *SQLiteRepository) Create(ctx context.Context, e *Event) error {
	query := `
		INSERT INTO events (id, title, description, "start", "end", member_id)
		VALUES (?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		e.ID.String(), e.Title, e.Description,
		encodeInstant(e.Start), encodeInstant(e.End), e.MemberID.String())
	if err != nil {
		var se *sqlite.Error
		if errors.As(err, &se) {
			switch se.Code() {
			case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY, sqlite3.SQLITE_CONSTRAINT:
				return ErrOwnerNotFound
			case sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3.SQLITE_CONSTRAINT_UNIQUE:
				return fmt.Errorf("inserting event: duplicate id %s", e.ID)
			}
		}
		return fmt.Errorf("inserting event: %w", err)
	}

	return nil
}

// List retrieves all events joined with their owner's current colors. The
// inner join drops events without an owner, mirroring the cascade rule.
func (r *SQLiteRepository) List(ctx context.Context) ([]Event, error) {
	query := `
		SELECT e.id, e.title, e.description, e."start", e."end", e.member_id,
		       m.bg_color, m.border_color, m.text_color
		FROM events e
		INNER JOIN members m ON m.id = e.member_id
		ORDER BY e."start" ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var (
			e                  Event
			rawID, rawMemberID string
			rawStart, rawEnd   string
			description        sql.NullString
		)
		err := rows.Scan(&rawID, &e.Title, &description, &rawStart, &rawEnd, &rawMemberID,
			&e.Colors.BG, &e.Colors.Border, &e.Colors.Text)
		if err != nil {
			return nil, fmt.Errorf("scanning event row: %w", err)
		}

		e.Description = description.String
		if e.ID, err = uuid.Parse(rawID); err != nil {
			return nil, fmt.Errorf("parsing event id: %w", err)
		}
		if e.MemberID, err = uuid.Parse(rawMemberID); err != nil {
			return nil, fmt.Errorf("parsing event member id: %w", err)
		}
		if e.Start, err = decodeInstant(rawStart); err != nil {
			return nil, fmt.Errorf("parsing event start: %w", err)
		}
		if e.End, err = decodeInstant(rawEnd); err != nil {
			return nil, fmt.Errorf("parsing event end: %w", err)
		}

		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating event rows: %w", err)
	}

	if events == nil {
		events = []Event{}
	}

	return events, nil
}

// Update rewrites an event's start, end, and description.
func (r *SQLiteRepository) Update(ctx context.Context, id uuid.UUID, upd Update) error {
	query := `UPDATE events SET "start" = ?, "end" = ?, description = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query,
		encodeInstant(upd.Start), encodeInstant(upd.End), upd.Description, id.String())
	if err != nil {
		return fmt.Errorf("updating event: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating event: %w", err)
	}
	if affected == 0 {
		return ErrEventNotFound
	}

	return nil
}

// Delete removes an event by its UUID.
func (r *SQLiteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM events WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, id.String())
	if err != nil {
		return fmt.Errorf("deleting event: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting event: %w", err)
	}
	if affected == 0 {
		return ErrEventNotFound
	}

	return nil
}
