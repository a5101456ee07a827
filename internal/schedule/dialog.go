package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/teamplan/teamplan/internal/event"
)

const (
	dateLayout  = "2006-01-02"
	clockLayout = "15:04"
)

// Dialog is the edit dialog's transient state: the event's start and end
// decomposed into a calendar date and a 24-hour time-of-day, plus its
// description. Date and time fields are edited independently.
type Dialog struct {
	EventID     uuid.UUID
	StartDate   string
	StartTime   string
	EndDate     string
	EndTime     string
	Description string
}

// OpenDialog moves the dialog Closed -> Open, pre-populated from the
// clicked event. Opening over an already-open dialog replaces it.
func (s *Store) OpenDialog(eventID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOfLocked(eventID)
	if idx < 0 {
		return fmt.Errorf("opening dialog: %w", ErrNotFound)
	}
	e := s.events[idx]

	start := e.Start.In(s.loc)
	end := e.End.In(s.loc)
	s.dialog = &Dialog{
		EventID:     e.ID,
		StartDate:   start.Format(dateLayout),
		StartTime:   start.Format(clockLayout),
		EndDate:     end.Format(dateLayout),
		EndTime:     end.Format(clockLayout),
		Description: e.Description,
	}
	return nil
}

// Dialog returns a copy of the open dialog state, if any.
func (s *Store) Dialog() (Dialog, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dialog == nil {
		return Dialog{}, false
	}
	return *s.dialog, true
}

// SetDialogStartDate changes the start date, preserving the entered
// time-of-day.
func (s *Store) SetDialogStartDate(date string) {
	s.setDialogField(func(d *Dialog) { d.StartDate = date })
}

// SetDialogStartTime changes the start time-of-day, preserving the date.
func (s *Store) SetDialogStartTime(clock string) {
	s.setDialogField(func(d *Dialog) { d.StartTime = clock })
}

// SetDialogEndDate changes the end date, preserving the entered time-of-day.
func (s *Store) SetDialogEndDate(date string) { s.setDialogField(func(d *Dialog) { d.EndDate = date }) }

// SetDialogEndTime changes the end time-of-day, preserving the date.
func (s *Store) SetDialogEndTime(clock string) {
	s.setDialogField(func(d *Dialog) { d.EndTime = clock })
}

// SetDialogDescription replaces the dialog's description text.
func (s *Store) SetDialogDescription(text string) {
	s.setDialogField(func(d *Dialog) { d.Description = text })
}

func (s *Store) setDialogField(apply func(*Dialog)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dialog != nil {
		apply(s.dialog)
	}
}

// CancelDialog moves Open -> Closed, discarding edits.
func (s *Store) CancelDialog() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dialog = nil
}

// SaveDialog recombines the possibly independently edited date and time
// fields into instants and updates the event. On success the mirror is
// updated and the dialog closes; on failure both dialog and mirror are
// left unchanged.
func (s *Store) SaveDialog(ctx context.Context) error {
	s.mu.Lock()
	if s.dialog == nil {
		s.mu.Unlock()
		return fmt.Errorf("saving dialog: %w", ErrNotFound)
	}
	d := *s.dialog
	s.mu.Unlock()

	start, err := s.recombine(d.StartDate, d.StartTime)
	if err != nil {
		return fmt.Errorf("saving dialog: %w: %v", ErrValidation, err)
	}
	end, err := s.recombine(d.EndDate, d.EndTime)
	if err != nil {
		return fmt.Errorf("saving dialog: %w: %v", ErrValidation, err)
	}

	err = s.gw.UpdateEvent(ctx, d.EventID, event.Update{
		Start:       start,
		End:         end,
		Description: d.Description,
	})
	if err != nil {
		return fmt.Errorf("saving dialog: %w", err)
	}

	s.mu.Lock()
	if idx := s.indexOfLocked(d.EventID); idx >= 0 {
		s.events[idx].Start = start
		s.events[idx].End = end
		s.events[idx].Description = d.Description
	}
	s.dialog = nil
	s.mu.Unlock()
	return nil
}

// recombine parses a date and a time-of-day in the store's location and
// joins them into one instant.
func (s *Store) recombine(date, clock string) (time.Time, error) {
	day, err := time.ParseInLocation(dateLayout, date, s.loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing date %q: %w", date, err)
	}
	tod, err := time.Parse(clockLayout, clock)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing time %q: %w", clock, err)
	}
	return time.Date(day.Year(), day.Month(), day.Day(), tod.Hour(), tod.Minute(), 0, 0, s.loc), nil
}
