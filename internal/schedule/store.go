package schedule

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/teamplan/teamplan/internal/event"
	"github.com/teamplan/teamplan/internal/member"
	"github.com/teamplan/teamplan/internal/palette"
)

// ErrNoSelection is returned when an event is created from a range
// selection while no member is selected. No gateway call is made.
var ErrNoSelection = errors.New("no member selected")

// Selection is a raw date/time-range selection emitted by the calendar
// widget. AllDay marks a whole-month grid selection, whose End excludes the
// trailing day.
type Selection struct {
	Start  time.Time
	End    time.Time
	AllDay bool
}

// Store mirrors server state for one client session.
type Store struct {
	mu      sync.Mutex
	gw      Gateway
	surface Surface
	alloc   *palette.Allocator
	loc     *time.Location

	dayStart  string
	dayEnd    string
	warnDelay time.Duration

	members    []member.Member
	events     []event.Event
	usedColors map[int]bool
	selected   uuid.UUID

	warning   bool
	warnTimer *time.Timer

	dialog *Dialog
}

// Option configures a Store.
type Option func(*Store)

// WithSurface attaches the calendar widget capability.
func WithSurface(s Surface) Option {
	return func(st *Store) { st.surface = s }
}

// WithAllocator overrides the color allocator.
func WithAllocator(a *palette.Allocator) Option {
	return func(st *Store) { st.alloc = a }
}

// WithLocation sets the timezone used to combine calendar dates with
// times-of-day. Instants are always persisted in UTC.
func WithLocation(loc *time.Location) Option {
	return func(st *Store) { st.loc = loc }
}

// WithDayBounds sets the default start-of-day and end-of-day times (HH:MM)
// applied to whole-day range selections.
func WithDayBounds(start, end string) Option {
	return func(st *Store) {
		st.dayStart = start
		st.dayEnd = end
	}
}

// WithWarningDelay sets how long the select-a-member warning stays visible.
func WithWarningDelay(d time.Duration) Option {
	return func(st *Store) { st.warnDelay = d }
}

// NewStore creates a Store reconciling against the given gateway.
func NewStore(gw Gateway, opts ...Option) *Store {
	st := &Store{
		gw:         gw,
		surface:    noopSurface{},
		alloc:      palette.NewAllocator(nil),
		loc:        time.Local,
		dayStart:   "09:00",
		dayEnd:     "17:00",
		warnDelay:  3 * time.Second,
		usedColors: make(map[int]bool),
	}
	for _, opt := range opts {
		opt(st)
	}
	return st
}

// Load fetches members and events and seeds the mirror. Used color indices
// are rebuilt from the loaded members.
func (s *Store) Load(ctx context.Context) error {
	members, err := s.gw.ListMembers(ctx)
	if err != nil {
		return fmt.Errorf("loading members: %w", err)
	}
	events, err := s.gw.ListEvents(ctx)
	if err != nil {
		return fmt.Errorf("loading events: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.members = members
	s.events = events
	s.usedColors = make(map[int]bool, len(members))
	for _, m := range members {
		s.usedColors[m.ColorIndex] = true
	}
	return nil
}

// Members returns a copy of the mirrored members.
func (s *Store) Members() []member.Member {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]member.Member, len(s.members))
	copy(out, s.members)
	return out
}

// Events returns a copy of the mirrored events.
func (s *Store) Events() []event.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]event.Event, len(s.events))
	copy(out, s.events)
	return out
}

// AddMember creates a member with the given name, assigning an unused
// palette index. The mirror is updated only after the gateway succeeds.
func (s *Store) AddMember(ctx context.Context, name string) (member.Member, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return member.Member{}, fmt.Errorf("%w: name is required", ErrValidation)
	}

	s.mu.Lock()
	index := s.alloc.Pick(s.usedColors)
	s.mu.Unlock()

	m := member.Member{
		ID:         uuid.New(),
		Name:       name,
		ColorIndex: index,
		Colors:     s.alloc.Colors(index),
	}

	if err := s.gw.CreateMember(ctx, m); err != nil {
		return member.Member{}, fmt.Errorf("adding member: %w", err)
	}

	s.mu.Lock()
	s.members = append(s.members, m)
	s.usedColors[m.ColorIndex] = true
	s.mu.Unlock()
	return m, nil
}

// RemoveMember deletes a member. On success the member leaves the mirror,
// its color index is freed, its events are dropped (mirroring the server
// cascade), and the selection is cleared if it pointed there. On failure
// the mirror is untouched.
func (s *Store) RemoveMember(ctx context.Context, id uuid.UUID) error {
	if err := s.gw.DeleteMember(ctx, id); err != nil {
		return fmt.Errorf("removing member: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.members[:0]
	for _, m := range s.members {
		if m.ID == id {
			delete(s.usedColors, m.ColorIndex)
			continue
		}
		kept = append(kept, m)
	}
	s.members = kept

	keptEvents := s.events[:0]
	for _, e := range s.events {
		if e.MemberID != id {
			keptEvents = append(keptEvents, e)
		}
	}
	s.events = keptEvents

	if s.selected == id {
		s.selected = uuid.Nil
	}
	return nil
}

// SelectMember marks a member as the target for new events.
func (s *Store) SelectMember(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range s.members {
		if m.ID == id {
			s.selected = id
			return nil
		}
	}
	return fmt.Errorf("selecting member: %w", ErrNotFound)
}

// ClearSelection drops the current member selection.
func (s *Store) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = uuid.Nil
}

// SelectedMember returns the currently selected member, if any.
func (s *Store) SelectedMember() (member.Member, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectedLocked()
}

func (s *Store) selectedLocked() (member.Member, bool) {
	if s.selected == uuid.Nil {
		return member.Member{}, false
	}
	for _, m := range s.members {
		if m.ID == s.selected {
			return m, true
		}
	}
	return member.Member{}, false
}

// WarningVisible reports whether the select-a-member warning is showing.
func (s *Store) WarningVisible() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.warning
}

func (s *Store) showWarning() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.warning = true
	if s.warnTimer != nil {
		s.warnTimer.Stop()
	}
	s.warnTimer = time.AfterFunc(s.warnDelay, func() {
		s.mu.Lock()
		s.warning = false
		s.mu.Unlock()
	})
}

// CreateFromSelection builds an event from a raw range selection for the
// selected member. Without a selected member no gateway call is made: the
// transient warning is raised and ErrNoSelection returned. The surface's
// selection visualization is cleared in every case.
func (s *Store) CreateFromSelection(ctx context.Context, sel Selection) (event.Event, error) {
	s.mu.Lock()
	owner, ok := s.selectedLocked()
	s.mu.Unlock()

	s.surface.Unselect()

	if !ok {
		s.showWarning()
		return event.Event{}, ErrNoSelection
	}

	start, end := sel.Start, sel.End
	if sel.AllDay {
		// Whole-day ranges carry no meaningful time-of-day and exclude
		// the trailing day.
		start = s.combine(dateOf(start.In(s.loc)), s.dayStart)
		end = s.combine(dateOf(end.In(s.loc).AddDate(0, 0, -1)), s.dayEnd)
	}

	e := event.Event{
		ID:       uuid.New(),
		Title:    owner.Name,
		Start:    start,
		End:      end,
		MemberID: owner.ID,
		Colors:   owner.Colors,
	}

	if err := s.gw.CreateEvent(ctx, e); err != nil {
		return event.Event{}, fmt.Errorf("creating event: %w", err)
	}

	s.mu.Lock()
	s.events = append(s.events, e)
	s.mu.Unlock()
	return e, nil
}

// MoveEvent applies a drag or resize: the widget has already computed the
// new instants. On gateway failure the mirror is untouched and revert is
// invoked exactly once to undo the visual move.
func (s *Store) MoveEvent(ctx context.Context, id uuid.UUID, start, end time.Time, revert func()) error {
	s.mu.Lock()
	idx := s.indexOfLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		if revert != nil {
			revert()
		}
		return fmt.Errorf("moving event: %w", ErrNotFound)
	}
	description := s.events[idx].Description
	s.mu.Unlock()

	err := s.gw.UpdateEvent(ctx, id, event.Update{
		Start:       start,
		End:         end,
		Description: description,
	})
	if err != nil {
		if revert != nil {
			revert()
		}
		return fmt.Errorf("moving event: %w", err)
	}

	s.mu.Lock()
	if idx := s.indexOfLocked(id); idx >= 0 {
		s.events[idx].Start = start
		s.events[idx].End = end
	}
	s.mu.Unlock()
	return nil
}

// RemoveEvent deletes an event; the mirror drops it only on success.
func (s *Store) RemoveEvent(ctx context.Context, id uuid.UUID) error {
	if err := s.gw.DeleteEvent(ctx, id); err != nil {
		return fmt.Errorf("removing event: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.events[:0]
	for _, e := range s.events {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	s.events = kept
	return nil
}

func (s *Store) indexOfLocked(id uuid.UUID) int {
	for i := range s.events {
		if s.events[i].ID == id {
			return i
		}
	}
	return -1
}

// dateOf truncates a local time to its calendar date.
func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// combine joins a calendar date with an HH:MM time-of-day in the store's
// location. Malformed times-of-day fall back to midnight.
func (s *Store) combine(date time.Time, hhmm string) time.Time {
	hour, minute := parseClock(hhmm)
	return time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, s.loc)
}

func parseClock(hhmm string) (hour, minute int) {
	parts := strings.SplitN(hhmm, ":", 2)
	if len(parts) != 2 {
		return 0, 0
	}
	hour, _ = strconv.Atoi(parts[0])
	minute, _ = strconv.Atoi(parts[1])
	return hour, minute
}
