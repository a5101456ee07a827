// Package audit keeps a bounded in-memory log of gateway operations for
// developer-facing diagnostics. It is advisory only and never participates
// in correctness.
package audit

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// MaxEntries is how many records the log retains before truncating the
// oldest.
const MaxEntries = 50

// Op classifies an operation against the backing store.
type Op string

const (
	OpQuery  Op = "query"
	OpInsert Op = "insert"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

// Outcome records whether an operation succeeded.
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeError   Outcome = "error"
)

// Entry is one recorded operation.
type Entry struct {
	ID          uuid.UUID
	Op          Op
	Description string
	Outcome     Outcome
	Err         string
	At          time.Time
}

// Recorder receives operation records. Implementations must be safe for
// concurrent use.
type Recorder interface {
	Record(op Op, description string, outcome Outcome, errText string)
}

// Log is a Recorder backed by a bounded ring of the most recent entries.
type Log struct {
	mu      sync.Mutex
	entries []Entry
	now     func() time.Time
}

// NewLog returns an empty Log.
func NewLog() *Log {
	return &Log{now: time.Now}
}

// Record appends an entry, dropping the oldest once MaxEntries is exceeded.
func (l *Log) Record(op Op, description string, outcome Outcome, errText string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append(l.entries, Entry{
		ID:          uuid.New(),
		Op:          op,
		Description: description,
		Outcome:     outcome,
		Err:         errText,
		At:          l.now().UTC(),
	})
	if len(l.entries) > MaxEntries {
		l.entries = l.entries[len(l.entries)-MaxEntries:]
	}
}

// Recent returns a copy of the retained entries, oldest first.
func (l *Log) Recent() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}
