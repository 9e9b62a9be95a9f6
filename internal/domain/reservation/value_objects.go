package reservation

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrEndBeforeStart = errors.New("end date must be on or after start date")
	ErrZeroStartDate  = errors.New("start date is required")
	ErrNotesTooLong   = errors.New("notes exceed maximum length")
)

const MaxNotesLength = 500

// DateRange is the inclusive, date-only window a reservation occupies.
// Time-of-day is dropped on construction. An absent end date means a
// single-day hold: the effective end equals the start.
type DateRange struct {
	start time.Time
	end   *time.Time
}

func NewDateRange(start time.Time, end *time.Time) (DateRange, error) {
	if start.IsZero() {
		return DateRange{}, ErrZeroStartDate
	}

	s := dateOnly(start)
	if end == nil {
		return DateRange{start: s}, nil
	}

	e := dateOnly(*end)
	if e.Before(s) {
		return DateRange{}, ErrEndBeforeStart
	}
	return DateRange{start: s, end: &e}, nil
}

func (d DateRange) Start() time.Time {
	return d.start
}

// End returns the recorded end date, or nil for a single-day hold.
func (d DateRange) End() *time.Time {
	if d.end == nil {
		return nil
	}
	e := *d.end
	return &e
}

// EffectiveEnd is the end date used for overlap checks: the recorded end
// when present, otherwise the start date.
func (d DateRange) EffectiveEnd() time.Time {
	if d.end == nil {
		return d.start
	}
	return *d.end
}

func (d DateRange) IsOpenEnded() bool {
	return d.end == nil
}

// Overlaps implements the closed-interval predicate: [s1,e1] and [s2,e2]
// conflict iff s1 <= e2 and e1 >= s2.
func (d DateRange) Overlaps(other DateRange) bool {
	return !d.start.After(other.EffectiveEnd()) && !d.EffectiveEnd().Before(other.start)
}

// Covers reports whether the window contains the given day (inclusive).
func (d DateRange) Covers(day time.Time) bool {
	t := dateOnly(day)
	return !d.start.After(t) && !d.EffectiveEnd().Before(t)
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

type Notes struct {
	value string
}

func NewNotes(value string) (Notes, error) {
	trimmed := strings.TrimSpace(value)
	if len(trimmed) > MaxNotesLength {
		return Notes{}, ErrNotesTooLong
	}
	return Notes{value: trimmed}, nil
}

func (n Notes) String() string {
	return n.value
}

func (n Notes) IsEmpty() bool {
	return n.value == ""
}
