package reservation

import "time"

const summaryDateLayout = "2006-01-02"

// AvailabilitySnapshot is the human-facing availability of a book on a
// reference date, derived purely from its active reservations.
type AvailabilitySnapshot struct {
	IsAvailable               bool
	CurrentReservationEndDate *time.Time
	NextReservationStartDate  *time.Time
	HasOpenEndedReservation   bool
	Summary                   string
}

// ProjectAvailability derives the snapshot for a reference date. Under the
// no-double-book invariant at most one active reservation covers the date;
// if the set is inconsistent the earliest-starting cover wins so the
// projection stays deterministic.
func ProjectAvailability(active []*Reservation, referenceDate time.Time) AvailabilitySnapshot {
	today := dateOnly(referenceDate)

	var current, next *Reservation
	for _, res := range active {
		if !res.IsActive() {
			continue
		}
		period := res.Period()
		if period.Covers(today) {
			if current == nil || period.Start().Before(current.Period().Start()) {
				current = res
			}
			continue
		}
		if period.Start().After(today) {
			if next == nil || period.Start().Before(next.Period().Start()) {
				next = res
			}
		}
	}

	snapshot := AvailabilitySnapshot{
		IsAvailable: current == nil,
		Summary:     "Available",
	}

	if next != nil {
		start := next.Period().Start()
		snapshot.NextReservationStartDate = &start
	}

	if current != nil {
		effectiveEnd := current.Period().EffectiveEnd()
		snapshot.CurrentReservationEndDate = &effectiveEnd
		if end := current.Period().End(); end != nil {
			snapshot.Summary = "Reserved until " + end.Format(summaryDateLayout)
		} else {
			// The end date was never recorded; the summary stays vague on
			// purpose even though conflict checks treat this as one day.
			snapshot.HasOpenEndedReservation = true
			snapshot.Summary = "Reserved"
		}
		return snapshot
	}

	if next != nil {
		snapshot.Summary = "Available (reserved starting " + next.Period().Start().Format(summaryDateLayout) + ")"
	}
	return snapshot
}
