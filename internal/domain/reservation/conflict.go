package reservation

import "github.com/google/uuid"

// HasConflict reports whether the candidate window overlaps any active
// reservation in the given set, skipping the reservation identified by
// excludeID (uuid.Nil to exclude nothing). Used on edit so a reservation
// does not conflict with itself.
//
// The set is expected to hold a single book's reservations; inactive
// entries are tolerated and ignored. Read-only and safe for concurrent use.
func HasConflict(candidate DateRange, existing []*Reservation, excludeID uuid.UUID) bool {
	for _, res := range existing {
		if res.ID() == excludeID {
			continue
		}
		if !res.IsActive() {
			continue
		}
		if candidate.Overlaps(res.Period()) {
			return true
		}
	}
	return false
}
