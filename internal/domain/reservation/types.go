package reservation

import "errors"

var ErrInvalidStatus = errors.New("invalid reservation status")

// Status is the reservation lifecycle state. The zero value is not valid;
// new reservations start as StatusPending.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCollected Status = "collected"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCollected, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

// IsActive reports whether the status blocks conflicting bookings and
// counts toward availability.
func (s Status) IsActive() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCollected:
		return true
	default:
		return false
	}
}

func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

func NewStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}
