package reservation

import (
	"errors"

	"library-api/internal/domain/user"
)

var (
	ErrTransitionNotAllowed = errors.New("status transition not allowed")
	ErrNotReservationOwner  = errors.New("actor does not own this reservation")
)

// privilegedTransitions is the full lifecycle table for staff/admin actors.
// Forward moves and cancellation only; Completed and Cancelled have no
// outgoing transitions.
var privilegedTransitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCollected, StatusCompleted, StatusCancelled},
	StatusConfirmed: {StatusCollected, StatusCompleted, StatusCancelled},
	StatusCollected: {StatusCompleted, StatusCancelled},
	StatusCompleted: {},
	StatusCancelled: {},
}

// CanTransition decides whether an actor may move a reservation in state
// `from` to state `to`. Readers can only cancel; ownership is checked
// separately because the table has no notion of a particular reservation.
func CanTransition(from, to Status, actor user.Actor) bool {
	if !from.IsValid() || !to.IsValid() {
		return false
	}

	if !actor.IsPrivileged() && to != StatusCancelled {
		return false
	}

	for _, allowed := range privilegedTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// ChangeStatus applies a lifecycle transition. A disallowed transition
// fails without mutating the reservation.
func (r *Reservation) ChangeStatus(to Status, actor user.Actor) error {
	if !to.IsValid() {
		return ErrInvalidStatus
	}
	if !CanTransition(r.status, to, actor) {
		return ErrTransitionNotAllowed
	}

	r.status = to
	return nil
}

// Cancel moves the reservation to Cancelled on behalf of the given actor.
// Reader self-service cancel is idempotent: cancelling an already-cancelled
// reservation reports changed=false with no error. Privileged actors get
// the same treatment; a cancelled hold staying cancelled is not a fault.
func (r *Reservation) Cancel(actor user.Actor) (changed bool, err error) {
	if !actor.IsPrivileged() && !actor.OwnsReader(r.readerID) {
		return false, ErrNotReservationOwner
	}

	if r.status == StatusCancelled {
		return false, nil
	}

	if err := r.ChangeStatus(StatusCancelled, actor); err != nil {
		return false, err
	}
	return true, nil
}
