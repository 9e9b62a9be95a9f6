package reservation

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrMissingBook   = errors.New("book is required")
	ErrMissingReader = errors.New("reader is required")
)

// Reservation is a time-bounded hold on a single book copy. The book and
// reader are referenced by id only; lookups go through the store, never a
// back-reference graph.
type Reservation struct {
	id         uuid.UUID
	bookID     uuid.UUID
	readerID   uuid.UUID
	reservedAt time.Time
	period     DateRange
	status     Status
	notes      Notes
	createdAt  time.Time
	updatedAt  time.Time
}

func NewReservation(
	bookID, readerID uuid.UUID,
	period DateRange,
	status Status,
	notes Notes,
	now time.Time,
) (*Reservation, error) {
	if bookID == uuid.Nil {
		return nil, ErrMissingBook
	}
	if readerID == uuid.Nil {
		return nil, ErrMissingReader
	}
	if !status.IsValid() {
		return nil, ErrInvalidStatus
	}

	return &Reservation{
		id:         uuid.New(),
		bookID:     bookID,
		readerID:   readerID,
		reservedAt: now,
		period:     period,
		status:     status,
		notes:      notes,
	}, nil
}

func ReconstructReservation(
	id, bookID, readerID uuid.UUID,
	reservedAt time.Time,
	period DateRange,
	status Status,
	notes Notes,
	createdAt, updatedAt time.Time,
) *Reservation {
	return &Reservation{
		id:         id,
		bookID:     bookID,
		readerID:   readerID,
		reservedAt: reservedAt,
		period:     period,
		status:     status,
		notes:      notes,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}
}

// Edit replaces the mutable fields of the reservation. reservedAt and
// status are untouched; status only moves through ChangeStatus/Cancel.
func (r *Reservation) Edit(bookID, readerID uuid.UUID, period DateRange, notes Notes) error {
	if bookID == uuid.Nil {
		return ErrMissingBook
	}
	if readerID == uuid.Nil {
		return ErrMissingReader
	}

	r.bookID = bookID
	r.readerID = readerID
	r.period = period
	r.notes = notes
	return nil
}

func (r *Reservation) IsActive() bool {
	return r.status.IsActive()
}

func (r *Reservation) ID() uuid.UUID         { return r.id }
func (r *Reservation) BookID() uuid.UUID     { return r.bookID }
func (r *Reservation) ReaderID() uuid.UUID   { return r.readerID }
func (r *Reservation) ReservedAt() time.Time { return r.reservedAt }
func (r *Reservation) Period() DateRange     { return r.period }
func (r *Reservation) Status() Status        { return r.status }
func (r *Reservation) Notes() Notes          { return r.notes }
func (r *Reservation) CreatedAt() time.Time  { return r.createdAt }
func (r *Reservation) UpdatedAt() time.Time  { return r.updatedAt }
