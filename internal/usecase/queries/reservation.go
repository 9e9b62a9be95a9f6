package queries

import (
	"context"

	"library-api/internal/domain/user"
	"library-api/internal/infra"
	"library-api/internal/pkg/errs"

	"github.com/google/uuid"
)

type ReservationReadStore interface {
	FindViewByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	ListAll(ctx context.Context) ([]*ReservationListItem, error)
	ListByReader(ctx context.Context, readerID uuid.UUID) ([]*ReservationListItem, error)
}

type ReservationQueries interface {
	GetByID(ctx context.Context, id uuid.UUID, actor user.Actor) (*ReservationView, error)
	List(ctx context.Context, actor user.Actor) ([]*ReservationListItem, error)
}

type reservationQueriesImpl struct {
	readStore ReservationReadStore
}

func NewReservationQueries(readStore ReservationReadStore) ReservationQueries {
	return &reservationQueriesImpl{readStore: readStore}
}

// GetByID loads the detail view. Staff see everything; readers only their
// own reservations.
func (q *reservationQueriesImpl) GetByID(ctx context.Context, id uuid.UUID, actor user.Actor) (*ReservationView, error) {
	view, err := q.readStore.FindViewByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrReservationNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	if !actor.IsPrivileged() && !actor.OwnsReader(view.ReaderID) {
		return nil, errs.ErrForbidden
	}

	return view, nil
}

// List returns all reservations for privileged actors, newest first, and
// the actor's own reservations for readers.
func (q *reservationQueriesImpl) List(ctx context.Context, actor user.Actor) ([]*ReservationListItem, error) {
	var (
		items []*ReservationListItem
		err   error
	)
	if actor.IsPrivileged() {
		items, err = q.readStore.ListAll(ctx)
	} else {
		items, err = q.readStore.ListByReader(ctx, actor.ReaderID())
	}
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return items, nil
}
