package queries

import (
	"context"
	"time"

	"library-api/internal/domain/reservation"
	"library-api/internal/infra"
	"library-api/internal/pkg/clock"
	"library-api/internal/pkg/errs"

	"github.com/google/uuid"
)

type BookReadStore interface {
	FindViewByID(ctx context.Context, id uuid.UUID) (*BookView, error)
	ListAll(ctx context.Context) ([]*BookView, error)
}

// ActiveReservationReader supplies the active reservation set the
// availability projection runs over.
type ActiveReservationReader interface {
	ListActiveByBook(ctx context.Context, bookID uuid.UUID, excludeID *uuid.UUID) ([]*reservation.Reservation, error)
}

type BookQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*BookView, error)
	List(ctx context.Context) ([]*BookView, error)
	GetAvailability(ctx context.Context, id uuid.UUID, referenceDate *time.Time) (*BookAvailabilityView, error)
}

type bookQueriesImpl struct {
	readStore        BookReadStore
	reservationReads ActiveReservationReader
	clock            clock.Clock
}

func NewBookQueries(readStore BookReadStore, reservationReads ActiveReservationReader, clk clock.Clock) BookQueries {
	return &bookQueriesImpl{
		readStore:        readStore,
		reservationReads: reservationReads,
		clock:            clk,
	}
}

func (q *bookQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*BookView, error) {
	view, err := q.readStore.FindViewByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrBookNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return view, nil
}

func (q *bookQueriesImpl) List(ctx context.Context) ([]*BookView, error) {
	views, err := q.readStore.ListAll(ctx)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return views, nil
}

// GetAvailability projects the availability snapshot for a book on the
// reference date (today when absent).
func (q *bookQueriesImpl) GetAvailability(ctx context.Context, id uuid.UUID, referenceDate *time.Time) (*BookAvailabilityView, error) {
	view, err := q.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	active, err := q.reservationReads.ListActiveByBook(ctx, id, nil)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	ref := q.clock.Now()
	if referenceDate != nil {
		ref = *referenceDate
	}

	snapshot := reservation.ProjectAvailability(active, ref)

	return &BookAvailabilityView{
		ID:                        view.ID,
		Title:                     view.Title,
		Author:                    view.Author,
		PublicationDate:           view.PublicationDate,
		IsAvailable:               snapshot.IsAvailable,
		CurrentReservationEndDate: snapshot.CurrentReservationEndDate,
		NextReservationStartDate:  snapshot.NextReservationStartDate,
		HasOpenEndedReservation:   snapshot.HasOpenEndedReservation,
		AvailabilitySummary:       snapshot.Summary,
	}, nil
}
