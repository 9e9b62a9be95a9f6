package queries

import (
	"context"

	"library-api/internal/domain/reader"
	"library-api/internal/infra"
	"library-api/internal/pkg/errs"

	"github.com/google/uuid"
)

type ReaderReader interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) (*reader.Reader, error)
}

type UserReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*AuthorizedUserView, error)
}

type ReaderQueries interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*ReaderView, error)
	GetAccountByUserID(ctx context.Context, userID uuid.UUID) (*AuthorizedUserView, error)
}

type readerQueriesImpl struct {
	readers ReaderReader
	users   UserReader
}

func NewReaderQueries(readers ReaderReader, users UserReader) ReaderQueries {
	return &readerQueriesImpl{readers: readers, users: users}
}

func (q *readerQueriesImpl) GetByUserID(ctx context.Context, userID uuid.UUID) (*ReaderView, error) {
	rd, err := q.readers.FindByUserID(ctx, userID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrReaderNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	return &ReaderView{
		ID:         rd.ID(),
		UserID:     rd.UserID(),
		FullName:   rd.FullName(),
		ReaderCode: rd.ReaderCode(),
		Phone:      rd.Phone(),
		BirthDate:  rd.BirthDate(),
		CreatedAt:  rd.CreatedAt(),
	}, nil
}

// GetAccountByUserID returns the plain account view. Staff and admins have
// no reader profile, so their profile endpoint falls back to this.
func (q *readerQueriesImpl) GetAccountByUserID(ctx context.Context, userID uuid.UUID) (*AuthorizedUserView, error) {
	view, err := q.users.FindByID(ctx, userID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrUserNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return view, nil
}
