package commands

import (
	"context"
	"time"

	"library-api/internal/domain/book"
	"library-api/internal/domain/user"
	"library-api/internal/infra"
	"library-api/internal/pkg/errs"
	"library-api/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BookInput struct {
	Title           string
	Author          string
	PublicationDate *time.Time
}

type BookCommands interface {
	Create(ctx context.Context, input BookInput, actor user.Actor) (*queries.BookView, error)
	Update(ctx context.Context, id uuid.UUID, input BookInput, actor user.Actor) (*queries.BookView, error)
}

type bookCommandsImpl struct {
	bookRepo BookRepository
	db       *pgxpool.Pool
}

func NewBookCommands(bookRepo BookRepository, pool *pgxpool.Pool) BookCommands {
	return &bookCommandsImpl{bookRepo: bookRepo, db: pool}
}

func (c *bookCommandsImpl) Create(ctx context.Context, input BookInput, actor user.Actor) (*queries.BookView, error) {
	if !actor.IsPrivileged() {
		return nil, errs.ErrForbidden
	}

	entity, err := book.NewBook(input.Title, input.Author, input.PublicationDate)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	if err := c.bookRepo.Create(ctx, c.db, entity); err != nil {
		if infra.IsWriteConflict(err) {
			return nil, errs.Mark(err, errs.ErrStorageConflict)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	return bookToView(entity), nil
}

func (c *bookCommandsImpl) Update(ctx context.Context, id uuid.UUID, input BookInput, actor user.Actor) (*queries.BookView, error) {
	if !actor.IsPrivileged() {
		return nil, errs.ErrForbidden
	}

	entity, err := c.bookRepo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrBookNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	if err := entity.Rename(input.Title, input.Author, input.PublicationDate); err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	if err := c.bookRepo.Update(ctx, c.db, entity); err != nil {
		if infra.IsWriteConflict(err) {
			return nil, errs.Mark(err, errs.ErrStorageConflict)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	return bookToView(entity), nil
}

func bookToView(b *book.Book) *queries.BookView {
	return &queries.BookView{
		ID:              b.ID(),
		Title:           b.Title(),
		Author:          b.Author(),
		PublicationDate: b.PublicationDate(),
		CreatedAt:       b.CreatedAt(),
	}
}
