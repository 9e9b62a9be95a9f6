package repository

import (
	"context"

	"library-api/internal/domain/book"
	"library-api/internal/infra"
	"library-api/internal/infra/db"
	"library-api/internal/pkg/pgconv"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const booksTable = "books"

type BookRepository struct {
	db db.DBTX
}

func NewBookRepository(pool db.DBTX) *BookRepository {
	return &BookRepository{db: pool}
}

func (r *BookRepository) FindByID(ctx context.Context, id uuid.UUID) (*book.Book, error) {
	query, _, err := pgDialect.
		From(booksTable).
		Select("id", "title", "author", "publication_date", "created_at").
		Where(goqu.Ex{"id": id.String()}).
		ToSQL()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build book select", err)
	}

	var (
		bookID          uuid.UUID
		title           string
		author          string
		publicationDate pgtype.Date
		createdAt       pgtype.Timestamptz
	)
	if err := r.db.QueryRow(ctx, query).Scan(&bookID, &title, &author, &publicationDate, &createdAt); err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("book not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find book by ID", err)
	}

	return book.ReconstructBook(
		bookID, title, author,
		pgconv.DatePtrFromPgtype(publicationDate),
		pgconv.TimeFromPgtype(createdAt),
	), nil
}

func (r *BookRepository) Create(ctx context.Context, tx db.DBTX, b *book.Book) error {
	query, _, err := pgDialect.
		Insert(booksTable).
		Rows(bookRecord(b)).
		ToSQL()
	if err != nil {
		return infra.WrapRepoErr("failed to build book insert", err)
	}

	if _, err := tx.Exec(ctx, query); err != nil {
		return infra.WrapRepoErr("failed to create book", err)
	}
	return nil
}

func (r *BookRepository) Update(ctx context.Context, tx db.DBTX, b *book.Book) error {
	record := bookRecord(b)
	delete(record, "id")

	query, _, err := pgDialect.
		Update(booksTable).
		Set(record).
		Where(goqu.Ex{"id": b.ID().String()}).
		ToSQL()
	if err != nil {
		return infra.WrapRepoErr("failed to build book update", err)
	}

	tag, err := tx.Exec(ctx, query)
	if err != nil {
		return infra.WrapRepoErr("failed to update book", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("book not found", nil, infra.KindNotFound)
	}
	return nil
}

func bookRecord(b *book.Book) goqu.Record {
	var publicationDate any
	if d := b.PublicationDate(); d != nil {
		publicationDate = d.Format("2006-01-02")
	}

	return goqu.Record{
		"id":               b.ID().String(),
		"title":            b.Title(),
		"author":           b.Author(),
		"publication_date": publicationDate,
	}
}
