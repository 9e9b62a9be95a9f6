package readstore

import (
	"context"

	"library-api/internal/infra"
	"library-api/internal/infra/db"
	"library-api/internal/pkg/pgconv"
	"library-api/internal/usecase/queries"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type BookReadStore struct {
	db db.DBTX
}

func NewBookReadStore(pool db.DBTX) *BookReadStore {
	return &BookReadStore{db: pool}
}

func (r *BookReadStore) FindViewByID(ctx context.Context, id uuid.UUID) (*queries.BookView, error) {
	query, _, err := pgDialect.
		From("books").
		Select("id", "title", "author", "publication_date", "created_at").
		Where(goqu.Ex{"id": id.String()}).
		ToSQL()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build book view select", err)
	}

	view, err := scanBookView(r.db.QueryRow(ctx, query))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("book not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find book view", err)
	}
	return view, nil
}

func (r *BookReadStore) ListAll(ctx context.Context) ([]*queries.BookView, error) {
	query, _, err := pgDialect.
		From("books").
		Select("id", "title", "author", "publication_date", "created_at").
		Order(goqu.I("title").Asc()).
		ToSQL()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build book list select", err)
	}

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list books", err)
	}
	defer rows.Close()

	var result []*queries.BookView
	for rows.Next() {
		view, err := scanBookView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan book row", err)
		}
		result = append(result, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read book rows", err)
	}

	return result, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBookView(row rowScanner) (*queries.BookView, error) {
	var (
		view            queries.BookView
		publicationDate pgtype.Date
		createdAt       pgtype.Timestamptz
	)
	if err := row.Scan(&view.ID, &view.Title, &view.Author, &publicationDate, &createdAt); err != nil {
		return nil, err
	}
	view.PublicationDate = pgconv.DatePtrFromPgtype(publicationDate)
	view.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	return &view, nil
}
