package readstore

import (
	"context"

	"library-api/internal/infra"
	"library-api/internal/infra/db"
	"library-api/internal/pkg/pgconv"
	"library-api/internal/usecase/queries"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

var pgDialect = goqu.Dialect("postgres")

type ReservationReadStore struct {
	db db.DBTX
}

func NewReservationReadStore(pool db.DBTX) *ReservationReadStore {
	return &ReservationReadStore{db: pool}
}

func (r *ReservationReadStore) FindViewByID(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	query, _, err := pgDialect.
		From(goqu.T("reservations").As("r")).
		Join(goqu.T("books").As("b"), goqu.On(goqu.Ex{"r.book_id": goqu.I("b.id")})).
		Join(goqu.T("readers").As("rd"), goqu.On(goqu.Ex{"r.reader_id": goqu.I("rd.id")})).
		Join(goqu.T("users").As("u"), goqu.On(goqu.Ex{"rd.user_id": goqu.I("u.id")})).
		Select(
			"r.id", "r.book_id", "b.title", "r.reader_id", "rd.full_name", "u.email",
			"r.reserved_at", "r.start_date", "r.end_date", "r.status", "r.notes",
			"r.created_at", "r.updated_at",
		).
		Where(goqu.Ex{"r.id": id.String()}).
		ToSQL()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build reservation view select", err)
	}

	var (
		view       queries.ReservationView
		reservedAt pgtype.Timestamptz
		startDate  pgtype.Date
		endDate    pgtype.Date
		notes      pgtype.Text
		createdAt  pgtype.Timestamptz
		updatedAt  pgtype.Timestamptz
	)
	err = r.db.QueryRow(ctx, query).Scan(
		&view.ID, &view.BookID, &view.BookTitle, &view.ReaderID, &view.ReaderName, &view.ReaderEmail,
		&reservedAt, &startDate, &endDate, &view.Status, &notes,
		&createdAt, &updatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation view", err)
	}

	view.ReservedAt = pgconv.TimeFromPgtype(reservedAt)
	view.StartDate = pgconv.DateFromPgtype(startDate)
	view.EndDate = pgconv.DatePtrFromPgtype(endDate)
	view.Notes = pgconv.StringPtrFromPgtype(notes)
	view.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	view.UpdatedAt = pgconv.TimeFromPgtype(updatedAt)
	return &view, nil
}

// ListAll returns every reservation with book and reader names, most
// recently reserved first.
func (r *ReservationReadStore) ListAll(ctx context.Context) ([]*queries.ReservationListItem, error) {
	return r.list(ctx, nil)
}

func (r *ReservationReadStore) ListByReader(ctx context.Context, readerID uuid.UUID) ([]*queries.ReservationListItem, error) {
	where := goqu.Ex{"r.reader_id": readerID.String()}
	return r.list(ctx, where)
}

func (r *ReservationReadStore) list(ctx context.Context, where goqu.Ex) ([]*queries.ReservationListItem, error) {
	stmt := pgDialect.
		From(goqu.T("reservations").As("r")).
		Join(goqu.T("books").As("b"), goqu.On(goqu.Ex{"r.book_id": goqu.I("b.id")})).
		Join(goqu.T("readers").As("rd"), goqu.On(goqu.Ex{"r.reader_id": goqu.I("rd.id")})).
		Select(
			"r.id", "r.book_id", "b.title", "r.reader_id", "rd.full_name",
			"r.reserved_at", "r.start_date", "r.end_date", "r.status",
		).
		Order(goqu.I("r.reserved_at").Desc())

	if where != nil {
		stmt = stmt.Where(where)
	}

	query, _, err := stmt.ToSQL()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build reservation list select", err)
	}

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reservations", err)
	}
	defer rows.Close()

	var result []*queries.ReservationListItem
	for rows.Next() {
		var (
			item       queries.ReservationListItem
			reservedAt pgtype.Timestamptz
			startDate  pgtype.Date
			endDate    pgtype.Date
		)
		if err := rows.Scan(
			&item.ID, &item.BookID, &item.BookTitle, &item.ReaderID, &item.ReaderName,
			&reservedAt, &startDate, &endDate, &item.Status,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan reservation list row", err)
		}
		item.ReservedAt = pgconv.TimeFromPgtype(reservedAt)
		item.StartDate = pgconv.DateFromPgtype(startDate)
		item.EndDate = pgconv.DatePtrFromPgtype(endDate)
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read reservation list rows", err)
	}

	return result, nil
}
