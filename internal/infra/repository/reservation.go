package repository

import (
	"context"

	"library-api/internal/domain/reservation"
	"library-api/internal/infra"
	"library-api/internal/infra/db"
	"library-api/internal/pkg/pgconv"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const reservationsTable = "reservations"

var pgDialect = goqu.Dialect("postgres")

var activeStatuses = []string{
	reservation.StatusPending.String(),
	reservation.StatusConfirmed.String(),
	reservation.StatusCollected.String(),
}

type ReservationRepository struct {
	db db.DBTX
}

func NewReservationRepository(pool db.DBTX) *ReservationRepository {
	return &ReservationRepository{db: pool}
}

func (r *ReservationRepository) FindByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	query, _, err := pgDialect.
		From(reservationsTable).
		Select("id", "book_id", "reader_id", "reserved_at", "start_date", "end_date", "status", "notes", "created_at", "updated_at").
		Where(goqu.Ex{"id": id.String()}).
		ToSQL()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build reservation select", err)
	}

	row := r.db.QueryRow(ctx, query)
	res, err := scanReservation(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation by ID", err)
	}
	return res, nil
}

// ListActiveByBook returns the book's Pending/Confirmed/Collected
// reservations ordered by start date, excluding excludeID when non-nil
// (used on edit so a reservation never conflicts with itself).
func (r *ReservationRepository) ListActiveByBook(ctx context.Context, bookID uuid.UUID, excludeID *uuid.UUID) ([]*reservation.Reservation, error) {
	stmt := pgDialect.
		From(reservationsTable).
		Select("id", "book_id", "reader_id", "reserved_at", "start_date", "end_date", "status", "notes", "created_at", "updated_at").
		Where(
			goqu.Ex{"book_id": bookID.String()},
			goqu.C("status").In(activeStatuses),
		).
		Order(goqu.I("start_date").Asc())

	if excludeID != nil {
		stmt = stmt.Where(goqu.C("id").Neq(excludeID.String()))
	}

	query, _, err := stmt.ToSQL()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build active reservations select", err)
	}

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list active reservations", err)
	}
	defer rows.Close()

	var result []*reservation.Reservation
	for rows.Next() {
		res, scanErr := scanReservation(rows)
		if scanErr != nil {
			return nil, infra.WrapRepoErr("failed to scan reservation row", scanErr)
		}
		result = append(result, res)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read reservation rows", err)
	}

	return result, nil
}

func (r *ReservationRepository) Create(ctx context.Context, tx db.DBTX, res *reservation.Reservation) error {
	query, _, err := pgDialect.
		Insert(reservationsTable).
		Rows(reservationRecord(res)).
		ToSQL()
	if err != nil {
		return infra.WrapRepoErr("failed to build reservation insert", err)
	}

	if _, err := tx.Exec(ctx, query); err != nil {
		return infra.WrapRepoErr("failed to create reservation", err)
	}
	return nil
}

func (r *ReservationRepository) Update(ctx context.Context, tx db.DBTX, res *reservation.Reservation) error {
	record := reservationRecord(res)
	delete(record, "id")
	delete(record, "reserved_at")
	delete(record, "created_at")
	record["updated_at"] = goqu.L("now()")

	query, _, err := pgDialect.
		Update(reservationsTable).
		Set(record).
		Where(goqu.Ex{"id": res.ID().String()}).
		ToSQL()
	if err != nil {
		return infra.WrapRepoErr("failed to build reservation update", err)
	}

	tag, err := tx.Exec(ctx, query)
	if err != nil {
		return infra.WrapRepoErr("failed to update reservation", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}
	return nil
}

// Delete removes the row unconditionally. Administrative correction only;
// the lifecycle state machine is deliberately bypassed here.
func (r *ReservationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query, _, err := pgDialect.
		Delete(reservationsTable).
		Where(goqu.Ex{"id": id.String()}).
		ToSQL()
	if err != nil {
		return infra.WrapRepoErr("failed to build reservation delete", err)
	}

	tag, err := r.db.Exec(ctx, query)
	if err != nil {
		return infra.WrapRepoErr("failed to delete reservation", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}
	return nil
}

func reservationRecord(res *reservation.Reservation) goqu.Record {
	var endDate any
	if end := res.Period().End(); end != nil {
		endDate = end.Format("2006-01-02")
	}

	var notes any
	if !res.Notes().IsEmpty() {
		notes = res.Notes().String()
	}

	return goqu.Record{
		"id":          res.ID().String(),
		"book_id":     res.BookID().String(),
		"reader_id":   res.ReaderID().String(),
		"reserved_at": res.ReservedAt(),
		"start_date":  res.Period().Start().Format("2006-01-02"),
		"end_date":    endDate,
		"status":      res.Status().String(),
		"notes":       notes,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReservation(row rowScanner) (*reservation.Reservation, error) {
	var (
		id         uuid.UUID
		bookID     uuid.UUID
		readerID   uuid.UUID
		reservedAt pgtype.Timestamptz
		startDate  pgtype.Date
		endDate    pgtype.Date
		status     string
		notes      pgtype.Text
		createdAt  pgtype.Timestamptz
		updatedAt  pgtype.Timestamptz
	)

	if err := row.Scan(&id, &bookID, &readerID, &reservedAt, &startDate, &endDate, &status, &notes, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	period, err := reservation.NewDateRange(pgconv.DateFromPgtype(startDate), pgconv.DatePtrFromPgtype(endDate))
	if err != nil {
		return nil, err
	}

	var notesValue string
	if ptr := pgconv.StringPtrFromPgtype(notes); ptr != nil {
		notesValue = *ptr
	}
	domainNotes, err := reservation.NewNotes(notesValue)
	if err != nil {
		return nil, err
	}

	domainStatus, err := reservation.NewStatus(status)
	if err != nil {
		return nil, err
	}

	return reservation.ReconstructReservation(
		id, bookID, readerID,
		pgconv.TimeFromPgtype(reservedAt),
		period,
		domainStatus,
		domainNotes,
		pgconv.TimeFromPgtype(createdAt),
		pgconv.TimeFromPgtype(updatedAt),
	), nil
}
