package repository

import (
	"context"

	"library-api/internal/domain/reader"
	"library-api/internal/infra"
	"library-api/internal/infra/db"
	"library-api/internal/pkg/pgconv"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const readersTable = "readers"

type ReaderRepository struct {
	db db.DBTX
}

func NewReaderRepository(pool db.DBTX) *ReaderRepository {
	return &ReaderRepository{db: pool}
}

func (r *ReaderRepository) FindByID(ctx context.Context, id uuid.UUID) (*reader.Reader, error) {
	return r.findOne(ctx, goqu.Ex{"id": id.String()})
}

func (r *ReaderRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*reader.Reader, error) {
	return r.findOne(ctx, goqu.Ex{"user_id": userID.String()})
}

func (r *ReaderRepository) findOne(ctx context.Context, where goqu.Ex) (*reader.Reader, error) {
	query, _, err := pgDialect.
		From(readersTable).
		Select("id", "user_id", "full_name", "reader_code", "phone", "birth_date", "created_at").
		Where(where).
		ToSQL()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build reader select", err)
	}

	var (
		id         uuid.UUID
		userID     uuid.UUID
		fullName   string
		readerCode string
		phone      pgtype.Text
		birthDate  pgtype.Date
		createdAt  pgtype.Timestamptz
	)
	if err := r.db.QueryRow(ctx, query).Scan(&id, &userID, &fullName, &readerCode, &phone, &birthDate, &createdAt); err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reader not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reader", err)
	}

	return reader.ReconstructReader(
		id, userID, fullName, readerCode,
		pgconv.StringPtrFromPgtype(phone),
		pgconv.DatePtrFromPgtype(birthDate),
		pgconv.TimeFromPgtype(createdAt),
	), nil
}

func (r *ReaderRepository) Create(ctx context.Context, tx db.DBTX, rd *reader.Reader) error {
	var birthDate any
	if d := rd.BirthDate(); d != nil {
		birthDate = d.Format("2006-01-02")
	}
	var phone any
	if p := rd.Phone(); p != nil {
		phone = *p
	}

	query, _, err := pgDialect.
		Insert(readersTable).
		Rows(goqu.Record{
			"id":          rd.ID().String(),
			"user_id":     rd.UserID().String(),
			"full_name":   rd.FullName(),
			"reader_code": rd.ReaderCode(),
			"phone":       phone,
			"birth_date":  birthDate,
		}).
		ToSQL()
	if err != nil {
		return infra.WrapRepoErr("failed to build reader insert", err)
	}

	if _, err := tx.Exec(ctx, query); err != nil {
		return infra.WrapRepoErr("failed to create reader", err)
	}
	return nil
}
