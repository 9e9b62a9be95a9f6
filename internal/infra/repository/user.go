package repository

import (
	"context"

	"library-api/internal/domain/user"
	"library-api/internal/infra"
	"library-api/internal/infra/db"
	"library-api/internal/pkg/pgconv"
	"library-api/internal/usecase/queries"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
)

const usersTable = "users"

type UserRepository struct {
	db db.DBTX
}

func NewUserRepository(pool db.DBTX) *UserRepository {
	return &UserRepository{db: pool}
}

// FindByEmail returns the user view together with the stored password hash
// for credential verification.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*queries.AuthorizedUserView, string, error) {
	query, _, err := pgDialect.
		From(usersTable).
		Select("id", "email", "role", "is_active", "password_hash").
		Where(goqu.Ex{"email": email}).
		ToSQL()
	if err != nil {
		return nil, "", infra.WrapRepoErr("failed to build user select", err)
	}

	var (
		id           uuid.UUID
		userEmail    string
		role         string
		isActive     bool
		passwordHash string
	)
	if err := r.db.QueryRow(ctx, query).Scan(&id, &userEmail, &role, &isActive, &passwordHash); err != nil {
		if pgconv.IsNoRows(err) {
			return nil, "", infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, "", infra.WrapRepoErr("failed to find user by email", err)
	}

	return &queries.AuthorizedUserView{
		ID:       id,
		Email:    userEmail,
		Role:     role,
		IsActive: isActive,
	}, passwordHash, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*queries.AuthorizedUserView, error) {
	query, _, err := pgDialect.
		From(usersTable).
		Select("id", "email", "role", "is_active").
		Where(goqu.Ex{"id": id.String()}).
		ToSQL()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build user select", err)
	}

	var view queries.AuthorizedUserView
	if err := r.db.QueryRow(ctx, query).Scan(&view.ID, &view.Email, &view.Role, &view.IsActive); err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by ID", err)
	}

	return &view, nil
}

func (r *UserRepository) Create(ctx context.Context, tx db.DBTX, id uuid.UUID, email, passwordHash string, role user.Role) error {
	query, _, err := pgDialect.
		Insert(usersTable).
		Rows(goqu.Record{
			"id":            id.String(),
			"email":         email,
			"password_hash": passwordHash,
			"role":          role.String(),
			"is_active":     true,
		}).
		ToSQL()
	if err != nil {
		return infra.WrapRepoErr("failed to build user insert", err)
	}

	if _, err := tx.Exec(ctx, query); err != nil {
		return infra.WrapRepoErr("failed to create user", err)
	}
	return nil
}

// ListStaffEmails returns the distinct mail recipients for staff
// notifications about reservation activity.
func (r *UserRepository) ListStaffEmails(ctx context.Context) ([]string, error) {
	query, _, err := pgDialect.
		From(usersTable).
		Select("email").
		Distinct().
		Where(
			goqu.C("role").In([]string{user.RoleStaff.String(), user.RoleAdmin.String()}),
			goqu.Ex{"is_active": true},
		).
		ToSQL()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build staff emails select", err)
	}

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list staff emails", err)
	}
	defer rows.Close()

	var emails []string
	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return nil, infra.WrapRepoErr("failed to scan staff email", err)
		}
		emails = append(emails, email)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read staff email rows", err)
	}

	return emails, nil
}
