package commands

import (
	"context"
	"strings"
	"time"

	"library-api/internal/domain/reader"
	"library-api/internal/domain/user"
	"library-api/internal/infra"
	"library-api/internal/pkg/errs"
	"library-api/internal/pkg/jwt"
	"library-api/internal/pkg/password"
	"library-api/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrInvalidCredentials = errs.New("invalid credentials")
	ErrInactiveUser       = errs.New("user is inactive")
	ErrEmailTaken         = errs.New("email already registered")
)

type LoginResult struct {
	Token string
	User  *queries.AuthorizedUserView
}

type RegisterReaderInput struct {
	Email     string
	Password  string
	FullName  string
	Phone     *string
	BirthDate *time.Time
}

type AuthCommands interface {
	Login(ctx context.Context, email, plainPassword string) (*LoginResult, error)
	RegisterReader(ctx context.Context, input RegisterReaderInput) (*queries.ReaderView, error)
}

type authCommandsImpl struct {
	userRepo   UserRepository
	readerRepo ReaderRepository
	jwtService *jwt.Service
	db         *pgxpool.Pool
}

func NewAuthCommands(userRepo UserRepository, readerRepo ReaderRepository, jwtService *jwt.Service, pool *pgxpool.Pool) AuthCommands {
	return &authCommandsImpl{
		userRepo:   userRepo,
		readerRepo: readerRepo,
		jwtService: jwtService,
		db:         pool,
	}
}

func (a *authCommandsImpl) Login(ctx context.Context, email, plainPassword string) (*LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	view, passwordHash, err := a.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	if !view.IsActive {
		return nil, ErrInactiveUser
	}

	if err := password.VerifyPassword(passwordHash, plainPassword); err != nil {
		return nil, ErrInvalidCredentials
	}

	role, err := user.NewRole(view.Role)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	// Reader accounts carry their reader id in the token so the actor can
	// be resolved without a lookup per request.
	var readerID *uuid.UUID
	if role == user.RoleReader {
		rd, readerErr := a.readerRepo.FindByUserID(ctx, view.ID)
		if readerErr != nil {
			if infra.IsKind(readerErr, infra.KindNotFound) {
				return nil, errs.Mark(readerErr, errs.ErrReaderNotFound)
			}
			return nil, errs.Mark(readerErr, errs.ErrDatabaseOperationFailed)
		}
		id := rd.ID()
		readerID = &id
	}

	token, err := a.jwtService.GenerateToken(view.ID, role, readerID)
	if err != nil {
		return nil, errs.Wrap(err, "failed to generate token")
	}

	return &LoginResult{Token: token, User: view}, nil
}

// RegisterReader creates the account and its reader profile in a single
// transaction so a half-registered reader never exists.
func (a *authCommandsImpl) RegisterReader(ctx context.Context, input RegisterReaderInput) (*queries.ReaderView, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" {
		return nil, errs.Mark(errs.New("email is required"), errs.ErrDomainValidation)
	}

	hash, err := password.HashPassword(input.Password)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	userID := uuid.New()
	rd, err := reader.NewReader(userID, input.FullName, input.Phone, input.BirthDate)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	tx, err := a.db.Begin(ctx)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := a.userRepo.Create(ctx, tx, userID, email, hash, user.RoleReader); err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return nil, errs.Mark(err, ErrEmailTaken)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if err := a.readerRepo.Create(ctx, tx, rd); err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return nil, errs.Mark(err, errs.ErrStorageConflict)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	return &queries.ReaderView{
		ID:         rd.ID(),
		UserID:     rd.UserID(),
		FullName:   rd.FullName(),
		ReaderCode: rd.ReaderCode(),
		Phone:      rd.Phone(),
		BirthDate:  rd.BirthDate(),
		CreatedAt:  rd.CreatedAt(),
	}, nil
}
