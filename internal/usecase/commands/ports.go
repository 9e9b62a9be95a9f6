package commands

import (
	"context"
	"time"

	"library-api/internal/domain/book"
	"library-api/internal/domain/reader"
	"library-api/internal/domain/reservation"
	"library-api/internal/domain/user"
	"library-api/internal/infra/db"
	"library-api/internal/usecase/queries"

	"github.com/google/uuid"
)

// Write-side ports. Implementations live in internal/infra; the interfaces
// are declared here, on the consumer side.

type ReservationRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error)
	ListActiveByBook(ctx context.Context, bookID uuid.UUID, excludeID *uuid.UUID) ([]*reservation.Reservation, error)
	Create(ctx context.Context, tx db.DBTX, res *reservation.Reservation) error
	Update(ctx context.Context, tx db.DBTX, res *reservation.Reservation) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type BookRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*book.Book, error)
	Create(ctx context.Context, tx db.DBTX, b *book.Book) error
	Update(ctx context.Context, tx db.DBTX, b *book.Book) error
}

type ReaderRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*reader.Reader, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (*reader.Reader, error)
	Create(ctx context.Context, tx db.DBTX, rd *reader.Reader) error
}

type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*queries.AuthorizedUserView, string, error)
	FindByID(ctx context.Context, id uuid.UUID) (*queries.AuthorizedUserView, error)
	Create(ctx context.Context, tx db.DBTX, id uuid.UUID, email, passwordHash string, role user.Role) error
	ListStaffEmails(ctx context.Context) ([]string, error)
}

type NotificationRepository interface {
	CreateJob(ctx context.Context, kind, topic string, payload any, runAt time.Time) error
}

// Notifier delivers a notification event to recipients. Best-effort by
// contract: callers log failures and never roll back because of them.
type Notifier interface {
	Notify(ctx context.Context, event string, view *queries.ReservationView, recipients []string) error
}

// ReservationViewReader is the read-after-write lookup used to return the
// full view from command handlers and to build notification payloads.
type ReservationViewReader interface {
	FindViewByID(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error)
}
