package components

import (
	"library-api/internal/infra/db"
	"library-api/internal/infra/mail"
	"library-api/internal/infra/readstore"
	repo_impl "library-api/internal/infra/repository"
	"library-api/internal/pkg/config"
	"library-api/internal/usecase/commands"
	"library-api/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		NewDBTX,
		NewNotifier,
		fx.Annotate(
			repo_impl.NewUserRepository,
			fx.As(new(commands.UserRepository)),
			fx.As(new(queries.UserReader)),
		),
		fx.Annotate(
			repo_impl.NewReservationRepository,
			fx.As(new(commands.ReservationRepository)),
			fx.As(new(queries.ActiveReservationReader)),
		),
		fx.Annotate(
			repo_impl.NewBookRepository,
			fx.As(new(commands.BookRepository)),
		),
		fx.Annotate(
			repo_impl.NewReaderRepository,
			fx.As(new(commands.ReaderRepository)),
			fx.As(new(queries.ReaderReader)),
		),
		fx.Annotate(
			repo_impl.NewNotificationRepository,
			fx.As(new(commands.NotificationRepository)),
		),
		// Read-side stores for queries and read-after-write lookups
		fx.Annotate(
			readstore.NewReservationReadStore,
			fx.As(new(queries.ReservationReadStore)),
			fx.As(new(commands.ReservationViewReader)),
		),
		fx.Annotate(
			readstore.NewBookReadStore,
			fx.As(new(queries.BookReadStore)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}

func NewNotifier(cfg config.Config) commands.Notifier {
	return mail.NewNotifier(cfg.SMTP)
}
