package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"library-api/internal/domain/reservation"
	"library-api/internal/domain/user"
	"library-api/internal/infra"
	"library-api/internal/pkg/clock"
	"library-api/internal/pkg/errs"
	"library-api/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	eventReservationCreated   = "created"
	eventReservationCancelled = "cancelled"

	notificationKindEmail = "email"
)

type CreateReservationInput struct {
	BookID    uuid.UUID
	ReaderID  uuid.UUID // ignored for reader actors; forced to their own
	StartDate time.Time
	EndDate   *time.Time
	Status    *string // privileged only; readers always start Pending
	Notes     string
}

type UpdateReservationInput struct {
	BookID    uuid.UUID
	ReaderID  uuid.UUID
	StartDate time.Time
	EndDate   *time.Time
	Status    *string // explicit transition through the state machine
	Notes     string
}

type ReservationCommands interface {
	Create(ctx context.Context, input CreateReservationInput, actor user.Actor) (*queries.ReservationView, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateReservationInput, actor user.Actor) (*queries.ReservationView, error)
	Cancel(ctx context.Context, id uuid.UUID, actor user.Actor) error
	Delete(ctx context.Context, id uuid.UUID, actor user.Actor) error
}

type reservationCommandsImpl struct {
	reservationRepo  ReservationRepository
	bookRepo         BookRepository
	readerRepo       ReaderRepository
	userRepo         UserRepository
	notificationRepo NotificationRepository
	notifier         Notifier
	viewReader       ReservationViewReader
	db               *pgxpool.Pool
	clock            clock.Clock
}

func NewReservationCommands(
	reservationRepo ReservationRepository,
	bookRepo BookRepository,
	readerRepo ReaderRepository,
	userRepo UserRepository,
	notificationRepo NotificationRepository,
	notifier Notifier,
	viewReader ReservationViewReader,
	pool *pgxpool.Pool,
	clk clock.Clock,
) ReservationCommands {
	return &reservationCommandsImpl{
		reservationRepo:  reservationRepo,
		bookRepo:         bookRepo,
		readerRepo:       readerRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
		notifier:         notifier,
		viewReader:       viewReader,
		db:               pool,
		clock:            clk,
	}
}

// Create admits a new reservation when its window does not overlap any
// active reservation for the book. The conflict check and the insert are
// not serialized; the store's overlap constraint closes the race window,
// and a constraint rejection gets one clean retry of the whole flow before
// surfacing as a conflict.
func (c *reservationCommandsImpl) Create(ctx context.Context, input CreateReservationInput, actor user.Actor) (*queries.ReservationView, error) {
	readerID := input.ReaderID
	status := reservation.StatusPending

	if actor.IsPrivileged() {
		if input.Status != nil {
			parsed, err := reservation.NewStatus(*input.Status)
			if err != nil {
				return nil, errs.Mark(err, errs.ErrDomainValidation)
			}
			status = parsed
		}
	} else {
		// Self-service path: readers book for themselves, always Pending.
		readerID = actor.ReaderID()
	}

	period, err := reservation.NewDateRange(input.StartDate, input.EndDate)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidDateRange)
	}

	notes, err := reservation.NewNotes(input.Notes)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	if _, err := c.bookRepo.FindByID(ctx, input.BookID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrBookNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if _, err := c.readerRepo.FindByID(ctx, readerID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrReaderNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	entity, err := reservation.NewReservation(input.BookID, readerID, period, status, notes, c.clock.Now())
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	persist := func() error {
		return c.reservationRepo.Create(ctx, c.db, entity)
	}
	if err := c.checkAndPersist(ctx, entity.BookID(), period, uuid.Nil, persist); err != nil {
		return nil, err
	}

	view, err := c.viewReader.FindViewByID(ctx, entity.ID())
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	c.notifyStaff(ctx, eventReservationCreated, view)
	return view, nil
}

// Update edits reservation fields. The conflict check excludes the
// reservation's own id so an unchanged window never conflicts with itself.
// Status only moves when explicitly supplied, through the state machine.
func (c *reservationCommandsImpl) Update(ctx context.Context, id uuid.UUID, input UpdateReservationInput, actor user.Actor) (*queries.ReservationView, error) {
	if !actor.IsPrivileged() {
		return nil, errs.ErrForbidden
	}

	entity, err := c.findReservation(ctx, id)
	if err != nil {
		return nil, err
	}

	period, err := reservation.NewDateRange(input.StartDate, input.EndDate)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidDateRange)
	}

	notes, err := reservation.NewNotes(input.Notes)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	if err := entity.Edit(input.BookID, input.ReaderID, period, notes); err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	if input.Status != nil {
		target, parseErr := reservation.NewStatus(*input.Status)
		if parseErr != nil {
			return nil, errs.Mark(parseErr, errs.ErrDomainValidation)
		}
		if target != entity.Status() {
			if err := entity.ChangeStatus(target, actor); err != nil {
				return nil, errs.Mark(err, errs.ErrIllegalTransition)
			}
		}
	}

	persist := func() error {
		return c.reservationRepo.Update(ctx, c.db, entity)
	}
	if err := c.checkAndPersist(ctx, entity.BookID(), period, entity.ID(), persist); err != nil {
		return nil, err
	}

	view, err := c.viewReader.FindViewByID(ctx, entity.ID())
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return view, nil
}

// Cancel transitions a reservation to Cancelled. Privileged actors may
// cancel any non-terminal reservation; a reader only their own. Cancelling
// an already-cancelled reservation is a no-op success.
func (c *reservationCommandsImpl) Cancel(ctx context.Context, id uuid.UUID, actor user.Actor) error {
	entity, err := c.findReservation(ctx, id)
	if err != nil {
		return err
	}

	changed, err := entity.Cancel(actor)
	if err != nil {
		if errors.Is(err, reservation.ErrNotReservationOwner) {
			return errs.Mark(err, errs.ErrForbidden)
		}
		return errs.Mark(err, errs.ErrIllegalTransition)
	}
	if !changed {
		return nil
	}

	if err := c.reservationRepo.Update(ctx, c.db, entity); err != nil {
		if infra.IsWriteConflict(err) {
			return errs.Mark(err, errs.ErrStorageConflict)
		}
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	if view, viewErr := c.viewReader.FindViewByID(ctx, entity.ID()); viewErr == nil {
		c.notifyStaff(ctx, eventReservationCancelled, view)
	} else {
		slog.Warn("failed to load reservation view for cancellation notice",
			"reservation_id", entity.ID(), "error", viewErr)
	}
	return nil
}

// Delete is an administrative hard delete. It bypasses the state machine
// entirely and is gated to admins.
func (c *reservationCommandsImpl) Delete(ctx context.Context, id uuid.UUID, actor user.Actor) error {
	if !actor.IsAdmin() {
		return errs.ErrForbidden
	}

	if err := c.reservationRepo.Delete(ctx, id); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return errs.Mark(err, errs.ErrReservationNotFound)
		}
		if infra.IsWriteConflict(err) {
			return errs.Mark(err, errs.ErrStorageConflict)
		}
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return nil
}

func (c *reservationCommandsImpl) findReservation(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	entity, err := c.reservationRepo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrReservationNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return entity, nil
}

// checkAndPersist runs the conflict check followed by the write, retrying
// the full cycle once when the store rejects the write with a constraint
// violation. Two racing requests can both pass the unserialized check; the
// exclusion constraint then rejects exactly one, and its retry observes the
// winner and fails as a plain conflict.
func (c *reservationCommandsImpl) checkAndPersist(ctx context.Context, bookID uuid.UUID, period reservation.DateRange, excludeID uuid.UUID, persist func() error) error {
	for attempt := 0; ; attempt++ {
		var exclude *uuid.UUID
		if excludeID != uuid.Nil {
			id := excludeID
			exclude = &id
		}

		active, err := c.reservationRepo.ListActiveByBook(ctx, bookID, exclude)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if reservation.HasConflict(period, active, excludeID) {
			return errs.ErrReservationConflict
		}

		err = persist()
		if err == nil {
			return nil
		}
		if !infra.IsWriteConflict(err) {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if attempt >= 1 {
			// Persistent storage conflict; to the caller this is the same
			// as a pre-existing overlap.
			return errs.Mark(err, errs.ErrReservationConflict)
		}

		slog.Warn("storage rejected reservation write, retrying conflict check",
			"book_id", bookID, "error", err)
	}
}

// notifyStaff records an outbox job and pushes a best-effort notification.
// Failures are logged and never surface to the caller.
func (c *reservationCommandsImpl) notifyStaff(ctx context.Context, event string, view *queries.ReservationView) {
	payload := map[string]any{
		"reservation_id": view.ID,
		"book_id":        view.BookID,
		"book_title":     view.BookTitle,
		"reader_name":    view.ReaderName,
		"start_date":     view.StartDate,
		"end_date":       view.EndDate,
		"status":         view.Status,
		"event":          event,
	}
	if err := c.notificationRepo.CreateJob(ctx, notificationKindEmail, "reservation_"+event, payload, c.clock.Now()); err != nil {
		slog.Warn("failed to record notification job", "event", event, "reservation_id", view.ID, "error", err)
	}

	recipients, err := c.userRepo.ListStaffEmails(ctx)
	if err != nil {
		slog.Warn("failed to resolve staff recipients", "event", event, "error", err)
		return
	}
	if len(recipients) == 0 {
		return
	}

	if err := c.notifier.Notify(ctx, event, view, recipients); err != nil {
		slog.Warn("failed to deliver staff notification", "event", event, "reservation_id", view.ID, "error", err)
	}
}
