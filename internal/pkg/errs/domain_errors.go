package errs

import "errors"

// Domain-specific sentinel errors shared across usecase layers
var (
	// Book errors
	ErrBookNotFound = errors.New("book not found")

	// Reader errors
	ErrReaderNotFound = errors.New("reader not found")

	// User errors
	ErrUserNotFound = errors.New("user not found")

	// Reservation errors
	ErrReservationNotFound = errors.New("reservation not found")
	ErrReservationConflict = errors.New("reservation conflict")
	ErrInvalidDateRange    = errors.New("invalid date range")
	ErrIllegalTransition   = errors.New("illegal status transition")
	ErrStorageConflict     = errors.New("storage conflict")

	// Authorization errors
	ErrForbidden = errors.New("forbidden")

	// Validation errors
	ErrDomainValidation = errors.New("domain validation error")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
