package reader

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyFullName = errors.New("full name is required")
	ErrMissingUser   = errors.New("user is required")
)

const MaxFullNameLength = 200

// Reader is a library member able to hold reservations. It references its
// account by user id only.
type Reader struct {
	id         uuid.UUID
	userID     uuid.UUID
	fullName   string
	readerCode string
	phone      *string
	birthDate  *time.Time
	createdAt  time.Time
}

func NewReader(userID uuid.UUID, fullName string, phone *string, birthDate *time.Time) (*Reader, error) {
	if userID == uuid.Nil {
		return nil, ErrMissingUser
	}

	fullName = strings.TrimSpace(fullName)
	if fullName == "" || len(fullName) > MaxFullNameLength {
		return nil, ErrEmptyFullName
	}

	return &Reader{
		id:         uuid.New(),
		userID:     userID,
		fullName:   fullName,
		readerCode: GenerateReaderCode(),
		phone:      phone,
		birthDate:  birthDate,
	}, nil
}

func ReconstructReader(
	id, userID uuid.UUID,
	fullName, readerCode string,
	phone *string,
	birthDate *time.Time,
	createdAt time.Time,
) *Reader {
	return &Reader{
		id:         id,
		userID:     userID,
		fullName:   fullName,
		readerCode: readerCode,
		phone:      phone,
		birthDate:  birthDate,
		createdAt:  createdAt,
	}
}

// GenerateReaderCode produces a short member code like "LE-3F9A1C".
func GenerateReaderCode() string {
	random := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:6])
	return "LE-" + random
}

func (r *Reader) ID() uuid.UUID         { return r.id }
func (r *Reader) UserID() uuid.UUID     { return r.userID }
func (r *Reader) FullName() string      { return r.fullName }
func (r *Reader) ReaderCode() string    { return r.readerCode }
func (r *Reader) Phone() *string        { return r.phone }
func (r *Reader) BirthDate() *time.Time { return r.birthDate }
func (r *Reader) CreatedAt() time.Time  { return r.createdAt }
