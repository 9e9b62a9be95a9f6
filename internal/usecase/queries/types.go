package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)

type ReservationView struct {
	ID          uuid.UUID  `json:"id"`
	BookID      uuid.UUID  `json:"book_id"`
	BookTitle   string     `json:"book_title"`
	ReaderID    uuid.UUID  `json:"reader_id"`
	ReaderName  string     `json:"reader_name"`
	ReaderEmail string     `json:"reader_email"`
	ReservedAt  time.Time  `json:"reserved_at"`
	StartDate   time.Time  `json:"start_date"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	Status      string     `json:"status"`
	Notes       *string    `json:"notes,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type ReservationListItem struct {
	ID         uuid.UUID  `json:"id"`
	BookID     uuid.UUID  `json:"book_id"`
	BookTitle  string     `json:"book_title"`
	ReaderID   uuid.UUID  `json:"reader_id"`
	ReaderName string     `json:"reader_name"`
	ReservedAt time.Time  `json:"reserved_at"`
	StartDate  time.Time  `json:"start_date"`
	EndDate    *time.Time `json:"end_date,omitempty"`
	Status     string     `json:"status"`
}

type BookView struct {
	ID              uuid.UUID  `json:"id"`
	Title           string     `json:"title"`
	Author          string     `json:"author"`
	PublicationDate *time.Time `json:"publication_date,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

type BookAvailabilityView struct {
	ID                        uuid.UUID  `json:"id"`
	Title                     string     `json:"title"`
	Author                    string     `json:"author"`
	PublicationDate           *time.Time `json:"publication_date,omitempty"`
	IsAvailable               bool       `json:"is_available"`
	CurrentReservationEndDate *time.Time `json:"current_reservation_end_date,omitempty"`
	NextReservationStartDate  *time.Time `json:"next_reservation_start_date,omitempty"`
	HasOpenEndedReservation   bool       `json:"has_open_ended_reservation"`
	AvailabilitySummary       string     `json:"availability_summary"`
}

type AuthorizedUserView struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	Role     string    `json:"role"`
	IsActive bool      `json:"is_active"`
}

type ReaderView struct {
	ID         uuid.UUID  `json:"id"`
	UserID     uuid.UUID  `json:"user_id"`
	FullName   string     `json:"full_name"`
	ReaderCode string     `json:"reader_code"`
	Phone      *string    `json:"phone,omitempty"`
	BirthDate  *time.Time `json:"birth_date,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}
