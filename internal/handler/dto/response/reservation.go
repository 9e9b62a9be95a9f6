package response

import (
	"time"

	"library-api/internal/usecase/queries"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

type ReservationResponse struct {
	ID          uuid.UUID `json:"id"`
	BookID      uuid.UUID `json:"bookId"`
	BookTitle   string    `json:"bookTitle"`
	ReaderID    uuid.UUID `json:"readerId"`
	ReaderName  string    `json:"readerName"`
	ReaderEmail string    `json:"readerEmail"`
	ReservedAt  time.Time `json:"reservedAt"`
	StartDate   string    `json:"startDate"`
	EndDate     *string   `json:"endDate,omitempty"`
	Status      string    `json:"status"`
	Notes       *string   `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type ReservationListResponse struct {
	ID         uuid.UUID `json:"id"`
	BookID     uuid.UUID `json:"bookId"`
	BookTitle  string    `json:"bookTitle"`
	ReaderID   uuid.UUID `json:"readerId"`
	ReaderName string    `json:"readerName"`
	ReservedAt time.Time `json:"reservedAt"`
	StartDate  string    `json:"startDate"`
	EndDate    *string   `json:"endDate,omitempty"`
	Status     string    `json:"status"`
}

func FromReservationView(rm *queries.ReservationView) *ReservationResponse {
	return &ReservationResponse{
		ID:          rm.ID,
		BookID:      rm.BookID,
		BookTitle:   rm.BookTitle,
		ReaderID:    rm.ReaderID,
		ReaderName:  rm.ReaderName,
		ReaderEmail: rm.ReaderEmail,
		ReservedAt:  rm.ReservedAt,
		StartDate:   rm.StartDate.Format(dateLayout),
		EndDate:     formatDatePtr(rm.EndDate),
		Status:      rm.Status,
		Notes:       rm.Notes,
		CreatedAt:   rm.CreatedAt,
		UpdatedAt:   rm.UpdatedAt,
	}
}

func FromReservationListItem(rm *queries.ReservationListItem) *ReservationListResponse {
	return &ReservationListResponse{
		ID:         rm.ID,
		BookID:     rm.BookID,
		BookTitle:  rm.BookTitle,
		ReaderID:   rm.ReaderID,
		ReaderName: rm.ReaderName,
		ReservedAt: rm.ReservedAt,
		StartDate:  rm.StartDate.Format(dateLayout),
		EndDate:    formatDatePtr(rm.EndDate),
		Status:     rm.Status,
	}
}

func formatDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}
