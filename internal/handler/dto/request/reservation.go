package request

import (
	"strings"
	"time"

	"library-api/internal/usecase/commands"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

// Reservation periods are date-only. Requests carry "YYYY-MM-DD" strings;
// parsing failures surface as validation errors before the usecase runs.
type CreateReservationRequest struct {
	BookID    uuid.UUID `json:"book_id" binding:"required"`
	ReaderID  uuid.UUID `json:"reader_id"`
	StartDate string    `json:"start_date" binding:"required"`
	EndDate   *string   `json:"end_date,omitempty"`
	Status    *string   `json:"status,omitempty"`
	Notes     string    `json:"notes"`
}

func (r CreateReservationRequest) ToInput() (commands.CreateReservationInput, error) {
	start, end, err := parsePeriod(r.StartDate, r.EndDate)
	if err != nil {
		return commands.CreateReservationInput{}, err
	}
	return commands.CreateReservationInput{
		BookID:    r.BookID,
		ReaderID:  r.ReaderID,
		StartDate: start,
		EndDate:   end,
		Status:    r.Status,
		Notes:     strings.TrimSpace(r.Notes),
	}, nil
}

type UpdateReservationRequest struct {
	BookID    uuid.UUID `json:"book_id" binding:"required"`
	ReaderID  uuid.UUID `json:"reader_id" binding:"required"`
	StartDate string    `json:"start_date" binding:"required"`
	EndDate   *string   `json:"end_date,omitempty"`
	Status    *string   `json:"status,omitempty"`
	Notes     string    `json:"notes"`
}

func (r UpdateReservationRequest) ToInput() (commands.UpdateReservationInput, error) {
	start, end, err := parsePeriod(r.StartDate, r.EndDate)
	if err != nil {
		return commands.UpdateReservationInput{}, err
	}
	return commands.UpdateReservationInput{
		BookID:    r.BookID,
		ReaderID:  r.ReaderID,
		StartDate: start,
		EndDate:   end,
		Status:    r.Status,
		Notes:     strings.TrimSpace(r.Notes),
	}, nil
}

func parsePeriod(startDate string, endDate *string) (time.Time, *time.Time, error) {
	start, err := ParseDate(startDate)
	if err != nil {
		return time.Time{}, nil, err
	}
	var end *time.Time
	if endDate != nil && strings.TrimSpace(*endDate) != "" {
		parsed, err := ParseDate(*endDate)
		if err != nil {
			return time.Time{}, nil, err
		}
		end = &parsed
	}
	return start, end, nil
}

func ParseDate(value string) (time.Time, error) {
	return time.Parse(dateLayout, strings.TrimSpace(value))
}
