package response

import (
	"time"

	"library-api/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookResponse struct {
	ID              uuid.UUID `json:"id"`
	Title           string    `json:"title"`
	Author          string    `json:"author"`
	PublicationDate *string   `json:"publicationDate,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}

type BookAvailabilityResponse struct {
	ID                        uuid.UUID `json:"id"`
	Title                     string    `json:"title"`
	Author                    string    `json:"author"`
	PublicationDate           *string   `json:"publicationDate,omitempty"`
	IsAvailable               bool      `json:"isAvailable"`
	CurrentReservationEndDate *string   `json:"currentReservationEndDate,omitempty"`
	NextReservationStartDate  *string   `json:"nextReservationStartDate,omitempty"`
	HasOpenEndedReservation   bool      `json:"hasOpenEndedReservation"`
	AvailabilitySummary       string    `json:"availabilitySummary"`
}

func FromBookView(rm *queries.BookView) *BookResponse {
	return &BookResponse{
		ID:              rm.ID,
		Title:           rm.Title,
		Author:          rm.Author,
		PublicationDate: formatDatePtr(rm.PublicationDate),
		CreatedAt:       rm.CreatedAt,
	}
}

func FromBookAvailabilityView(rm *queries.BookAvailabilityView) *BookAvailabilityResponse {
	return &BookAvailabilityResponse{
		ID:                        rm.ID,
		Title:                     rm.Title,
		Author:                    rm.Author,
		PublicationDate:           formatDatePtr(rm.PublicationDate),
		IsAvailable:               rm.IsAvailable,
		CurrentReservationEndDate: formatDatePtr(rm.CurrentReservationEndDate),
		NextReservationStartDate:  formatDatePtr(rm.NextReservationStartDate),
		HasOpenEndedReservation:   rm.HasOpenEndedReservation,
		AvailabilitySummary:       rm.AvailabilitySummary,
	}
}
