package response

import (
	"library-api/internal/usecase/queries"

	"github.com/google/uuid"
)

type LoginResponse struct {
	AccessToken string                      `json:"access_token"`
	User        *queries.AuthorizedUserView `json:"user"`
}

type ReaderResponse struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"userId"`
	FullName   string    `json:"fullName"`
	ReaderCode string    `json:"readerCode"`
	Phone      *string   `json:"phone,omitempty"`
	BirthDate  *string   `json:"birthDate,omitempty"`
}

func FromReaderView(rm *queries.ReaderView) *ReaderResponse {
	return &ReaderResponse{
		ID:         rm.ID,
		UserID:     rm.UserID,
		FullName:   rm.FullName,
		ReaderCode: rm.ReaderCode,
		Phone:      rm.Phone,
		BirthDate:  formatDatePtr(rm.BirthDate),
	}
}
