package request

import (
	"strings"

	"library-api/internal/usecase/commands"
)

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type RegisterReaderRequest struct {
	Email     string  `json:"email" binding:"required,email"`
	Password  string  `json:"password" binding:"required,min=8"`
	FullName  string  `json:"full_name" binding:"required"`
	Phone     *string `json:"phone,omitempty"`
	BirthDate *string `json:"birth_date,omitempty"`
}

func (r RegisterReaderRequest) ToInput() (commands.RegisterReaderInput, error) {
	input := commands.RegisterReaderInput{
		Email:    strings.ToLower(strings.TrimSpace(r.Email)),
		Password: r.Password,
		FullName: strings.TrimSpace(r.FullName),
		Phone:    r.Phone,
	}
	if r.BirthDate != nil && strings.TrimSpace(*r.BirthDate) != "" {
		parsed, err := ParseDate(*r.BirthDate)
		if err != nil {
			return commands.RegisterReaderInput{}, err
		}
		input.BirthDate = &parsed
	}
	return input, nil
}
