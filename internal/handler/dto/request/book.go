package request

import (
	"strings"

	"library-api/internal/usecase/commands"
)

type BookRequest struct {
	Title           string  `json:"title" binding:"required"`
	Author          string  `json:"author" binding:"required"`
	PublicationDate *string `json:"publication_date,omitempty"`
}

func (r BookRequest) ToInput() (commands.BookInput, error) {
	input := commands.BookInput{
		Title:  strings.TrimSpace(r.Title),
		Author: strings.TrimSpace(r.Author),
	}
	if r.PublicationDate != nil && strings.TrimSpace(*r.PublicationDate) != "" {
		parsed, err := ParseDate(*r.PublicationDate)
		if err != nil {
			return commands.BookInput{}, err
		}
		input.PublicationDate = &parsed
	}
	return input, nil
}
