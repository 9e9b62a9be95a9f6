package book

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyTitle  = errors.New("title is required")
	ErrEmptyAuthor = errors.New("author is required")
)

// Book is the unit being reserved: one book equals one bookable copy.
// Reservations are looked up by book id through the store; the entity
// never materializes them.
type Book struct {
	id              uuid.UUID
	title           string
	author          string
	publicationDate *time.Time
	createdAt       time.Time
}

func NewBook(title, author string, publicationDate *time.Time) (*Book, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyTitle
	}

	author = strings.TrimSpace(author)
	if author == "" {
		return nil, ErrEmptyAuthor
	}

	return &Book{
		id:              uuid.New(),
		title:           title,
		author:          author,
		publicationDate: publicationDate,
	}, nil
}

func ReconstructBook(id uuid.UUID, title, author string, publicationDate *time.Time, createdAt time.Time) *Book {
	return &Book{
		id:              id,
		title:           title,
		author:          author,
		publicationDate: publicationDate,
		createdAt:       createdAt,
	}
}

func (b *Book) Rename(title, author string, publicationDate *time.Time) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return ErrEmptyTitle
	}
	author = strings.TrimSpace(author)
	if author == "" {
		return ErrEmptyAuthor
	}

	b.title = title
	b.author = author
	b.publicationDate = publicationDate
	return nil
}

func (b *Book) ID() uuid.UUID               { return b.id }
func (b *Book) Title() string               { return b.title }
func (b *Book) Author() string              { return b.author }
func (b *Book) PublicationDate() *time.Time { return b.publicationDate }
func (b *Book) CreatedAt() time.Time        { return b.createdAt }
