//go:build unit || e2e

package builder

import (
	"time"

	domres "library-api/internal/domain/reservation"
	reqdto "library-api/internal/handler/dto/request"
	"library-api/internal/usecase/commands"
	"library-api/internal/usecase/queries"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

type ReservationBuilder struct {
	BookID      uuid.UUID
	BookTitle   string
	ReaderID    uuid.UUID
	ReaderName  string
	ReaderEmail string
	StartDate   time.Time
	EndDate     *time.Time
	Status      domres.Status
	Notes       string
	ReservedAt  time.Time
}

func NewReservationBuilder() *ReservationBuilder {
	start := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 4)
	return &ReservationBuilder{
		BookID:      uuid.New(),
		BookTitle:   "The Go Programming Language",
		ReaderID:    uuid.New(),
		ReaderName:  "Test Reader",
		ReaderEmail: "reader@example.com",
		StartDate:   start,
		EndDate:     &end,
		Status:      domres.StatusPending,
		Notes:       "Window seat copy",
		ReservedAt:  time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC),
	}
}

func (r *ReservationBuilder) With(mutate func(*ReservationBuilder)) *ReservationBuilder {
	mutate(r)
	return r
}

// Build methods

func (r *ReservationBuilder) BuildPeriod() (domres.DateRange, error) {
	return domres.NewDateRange(r.StartDate, r.EndDate)
}

func (r *ReservationBuilder) BuildDomain() (*domres.Reservation, error) {
	period, err := r.BuildPeriod()
	if err != nil {
		return nil, err
	}
	notes, err := domres.NewNotes(r.Notes)
	if err != nil {
		return nil, err
	}
	return domres.NewReservation(r.BookID, r.ReaderID, period, r.Status, notes, r.ReservedAt)
}

// MustBuildDomain panics on invalid builder state; test helpers only.
func (r *ReservationBuilder) MustBuildDomain() *domres.Reservation {
	res, err := r.BuildDomain()
	if err != nil {
		panic(err)
	}
	return res
}

func (r *ReservationBuilder) BuildCreateInput() commands.CreateReservationInput {
	return commands.CreateReservationInput{
		BookID:    r.BookID,
		ReaderID:  r.ReaderID,
		StartDate: r.StartDate,
		EndDate:   r.EndDate,
		Notes:     r.Notes,
	}
}

func (r *ReservationBuilder) BuildUpdateInput() commands.UpdateReservationInput {
	return commands.UpdateReservationInput{
		BookID:    r.BookID,
		ReaderID:  r.ReaderID,
		StartDate: r.StartDate,
		EndDate:   r.EndDate,
		Notes:     r.Notes,
	}
}

func (r *ReservationBuilder) BuildCreateRequestDTO() reqdto.CreateReservationRequest {
	req := reqdto.CreateReservationRequest{
		BookID:    r.BookID,
		ReaderID:  r.ReaderID,
		StartDate: r.StartDate.Format(dateLayout),
		Notes:     r.Notes,
	}
	if r.EndDate != nil {
		end := r.EndDate.Format(dateLayout)
		req.EndDate = &end
	}
	return req
}

func (r *ReservationBuilder) BuildView() *queries.ReservationView {
	notes := r.Notes
	return &queries.ReservationView{
		ID:          uuid.New(),
		BookID:      r.BookID,
		BookTitle:   r.BookTitle,
		ReaderID:    r.ReaderID,
		ReaderName:  r.ReaderName,
		ReaderEmail: r.ReaderEmail,
		ReservedAt:  r.ReservedAt,
		StartDate:   r.StartDate,
		EndDate:     r.EndDate,
		Status:      string(r.Status),
		Notes:       &notes,
		CreatedAt:   r.ReservedAt,
		UpdatedAt:   r.ReservedAt,
	}
}

func (r *ReservationBuilder) BuildListItem() *queries.ReservationListItem {
	return &queries.ReservationListItem{
		ID:         uuid.New(),
		BookID:     r.BookID,
		BookTitle:  r.BookTitle,
		ReaderID:   r.ReaderID,
		ReaderName: r.ReaderName,
		ReservedAt: r.ReservedAt,
		StartDate:  r.StartDate,
		EndDate:    r.EndDate,
		Status:     string(r.Status),
	}
}

// Fluent builder methods

func (r *ReservationBuilder) WithBookID(id uuid.UUID) *ReservationBuilder {
	r.BookID = id
	return r
}

func (r *ReservationBuilder) WithReaderID(id uuid.UUID) *ReservationBuilder {
	r.ReaderID = id
	return r
}

func (r *ReservationBuilder) WithDates(start string, end *string) *ReservationBuilder {
	r.StartDate = mustParseDate(start)
	if end == nil {
		r.EndDate = nil
	} else {
		e := mustParseDate(*end)
		r.EndDate = &e
	}
	return r
}

func (r *ReservationBuilder) WithStatus(status domres.Status) *ReservationBuilder {
	r.Status = status
	return r
}

func (r *ReservationBuilder) WithNotes(notes string) *ReservationBuilder {
	r.Notes = notes
	return r
}

func (r *ReservationBuilder) AsOpenEnded() *ReservationBuilder {
	r.EndDate = nil
	return r
}

func mustParseDate(value string) time.Time {
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		panic(err)
	}
	return t
}
