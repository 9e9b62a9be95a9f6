//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"library-api/internal/domain/reservation"
	"library-api/internal/infra"
	"library-api/internal/pkg/clock"
	"library-api/internal/pkg/errs"
	"library-api/internal/usecase/queries"
	"library-api/tests/common/builder"
	queriesmock "library-api/tests/mock/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type BookQueriesTestSuite struct {
	suite.Suite
	ctrl             *gomock.Controller
	readStore        *queriesmock.MockBookReadStore
	reservationReads *queriesmock.MockActiveReservationReader
	clock            *clock.MockClock
	queries          queries.BookQueries
}

func (s *BookQueriesTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.readStore = queriesmock.NewMockBookReadStore(s.ctrl)
	s.reservationReads = queriesmock.NewMockActiveReservationReader(s.ctrl)
	s.clock = clock.NewMockClock(time.Date(2026, 9, 5, 9, 0, 0, 0, time.UTC))
	s.queries = queries.NewBookQueries(s.readStore, s.reservationReads, s.clock)
}

func (s *BookQueriesTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestBookQueriesSuite(t *testing.T) {
	suite.Run(t, new(BookQueriesTestSuite))
}

func (s *BookQueriesTestSuite) bookView() *queries.BookView {
	return &queries.BookView{
		ID:        uuid.New(),
		Title:     "The Go Programming Language",
		Author:    "Donovan & Kernighan",
		CreatedAt: time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
	}
}

func (s *BookQueriesTestSuite) TestGetByIDNotFound() {
	id := uuid.New()
	s.readStore.EXPECT().
		FindViewByID(gomock.Any(), id).
		Return(nil, infra.WrapRepoErr("book not found", errs.New("no rows"), infra.KindNotFound))

	_, err := s.queries.GetByID(context.Background(), id)
	require.ErrorIs(s.T(), err, errs.ErrBookNotFound)
}

func (s *BookQueriesTestSuite) TestGetAvailabilityFreeBook() {
	view := s.bookView()

	s.readStore.EXPECT().FindViewByID(gomock.Any(), view.ID).Return(view, nil)
	s.reservationReads.EXPECT().ListActiveByBook(gomock.Any(), view.ID, nil).Return(nil, nil)

	got, err := s.queries.GetAvailability(context.Background(), view.ID, nil)
	require.NoError(s.T(), err)
	assert.True(s.T(), got.IsAvailable)
	assert.Equal(s.T(), "Available", got.AvailabilitySummary)
	assert.Nil(s.T(), got.CurrentReservationEndDate)
	assert.Nil(s.T(), got.NextReservationStartDate)
	assert.Equal(s.T(), view.Title, got.Title)
}

func (s *BookQueriesTestSuite) TestGetAvailabilityDefaultsToToday() {
	view := s.bookView()

	// Reservation covering the mocked "today" (2026-09-05).
	end := "2026-09-07"
	active := builder.NewReservationBuilder().
		WithBookID(view.ID).
		WithDates("2026-09-03", &end).
		MustBuildDomain()

	s.readStore.EXPECT().FindViewByID(gomock.Any(), view.ID).Return(view, nil)
	s.reservationReads.EXPECT().
		ListActiveByBook(gomock.Any(), view.ID, nil).
		Return([]*reservation.Reservation{active}, nil)

	got, err := s.queries.GetAvailability(context.Background(), view.ID, nil)
	require.NoError(s.T(), err)
	assert.False(s.T(), got.IsAvailable)
	assert.Equal(s.T(), "Reserved until 2026-09-07", got.AvailabilitySummary)
	require.NotNil(s.T(), got.CurrentReservationEndDate)
	assert.Equal(s.T(), time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC), *got.CurrentReservationEndDate)

	// Four days later the window has passed.
	s.clock.Advance(96 * time.Hour)
	s.readStore.EXPECT().FindViewByID(gomock.Any(), view.ID).Return(view, nil)
	s.reservationReads.EXPECT().
		ListActiveByBook(gomock.Any(), view.ID, nil).
		Return([]*reservation.Reservation{active}, nil)

	got, err = s.queries.GetAvailability(context.Background(), view.ID, nil)
	require.NoError(s.T(), err)
	assert.True(s.T(), got.IsAvailable)
	assert.Equal(s.T(), "Available", got.AvailabilitySummary)
}

func (s *BookQueriesTestSuite) TestGetAvailabilityOnExplicitDate() {
	view := s.bookView()

	end := "2026-09-07"
	active := builder.NewReservationBuilder().
		WithBookID(view.ID).
		WithDates("2026-09-03", &end).
		MustBuildDomain()

	s.readStore.EXPECT().FindViewByID(gomock.Any(), view.ID).Return(view, nil)
	s.reservationReads.EXPECT().
		ListActiveByBook(gomock.Any(), view.ID, nil).
		Return([]*reservation.Reservation{active}, nil)

	// Asking about a date after the reservation ends.
	ref := time.Date(2026, 9, 20, 0, 0, 0, 0, time.UTC)
	got, err := s.queries.GetAvailability(context.Background(), view.ID, &ref)
	require.NoError(s.T(), err)
	assert.True(s.T(), got.IsAvailable)
	assert.Equal(s.T(), "Available", got.AvailabilitySummary)
}

func (s *BookQueriesTestSuite) TestGetAvailabilityUnknownBook() {
	id := uuid.New()
	s.readStore.EXPECT().
		FindViewByID(gomock.Any(), id).
		Return(nil, infra.WrapRepoErr("book not found", errs.New("no rows"), infra.KindNotFound))

	_, err := s.queries.GetAvailability(context.Background(), id, nil)
	require.ErrorIs(s.T(), err, errs.ErrBookNotFound)
}
