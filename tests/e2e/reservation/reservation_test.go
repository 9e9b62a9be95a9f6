//go:build e2e

package reservation_test

import (
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"library-api/internal/handler/dto/request"
	"library-api/internal/handler/dto/response"
	"library-api/tests/common/authtest"
	"library-api/tests/common/dbtest"
	"library-api/tests/common/httptest"
	"library-api/tests/e2e"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	reservationsURL = "/api/reservations"
	dateLayout      = "2006-01-02"
)

type ReservationSuite struct {
	e2e.SharedSuite
}

func TestReservationSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(ReservationSuite))
}

func futureDate(days int) string {
	return time.Now().UTC().AddDate(0, 0, days).Format(dateLayout)
}

func createRequest(bookID, readerID uuid.UUID, start, end string) request.CreateReservationRequest {
	req := request.CreateReservationRequest{
		BookID:    bookID,
		ReaderID:  readerID,
		StartDate: start,
	}
	if end != "" {
		req.EndDate = &end
	}
	return req
}

func (s *ReservationSuite) TestCreateReservation() {
	s.Run("staff creates a reservation for a reader", func() {
		t := s.T()

		token := authtest.CreateStaffAndLogin(t, s.DB, s.Router, "staff@example.com", "staff")
		readerUser := dbtest.CreateTestUser(t, s.DB, "reader@example.com", "reader")
		readerID := dbtest.CreateTestReader(t, s.DB, readerUser, "Jo Reader")
		bookID := dbtest.CreateTestBook(t, s.DB, "The Go Programming Language", "Donovan & Kernighan")

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL,
			createRequest(bookID, readerID, futureDate(3), futureDate(7)), token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var created response.ReservationResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &created))
		require.Equal(t, "pending", created.Status)
		require.Equal(t, bookID, created.BookID)
		require.Equal(t, readerID, created.ReaderID)
		require.Equal(t, futureDate(3), created.StartDate)
	})

	s.Run("overlapping periods are rejected, adjacent ones are not", func() {
		t := s.T()

		token := authtest.CreateStaffAndLogin(t, s.DB, s.Router, "staff@example.com", "staff")
		readerUser := dbtest.CreateTestUser(t, s.DB, "reader@example.com", "reader")
		readerID := dbtest.CreateTestReader(t, s.DB, readerUser, "Jo Reader")
		bookID := dbtest.CreateTestBook(t, s.DB, "Clean Architecture", "Robert C. Martin")

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL,
			createRequest(bookID, readerID, futureDate(3), futureDate(7)), token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		// Shares the end day with the existing window; boundary days conflict.
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL,
			createRequest(bookID, readerID, futureDate(7), futureDate(10)), token)
		require.Equal(t, http.StatusConflict, w.Code, w.Body.String())

		// Starts the day after the existing window ends.
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL,
			createRequest(bookID, readerID, futureDate(8), futureDate(10)), token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	})

	s.Run("concurrent identical requests admit exactly one reservation", func() {
		t := s.T()

		token := authtest.CreateStaffAndLogin(t, s.DB, s.Router, "staff@example.com", "staff")
		bookID := dbtest.CreateTestBook(t, s.DB, "Designing Data-Intensive Applications", "Martin Kleppmann")

		const racers = 2
		readerIDs := make([]uuid.UUID, racers)
		for i := range racers {
			readerUser := dbtest.CreateTestUser(t, s.DB, fmt.Sprintf("racer%d@example.com", i), "reader")
			readerIDs[i] = dbtest.CreateTestReader(t, s.DB, readerUser, fmt.Sprintf("Racer %d", i))
		}

		codes := make([]int, racers)
		var wg sync.WaitGroup
		for i := range racers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL,
					createRequest(bookID, readerIDs[i], futureDate(3), futureDate(7)), token)
				codes[i] = w.Code
			}()
		}
		wg.Wait()

		// The database-level overlap constraint guarantees at most one write
		// wins, regardless of how the two conflict checks interleave.
		created, conflicted := 0, 0
		for _, code := range codes {
			switch code {
			case http.StatusCreated:
				created++
			case http.StatusConflict:
				conflicted++
			default:
				t.Fatalf("unexpected status code %d", code)
			}
		}
		require.Equal(t, 1, created, "exactly one request should win the race")
		require.Equal(t, 1, conflicted)
	})
}

func (s *ReservationSuite) TestReaderSelfService() {
	s.Run("reader reserves for themselves regardless of the submitted reader id", func() {
		t := s.T()

		readerID, token := authtest.CreateReaderAndLogin(t, s.DB, s.Router, "reader@example.com", "Jo Reader")
		otherUser := dbtest.CreateTestUser(t, s.DB, "other@example.com", "reader")
		otherReaderID := dbtest.CreateTestReader(t, s.DB, otherUser, "Other Reader")
		bookID := dbtest.CreateTestBook(t, s.DB, "The Pragmatic Programmer", "Hunt & Thomas")

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL,
			createRequest(bookID, otherReaderID, futureDate(3), futureDate(7)), token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var created response.ReservationResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &created))
		require.Equal(t, readerID, created.ReaderID, "reservation must belong to the authenticated reader")
	})

	s.Run("reader cancels their own reservation, twice is a no-op", func() {
		t := s.T()

		_, token := authtest.CreateReaderAndLogin(t, s.DB, s.Router, "reader@example.com", "Jo Reader")
		bookID := dbtest.CreateTestBook(t, s.DB, "The Mythical Man-Month", "Fred Brooks")

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL,
			createRequest(bookID, uuid.Nil, futureDate(3), futureDate(7)), token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var created response.ReservationResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &created))

		cancelURL := reservationsURL + "/" + created.ID.String() + "/cancel"
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, cancelURL, nil, token)
		require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, cancelURL, nil, token)
		require.Equal(t, http.StatusNoContent, w.Code, "second cancel is idempotent")

		// Cancelled reservations release the window.
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL,
			createRequest(bookID, uuid.Nil, futureDate(3), futureDate(7)), token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	})

	s.Run("reader cannot touch another reader's reservation", func() {
		t := s.T()

		ownerID, ownerToken := authtest.CreateReaderAndLogin(t, s.DB, s.Router, "owner@example.com", "Owner Reader")
		_, intruderToken := authtest.CreateReaderAndLogin(t, s.DB, s.Router, "intruder@example.com", "Intruder Reader")
		bookID := dbtest.CreateTestBook(t, s.DB, "Refactoring", "Martin Fowler")

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL,
			createRequest(bookID, ownerID, futureDate(3), futureDate(7)), ownerToken)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var created response.ReservationResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &created))

		detailURL := reservationsURL + "/" + created.ID.String()

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, detailURL+"/cancel", nil, intruderToken)
		require.Equal(t, http.StatusForbidden, w.Code, w.Body.String())

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, detailURL, nil, intruderToken)
		require.Equal(t, http.StatusForbidden, w.Code, w.Body.String())
	})
}

func (s *ReservationSuite) TestLifecycle() {
	s.Run("forward transitions succeed, backward ones fail", func() {
		t := s.T()

		token := authtest.CreateStaffAndLogin(t, s.DB, s.Router, "staff@example.com", "staff")
		readerUser := dbtest.CreateTestUser(t, s.DB, "reader@example.com", "reader")
		readerID := dbtest.CreateTestReader(t, s.DB, readerUser, "Jo Reader")
		bookID := dbtest.CreateTestBook(t, s.DB, "Working Effectively with Legacy Code", "Michael Feathers")

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL,
			createRequest(bookID, readerID, futureDate(3), futureDate(7)), token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var created response.ReservationResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &created))
		detailURL := reservationsURL + "/" + created.ID.String()

		update := func(status string) *request.UpdateReservationRequest {
			end := futureDate(7)
			return &request.UpdateReservationRequest{
				BookID:    bookID,
				ReaderID:  readerID,
				StartDate: futureDate(3),
				EndDate:   &end,
				Status:    &status,
			}
		}

		for _, status := range []string{"confirmed", "collected", "completed"} {
			w = httptest.PerformRequest(t, s.Router, http.MethodPut, detailURL, update(status), token)
			require.Equal(t, http.StatusOK, w.Code, "transition to %s: %s", status, w.Body.String())

			var updated response.ReservationResponse
			require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &updated))
			require.Equal(t, status, updated.Status)
		}

		w = httptest.PerformRequest(t, s.Router, http.MethodPut, detailURL, update("pending"), token)
		require.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())

		// Completed is terminal; cancellation is no longer possible.
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, detailURL+"/cancel", nil, token)
		require.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
	})

	s.Run("hard delete is admin only", func() {
		t := s.T()

		staffToken := authtest.CreateStaffAndLogin(t, s.DB, s.Router, "staff@example.com", "staff")
		adminToken := authtest.CreateStaffAndLogin(t, s.DB, s.Router, "admin@example.com", "admin")
		readerUser := dbtest.CreateTestUser(t, s.DB, "reader@example.com", "reader")
		readerID := dbtest.CreateTestReader(t, s.DB, readerUser, "Jo Reader")
		bookID := dbtest.CreateTestBook(t, s.DB, "Domain-Driven Design", "Eric Evans")

		reservationID := dbtest.CreateTestReservation(t, s.DB, bookID, readerID,
			time.Now().UTC().AddDate(0, 0, 3), nil, "pending")
		detailURL := reservationsURL + "/" + reservationID.String()

		w := httptest.PerformRequest(t, s.Router, http.MethodDelete, detailURL, nil, staffToken)
		require.Equal(t, http.StatusForbidden, w.Code, w.Body.String())

		w = httptest.PerformRequest(t, s.Router, http.MethodDelete, detailURL, nil, adminToken)
		require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, detailURL, nil, adminToken)
		require.Equal(t, http.StatusNotFound, w.Code, w.Body.String())
	})
}

func (s *ReservationSuite) TestNotificationOutbox() {
	s.Run("create and cancel each record an outbox job", func() {
		t := s.T()

		_, token := authtest.CreateReaderAndLogin(t, s.DB, s.Router, "reader@example.com", "Jo Reader")
		bookID := dbtest.CreateTestBook(t, s.DB, "Structure and Interpretation of Computer Programs", "Abelson & Sussman")

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL,
			createRequest(bookID, uuid.Nil, futureDate(3), futureDate(7)), token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var created response.ReservationResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &created))

		require.Equal(t, 1, dbtest.CountNotificationJobs(t, s.DB, "reservation_created"),
			"creating a reservation must write an outbox row")

		w = httptest.PerformRequest(t, s.Router, http.MethodPost,
			reservationsURL+"/"+created.ID.String()+"/cancel", nil, token)
		require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

		require.Equal(t, 1, dbtest.CountNotificationJobs(t, s.DB, "reservation_cancelled"),
			"cancelling a reservation must write an outbox row")
	})
}

func (s *ReservationSuite) TestAvailability() {
	s.Run("availability reflects the active reservation", func() {
		t := s.T()

		token := authtest.CreateStaffAndLogin(t, s.DB, s.Router, "staff@example.com", "staff")
		readerUser := dbtest.CreateTestUser(t, s.DB, "reader@example.com", "reader")
		readerID := dbtest.CreateTestReader(t, s.DB, readerUser, "Jo Reader")
		bookID := dbtest.CreateTestBook(t, s.DB, "Site Reliability Engineering", "Beyer et al.")

		start := time.Now().UTC().AddDate(0, 0, -1)
		end := time.Now().UTC().AddDate(0, 0, 2)
		dbtest.CreateTestReservation(t, s.DB, bookID, readerID, start, &end, "confirmed")

		availabilityURL := "/api/books/" + bookID.String() + "/availability"

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, availabilityURL, nil, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var availability response.BookAvailabilityResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &availability))
		require.False(t, availability.IsAvailable)
		require.Equal(t, "Reserved until "+end.Format(dateLayout), availability.AvailabilitySummary)

		// Same book, asked about a date after the reservation ends.
		w = httptest.PerformRequest(t, s.Router, http.MethodGet,
			availabilityURL+"?date="+end.AddDate(0, 0, 1).Format(dateLayout), nil, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &availability))
		require.True(t, availability.IsAvailable)
		require.Equal(t, "Available", availability.AvailabilitySummary)
	})
}
