//go:build unit

package reservation_test

import (
	"testing"

	"library-api/internal/domain/reservation"
	"library-api/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reservationWithDates(t *testing.T, start string, end *string, status reservation.Status) *reservation.Reservation {
	t.Helper()
	res, err := builder.NewReservationBuilder().
		WithDates(start, end).
		WithStatus(status).
		BuildDomain()
	require.NoError(t, err)
	return res
}

func TestHasConflict(t *testing.T) {
	t.Run("empty set never conflicts", func(t *testing.T) {
		candidate := mustRange(t, "2026-09-10", strPtr("2026-09-14"))
		assert.False(t, reservation.HasConflict(candidate, nil, uuid.Nil))
	})

	t.Run("overlapping active reservation conflicts", func(t *testing.T) {
		existing := []*reservation.Reservation{
			reservationWithDates(t, "2026-09-12", strPtr("2026-09-16"), reservation.StatusConfirmed),
		}
		candidate := mustRange(t, "2026-09-10", strPtr("2026-09-14"))

		assert.True(t, reservation.HasConflict(candidate, existing, uuid.Nil))
	})

	t.Run("boundary day conflicts", func(t *testing.T) {
		existing := []*reservation.Reservation{
			reservationWithDates(t, "2026-09-14", strPtr("2026-09-20"), reservation.StatusPending),
		}
		candidate := mustRange(t, "2026-09-10", strPtr("2026-09-14"))

		assert.True(t, reservation.HasConflict(candidate, existing, uuid.Nil))
	})

	t.Run("adjacent windows do not conflict", func(t *testing.T) {
		existing := []*reservation.Reservation{
			reservationWithDates(t, "2026-09-15", strPtr("2026-09-20"), reservation.StatusPending),
		}
		candidate := mustRange(t, "2026-09-10", strPtr("2026-09-14"))

		assert.False(t, reservation.HasConflict(candidate, existing, uuid.Nil))
	})

	t.Run("inactive reservations never block", func(t *testing.T) {
		existing := []*reservation.Reservation{
			reservationWithDates(t, "2026-09-10", strPtr("2026-09-14"), reservation.StatusCancelled),
			reservationWithDates(t, "2026-09-10", strPtr("2026-09-14"), reservation.StatusCompleted),
		}
		candidate := mustRange(t, "2026-09-10", strPtr("2026-09-14"))

		assert.False(t, reservation.HasConflict(candidate, existing, uuid.Nil))
	})

	t.Run("excluded reservation is skipped", func(t *testing.T) {
		res := reservationWithDates(t, "2026-09-10", strPtr("2026-09-14"), reservation.StatusPending)
		candidate := mustRange(t, "2026-09-11", strPtr("2026-09-13"))

		assert.True(t, reservation.HasConflict(candidate, []*reservation.Reservation{res}, uuid.Nil))
		assert.False(t, reservation.HasConflict(candidate, []*reservation.Reservation{res}, res.ID()))
	})

	t.Run("exclusion only skips the matching reservation", func(t *testing.T) {
		own := reservationWithDates(t, "2026-09-10", strPtr("2026-09-14"), reservation.StatusPending)
		other := reservationWithDates(t, "2026-09-12", strPtr("2026-09-18"), reservation.StatusConfirmed)
		candidate := mustRange(t, "2026-09-11", strPtr("2026-09-13"))

		assert.True(t, reservation.HasConflict(candidate, []*reservation.Reservation{own, other}, own.ID()))
	})

	t.Run("open ended existing blocks only its start day", func(t *testing.T) {
		existing := []*reservation.Reservation{
			reservationWithDates(t, "2026-09-12", nil, reservation.StatusPending),
		}

		covering := mustRange(t, "2026-09-10", strPtr("2026-09-14"))
		after := mustRange(t, "2026-09-13", strPtr("2026-09-14"))

		assert.True(t, reservation.HasConflict(covering, existing, uuid.Nil))
		assert.False(t, reservation.HasConflict(after, existing, uuid.Nil))
	})
}
