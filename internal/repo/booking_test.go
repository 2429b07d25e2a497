package repo_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nehanema2025/trip-booking/internal/domain"
	"github.com/nehanema2025/trip-booking/internal/repo"
)

// countLogRows returns the total number of booking_log rows visible in the
// test transaction. Used to prove rejected bookings leave no audit trace.
func countLogRows(t *testing.T, tx pgx.Tx) int64 {
	t.Helper()
	var n int64
	err := tx.QueryRow(context.Background(), `SELECT COUNT(*) FROM booking_log`).Scan(&n)
	require.NoError(t, err)
	return n
}

func TestBookingRepo_Create(t *testing.T) {
	tr := newTestRepos(t)

	trip := mustTrip(t, tr, tripFixture())
	customer := mustCustomer(t, tr, "booker@example.com")

	got, err := tr.bookings.Create(context.Background(), customer.ID, trip.ID, 2)

	require.NoError(t, err)
	assert.Positive(t, got.ID)
	assert.Equal(t, trip.ID, got.TripID)
	assert.Equal(t, customer.ID, got.CustomerID)
	assert.Equal(t, 2, got.Seats)
	assert.False(t, got.BookingDate.IsZero(), "book_trip should stamp today's date")
}

func TestBookingRepo_Create_WritesExactlyOneAuditRow(t *testing.T) {
	tr := newTestRepos(t)
	ctx := context.Background()

	trip := mustTrip(t, tr, tripFixture())
	customer := mustCustomer(t, tr, "audited@example.com")

	booking := mustBooking(t, tr, customer.ID, trip.ID, 1)

	n, err := tr.logs.CountByBookingID(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n, "every booking insert appends exactly one log row")

	logs, err := tr.logs.ListByBookingID(ctx, booking.ID)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, booking.ID, logs[0].BookingID)
	assert.NotEqual(t, uuid.UUID{}, logs[0].ID, "log id should be DB-generated")
	assert.False(t, logs[0].LogTime.IsZero(), "log_time should be stamped by the DB")
}

func TestBookingRepo_Create_CompletedTripRejected(t *testing.T) {
	tr := newTestRepos(t)
	ctx := context.Background()

	trip := mustTrip(t, tr, tripFixture())
	customer := mustCustomer(t, tr, "too-late@example.com")
	require.NoError(t, tr.trips.SetStatus(ctx, trip.ID, domain.StatusCompleted))

	logsBefore := countLogRows(t, tr.tx)

	inner := tr.savepoint(t)
	_, err := repo.NewBookingRepo(inner).Create(ctx, customer.ID, trip.ID, 2)
	assert.ErrorIs(t, err, domain.ErrTripCompleted)
	require.NoError(t, inner.Rollback(ctx))

	// All-or-nothing: neither a booking nor an audit row was written.
	counts, err := tr.bookings.CountByTrip(ctx)
	require.NoError(t, err)
	for _, c := range counts {
		if c.TripID == trip.ID {
			assert.Zero(t, c.Bookings, "rejected booking must not be counted")
		}
	}
	assert.Equal(t, logsBefore, countLogRows(t, tr.tx), "rejected booking must not be audited")
}

func TestBookingRepo_Create_OngoingTripAllowed(t *testing.T) {
	tr := newTestRepos(t)
	ctx := context.Background()

	trip := mustTrip(t, tr, tripFixture())
	customer := mustCustomer(t, tr, "just-in-time@example.com")
	require.NoError(t, tr.trips.SetStatus(ctx, trip.ID, domain.StatusOngoing))

	// The gate only closes on COMPLETED; ONGOING trips still take bookings.
	_, err := tr.bookings.Create(ctx, customer.ID, trip.ID, 1)

	assert.NoError(t, err)
}

func TestBookingRepo_Create_NonPositiveSeatsRejected(t *testing.T) {
	tr := newTestRepos(t)
	ctx := context.Background()

	trip := mustTrip(t, tr, tripFixture())
	customer := mustCustomer(t, tr, "zero-seats@example.com")

	_, err := repo.NewBookingRepo(tr.savepoint(t)).Create(ctx, customer.ID, trip.ID, 0)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestBookingRepo_Create_UnknownTripRejected(t *testing.T) {
	tr := newTestRepos(t)
	ctx := context.Background()

	customer := mustCustomer(t, tr, "ghost-trip@example.com")

	_, err := repo.NewBookingRepo(tr.savepoint(t)).Create(ctx, customer.ID, 999999999, 1)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBookingRepo_Create_UnknownCustomerRejected(t *testing.T) {
	tr := newTestRepos(t)
	ctx := context.Background()

	trip := mustTrip(t, tr, tripFixture())

	_, err := repo.NewBookingRepo(tr.savepoint(t)).Create(ctx, 999999999, trip.ID, 1)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBookingRepo_Delete(t *testing.T) {
	tr := newTestRepos(t)
	ctx := context.Background()

	trip := mustTrip(t, tr, tripFixture())
	customer := mustCustomer(t, tr, "canceller@example.com")
	booking := mustBooking(t, tr, customer.ID, trip.ID, 2)

	err := tr.bookings.Delete(ctx, booking.ID)
	require.NoError(t, err)

	_, err = tr.bookings.GetByID(ctx, booking.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "booking should be gone after cancellation")

	// The audit trail is permanent: cancellation must not cascade into it.
	n, err := tr.logs.CountByBookingID(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n, "log rows must survive cancellation")
}

func TestBookingRepo_Delete_NotFound(t *testing.T) {
	tr := newTestRepos(t)

	err := tr.bookings.Delete(context.Background(), 999999999)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBookingRepo_ListByDateRange(t *testing.T) {
	tr := newTestRepos(t)
	ctx := context.Background()

	trip := mustTrip(t, tr, tripFixture())
	customer := mustCustomer(t, tr, "ranger@example.com")

	// book_trip always stamps today, so dated rows are inserted directly.
	// The insert still runs both triggers, which is fine here.
	for _, day := range []string{"2026-03-01", "2026-03-15", "2026-03-31", "2026-04-01"} {
		_, err := tr.tx.Exec(ctx, `
			INSERT INTO bookings (trip_id, customer_id, booking_date, seats)
			VALUES ($1, $2, $3::date, 1)`, trip.ID, customer.ID, day)
		require.NoError(t, err)
	}

	got, err := tr.bookings.ListByDateRange(ctx, domain.DateRange{
		From: date(2026, 3, 1),
		To:   date(2026, 3, 31),
	})

	require.NoError(t, err)
	// Both endpoints are inclusive: March 1 and March 31 are in, April 1 is out.
	require.Len(t, got, 3)
	assert.True(t, got[0].BookingDate.Equal(date(2026, 3, 1)), "range start is inclusive")
	assert.True(t, got[2].BookingDate.Equal(date(2026, 3, 31)), "range end is inclusive")
}

func TestBookingRepo_CountByTrip_IncludesZeroBookingTrips(t *testing.T) {
	tr := newTestRepos(t)
	ctx := context.Background()

	booked := mustTrip(t, tr, tripFixture())
	lonely := tripFixture()
	lonely.Destination = "Ljubljana"
	lonelyTrip := mustTrip(t, tr, lonely)

	customer := mustCustomer(t, tr, "counter@example.com")
	mustBooking(t, tr, customer.ID, booked.ID, 1)
	mustBooking(t, tr, customer.ID, booked.ID, 2)

	counts, err := tr.bookings.CountByTrip(ctx)

	require.NoError(t, err)
	byTrip := make(map[int64]int64, len(counts))
	for _, c := range counts {
		byTrip[c.TripID] = c.Bookings
	}
	assert.Equal(t, int64(2), byTrip[booked.ID])
	assert.Equal(t, int64(0), byTrip[lonelyTrip.ID], "zero-booking trips still appear")
}

func TestBookingRepo_MostBooked(t *testing.T) {
	tr := newTestRepos(t)
	ctx := context.Background()

	quiet := mustTrip(t, tr, tripFixture())
	busy := tripFixture()
	busy.Destination = "Hanoi"
	busyTrip := mustTrip(t, tr, busy)

	customer := mustCustomer(t, tr, "busy@example.com")
	mustBooking(t, tr, customer.ID, quiet.ID, 1)
	mustBooking(t, tr, customer.ID, busyTrip.ID, 1)
	mustBooking(t, tr, customer.ID, busyTrip.ID, 1)

	top, err := tr.bookings.MostBooked(ctx)

	require.NoError(t, err)
	assert.Equal(t, busyTrip.ID, top.TripID)
	assert.Equal(t, int64(2), top.Bookings)
}

func TestBookingRepo_MostBooked_TieBreaksOnLowestTripID(t *testing.T) {
	tr := newTestRepos(t)
	ctx := context.Background()

	// Ten trips, one booking each — an all-ways tie.
	var lowest int64
	for i := 0; i < 10; i++ {
		trip := tripFixture()
		trip.Destination = fmt.Sprintf("Destination %d", i)
		created := mustTrip(t, tr, trip)
		if i == 0 {
			lowest = created.ID
		}

		customer := mustCustomer(t, tr, fmt.Sprintf("tie-%d@example.com", i))
		mustBooking(t, tr, customer.ID, created.ID, 1)
	}

	top, err := tr.bookings.MostBooked(ctx)

	require.NoError(t, err)
	assert.Equal(t, int64(1), top.Bookings)
	assert.Equal(t, lowest, top.TripID, "tie must break to the lowest trip id")
}
