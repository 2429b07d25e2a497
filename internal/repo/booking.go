package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/nehanema2025/trip-booking/internal/domain"
)

// BookingRepo defines the persistence operations for Bookings.
// Creation goes through the book_trip routine so the guard and audit
// triggers fire on every path; there is no raw-insert escape hatch.
type BookingRepo interface {
	// Create books seats on a trip for a customer via the book_trip routine,
	// stamping today's date. Returns domain.ErrTripCompleted when the trip is
	// COMPLETED, domain.ErrNotFound when the trip or customer does not exist,
	// and domain.ErrValidation when seats fails the CHECK constraint.
	Create(ctx context.Context, customerID, tripID int64, seats int) (domain.Booking, error)

	// GetByID retrieves a single booking by its primary key.
	// Returns domain.ErrNotFound if no booking with that ID exists.
	GetByID(ctx context.Context, id int64) (domain.Booking, error)

	// Delete cancels a booking via the cancel_booking routine. The booking's
	// audit rows are left intact. Returns domain.ErrNotFound for an unknown id.
	Delete(ctx context.Context, id int64) error

	// ListByDateRange returns all bookings whose booking_date falls within
	// the inclusive range, ordered by booking_date then id.
	ListByDateRange(ctx context.Context, rng domain.DateRange) ([]domain.Booking, error)

	// CountByTrip returns the number of bookings per trip, most-booked first,
	// ties broken by ascending trip id. Trips with zero bookings are included
	// with a zero count.
	CountByTrip(ctx context.Context) ([]domain.TripBookingCount, error)

	// MostBooked returns the single trip with the highest booking count.
	// Ties are broken deterministically by lowest trip id. Returns
	// domain.ErrNotFound when there are no trips at all.
	MostBooked(ctx context.Context) (domain.TripBookingCount, error)
}

// pgBookingRepo is the Postgres implementation of BookingRepo.
type pgBookingRepo struct {
	db db
}

// NewBookingRepo constructs a BookingRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewBookingRepo(db db) BookingRepo {
	return &pgBookingRepo{db: db}
}

// bookingColumns is the select list shared by every booking query, in
// scanBooking order.
const bookingColumns = `id, trip_id, customer_id, booking_date, seats`

// Create books a trip through the book_trip routine. The BEFORE trigger
// rejects completed trips and the AFTER trigger writes the audit row, both
// inside this one statement.
func (r *pgBookingRepo) Create(ctx context.Context, customerID, tripID int64, seats int) (domain.Booking, error) {
	const q = `
		SELECT ` + bookingColumns + `
		FROM book_trip(@customer_id, @trip_id, @seats)`

	args := pgx.NamedArgs{
		"customer_id": customerID,
		"trip_id":     tripID,
		"seats":       seats,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanBooking(row)
	if err != nil {
		return domain.Booking{}, fmt.Errorf("repo.BookingRepo.Create: %w", mapPgError(err))
	}
	return result, nil
}

// GetByID retrieves a booking by primary key.
func (r *pgBookingRepo) GetByID(ctx context.Context, id int64) (domain.Booking, error) {
	const q = `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanBooking(row)
	if err != nil {
		return domain.Booking{}, fmt.Errorf("repo.BookingRepo.GetByID: %w", err)
	}
	return result, nil
}

// Delete cancels a booking through the cancel_booking routine.
func (r *pgBookingRepo) Delete(ctx context.Context, id int64) error {
	const q = `SELECT cancel_booking(@id)`

	var deleted int
	if err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}).Scan(&deleted); err != nil {
		return fmt.Errorf("repo.BookingRepo.Delete: %w", err)
	}
	if deleted == 0 {
		return fmt.Errorf("repo.BookingRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// ListByDateRange returns bookings dated within [From, To], both ends
// inclusive.
func (r *pgBookingRepo) ListByDateRange(ctx context.Context, rng domain.DateRange) ([]domain.Booking, error) {
	const q = `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE booking_date BETWEEN @from AND @to
		ORDER BY booking_date, id`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"from": rng.From, "to": rng.To})
	if err != nil {
		return nil, fmt.Errorf("repo.BookingRepo.ListByDateRange: %w", err)
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.BookingRepo.ListByDateRange: scan: %w", err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.BookingRepo.ListByDateRange: rows: %w", err)
	}

	return bookings, nil
}

// countByTripQuery is shared by CountByTrip and MostBooked so the two reads
// can never disagree on ordering or tie-break.
//
// LEFT JOIN so trips with zero bookings still appear; the tie-break is
// deterministic: highest count first, then lowest trip id.
const countByTripQuery = `
	SELECT t.id, t.destination, COUNT(b.id) AS bookings
	FROM trips t
	LEFT JOIN bookings b ON b.trip_id = t.id
	GROUP BY t.id, t.destination
	ORDER BY bookings DESC, t.id`

// CountByTrip returns the bookings-per-trip aggregate.
func (r *pgBookingRepo) CountByTrip(ctx context.Context) ([]domain.TripBookingCount, error) {
	rows, err := r.db.Query(ctx, countByTripQuery)
	if err != nil {
		return nil, fmt.Errorf("repo.BookingRepo.CountByTrip: %w", err)
	}
	defer rows.Close()

	var counts []domain.TripBookingCount
	for rows.Next() {
		var c domain.TripBookingCount
		if err := rows.Scan(&c.TripID, &c.Destination, &c.Bookings); err != nil {
			return nil, fmt.Errorf("repo.BookingRepo.CountByTrip: scan: %w", err)
		}
		counts = append(counts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.BookingRepo.CountByTrip: rows: %w", err)
	}

	return counts, nil
}

// MostBooked returns the top row of the bookings-per-trip aggregate.
func (r *pgBookingRepo) MostBooked(ctx context.Context) (domain.TripBookingCount, error) {
	const q = countByTripQuery + `
	LIMIT 1`

	var c domain.TripBookingCount
	err := r.db.QueryRow(ctx, q).Scan(&c.TripID, &c.Destination, &c.Bookings)
	if err != nil {
		return domain.TripBookingCount{}, fmt.Errorf("repo.BookingRepo.MostBooked: %w", translateNoRows(err))
	}
	return c, nil
}

// scanBooking maps a single database row into a domain.Booking.
func scanBooking(s scanner) (domain.Booking, error) {
	var b domain.Booking
	err := s.Scan(&b.ID, &b.TripID, &b.CustomerID, &b.BookingDate, &b.Seats)
	if err != nil {
		return domain.Booking{}, translateNoRows(err)
	}
	return b, nil
}
