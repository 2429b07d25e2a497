// Package repo contains all database access logic for the trip-booking
// schema. Each resource has its own file with an interface and a Postgres
// implementation. No business logic lives here — only SQL and type mapping.
// Writes for the four named routines (add_trip, get_trips_by_status,
// book_trip, cancel_booking) go through those routines rather than inline
// statements, so the Go layer and any other caller share one code path.
package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/nehanema2025/trip-booking/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// TripRepo defines the persistence operations for Trips.
// The service layer depends on this interface, not the concrete Postgres
// implementation, which allows the service to be unit-tested with a mock.
type TripRepo interface {
	// Create inserts a new trip via the add_trip routine and returns the
	// persisted record (with DB-generated id and defaulted status populated).
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// GetByID retrieves a single trip by its primary key.
	// Returns domain.ErrNotFound if no trip with that ID exists.
	GetByID(ctx context.Context, id int64) (domain.Trip, error)

	// ListByStatus returns all trips in the given status via the
	// get_trips_by_status routine, ordered by id ascending.
	ListByStatus(ctx context.Context, status domain.TripStatus) ([]domain.Trip, error)

	// ListUnderPrice returns all trips priced strictly below the threshold,
	// ordered by price ascending.
	ListUnderPrice(ctx context.Context, maxPrice float64) ([]domain.Trip, error)

	// SetStatus updates a trip's status. Returns domain.ErrNotFound if no
	// trip with that ID exists.
	SetStatus(ctx context.Context, id int64, status domain.TripStatus) error

	// Duration returns the trip length in days via the trip_duration SQL
	// function. Returns domain.ErrNotFound for an unknown id.
	Duration(ctx context.Context, id int64) (int, error)

	// Revenue returns SUM(seats * price) over the trip's bookings via the
	// trip_revenue SQL function. The result is nil when the trip has no
	// bookings — callers must not assume zero.
	Revenue(ctx context.Context, id int64) (*float64, error)
}

// pgTripRepo is the Postgres implementation of TripRepo.
type pgTripRepo struct {
	db db
}

// NewTripRepo constructs a TripRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewTripRepo(db db) TripRepo {
	return &pgTripRepo{db: db}
}

// tripColumns is the select list shared by every trip query, in scanTrip order.
const tripColumns = `id, destination, start_date, end_date, price, status`

// Create inserts a new trip through the add_trip routine and returns the
// full persisted record.
func (r *pgTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	const q = `
		SELECT ` + tripColumns + `
		FROM add_trip(@destination, @start_date, @end_date, @price, @status)`

	args := pgx.NamedArgs{
		"destination": trip.Destination,
		"start_date":  trip.StartDate,
		"end_date":    trip.EndDate,
		"price":       trip.Price,
		"status":      trip.Status,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanTrip(row)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: %w", mapPgError(err))
	}
	return result, nil
}

// GetByID retrieves a trip by primary key.
func (r *pgTripRepo) GetByID(ctx context.Context, id int64) (domain.Trip, error) {
	const q = `
		SELECT ` + tripColumns + `
		FROM trips
		WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanTrip(row)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", err)
	}
	return result, nil
}

// ListByStatus returns all trips in the given status, ordered by id.
func (r *pgTripRepo) ListByStatus(ctx context.Context, status domain.TripStatus) ([]domain.Trip, error) {
	const q = `
		SELECT ` + tripColumns + `
		FROM get_trips_by_status(@status)`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"status": status})
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.ListByStatus: %w", err)
	}
	defer rows.Close()

	return collectTrips(rows, "ListByStatus")
}

// ListUnderPrice returns all trips priced strictly below maxPrice,
// cheapest first.
func (r *pgTripRepo) ListUnderPrice(ctx context.Context, maxPrice float64) ([]domain.Trip, error) {
	const q = `
		SELECT ` + tripColumns + `
		FROM trips
		WHERE price < @max_price
		ORDER BY price, id`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"max_price": maxPrice})
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.ListUnderPrice: %w", err)
	}
	defer rows.Close()

	return collectTrips(rows, "ListUnderPrice")
}

// SetStatus updates a trip's lifecycle status. Transitions carry no rules of
// their own — the completed-trip booking gate is enforced by the guard
// trigger at booking time, not here.
func (r *pgTripRepo) SetStatus(ctx context.Context, id int64, status domain.TripStatus) error {
	const q = `UPDATE trips SET status = @status WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id, "status": status})
	if err != nil {
		return fmt.Errorf("repo.TripRepo.SetStatus: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.TripRepo.SetStatus: %w", domain.ErrNotFound)
	}
	return nil
}

// Duration returns the whole-day length of the trip.
func (r *pgTripRepo) Duration(ctx context.Context, id int64) (int, error) {
	const q = `SELECT trip_duration(@id)`

	// The function returns NULL for an unknown id rather than zero rows,
	// so scan through a pointer and translate nil to ErrNotFound.
	var days *int
	if err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}).Scan(&days); err != nil {
		return 0, fmt.Errorf("repo.TripRepo.Duration: %w", err)
	}
	if days == nil {
		return 0, fmt.Errorf("repo.TripRepo.Duration: %w", domain.ErrNotFound)
	}
	return *days, nil
}

// Revenue returns the trip's booked revenue, or nil when it has no bookings.
// Existence of the trip is the caller's concern (the SQL function cannot
// tell "unknown trip" and "no bookings" apart — both are NULL).
func (r *pgTripRepo) Revenue(ctx context.Context, id int64) (*float64, error) {
	const q = `SELECT trip_revenue(@id)`

	var revenue *float64
	if err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}).Scan(&revenue); err != nil {
		return nil, fmt.Errorf("repo.TripRepo.Revenue: %w", err)
	}
	return revenue, nil
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing the scan
// helpers to be reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// scanTrip maps a single database row into a domain.Trip.
func scanTrip(s scanner) (domain.Trip, error) {
	var t domain.Trip
	err := s.Scan(&t.ID, &t.Destination, &t.StartDate, &t.EndDate, &t.Price, &t.Status)
	if err != nil {
		return domain.Trip{}, translateNoRows(err)
	}
	return t, nil
}

// collectTrips drains rows into a slice, wrapping errors with the calling
// operation's name.
func collectTrips(rows pgx.Rows, op string) ([]domain.Trip, error) {
	var trips []domain.Trip
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.TripRepo.%s: scan: %w", op, err)
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.TripRepo.%s: rows: %w", op, err)
	}
	return trips, nil
}
