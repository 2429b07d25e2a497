package repo

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/nehanema2025/trip-booking/internal/domain"
)

// Postgres error codes this layer translates into domain sentinels.
// See https://www.postgresql.org/docs/current/errcodes-appendix.html.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
	pgRaiseException      = "P0001" // the guard trigger's RAISE EXCEPTION
)

// mapPgError translates driver-level constraint failures into the domain's
// sentinel errors so callers can use errors.Is without importing pgconn.
// Errors that are not recognized Postgres violations pass through unchanged.
func mapPgError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case pgUniqueViolation:
		return fmt.Errorf("%w: %s", domain.ErrDuplicate, pgErr.ConstraintName)
	case pgForeignKeyViolation:
		// The only FKs in the schema point from bookings to trips/customers,
		// so a violation means the referenced row does not exist.
		return fmt.Errorf("%w: %s", domain.ErrNotFound, pgErr.ConstraintName)
	case pgCheckViolation:
		return fmt.Errorf("%w: %s", domain.ErrValidation, pgErr.ConstraintName)
	case pgRaiseException:
		// The schema's only RAISE is the completed-trip booking guard;
		// keep its message, which names the offending trip.
		return fmt.Errorf("%w: %s", domain.ErrTripCompleted, pgErr.Message)
	}
	return err
}

// translateNoRows converts pgx.ErrNoRows into domain.ErrNotFound.
func translateNoRows(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	return err
}
