package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing required field, end date not after start
// date, non-positive price or seats). The database CHECK constraints enforce
// the same rules as a last line of defense; repo functions map those
// violations to this error too.
var ErrValidation = errors.New("validation error")

// ErrDuplicate is returned when an insert violates a uniqueness constraint
// (customer email, or phone when present).
var ErrDuplicate = errors.New("duplicate value")

// ErrTripCompleted is returned when a booking is attempted against a trip
// whose status is COMPLETED. The rejection originates in the guard trigger,
// so it holds no matter which path inserts the booking.
var ErrTripCompleted = errors.New("trip already completed")
