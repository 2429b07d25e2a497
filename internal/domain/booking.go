package domain

import (
	"time"

	"github.com/google/uuid"
)

// Booking represents a reservation of seats on a trip by a customer.
// Both references are required: a booking that points at no trip or no
// customer is not representable in this schema.
type Booking struct {
	ID          int64     `json:"id"`
	TripID      int64     `json:"trip_id"`
	CustomerID  int64     `json:"customer_id"`
	BookingDate time.Time `json:"booking_date"` // stamped with CURRENT_DATE by book_trip
	Seats       int       `json:"seats"`        // always > 0 (CHECK constraint)
}

// BookingLog is one append-only audit record, written by the audit trigger
// for every successful booking insert. Log rows deliberately carry no
// foreign key to bookings so they survive cancellation.
type BookingLog struct {
	ID        uuid.UUID `json:"id"`
	BookingID int64     `json:"booking_id"`
	LogTime   time.Time `json:"log_time"`
}

// TripBookingCount is one row of the bookings-per-trip aggregate.
type TripBookingCount struct {
	TripID      int64  `json:"trip_id"`
	Destination string `json:"destination"`
	Bookings    int64  `json:"bookings"`
}

// DateRange is an inclusive [From, To] interval of booking dates.
type DateRange struct {
	From time.Time
	To   time.Time
}
