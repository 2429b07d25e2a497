// Package domain contains the core data types for the trip-booking schema.
// This package has no dependencies on the database layer and is imported by
// every other internal package (repo, service, cmd).
package domain

import "time"

// TripStatus is the lifecycle state of a Trip. It mirrors the Postgres
// trip_status enum, so the set of values is closed on both sides.
type TripStatus string

// The three lifecycle states. Transitions are external: any status may be
// set to any other via TripService.SetStatus. The only state-dependent rule
// in the system is that a COMPLETED trip accepts no new bookings.
const (
	StatusPlanned   TripStatus = "PLANNED"
	StatusOngoing   TripStatus = "ONGOING"
	StatusCompleted TripStatus = "COMPLETED"
)

// Valid reports whether s is a member of the trip_status enum.
func (s TripStatus) Valid() bool {
	switch s {
	case StatusPlanned, StatusOngoing, StatusCompleted:
		return true
	}
	return false
}

// AcceptsBookings reports whether a trip in this status may take new
// bookings. This is the Go-side view of the rule the guard trigger enforces
// authoritatively in the database.
func (s TripStatus) AcceptsBookings() bool {
	return s == StatusPlanned || s == StatusOngoing
}

// Trip represents a bookable travel offering.
// A trip is the top-level aggregate; bookings belong to a trip.
type Trip struct {
	ID          int64      `json:"id"`
	Destination string     `json:"destination"`
	StartDate   time.Time  `json:"start_date"`
	EndDate     time.Time  `json:"end_date"` // always strictly after StartDate (CHECK constraint)
	Price       float64    `json:"price"`    // per-seat price, NUMERIC(10,2) in the database
	Status      TripStatus `json:"status"`
}

// DurationDays returns the trip length in whole days (end minus start).
// The trip_duration SQL function computes the same value server-side; this
// method exists for callers that already hold the row.
func (t Trip) DurationDays() int {
	return int(t.EndDate.Sub(t.StartDate).Hours() / 24)
}
