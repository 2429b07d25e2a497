// Package service contains the business logic for the trip-booking schema.
// Services validate inputs, enforce business rules, and orchestrate repo
// calls. No SQL lives here — services depend on repo interfaces, not
// implementations.
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/nehanema2025/trip-booking/internal/domain"
	"github.com/nehanema2025/trip-booking/internal/repo"
)

// TripService implements business logic for Trip operations.
type TripService struct {
	trips repo.TripRepo
}

// NewTripService constructs a TripService backed by the provided TripRepo.
func NewTripService(r repo.TripRepo) *TripService {
	return &TripService{trips: r}
}

// Add validates and persists a new trip. An empty status defaults to
// PLANNED. Returns domain.ErrValidation if input violates business rules.
func (s *TripService) Add(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	if trip.Status == "" {
		trip.Status = domain.StatusPlanned
	}
	if err := validateTrip(trip); err != nil {
		return domain.Trip{}, err
	}
	result, err := s.trips.Create(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Add: %w", err)
	}
	return result, nil
}

// GetByID returns a single trip by ID.
// Returns domain.ErrNotFound if no trip with that ID exists.
func (s *TripService) GetByID(ctx context.Context, id int64) (domain.Trip, error) {
	result, err := s.trips.GetByID(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetByID: %w", err)
	}
	return result, nil
}

// ListByStatus returns all trips in the given status, ordered by id.
// Always returns a non-nil slice so callers can safely range over it.
func (s *TripService) ListByStatus(ctx context.Context, status domain.TripStatus) ([]domain.Trip, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrValidation, status)
	}
	trips, err := s.trips.ListByStatus(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.ListByStatus: %w", err)
	}
	if trips == nil {
		return []domain.Trip{}, nil
	}
	return trips, nil
}

// ListUnderPrice returns all trips priced strictly below the threshold.
// Always returns a non-nil slice so callers can safely range over it.
func (s *TripService) ListUnderPrice(ctx context.Context, maxPrice float64) ([]domain.Trip, error) {
	if maxPrice <= 0 {
		return nil, fmt.Errorf("%w: price threshold must be positive", domain.ErrValidation)
	}
	trips, err := s.trips.ListUnderPrice(ctx, maxPrice)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.ListUnderPrice: %w", err)
	}
	if trips == nil {
		return []domain.Trip{}, nil
	}
	return trips, nil
}

// SetStatus moves a trip to the given lifecycle status. Any status may
// transition to any other — the completed-trip booking gate is the only
// state-dependent rule, and it lives at booking time.
func (s *TripService) SetStatus(ctx context.Context, id int64, status domain.TripStatus) error {
	if !status.Valid() {
		return fmt.Errorf("%w: unknown status %q", domain.ErrValidation, status)
	}
	if err := s.trips.SetStatus(ctx, id, status); err != nil {
		return fmt.Errorf("service.TripService.SetStatus: %w", err)
	}
	return nil
}

// Duration returns the trip length in whole days.
// Returns domain.ErrNotFound for an unknown trip id.
func (s *TripService) Duration(ctx context.Context, id int64) (int, error) {
	days, err := s.trips.Duration(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("service.TripService.Duration: %w", err)
	}
	return days, nil
}

// Revenue returns the trip's booked revenue (sum of seats times price).
// The result is nil when the trip exists but has no bookings — callers must
// handle that explicitly rather than assuming zero.
// Returns domain.ErrNotFound for an unknown trip id.
func (s *TripService) Revenue(ctx context.Context, id int64) (*float64, error) {
	// The SQL function returns NULL for both "unknown trip" and "no
	// bookings", so existence is checked first to keep the two cases apart.
	if _, err := s.trips.GetByID(ctx, id); err != nil {
		return nil, fmt.Errorf("service.TripService.Revenue: %w", err)
	}
	revenue, err := s.trips.Revenue(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.Revenue: %w", err)
	}
	return revenue, nil
}

// validateTrip enforces the write-time rules for trips.
//   - Destination must be non-empty (whitespace-only is rejected).
//   - EndDate must be strictly after StartDate.
//   - Price must be positive.
//   - Status must be a member of the trip_status enum.
func validateTrip(trip domain.Trip) error {
	if strings.TrimSpace(trip.Destination) == "" {
		return fmt.Errorf("%w: destination is required", domain.ErrValidation)
	}
	if trip.StartDate.IsZero() || trip.EndDate.IsZero() {
		return fmt.Errorf("%w: start_date and end_date are required", domain.ErrValidation)
	}
	if !trip.EndDate.After(trip.StartDate) {
		return fmt.Errorf("%w: end_date must be after start_date", domain.ErrValidation)
	}
	if trip.Price <= 0 {
		return fmt.Errorf("%w: price must be positive", domain.ErrValidation)
	}
	if !trip.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", domain.ErrValidation, trip.Status)
	}
	return nil
}
