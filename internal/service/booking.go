package service

import (
	"context"
	"fmt"

	"github.com/nehanema2025/trip-booking/internal/domain"
	"github.com/nehanema2025/trip-booking/internal/repo"
)

// BookingService implements business logic for Booking operations.
// It holds the booking and audit-log repos; the state-dependent rules
// (completed-trip gate, audit append) are enforced by the schema's triggers
// inside the insert itself, so this layer stays thin.
type BookingService struct {
	bookings repo.BookingRepo
	logs     repo.BookingLogRepo
}

// NewBookingService constructs a BookingService backed by the provided repos.
func NewBookingService(bookings repo.BookingRepo, logs repo.BookingLogRepo) *BookingService {
	return &BookingService{bookings: bookings, logs: logs}
}

// Book reserves seats on a trip for a customer, dated today.
// Returns domain.ErrValidation for non-positive seats,
// domain.ErrTripCompleted when the trip no longer accepts bookings, and
// domain.ErrNotFound when the trip or customer does not exist.
// On success exactly one audit row has been appended atomically with the
// booking.
func (s *BookingService) Book(ctx context.Context, customerID, tripID int64, seats int) (domain.Booking, error) {
	if seats <= 0 {
		return domain.Booking{}, fmt.Errorf("%w: seats must be positive", domain.ErrValidation)
	}
	result, err := s.bookings.Create(ctx, customerID, tripID, seats)
	if err != nil {
		return domain.Booking{}, fmt.Errorf("service.BookingService.Book: %w", err)
	}
	return result, nil
}

// Cancel deletes a booking by id. The booking's audit rows are left intact:
// the log records that the booking existed, not that it still does.
// Returns domain.ErrNotFound for an unknown id.
func (s *BookingService) Cancel(ctx context.Context, bookingID int64) error {
	if err := s.bookings.Delete(ctx, bookingID); err != nil {
		return fmt.Errorf("service.BookingService.Cancel: %w", err)
	}
	return nil
}

// GetByID returns a single booking by ID.
// Returns domain.ErrNotFound if no booking with that ID exists.
func (s *BookingService) GetByID(ctx context.Context, id int64) (domain.Booking, error) {
	result, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return domain.Booking{}, fmt.Errorf("service.BookingService.GetByID: %w", err)
	}
	return result, nil
}

// ListByDateRange returns bookings dated within the inclusive range.
// Always returns a non-nil slice so callers can safely range over it.
func (s *BookingService) ListByDateRange(ctx context.Context, rng domain.DateRange) ([]domain.Booking, error) {
	if rng.From.IsZero() || rng.To.IsZero() {
		return nil, fmt.Errorf("%w: both range bounds are required", domain.ErrValidation)
	}
	if rng.To.Before(rng.From) {
		return nil, fmt.Errorf("%w: range end must not be before range start", domain.ErrValidation)
	}
	bookings, err := s.bookings.ListByDateRange(ctx, rng)
	if err != nil {
		return nil, fmt.Errorf("service.BookingService.ListByDateRange: %w", err)
	}
	if bookings == nil {
		return []domain.Booking{}, nil
	}
	return bookings, nil
}

// CountByTrip returns the bookings-per-trip aggregate, most-booked first.
// Always returns a non-nil slice so callers can safely range over it.
func (s *BookingService) CountByTrip(ctx context.Context) ([]domain.TripBookingCount, error) {
	counts, err := s.bookings.CountByTrip(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.BookingService.CountByTrip: %w", err)
	}
	if counts == nil {
		return []domain.TripBookingCount{}, nil
	}
	return counts, nil
}

// MostBooked returns the trip with the highest booking count; on a tie the
// lowest trip id wins. Returns domain.ErrNotFound when no trips exist.
func (s *BookingService) MostBooked(ctx context.Context) (domain.TripBookingCount, error) {
	top, err := s.bookings.MostBooked(ctx)
	if err != nil {
		return domain.TripBookingCount{}, fmt.Errorf("service.BookingService.MostBooked: %w", err)
	}
	return top, nil
}

// AuditTrail returns the audit rows for a booking, oldest first. The
// booking itself may already be cancelled; its trail remains.
// Always returns a non-nil slice so callers can safely range over it.
func (s *BookingService) AuditTrail(ctx context.Context, bookingID int64) ([]domain.BookingLog, error) {
	logs, err := s.logs.ListByBookingID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("service.BookingService.AuditTrail: %w", err)
	}
	if logs == nil {
		return []domain.BookingLog{}, nil
	}
	return logs, nil
}
