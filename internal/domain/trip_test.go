package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/nehanema2025/trip-booking/internal/domain"
)

func TestTripStatus_Valid(t *testing.T) {
	for _, status := range []domain.TripStatus{
		domain.StatusPlanned, domain.StatusOngoing, domain.StatusCompleted,
	} {
		assert.True(t, status.Valid(), "%s should be valid", status)
	}

	for _, status := range []domain.TripStatus{"", "planned", "CANCELLED", "DONE"} {
		assert.False(t, status.Valid(), "%q should be invalid", status)
	}
}

func TestTripStatus_AcceptsBookings(t *testing.T) {
	// The booking gate has exactly two open states and one closed one.
	assert.True(t, domain.StatusPlanned.AcceptsBookings())
	assert.True(t, domain.StatusOngoing.AcceptsBookings())
	assert.False(t, domain.StatusCompleted.AcceptsBookings())
}

func TestTrip_DurationDays(t *testing.T) {
	trip := domain.Trip{
		StartDate: time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 10, 10, 0, 0, 0, 0, time.UTC),
	}

	assert.Equal(t, 9, trip.DurationDays())
}
