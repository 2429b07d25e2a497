// Package main loads the illustrative sample dataset through the service
// layer and runs the report queries against it: ten trips with one booking
// each (a deliberate all-ways tie for the most-booked report), plus a pair
// of extra bookings to exercise the revenue function.
//
// This is a dev fixture, not a client surface. Run cmd/migrate first; the
// seed is not idempotent and assumes an empty database.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nehanema2025/trip-booking/internal/config"
	"github.com/nehanema2025/trip-booking/internal/domain"
	"github.com/nehanema2025/trip-booking/internal/repo"
	"github.com/nehanema2025/trip-booking/internal/service"
)

// destinations for the ten sample trips, one booking each.
var destinations = []string{
	"Lisbon", "Marrakesh", "Kyoto", "Reykjavik", "Cusco",
	"Zanzibar", "Tbilisi", "Hanoi", "Oaxaca", "Ljubljana",
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to create database pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := pool.Ping(context.Background()); err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	trips := service.NewTripService(repo.NewTripRepo(pool))
	customers := service.NewCustomerService(repo.NewCustomerRepo(pool))
	bookings := service.NewBookingService(repo.NewBookingRepo(pool), repo.NewBookingLogRepo(pool))

	if err := run(context.Background(), trips, customers, bookings); err != nil {
		slog.Error("seed failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, trips *service.TripService, customers *service.CustomerService, bookings *service.BookingService) error {
	seeded := make([]domain.Trip, 0, len(destinations))

	for i, dest := range destinations {
		trip, err := trips.Add(ctx, domain.Trip{
			Destination: dest,
			StartDate:   date(2026, 10, 1+i),
			EndDate:     date(2026, 10, 11+i),
			Price:       500 + float64(i)*100,
		})
		if err != nil {
			return fmt.Errorf("seed trip %q: %w", dest, err)
		}
		seeded = append(seeded, trip)

		phone := fmt.Sprintf("+3519%08d", i)
		customer, err := customers.Register(ctx, domain.Customer{
			Name:  fmt.Sprintf("Sample Customer %d", i+1),
			Email: fmt.Sprintf("customer%d@example.com", i+1),
			Phone: &phone,
		})
		if err != nil {
			return fmt.Errorf("seed customer %d: %w", i+1, err)
		}

		if _, err := bookings.Book(ctx, customer.ID, trip.ID, 1+i%4); err != nil {
			return fmt.Errorf("seed booking for %q: %w", dest, err)
		}
	}

	slog.Info("sample dataset loaded", "trips", len(seeded))

	// --- Report queries over the sample data ------------------------------

	counts, err := bookings.CountByTrip(ctx)
	if err != nil {
		return err
	}
	for _, c := range counts {
		slog.Info("bookings per trip", "trip_id", c.TripID, "destination", c.Destination, "bookings", c.Bookings)
	}

	// Every trip has exactly one booking, so this exercises the documented
	// tie-break: the lowest trip id wins.
	top, err := bookings.MostBooked(ctx)
	if err != nil {
		return err
	}
	slog.Info("most booked trip", "trip_id", top.TripID, "destination", top.Destination, "bookings", top.Bookings)

	for _, trip := range seeded[:3] {
		revenue, err := trips.Revenue(ctx, trip.ID)
		if err != nil {
			return err
		}
		days, err := trips.Duration(ctx, trip.ID)
		if err != nil {
			return err
		}
		attrs := []any{"trip_id", trip.ID, "destination", trip.Destination, "days", days}
		if revenue != nil {
			attrs = append(attrs, "revenue", *revenue)
		}
		slog.Info("trip report", attrs...)
	}

	travellers, err := customers.ListByDestination(ctx, seeded[0].Destination)
	if err != nil {
		return err
	}
	slog.Info("customers by destination", "destination", seeded[0].Destination, "customers", len(travellers))

	return nil
}

// date builds a midnight-UTC time for DATE columns.
func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}
