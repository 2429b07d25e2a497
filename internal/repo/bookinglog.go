package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/nehanema2025/trip-booking/internal/domain"
)

// BookingLogRepo defines read access to the append-only audit trail.
// There is deliberately no Create, Update, or Delete: the only writer is the
// audit trigger, and log rows are permanent.
type BookingLogRepo interface {
	// ListByBookingID returns all audit rows for a booking, oldest first.
	// The booking itself may no longer exist; its log rows remain readable.
	ListByBookingID(ctx context.Context, bookingID int64) ([]domain.BookingLog, error)

	// CountByBookingID returns the number of audit rows for a booking.
	CountByBookingID(ctx context.Context, bookingID int64) (int64, error)
}

// pgBookingLogRepo is the Postgres implementation of BookingLogRepo.
type pgBookingLogRepo struct {
	db db
}

// NewBookingLogRepo constructs a BookingLogRepo backed by the provided db
// connection.
func NewBookingLogRepo(db db) BookingLogRepo {
	return &pgBookingLogRepo{db: db}
}

// ListByBookingID returns the audit trail for one booking.
func (r *pgBookingLogRepo) ListByBookingID(ctx context.Context, bookingID int64) ([]domain.BookingLog, error) {
	const q = `
		SELECT id, booking_id, log_time
		FROM booking_log
		WHERE booking_id = @booking_id
		ORDER BY log_time, id`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"booking_id": bookingID})
	if err != nil {
		return nil, fmt.Errorf("repo.BookingLogRepo.ListByBookingID: %w", err)
	}
	defer rows.Close()

	var logs []domain.BookingLog
	for rows.Next() {
		l, err := scanBookingLog(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.BookingLogRepo.ListByBookingID: scan: %w", err)
		}
		logs = append(logs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.BookingLogRepo.ListByBookingID: rows: %w", err)
	}

	return logs, nil
}

// CountByBookingID returns how many audit rows reference the booking.
func (r *pgBookingLogRepo) CountByBookingID(ctx context.Context, bookingID int64) (int64, error) {
	const q = `SELECT COUNT(*) FROM booking_log WHERE booking_id = @booking_id`

	var n int64
	if err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"booking_id": bookingID}).Scan(&n); err != nil {
		return 0, fmt.Errorf("repo.BookingLogRepo.CountByBookingID: %w", err)
	}
	return n, nil
}

// scanBookingLog maps a single database row into a domain.BookingLog.
// The UUID id comes back as pgtype.UUID and is converted to uuid.UUID.
func scanBookingLog(s scanner) (domain.BookingLog, error) {
	var (
		l  domain.BookingLog
		id pgtype.UUID
	)
	err := s.Scan(&id, &l.BookingID, &l.LogTime)
	if err != nil {
		return domain.BookingLog{}, translateNoRows(err)
	}
	l.ID = uuid.UUID(id.Bytes)
	return l, nil
}
