package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/nehanema2025/trip-booking/internal/domain"
)

// CustomerRepo defines the persistence operations for Customers.
// Customers are immutable once created, so there is no update or delete.
type CustomerRepo interface {
	// Create inserts a new customer and returns the persisted record.
	// Returns domain.ErrDuplicate when the email, or the phone when present,
	// is already taken.
	Create(ctx context.Context, customer domain.Customer) (domain.Customer, error)

	// GetByID retrieves a single customer by its primary key.
	// Returns domain.ErrNotFound if no customer with that ID exists.
	GetByID(ctx context.Context, id int64) (domain.Customer, error)

	// ListByDestination returns all customers who have booked at least one
	// trip to the given destination, ordered by id, without duplicates.
	ListByDestination(ctx context.Context, destination string) ([]domain.Customer, error)
}

// pgCustomerRepo is the Postgres implementation of CustomerRepo.
type pgCustomerRepo struct {
	db db
}

// NewCustomerRepo constructs a CustomerRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewCustomerRepo(db db) CustomerRepo {
	return &pgCustomerRepo{db: db}
}

// Create inserts a new customer row and returns the full persisted record.
func (r *pgCustomerRepo) Create(ctx context.Context, customer domain.Customer) (domain.Customer, error) {
	const q = `
		INSERT INTO customers (name, email, phone)
		VALUES (@name, @email, @phone)
		RETURNING id, name, email, phone`

	args := pgx.NamedArgs{
		"name":  customer.Name,
		"email": customer.Email,
		"phone": customer.Phone, // nil becomes NULL
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanCustomer(row)
	if err != nil {
		return domain.Customer{}, fmt.Errorf("repo.CustomerRepo.Create: %w", mapPgError(err))
	}
	return result, nil
}

// GetByID retrieves a customer by primary key.
func (r *pgCustomerRepo) GetByID(ctx context.Context, id int64) (domain.Customer, error) {
	const q = `
		SELECT id, name, email, phone
		FROM customers
		WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanCustomer(row)
	if err != nil {
		return domain.Customer{}, fmt.Errorf("repo.CustomerRepo.GetByID: %w", err)
	}
	return result, nil
}

// ListByDestination joins customers through bookings to trips on the given
// destination. DISTINCT because a customer may have booked the same
// destination more than once.
func (r *pgCustomerRepo) ListByDestination(ctx context.Context, destination string) ([]domain.Customer, error) {
	const q = `
		SELECT DISTINCT c.id, c.name, c.email, c.phone
		FROM customers c
		JOIN bookings b ON b.customer_id = c.id
		JOIN trips t    ON t.id = b.trip_id
		WHERE t.destination = @destination
		ORDER BY c.id`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"destination": destination})
	if err != nil {
		return nil, fmt.Errorf("repo.CustomerRepo.ListByDestination: %w", err)
	}
	defer rows.Close()

	var customers []domain.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.CustomerRepo.ListByDestination: scan: %w", err)
		}
		customers = append(customers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.CustomerRepo.ListByDestination: rows: %w", err)
	}

	return customers, nil
}

// scanCustomer maps a single database row into a domain.Customer.
// Phone scans through a pointer so NULL maps cleanly to nil.
func scanCustomer(s scanner) (domain.Customer, error) {
	var c domain.Customer
	err := s.Scan(&c.ID, &c.Name, &c.Email, &c.Phone)
	if err != nil {
		return domain.Customer{}, translateNoRows(err)
	}
	return c, nil
}
