package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/nehanema2025/trip-booking/internal/domain"
	"github.com/nehanema2025/trip-booking/internal/repo"
)

// CustomerService implements business logic for Customer operations.
// Customers are immutable after registration, so the surface is small.
type CustomerService struct {
	customers repo.CustomerRepo
}

// NewCustomerService constructs a CustomerService backed by the provided repo.
func NewCustomerService(r repo.CustomerRepo) *CustomerService {
	return &CustomerService{customers: r}
}

// Register validates and persists a new customer.
// Returns domain.ErrValidation for bad input and domain.ErrDuplicate when
// the email, or the phone when present, is already taken.
func (s *CustomerService) Register(ctx context.Context, customer domain.Customer) (domain.Customer, error) {
	if err := validateCustomer(customer); err != nil {
		return domain.Customer{}, err
	}
	result, err := s.customers.Create(ctx, customer)
	if err != nil {
		return domain.Customer{}, fmt.Errorf("service.CustomerService.Register: %w", err)
	}
	return result, nil
}

// GetByID returns a single customer by ID.
// Returns domain.ErrNotFound if no customer with that ID exists.
func (s *CustomerService) GetByID(ctx context.Context, id int64) (domain.Customer, error) {
	result, err := s.customers.GetByID(ctx, id)
	if err != nil {
		return domain.Customer{}, fmt.Errorf("service.CustomerService.GetByID: %w", err)
	}
	return result, nil
}

// ListByDestination returns the customers who booked at least one trip to
// the given destination. Always returns a non-nil slice so callers can
// safely range over it.
func (s *CustomerService) ListByDestination(ctx context.Context, destination string) ([]domain.Customer, error) {
	if strings.TrimSpace(destination) == "" {
		return nil, fmt.Errorf("%w: destination is required", domain.ErrValidation)
	}
	customers, err := s.customers.ListByDestination(ctx, destination)
	if err != nil {
		return nil, fmt.Errorf("service.CustomerService.ListByDestination: %w", err)
	}
	if customers == nil {
		return []domain.Customer{}, nil
	}
	return customers, nil
}

// validateCustomer enforces the registration rules.
//   - Name and email must be non-empty (whitespace-only is rejected).
//   - Email must at least look like an address; the real uniqueness check is
//     the database constraint.
//   - Phone, when present, must be non-empty.
func validateCustomer(customer domain.Customer) error {
	if strings.TrimSpace(customer.Name) == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	email := strings.TrimSpace(customer.Email)
	if email == "" {
		return fmt.Errorf("%w: email is required", domain.ErrValidation)
	}
	if !strings.Contains(email, "@") {
		return fmt.Errorf("%w: email must contain '@'", domain.ErrValidation)
	}
	if customer.Phone != nil && strings.TrimSpace(*customer.Phone) == "" {
		return fmt.Errorf("%w: phone must be non-empty when provided", domain.ErrValidation)
	}
	return nil
}
