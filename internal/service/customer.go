package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/josh-kwaku/pos-ledger/internal/domain"
	"github.com/josh-kwaku/pos-ledger/internal/logging"
)

type CustomerInput struct {
	Name    string
	Phone   *string
	Email   *string
	Address *string
	Notes   *string
}

type CustomerService struct {
	customers customerRepository
	now       func() time.Time
}

func NewCustomerService(customers customerRepository) *CustomerService {
	return &CustomerService{customers: customers, now: time.Now}
}

func (s *CustomerService) Create(ctx context.Context, in CustomerInput) (*domain.Customer, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("CreateCustomer: %w", domain.ErrInvalidCustomer)
	}

	now := s.now().UTC()
	c := &domain.Customer{
		ID:        uuid.New(),
		Name:      name,
		Phone:     trimmed(in.Phone),
		Email:     trimmed(in.Email),
		Address:   trimmed(in.Address),
		Notes:     trimmed(in.Notes),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.customers.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("CreateCustomer: %w", err)
	}

	logging.FromContext(ctx).Info("customer created", "customer_id", c.ID)
	return c, nil
}

func (s *CustomerService) Get(ctx context.Context, id uuid.UUID) (*domain.Customer, error) {
	c, err := s.customers.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("GetCustomer: %w", err)
	}
	return c, nil
}

func (s *CustomerService) List(ctx context.Context, search string, limit, offset int) ([]domain.Customer, int, error) {
	customers, total, err := s.customers.List(ctx, strings.TrimSpace(search), limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("ListCustomers: %w", err)
	}
	return customers, total, nil
}

func (s *CustomerService) Update(ctx context.Context, id uuid.UUID, in CustomerInput) (*domain.Customer, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("UpdateCustomer: %w", domain.ErrInvalidCustomer)
	}

	c, err := s.customers.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("UpdateCustomer: %w", err)
	}

	c.Name = name
	c.Phone = trimmed(in.Phone)
	c.Email = trimmed(in.Email)
	c.Address = trimmed(in.Address)
	c.Notes = trimmed(in.Notes)
	c.UpdatedAt = s.now().UTC()

	if err := s.customers.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("UpdateCustomer: %w", err)
	}
	return c, nil
}

// Delete removes a customer that has never been on a sale, debt or payment.
// Customers with history are kept so their ledger stays reproducible.
func (s *CustomerService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.customers.GetByID(ctx, id); err != nil {
		return fmt.Errorf("DeleteCustomer: %w", err)
	}

	n, err := s.customers.CountEvents(ctx, id)
	if err != nil {
		return fmt.Errorf("DeleteCustomer: %w", err)
	}
	if n > 0 {
		return fmt.Errorf("DeleteCustomer: %d events: %w", n, domain.ErrCustomerHasHistory)
	}

	if err := s.customers.Delete(ctx, id); err != nil {
		return fmt.Errorf("DeleteCustomer: %w", err)
	}

	logging.FromContext(ctx).Info("customer deleted", "customer_id", id)
	return nil
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
