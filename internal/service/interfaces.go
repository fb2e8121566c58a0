package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/josh-kwaku/pos-ledger/internal/domain"
)

type customerRepository interface {
	Create(ctx context.Context, c *domain.Customer) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error)
	List(ctx context.Context, search string, limit, offset int) ([]domain.Customer, int, error)
	Names(ctx context.Context) (map[uuid.UUID]string, error)
	Update(ctx context.Context, c *domain.Customer) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountEvents(ctx context.Context, id uuid.UUID) (int, error)
}

type customerReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error)
}

type saleRepository interface {
	Create(ctx context.Context, s *domain.Sale) error
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]domain.Sale, error)
	ListOnAccount(ctx context.Context) ([]domain.Sale, error)
}

type debtRepository interface {
	Create(ctx context.Context, d *domain.Debt) error
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]domain.Debt, error)
	ListAll(ctx context.Context) ([]domain.Debt, error)
}

type paymentRepository interface {
	Create(ctx context.Context, p *domain.Payment) error
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]domain.Payment, error)
	ListAll(ctx context.Context) ([]domain.Payment, error)
}

type idempotencyCleaner interface {
	CleanExpired(ctx context.Context) (int64, error)
}
