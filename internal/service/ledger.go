package service

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/josh-kwaku/pos-ledger/internal/domain"
	"github.com/josh-kwaku/pos-ledger/internal/ledger"
	"github.com/josh-kwaku/pos-ledger/internal/logging"
	"github.com/josh-kwaku/pos-ledger/internal/metrics"
	"github.com/josh-kwaku/pos-ledger/internal/statement"
)

type customerDirectory interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error)
	Names(ctx context.Context) (map[uuid.UUID]string, error)
}

// CustomerBalance is one line of the amount-owed summary.
type CustomerBalance struct {
	CustomerID uuid.UUID
	Name       string
	Balance    decimal.Decimal
}

// LedgerService loads a customer's events and hands them to the ledger
// engine. Nothing is cached: every call recomputes from the stored events.
type LedgerService struct {
	customers customerDirectory
	sales     saleRepository
	debts     debtRepository
	payments  paymentRepository
	currency  string
	now       func() time.Time
}

func NewLedgerService(customers customerDirectory, sales saleRepository, debts debtRepository, payments paymentRepository, currency string) *LedgerService {
	return &LedgerService{
		customers: customers,
		sales:     sales,
		debts:     debts,
		payments:  payments,
		currency:  currency,
		now:       time.Now,
	}
}

type customerEvents struct {
	sales    []domain.Sale
	debts    []domain.Debt
	payments []domain.Payment
}

func (s *LedgerService) load(ctx context.Context, customerID uuid.UUID) (*domain.Customer, customerEvents, error) {
	var ev customerEvents

	c, err := s.customers.GetByID(ctx, customerID)
	if err != nil {
		return nil, ev, err
	}
	if ev.sales, err = s.sales.ListByCustomer(ctx, customerID); err != nil {
		return nil, ev, fmt.Errorf("sales: %w", err)
	}
	if ev.debts, err = s.debts.ListByCustomer(ctx, customerID); err != nil {
		return nil, ev, fmt.Errorf("debts: %w", err)
	}
	if ev.payments, err = s.payments.ListByCustomer(ctx, customerID); err != nil {
		return nil, ev, fmt.Errorf("payments: %w", err)
	}
	return c, ev, nil
}

func (s *LedgerService) Balance(ctx context.Context, customerID uuid.UUID) (decimal.Decimal, error) {
	_, ev, err := s.load(ctx, customerID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("Balance: %w", err)
	}
	metrics.LedgerBuilds.WithLabelValues("balance").Inc()
	return ledger.ComputeBalance(customerID, ev.sales, ev.debts, ev.payments), nil
}

// History returns the customer's ledger, most recent event first.
func (s *LedgerService) History(ctx context.Context, customerID uuid.UUID) ([]domain.LedgerRow, error) {
	_, ev, err := s.load(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("History: %w", err)
	}

	rows := ledger.BuildHistory(customerID, ev.sales, ev.debts, ev.payments)
	metrics.LedgerBuilds.WithLabelValues("history").Inc()
	metrics.LedgerRows.Observe(float64(len(rows)))

	logging.FromContext(ctx).Debug("ledger built",
		"customer_id", customerID,
		"rows", len(rows),
	)
	return rows, nil
}

// Statement builds a printable statement for the period. Either bound may be
// nil; both are inclusive.
func (s *LedgerService) Statement(ctx context.Context, customerID uuid.UUID, from, to *time.Time) (*statement.Statement, error) {
	if from != nil && to != nil && from.After(*to) {
		return nil, fmt.Errorf("Statement: %w", domain.ErrInvalidPeriod)
	}

	c, ev, err := s.load(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("Statement: %w", err)
	}

	rows := ledger.Chronological(customerID, ev.sales, ev.debts, ev.payments)
	st := statement.Build(*c, rows, from, to, s.currency, s.now().UTC())
	metrics.LedgerBuilds.WithLabelValues("statement").Inc()
	return &st, nil
}

// Balances lists every customer with their outstanding balance, largest debt
// first. Customers with no events appear with a zero balance.
func (s *LedgerService) Balances(ctx context.Context) ([]CustomerBalance, error) {
	names, err := s.customers.Names(ctx)
	if err != nil {
		return nil, fmt.Errorf("Balances: %w", err)
	}
	sales, err := s.sales.ListOnAccount(ctx)
	if err != nil {
		return nil, fmt.Errorf("Balances: sales: %w", err)
	}
	debts, err := s.debts.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("Balances: debts: %w", err)
	}
	payments, err := s.payments.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("Balances: payments: %w", err)
	}

	balances := ledger.Balances(sales, debts, payments)
	metrics.LedgerBuilds.WithLabelValues("balances").Inc()

	out := make([]CustomerBalance, 0, len(names))
	for id, name := range names {
		bal, ok := balances[id]
		if !ok {
			bal = decimal.Zero
		}
		out = append(out, CustomerBalance{CustomerID: id, Name: name, Balance: bal})
	}
	slices.SortFunc(out, func(a, b CustomerBalance) int {
		if c := b.Balance.Cmp(a.Balance); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return cmp.Compare(a.CustomerID.String(), b.CustomerID.String())
	})
	return out, nil
}
