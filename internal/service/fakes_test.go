package service

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/josh-kwaku/pos-ledger/internal/domain"
)

type memStore struct {
	mu        sync.Mutex
	customers map[uuid.UUID]domain.Customer
	sales     []domain.Sale
	debts     []domain.Debt
	payments  []domain.Payment
}

func newMemStore() *memStore {
	return &memStore{customers: make(map[uuid.UUID]domain.Customer)}
}

type memCustomers struct{ *memStore }

func (m memCustomers) Create(_ context.Context, c *domain.Customer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.customers[c.ID] = *c
	return nil
}

func (m memCustomers) GetByID(_ context.Context, id uuid.UUID) (*domain.Customer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.customers[id]
	if !ok {
		return nil, domain.ErrCustomerNotFound
	}
	return &c, nil
}

func (m memCustomers) List(_ context.Context, search string, limit, offset int) ([]domain.Customer, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Customer
	for _, c := range m.customers {
		if search == "" || strings.Contains(strings.ToLower(c.Name), strings.ToLower(search)) {
			out = append(out, c)
		}
	}
	total := len(out)
	if offset >= len(out) {
		return nil, total, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, total, nil
}

func (m memCustomers) Names(_ context.Context) (map[uuid.UUID]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	names := make(map[uuid.UUID]string, len(m.customers))
	for id, c := range m.customers {
		names[id] = c.Name
	}
	return names, nil
}

func (m memCustomers) Update(_ context.Context, c *domain.Customer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.customers[c.ID]; !ok {
		return domain.ErrCustomerNotFound
	}
	m.customers[c.ID] = *c
	return nil
}

func (m memCustomers) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.customers, id)
	return nil
}

func (m memCustomers) CountEvents(_ context.Context, id uuid.UUID) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, s := range m.sales {
		if s.CustomerID.Valid && s.CustomerID.UUID == id {
			n++
		}
	}
	for _, d := range m.debts {
		if d.CustomerID == id {
			n++
		}
	}
	for _, p := range m.payments {
		if p.CustomerID == id {
			n++
		}
	}
	return n, nil
}

type memSales struct{ *memStore }

func (m memSales) Create(_ context.Context, s *domain.Sale) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sales = append(m.sales, *s)
	return nil
}

func (m memSales) ListByCustomer(_ context.Context, id uuid.UUID) ([]domain.Sale, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Sale
	for _, s := range m.sales {
		if s.CustomerID.Valid && s.CustomerID.UUID == id {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m memSales) ListOnAccount(_ context.Context) ([]domain.Sale, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Sale
	for _, s := range m.sales {
		if !s.IsWalkIn() {
			out = append(out, s)
		}
	}
	return out, nil
}

type memDebts struct{ *memStore }

func (m memDebts) Create(_ context.Context, d *domain.Debt) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.debts = append(m.debts, *d)
	return nil
}

func (m memDebts) ListByCustomer(_ context.Context, id uuid.UUID) ([]domain.Debt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Debt
	for _, d := range m.debts {
		if d.CustomerID == id {
			out = append(out, d)
		}
	}
	return out, nil
}

func (m memDebts) ListAll(_ context.Context) ([]domain.Debt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Debt(nil), m.debts...), nil
}

type memPayments struct{ *memStore }

func (m memPayments) Create(_ context.Context, p *domain.Payment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.payments = append(m.payments, *p)
	return nil
}

func (m memPayments) ListByCustomer(_ context.Context, id uuid.UUID) ([]domain.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Payment
	for _, p := range m.payments {
		if p.CustomerID == id {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m memPayments) ListAll(_ context.Context) ([]domain.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Payment(nil), m.payments...), nil
}

type services struct {
	store     *memStore
	customers *CustomerService
	events    *EventService
	ledger    *LedgerService
}

func newServices() services {
	store := newMemStore()
	customers := memCustomers{store}
	return services{
		store:     store,
		customers: NewCustomerService(customers),
		events:    NewEventService(customers, memSales{store}, memDebts{store}, memPayments{store}),
		ledger:    NewLedgerService(customers, memSales{store}, memDebts{store}, memPayments{store}, "KES"),
	}
}
