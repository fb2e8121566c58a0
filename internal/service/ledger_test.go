package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josh-kwaku/pos-ledger/internal/domain"
)

func ts(day, hour int) *time.Time {
	t := time.Date(2024, 1, day, hour, 0, 0, 0, time.UTC)
	return &t
}

func seedScenario(t *testing.T, svc services, c *domain.Customer) {
	t.Helper()
	ctx := context.Background()

	_, err := svc.events.RecordSale(ctx, SaleInput{CustomerID: &c.ID, Total: decimal.NewFromInt(100), OccurredAt: ts(1, 9)})
	require.NoError(t, err)
	_, err = svc.events.RecordDebt(ctx, DebtInput{CustomerID: c.ID, Amount: decimal.NewFromInt(50), Reason: domain.DebtReasonLoan, OccurredAt: ts(2, 9)})
	require.NoError(t, err)
	_, err = svc.events.RecordPayment(ctx, PaymentInput{CustomerID: c.ID, Amount: decimal.NewFromInt(30), Method: domain.PaymentMethodCash, OccurredAt: ts(3, 9)})
	require.NoError(t, err)
	_, err = svc.events.RecordSale(ctx, SaleInput{Total: decimal.NewFromInt(999), OccurredAt: ts(2, 10)})
	require.NoError(t, err)
}

func TestLedgerService_BalanceAndHistory(t *testing.T) {
	svc, c := newFixedServices(t)
	seedScenario(t, svc, c)
	ctx := context.Background()

	bal, err := svc.ledger.Balance(ctx, c.ID)
	require.NoError(t, err)
	assert.True(t, bal.Equal(decimal.NewFromInt(120)), "balance = %s", bal)

	rows, err := svc.ledger.History(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, domain.EventKindPayment, rows[0].Kind)
	assert.True(t, rows[0].BalanceAfter.Equal(bal))
	assert.Equal(t, domain.EventKindSale, rows[2].Kind)
	assert.True(t, rows[2].BalanceBefore.IsZero())

	_, err = svc.ledger.Balance(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrCustomerNotFound)
}

func TestLedgerService_Statement(t *testing.T) {
	svc, c := newFixedServices(t)
	seedScenario(t, svc, c)
	ctx := context.Background()

	st, err := svc.ledger.Statement(ctx, c.ID, ts(2, 0), ts(3, 23))
	require.NoError(t, err)
	assert.Equal(t, "KES", st.Currency)
	assert.True(t, st.OpeningBalance.Equal(decimal.NewFromInt(100)))
	assert.True(t, st.ClosingBalance.Equal(decimal.NewFromInt(120)))
	require.Len(t, st.Rows, 2)
	assert.Equal(t, domain.EventKindPayment, st.Rows[0].Kind)

	_, err = svc.ledger.Statement(ctx, c.ID, ts(5, 0), ts(4, 0))
	assert.ErrorIs(t, err, domain.ErrInvalidPeriod)
}

func TestLedgerService_Balances(t *testing.T) {
	svc, c := newFixedServices(t)
	seedScenario(t, svc, c)
	ctx := context.Background()

	idle, err := svc.customers.Create(ctx, CustomerInput{Name: "Idle"})
	require.NoError(t, err)
	credit, err := svc.customers.Create(ctx, CustomerInput{Name: "Overpaid"})
	require.NoError(t, err)
	_, err = svc.events.RecordPayment(ctx, PaymentInput{CustomerID: credit.ID, Amount: decimal.NewFromInt(30), Method: domain.PaymentMethodCard})
	require.NoError(t, err)

	got, err := svc.ledger.Balances(ctx)
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, c.ID, got[0].CustomerID)
	assert.True(t, got[0].Balance.Equal(decimal.NewFromInt(120)))
	assert.Equal(t, idle.ID, got[1].CustomerID)
	assert.True(t, got[1].Balance.IsZero())
	assert.Equal(t, credit.ID, got[2].CustomerID)
	assert.True(t, got[2].Balance.Equal(decimal.NewFromInt(-30)))
}
