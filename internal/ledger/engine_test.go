package ledger

import (
	"fmt"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josh-kwaku/pos-ledger/internal/domain"
)

var base = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func at(minutes int) time.Time {
	return base.Add(time.Duration(minutes) * time.Minute)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	msg := fmt.Sprintf("got %s, want %s", got, want)
	if len(msgAndArgs) > 0 {
		if format, ok := msgAndArgs[0].(string); ok {
			msg += ": " + fmt.Sprintf(format, msgAndArgs[1:]...)
		}
	}
	assert.True(t, got.Equal(dec(want)), msg)
}

func sale(customerID uuid.UUID, total string, ts time.Time) domain.Sale {
	return domain.Sale{
		ID:         uuid.New(),
		CustomerID: uuid.NullUUID{UUID: customerID, Valid: customerID != uuid.Nil},
		Total:      dec(total),
		OccurredAt: ts,
	}
}

func debt(customerID uuid.UUID, amount string, reason domain.DebtReason, ts time.Time) domain.Debt {
	return domain.Debt{ID: uuid.New(), CustomerID: customerID, Amount: dec(amount), Reason: reason, OccurredAt: ts}
}

func payment(customerID uuid.UUID, amount string, method domain.PaymentMethod, ts time.Time) domain.Payment {
	return domain.Payment{ID: uuid.New(), CustomerID: customerID, Amount: dec(amount), Method: method, OccurredAt: ts}
}

func TestExampleScenario(t *testing.T) {
	c := uuid.New()
	sales := []domain.Sale{sale(c, "100", at(1))}
	debts := []domain.Debt{debt(c, "50", domain.DebtReasonLoan, at(2))}
	payments := []domain.Payment{payment(c, "30", domain.PaymentMethodCash, at(3))}

	assertDecimal(t, "120", ComputeBalance(c, sales, debts, payments))

	chrono := Chronological(c, sales, debts, payments)
	require.Len(t, chrono, 3)

	want := []struct {
		kind          domain.EventKind
		before, after string
		amount        string
	}{
		{domain.EventKindSale, "0", "100", "100"},
		{domain.EventKindDebt, "100", "150", "50"},
		{domain.EventKindPayment, "150", "120", "-30"},
	}
	for i, w := range want {
		assert.Equal(t, w.kind, chrono[i].Kind, "row %d", i)
		assertDecimal(t, w.before, chrono[i].BalanceBefore, "row %d before", i)
		assertDecimal(t, w.after, chrono[i].BalanceAfter, "row %d after", i)
		assertDecimal(t, w.amount, chrono[i].Amount, "row %d amount", i)
	}

	history := BuildHistory(c, sales, debts, payments)
	require.Len(t, history, 3)
	assert.Equal(t, domain.EventKindPayment, history[0].Kind)
	assert.Equal(t, domain.EventKindDebt, history[1].Kind)
	assert.Equal(t, domain.EventKindSale, history[2].Kind)
	assert.Equal(t, "Cash", history[0].Label)
	assert.Equal(t, "Loan", history[1].Label)
	assertDecimal(t, "30", history[0].AbsAmount())
}

func TestOverpaymentLeavesCreditBalance(t *testing.T) {
	c := uuid.New()
	sales := []domain.Sale{sale(c, "50", at(1))}
	payments := []domain.Payment{payment(c, "80", domain.PaymentMethodCash, at(2))}

	assertDecimal(t, "-30", ComputeBalance(c, sales, nil, payments))

	history := BuildHistory(c, sales, nil, payments)
	require.Len(t, history, 2)
	assertDecimal(t, "-30", history[0].BalanceAfter)
	assertDecimal(t, "50", history[0].BalanceBefore)
}

func TestEmptyAndUnknownCustomer(t *testing.T) {
	c := uuid.New()
	other := uuid.New()
	sales := []domain.Sale{sale(other, "10", at(1))}

	tests := []struct {
		name       string
		customerID uuid.UUID
		sales      []domain.Sale
	}{
		{name: "no events", customerID: c},
		{name: "events for someone else", customerID: c, sales: sales},
		{name: "nil customer id", customerID: uuid.Nil, sales: sales},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assertDecimal(t, "0", ComputeBalance(tc.customerID, tc.sales, nil, nil))
			assert.Empty(t, BuildHistory(tc.customerID, tc.sales, nil, nil))
		})
	}
}

func TestWalkInSalesExcluded(t *testing.T) {
	c := uuid.New()
	sales := []domain.Sale{
		sale(uuid.Nil, "999", at(1)),
		{ID: uuid.New(), CustomerID: uuid.NullUUID{UUID: c, Valid: false}, Total: dec("5"), OccurredAt: at(2)},
		sale(c, "20", at(3)),
	}

	assertDecimal(t, "20", ComputeBalance(c, sales, nil, nil))
	history := BuildHistory(c, sales, nil, nil)
	require.Len(t, history, 1)
	assert.Equal(t, sales[2].ID, history[0].SourceID)
}

func TestEventsWithoutCustomerExcluded(t *testing.T) {
	c := uuid.New()
	debts := []domain.Debt{debt(uuid.Nil, "40", domain.DebtReasonOther, at(1))}
	payments := []domain.Payment{payment(uuid.Nil, "15", domain.PaymentMethodCard, at(2))}

	assertDecimal(t, "0", ComputeBalance(c, nil, debts, payments))
	assert.Empty(t, Chronological(c, nil, debts, payments))
	assert.Empty(t, Balances(nil, debts, payments))
}

func TestMalformedAmountsCoercedToZero(t *testing.T) {
	c := uuid.New()
	sales := []domain.Sale{sale(c, "-25", at(1)), sale(c, "10", at(2))}
	debts := []domain.Debt{debt(c, "-1", domain.DebtReasonAdjustment, at(3))}
	payments := []domain.Payment{payment(c, "-7", domain.PaymentMethodOther, at(4))}

	assertDecimal(t, "10", ComputeBalance(c, sales, debts, payments))

	chrono := Chronological(c, sales, debts, payments)
	require.Len(t, chrono, 4)
	assertDecimal(t, "0", chrono[0].Amount)
	assertDecimal(t, "0", chrono[2].Amount)
	assertDecimal(t, "0", chrono[3].Amount)
	assertDecimal(t, "10", chrono[3].BalanceAfter)
}

func TestTieBreakOrder(t *testing.T) {
	c := uuid.New()
	sameTime := at(5)
	sales := []domain.Sale{sale(c, "10", sameTime)}
	debts := []domain.Debt{debt(c, "20", domain.DebtReasonLoan, sameTime)}
	payments := []domain.Payment{
		payment(c, "5", domain.PaymentMethodCash, sameTime),
		payment(c, "6", domain.PaymentMethodCard, sameTime),
	}

	for range 20 {
		chrono := Chronological(c, sales, debts, payments)
		require.Len(t, chrono, 4)
		assert.Equal(t, sales[0].ID, chrono[0].SourceID)
		assert.Equal(t, debts[0].ID, chrono[1].SourceID)
		assert.Equal(t, payments[0].ID, chrono[2].SourceID)
		assert.Equal(t, payments[1].ID, chrono[3].SourceID)
	}

	history := BuildHistory(c, sales, debts, payments)
	assert.Equal(t, payments[1].ID, history[0].SourceID)
	assert.Equal(t, sales[0].ID, history[3].SourceID)
}

func TestPaymentBeforeSaleInInputStillSortsAfterAtSameTime(t *testing.T) {
	c := uuid.New()
	ts := at(0)
	p := payment(c, "30", domain.PaymentMethodCash, ts)
	s := sale(c, "30", ts)

	first := Chronological(c, []domain.Sale{s}, nil, []domain.Payment{p})
	second := Chronological(c, []domain.Sale{s}, nil, []domain.Payment{p})
	require.Len(t, first, 2)
	assert.Equal(t, domain.EventKindSale, first[0].Kind)
	assert.Equal(t, domain.EventKindPayment, first[1].Kind)
	assert.Equal(t, first, second)
	assertDecimal(t, "30", first[0].BalanceAfter)
	assertDecimal(t, "0", first[1].BalanceAfter)
}

func TestUndatedEventsSortFirst(t *testing.T) {
	c := uuid.New()
	sales := []domain.Sale{sale(c, "10", at(10))}
	debts := []domain.Debt{
		debt(c, "100", domain.DebtReasonOpeningBalance, time.Time{}),
		debt(c, "1", domain.DebtReasonOther, time.Time{}),
	}
	payments := []domain.Payment{payment(c, "50", domain.PaymentMethodCash, time.Time{})}

	chrono := Chronological(c, sales, debts, payments)
	require.Len(t, chrono, 4)
	assert.Equal(t, debts[0].ID, chrono[0].SourceID)
	assert.Equal(t, debts[1].ID, chrono[1].SourceID)
	assert.Equal(t, payments[0].ID, chrono[2].SourceID)
	assert.Equal(t, sales[0].ID, chrono[3].SourceID)
	assertDecimal(t, "61", chrono[3].BalanceAfter)
}

func TestInputsNotMutated(t *testing.T) {
	c := uuid.New()
	sales := []domain.Sale{sale(c, "10", at(3)), sale(c, "20", at(1))}
	debts := []domain.Debt{debt(c, "5", domain.DebtReasonLoan, at(2))}
	payments := []domain.Payment{payment(c, "8", domain.PaymentMethodCash, at(0))}

	salesCopy := append([]domain.Sale(nil), sales...)
	debtsCopy := append([]domain.Debt(nil), debts...)
	paymentsCopy := append([]domain.Payment(nil), payments...)

	_ = BuildHistory(c, sales, debts, payments)
	_ = ComputeBalance(c, sales, debts, payments)

	assert.Equal(t, salesCopy, sales)
	assert.Equal(t, debtsCopy, debts)
	assert.Equal(t, paymentsCopy, payments)
}

type fixture struct {
	sales    []domain.Sale
	debts    []domain.Debt
	payments []domain.Payment
}

func randomFixture(r *rand.Rand, customers []uuid.UUID, n int) fixture {
	var f fixture
	amount := func() string {
		return decimal.NewFromInt(int64(r.IntN(100000))).Shift(-2).String()
	}
	for range n {
		c := customers[r.IntN(len(customers))]
		// Coarse timestamps so equal-timestamp ties are frequent.
		ts := at(r.IntN(20))
		switch r.IntN(3) {
		case 0:
			f.sales = append(f.sales, sale(c, amount(), ts))
		case 1:
			f.debts = append(f.debts, debt(c, amount(), domain.DebtReasonGoodsOnCredit, ts))
		default:
			f.payments = append(f.payments, payment(c, amount(), domain.PaymentMethodMobileMoney, ts))
		}
	}
	return f
}

func TestLedgerProperties(t *testing.T) {
	r := rand.New(rand.NewPCG(42, 7))
	customers := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}

	for round := range 50 {
		f := randomFixture(r, customers, 40)
		for _, c := range customers {
			balance := ComputeBalance(c, f.sales, f.debts, f.payments)
			chrono := Chronological(c, f.sales, f.debts, f.payments)
			history := BuildHistory(c, f.sales, f.debts, f.payments)

			require.Len(t, history, len(chrono))
			if len(chrono) == 0 {
				assertDecimal(t, "0", balance, "round %d", round)
				continue
			}

			// zero-sum identity
			assert.True(t, chrono[len(chrono)-1].BalanceAfter.Equal(balance), "round %d: last after %s != balance %s", round, chrono[len(chrono)-1].BalanceAfter, balance)
			assert.True(t, history[0].BalanceAfter.Equal(balance), "round %d: newest row disagrees with balance", round)

			// running-balance consistency
			assertDecimal(t, "0", chrono[0].BalanceBefore)
			for i := range chrono {
				assert.True(t, chrono[i].BalanceBefore.Add(chrono[i].Amount).Equal(chrono[i].BalanceAfter), "round %d row %d", round, i)
				if i > 0 {
					assert.True(t, chrono[i-1].BalanceAfter.Equal(chrono[i].BalanceBefore), "round %d row %d", round, i)
					assert.False(t, chrono[i].OccurredAt.Before(chrono[i-1].OccurredAt), "round %d row %d out of order", round, i)
				}
			}

			// presentation order is the exact reverse
			for i := range history {
				assert.Equal(t, chrono[len(chrono)-1-i], history[i])
			}

			// idempotence
			assert.Equal(t, history, BuildHistory(c, f.sales, f.debts, f.payments))
		}
	}
}

func TestComputeBalanceOrderIndependent(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	customers := []uuid.UUID{uuid.New(), uuid.New()}
	f := randomFixture(r, customers, 60)

	want := make(map[uuid.UUID]decimal.Decimal)
	for _, c := range customers {
		want[c] = ComputeBalance(c, f.sales, f.debts, f.payments)
	}

	for range 25 {
		sales := append([]domain.Sale(nil), f.sales...)
		debts := append([]domain.Debt(nil), f.debts...)
		payments := append([]domain.Payment(nil), f.payments...)
		r.Shuffle(len(sales), func(i, j int) { sales[i], sales[j] = sales[j], sales[i] })
		r.Shuffle(len(debts), func(i, j int) { debts[i], debts[j] = debts[j], debts[i] })
		r.Shuffle(len(payments), func(i, j int) { payments[i], payments[j] = payments[j], payments[i] })

		for _, c := range customers {
			assert.True(t, ComputeBalance(c, sales, debts, payments).Equal(want[c]))
		}
	}
}

func TestBalancesMatchesComputeBalance(t *testing.T) {
	r := rand.New(rand.NewPCG(9, 9))
	customers := []uuid.UUID{uuid.New(), uuid.New(), uuid.New(), uuid.New()}
	f := randomFixture(r, customers, 80)
	f.sales = append(f.sales, sale(uuid.Nil, "500", at(3)))

	all := Balances(f.sales, f.debts, f.payments)
	for _, c := range customers {
		assert.True(t, all[c].Equal(ComputeBalance(c, f.sales, f.debts, f.payments)), "customer %s", c)
	}
	_, hasNil := all[uuid.Nil]
	assert.False(t, hasNil)
}

func TestSummarize(t *testing.T) {
	c := uuid.New()
	sales := []domain.Sale{sale(c, "100", at(1)), sale(c, "25.50", at(4))}
	debts := []domain.Debt{debt(c, "50", domain.DebtReasonLoan, at(2))}
	payments := []domain.Payment{payment(c, "30", domain.PaymentMethodCash, at(3))}

	totals := Summarize(BuildHistory(c, sales, debts, payments))
	assertDecimal(t, "125.50", totals.Sales)
	assertDecimal(t, "50", totals.Debts)
	assertDecimal(t, "30", totals.Payments)
	assert.Equal(t, 4, totals.Count)
	assertDecimal(t, "145.50", totals.Balance)
	assert.True(t, totals.Balance.Equal(ComputeBalance(c, sales, debts, payments)))
}

func TestSaleRowNotes(t *testing.T) {
	c := uuid.New()
	s := sale(c, "12", at(1))
	s.ReceiptNumber = "R-0009"

	rows := BuildHistory(c, []domain.Sale{s}, nil, nil)
	require.Len(t, rows, 1)
	assert.Equal(t, "Sale", rows[0].Label)
	assert.Equal(t, "Receipt R-0009", rows[0].Notes)

	note := "paid later"
	s.Notes = &note
	rows = BuildHistory(c, []domain.Sale{s}, nil, nil)
	assert.Equal(t, "paid later", rows[0].Notes)
}
