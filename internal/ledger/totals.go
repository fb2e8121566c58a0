package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/josh-kwaku/pos-ledger/internal/domain"
)

// Totals sums ledger rows per kind. Balance is sales plus debts minus
// payments, which equals ComputeBalance when the rows are a full history.
type Totals struct {
	Sales    decimal.Decimal
	Debts    decimal.Decimal
	Payments decimal.Decimal
	Balance  decimal.Decimal
	Count    int
}

// Summarize totals rows in any order.
func Summarize(rows []domain.LedgerRow) Totals {
	var t Totals
	for _, r := range rows {
		switch r.Kind {
		case domain.EventKindSale:
			t.Sales = t.Sales.Add(r.AbsAmount())
		case domain.EventKindDebt:
			t.Debts = t.Debts.Add(r.AbsAmount())
		case domain.EventKindPayment:
			t.Payments = t.Payments.Add(r.AbsAmount())
		}
		t.Count++
	}
	t.Balance = t.Sales.Add(t.Debts).Sub(t.Payments)
	return t
}
