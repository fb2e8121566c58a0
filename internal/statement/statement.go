// Package statement turns a customer's ledger rows into a printable or
// downloadable account statement.
package statement

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/josh-kwaku/pos-ledger/internal/domain"
	"github.com/josh-kwaku/pos-ledger/internal/ledger"
)

const dateLayout = "2006-01-02 15:04"

// Columns is the fixed column order shared by every export format.
var Columns = []string{"Date", "Previous Debt", "Amount", "Method/Reason", "Remaining Balance", "Notes"}

type Statement struct {
	Customer       domain.Customer
	Currency       string
	GeneratedAt    time.Time
	From           *time.Time
	To             *time.Time
	OpeningBalance decimal.Decimal
	ClosingBalance decimal.Decimal
	Totals         ledger.Totals
	// Rows are most recent first.
	Rows []domain.LedgerRow
}

// Build restricts chronological (oldest first) rows to the period [from, to].
// Either bound may be nil. Balances come from the full history, so the
// opening balance carries everything before the period.
func Build(customer domain.Customer, chronological []domain.LedgerRow, from, to *time.Time, currency string, now time.Time) Statement {
	st := Statement{
		Customer:       customer,
		Currency:       currency,
		GeneratedAt:    now,
		From:           from,
		To:             to,
		OpeningBalance: decimal.Zero,
	}

	var inPeriod []domain.LedgerRow
	for _, r := range chronological {
		switch {
		case before(r, from):
			st.OpeningBalance = r.BalanceAfter
		case after(r, to):
		default:
			inPeriod = append(inPeriod, r)
		}
	}

	st.ClosingBalance = st.OpeningBalance
	if n := len(inPeriod); n > 0 {
		st.ClosingBalance = inPeriod[n-1].BalanceAfter
	}
	st.Totals = ledger.Summarize(inPeriod)

	st.Rows = make([]domain.LedgerRow, len(inPeriod))
	for i, r := range inPeriod {
		st.Rows[len(inPeriod)-1-i] = r
	}
	return st
}

// Undated rows count as before any lower bound.
func before(r domain.LedgerRow, from *time.Time) bool {
	if from == nil {
		return false
	}
	return r.OccurredAt.IsZero() || r.OccurredAt.Before(*from)
}

func after(r domain.LedgerRow, to *time.Time) bool {
	return to != nil && r.OccurredAt.After(*to)
}

func record(r domain.LedgerRow) []string {
	return []string{
		formatDate(r.OccurredAt),
		formatMoney(r.BalanceBefore),
		formatMoney(r.AbsAmount()),
		r.Label,
		formatMoney(r.BalanceAfter),
		r.Notes,
	}
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

func formatMoney(d decimal.Decimal) string {
	return d.StringFixed(2)
}
