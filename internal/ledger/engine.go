// Package ledger reconciles a customer's sales, debts and payments into a
// running-balance history. Everything here is a pure function of its inputs:
// nothing is cached between calls and inputs are never modified, so the
// functions are safe to call from concurrent requests.
package ledger

import (
	"slices"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/josh-kwaku/pos-ledger/internal/domain"
)

type entry struct {
	row domain.LedgerRow
	seq int
}

// ComputeBalance returns what the customer currently owes: sale totals plus
// debt amounts minus payment amounts. The result does not depend on event
// timestamps or on the order of the input slices. A negative result is a
// credit balance and is reported as is.
func ComputeBalance(customerID uuid.UUID, sales []domain.Sale, debts []domain.Debt, payments []domain.Payment) decimal.Decimal {
	balance := decimal.Zero
	if customerID == uuid.Nil {
		return balance
	}
	for _, s := range sales {
		if saleBelongsTo(s, customerID) {
			balance = balance.Add(domain.NonNegative(s.Total))
		}
	}
	for _, d := range debts {
		if d.CustomerID == customerID {
			balance = balance.Add(domain.NonNegative(d.Amount))
		}
	}
	for _, p := range payments {
		if p.CustomerID == customerID {
			balance = balance.Sub(domain.NonNegative(p.Amount))
		}
	}
	return balance
}

// BuildHistory returns the customer's ledger rows most recent first. Running
// balances are computed over the ascending order before the rows are
// reversed, so the first row's BalanceAfter equals ComputeBalance.
func BuildHistory(customerID uuid.UUID, sales []domain.Sale, debts []domain.Debt, payments []domain.Payment) []domain.LedgerRow {
	rows := Chronological(customerID, sales, debts, payments)
	slices.Reverse(rows)
	return rows
}

// Chronological returns the customer's ledger rows oldest first with
// BalanceBefore and BalanceAfter filled in. The first row starts from zero.
//
// Rows are ordered by timestamp, then sale < debt < payment, then input
// position. Events without a timestamp sort ahead of every dated event using
// the same kind and position keys, which keeps the order total.
func Chronological(customerID uuid.UUID, sales []domain.Sale, debts []domain.Debt, payments []domain.Payment) []domain.LedgerRow {
	entries := collect(customerID, sales, debts, payments)
	slices.SortFunc(entries, compareEntries)

	rows := make([]domain.LedgerRow, len(entries))
	running := decimal.Zero
	for i, e := range entries {
		row := e.row
		row.BalanceBefore = running
		running = running.Add(row.Amount)
		row.BalanceAfter = running
		rows[i] = row
	}
	return rows
}

// Balances computes every customer's balance in one pass over the streams.
// Walk-in sales and events without a customer are skipped.
func Balances(sales []domain.Sale, debts []domain.Debt, payments []domain.Payment) map[uuid.UUID]decimal.Decimal {
	out := make(map[uuid.UUID]decimal.Decimal)
	add := func(id uuid.UUID, amount decimal.Decimal) {
		if id == uuid.Nil {
			return
		}
		out[id] = out[id].Add(amount)
	}
	for _, s := range sales {
		if !s.IsWalkIn() {
			add(s.CustomerID.UUID, domain.NonNegative(s.Total))
		}
	}
	for _, d := range debts {
		add(d.CustomerID, domain.NonNegative(d.Amount))
	}
	for _, p := range payments {
		add(p.CustomerID, domain.NonNegative(p.Amount).Neg())
	}
	return out
}

func collect(customerID uuid.UUID, sales []domain.Sale, debts []domain.Debt, payments []domain.Payment) []entry {
	if customerID == uuid.Nil {
		return nil
	}
	var entries []entry
	push := func(row domain.LedgerRow) {
		entries = append(entries, entry{row: row, seq: len(entries)})
	}
	for _, s := range sales {
		if saleBelongsTo(s, customerID) {
			push(saleRow(s))
		}
	}
	for _, d := range debts {
		if d.CustomerID == customerID {
			push(debtRow(d))
		}
	}
	for _, p := range payments {
		if p.CustomerID == customerID {
			push(paymentRow(p))
		}
	}
	return entries
}

func compareEntries(a, b entry) int {
	aDated, bDated := !a.row.OccurredAt.IsZero(), !b.row.OccurredAt.IsZero()
	if aDated != bDated {
		if aDated {
			return 1
		}
		return -1
	}
	if c := a.row.OccurredAt.Compare(b.row.OccurredAt); c != 0 {
		return c
	}
	if c := a.row.Kind.Rank() - b.row.Kind.Rank(); c != 0 {
		return c
	}
	return a.seq - b.seq
}

func saleBelongsTo(s domain.Sale, customerID uuid.UUID) bool {
	return !s.IsWalkIn() && s.CustomerID.UUID == customerID
}

func saleRow(s domain.Sale) domain.LedgerRow {
	notes := deref(s.Notes)
	if notes == "" && s.ReceiptNumber != "" {
		notes = "Receipt " + s.ReceiptNumber
	}
	return domain.LedgerRow{
		SourceID:   s.ID,
		OccurredAt: s.OccurredAt,
		Kind:       domain.EventKindSale,
		Amount:     domain.NonNegative(s.Total),
		Label:      "Sale",
		Notes:      notes,
	}
}

func debtRow(d domain.Debt) domain.LedgerRow {
	return domain.LedgerRow{
		SourceID:   d.ID,
		OccurredAt: d.OccurredAt,
		Kind:       domain.EventKindDebt,
		Amount:     domain.NonNegative(d.Amount),
		Label:      d.Reason.Label(),
		Notes:      deref(d.Notes),
	}
}

func paymentRow(p domain.Payment) domain.LedgerRow {
	return domain.LedgerRow{
		SourceID:   p.ID,
		OccurredAt: p.OccurredAt,
		Kind:       domain.EventKindPayment,
		Amount:     domain.NonNegative(p.Amount).Neg(),
		Label:      p.Method.Label(),
		Notes:      deref(p.Notes),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
