package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type EventKind string

const (
	EventKindSale    EventKind = "sale"
	EventKindDebt    EventKind = "debt"
	EventKindPayment EventKind = "payment"
)

// Rank orders kinds that share a timestamp: sale, then debt, then payment.
func (k EventKind) Rank() int {
	switch k {
	case EventKindSale:
		return 0
	case EventKindDebt:
		return 1
	case EventKindPayment:
		return 2
	default:
		return 3
	}
}

// LedgerRow is derived on every read and never persisted. Amount is signed:
// positive for sales and debts, negative for payments.
type LedgerRow struct {
	SourceID      uuid.UUID
	OccurredAt    time.Time
	Kind          EventKind
	Amount        decimal.Decimal
	BalanceBefore decimal.Decimal
	BalanceAfter  decimal.Decimal
	Label         string
	Notes         string
}

func (r LedgerRow) AbsAmount() decimal.Decimal {
	return r.Amount.Abs()
}
