package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Sale is a completed checkout. A sale without a customer is a walk-in sale
// and never appears on a customer ledger.
type Sale struct {
	ID            uuid.UUID
	ReceiptNumber string
	CustomerID    uuid.NullUUID
	Total         decimal.Decimal
	Notes         *string
	OccurredAt    time.Time
	CreatedAt     time.Time
}

func (s Sale) IsWalkIn() bool {
	return !s.CustomerID.Valid || s.CustomerID.UUID == uuid.Nil
}
