package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "cash"
	PaymentMethodCard         PaymentMethod = "card"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodMobileMoney  PaymentMethod = "mobile_money"
	PaymentMethodOther        PaymentMethod = "other"
)

var paymentMethodLabels = map[PaymentMethod]string{
	PaymentMethodCash:         "Cash",
	PaymentMethodCard:         "Card",
	PaymentMethodBankTransfer: "Bank transfer",
	PaymentMethodMobileMoney:  "Mobile money",
	PaymentMethodOther:        "Other",
}

func (m PaymentMethod) IsValid() bool {
	_, ok := paymentMethodLabels[m]
	return ok
}

func (m PaymentMethod) Label() string {
	if l, ok := paymentMethodLabels[m]; ok {
		return l
	}
	return "Payment"
}

type Payment struct {
	ID         uuid.UUID
	CustomerID uuid.UUID
	Amount     decimal.Decimal
	Method     PaymentMethod
	Notes      *string
	OccurredAt time.Time
	CreatedAt  time.Time
}
