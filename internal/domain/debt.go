package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DebtReason is free text; the constants are the reasons offered by the till.
type DebtReason string

const (
	DebtReasonLoan           DebtReason = "loan"
	DebtReasonGoodsOnCredit  DebtReason = "goods_on_credit"
	DebtReasonOpeningBalance DebtReason = "opening_balance"
	DebtReasonAdjustment     DebtReason = "adjustment"
	DebtReasonOther          DebtReason = "other"
)

var debtReasonLabels = map[DebtReason]string{
	DebtReasonLoan:           "Loan",
	DebtReasonGoodsOnCredit:  "Goods on credit",
	DebtReasonOpeningBalance: "Opening balance",
	DebtReasonAdjustment:     "Adjustment",
	DebtReasonOther:          "Other",
}

func (r DebtReason) Label() string {
	if l, ok := debtReasonLabels[r]; ok {
		return l
	}
	if s := strings.TrimSpace(string(r)); s != "" {
		return s
	}
	return "Debt"
}

type Debt struct {
	ID         uuid.UUID
	CustomerID uuid.UUID
	Amount     decimal.Decimal
	Reason     DebtReason
	Notes      *string
	OccurredAt time.Time
	CreatedAt  time.Time
}
