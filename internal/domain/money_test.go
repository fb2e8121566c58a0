package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "100", want: "100"},
		{in: " 12.50 ", want: "12.5"},
		{in: "-3", want: "-3"},
		{in: "", want: "0"},
		{in: "null", want: "0"},
		{in: "NULL", want: "0"},
		{in: "abc", want: "0"},
		{in: "1,000", want: "0"},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got := ParseAmount(tc.in)
			assert.True(t, got.Equal(decimal.RequireFromString(tc.want)), "got %s, want %s", got, tc.want)
		})
	}
}

func TestNonNegative(t *testing.T) {
	assert.True(t, NonNegative(decimal.NewFromInt(-5)).IsZero())
	assert.True(t, NonNegative(decimal.NewFromInt(5)).Equal(decimal.NewFromInt(5)))
	assert.True(t, NonNegative(decimal.Decimal{}).IsZero())
}

func TestValidAmount(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{in: "0.01", want: true},
		{in: "30.50", want: true},
		{in: "30.500", want: true},
		{in: "999999999999.99", want: true},
		{in: "0", want: false},
		{in: "-1", want: false},
		{in: "0.001", want: false},
		{in: "12.345", want: false},
		{in: "1000000000000", want: false},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, ValidAmount(decimal.RequireFromString(tc.in)))
		})
	}
}

func TestLabels(t *testing.T) {
	assert.Equal(t, "Bank transfer", PaymentMethodBankTransfer.Label())
	assert.Equal(t, "Payment", PaymentMethod("cheque").Label())
	assert.False(t, PaymentMethod("cheque").IsValid())
	assert.True(t, PaymentMethodMobileMoney.IsValid())

	assert.Equal(t, "Goods on credit", DebtReasonGoodsOnCredit.Label())
	assert.Equal(t, "school fees", DebtReason("school fees").Label())
	assert.Equal(t, "Debt", DebtReason("  ").Label())
}

func TestEventKindRank(t *testing.T) {
	assert.Less(t, EventKindSale.Rank(), EventKindDebt.Rank())
	assert.Less(t, EventKindDebt.Rank(), EventKindPayment.Rank())
}
