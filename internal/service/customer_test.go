package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josh-kwaku/pos-ledger/internal/domain"
)

func strPtr(s string) *string { return &s }

func TestCustomerService_Create(t *testing.T) {
	svc := newServices()
	ctx := context.Background()

	tests := []struct {
		name    string
		in      CustomerInput
		wantErr error
	}{
		{name: "valid", in: CustomerInput{Name: "  Wanjiru  ", Phone: strPtr(" 0711 ")}},
		{name: "empty name", in: CustomerInput{Name: ""}, wantErr: domain.ErrInvalidCustomer},
		{name: "blank name", in: CustomerInput{Name: "   "}, wantErr: domain.ErrInvalidCustomer},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, err := svc.customers.Create(ctx, tc.in)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Wanjiru", c.Name)
			require.NotNil(t, c.Phone)
			assert.Equal(t, "0711", *c.Phone)
			assert.Nil(t, c.Email)
			assert.NotEqual(t, uuid.Nil, c.ID)
		})
	}
}

func TestCustomerService_Update(t *testing.T) {
	svc := newServices()
	ctx := context.Background()

	c, err := svc.customers.Create(ctx, CustomerInput{Name: "Otieno"})
	require.NoError(t, err)

	updated, err := svc.customers.Update(ctx, c.ID, CustomerInput{Name: "Otieno J.", Email: strPtr("oj@example.com")})
	require.NoError(t, err)
	assert.Equal(t, "Otieno J.", updated.Name)
	require.NotNil(t, updated.Email)

	_, err = svc.customers.Update(ctx, uuid.New(), CustomerInput{Name: "ghost"})
	assert.ErrorIs(t, err, domain.ErrCustomerNotFound)
}

func TestCustomerService_Delete(t *testing.T) {
	svc := newServices()
	ctx := context.Background()

	fresh, err := svc.customers.Create(ctx, CustomerInput{Name: "Fresh"})
	require.NoError(t, err)
	require.NoError(t, svc.customers.Delete(ctx, fresh.ID))

	_, err = svc.customers.Get(ctx, fresh.ID)
	assert.ErrorIs(t, err, domain.ErrCustomerNotFound)

	regular, err := svc.customers.Create(ctx, CustomerInput{Name: "Regular"})
	require.NoError(t, err)
	_, err = svc.events.RecordPayment(ctx, PaymentInput{
		CustomerID: regular.ID,
		Amount:     decimal.NewFromInt(10),
		Method:     domain.PaymentMethodCash,
	})
	require.NoError(t, err)

	err = svc.customers.Delete(ctx, regular.ID)
	assert.ErrorIs(t, err, domain.ErrCustomerHasHistory)

	err = svc.customers.Delete(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrCustomerNotFound)
}

func TestCustomerService_List(t *testing.T) {
	svc := newServices()
	ctx := context.Background()

	for _, name := range []string{"Achieng", "Baraka", "Achola"} {
		_, err := svc.customers.Create(ctx, CustomerInput{Name: name})
		require.NoError(t, err)
	}

	list, total, err := svc.customers.List(ctx, " ach ", 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, list, 2)
}
