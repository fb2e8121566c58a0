package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/josh-kwaku/pos-ledger/internal/domain"
	"github.com/josh-kwaku/pos-ledger/internal/logging"
)

type SaleInput struct {
	ReceiptNumber string
	CustomerID    *uuid.UUID
	Total         decimal.Decimal
	Notes         *string
	OccurredAt    *time.Time
}

type DebtInput struct {
	CustomerID uuid.UUID
	Amount     decimal.Decimal
	Reason     domain.DebtReason
	Notes      *string
	OccurredAt *time.Time
}

type PaymentInput struct {
	CustomerID uuid.UUID
	Amount     decimal.Decimal
	Method     domain.PaymentMethod
	Notes      *string
	OccurredAt *time.Time
}

// EventService records the three kinds of event that feed customer ledgers.
type EventService struct {
	customers customerReader
	sales     saleRepository
	debts     debtRepository
	payments  paymentRepository
	now       func() time.Time
}

func NewEventService(customers customerReader, sales saleRepository, debts debtRepository, payments paymentRepository) *EventService {
	return &EventService{
		customers: customers,
		sales:     sales,
		debts:     debts,
		payments:  payments,
		now:       time.Now,
	}
}

func (s *EventService) RecordSale(ctx context.Context, in SaleInput) (*domain.Sale, error) {
	if !domain.ValidAmount(in.Total) {
		return nil, fmt.Errorf("RecordSale: %w", domain.ErrInvalidAmount)
	}

	var customerID uuid.NullUUID
	if in.CustomerID != nil && *in.CustomerID != uuid.Nil {
		if err := s.requireCustomer(ctx, *in.CustomerID); err != nil {
			return nil, fmt.Errorf("RecordSale: %w", err)
		}
		customerID = uuid.NullUUID{UUID: *in.CustomerID, Valid: true}
	}

	now := s.now().UTC()
	sale := &domain.Sale{
		ID:            uuid.New(),
		ReceiptNumber: strings.TrimSpace(in.ReceiptNumber),
		CustomerID:    customerID,
		Total:         in.Total,
		Notes:         trimmed(in.Notes),
		OccurredAt:    occurredAt(in.OccurredAt, now),
		CreatedAt:     now,
	}
	if err := s.sales.Create(ctx, sale); err != nil {
		return nil, fmt.Errorf("RecordSale: %w", err)
	}

	logging.FromContext(ctx).Info("sale recorded",
		"sale_id", sale.ID,
		"customer_id", customerID.UUID,
		"walk_in", sale.IsWalkIn(),
		"total", sale.Total.String(),
	)
	return sale, nil
}

func (s *EventService) RecordDebt(ctx context.Context, in DebtInput) (*domain.Debt, error) {
	if !domain.ValidAmount(in.Amount) {
		return nil, fmt.Errorf("RecordDebt: %w", domain.ErrInvalidAmount)
	}
	if err := s.requireCustomer(ctx, in.CustomerID); err != nil {
		return nil, fmt.Errorf("RecordDebt: %w", err)
	}

	reason := domain.DebtReason(strings.TrimSpace(string(in.Reason)))
	if reason == "" {
		reason = domain.DebtReasonOther
	}

	now := s.now().UTC()
	debt := &domain.Debt{
		ID:         uuid.New(),
		CustomerID: in.CustomerID,
		Amount:     in.Amount,
		Reason:     reason,
		Notes:      trimmed(in.Notes),
		OccurredAt: occurredAt(in.OccurredAt, now),
		CreatedAt:  now,
	}
	if err := s.debts.Create(ctx, debt); err != nil {
		return nil, fmt.Errorf("RecordDebt: %w", err)
	}

	logging.FromContext(ctx).Info("debt recorded",
		"debt_id", debt.ID,
		"customer_id", debt.CustomerID,
		"amount", debt.Amount.String(),
		"reason", debt.Reason,
	)
	return debt, nil
}

func (s *EventService) RecordPayment(ctx context.Context, in PaymentInput) (*domain.Payment, error) {
	if !domain.ValidAmount(in.Amount) {
		return nil, fmt.Errorf("RecordPayment: %w", domain.ErrInvalidAmount)
	}
	if !in.Method.IsValid() {
		return nil, fmt.Errorf("RecordPayment: %q: %w", in.Method, domain.ErrInvalidPaymentMethod)
	}
	if err := s.requireCustomer(ctx, in.CustomerID); err != nil {
		return nil, fmt.Errorf("RecordPayment: %w", err)
	}

	now := s.now().UTC()
	payment := &domain.Payment{
		ID:         uuid.New(),
		CustomerID: in.CustomerID,
		Amount:     in.Amount,
		Method:     in.Method,
		Notes:      trimmed(in.Notes),
		OccurredAt: occurredAt(in.OccurredAt, now),
		CreatedAt:  now,
	}
	if err := s.payments.Create(ctx, payment); err != nil {
		return nil, fmt.Errorf("RecordPayment: %w", err)
	}

	logging.FromContext(ctx).Info("payment recorded",
		"payment_id", payment.ID,
		"customer_id", payment.CustomerID,
		"amount", payment.Amount.String(),
		"method", payment.Method,
	)
	return payment, nil
}

func (s *EventService) requireCustomer(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return domain.ErrInvalidCustomer
	}
	if _, err := s.customers.GetByID(ctx, id); err != nil {
		return err
	}
	return nil
}

func occurredAt(t *time.Time, now time.Time) time.Time {
	if t == nil || t.IsZero() {
		return now
	}
	return t.UTC()
}
