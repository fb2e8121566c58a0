package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/josh-kwaku/pos-ledger/internal/domain"
	"github.com/josh-kwaku/pos-ledger/internal/logging"
	"github.com/josh-kwaku/pos-ledger/internal/service"
)

type eventService interface {
	RecordSale(ctx context.Context, in service.SaleInput) (*domain.Sale, error)
	RecordDebt(ctx context.Context, in service.DebtInput) (*domain.Debt, error)
	RecordPayment(ctx context.Context, in service.PaymentInput) (*domain.Payment, error)
}

type EventHandler struct {
	events eventService
}

func NewEventHandler(events eventService) *EventHandler {
	return &EventHandler{events: events}
}

type saleRequest struct {
	ReceiptNumber string     `json:"receipt_number" validate:"max=64"`
	CustomerID    *uuid.UUID `json:"customer_id"`
	Total         Amount     `json:"total" validate:"money"`
	Notes         *string    `json:"notes" validate:"omitempty,max=2000"`
	OccurredAt    *time.Time `json:"occurred_at"`
}

type debtRequest struct {
	CustomerID uuid.UUID  `json:"customer_id" validate:"required"`
	Amount     Amount     `json:"amount" validate:"money"`
	Reason     string     `json:"reason" validate:"max=200"`
	Notes      *string    `json:"notes" validate:"omitempty,max=2000"`
	OccurredAt *time.Time `json:"occurred_at"`
}

type paymentRequest struct {
	CustomerID uuid.UUID  `json:"customer_id" validate:"required"`
	Amount     Amount     `json:"amount" validate:"money"`
	Method     string     `json:"method" validate:"required,payment_method"`
	Notes      *string    `json:"notes" validate:"omitempty,max=2000"`
	OccurredAt *time.Time `json:"occurred_at"`
}

type saleDTO struct {
	ID            uuid.UUID  `json:"id"`
	ReceiptNumber string     `json:"receipt_number"`
	CustomerID    *uuid.UUID `json:"customer_id"`
	Total         string     `json:"total"`
	Notes         *string    `json:"notes"`
	OccurredAt    time.Time  `json:"occurred_at"`
	CreatedAt     time.Time  `json:"created_at"`
}

type debtDTO struct {
	ID         uuid.UUID `json:"id"`
	CustomerID uuid.UUID `json:"customer_id"`
	Amount     string    `json:"amount"`
	Reason     string    `json:"reason"`
	Notes      *string   `json:"notes"`
	OccurredAt time.Time `json:"occurred_at"`
	CreatedAt  time.Time `json:"created_at"`
}

type paymentDTO struct {
	ID         uuid.UUID `json:"id"`
	CustomerID uuid.UUID `json:"customer_id"`
	Amount     string    `json:"amount"`
	Method     string    `json:"method"`
	Notes      *string   `json:"notes"`
	OccurredAt time.Time `json:"occurred_at"`
	CreatedAt  time.Time `json:"created_at"`
}

func (h *EventHandler) CreateSale(w http.ResponseWriter, r *http.Request) {
	var req saleRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	s, err := h.events.RecordSale(r.Context(), service.SaleInput{
		ReceiptNumber: req.ReceiptNumber,
		CustomerID:    req.CustomerID,
		Total:         req.Total.Decimal(),
		Notes:         req.Notes,
		OccurredAt:    req.OccurredAt,
	})
	if err != nil {
		logging.FromContext(r.Context()).Warn("sale not recorded", "error", err)
		RespondDomainError(w, err)
		return
	}

	dto := saleDTO{
		ID:            s.ID,
		ReceiptNumber: s.ReceiptNumber,
		Total:         s.Total.StringFixed(2),
		Notes:         s.Notes,
		OccurredAt:    s.OccurredAt,
		CreatedAt:     s.CreatedAt,
	}
	if s.CustomerID.Valid {
		dto.CustomerID = &s.CustomerID.UUID
	}
	RespondSuccess(w, http.StatusCreated, dto)
}

func (h *EventHandler) CreateDebt(w http.ResponseWriter, r *http.Request) {
	var req debtRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	d, err := h.events.RecordDebt(r.Context(), service.DebtInput{
		CustomerID: req.CustomerID,
		Amount:     req.Amount.Decimal(),
		Reason:     domain.DebtReason(req.Reason),
		Notes:      req.Notes,
		OccurredAt: req.OccurredAt,
	})
	if err != nil {
		logging.FromContext(r.Context()).Warn("debt not recorded", "error", err)
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusCreated, debtDTO{
		ID:         d.ID,
		CustomerID: d.CustomerID,
		Amount:     d.Amount.StringFixed(2),
		Reason:     string(d.Reason),
		Notes:      d.Notes,
		OccurredAt: d.OccurredAt,
		CreatedAt:  d.CreatedAt,
	})
}

func (h *EventHandler) CreatePayment(w http.ResponseWriter, r *http.Request) {
	var req paymentRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	p, err := h.events.RecordPayment(r.Context(), service.PaymentInput{
		CustomerID: req.CustomerID,
		Amount:     req.Amount.Decimal(),
		Method:     domain.PaymentMethod(req.Method),
		Notes:      req.Notes,
		OccurredAt: req.OccurredAt,
	})
	if err != nil {
		logging.FromContext(r.Context()).Warn("payment not recorded", "error", err)
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusCreated, paymentDTO{
		ID:         p.ID,
		CustomerID: p.CustomerID,
		Amount:     p.Amount.StringFixed(2),
		Method:     string(p.Method),
		Notes:      p.Notes,
		OccurredAt: p.OccurredAt,
		CreatedAt:  p.CreatedAt,
	})
}
