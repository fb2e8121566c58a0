package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/josh-kwaku/pos-ledger/internal/domain"
)

const paymentColumns = `id, customer_id, amount::text, method, notes, occurred_at, created_at`

type PaymentRepository struct {
	db *sql.DB
}

func NewPaymentRepository(db *sql.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO payments (id, customer_id, amount, method, notes, occurred_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		p.ID, p.CustomerID, p.Amount.String(), p.Method, p.Notes,
		writeTime(p.OccurredAt), p.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("Create: %w", domain.ErrCustomerNotFound)
		}
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

func (r *PaymentRepository) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]domain.Payment, error) {
	payments, err := r.query(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE customer_id = $1 ORDER BY created_at, id`, customerID,
	)
	if err != nil {
		return nil, fmt.Errorf("ListByCustomer: %w", err)
	}
	return payments, nil
}

func (r *PaymentRepository) ListAll(ctx context.Context) ([]domain.Payment, error) {
	payments, err := r.query(ctx, `SELECT `+paymentColumns+` FROM payments ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("ListAll: %w", err)
	}
	return payments, nil
}

func (r *PaymentRepository) query(ctx context.Context, q string, args ...any) ([]domain.Payment, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []domain.Payment
	for rows.Next() {
		p, err := scanPayment(ctx, rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		payments = append(payments, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return payments, nil
}

func scanPayment(ctx context.Context, s scanner) (*domain.Payment, error) {
	var (
		p          domain.Payment
		amount     sql.NullString
		occurredAt sql.NullTime
	)
	err := s.Scan(
		&p.ID, &p.CustomerID, &amount, &p.Method,
		&p.Notes, &occurredAt, &p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.Amount = readAmount(ctx, "payments", p.ID, amount)
	p.OccurredAt = readTime(occurredAt)
	return &p, nil
}
