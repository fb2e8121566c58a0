package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/josh-kwaku/pos-ledger/internal/domain"
)

const debtColumns = `id, customer_id, amount::text, reason, notes, occurred_at, created_at`

type DebtRepository struct {
	db *sql.DB
}

func NewDebtRepository(db *sql.DB) *DebtRepository {
	return &DebtRepository{db: db}
}

func (r *DebtRepository) Create(ctx context.Context, d *domain.Debt) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO debts (id, customer_id, amount, reason, notes, occurred_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		d.ID, d.CustomerID, d.Amount.String(), d.Reason, d.Notes,
		writeTime(d.OccurredAt), d.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("Create: %w", domain.ErrCustomerNotFound)
		}
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

func (r *DebtRepository) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]domain.Debt, error) {
	debts, err := r.query(ctx,
		`SELECT `+debtColumns+` FROM debts WHERE customer_id = $1 ORDER BY created_at, id`, customerID,
	)
	if err != nil {
		return nil, fmt.Errorf("ListByCustomer: %w", err)
	}
	return debts, nil
}

func (r *DebtRepository) ListAll(ctx context.Context) ([]domain.Debt, error) {
	debts, err := r.query(ctx, `SELECT `+debtColumns+` FROM debts ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("ListAll: %w", err)
	}
	return debts, nil
}

func (r *DebtRepository) query(ctx context.Context, q string, args ...any) ([]domain.Debt, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var debts []domain.Debt
	for rows.Next() {
		d, err := scanDebt(ctx, rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		debts = append(debts, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return debts, nil
}

func scanDebt(ctx context.Context, s scanner) (*domain.Debt, error) {
	var (
		d          domain.Debt
		amount     sql.NullString
		occurredAt sql.NullTime
	)
	err := s.Scan(
		&d.ID, &d.CustomerID, &amount, &d.Reason,
		&d.Notes, &occurredAt, &d.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	d.Amount = readAmount(ctx, "debts", d.ID, amount)
	d.OccurredAt = readTime(occurredAt)
	return &d, nil
}
