package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/josh-kwaku/pos-ledger/internal/domain"
)

const saleColumns = `id, receipt_number, customer_id, total::text, notes, occurred_at, created_at`

type SaleRepository struct {
	db *sql.DB
}

func NewSaleRepository(db *sql.DB) *SaleRepository {
	return &SaleRepository{db: db}
}

func (r *SaleRepository) Create(ctx context.Context, s *domain.Sale) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO sales (id, receipt_number, customer_id, total, notes, occurred_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		s.ID, s.ReceiptNumber, s.CustomerID, s.Total.String(), s.Notes,
		writeTime(s.OccurredAt), s.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("Create: %w", domain.ErrCustomerNotFound)
		}
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

func (r *SaleRepository) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]domain.Sale, error) {
	sales, err := r.query(ctx,
		`SELECT `+saleColumns+` FROM sales WHERE customer_id = $1 ORDER BY created_at, id`, customerID,
	)
	if err != nil {
		return nil, fmt.Errorf("ListByCustomer: %w", err)
	}
	return sales, nil
}

// ListOnAccount returns every sale attached to a customer. Walk-in sales are
// left out.
func (r *SaleRepository) ListOnAccount(ctx context.Context) ([]domain.Sale, error) {
	sales, err := r.query(ctx,
		`SELECT `+saleColumns+` FROM sales WHERE customer_id IS NOT NULL ORDER BY created_at, id`,
	)
	if err != nil {
		return nil, fmt.Errorf("ListOnAccount: %w", err)
	}
	return sales, nil
}

func (r *SaleRepository) query(ctx context.Context, q string, args ...any) ([]domain.Sale, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sales []domain.Sale
	for rows.Next() {
		s, err := scanSale(ctx, rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		sales = append(sales, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return sales, nil
}

func scanSale(ctx context.Context, s scanner) (*domain.Sale, error) {
	var (
		sale       domain.Sale
		total      sql.NullString
		occurredAt sql.NullTime
	)
	err := s.Scan(
		&sale.ID, &sale.ReceiptNumber, &sale.CustomerID, &total,
		&sale.Notes, &occurredAt, &sale.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	sale.Total = readAmount(ctx, "sales", sale.ID, total)
	sale.OccurredAt = readTime(occurredAt)
	return &sale, nil
}
