package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/josh-kwaku/pos-ledger/internal/domain"
)

const customerColumns = `id, name, phone, email, address, notes, created_at, updated_at`

type CustomerRepository struct {
	db *sql.DB
}

func NewCustomerRepository(db *sql.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

func (r *CustomerRepository) Create(ctx context.Context, c *domain.Customer) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO customers (id, name, phone, email, address, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		c.ID, c.Name, c.Phone, c.Email, c.Address, c.Notes, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

func (r *CustomerRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+customerColumns+` FROM customers WHERE id = $1`, id,
	)
	c, err := scanCustomer(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("GetByID: %w", domain.ErrCustomerNotFound)
		}
		return nil, fmt.Errorf("GetByID: %w", err)
	}
	return c, nil
}

// List returns customers ordered by name. An empty search matches everyone;
// otherwise name and phone are matched case-insensitively.
func (r *CustomerRepository) List(ctx context.Context, search string, limit, offset int) ([]domain.Customer, int, error) {
	pattern := "%" + search + "%"

	var total int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM customers
		WHERE $1 = '' OR name ILIKE $2 OR phone ILIKE $2`, search, pattern,
	).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("List: count: %w", err)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT `+customerColumns+` FROM customers
		WHERE $1 = '' OR name ILIKE $2 OR phone ILIKE $2
		ORDER BY lower(name), id
		LIMIT $3 OFFSET $4`, search, pattern, limit, offset,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("List: %w", err)
	}
	defer rows.Close()

	var customers []domain.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("List: scan: %w", err)
		}
		customers = append(customers, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("List: rows: %w", err)
	}
	return customers, total, nil
}

// Names maps every customer id to its display name.
func (r *CustomerRepository) Names(ctx context.Context) (map[uuid.UUID]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM customers`)
	if err != nil {
		return nil, fmt.Errorf("Names: %w", err)
	}
	defer rows.Close()

	names := make(map[uuid.UUID]string)
	for rows.Next() {
		var id uuid.UUID
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, fmt.Errorf("Names: scan: %w", err)
		}
		names[id] = name
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("Names: rows: %w", err)
	}
	return names, nil
}

func (r *CustomerRepository) Update(ctx context.Context, c *domain.Customer) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE customers
		SET name = $2, phone = $3, email = $4, address = $5, notes = $6, updated_at = $7
		WHERE id = $1`,
		c.ID, c.Name, c.Phone, c.Email, c.Address, c.Notes, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("Update: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("Update: rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("Update: %w", domain.ErrCustomerNotFound)
	}
	return nil
}

func (r *CustomerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("Delete: %w", domain.ErrCustomerHasHistory)
		}
		return fmt.Errorf("Delete: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("Delete: rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("Delete: %w", domain.ErrCustomerNotFound)
	}
	return nil
}

// CountEvents counts the sales, debts and payments that reference a customer.
func (r *CustomerRepository) CountEvents(ctx context.Context, id uuid.UUID) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT
			(SELECT COUNT(*) FROM sales WHERE customer_id = $1) +
			(SELECT COUNT(*) FROM debts WHERE customer_id = $1) +
			(SELECT COUNT(*) FROM payments WHERE customer_id = $1)`, id,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("CountEvents: %w", err)
	}
	return n, nil
}

func scanCustomer(s scanner) (*domain.Customer, error) {
	var c domain.Customer
	err := s.Scan(
		&c.ID, &c.Name, &c.Phone, &c.Email,
		&c.Address, &c.Notes, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
