package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/josh-kwaku/pos-ledger/internal/domain"
)

const TestPassword = "password123"

func SeedTestUser(t *testing.T, db *sql.DB, email, name string, role domain.Role) *domain.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	u := &domain.User{
		ID:           uuid.New(),
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
		Role:         role,
		Status:       domain.UserStatusActive,
		CreatedAt:    time.Now().UTC(),
	}

	_, err = db.Exec(
		`INSERT INTO users (id, email, name, password_hash, role, status, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		u.ID, u.Email, u.Name, u.PasswordHash, u.Role, u.Status, u.CreatedAt,
	)
	if err != nil {
		t.Fatalf("seed test user %s: %v", email, err)
	}
	return u
}

func SeedCustomer(t *testing.T, db *sql.DB, name string) *domain.Customer {
	t.Helper()

	now := time.Now().UTC()
	c := &domain.Customer{
		ID:        uuid.New(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	_, err := db.Exec(
		`INSERT INTO customers (id, name, created_at, updated_at) VALUES ($1, $2, $3, $4)`,
		c.ID, c.Name, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("seed customer %s: %v", name, err)
	}
	return c
}

// SeedSale inserts a sale with a raw amount, so tests can store values the
// service layer would reject. A nil customerID seeds a walk-in sale.
func SeedSale(t *testing.T, db *sql.DB, customerID *uuid.UUID, total string, at time.Time) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := db.Exec(
		`INSERT INTO sales (id, receipt_number, customer_id, total, occurred_at) VALUES ($1, $2, $3, $4, $5)`,
		id, "R-"+id.String()[:8], customerID, total, nullTime(at),
	)
	if err != nil {
		t.Fatalf("seed sale: %v", err)
	}
	return id
}

func SeedDebt(t *testing.T, db *sql.DB, customerID uuid.UUID, amount string, reason domain.DebtReason, at time.Time) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := db.Exec(
		`INSERT INTO debts (id, customer_id, amount, reason, occurred_at) VALUES ($1, $2, $3, $4, $5)`,
		id, customerID, amount, reason, nullTime(at),
	)
	if err != nil {
		t.Fatalf("seed debt: %v", err)
	}
	return id
}

func SeedPayment(t *testing.T, db *sql.DB, customerID uuid.UUID, amount string, method domain.PaymentMethod, at time.Time) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := db.Exec(
		`INSERT INTO payments (id, customer_id, amount, method, occurred_at) VALUES ($1, $2, $3, $4, $5)`,
		id, customerID, amount, method, nullTime(at),
	)
	if err != nil {
		t.Fatalf("seed payment: %v", err)
	}
	return id
}

func Decimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("parse decimal %q: %v", s, err)
	}
	return d
}

func nullTime(at time.Time) sql.NullTime {
	return sql.NullTime{Time: at, Valid: !at.IsZero()}
}
