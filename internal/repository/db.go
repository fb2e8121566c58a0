package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/josh-kwaku/pos-ledger/internal/logging"
	"github.com/josh-kwaku/pos-ledger/internal/metrics"
)

type scanner interface {
	Scan(dest ...any) error
}

const pqForeignKeyViolation = "23503"

func isForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pqForeignKeyViolation
}

// readAmount turns a stored amount, selected as text, into a usable value.
// Unparseable and negative values become zero so one bad row cannot break a
// customer's ledger.
func readAmount(ctx context.Context, table string, id uuid.UUID, raw sql.NullString) decimal.Decimal {
	if !raw.Valid {
		return coerced(ctx, table, id, "null")
	}
	d, err := decimal.NewFromString(strings.TrimSpace(raw.String))
	if err != nil {
		return coerced(ctx, table, id, raw.String)
	}
	if d.IsNegative() {
		return coerced(ctx, table, id, raw.String)
	}
	return d
}

func coerced(ctx context.Context, table string, id uuid.UUID, raw string) decimal.Decimal {
	logging.FromContext(ctx).Warn("stored amount read as zero",
		"table", table,
		"id", id,
		"raw_amount", raw,
	)
	metrics.AmountsCoerced.WithLabelValues(table).Inc()
	return decimal.Zero
}

// readTime maps a NULL timestamp to the zero time, which the ledger orders
// before every dated event.
func readTime(t sql.NullTime) time.Time {
	if !t.Valid {
		return time.Time{}
	}
	return t.Time.UTC()
}

func writeTime(t time.Time) sql.NullTime {
	if t.IsZero() {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t, Valid: true}
}
