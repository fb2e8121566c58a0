package migrations_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josh-kwaku/pos-ledger/internal/testutil"
	"github.com/josh-kwaku/pos-ledger/migrations"
)

func TestVersions(t *testing.T) {
	versions, err := migrations.Versions()
	require.NoError(t, err)
	assert.Equal(t, []string{
		"001_create_users",
		"002_create_customers",
		"003_create_ledger_events",
		"004_create_idempotency_cache",
	}, versions)
}

func TestApplyIsRepeatable(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()

	applied, err := migrations.Apply(ctx, db)
	require.NoError(t, err)
	assert.Empty(t, applied, "SetupTestDB already migrated")

	var n int
	require.NoError(t, db.QueryRowContext(ctx, `SELECT count(*) FROM schema_migrations`).Scan(&n))
	assert.Equal(t, 4, n)

	_, err = db.ExecContext(ctx, `SELECT id, customer_id, total, occurred_at FROM sales LIMIT 1`)
	assert.NoError(t, err)
}
