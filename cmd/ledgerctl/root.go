package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/josh-kwaku/pos-ledger/internal/config"
	"github.com/josh-kwaku/pos-ledger/internal/domain"
	"github.com/josh-kwaku/pos-ledger/internal/logging"
	"github.com/josh-kwaku/pos-ledger/internal/repository"
	"github.com/josh-kwaku/pos-ledger/internal/service"
	"github.com/josh-kwaku/pos-ledger/internal/statement"
	"github.com/josh-kwaku/pos-ledger/migrations"
)

var rootCmd = &cobra.Command{
	Use:           "ledgerctl",
	Short:         "Inspect customer ledgers",
	Long:          `ledgerctl reads sales, debts and payments from the POS database and computes customer balances and statements, the same way the API does.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

type ledgerReader interface {
	Balance(ctx context.Context, customerID uuid.UUID) (decimal.Decimal, error)
	History(ctx context.Context, customerID uuid.UUID) ([]domain.LedgerRow, error)
	Statement(ctx context.Context, customerID uuid.UUID, from, to *time.Time) (*statement.Statement, error)
	Balances(ctx context.Context) ([]service.CustomerBalance, error)
}

// connect loads the CLI config, sends logs to logOut and opens the database.
func connect(ctx context.Context, logOut io.Writer) (*sql.DB, *config.CLIConfig, error) {
	cfg, err := config.LoadCLI()
	if err != nil {
		return nil, nil, err
	}
	logging.Init(logOut, "ledgerctl", cfg.LogLevel, "development")

	db, err := repository.NewPostgresDB(ctx, cfg.DatabaseURL, repository.PoolConfig{
		MaxOpenConns:     2,
		MaxIdleConns:     1,
		ConnMaxLifetimeS: 60,
		ConnMaxIdleTimeS: 30,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("connect database: %w", err)
	}
	return db, cfg, nil
}

// openLedger is replaced in tests. Logs go to logOut so they never mix with
// a statement written to stdout.
var openLedger = func(ctx context.Context, logOut io.Writer) (ledgerReader, func(), error) {
	db, cfg, err := connect(ctx, logOut)
	if err != nil {
		return nil, nil, err
	}

	svc := service.NewLedgerService(
		repository.NewCustomerRepository(db),
		repository.NewSaleRepository(db),
		repository.NewDebtRepository(db),
		repository.NewPaymentRepository(db),
		cfg.CurrencySymbol,
	)
	return svc, func() { db.Close() }, nil
}

// openMigrator is replaced in tests.
var openMigrator = func(ctx context.Context, logOut io.Writer) (func(context.Context) ([]string, error), func(), error) {
	db, _, err := connect(ctx, logOut)
	if err != nil {
		return nil, nil, err
	}
	apply := func(ctx context.Context) ([]string, error) { return migrations.Apply(ctx, db) }
	return apply, func() { db.Close() }, nil
}
