package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/josh-kwaku/pos-ledger/internal/statement"
)

func init() {
	rootCmd.AddCommand(balanceCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(statementCmd)
	rootCmd.AddCommand(balancesCmd)
	rootCmd.AddCommand(migrateCmd)

	statementCmd.Flags().String("format", "csv", "Output format: csv, html or xlsx")
	statementCmd.Flags().String("from", "", "First day of the period (YYYY-MM-DD)")
	statementCmd.Flags().String("to", "", "Last day of the period, inclusive (YYYY-MM-DD)")
	statementCmd.Flags().StringP("output", "o", "", "Write to a file instead of stdout")
}

var balanceCmd = &cobra.Command{
	Use:   "balance CUSTOMER_ID",
	Short: "Print a customer's outstanding balance",
	Args:  cobra.ExactArgs(1),
	RunE:  runBalance,
}

func runBalance(cmd *cobra.Command, args []string) error {
	id, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid customer id %q", args[0])
	}

	svc, closeFn, err := openLedger(cmd.Context(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer closeFn()

	bal, err := svc.Balance(cmd.Context(), id)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), bal.StringFixed(2))
	return nil
}

var historyCmd = &cobra.Command{
	Use:   "history CUSTOMER_ID",
	Short: "Print a customer's ledger, most recent first",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	id, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid customer id %q", args[0])
	}

	svc, closeFn, err := openLedger(cmd.Context(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer closeFn()

	rows, err := svc.History(cmd.Context(), id)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "DATE\tBEFORE\tAMOUNT\tKIND\tAFTER\t")
	for _, r := range rows {
		date := "-"
		if !r.OccurredAt.IsZero() {
			date = r.OccurredAt.Format("2006-01-02 15:04")
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t\n",
			date,
			r.BalanceBefore.StringFixed(2),
			r.AbsAmount().StringFixed(2),
			r.Label,
			r.BalanceAfter.StringFixed(2),
		)
	}
	return tw.Flush()
}

var statementCmd = &cobra.Command{
	Use:   "statement CUSTOMER_ID",
	Short: "Export a customer statement",
	Args:  cobra.ExactArgs(1),
	RunE:  runStatement,
}

var statementWriters = map[string]func(io.Writer, statement.Statement) error{
	"csv":  statement.WriteCSV,
	"html": statement.WriteHTML,
	"xlsx": statement.WriteXLSX,
}

func runStatement(cmd *cobra.Command, args []string) error {
	id, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid customer id %q", args[0])
	}

	format, _ := cmd.Flags().GetString("format")
	write, ok := statementWriters[format]
	if !ok {
		return fmt.Errorf("unsupported format %q: use csv, html or xlsx", format)
	}

	fromFlag, _ := cmd.Flags().GetString("from")
	toFlag, _ := cmd.Flags().GetString("to")
	from, err := parseDay(fromFlag, false)
	if err != nil {
		return fmt.Errorf("--from: %w", err)
	}
	to, err := parseDay(toFlag, true)
	if err != nil {
		return fmt.Errorf("--to: %w", err)
	}

	svc, closeFn, err := openLedger(cmd.Context(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer closeFn()

	st, err := svc.Statement(cmd.Context(), id, from, to)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if path, _ := cmd.Flags().GetString("output"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create %s: %w", path, err)
		}
		defer f.Close()
		out = f
	}
	return write(out, *st)
}

var balancesCmd = &cobra.Command{
	Use:   "balances",
	Short: "List every customer by amount owed",
	Args:  cobra.NoArgs,
	RunE:  runBalances,
}

func runBalances(cmd *cobra.Command, _ []string) error {
	svc, closeFn, err := openLedger(cmd.Context(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer closeFn()

	balances, err := svc.Balances(cmd.Context())
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CUSTOMER\tNAME\tBALANCE")
	for _, b := range balances {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", b.CustomerID, b.Name, b.Balance.StringFixed(2))
	}
	return tw.Flush()
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending schema migrations",
	Args:  cobra.NoArgs,
	RunE:  runMigrate,
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	apply, closeFn, err := openMigrator(cmd.Context(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer closeFn()

	applied, err := apply(cmd.Context())
	for _, v := range applied {
		fmt.Fprintln(cmd.OutOrStdout(), "applied", v)
	}
	if err != nil {
		return err
	}
	if len(applied) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "schema is up to date")
	}
	return nil
}

func parseDay(s string, endOfDay bool) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, fmt.Errorf("expected YYYY-MM-DD, got %q", s)
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}
