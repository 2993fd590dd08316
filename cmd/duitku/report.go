package main

import (
	"fmt"
	"os"
	"time"

	"github.com/duitku/duitku/internal/cli"
	"github.com/duitku/duitku/internal/report"
	"github.com/duitku/duitku/internal/service"
	"github.com/duitku/duitku/internal/sheets"
	"github.com/spf13/cobra"
)

func reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Export the ledger as CSV or upload a monthly report",
		RunE:  runReport,
	}
	cmd.Flags().String("user", "", "user id to report on")
	cmd.Flags().Bool("csv", false, "write all transactions as CSV to stdout or --out")
	cmd.Flags().String("out", "", "CSV output file (default stdout)")
	cmd.Flags().Bool("sheets", false, "upload this month's summary to Google Sheets")
	cmd.Flags().String("month", "", "report month as YYYY-MM (default current)")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

func runReport(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	userID, _ := cmd.Flags().GetString("user")
	asCSV, _ := cmd.Flags().GetBool("csv")
	toSheets, _ := cmd.Flags().GetBool("sheets")

	if !asCSV && !toSheets {
		return fmt.Errorf("pick at least one of --csv or --sheets")
	}

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	transactions, err := store.ListTransactions(ctx, userID, service.TransactionFilter{})
	if err != nil {
		return fmt.Errorf("failed to load transactions: %w", err)
	}

	if asCSV {
		out := os.Stdout
		if path, _ := cmd.Flags().GetString("out"); path != "" {
			file, createErr := os.Create(path)
			if createErr != nil {
				return fmt.Errorf("failed to create %s: %w", path, createErr)
			}
			defer func() { _ = file.Close() }()
			out = file
		}
		if err := report.WriteCSV(out, transactions); err != nil {
			return err
		}
	}

	if toSheets {
		month := time.Now()
		if raw, _ := cmd.Flags().GetString("month"); raw != "" {
			parsed, parseErr := time.ParseInLocation("2006-01", raw, time.Local)
			if parseErr != nil {
				return fmt.Errorf("month must be YYYY-MM: %w", parseErr)
			}
			month = parsed
		}

		config := sheets.DefaultConfig()
		if err := config.LoadFromEnv(); err != nil {
			return err
		}
		writer, err := sheets.NewWriter(ctx, config)
		if err != nil {
			return err
		}
		if err := writer.Write(ctx, report.BuildMonthlySummary(transactions, month)); err != nil {
			return err
		}
		fmt.Println(cli.SuccessStyle.Render("Monthly report uploaded."))
	}

	return nil
}
