package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/duitku/duitku/internal/budget"
	"github.com/duitku/duitku/internal/category"
	"github.com/duitku/duitku/internal/cli"
	"github.com/duitku/duitku/internal/model"
	"github.com/duitku/duitku/internal/service"
	"github.com/spf13/cobra"
)

func budgetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "budget",
		Short: "Manage per-category budgets",
	}
	cmd.AddCommand(budgetListCmd())
	cmd.AddCommand(budgetSetCmd())
	cmd.AddCommand(budgetDeleteCmd())
	return cmd
}

func budgetListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show each budget and its standing this period",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			userID, _ := cmd.Flags().GetString("user")

			store, err := initStorage(ctx)
			if err != nil {
				return fmt.Errorf("failed to initialize storage: %w", err)
			}
			defer func() { _ = store.Close() }()

			budgets, err := store.ListBudgets(ctx, userID)
			if err != nil {
				return err
			}
			if len(budgets) == 0 {
				fmt.Println(cli.SubtleStyle.Render("No budgets set."))
				return nil
			}

			transactions, err := store.ListTransactions(ctx, userID, service.TransactionFilter{})
			if err != nil {
				return err
			}

			for _, st := range budget.Evaluate(budgets, transactions, time.Now()) {
				line := fmt.Sprintf("%-20s %s / %s (%s, %.0f%%)",
					st.Label,
					cli.FormatRupiah(st.Spent),
					cli.FormatRupiah(st.Amount),
					st.Period,
					st.Percentage)
				if st.IsOver {
					fmt.Println(cli.ErrorStyle.Render(line + "  OVER"))
				} else {
					fmt.Println(line)
				}
			}
			return nil
		},
	}
	cmd.Flags().String("user", "", "user id")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

func budgetSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <category> <amount>",
		Short: "Create or replace a category budget",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			userID, _ := cmd.Flags().GetString("user")
			period, _ := cmd.Flags().GetString("period")

			if !category.Known(args[0]) {
				return fmt.Errorf("unknown category %q", args[0])
			}
			amount, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil || amount <= 0 {
				return fmt.Errorf("amount must be a positive integer")
			}

			store, err := initStorage(ctx)
			if err != nil {
				return fmt.Errorf("failed to initialize storage: %w", err)
			}
			defer func() { _ = store.Close() }()

			b := &model.Budget{
				UserID:   userID,
				Category: args[0],
				Amount:   amount,
				Period:   model.Period(period),
			}
			if err := store.UpsertBudget(ctx, b); err != nil {
				return err
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf(
				"Budget %s: %s per %s", category.Label(b.Category), cli.FormatRupiah(b.Amount), b.Period)))
			return nil
		},
	}
	cmd.Flags().String("user", "", "user id")
	cmd.Flags().String("period", "monthly", "budget period (weekly, monthly, none)")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

func budgetDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <category>",
		Short: "Remove a category budget",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			userID, _ := cmd.Flags().GetString("user")

			store, err := initStorage(ctx)
			if err != nil {
				return fmt.Errorf("failed to initialize storage: %w", err)
			}
			defer func() { _ = store.Close() }()

			if err := store.DeleteBudget(ctx, userID, args[0]); err != nil {
				return err
			}
			fmt.Println(cli.SuccessStyle.Render("Budget removed."))
			return nil
		},
	}
	cmd.Flags().String("user", "", "user id")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}
