package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/duitku/duitku/internal/cli"
	"github.com/duitku/duitku/internal/common"
	"github.com/duitku/duitku/internal/ofx"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file.ofx> [more files...]",
		Short: "Import bank statements (OFX/QFX)",
		Long: `Parse OFX or QFX bank statements and book their transactions.
Statements carry no category, so everything lands in "lainnya" for you
to re-file. Records already imported are skipped.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runImport,
	}
	cmd.Flags().String("user", "", "user id owning the transactions")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	userID, _ := cmd.Flags().GetString("user")

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	parser := ofx.NewParser()
	bar := progressbar.Default(int64(len(args)), "importing")

	var imported, skipped int
	for _, path := range args {
		file, openErr := os.Open(path)
		if openErr != nil {
			return fmt.Errorf("failed to open %s: %w", path, openErr)
		}

		transactions, parseErr := parser.ParseFile(ctx, file, userID)
		_ = file.Close()
		if parseErr != nil {
			return fmt.Errorf("failed to parse %s: %w", path, parseErr)
		}

		for i := range transactions {
			saveErr := store.SaveTransaction(ctx, &transactions[i])
			switch {
			case errors.Is(saveErr, common.ErrDuplicateEntry):
				skipped++
			case saveErr != nil:
				return fmt.Errorf("failed to save transaction from %s: %w", path, saveErr)
			default:
				imported++
			}
		}
		_ = bar.Add(1)
	}

	fmt.Println()
	fmt.Println(cli.SuccessStyle.Render(
		fmt.Sprintf("Imported %d transactions (%d duplicates skipped)", imported, skipped)))
	return nil
}
