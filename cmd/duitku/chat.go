package main

import (
	"fmt"
	"os"

	"github.com/duitku/duitku/internal/cli"
	"github.com/spf13/cobra"
)

func chatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Talk to the assistant in the terminal",
		Long: `Start an interactive session with the assistant. Describe a
transaction in plain language, or attach media with /foto <path> and
/suara <path>. Extracted transactions are saved immediately.`,
		RunE: runChat,
	}
	cmd.Flags().String("user", "", "user id owning the session")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

func runChat(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	userID, _ := cmd.Flags().GetString("user")

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	assistantSvc, err := initAssistant(store)
	if err != nil {
		return fmt.Errorf("failed to initialize assistant: %w", err)
	}

	session := cli.NewChatSession(assistantSvc, userID, os.Stdin, os.Stdout)
	return session.Run(ctx)
}
