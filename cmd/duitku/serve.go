package main

import (
	"fmt"

	"github.com/duitku/duitku/internal/api"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API for the mobile client",
		RunE:  runServe,
	}
	cmd.Flags().String("addr", "", "listen address (default :8080)")
	_ = viper.BindPFlag("server.addr", cmd.Flags().Lookup("addr"))
	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	assistantSvc, err := initAssistant(store)
	if err != nil {
		return fmt.Errorf("failed to initialize assistant: %w", err)
	}

	addr := viper.GetString("server.addr")
	if addr == "" {
		addr = ":8080"
	}

	server := api.NewServer(store, assistantSvc)
	return server.Run(addr)
}
