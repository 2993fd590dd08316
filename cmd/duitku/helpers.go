package main

import (
	"context"
	"fmt"

	"github.com/duitku/duitku/internal/assistant"
	"github.com/duitku/duitku/internal/config"
	"github.com/duitku/duitku/internal/extract"
	"github.com/duitku/duitku/internal/gemini"
	"github.com/duitku/duitku/internal/service"
	"github.com/duitku/duitku/internal/storage"
	"github.com/spf13/viper"
)

// initStorage opens the database from config and runs migrations.
func initStorage(ctx context.Context) (service.Storage, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = "$HOME/.local/share/duitku/duitku.db"
	}
	dbPath = config.ExpandPath(dbPath)

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return store, nil
}

// initAssistant wires the Gemini client and extractor onto storage.
func initAssistant(store service.Storage) (*assistant.Service, error) {
	client, err := gemini.NewClient(gemini.Config{
		APIKey:  viper.GetString("gemini.api_key"),
		Model:   viper.GetString("gemini.model"),
		BaseURL: viper.GetString("gemini.base_url"),
		Timeout: viper.GetDuration("gemini.timeout"),
	})
	if err != nil {
		return nil, err
	}
	return assistant.NewService(store, extract.NewExtractor(client)), nil
}
