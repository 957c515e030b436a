package main

import (
	"fmt"
	"os"

	"libris/internal/adapter/memory"
	"libris/internal/adapter/postgres"
	"libris/internal/adapter/sqlite"
	"libris/internal/config"
	"libris/internal/domain"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "libris",
	Short: "Minimal library-management web application",
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// store bundles the repositories the configured backend provides.
type store struct {
	users    domain.UserRepository
	sessions domain.SessionRepository
	books    domain.BookRepository
	close    func() error
}

func openStore(cfg *config.Config) (*store, error) {
	switch cfg.Store {
	case "postgres":
		db, err := postgres.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		return &store{users: db, sessions: db, books: db, close: db.Close}, nil
	case "sqlite":
		db, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		return &store{users: db, sessions: db, books: db, close: db.Close}, nil
	case "memory":
		db := memory.New()
		return &store{users: db, sessions: db, books: db, close: func() error { return nil }}, nil
	}
	return nil, fmt.Errorf("unknown store %q", cfg.Store)
}
