// studentctl is the interactive console tool for managing student
// records. It shares the configuration layer and the storage backends
// with the bookstore API — the same profile file drives both programs.
//
// RUNNING THE TOOL:
//
//	go run ./cmd/studentctl --config=config/local.yaml
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/akshat-sharma/bookstore-api/internal/config"
	"github.com/akshat-sharma/bookstore-api/internal/console"
	"github.com/akshat-sharma/bookstore-api/internal/storage"
	"github.com/akshat-sharma/bookstore-api/internal/storage/postgres"
	"github.com/akshat-sharma/bookstore-api/internal/storage/sqlite"
)

func main() {
	cfg := config.MustLoad()

	// The menu owns stdout, so logs go to stderr and stay out of the way.
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
	slog.SetDefault(log)

	store, err := openStorage(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not open database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	console.New(store, os.Stdin, os.Stdout).Run()
}

// openStorage picks the backend named by the config profile.
func openStorage(cfg *config.Config) (storage.Storage, error) {
	switch cfg.Database.Driver {
	case "postgres":
		return postgres.New(cfg)
	case "sqlite3", "":
		return sqlite.New(cfg)
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Database.Driver)
	}
}
