// Command finbro runs the FinBro personal finance tracker as an interactive
// shell. The shell is a thin presentation layer: it only calls the public
// store API and renders the returned snapshots.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/finbro-app/finbro/internal/config"
	"github.com/finbro-app/finbro/internal/storage/sqlite"
	"github.com/finbro-app/finbro/internal/store"
	"github.com/finbro-app/finbro/pkg/logging"
)

func main() {
	configPath := flag.String("config", "", "path to config file (optional)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "finbro:", err)
		os.Exit(1)
	}

	logging.Setup(cfg.Log.Level)

	kv, err := sqlite.New(cfg.Storage.Path)
	if err != nil {
		slog.Error("failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer kv.Close()
	slog.Info("storage initialized", "database", cfg.Storage.Path)

	ctx := context.Background()
	st, err := store.New(ctx, kv, cfg.History.Limit)
	if err != nil {
		slog.Error("failed to initialize store", "error", err)
		os.Exit(1)
	}

	if err := runShell(ctx, st, os.Stdin, os.Stdout); err != nil {
		slog.Error("shell failed", "error", err)
		os.Exit(1)
	}
}
