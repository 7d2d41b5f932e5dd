// Package main implements scry-study, a terminal flashcard trainer. It loads
// decks from CSV files and runs one study session at a time, reading
// commands from stdin.
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"

	"github.com/phrazzld/scry-study/internal/config"
	"github.com/phrazzld/scry-study/internal/platform/logger"
	"github.com/spf13/pflag"
)

func main() {
	fs := pflag.NewFlagSet("scry-study", pflag.ExitOnError)
	config.RegisterFlags(fs)
	_ = fs.Parse(os.Args[1:])

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	app, err := initializeApp(ctx, fs, os.Stderr)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	if err := app.Run(ctx, os.Stdin, os.Stdout); err != nil {
		log.Fatalf("Study session failed: %v", err)
	}
}

// initializeApp loads configuration, sets up structured logging on logOut
// and builds the application.
func initializeApp(ctx context.Context, fs *pflag.FlagSet, logOut io.Writer) (*application, error) {
	cfg, err := config.LoadWithFlags(fs)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	l, err := logger.SetupWithWriter(cfg.Log, logOut)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	l.Info("configuration loaded",
		slog.String("decks_path", cfg.Study.DecksPath),
		slog.String("policy", cfg.Study.Policy),
		slog.String("log_level", cfg.Log.Level))

	return newApplication(ctx, cfg, l)
}
