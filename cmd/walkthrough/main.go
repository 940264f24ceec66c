// Package main is the entrypoint for the walkthrough command.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/google/uuid"

	"github.com/yourusername/walkthrough/config"
	"github.com/yourusername/walkthrough/internal/delivery/cli"
	"github.com/yourusername/walkthrough/internal/domain/repository"
	"github.com/yourusername/walkthrough/internal/infrastructure/parser"
	"github.com/yourusername/walkthrough/internal/infrastructure/storage"
	"github.com/yourusername/walkthrough/internal/pkg/validation"
	"github.com/yourusername/walkthrough/internal/usecase"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		return cli.ExitFailure
	}

	logger := initLogger(cfg)

	// Ctrl+C stops the clock and the progress bar cleanly
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runID := uuid.New().String()
	logger = logger.With(slog.String("run_id", runID))

	// Initialize repositories
	var journal repository.LogRepository
	if cfg.JournalDBPath != "" {
		sqliteJournal, err := storage.NewSQLiteLogRepository(cfg.JournalDBPath, cfg.JournalMaxEntries)
		if err != nil {
			logger.Error("failed to open journal", slog.String("path", cfg.JournalDBPath), slog.String("error", err.Error()))
			return cli.ExitFailure
		}
		defer sqliteJournal.Close()
		journal = sqliteJournal
	} else {
		journal = storage.NewMemoryLogRepository(cfg.JournalMaxEntries)
	}

	productRepo := storage.NewCSVProductRepository(cfg.ProductsCSV, logger)
	fileLogRepo := storage.NewFileLogRepository(cfg.LogFile, nil)

	// Initialize use cases
	fileUseCase := usecase.NewFileUseCase(cfg.DataDir)
	catalogUseCase := usecase.NewCatalogUseCase(
		productRepo,
		parser.NewExcelParser(logger),
		validation.New(),
		usecase.CatalogPaths{CSV: cfg.ProductsCSV, JSON: cfg.ProductsJSON},
		logger,
	)
	logUseCase := usecase.NewLogUseCase(
		fileLogRepo,
		journal,
		usecase.LogOptions{LogPath: cfg.LogFile, RunID: runID},
		logger,
	)

	handler := cli.NewHandler(
		os.Stdout,
		cli.Options{
			DataDir:       cfg.DataDir,
			ProductsCSV:   cfg.ProductsCSV,
			ProductsJSON:  cfg.ProductsJSON,
			ProductsXLSX:  cfg.ProductsXLSX,
			ClockInterval: cfg.ClockInterval,
			ProgressDelay: cfg.ProgressDelay,
		},
		fileUseCase,
		catalogUseCase,
		logUseCase,
		logger,
	)

	code := handler.Run(ctx, os.Args[1:])
	logger.Debug("finished", slog.Int("exit_code", code))
	return code
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	var h slog.Handler

	opts := &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}

	// stdout carries the lesson output
	if strings.ToLower(cfg.LogFormat) == "json" {
		h = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		h = slog.NewTextHandler(os.Stderr, opts)
	}

	logger := slog.New(h)
	slog.SetDefault(logger)

	return logger
}

// parseLogLevel converts a string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	case "info", "":
		return slog.LevelInfo
	default:
		fmt.Fprintf(os.Stderr, "unknown LOG_LEVEL %q, using info\n", level)
		return slog.LevelInfo
	}
}
