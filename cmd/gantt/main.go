package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/mattn/go-isatty"

	"github.com/alexanderramin/gantt/internal/cli"
	"github.com/alexanderramin/gantt/internal/config"
	"github.com/alexanderramin/gantt/internal/db"
	"github.com/alexanderramin/gantt/internal/repository"
	"github.com/alexanderramin/gantt/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	logger := config.NewLogger(cfg, os.Stderr)

	dbPath, err := cfg.ResolveDBPath()
	if err != nil {
		return err
	}
	// Open database
	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire unit of work and services
	uow := db.NewSQLiteUnitOfWork(database)
	observer := service.NewSlogUseCaseObserver(logger)
	clock := time.Now

	app := &cli.App{
		Timeline: service.NewTimelineService(uow, repository.NewSQLiteVersionRepo(database), service.TimelineOptions{
			DefaultGranularity:    cfg.Granularity(),
			FallbackHorizonMonths: cfg.FallbackHorizonMonths,
			ClampBars:             cfg.ClampBars,
			CacheEntries:          cfg.CacheEntries,
			Clock:                 clock,
		}, observer),
		Stats:  service.NewStatsService(uow, clock, observer),
		Import: service.NewImportService(uow, observer),
		Export: service.NewExportService(uow),
		Config: cfg,
		Logger: logger,
	}

	// Detect interactive terminal for prompts and the TUI.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	logger.Debug("starting", "db", dbPath)
	return cli.NewRootCmd(app).ExecuteContext(context.Background())
}
