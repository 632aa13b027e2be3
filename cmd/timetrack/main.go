package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/consonum/timetrack/internal/cli"
	"github.com/consonum/timetrack/internal/config"
	"github.com/consonum/timetrack/internal/db"
	"github.com/consonum/timetrack/internal/repository"
	"github.com/consonum/timetrack/internal/service"
	"github.com/gofrs/flock"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()
	if cfg.UserID == "" {
		return fmt.Errorf("no user configured; set TIMETRACK_USER")
	}

	dbPath := cfg.DBPath
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".timetrack", "timetrack.db")
	}

	// One writer per database. A second invocation against the same file
	// fails fast instead of stacking SQLite busy errors.
	dataDir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	lock := flock.New(filepath.Join(dataDir, "timetrack.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquiring lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("another timetrack instance is already running")
	}
	defer lock.Unlock()

	tables := db.NewTables(cfg.TablePrefix)
	database, err := db.OpenDB(dbPath, tables)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	projectRepo := repository.NewSQLiteProjectRepo(database, tables)
	categoryRepo := repository.NewSQLiteCategoryRepo(database, tables)
	timerRepo := repository.NewSQLiteTimerRepo(database, tables)
	entryRepo := repository.NewSQLiteEntryRepo(database, tables)

	uow := db.NewSQLiteUnitOfWork(database)
	clock := service.SystemClock{}

	var observer service.UseCaseObserver = service.NoopUseCaseObserver{}
	if cfg.LogUseCases {
		observer = service.NewLogUseCaseObserver(os.Stderr)
	}

	app := &cli.App{
		Timers:   service.NewTimerService(timerRepo, uow, tables, clock, observer),
		Entries:  service.NewEntryService(entryRepo, uow, tables, clock),
		Projects: service.NewProjectService(projectRepo, categoryRepo, cfg, clock),
		Reports:  service.NewReportService(entryRepo, projectRepo, categoryRepo, clock),

		UserID:   cfg.UserID,
		Currency: cfg.Currency,
	}
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
