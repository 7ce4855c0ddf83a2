package main

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/alexanderramin/teammap/internal/cli"
	"github.com/alexanderramin/teammap/internal/config"
	"github.com/alexanderramin/teammap/internal/db"
	"github.com/alexanderramin/teammap/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var database *sql.DB
	defer func() {
		if database != nil {
			database.Close()
		}
	}()

	app := &cli.App{}

	// Detect interactive terminal for confirmation prompts.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	// Services are wired once flags and config are known.
	app.Connect = func(cfg *config.Config) error {
		var err error
		database, err = db.OpenDB(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}

		var observers []service.UseCaseObserver
		if cfg.Log.Enabled {
			level, err := cfg.Log.SlogLevel()
			if err != nil {
				return err
			}
			observers = append(observers, service.NewLogUseCaseObserver(os.Stderr, level))
		}

		// Wire unit of work for transactional operations
		uow := db.NewSQLiteUnitOfWork(database)
		layoutCfg := cfg.Layout.ToLayout()

		app.Nodes = service.NewNodeService(uow, observers...)
		app.Reporting = service.NewReportingService(uow, observers...)
		app.Layout = service.NewLayoutService(uow, layoutCfg, observers...)
		app.Settings = service.NewSettingsService(uow, observers...)
		app.Verticals = service.NewVerticalService(uow, observers...)
		app.Data = service.NewDataService(uow, observers...)
		app.Quickstart = service.NewQuickstartService(uow, layoutCfg, observers...)
		return nil
	}

	return cli.NewRootCmd(app).Execute()
}
