package cli

import (
	"github.com/alexanderramin/teammap/internal/config"
	"github.com/alexanderramin/teammap/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Nodes      service.NodeService
	Reporting  service.ReportingService
	Layout     service.LayoutService
	Settings   service.SettingsService
	Verticals  service.VerticalService
	Data       service.DataService
	Quickstart service.QuickstartService

	// IsInteractive reports whether confirmation prompts can be shown.
	// Nil means never.
	IsInteractive func() bool

	// Connect wires the services from the loaded configuration. It runs once
	// flags are parsed, before any command. Tests leave it nil and set the
	// services directly.
	Connect func(cfg *config.Config) error
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "teammap" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	var cfgFile string

	root := &cobra.Command{
		Use:           "teammap",
		Short:         "Org chart planner: reporting lines, levels and layout",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if app.Connect == nil {
				return nil
			}
			cfg, err := config.Load(cfgFile, cmd.Flags())
			if err != nil {
				return err
			}
			return app.Connect(cfg)
		},
	}

	root.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default ~/.teammap/config.yaml)")
	root.PersistentFlags().String("db", "", "SQLite database path")
	root.PersistentFlags().String("log-level", "", "Log level when logging is enabled (debug|info|warn|error)")

	root.AddCommand(
		newMemberCmd(app),
		newHireCmd(app),
		newNodeCmd(app),
		newManagerCmd(app),
		newChartCmd(app),
		newLayoutCmd(app),
		newSettingsCmd(app),
		newVerticalCmd(app),
		newExportCmd(app),
		newImportCmd(app),
		newClearCmd(app),
		newQuickstartCmd(app),
	)

	return root
}
