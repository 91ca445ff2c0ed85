package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/gantt/internal/config"
	"github.com/alexanderramin/gantt/internal/service"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Timeline service.TimelineService
	Stats    service.StatsService
	Import   service.ImportService
	Export   service.ExportService

	Config config.Config
	Logger *slog.Logger
	// IsInteractive reports whether prompts and the TUI may be shown. A nil
	// func means never.
	IsInteractive func() bool
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) logger() *slog.Logger {
	if a.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return a.Logger
}

// NewRootCmd creates the top-level "gantt" command and registers all
// subcommands against the provided App. Without a subcommand it opens the
// interactive view on a terminal and prints help otherwise.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "gantt",
		Short:         "Gantt timeline and schedule-health viewer",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return cmd.Help()
			}
			return runView(cmd.Context(), app, defaultViewRequest(app))
		},
	}

	root.AddCommand(
		newTimelineCmd(app),
		newStatsCmd(app),
		newColumnsCmd(app),
		newImportCmd(app),
		newExportCmd(app),
		newServeCmd(app),
		newWatchCmd(app),
		newViewCmd(app),
	)

	return root
}
