package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	usecase "github.com/alexanderramin/gantt/internal/app"
	"github.com/alexanderramin/gantt/internal/cli/formatter"
)

func newStatsCmd(app *App) *cobra.Command {
	var req usecase.StatsRequest
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show schedule-health counters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := app.Stats.GetStats(cmd.Context(), req)
			if err != nil {
				return err
			}
			if jsonOut {
				return writeJSON(cmd.OutOrStdout(), resp)
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatStats(resp))
			return nil
		},
	}

	cmd.Flags().Var(dateValue{&req.Now}, "now", "Reference date for schedule health")
	cmd.Flags().BoolVar(&req.ByProject, "by-project", false, "Break the counters down per project")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print the stats as JSON")

	return cmd
}
