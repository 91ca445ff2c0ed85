package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/gantt/internal/cli/formatter"
	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/alexanderramin/gantt/internal/timeline"
)

func newColumnsCmd(app *App) *cobra.Command {
	var granularity domain.Granularity
	var from, to *time.Time

	cmd := &cobra.Command{
		Use:   "columns",
		Short: "List the timeline buckets for a date range",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if granularity == "" {
				granularity = app.Config.Granularity()
			}
			cols, err := timeline.GenerateColumnsStrict(granularity, *from, *to)
			switch {
			case errors.Is(err, timeline.ErrTooManyColumns):
				fmt.Fprintln(cmd.ErrOrStderr(), formatter.StyleYellow.Render("WARNING: "+err.Error()))
			case err != nil:
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatColumns(cols))
			return nil
		},
	}

	cmd.Flags().Var(granularityValue{&granularity}, "granularity", "Column granularity: weeks, months or years")
	cmd.Flags().Var(dateValue{&from}, "from", "First day of the range")
	cmd.Flags().Var(dateValue{&to}, "to", "Last day of the range")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}
