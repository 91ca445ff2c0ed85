package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	usecase "github.com/alexanderramin/gantt/internal/app"
	"github.com/alexanderramin/gantt/internal/chart"
	"github.com/alexanderramin/gantt/internal/cli/formatter"
)

func newTimelineCmd(app *App) *cobra.Command {
	var req usecase.TimelineRequest
	var jsonOut bool
	var svgOut string
	opts := formatter.GanttOptions{Cursor: -1}

	cmd := &cobra.Command{
		Use:     "timeline",
		Aliases: []string{"tl"},
		Short:   "Render the Gantt timeline",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := app.Timeline.BuildTimeline(cmd.Context(), req)
			if err != nil {
				return err
			}
			if jsonOut {
				return writeJSON(cmd.OutOrStdout(), resp)
			}
			if svgOut != "" {
				return writeSVG(cmd.OutOrStdout(), svgOut, resp)
			}
			if !cmd.Flags().Changed("width") {
				if cols, ok := terminalWidth(cmd.OutOrStdout()); ok {
					opts.ChartWidth = chartWidthFor(cols, opts.LabelWidth)
				}
			}
			today := resp.GeneratedAt
			opts.Today = &today
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTimeline(resp, opts))
			return nil
		},
	}

	addTimelineFlags(cmd.Flags(), &req)
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print the timeline as JSON")
	cmd.Flags().StringVar(&svgOut, "svg", "", "Write the chart as SVG to `file` (- for stdout)")
	cmd.Flags().IntVar(&opts.ChartWidth, "width", formatter.DefaultChartWidth, "Chart width in cells")
	cmd.Flags().IntVar(&opts.LabelWidth, "label-width", formatter.DefaultLabelWidth, "Label column width in cells")

	return cmd
}

func writeSVG(stdout io.Writer, path string, resp *usecase.TimelineResponse) error {
	if path == "-" {
		return chart.WriteSVG(stdout, resp, chart.Options{})
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := chart.WriteSVG(f, resp, chart.Options{}); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	fmt.Fprintf(stdout, "Wrote %s (%d rows)\n", path, len(resp.Rows))
	return nil
}
