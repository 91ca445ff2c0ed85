package cli

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	usecase "github.com/alexanderramin/gantt/internal/app"
	"github.com/alexanderramin/gantt/internal/cli/formatter"
	"github.com/alexanderramin/gantt/internal/watcher"
)

func newWatchCmd(app *App) *cobra.Command {
	var debounce time.Duration
	var poll bool

	cmd := &cobra.Command{
		Use:   "watch FILE",
		Short: "Re-import a JSON file whenever it changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if debounce <= 0 {
				debounce = time.Duration(app.Config.WatchDebounceMs) * time.Millisecond
			}
			out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
			opts := []watcher.Option{
				watcher.WithDebounce(debounce),
				watcher.WithLogger(app.logger()),
				watcher.WithOnImport(func(res *usecase.ImportResult, err error) {
					stamp := formatter.Dim(time.Now().Format(time.TimeOnly))
					if errors.Is(err, watcher.ErrFileRemoved) {
						fmt.Fprintf(errOut, "%s %s\n", stamp, formatter.StyleYellow.Render("payload removed, waiting for it to return"))
						return
					}
					if err != nil {
						fmt.Fprintf(errOut, "%s %s %v\n", stamp, formatter.StyleRed.Render("import failed:"), err)
						return
					}
					fmt.Fprintf(out, "%s %s\n", stamp, formatter.FormatImportResult(res))
				}),
			}
			if poll {
				opts = append(opts, watcher.WithForcePoll())
			}

			w, err := watcher.New(args[0], app.Import, opts...)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			fmt.Fprintf(out, "%s %s\n", formatter.StyleGreen.Render("Watching"), w.Path())
			return w.Run(ctx)
		},
	}

	cmd.Flags().DurationVar(&debounce, "debounce", 0, "Quiet period before re-importing (default from config)")
	cmd.Flags().BoolVar(&poll, "poll", false, "Poll the file instead of using filesystem events")

	return cmd
}
