package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/goccy/go-json"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	usecase "github.com/alexanderramin/gantt/internal/app"
	"github.com/alexanderramin/gantt/internal/domain"
)

// granularityValue is a pflag.Value accepting "week", "months", "y" and the
// other spellings domain.ParseGranularity knows.
type granularityValue struct{ g *domain.Granularity }

var _ pflag.Value = granularityValue{}

func (v granularityValue) String() string {
	if v.g == nil {
		return ""
	}
	return string(*v.g)
}

func (v granularityValue) Set(s string) error {
	g, err := domain.ParseGranularity(s)
	if err != nil {
		return err
	}
	*v.g = g
	return nil
}

func (v granularityValue) Type() string { return "granularity" }

// dateValue is a pflag.Value for an optional YYYY-MM-DD (or RFC 3339) date.
type dateValue struct{ t **time.Time }

var _ pflag.Value = dateValue{}

func (v dateValue) String() string {
	if v.t == nil || *v.t == nil {
		return ""
	}
	return (*v.t).Format(domain.DateLayout)
}

func (v dateValue) Set(s string) error {
	d, err := domain.ParseDate(s)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", s, err)
	}
	*v.t = &d
	return nil
}

func (v dateValue) Type() string { return "date" }

// addTimelineFlags binds the shared timeline request flags.
func addTimelineFlags(fs *pflag.FlagSet, req *usecase.TimelineRequest) {
	fs.Var(granularityValue{&req.Granularity}, "granularity", "Column granularity: weeks, months or years")
	fs.StringVarP(&req.Keyword, "search", "s", "", "Show only rows matching this keyword")
	fs.Var(dateValue{&req.Now}, "now", "Reference date for today and schedule health")
	fs.Var(dateValue{&req.From}, "from", "Start the timeline at this date")
	fs.Var(dateValue{&req.To}, "to", "End the timeline at this date")
	fs.StringSliceVar(&req.Expanded, "expand", nil, "Expand these project or sprint ids")
	fs.BoolVar(&req.ExpandAll, "expand-all", false, "Expand every project and sprint")
	fs.BoolVar(&req.Clamp, "clamp", false, "Clamp bars to the visible timeline")
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// terminalWidth returns the column count of w when it is a terminal.
func terminalWidth(w io.Writer) (int, bool) {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0, false
	}
	cols, _, err := term.GetSize(int(f.Fd()))
	if err != nil || cols <= 0 {
		return 0, false
	}
	return cols, true
}

// chartWidthFor fits the chart next to the label column in cols cells.
func chartWidthFor(cols, labelWidth int) int {
	return max(cols-labelWidth-2, minChartWidth)
}
