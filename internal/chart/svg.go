// Package chart draws a timeline response as a standalone SVG Gantt chart for
// sharing outside the terminal.
package chart

import (
	"fmt"
	"io"
	"time"

	svg "github.com/ajstarks/svgo"

	"github.com/alexanderramin/gantt/internal/app"
	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/alexanderramin/gantt/internal/health"
	"github.com/alexanderramin/gantt/internal/hierarchy"
)

const (
	DefaultChartWidth = 960
	DefaultLabelWidth = 260
	DefaultRowHeight  = 22

	headerHeight = 48
	margin       = 12
	indent       = 14
	pointRadius  = 5
	fontStyle    = "font-family:monospace;font-size:12px"
)

var (
	colorBackdrop = "#282828"
	colorGrid     = "#504945"
	colorText     = "#ebdbb2"
	colorSubtle   = "#928374"
	colorToday    = "#fe8019"
	colorProject  = "#fe8019"
	colorSprint   = "#d3869b"

	bucketColors = map[health.Bucket]string{
		health.BucketDone:       "#8ec07c",
		health.BucketInProgress: "#83a598",
		health.BucketDelay:      "#fb4934",
		health.BucketAtRisk:     "#fabd2f",
		health.BucketNone:       "#a89984",
	}
)

// Options sizes the drawing in pixels. Zero values take the defaults.
type Options struct {
	ChartWidth int
	LabelWidth int
	RowHeight  int
}

func (o Options) withDefaults() Options {
	if o.ChartWidth <= 0 {
		o.ChartWidth = DefaultChartWidth
	}
	if o.LabelWidth <= 0 {
		o.LabelWidth = DefaultLabelWidth
	}
	if o.RowHeight <= 0 {
		o.RowHeight = DefaultRowHeight
	}
	return o
}

// errWriter keeps the first write error; svgo itself never reports one.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return len(p), nil
	}
	n, err := e.w.Write(p)
	e.err = err
	return n, nil
}

// WriteSVG draws resp to w: column headers, one bar per visible row coloured
// by kind or health bucket, and a marker at resp.GeneratedAt when it falls
// inside the timeline.
func WriteSVG(w io.Writer, resp *app.TimelineResponse, opts Options) error {
	opts = opts.withDefaults()
	ew := &errWriter{w: w}
	canvas := svg.New(ew)

	x0 := margin + opts.LabelWidth
	width := x0 + opts.ChartWidth + margin
	height := headerHeight + len(resp.Rows)*opts.RowHeight + margin

	canvas.Start(width, height)
	canvas.Title(fmt.Sprintf("Gantt timeline (%s)", resp.Granularity))
	canvas.Rect(0, 0, width, height, "fill:"+colorBackdrop)

	start, end, ok := span(resp)
	if ok {
		drawColumns(canvas, resp, opts, x0, height, start, end)
	}
	for i, row := range resp.Rows {
		drawRow(canvas, row, opts, x0, headerHeight+i*opts.RowHeight)
	}
	if ok {
		drawToday(canvas, resp.GeneratedAt, opts, x0, height, start, end)
	}
	canvas.End()
	if ew.err != nil {
		return fmt.Errorf("writing svg: %w", ew.err)
	}
	return nil
}

// span returns the first column's start and the last column's end.
func span(resp *app.TimelineResponse) (time.Time, time.Time, bool) {
	if len(resp.Columns) == 0 {
		return time.Time{}, time.Time{}, false
	}
	start, err := domain.ParseDate(resp.Columns[0].Start)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	end, err := domain.ParseDate(resp.Columns[len(resp.Columns)-1].End)
	if err != nil || !end.After(start) {
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

func xFor(t, start, end time.Time, x0, chartWidth int) int {
	frac := float64(t.Sub(start)) / float64(end.Sub(start))
	return x0 + int(frac*float64(chartWidth))
}

func drawColumns(canvas *svg.SVG, resp *app.TimelineResponse, opts Options, x0, height int, start, end time.Time) {
	for _, col := range resp.Columns {
		cs, err := domain.ParseDate(col.Start)
		if err != nil {
			continue
		}
		x := xFor(cs, start, end, x0, opts.ChartWidth)
		canvas.Line(x, headerHeight-8, x, height-margin, "stroke:"+colorGrid+";stroke-width:1")
		canvas.Text(x+3, 20, col.Label, `class="col-label"`, "fill:"+colorText+";"+fontStyle)
		if col.Sublabel != "" {
			canvas.Text(x+3, 34, col.Sublabel, "fill:"+colorSubtle+";"+fontStyle)
		}
	}
}

func drawRow(canvas *svg.SVG, row app.RowView, opts Options, x0, y int) {
	label := row.Label
	if row.Expandable {
		if row.Expanded {
			label = "▾ " + label
		} else {
			label = "▸ " + label
		}
	}
	fill := rowColor(row)
	canvas.Text(margin+row.Depth*indent, y+opts.RowHeight-7, label, `class="row-label"`, "fill:"+fill+";"+fontStyle)

	if row.Kind == hierarchy.RowBacklog || row.Start == nil || row.End == nil {
		return
	}
	bx := x0 + int(row.Bar.Left/100*float64(opts.ChartWidth))
	cy := y + opts.RowHeight/2
	if row.Bar.Empty() {
		if bx < x0 || bx > x0+opts.ChartWidth {
			return
		}
		canvas.Polygon(
			[]int{bx, bx + pointRadius, bx, bx - pointRadius},
			[]int{cy - pointRadius, cy, cy + pointRadius, cy},
			`class="point"`, "fill:"+fill,
		)
		return
	}
	bw := int(row.Bar.Width / 100 * float64(opts.ChartWidth))
	left, right := max(bx, x0), min(bx+bw, x0+opts.ChartWidth)
	if right <= left {
		if bx+bw < x0 || bx > x0+opts.ChartWidth {
			return
		}
		right = left + 1
	}
	canvas.Roundrect(left, y+4, right-left, opts.RowHeight-8, 3, 3, `class="bar"`, "fill:"+fill)
}

func drawToday(canvas *svg.SVG, today time.Time, opts Options, x0, height int, start, end time.Time) {
	d := domain.DateOnly(today)
	if d.Before(start) || !d.Before(end) {
		return
	}
	x := xFor(d, start, end, x0, opts.ChartWidth)
	canvas.Line(x, headerHeight-8, x, height-margin, `class="today"`, "stroke:"+colorToday+";stroke-width:2")
}

func rowColor(row app.RowView) string {
	switch row.Kind {
	case hierarchy.RowProject:
		return colorProject
	case hierarchy.RowSprint:
		return colorSprint
	case hierarchy.RowBacklog:
		return colorSubtle
	}
	if c, ok := bucketColors[row.Health]; ok {
		return c
	}
	return colorText
}
