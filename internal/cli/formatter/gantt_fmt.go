package formatter

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/alexanderramin/gantt/internal/app"
	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/alexanderramin/gantt/internal/hierarchy"
	"github.com/alexanderramin/gantt/internal/timeline"
)

const (
	DefaultChartWidth = 60
	DefaultLabelWidth = 32

	barGlyph   = "█"
	pointGlyph = "◆"
	gridGlyph  = "·"
	todayGlyph = "│"
	offLeft    = "◂"
	offRight   = "▸"
)

// GanttOptions controls chart rendering.
type GanttOptions struct {
	ChartWidth int
	LabelWidth int
	// Today draws a marker column when it falls inside the timeline.
	Today *time.Time
	// Cursor highlights the row at this index; -1 disables it.
	Cursor int
}

func (o GanttOptions) withDefaults() GanttOptions {
	if o.ChartWidth <= 0 {
		o.ChartWidth = DefaultChartWidth
	}
	if o.LabelWidth <= 0 {
		o.LabelWidth = DefaultLabelWidth
	}
	return o
}

// BarCells maps a bar onto a grid of width cells and returns the half-open
// cell span [start, end). ok is false when nothing of the bar is visible.
// clippedLeft and clippedRight report bars running past the chart edges.
func BarCells(bar timeline.Bar, width int) (start, end int, clippedLeft, clippedRight, ok bool) {
	if width <= 0 {
		return 0, 0, false, false, false
	}
	l := bar.Left / 100 * float64(width)
	r := bar.Right() / 100 * float64(width)
	start = int(math.Floor(l))
	end = int(math.Ceil(r))
	if end <= start {
		end = start + 1
	}
	if end <= 0 || start >= width {
		return 0, 0, start < 0, start >= width, false
	}
	if start < 0 {
		start, clippedLeft = 0, true
	}
	if end > width {
		end, clippedRight = width, true
	}
	return start, end, clippedLeft, clippedRight, true
}

// FormatTimeline renders the timeline response as a text Gantt chart: a
// header with column labels, one line per visible row and the stats badges.
func FormatTimeline(resp *app.TimelineResponse, opts GanttOptions) string {
	opts = opts.withDefaults()
	var b strings.Builder

	b.WriteString(StatsBadges(resp.Stats) + "\n\n")

	span, ok := columnSpan(resp.Columns)
	todayCell := -1
	if ok && opts.Today != nil {
		todayCell = cellOf(domain.DateOnly(*opts.Today), span, opts.ChartWidth)
	}

	b.WriteString(strings.Repeat(" ", opts.LabelWidth+1))
	b.WriteString(columnHeader(resp.Columns, span, ok, opts.ChartWidth, false) + "\n")
	b.WriteString(strings.Repeat(" ", opts.LabelWidth+1))
	b.WriteString(columnHeader(resp.Columns, span, ok, opts.ChartWidth, true) + "\n")

	if len(resp.Rows) == 0 {
		b.WriteString(Dim("  no rows to show") + "\n")
	}
	for i, r := range resp.Rows {
		line := RowLabel(r.Kind, r.Depth, r.Label, r.Expandable, r.Expanded, opts.LabelWidth) + " " +
			renderBarLine(r, opts.ChartWidth, todayCell)
		if i == opts.Cursor {
			line = StyleCursor.Render(line)
		}
		b.WriteString(line + "\n")
	}

	for _, w := range resp.Warnings {
		b.WriteString(StyleYellow.Render("  WARNING: "+w) + "\n")
	}
	if resp.Truncated {
		b.WriteString(Dim(fmt.Sprintf("  timeline truncated to %d columns", len(resp.Columns))) + "\n")
	}
	return b.String()
}

func renderBarLine(r app.RowView, width, todayCell int) string {
	cells := make([]string, width)
	for i := range cells {
		cells[i] = Dim(gridGlyph)
		if i == todayCell {
			cells[i] = StyleRed.Render(todayGlyph)
		}
	}
	if r.Kind == hierarchy.RowBacklog || r.Start == nil || r.End == nil {
		return strings.Join(cells, "")
	}

	start, end, clipL, clipR, ok := BarCells(r.Bar, width)
	style := RowStyle(r.Kind, r.Health)
	if !ok {
		if clipL {
			cells[0] = style.Render(offLeft)
		} else if clipR {
			cells[width-1] = style.Render(offRight)
		}
		return strings.Join(cells, "")
	}
	glyph := barGlyph
	if r.Bar.Width == 0 {
		glyph = pointGlyph
	}
	for i := start; i < end; i++ {
		cells[i] = style.Render(glyph)
	}
	if clipL {
		cells[start] = style.Render(offLeft)
	}
	if clipR {
		cells[end-1] = style.Render(offRight)
	}
	return strings.Join(cells, "")
}

type span struct {
	start time.Time
	days  float64
}

func columnSpan(cols []app.ColumnView) (span, bool) {
	if len(cols) == 0 {
		return span{}, false
	}
	s, err1 := domain.ParseDate(cols[0].Start)
	e, err2 := domain.ParseDate(cols[len(cols)-1].End)
	if err1 != nil || err2 != nil || !e.After(s) {
		return span{}, false
	}
	return span{start: s, days: float64(domain.DaysBetween(s, e))}, true
}

func cellOf(t time.Time, sp span, width int) int {
	off := float64(domain.DaysBetween(sp.start, t)) / sp.days
	if off < 0 || off > 1 {
		return -1
	}
	return min(int(off*float64(width)), width-1)
}

// columnHeader lays column labels (or sublabels) out at their start cells,
// dropping labels that would overlap the previous one.
func columnHeader(cols []app.ColumnView, sp span, ok bool, width int, sub bool) string {
	line := []rune(strings.Repeat(" ", width))
	if !ok {
		return string(line)
	}
	next := 0
	for _, c := range cols {
		start, err := domain.ParseDate(c.Start)
		if err != nil {
			continue
		}
		cell := cellOf(start, sp, width)
		if cell < next || cell < 0 {
			continue
		}
		text := c.Label
		if sub {
			text = c.Sublabel
		}
		for i, r := range []rune(text) {
			if cell+i >= width {
				break
			}
			line[cell+i] = r
		}
		next = cell + len([]rune(text)) + 1
	}
	style := StyleHeader
	if sub {
		style = StyleDim
	}
	return style.Render(string(line))
}

// FormatColumns lists generated buckets as a table.
func FormatColumns(cols []timeline.Column) string {
	rows := make([][]string, 0, len(cols))
	for i, c := range cols {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			Bold(c.Label),
			c.Sublabel,
			c.Start.Format(domain.DateLayout),
			c.End.Format(domain.DateLayout),
		})
	}
	return RenderTable([]string{"#", "LABEL", "SUBLABEL", "START", "END"}, rows)
}
