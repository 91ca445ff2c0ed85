package timeline

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/gantt/internal/domain"
	json "github.com/goccy/go-json"
)

// Bar is the horizontal placement of an item on the timeline, in percent of
// the total timeline width. Values may fall outside [0, 100] unless clamped.
type Bar struct {
	Left  float64
	Width float64
}

// LeftPct renders Left as a CSS-style percentage, e.g. "12.5%".
func (b Bar) LeftPct() string { return formatPct(b.Left) }

// WidthPct renders Width as a CSS-style percentage.
func (b Bar) WidthPct() string { return formatPct(b.Width) }

// Right returns the right edge in percent.
func (b Bar) Right() float64 { return b.Left + b.Width }

// Empty reports whether the bar has no width to draw.
func (b Bar) Empty() bool { return b.Width <= 0 }

func (b Bar) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Left  string `json:"left"`
		Width string `json:"width"`
	}{b.LeftPct(), b.WidthPct()})
}

func (b *Bar) UnmarshalJSON(data []byte) error {
	var raw struct {
		Left  string `json:"left"`
		Width string `json:"width"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	left, err := parsePct(raw.Left)
	if err != nil {
		return fmt.Errorf("bar left: %w", err)
	}
	width, err := parsePct(raw.Width)
	if err != nil {
		return fmt.Errorf("bar width: %w", err)
	}
	*b = Bar{Left: left, Width: width}
	return nil
}

func parsePct(s string) (float64, error) {
	s = strings.TrimSuffix(strings.TrimSpace(s), "%")
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}

func formatPct(v float64) string {
	if v == 0 {
		return "0%"
	}
	return strconv.FormatFloat(v, 'f', -1, 64) + "%"
}

type barConfig struct {
	clamp bool
}

// BarOption configures Position.
type BarOption func(*barConfig)

// WithClamp keeps bars inside the visible timeline: left is limited to
// [0, 100] and the right edge to 100.
func WithClamp() BarOption {
	return func(c *barConfig) { c.clamp = true }
}

// ClampIf applies WithClamp only when clamp is true.
func ClampIf(clamp bool) BarOption {
	return func(c *barConfig) { c.clamp = c.clamp || clamp }
}

// Position maps [start, end] onto the timeline described by cols.
//
//	left  = (start - timelineStart) / totalDays * 100
//	width = (end   - start)         / totalDays * 100
//
// A missing start or an empty timeline gives a zero Bar. A missing end, or an
// end before the start, keeps left at the start and gives zero width, so bars
// stay ordered by start date.
func Position(start, end *time.Time, cols []Column, opts ...BarOption) Bar {
	var cfg barConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	span, ok := Span(cols)
	if !ok || start == nil {
		return Bar{}
	}
	totalDays := dayDiff(span.Start, span.End)
	if totalDays <= 0 {
		return Bar{}
	}

	s := domain.DateOnly(*start)
	bar := Bar{Left: dayDiff(span.Start, s) / totalDays * 100}
	if end != nil {
		if e := domain.DateOnly(*end); !e.Before(s) {
			bar.Width = dayDiff(s, e) / totalDays * 100
		}
	}
	if cfg.clamp {
		bar = clampBar(bar)
	}
	return bar
}

// TaskBar positions a task using its due date when no end date is set.
func TaskBar(t *domain.Task, cols []Column, opts ...BarOption) Bar {
	return Position(t.StartDate, t.EffectiveEnd(), cols, opts...)
}

// SprintBar positions a sprint.
func SprintBar(s *domain.Sprint, cols []Column, opts ...BarOption) Bar {
	return Position(s.StartDate, s.EndDate, cols, opts...)
}

// ProjectBar positions a project.
func ProjectBar(p *domain.Project, cols []Column, opts ...BarOption) Bar {
	return Position(p.StartDate, p.EndDate, cols, opts...)
}

func clampBar(b Bar) Bar {
	left := min(max(b.Left, 0), 100)
	right := min(max(b.Right(), 0), 100)
	return Bar{Left: left, Width: max(right-left, 0)}
}

func dayDiff(a, b time.Time) float64 {
	return b.Sub(a).Hours() / 24
}
