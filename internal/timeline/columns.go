package timeline

import (
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/gantt/internal/domain"
)

// MaxColumns caps the number of buckets a single timeline may produce.
// Longer ranges are truncated to the first MaxColumns buckets.
const MaxColumns = 200

var (
	ErrUnknownGranularity = errors.New("unknown granularity")
	ErrInvalidRange       = errors.New("invalid range")
	ErrTooManyColumns     = errors.New("too many columns")
)

// Column is one bucket of the rendered timeline header. Start and End are
// both inclusive calendar days; the next column starts the day after End.
type Column struct {
	Label    string    `json:"label"`
	Sublabel string    `json:"sublabel"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
}

// GenerateColumns returns the ordered, gap-free buckets covering [start, end].
// It never fails: an unknown granularity or an inverted range yields no
// columns, and ranges needing more than MaxColumns buckets are truncated.
func GenerateColumns(g domain.Granularity, start, end time.Time) []Column {
	cols, _ := generate(g, start, end)
	return cols
}

// GenerateColumnsStrict is GenerateColumns with the soft failures reported.
// On ErrTooManyColumns the truncated columns are returned alongside the error.
func GenerateColumnsStrict(g domain.Granularity, start, end time.Time) ([]Column, error) {
	return generate(g, start, end)
}

// Span returns the first column's start and the last column's end.
func Span(cols []Column) (Range, bool) {
	if len(cols) == 0 {
		return Range{}, false
	}
	return Range{Start: cols[0].Start, End: cols[len(cols)-1].End}, true
}

type bucketing struct {
	anchor func(time.Time) time.Time
	next   func(time.Time) time.Time
	label  func(n int, start, end time.Time) (string, string)
}

var bucketings = map[domain.Granularity]bucketing{
	domain.GranularityWeeks: {
		anchor: func(t time.Time) time.Time { return t },
		next:   func(t time.Time) time.Time { return t.AddDate(0, 0, 7) },
		label: func(n int, start, end time.Time) (string, string) {
			return fmt.Sprintf("W%d", n), fmt.Sprintf("%02d - %02d", start.Day(), end.Day())
		},
	},
	domain.GranularityMonths: {
		anchor: func(t time.Time) time.Time {
			return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
		},
		next: func(t time.Time) time.Time { return t.AddDate(0, 1, 0) },
		label: func(_ int, start, _ time.Time) (string, string) {
			return start.Format("Jan"), start.Format("2006")
		},
	},
	domain.GranularityYears: {
		anchor: func(t time.Time) time.Time {
			return time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
		},
		next: func(t time.Time) time.Time { return t.AddDate(1, 0, 0) },
		label: func(_ int, start, _ time.Time) (string, string) {
			return start.Format("2006"), "Year"
		},
	},
}

func generate(g domain.Granularity, start, end time.Time) ([]Column, error) {
	b, ok := bucketings[g]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownGranularity, g)
	}

	start, end = domain.DateOnly(start), domain.DateOnly(end)
	if end.Before(start) {
		return nil, fmt.Errorf("%w: end %s is before start %s", ErrInvalidRange,
			end.Format(domain.DateLayout), start.Format(domain.DateLayout))
	}

	cols := make([]Column, 0, estimateColumns(g, start, end))
	cur := b.anchor(start)
	for !cur.After(end) {
		if len(cols) == MaxColumns {
			return cols, fmt.Errorf("%w: range %s..%s needs more than %d %s",
				ErrTooManyColumns, start.Format(domain.DateLayout), end.Format(domain.DateLayout), MaxColumns, g)
		}
		nxt := b.next(cur)
		last := nxt.AddDate(0, 0, -1)
		label, sub := b.label(len(cols)+1, cur, last)
		cols = append(cols, Column{Label: label, Sublabel: sub, Start: cur, End: last})
		cur = nxt
	}
	return cols, nil
}

func estimateColumns(g domain.Granularity, start, end time.Time) int {
	days := domain.DaysBetween(start, end) + 1
	var n int
	switch g {
	case domain.GranularityWeeks:
		n = days/7 + 1
	case domain.GranularityMonths:
		n = days/28 + 2
	default:
		n = days/365 + 2
	}
	return min(n, MaxColumns)
}
