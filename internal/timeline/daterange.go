// Package timeline turns hierarchy dates into Gantt geometry: the overall date
// range, the ordered time buckets of the header, and per-item bar offsets.
package timeline

import (
	"time"

	"github.com/alexanderramin/gantt/internal/domain"
)

// DefaultFallbackHorizonMonths is how far either side of today the fallback
// range reaches when the data carries no dates at all.
const DefaultFallbackHorizonMonths = 6

// Range is an inclusive date-only span.
type Range struct {
	Start time.Time
	End   time.Time
}

// Days returns the number of days from Start to End.
func (r Range) Days() int {
	return domain.DaysBetween(r.Start, r.End)
}

// FallbackRange returns [today - horizon, today + horizon] in whole months.
// A non-positive horizon uses DefaultFallbackHorizonMonths.
func FallbackRange(now time.Time, horizonMonths int) Range {
	if horizonMonths <= 0 {
		horizonMonths = DefaultFallbackHorizonMonths
	}
	today := domain.DateOnly(now)
	return Range{
		Start: today.AddDate(0, -horizonMonths, 0),
		End:   today.AddDate(0, horizonMonths, 0),
	}
}

// ResolveRange scans every project, sprint, task and backlog task date (start,
// end and due) and returns the earliest and latest found. When no date exists
// anywhere the fallback is returned unchanged.
func ResolveRange(h domain.Hierarchy, fallback Range) Range {
	var acc rangeAccumulator

	for pi := range h.Projects {
		p := &h.Projects[pi]
		acc.add(p.StartDate, p.EndDate)
		for si := range p.Sprints {
			s := &p.Sprints[si]
			acc.add(s.StartDate, s.EndDate)
			for ti := range s.Tasks {
				addTask(&acc, &s.Tasks[ti])
			}
		}
	}
	for i := range h.BacklogTasks {
		addTask(&acc, &h.BacklogTasks[i])
	}

	if !acc.found {
		return fallback
	}
	return Range{Start: acc.min, End: acc.max}
}

func addTask(acc *rangeAccumulator, t *domain.Task) {
	acc.add(t.StartDate, t.EndDate, t.DueDate)
}

type rangeAccumulator struct {
	min, max time.Time
	found    bool
}

func (a *rangeAccumulator) add(dates ...*time.Time) {
	for _, d := range dates {
		if d == nil || d.IsZero() {
			continue
		}
		v := domain.DateOnly(*d)
		if !a.found {
			a.min, a.max, a.found = v, v, true
			continue
		}
		if v.Before(a.min) {
			a.min = v
		}
		if v.After(a.max) {
			a.max = v
		}
	}
}
