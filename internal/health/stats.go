// Package health classifies tasks into schedule-health buckets and aggregates
// the counters shown as summary badges above the Gantt chart.
package health

import (
	"time"

	"github.com/alexanderramin/gantt/internal/domain"
)

// AtRiskWindowDays is the number of days ahead of a due date in which an
// unfinished task counts as at risk.
const AtRiskWindowDays = 3

// Bucket is a task's primary schedule-health classification.
type Bucket string

const (
	BucketDone       Bucket = "done"
	BucketInProgress Bucket = "in_progress"
	BucketDelay      Bucket = "delay"
	BucketAtRisk     Bucket = "at_risk"
	BucketNone       Bucket = "none"
)

// Stats holds the schedule-health counters. Unplanned overlaps the primary
// buckets; Total counts every task once.
type Stats struct {
	Done       int `json:"done"`
	InProgress int `json:"inProgress"`
	Delay      int `json:"delay"`
	AtRisk     int `json:"atRisk"`
	Unplanned  int `json:"unplanned"`
	Total      int `json:"total"`
}

// Add records one task in s. today must already be normalized with
// domain.DateOnly.
func (s *Stats) Add(t *domain.Task, today time.Time) {
	s.Total++
	if t.IsUnplanned() {
		s.Unplanned++
	}
	switch classify(t, today) {
	case BucketDone:
		s.Done++
	case BucketInProgress:
		s.InProgress++
	case BucketDelay:
		s.Delay++
	case BucketAtRisk:
		s.AtRisk++
	}
}

// Merge returns the element-wise sum of s and o.
func (s Stats) Merge(o Stats) Stats {
	return Stats{
		Done:       s.Done + o.Done,
		InProgress: s.InProgress + o.InProgress,
		Delay:      s.Delay + o.Delay,
		AtRisk:     s.AtRisk + o.AtRisk,
		Unplanned:  s.Unplanned + o.Unplanned,
		Total:      s.Total + o.Total,
	}
}

// Classify returns the first matching bucket in priority order: done, in
// progress, delay (end or due strictly before today), at risk (due within
// AtRiskWindowDays), none. Tasks with an unknown category are never done or
// in progress; they fall through to the date rules.
func Classify(t *domain.Task, now time.Time) Bucket {
	return classify(t, domain.DateOnly(now))
}

func classify(t *domain.Task, today time.Time) Bucket {
	switch t.Status.Category {
	case domain.CategoryDone:
		return BucketDone
	case domain.CategoryInProgress:
		return BucketInProgress
	}

	due := t.EffectiveEnd()
	if due == nil {
		return BucketNone
	}
	days := domain.DaysBetween(today, *due)
	switch {
	case days < 0:
		return BucketDelay
	case days <= AtRiskWindowDays:
		return BucketAtRisk
	default:
		return BucketNone
	}
}

// Aggregate walks every sprint task and backlog task of h once. Callers must
// pass the unfiltered hierarchy; now is normalized to its calendar day.
func Aggregate(h domain.Hierarchy, now time.Time) Stats {
	today := domain.DateOnly(now)
	var s Stats
	h.WalkTasks(func(t *domain.Task) {
		s.Add(t, today)
	})
	return s
}

// AggregateByProject returns counters per project id. Backlog tasks count
// toward their owning project; backlog tasks without one are keyed by "".
func AggregateByProject(h domain.Hierarchy, now time.Time) map[string]Stats {
	today := domain.DateOnly(now)
	out := make(map[string]Stats, len(h.Projects))
	for i := range h.Projects {
		p := &h.Projects[i]
		var s Stats
		for si := range p.Sprints {
			tasks := p.Sprints[si].Tasks
			for ti := range tasks {
				s.Add(&tasks[ti], today)
			}
		}
		out[p.ID] = s
	}
	for i := range h.BacklogTasks {
		t := &h.BacklogTasks[i]
		s := out[t.ProjectID]
		s.Add(t, today)
		out[t.ProjectID] = s
	}
	return out
}
