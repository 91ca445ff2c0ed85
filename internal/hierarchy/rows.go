package hierarchy

import (
	"time"

	"github.com/alexanderramin/gantt/internal/domain"
)

// BacklogGroupID is the synthetic node id of the backlog group row.
const BacklogGroupID = "backlog"

type RowKind string

const (
	RowProject RowKind = "project"
	RowSprint  RowKind = "sprint"
	RowTask    RowKind = "task"
	RowBacklog RowKind = "backlog"
)

// Row is one visible line of the Gantt table.
type Row struct {
	Kind       RowKind
	ID         string
	Depth      int
	Label      string
	Start      *time.Time
	End        *time.Time
	Expandable bool
	Expanded   bool
	ChildCount int

	// Exactly one of these is set, matching Kind (none for RowBacklog).
	Project *domain.Project
	Sprint  *domain.Sprint
	Task    *domain.Task
}

type rowConfig struct {
	forceExpand bool
}

// RowOption configures Rows.
type RowOption func(*rowConfig)

// WithForceExpand shows every node regardless of the expansion set.
func WithForceExpand() RowOption {
	return func(c *rowConfig) { c.forceExpand = true }
}

// ForceExpandIf applies WithForceExpand only when force is true.
func ForceExpandIf(force bool) RowOption {
	return func(c *rowConfig) { c.forceExpand = c.forceExpand || force }
}

// Rows flattens h into display order: each project, then (when expanded) its
// sprints, then (when the sprint is expanded) its tasks. Backlog tasks follow
// under a single backlog group row. Row pointers alias h; callers that keep
// rows beyond the next recompute should hold their own copy of h.
func Rows(h domain.Hierarchy, exp Expansion, opts ...RowOption) []Row {
	var cfg rowConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	open := func(id string) bool { return cfg.forceExpand || exp.IsExpanded(id) }

	rows := make([]Row, 0, len(h.Projects)+len(h.BacklogTasks)+1)
	for pi := range h.Projects {
		p := &h.Projects[pi]
		pOpen := open(p.ID)
		rows = append(rows, Row{
			Kind:       RowProject,
			ID:         p.ID,
			Label:      p.Name,
			Start:      p.StartDate,
			End:        p.EndDate,
			Expandable: len(p.Sprints) > 0,
			Expanded:   pOpen,
			ChildCount: len(p.Sprints),
			Project:    p,
		})
		if !pOpen {
			continue
		}
		for si := range p.Sprints {
			s := &p.Sprints[si]
			sOpen := open(s.ID)
			rows = append(rows, Row{
				Kind:       RowSprint,
				ID:         s.ID,
				Depth:      1,
				Label:      s.Name,
				Start:      s.StartDate,
				End:        s.EndDate,
				Expandable: len(s.Tasks) > 0,
				Expanded:   sOpen,
				ChildCount: len(s.Tasks),
				Sprint:     s,
			})
			if !sOpen {
				continue
			}
			for ti := range s.Tasks {
				rows = append(rows, taskRow(&s.Tasks[ti], 2))
			}
		}
	}

	if len(h.BacklogTasks) > 0 {
		bOpen := open(BacklogGroupID)
		rows = append(rows, Row{
			Kind:       RowBacklog,
			ID:         BacklogGroupID,
			Label:      "Backlog",
			Expandable: true,
			Expanded:   bOpen,
			ChildCount: len(h.BacklogTasks),
		})
		if bOpen {
			for i := range h.BacklogTasks {
				rows = append(rows, taskRow(&h.BacklogTasks[i], 1))
			}
		}
	}
	return rows
}

func taskRow(t *domain.Task, depth int) Row {
	label := t.Name
	if t.Key != "" {
		label = t.Key + " " + t.Name
	}
	return Row{
		Kind:  RowTask,
		ID:    t.ID,
		Depth: depth,
		Label: label,
		Start: t.StartDate,
		End:   t.EffectiveEnd(),
		Task:  t,
	}
}
