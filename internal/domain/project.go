package domain

import (
	"fmt"
	"regexp"
	"time"
)

var projectKeyPattern = regexp.MustCompile(`^[A-Z][A-Z0-9]{1,9}$`)

type Project struct {
	ID         string
	Name       string
	Key        string
	StartDate  *time.Time
	EndDate    *time.Time
	OrderIndex int
	Sprints    []Sprint
}

type Sprint struct {
	ID         string
	ProjectID  string
	Name       string
	StartDate  *time.Time
	EndDate    *time.Time
	Status     SprintStatus
	OrderIndex int
	Tasks      []Task
}

// ValidateKey checks that Key matches the issue-key prefix format:
// an uppercase letter followed by 1-9 uppercase letters or digits (e.g. WEB, APP2).
// An empty key is allowed.
func (p *Project) ValidateKey() error {
	if p.Key == "" {
		return nil
	}
	if !projectKeyPattern.MatchString(p.Key) {
		return fmt.Errorf("project key %q must be 2-10 uppercase letters or digits starting with a letter (e.g. WEB)", p.Key)
	}
	return nil
}

// DisplayID returns the best short identifier for display.
// It prefers Key; if empty it truncates ID to 8 characters.
func (p *Project) DisplayID() string {
	if p.Key != "" {
		return p.Key
	}
	if len(p.ID) >= 8 {
		return p.ID[:8]
	}
	return p.ID
}

// TaskCount returns the number of tasks across all sprints of the project.
func (p *Project) TaskCount() int {
	n := 0
	for i := range p.Sprints {
		n += len(p.Sprints[i].Tasks)
	}
	return n
}

// Clone returns a deep copy of the project and all nested sprints and tasks.
func (p Project) Clone() Project {
	out := p
	out.StartDate = cloneTime(p.StartDate)
	out.EndDate = cloneTime(p.EndDate)
	if p.Sprints != nil {
		out.Sprints = make([]Sprint, len(p.Sprints))
		for i, s := range p.Sprints {
			out.Sprints[i] = s.Clone()
		}
	}
	return out
}

// Clone returns a deep copy of the sprint and its tasks.
func (s Sprint) Clone() Sprint {
	out := s
	out.StartDate = cloneTime(s.StartDate)
	out.EndDate = cloneTime(s.EndDate)
	out.Tasks = cloneTasks(s.Tasks)
	return out
}

// Hierarchy is the Project → Sprint → Task tree plus the parallel backlog list.
type Hierarchy struct {
	Projects     []Project
	BacklogTasks []Task
}

// Clone returns a deep copy that shares no slices, pointers or maps with h.
func (h Hierarchy) Clone() Hierarchy {
	var out Hierarchy
	if h.Projects != nil {
		out.Projects = make([]Project, len(h.Projects))
		for i, p := range h.Projects {
			out.Projects[i] = p.Clone()
		}
	}
	out.BacklogTasks = cloneTasks(h.BacklogTasks)
	return out
}

// TaskCount returns the number of sprint tasks plus backlog tasks.
func (h Hierarchy) TaskCount() int {
	n := len(h.BacklogTasks)
	for i := range h.Projects {
		n += h.Projects[i].TaskCount()
	}
	return n
}

// Empty reports whether the hierarchy holds no projects and no backlog tasks.
func (h Hierarchy) Empty() bool {
	return len(h.Projects) == 0 && len(h.BacklogTasks) == 0
}

// WalkTasks calls fn for every sprint task followed by every backlog task.
func (h Hierarchy) WalkTasks(fn func(t *Task)) {
	for pi := range h.Projects {
		for si := range h.Projects[pi].Sprints {
			tasks := h.Projects[pi].Sprints[si].Tasks
			for ti := range tasks {
				fn(&tasks[ti])
			}
		}
	}
	for i := range h.BacklogTasks {
		fn(&h.BacklogTasks[i])
	}
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
