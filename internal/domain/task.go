package domain

import "time"

// Assignee is the display-only reference to a task's owner.
type Assignee struct {
	ID   string
	Name string
}

// TaskStatus is the workflow status a task currently sits in. Name is the
// free-form workflow column ("Code Review"); Category is what drives logic.
type TaskStatus struct {
	Name     string
	Category StatusCategory
}

type Task struct {
	ID         string
	ProjectID  string
	SprintID   *string // nil for backlog tasks
	Key        string
	Name       string
	StartDate  *time.Time
	EndDate    *time.Time
	DueDate    *time.Time
	Assignee   *Assignee
	Status     TaskStatus
	OrderIndex int
}

// IsBacklog reports whether the task is not assigned to any sprint.
func (t *Task) IsBacklog() bool {
	return t.SprintID == nil
}

// EffectiveEnd returns the end date, falling back to the due date.
func (t *Task) EffectiveEnd() *time.Time {
	return CoalesceTime(t.EndDate, t.DueDate)
}

// IsUnplanned reports whether the task has neither a start nor an end/due date.
func (t *Task) IsUnplanned() bool {
	return t.StartDate == nil && t.EffectiveEnd() == nil
}

// AssigneeName returns the assignee's display name or "".
func (t *Task) AssigneeName() string {
	if t.Assignee == nil {
		return ""
	}
	return t.Assignee.Name
}

// Clone returns a deep copy of the task.
func (t Task) Clone() Task {
	out := t
	out.SprintID = cloneString(t.SprintID)
	out.StartDate = cloneTime(t.StartDate)
	out.EndDate = cloneTime(t.EndDate)
	out.DueDate = cloneTime(t.DueDate)
	if t.Assignee != nil {
		a := *t.Assignee
		out.Assignee = &a
	}
	return out
}

func cloneTasks(tasks []Task) []Task {
	if tasks == nil {
		return nil
	}
	out := make([]Task, len(tasks))
	for i, t := range tasks {
		out[i] = t.Clone()
	}
	return out
}
