package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/google/uuid"
)

var testKeyCounter atomic.Int64

// Date returns midnight UTC of the given calendar day.
func Date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DatePtr is Date returning a pointer.
func DatePtr(y int, m time.Month, d int) *time.Time {
	t := Date(y, m, d)
	return &t
}

// Project options
type ProjectOption func(*domain.Project)

func WithProjectKey(key string) ProjectOption {
	return func(p *domain.Project) {
		p.Key = key
	}
}

func WithProjectDates(start, end time.Time) ProjectOption {
	return func(p *domain.Project) {
		p.StartDate = &start
		p.EndDate = &end
	}
}

// WithSprints attaches sprints and rewrites their ProjectID (and their tasks')
// to the project's id.
func WithSprints(sprints ...domain.Sprint) ProjectOption {
	return func(p *domain.Project) {
		for i := range sprints {
			sprints[i].ProjectID = p.ID
			for j := range sprints[i].Tasks {
				sprints[i].Tasks[j].ProjectID = p.ID
			}
		}
		p.Sprints = append(p.Sprints, sprints...)
	}
}

func NewTestProject(name string, opts ...ProjectOption) domain.Project {
	p := domain.Project{
		ID:   uuid.New().String(),
		Name: name,
		Key:  fmt.Sprintf("PR%d", testKeyCounter.Add(1)),
	}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

// Sprint options
type SprintOption func(*domain.Sprint)

func WithSprintDates(start, end time.Time) SprintOption {
	return func(s *domain.Sprint) {
		s.StartDate = &start
		s.EndDate = &end
	}
}

func WithSprintStatus(st domain.SprintStatus) SprintOption {
	return func(s *domain.Sprint) {
		s.Status = st
	}
}

// WithTasks attaches tasks and points their SprintID at the sprint.
func WithTasks(tasks ...domain.Task) SprintOption {
	return func(s *domain.Sprint) {
		for i := range tasks {
			id := s.ID
			tasks[i].SprintID = &id
			tasks[i].ProjectID = s.ProjectID
		}
		s.Tasks = append(s.Tasks, tasks...)
	}
}

func NewTestSprint(name string, opts ...SprintOption) domain.Sprint {
	s := domain.Sprint{
		ID:     uuid.New().String(),
		Name:   name,
		Status: domain.SprintNotStarted,
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// Task options
type TaskOption func(*domain.Task)

func WithTaskKey(key string) TaskOption {
	return func(t *domain.Task) {
		t.Key = key
	}
}

func WithStart(d time.Time) TaskOption {
	return func(t *domain.Task) {
		t.StartDate = &d
	}
}

func WithEnd(d time.Time) TaskOption {
	return func(t *domain.Task) {
		t.EndDate = &d
	}
}

func WithDue(d time.Time) TaskOption {
	return func(t *domain.Task) {
		t.DueDate = &d
	}
}

func WithCategory(c domain.StatusCategory) TaskOption {
	return func(t *domain.Task) {
		t.Status = domain.TaskStatus{Name: c.String(), Category: c}
	}
}

func WithStatus(name string, c domain.StatusCategory) TaskOption {
	return func(t *domain.Task) {
		t.Status = domain.TaskStatus{Name: name, Category: c}
	}
}

func WithAssignee(name string) TaskOption {
	return func(t *domain.Task) {
		t.Assignee = &domain.Assignee{ID: uuid.New().String(), Name: name}
	}
}

func WithBacklogProject(projectID string) TaskOption {
	return func(t *domain.Task) {
		t.ProjectID = projectID
		t.SprintID = nil
	}
}

// NewTestTask returns a "To Do" task with a generated key and no dates.
func NewTestTask(name string, opts ...TaskOption) domain.Task {
	t := domain.Task{
		ID:     uuid.New().String(),
		Key:    fmt.Sprintf("TSK-%d", testKeyCounter.Add(1)),
		Name:   name,
		Status: domain.TaskStatus{Name: "To Do", Category: domain.CategoryTodo},
	}
	for _, opt := range opts {
		opt(&t)
	}
	return t
}
