package importer

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/google/uuid"
)

// Convert transforms a validated Payload into a domain.Hierarchy ready for
// persistence. Missing ids are generated, dates are normalized to calendar
// days, order indexes follow payload order, and assignees given only by name
// share one generated id per distinct name. Call Validate first; Convert only
// reports the first problem it trips over.
func Convert(p *Payload) (domain.Hierarchy, error) {
	c := converter{assigneeIDs: make(map[string]string)}
	var h domain.Hierarchy

	for i := range p.Projects {
		proj, err := c.project(&p.Projects[i], i)
		if err != nil {
			return domain.Hierarchy{}, fmt.Errorf("projects[%d]: %w", i, err)
		}
		h.Projects = append(h.Projects, proj)
	}
	for i := range p.BacklogTasks {
		t, err := c.task(&p.BacklogTasks[i], p.BacklogTasks[i].ProjectID, nil, i)
		if err != nil {
			return domain.Hierarchy{}, fmt.Errorf("backlogTasks[%d]: %w", i, err)
		}
		h.BacklogTasks = append(h.BacklogTasks, t)
	}
	return h, nil
}

type converter struct {
	assigneeIDs map[string]string // lower-cased name -> generated id
}

func (c *converter) project(pp *ProjectPayload, order int) (domain.Project, error) {
	start, end, err := parseSpan(pp.StartDate, pp.EndDate)
	if err != nil {
		return domain.Project{}, err
	}
	proj := domain.Project{
		ID:         idOrNew(pp.ID),
		Name:       strings.TrimSpace(pp.Name),
		Key:        strings.ToUpper(strings.TrimSpace(pp.Key)),
		StartDate:  start,
		EndDate:    end,
		OrderIndex: order,
	}
	for j := range pp.Sprints {
		s, err := c.sprint(&pp.Sprints[j], proj.ID, j)
		if err != nil {
			return domain.Project{}, fmt.Errorf("sprints[%d]: %w", j, err)
		}
		proj.Sprints = append(proj.Sprints, s)
	}
	return proj, nil
}

func (c *converter) sprint(sp *SprintPayload, projectID string, order int) (domain.Sprint, error) {
	start, end, err := parseSpan(sp.StartDate, sp.EndDate)
	if err != nil {
		return domain.Sprint{}, err
	}
	status, err := domain.ParseSprintStatus(sp.Status)
	if err != nil {
		return domain.Sprint{}, err
	}
	s := domain.Sprint{
		ID:         idOrNew(sp.ID),
		ProjectID:  projectID,
		Name:       strings.TrimSpace(sp.Name),
		StartDate:  start,
		EndDate:    end,
		Status:     status,
		OrderIndex: order,
	}
	for k := range sp.Tasks {
		t, err := c.task(&sp.Tasks[k], projectID, &s.ID, k)
		if err != nil {
			return domain.Sprint{}, fmt.Errorf("tasks[%d]: %w", k, err)
		}
		s.Tasks = append(s.Tasks, t)
	}
	return s, nil
}

func (c *converter) task(tp *TaskPayload, projectID string, sprintID *string, order int) (domain.Task, error) {
	start, end, err := parseSpan(tp.StartDate, tp.EndDate)
	if err != nil {
		return domain.Task{}, err
	}
	due, err := domain.ParseOptionalDate(tp.DueDate)
	if err != nil {
		return domain.Task{}, fmt.Errorf("dueDate: %w", err)
	}

	t := domain.Task{
		ID:         idOrNew(tp.ID),
		ProjectID:  projectID,
		Key:        strings.TrimSpace(tp.Key),
		Name:       strings.TrimSpace(tp.Name),
		StartDate:  start,
		EndDate:    end,
		DueDate:    due,
		Status:     convertStatus(tp.Status),
		OrderIndex: order,
	}
	if sprintID != nil {
		id := *sprintID
		t.SprintID = &id
	}
	if tp.Assignee != nil && strings.TrimSpace(tp.Assignee.Name) != "" {
		t.Assignee = &domain.Assignee{
			ID:   c.assigneeID(tp.Assignee),
			Name: strings.TrimSpace(tp.Assignee.Name),
		}
	}
	return t, nil
}

func (c *converter) assigneeID(a *AssigneeRef) string {
	if a.ID != "" {
		return a.ID
	}
	key := strings.ToLower(strings.TrimSpace(a.Name))
	if id, ok := c.assigneeIDs[key]; ok {
		return id
	}
	id := uuid.New().String()
	c.assigneeIDs[key] = id
	return id
}

// convertStatus maps the payload status onto the closed category set. A blank
// status name falls back to the category's display name.
func convertStatus(s StatusRef) domain.TaskStatus {
	cat := domain.ParseStatusCategory(s.Category)
	name := strings.TrimSpace(s.Name)
	if name == "" {
		name = cat.String()
	}
	return domain.TaskStatus{Name: name, Category: cat}
}

func parseSpan(start, end *string) (*time.Time, *time.Time, error) {
	s, err := domain.ParseOptionalDate(start)
	if err != nil {
		return nil, nil, fmt.Errorf("startDate: %w", err)
	}
	e, err := domain.ParseOptionalDate(end)
	if err != nil {
		return nil, nil, fmt.Errorf("endDate: %w", err)
	}
	return s, e, nil
}

func idOrNew(id string) string {
	if id = strings.TrimSpace(id); id != "" {
		return id
	}
	return uuid.New().String()
}
