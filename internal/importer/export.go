package importer

import "github.com/alexanderramin/gantt/internal/domain"

// FromHierarchy renders h as a payload. Converting the result again yields
// an equivalent hierarchy.
func FromHierarchy(h domain.Hierarchy) *Payload {
	p := &Payload{
		Projects:     make([]ProjectPayload, 0, len(h.Projects)),
		BacklogTasks: make([]TaskPayload, 0, len(h.BacklogTasks)),
	}
	for i := range h.Projects {
		proj := &h.Projects[i]
		pp := ProjectPayload{
			ID:        proj.ID,
			Name:      proj.Name,
			Key:       proj.Key,
			StartDate: domain.FormatOptionalDate(proj.StartDate),
			EndDate:   domain.FormatOptionalDate(proj.EndDate),
			Sprints:   make([]SprintPayload, 0, len(proj.Sprints)),
		}
		for j := range proj.Sprints {
			s := &proj.Sprints[j]
			sp := SprintPayload{
				ID:        s.ID,
				Name:      s.Name,
				StartDate: domain.FormatOptionalDate(s.StartDate),
				EndDate:   domain.FormatOptionalDate(s.EndDate),
				Status:    string(s.Status),
				Tasks:     make([]TaskPayload, 0, len(s.Tasks)),
			}
			for k := range s.Tasks {
				sp.Tasks = append(sp.Tasks, taskPayload(&s.Tasks[k], false))
			}
			pp.Sprints = append(pp.Sprints, sp)
		}
		p.Projects = append(p.Projects, pp)
	}
	for i := range h.BacklogTasks {
		p.BacklogTasks = append(p.BacklogTasks, taskPayload(&h.BacklogTasks[i], true))
	}
	return p
}

func taskPayload(t *domain.Task, backlog bool) TaskPayload {
	tp := TaskPayload{
		ID:        t.ID,
		Key:       t.Key,
		Name:      t.Name,
		StartDate: domain.FormatOptionalDate(t.StartDate),
		EndDate:   domain.FormatOptionalDate(t.EndDate),
		DueDate:   domain.FormatOptionalDate(t.DueDate),
		Status:    StatusRef{Name: t.Status.Name, Category: t.Status.Category.String()},
	}
	if backlog {
		tp.ProjectID = t.ProjectID
	}
	if t.Assignee != nil {
		tp.Assignee = &AssigneeRef{ID: t.Assignee.ID, Name: t.Assignee.Name}
	}
	return tp
}
