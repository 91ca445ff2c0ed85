package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/gantt/internal/domain"
)

// LoadHierarchy assembles the stored projects, sprints and tasks into a
// domain.Hierarchy. Tasks without a sprint become backlog tasks. Every level
// keeps its order_index order.
func LoadHierarchy(ctx context.Context, repos Repos) (domain.Hierarchy, error) {
	projects, err := repos.Projects.List(ctx)
	if err != nil {
		return domain.Hierarchy{}, fmt.Errorf("loading projects: %w", err)
	}
	sprints, err := repos.Sprints.List(ctx)
	if err != nil {
		return domain.Hierarchy{}, fmt.Errorf("loading sprints: %w", err)
	}
	tasks, err := repos.Tasks.List(ctx)
	if err != nil {
		return domain.Hierarchy{}, fmt.Errorf("loading tasks: %w", err)
	}

	var h domain.Hierarchy
	projectIdx := make(map[string]int, len(projects))
	for _, p := range projects {
		projectIdx[p.ID] = len(h.Projects)
		h.Projects = append(h.Projects, *p)
	}

	type slot struct{ project, sprint int }
	sprintIdx := make(map[string]slot, len(sprints))
	for _, s := range sprints {
		pi, ok := projectIdx[s.ProjectID]
		if !ok {
			continue
		}
		p := &h.Projects[pi]
		sprintIdx[s.ID] = slot{project: pi, sprint: len(p.Sprints)}
		p.Sprints = append(p.Sprints, *s)
	}

	for _, t := range tasks {
		if t.SprintID != nil {
			if at, ok := sprintIdx[*t.SprintID]; ok {
				s := &h.Projects[at.project].Sprints[at.sprint]
				s.Tasks = append(s.Tasks, *t)
				continue
			}
		}
		h.BacklogTasks = append(h.BacklogTasks, *t)
	}
	return h, nil
}
