// Package hierarchy narrows and flattens the Project → Sprint → Task tree for
// display: keyword filtering that keeps ancestors of matches, the expanded-node
// set, and the visible row list derived from both.
package hierarchy

import (
	"strings"

	"github.com/alexanderramin/gantt/internal/domain"
)

// NormalizeKeyword trims and lower-cases a search keyword.
func NormalizeKeyword(keyword string) string {
	return strings.ToLower(strings.TrimSpace(keyword))
}

// Filter returns a new hierarchy holding only nodes that match keyword or
// have a matching descendant. Tasks match on key, name or assignee name;
// sprints and projects match on name. A sprint or project whose own name
// matches keeps its whole subtree. Backlog tasks follow the task rule, and
// also survive when their owning project's name matches.
//
// An empty or whitespace-only keyword returns a deep copy of h. The input is
// never modified and the result shares no memory with it.
func Filter(h domain.Hierarchy, keyword string) domain.Hierarchy {
	kw := NormalizeKeyword(keyword)
	if kw == "" {
		return h.Clone()
	}

	var out domain.Hierarchy
	matchedProjects := make(map[string]bool)
	for i := range h.Projects {
		p := &h.Projects[i]
		if contains(p.Name, kw) {
			matchedProjects[p.ID] = true
			out.Projects = append(out.Projects, p.Clone())
			continue
		}
		if fp, ok := filterProject(p, kw); ok {
			out.Projects = append(out.Projects, fp)
		}
	}

	for i := range h.BacklogTasks {
		t := &h.BacklogTasks[i]
		if TaskMatches(t, kw) || (t.ProjectID != "" && matchedProjects[t.ProjectID]) {
			out.BacklogTasks = append(out.BacklogTasks, t.Clone())
		}
	}
	return out
}

// TaskMatches reports whether a task matches an already normalized keyword.
func TaskMatches(t *domain.Task, kw string) bool {
	return contains(t.Key, kw) || contains(t.Name, kw) || contains(t.AssigneeName(), kw)
}

func filterProject(p *domain.Project, kw string) (domain.Project, bool) {
	var sprints []domain.Sprint
	for i := range p.Sprints {
		s := &p.Sprints[i]
		if contains(s.Name, kw) {
			sprints = append(sprints, s.Clone())
			continue
		}
		if fs, ok := filterSprint(s, kw); ok {
			sprints = append(sprints, fs)
		}
	}
	if len(sprints) == 0 {
		return domain.Project{}, false
	}
	out := p.Clone()
	out.Sprints = sprints
	return out, true
}

func filterSprint(s *domain.Sprint, kw string) (domain.Sprint, bool) {
	var tasks []domain.Task
	for i := range s.Tasks {
		if TaskMatches(&s.Tasks[i], kw) {
			tasks = append(tasks, s.Tasks[i].Clone())
		}
	}
	if len(tasks) == 0 {
		return domain.Sprint{}, false
	}
	out := s.Clone()
	out.Tasks = tasks
	return out, true
}

func contains(s, kw string) bool {
	return s != "" && strings.Contains(strings.ToLower(s), kw)
}
