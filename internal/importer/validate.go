package importer

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/gantt/internal/domain"
)

// Validate checks a payload before conversion and returns every problem found.
// Unknown status categories are not errors; they map to the Unknown category.
func Validate(p *Payload) []error {
	var errs []error

	projectIDs := make(map[string]bool)
	sprintIDs := make(map[string]bool)
	taskIDs := make(map[string]bool)

	for i := range p.Projects {
		proj := &p.Projects[i]
		prefix := fmt.Sprintf("projects[%d]", i)

		if strings.TrimSpace(proj.Name) == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
		}
		errs = append(errs, checkID(prefix, proj.ID, projectIDs)...)
		key := domain.Project{Key: strings.ToUpper(strings.TrimSpace(proj.Key))}
		if err := key.ValidateKey(); err != nil {
			errs = append(errs, fmt.Errorf("%s.key: %w", prefix, err))
		}
		errs = append(errs, validateSpan(prefix, "startDate", proj.StartDate, "endDate", proj.EndDate)...)

		for j := range proj.Sprints {
			s := &proj.Sprints[j]
			sp := fmt.Sprintf("%s.sprints[%d]", prefix, j)
			if strings.TrimSpace(s.Name) == "" {
				errs = append(errs, fmt.Errorf("%s.name is required", sp))
			}
			errs = append(errs, checkID(sp, s.ID, sprintIDs)...)
			if _, err := domain.ParseSprintStatus(s.Status); err != nil {
				errs = append(errs, fmt.Errorf("%s.status: %w", sp, err))
			}
			errs = append(errs, validateSpan(sp, "startDate", s.StartDate, "endDate", s.EndDate)...)

			for k := range s.Tasks {
				errs = append(errs, validateTask(fmt.Sprintf("%s.tasks[%d]", sp, k), &s.Tasks[k], taskIDs)...)
			}
		}
	}

	for i := range p.BacklogTasks {
		t := &p.BacklogTasks[i]
		prefix := fmt.Sprintf("backlogTasks[%d]", i)
		errs = append(errs, validateTask(prefix, t, taskIDs)...)
		if t.ProjectID != "" && !projectIDs[t.ProjectID] {
			errs = append(errs, fmt.Errorf("%s.projectId: project %q not found in payload", prefix, t.ProjectID))
		}
	}

	return errs
}

func validateTask(prefix string, t *TaskPayload, seen map[string]bool) []error {
	var errs []error
	if strings.TrimSpace(t.Name) == "" {
		errs = append(errs, fmt.Errorf("%s.name is required", prefix))
	}
	errs = append(errs, checkID(prefix, t.ID, seen)...)
	errs = append(errs, validateSpan(prefix, "startDate", t.StartDate, "endDate", t.EndDate)...)
	errs = append(errs, validateOptionalDate(prefix+".dueDate", t.DueDate)...)
	if t.Assignee != nil && strings.TrimSpace(t.Assignee.Name) == "" {
		errs = append(errs, fmt.Errorf("%s.assigneeId: name is required", prefix))
	}
	return errs
}

func checkID(prefix, id string, seen map[string]bool) []error {
	if id == "" {
		return nil
	}
	if seen[id] {
		return []error{fmt.Errorf("%s.id: duplicate id %q", prefix, id)}
	}
	seen[id] = true
	return nil
}

// validateSpan checks both dates parse and that the end is not before the start.
func validateSpan(prefix, startField string, start *string, endField string, end *string) []error {
	errs := validateOptionalDate(prefix+"."+startField, start)
	errs = append(errs, validateOptionalDate(prefix+"."+endField, end)...)
	if len(errs) > 0 {
		return errs
	}
	s, _ := domain.ParseOptionalDate(start)
	e, _ := domain.ParseOptionalDate(end)
	if s != nil && e != nil && e.Before(*s) {
		errs = append(errs, fmt.Errorf("%s.%s %s is before %s %s",
			prefix, endField, e.Format(domain.DateLayout), startField, s.Format(domain.DateLayout)))
	}
	return errs
}

func validateOptionalDate(field string, dateStr *string) []error {
	if _, err := domain.ParseOptionalDate(dateStr); err != nil {
		return []error{fmt.Errorf("%s: %w", field, err)}
	}
	return nil
}
