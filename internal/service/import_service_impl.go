package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/gantt/internal/app"
	"github.com/alexanderramin/gantt/internal/db"
	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/alexanderramin/gantt/internal/importer"
	"github.com/alexanderramin/gantt/internal/repository"
)

type importService struct {
	uow      db.UnitOfWork
	observer UseCaseObserver
}

// NewImportService replaces the stored hierarchy with imported payloads.
func NewImportService(uow db.UnitOfWork, observers ...UseCaseObserver) ImportService {
	return &importService{uow: uow, observer: useCaseObserverOrNoop(observers)}
}

func (s *importService) ImportFile(ctx context.Context, path string) (*app.ImportResult, error) {
	p, err := importer.LoadPayload(path)
	if err != nil {
		return nil, fmt.Errorf("loading import file: %w", err)
	}
	return s.ImportPayload(ctx, p)
}

func (s *importService) ImportPayload(ctx context.Context, p *importer.Payload) (result *app.ImportResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{}
	defer func() { observe(ctx, s.observer, "import.payload", startedAt, &err, fields) }()

	if errs := importer.Validate(p); len(errs) > 0 {
		fields["validation_errors"] = len(errs)
		return nil, formatValidationErrors(errs)
	}

	h, err := importer.Convert(p)
	if err != nil {
		return nil, fmt.Errorf("converting payload: %w", err)
	}

	result = summarize(h)
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repos := repository.NewRepos(tx)
		if err := clearAll(ctx, repos); err != nil {
			return err
		}
		if err := storeHierarchy(ctx, repos, h); err != nil {
			return err
		}
		v, err := repos.Version.Bump(ctx)
		if err != nil {
			return err
		}
		result.DataVersion = v
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("storing import: %w", err)
	}

	fields["projects"] = result.ProjectCount
	fields["tasks"] = result.TaskCount
	fields["data_version"] = result.DataVersion
	return result, nil
}

func clearAll(ctx context.Context, repos repository.Repos) error {
	if err := repos.Tasks.DeleteAll(ctx); err != nil {
		return err
	}
	if err := repos.Projects.DeleteAll(ctx); err != nil {
		return err
	}
	return repos.Assignees.DeleteAll(ctx)
}

func storeHierarchy(ctx context.Context, repos repository.Repos, h domain.Hierarchy) error {
	seen := make(map[string]bool)
	var upsertErr error
	h.WalkTasks(func(t *domain.Task) {
		if upsertErr != nil || t.Assignee == nil || seen[t.Assignee.ID] {
			return
		}
		seen[t.Assignee.ID] = true
		if err := repos.Assignees.Upsert(ctx, t.Assignee); err != nil {
			upsertErr = fmt.Errorf("storing assignee %q: %w", t.Assignee.Name, err)
		}
	})
	if upsertErr != nil {
		return upsertErr
	}

	for i := range h.Projects {
		p := &h.Projects[i]
		if err := repos.Projects.Create(ctx, p); err != nil {
			return fmt.Errorf("storing project %q: %w", p.Name, err)
		}
		for j := range p.Sprints {
			sp := &p.Sprints[j]
			if err := repos.Sprints.Create(ctx, sp); err != nil {
				return fmt.Errorf("storing sprint %q: %w", sp.Name, err)
			}
			for k := range sp.Tasks {
				if err := createTask(ctx, repos, &sp.Tasks[k]); err != nil {
					return err
				}
			}
		}
	}
	for i := range h.BacklogTasks {
		if err := createTask(ctx, repos, &h.BacklogTasks[i]); err != nil {
			return err
		}
	}
	return nil
}

func createTask(ctx context.Context, repos repository.Repos, t *domain.Task) error {
	if err := repos.Tasks.Create(ctx, t); err != nil {
		return fmt.Errorf("storing task %q: %w", t.Name, err)
	}
	return nil
}

func summarize(h domain.Hierarchy) *app.ImportResult {
	r := &app.ImportResult{
		ProjectCount: len(h.Projects),
		TaskCount:    h.TaskCount(),
		BacklogCount: len(h.BacklogTasks),
	}
	assignees := make(map[string]bool)
	h.WalkTasks(func(t *domain.Task) {
		if t.Assignee != nil {
			assignees[t.Assignee.ID] = true
		}
	})
	r.AssigneeCount = len(assignees)
	for i := range h.Projects {
		r.SprintCount += len(h.Projects[i].Sprints)
	}
	return r
}
