package repository

import (
	"context"

	"github.com/alexanderramin/gantt/internal/db"
	"github.com/alexanderramin/gantt/internal/domain"
)

type ProjectRepo interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	GetByKey(ctx context.Context, key string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	DeleteAll(ctx context.Context) error
}

type SprintRepo interface {
	Create(ctx context.Context, s *domain.Sprint) error
	GetByID(ctx context.Context, id string) (*domain.Sprint, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.Sprint, error)
	List(ctx context.Context) ([]*domain.Sprint, error)
}

type AssigneeRepo interface {
	Upsert(ctx context.Context, a *domain.Assignee) error
	List(ctx context.Context) ([]*domain.Assignee, error)
	DeleteAll(ctx context.Context) error
}

type TaskRepo interface {
	Create(ctx context.Context, t *domain.Task) error
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	List(ctx context.Context) ([]*domain.Task, error)
	Count(ctx context.Context) (int, error)
	DeleteAll(ctx context.Context) error
}

// VersionRepo reads and advances the monotonic data version that keys
// cached timeline views.
type VersionRepo interface {
	Get(ctx context.Context) (int64, error)
	Bump(ctx context.Context) (int64, error)
}

// Repos bundles every repository bound to one connection or transaction.
type Repos struct {
	Projects  ProjectRepo
	Sprints   SprintRepo
	Assignees AssigneeRepo
	Tasks     TaskRepo
	Version   VersionRepo
}

// NewRepos builds the SQLite repositories on conn. Passing the tx handed to
// UnitOfWork.WithinTx yields tx-scoped repositories.
func NewRepos(conn db.DBTX) Repos {
	return Repos{
		Projects:  NewSQLiteProjectRepo(conn),
		Sprints:   NewSQLiteSprintRepo(conn),
		Assignees: NewSQLiteAssigneeRepo(conn),
		Tasks:     NewSQLiteTaskRepo(conn),
		Version:   NewSQLiteVersionRepo(conn),
	}
}
