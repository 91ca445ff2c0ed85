package service

import (
	"context"
	"time"

	"github.com/alexanderramin/gantt/internal/app"
	"github.com/alexanderramin/gantt/internal/db"
	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/alexanderramin/gantt/internal/health"
)

// NoProjectName labels tasks that belong to no project in per-project stats.
const NoProjectName = "(no project)"

type statsService struct {
	uow      db.UnitOfWork
	clock    func() time.Time
	observer UseCaseObserver
}

func NewStatsService(uow db.UnitOfWork, clock func() time.Time, observers ...UseCaseObserver) StatsService {
	return &statsService{uow: uow, clock: clock, observer: useCaseObserverOrNoop(observers)}
}

func (s *statsService) GetStats(ctx context.Context, req app.StatsRequest) (resp *app.StatsResponse, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"by_project": req.ByProject}
	defer func() { observe(ctx, s.observer, "stats.compute", startedAt, &err, fields) }()

	snap, err := loadSnapshot(ctx, s.uow)
	if err != nil {
		return nil, err
	}
	now := nowOr(s.clock, req.Now)
	today := domain.DateOnly(now)

	resp = &app.StatsResponse{
		GeneratedAt: now.UTC(),
		DataVersion: snap.Version,
		Stats:       health.Aggregate(snap.Hierarchy, today),
	}
	if req.ByProject {
		resp.Projects = projectStatsViews(snap.Hierarchy, health.AggregateByProject(snap.Hierarchy, today))
	}
	fields["total"] = resp.Stats.Total
	return resp, nil
}

// projectStatsViews lists per-project stats in hierarchy order. Projects
// without tasks are included with zero counts.
func projectStatsViews(h domain.Hierarchy, byProject map[string]health.Stats) []app.ProjectStatsView {
	out := make([]app.ProjectStatsView, 0, len(h.Projects)+1)
	for i := range h.Projects {
		p := &h.Projects[i]
		out = append(out, app.ProjectStatsView{
			ProjectID:   p.ID,
			ProjectName: p.Name,
			ProjectKey:  p.Key,
			Stats:       byProject[p.ID],
		})
	}
	if st, ok := byProject[""]; ok {
		out = append(out, app.ProjectStatsView{ProjectName: NoProjectName, Stats: st})
	}
	return out
}
