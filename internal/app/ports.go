package app

import (
	"context"

	"github.com/alexanderramin/gantt/internal/importer"
)

type TimelineUseCase interface {
	BuildTimeline(ctx context.Context, req TimelineRequest) (*TimelineResponse, error)
}

type StatsUseCase interface {
	GetStats(ctx context.Context, req StatsRequest) (*StatsResponse, error)
}

type ImportResult struct {
	ProjectCount  int   `json:"projects"`
	SprintCount   int   `json:"sprints"`
	TaskCount     int   `json:"tasks"`
	BacklogCount  int   `json:"backlogTasks"`
	AssigneeCount int   `json:"assignees"`
	DataVersion   int64 `json:"dataVersion"`
}

type ImportUseCase interface {
	ImportFile(ctx context.Context, path string) (*ImportResult, error)
	ImportPayload(ctx context.Context, p *importer.Payload) (*ImportResult, error)
}

type ExportUseCase interface {
	Export(ctx context.Context) (*importer.Payload, error)
}
