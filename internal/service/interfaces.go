package service

import (
	"context"

	"github.com/alexanderramin/gantt/internal/app"
	"github.com/alexanderramin/gantt/internal/importer"
)

type TimelineService interface {
	BuildTimeline(ctx context.Context, req app.TimelineRequest) (*app.TimelineResponse, error)
}

type StatsService interface {
	GetStats(ctx context.Context, req app.StatsRequest) (*app.StatsResponse, error)
}

type ImportService interface {
	ImportFile(ctx context.Context, path string) (*app.ImportResult, error)
	ImportPayload(ctx context.Context, p *importer.Payload) (*app.ImportResult, error)
}

type ExportService interface {
	Export(ctx context.Context) (*importer.Payload, error)
}

var (
	_ app.TimelineUseCase = (TimelineService)(nil)
	_ app.StatsUseCase    = (StatsService)(nil)
	_ app.ImportUseCase   = (ImportService)(nil)
	_ app.ExportUseCase   = (ExportService)(nil)
)
