package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/gantt/internal/app"
	"github.com/alexanderramin/gantt/internal/health"
	"github.com/alexanderramin/gantt/internal/importer"
)

func TestStatsService_Totals(t *testing.T) {
	_, uow := seedSample(t)
	obs := &recordingObserver{}
	svc := NewStatsService(uow, fixedClock, obs)

	resp, err := svc.GetStats(context.Background(), app.StatsRequest{})
	require.NoError(t, err)

	assert.Equal(t, health.Stats{Done: 1, InProgress: 1, Delay: 1, AtRisk: 1, Unplanned: 1, Total: 5}, resp.Stats)
	assert.Empty(t, resp.Projects)
	assert.Equal(t, "stats.compute", obs.last().Name)
}

func TestStatsService_NowOverride(t *testing.T) {
	_, uow := seedSample(t)
	svc := NewStatsService(uow, fixedClock)

	later := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	resp, err := svc.GetStats(context.Background(), app.StatsRequest{Now: &later})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Stats.Delay, "WEB-2 and WEB-3 are both overdue by March")
	assert.Equal(t, 0, resp.Stats.AtRisk)
}

func TestStatsService_ByProject(t *testing.T) {
	_, uow := seedSample(t)
	p := samplePayload()
	p.BacklogTasks = append(p.BacklogTasks, importer.TaskPayload{
		Name:   "Loose end",
		Status: importer.StatusRef{Name: "To Do", Category: "To Do"},
	})
	_, err := NewImportService(uow).ImportPayload(context.Background(), p)
	require.NoError(t, err)

	resp, err := NewStatsService(uow, fixedClock).GetStats(context.Background(), app.StatsRequest{ByProject: true})
	require.NoError(t, err)

	require.Len(t, resp.Projects, 3)
	assert.Equal(t, "Website Relaunch", resp.Projects[0].ProjectName)
	assert.Equal(t, "WEB", resp.Projects[0].ProjectKey)
	assert.Equal(t, 4, resp.Projects[0].Stats.Total)
	assert.Equal(t, "Mobile App", resp.Projects[1].ProjectName)
	assert.Equal(t, 1, resp.Projects[1].Stats.Done)
	assert.Equal(t, NoProjectName, resp.Projects[2].ProjectName)
	assert.Equal(t, 1, resp.Projects[2].Stats.Unplanned)

	var sum health.Stats
	for _, p := range resp.Projects {
		sum = sum.Merge(p.Stats)
	}
	assert.Equal(t, resp.Stats, sum)
}
