package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/gantt/internal/app"
	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/alexanderramin/gantt/internal/repository"
	"github.com/alexanderramin/gantt/internal/testutil"
)

func TestTimelineService_BuildsFromStore(t *testing.T) {
	_, uow := seedSample(t)
	obs := &recordingObserver{}
	svc := NewTimelineService(uow, nil, TimelineOptions{Clock: fixedClock}, obs)

	resp, err := svc.BuildTimeline(context.Background(), app.TimelineRequest{Keyword: "header"})
	require.NoError(t, err)

	assert.Equal(t, domain.GranularityMonths, resp.Granularity, "configured default applies")
	assert.Equal(t, int64(1), resp.DataVersion)
	assert.Equal(t, 5, resp.Stats.Total)
	require.Len(t, resp.Rows, 3)
	assert.Equal(t, "Grace Hopper", resp.Rows[2].Assignee)

	ev := obs.last()
	assert.Equal(t, "timeline.build", ev.Name)
	assert.True(t, ev.Success)
	assert.Equal(t, 3, ev.Fields["rows"])
}

func TestTimelineService_ConfiguredDefaults(t *testing.T) {
	_, uow := seedSample(t)
	svc := NewTimelineService(uow, nil, TimelineOptions{
		DefaultGranularity: domain.GranularityYears,
		ClampBars:          true,
		Clock:              fixedClock,
	})

	resp, err := svc.BuildTimeline(context.Background(), app.TimelineRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Columns, 1)
	assert.Equal(t, "2024", resp.Columns[0].Label)
	for _, r := range resp.Rows {
		assert.GreaterOrEqual(t, r.Bar.Left, 0.0)
		assert.LessOrEqual(t, r.Bar.Right(), 100.0)
	}
}

func TestTimelineService_CachesPerDataVersion(t *testing.T) {
	database, uow := seedSample(t)
	obs := &recordingObserver{}
	svc := NewTimelineService(uow, repository.NewSQLiteVersionRepo(database),
		TimelineOptions{CacheEntries: 8, Clock: fixedClock}, obs)
	ctx := context.Background()
	req := app.TimelineRequest{Expanded: []string{"s-1", "p-web"}}

	first, err := svc.BuildTimeline(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, false, obs.last().Fields["cache_hit"])

	// Same view with the expanded ids in another order.
	second, err := svc.BuildTimeline(ctx, app.TimelineRequest{Expanded: []string{"p-web", "s-1"}})
	require.NoError(t, err)
	assert.Equal(t, true, obs.last().Fields["cache_hit"])
	assert.Equal(t, first.Rows, second.Rows)

	_, err = NewImportService(uow).ImportPayload(ctx, samplePayload())
	require.NoError(t, err)

	third, err := svc.BuildTimeline(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, false, obs.last().Fields["cache_hit"])
	assert.Equal(t, int64(2), third.DataVersion)
}

func TestTimelineService_CacheHitRestampsGeneratedAt(t *testing.T) {
	database, uow := seedSample(t)
	now := testNow
	clock := func() time.Time { return now }
	obs := &recordingObserver{}
	svc := NewTimelineService(uow, repository.NewSQLiteVersionRepo(database),
		TimelineOptions{CacheEntries: 8, Clock: clock}, obs)
	ctx := context.Background()

	first, err := svc.BuildTimeline(ctx, app.TimelineRequest{})
	require.NoError(t, err)
	assert.Equal(t, testNow.UTC(), first.GeneratedAt)

	now = testNow.Add(90 * time.Minute)
	require.Equal(t, domain.DateOnly(testNow), domain.DateOnly(now))

	second, err := svc.BuildTimeline(ctx, app.TimelineRequest{})
	require.NoError(t, err)
	assert.Equal(t, true, obs.last().Fields["cache_hit"])
	assert.Equal(t, now.UTC(), second.GeneratedAt)
	assert.Equal(t, testNow.UTC(), first.GeneratedAt, "cached entry must not change")
	assert.Equal(t, first.Rows, second.Rows)
}

func TestTimelineService_StrictErrorIsReported(t *testing.T) {
	_, uow := seedSample(t)
	obs := &recordingObserver{}
	svc := NewTimelineService(uow, nil, TimelineOptions{Clock: fixedClock}, obs)

	_, err := svc.BuildTimeline(context.Background(), app.TimelineRequest{Granularity: "fortnights", Strict: true})
	var terr *app.TimelineError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, app.TimelineErrInvalidGranularity, terr.Code)
	assert.False(t, obs.last().Success)
}

func TestTimelineService_EmptyStore(t *testing.T) {
	uow := testutil.NewTestUoW(testutil.NewTestDB(t))
	svc := NewTimelineService(uow, nil, TimelineOptions{Clock: fixedClock})

	resp, err := svc.BuildTimeline(context.Background(), app.TimelineRequest{})
	require.NoError(t, err)
	assert.Empty(t, resp.Rows)
	assert.Equal(t, int64(0), resp.DataVersion)
	assert.NotEmpty(t, resp.Columns)
}
