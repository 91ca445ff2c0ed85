package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/gantt/internal/app"
	"github.com/alexanderramin/gantt/internal/db"
	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/alexanderramin/gantt/internal/repository"
	"github.com/alexanderramin/gantt/internal/timeline"
)

// TimelineOptions carries the configured defaults of the timeline service.
type TimelineOptions struct {
	DefaultGranularity    domain.Granularity
	FallbackHorizonMonths int
	ClampBars             bool
	// CacheEntries bounds the memoized views; zero disables caching.
	CacheEntries int
	Clock        func() time.Time
}

type timelineService struct {
	uow      db.UnitOfWork
	versions repository.VersionRepo
	opts     TimelineOptions
	cache    *viewCache
	observer UseCaseObserver
}

// NewTimelineService builds timelines from the store behind uow. versions is
// read outside any transaction to look up cached views before loading data.
func NewTimelineService(uow db.UnitOfWork, versions repository.VersionRepo, opts TimelineOptions, observers ...UseCaseObserver) TimelineService {
	if opts.DefaultGranularity == "" {
		opts.DefaultGranularity = domain.GranularityMonths
	}
	if opts.FallbackHorizonMonths <= 0 {
		opts.FallbackHorizonMonths = timeline.DefaultFallbackHorizonMonths
	}
	return &timelineService{
		uow:      uow,
		versions: versions,
		opts:     opts,
		cache:    newViewCache(opts.CacheEntries),
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *timelineService) BuildTimeline(ctx context.Context, req app.TimelineRequest) (resp *app.TimelineResponse, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{}
	defer func() { observe(ctx, s.observer, "timeline.build", startedAt, &err, fields) }()

	if req.Granularity == "" {
		req.Granularity = s.opts.DefaultGranularity
	}
	req.Clamp = req.Clamp || s.opts.ClampBars
	now := nowOr(s.opts.Clock, req.Now)
	fields["granularity"] = string(req.Granularity)
	fields["keyword"] = req.Keyword

	build := func() (*app.TimelineResponse, error) {
		snap, err := loadSnapshot(ctx, s.uow)
		if err != nil {
			return nil, err
		}
		return buildTimeline(snap, req, now, s.opts.FallbackHorizonMonths)
	}

	if s.cache == nil || s.versions == nil {
		resp, err = build()
	} else {
		var version int64
		version, err = s.versions.Get(ctx)
		if err != nil {
			return nil, fmt.Errorf("reading data version: %w", err)
		}
		var hit bool
		resp, hit, err = s.cache.get(cacheKey(version, req, now), build)
		fields["cache_hit"] = hit
		if hit && err == nil {
			fresh := *resp
			fresh.GeneratedAt = now.UTC()
			resp = &fresh
		}
	}
	if err != nil {
		return nil, err
	}
	fields["rows"] = len(resp.Rows)
	fields["columns"] = len(resp.Columns)
	return resp, nil
}

func cacheKey(version int64, req app.TimelineRequest, now time.Time) viewKey {
	return viewKey{
		Version:     version,
		Granularity: string(req.Granularity),
		From:        optionalDateKey(req.From),
		To:          optionalDateKey(req.To),
		Keyword:     normalizedKeyword(req.Keyword),
		Today:       domain.DateOnly(now).Format(domain.DateLayout),
		Expanded:    expandedKey(sortedIDs(req.Expanded)),
		ExpandAll:   req.ExpandAll,
		Clamp:       req.Clamp,
		Strict:      req.Strict,
	}
}

func optionalDateKey(t *time.Time) string {
	if t == nil {
		return ""
	}
	return domain.DateOnly(*t).Format(domain.DateLayout)
}
