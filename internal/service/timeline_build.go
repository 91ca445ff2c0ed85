package service

import (
	"errors"
	"time"

	"github.com/alexanderramin/gantt/internal/app"
	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/alexanderramin/gantt/internal/health"
	"github.com/alexanderramin/gantt/internal/hierarchy"
	"github.com/alexanderramin/gantt/internal/timeline"
)

// buildTimeline derives the full Gantt view from one snapshot. It is pure:
// the snapshot is never modified and the same inputs always give the same
// response. Statistics always cover the unfiltered hierarchy.
func buildTimeline(snap snapshot, req app.TimelineRequest, now time.Time, fallbackMonths int) (*app.TimelineResponse, error) {
	today := domain.DateOnly(now)
	keyword := hierarchy.NormalizeKeyword(req.Keyword)

	rng := timeline.ResolveRange(snap.Hierarchy, timeline.FallbackRange(today, fallbackMonths))
	if req.From != nil {
		rng.Start = domain.DateOnly(*req.From)
	}
	if req.To != nil {
		rng.End = domain.DateOnly(*req.To)
	}

	resp := &app.TimelineResponse{
		GeneratedAt: now.UTC(),
		DataVersion: snap.Version,
		Granularity: req.Granularity,
		Keyword:     keyword,
		Range:       app.NewDateRangeView(rng),
	}

	cols, err := timeline.GenerateColumnsStrict(req.Granularity, rng.Start, rng.End)
	if err != nil {
		if req.Strict {
			return nil, timelineError(err)
		}
		resp.Warnings = append(resp.Warnings, err.Error())
		resp.Truncated = errors.Is(err, timeline.ErrTooManyColumns)
	}
	resp.Columns = columnViews(cols)

	resp.Stats = health.Aggregate(snap.Hierarchy, today)
	resp.ProjectStats = health.AggregateByProject(snap.Hierarchy, today)

	filtered := hierarchy.Filter(snap.Hierarchy, keyword)
	exp := hierarchy.NewExpansion(req.Expanded...)
	if req.ExpandAll {
		exp = hierarchy.ExpandAll(filtered)
	}
	rows := hierarchy.Rows(filtered, exp, hierarchy.ForceExpandIf(keyword != ""))
	resp.Rows = rowViews(rows, cols, today, timeline.ClampIf(req.Clamp))
	resp.Expanded = exp.IDs()

	return resp, nil
}

func columnViews(cols []timeline.Column) []app.ColumnView {
	out := make([]app.ColumnView, len(cols))
	for i, c := range cols {
		out[i] = app.ColumnView{
			Label:    c.Label,
			Sublabel: c.Sublabel,
			Start:    c.Start.Format(domain.DateLayout),
			End:      c.End.Format(domain.DateLayout),
		}
	}
	return out
}

func rowViews(rows []hierarchy.Row, cols []timeline.Column, today time.Time, opts ...timeline.BarOption) []app.RowView {
	out := make([]app.RowView, 0, len(rows))
	for _, r := range rows {
		v := app.RowView{
			Kind:       r.Kind,
			ID:         r.ID,
			Depth:      r.Depth,
			Label:      r.Label,
			Start:      domain.FormatOptionalDate(r.Start),
			End:        domain.FormatOptionalDate(r.End),
			Expandable: r.Expandable,
			Expanded:   r.Expanded,
			ChildCount: r.ChildCount,
		}
		switch r.Kind {
		case hierarchy.RowProject:
			v.Bar = timeline.ProjectBar(r.Project, cols, opts...)
		case hierarchy.RowSprint:
			v.Bar = timeline.SprintBar(r.Sprint, cols, opts...)
			v.SprintStatus = r.Sprint.Status
		case hierarchy.RowTask:
			t := r.Task
			v.Bar = timeline.TaskBar(t, cols, opts...)
			v.Key = t.Key
			v.Status = t.Status.Name
			v.Category = t.Status.Category.String()
			v.Assignee = t.AssigneeName()
			v.Health = health.Classify(t, today)
		}
		out = append(out, v)
	}
	return out
}
