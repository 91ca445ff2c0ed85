package app

import (
	"time"

	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/alexanderramin/gantt/internal/health"
	"github.com/alexanderramin/gantt/internal/hierarchy"
	"github.com/alexanderramin/gantt/internal/timeline"
)

type TimelineRequest struct {
	Granularity domain.Granularity
	Keyword     string
	Now         *time.Time
	// From and To override the resolved data range when set.
	From *time.Time
	To   *time.Time
	// Expanded holds project/sprint ids (and hierarchy.BacklogGroupID).
	Expanded  []string
	ExpandAll bool
	Clamp     bool
	// Strict turns soft failures (unknown granularity, inverted range,
	// column truncation) into a *TimelineError.
	Strict bool
}

func NewTimelineRequest() TimelineRequest {
	return TimelineRequest{Granularity: domain.GranularityMonths}
}

type DateRangeView struct {
	Start string `json:"start"`
	End   string `json:"end"`
	Days  int    `json:"days"`
}

func NewDateRangeView(r timeline.Range) DateRangeView {
	return DateRangeView{
		Start: r.Start.Format(domain.DateLayout),
		End:   r.End.Format(domain.DateLayout),
		Days:  r.Days(),
	}
}

type ColumnView struct {
	Label    string `json:"label"`
	Sublabel string `json:"sublabel"`
	Start    string `json:"start"`
	End      string `json:"end"`
}

// RowView is one visible Gantt row with its bar geometry.
type RowView struct {
	Kind       hierarchy.RowKind `json:"kind"`
	ID         string            `json:"id"`
	Depth      int               `json:"depth"`
	Label      string            `json:"label"`
	Start      *string           `json:"start,omitempty"`
	End        *string           `json:"end,omitempty"`
	Expandable bool              `json:"expandable"`
	Expanded   bool              `json:"expanded"`
	ChildCount int               `json:"childCount"`
	Bar        timeline.Bar      `json:"bar"`

	// Task rows only.
	Key      string        `json:"key,omitempty"`
	Status   string        `json:"status,omitempty"`
	Category string        `json:"category,omitempty"`
	Assignee string        `json:"assignee,omitempty"`
	Health   health.Bucket `json:"health,omitempty"`
	// Sprint rows only.
	SprintStatus domain.SprintStatus `json:"sprintStatus,omitempty"`
}

type TimelineResponse struct {
	GeneratedAt  time.Time               `json:"generatedAt"`
	DataVersion  int64                   `json:"dataVersion"`
	Granularity  domain.Granularity      `json:"granularity"`
	Keyword      string                  `json:"keyword,omitempty"`
	Range        DateRangeView           `json:"range"`
	Columns      []ColumnView            `json:"columns"`
	Rows         []RowView               `json:"rows"`
	Stats        health.Stats            `json:"stats"`
	ProjectStats map[string]health.Stats `json:"projectStats"`
	Expanded     []string                `json:"expanded"`
	Truncated    bool                    `json:"truncated,omitempty"`
	Warnings     []string                `json:"warnings,omitempty"`
}

type TimelineErrorCode string

const (
	TimelineErrInvalidGranularity TimelineErrorCode = "INVALID_GRANULARITY"
	TimelineErrInvalidDate        TimelineErrorCode = "INVALID_DATE"
	TimelineErrInvalidRange       TimelineErrorCode = "INVALID_RANGE"
	TimelineErrTooManyColumns     TimelineErrorCode = "TOO_MANY_COLUMNS"
)

type TimelineError struct {
	Code    TimelineErrorCode
	Message string
}

func (e *TimelineError) Error() string {
	return string(e.Code) + ": " + e.Message
}
