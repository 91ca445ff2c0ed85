package app

import (
	"time"

	"github.com/alexanderramin/gantt/internal/health"
)

type StatsRequest struct {
	Now       *time.Time
	ByProject bool
}

type ProjectStatsView struct {
	ProjectID   string       `json:"projectId"`
	ProjectName string       `json:"projectName"`
	ProjectKey  string       `json:"projectKey,omitempty"`
	Stats       health.Stats `json:"stats"`
}

type StatsResponse struct {
	GeneratedAt time.Time          `json:"generatedAt"`
	DataVersion int64              `json:"dataVersion"`
	Stats       health.Stats       `json:"stats"`
	Projects    []ProjectStatsView `json:"projects,omitempty"`
}
