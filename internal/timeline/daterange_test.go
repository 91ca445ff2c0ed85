package timeline

import (
	"testing"
	"time"

	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestResolveRange_ScansEveryLevel(t *testing.T) {
	h := domain.Hierarchy{
		Projects: []domain.Project{{
			StartDate: ptr(day(2024, 2, 1)),
			EndDate:   ptr(day(2024, 4, 30)),
			Sprints: []domain.Sprint{{
				StartDate: ptr(day(2024, 2, 5)),
				EndDate:   ptr(day(2024, 2, 19)),
				Tasks: []domain.Task{
					{DueDate: ptr(day(2024, 5, 15))},
				},
			}},
		}},
		BacklogTasks: []domain.Task{
			{StartDate: ptr(day(2024, 1, 10))},
		},
	}

	r := ResolveRange(h, Range{})
	assert.Equal(t, day(2024, 1, 10), r.Start)
	assert.Equal(t, day(2024, 5, 15), r.End)
}

func TestResolveRange_NoDatesUsesFallback(t *testing.T) {
	fallback := Range{Start: day(2020, 1, 1), End: day(2020, 12, 31)}

	assert.Equal(t, fallback, ResolveRange(domain.Hierarchy{}, fallback))

	h := domain.Hierarchy{Projects: []domain.Project{{Name: "undated", Sprints: []domain.Sprint{{Tasks: []domain.Task{{}}}}}}}
	assert.Equal(t, fallback, ResolveRange(h, fallback))
}

func TestResolveRange_SingleDate(t *testing.T) {
	h := domain.Hierarchy{BacklogTasks: []domain.Task{{DueDate: ptr(day(2024, 7, 4))}}}
	r := ResolveRange(h, Range{})
	assert.Equal(t, day(2024, 7, 4), r.Start)
	assert.Equal(t, day(2024, 7, 4), r.End)
	assert.Equal(t, 0, r.Days())
}

func TestResolveRange_NormalizesTimes(t *testing.T) {
	late := time.Date(2024, 3, 3, 22, 0, 0, 0, time.UTC)
	h := domain.Hierarchy{BacklogTasks: []domain.Task{{StartDate: &late}}}
	r := ResolveRange(h, Range{})
	assert.Equal(t, day(2024, 3, 3), r.Start)
}

func TestFallbackRange(t *testing.T) {
	now := time.Date(2024, 8, 15, 13, 0, 0, 0, time.UTC)

	r := FallbackRange(now, 3)
	assert.Equal(t, day(2024, 5, 15), r.Start)
	assert.Equal(t, day(2024, 11, 15), r.End)

	def := FallbackRange(now, 0)
	assert.Equal(t, day(2024, 2, 15), def.Start)
	assert.Equal(t, day(2025, 2, 15), def.End)
}
