package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestValidateKey_Valid(t *testing.T) {
	cases := []string{"", "WEB", "APP2", "AB", "PLATFORM01"}
	for _, key := range cases {
		p := &Project{Key: key}
		assert.NoError(t, p.ValidateKey(), "should accept %q", key)
	}
}

func TestValidateKey_Invalid(t *testing.T) {
	cases := []string{"web", "A", "2WEB", "WEB-1", "ABCDEFGHIJK"}
	for _, key := range cases {
		p := &Project{Key: key}
		err := p.ValidateKey()
		require.Error(t, err, "should reject %q", key)
		assert.Contains(t, err.Error(), "uppercase")
	}
}

func TestDisplayID(t *testing.T) {
	assert.Equal(t, "WEB", (&Project{ID: "0123456789", Key: "WEB"}).DisplayID())
	assert.Equal(t, "01234567", (&Project{ID: "0123456789"}).DisplayID())
	assert.Equal(t, "abc", (&Project{ID: "abc"}).DisplayID())
}

func TestHierarchy_TaskCountIncludesBacklog(t *testing.T) {
	h := Hierarchy{
		Projects: []Project{
			{ID: "p1", Sprints: []Sprint{
				{ID: "s1", Tasks: []Task{{ID: "t1"}, {ID: "t2"}}},
				{ID: "s2", Tasks: []Task{{ID: "t3"}}},
			}},
			{ID: "p2"},
		},
		BacklogTasks: []Task{{ID: "b1"}, {ID: "b2"}},
	}
	assert.Equal(t, 5, h.TaskCount())
	assert.False(t, h.Empty())
	assert.True(t, Hierarchy{}.Empty())
}

func TestHierarchy_CloneSharesNothing(t *testing.T) {
	sprintID := "s1"
	h := Hierarchy{
		Projects: []Project{{
			ID:        "p1",
			StartDate: datePtr(2024, 1, 1),
			Sprints: []Sprint{{
				ID:      "s1",
				EndDate: datePtr(2024, 1, 14),
				Tasks: []Task{{
					ID:       "t1",
					SprintID: &sprintID,
					DueDate:  datePtr(2024, 1, 10),
					Assignee: &Assignee{ID: "u1", Name: "Ada"},
				}},
			}},
		}},
		BacklogTasks: []Task{{ID: "b1", StartDate: datePtr(2024, 2, 1)}},
	}

	c := h.Clone()
	require.Equal(t, h, c)

	c.Projects[0].Name = "changed"
	*c.Projects[0].StartDate = time.Time{}
	c.Projects[0].Sprints[0].Tasks[0].Assignee.Name = "Grace"
	*c.Projects[0].Sprints[0].Tasks[0].SprintID = "other"
	*c.BacklogTasks[0].StartDate = time.Time{}

	assert.Equal(t, "", h.Projects[0].Name)
	assert.Equal(t, *datePtr(2024, 1, 1), *h.Projects[0].StartDate)
	assert.Equal(t, "Ada", h.Projects[0].Sprints[0].Tasks[0].Assignee.Name)
	assert.Equal(t, "s1", *h.Projects[0].Sprints[0].Tasks[0].SprintID)
	assert.Equal(t, *datePtr(2024, 2, 1), *h.BacklogTasks[0].StartDate)
}

func TestHierarchy_WalkTasksVisitsBacklogLast(t *testing.T) {
	h := Hierarchy{
		Projects:     []Project{{Sprints: []Sprint{{Tasks: []Task{{ID: "a"}, {ID: "b"}}}}}},
		BacklogTasks: []Task{{ID: "c"}},
	}
	var seen []string
	h.WalkTasks(func(t *Task) { seen = append(seen, t.ID) })
	assert.Equal(t, []string{"a", "b", "c"}, seen)
}

func TestTask_EffectiveEndFallsBackToDue(t *testing.T) {
	due := datePtr(2024, 3, 1)
	end := datePtr(2024, 3, 5)

	assert.Equal(t, end, (&Task{EndDate: end, DueDate: due}).EffectiveEnd())
	assert.Equal(t, due, (&Task{DueDate: due}).EffectiveEnd())
	assert.Nil(t, (&Task{}).EffectiveEnd())
}

func TestTask_IsUnplanned(t *testing.T) {
	assert.True(t, (&Task{}).IsUnplanned())
	assert.False(t, (&Task{StartDate: datePtr(2024, 1, 1)}).IsUnplanned())
	assert.False(t, (&Task{DueDate: datePtr(2024, 1, 1)}).IsUnplanned())
}

func TestTask_IsBacklog(t *testing.T) {
	sid := "s1"
	assert.True(t, (&Task{}).IsBacklog())
	assert.False(t, (&Task{SprintID: &sid}).IsBacklog())
}
