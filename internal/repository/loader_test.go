package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/alexanderramin/gantt/internal/testutil"
)

// seed stores h in position order the way the import service does.
func seed(t *testing.T, ctx context.Context, repos Repos, h domain.Hierarchy) {
	t.Helper()
	order := 0
	next := func() int { order++; return order }
	for i := range h.Projects {
		p := h.Projects[i]
		p.OrderIndex = next()
		require.NoError(t, repos.Projects.Create(ctx, &p))
		for j := range p.Sprints {
			s := p.Sprints[j]
			s.OrderIndex = next()
			require.NoError(t, repos.Sprints.Create(ctx, &s))
			for k := range s.Tasks {
				task := s.Tasks[k]
				task.OrderIndex = next()
				require.NoError(t, repos.Tasks.Create(ctx, &task))
			}
		}
	}
	for i := range h.BacklogTasks {
		task := h.BacklogTasks[i]
		task.OrderIndex = next()
		require.NoError(t, repos.Tasks.Create(ctx, &task))
	}
}

func TestLoadHierarchy_AssemblesTree(t *testing.T) {
	db := testutil.NewTestDB(t)
	repos := NewRepos(db)
	ctx := context.Background()

	web := testutil.NewTestProject("Website",
		testutil.WithSprints(
			testutil.NewTestSprint("S1", testutil.WithSprintStatus(domain.SprintStarted), testutil.WithTasks(
				testutil.NewTestTask("one"),
				testutil.NewTestTask("two"),
			)),
			testutil.NewTestSprint("S2"),
		))
	app := testutil.NewTestProject("App")
	h := domain.Hierarchy{
		Projects:     []domain.Project{web, app},
		BacklogTasks: []domain.Task{testutil.NewTestTask("later", testutil.WithBacklogProject(app.ID))},
	}
	seed(t, ctx, repos, h)

	got, err := LoadHierarchy(ctx, repos)
	require.NoError(t, err)

	require.Len(t, got.Projects, 2)
	assert.Equal(t, "Website", got.Projects[0].Name)
	require.Len(t, got.Projects[0].Sprints, 2)
	assert.Equal(t, domain.SprintStarted, got.Projects[0].Sprints[0].Status)
	require.Len(t, got.Projects[0].Sprints[0].Tasks, 2)
	assert.Equal(t, "one", got.Projects[0].Sprints[0].Tasks[0].Name)
	assert.Equal(t, "two", got.Projects[0].Sprints[0].Tasks[1].Name)
	assert.Empty(t, got.Projects[0].Sprints[1].Tasks)
	assert.Empty(t, got.Projects[1].Sprints)

	require.Len(t, got.BacklogTasks, 1)
	assert.Equal(t, app.ID, got.BacklogTasks[0].ProjectID)
	assert.Equal(t, h.TaskCount(), got.TaskCount())
}

func TestLoadHierarchy_Empty(t *testing.T) {
	db := testutil.NewTestDB(t)
	got, err := LoadHierarchy(context.Background(), NewRepos(db))
	require.NoError(t, err)
	assert.True(t, got.Empty())
}
