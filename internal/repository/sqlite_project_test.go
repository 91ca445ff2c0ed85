package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/gantt/internal/testutil"
)

func TestProjectRepo_CreateAndGetByID(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	proj := testutil.NewTestProject("Website",
		testutil.WithProjectKey("WEB"),
		testutil.WithProjectDates(testutil.Date(2024, 1, 1), testutil.Date(2024, 6, 30)))
	require.NoError(t, repo.Create(ctx, &proj))

	fetched, err := repo.GetByID(ctx, proj.ID)
	require.NoError(t, err)
	assert.Equal(t, proj.ID, fetched.ID)
	assert.Equal(t, "Website", fetched.Name)
	assert.Equal(t, "WEB", fetched.Key)
	require.NotNil(t, fetched.StartDate)
	require.NotNil(t, fetched.EndDate)
	assert.Equal(t, testutil.Date(2024, 1, 1), *fetched.StartDate)
	assert.Equal(t, testutil.Date(2024, 6, 30), *fetched.EndDate)
}

func TestProjectRepo_NullDatesRoundTrip(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	proj := testutil.NewTestProject("Undated")
	require.NoError(t, repo.Create(ctx, &proj))

	fetched, err := repo.GetByID(ctx, proj.ID)
	require.NoError(t, err)
	assert.Nil(t, fetched.StartDate)
	assert.Nil(t, fetched.EndDate)
}

func TestProjectRepo_GetByKey(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	proj := testutil.NewTestProject("Biology", testutil.WithProjectKey("BIO"))
	require.NoError(t, repo.Create(ctx, &proj))

	// Case-insensitive lookup.
	fetched, err := repo.GetByKey(ctx, "bio")
	require.NoError(t, err)
	assert.Equal(t, proj.ID, fetched.ID)
}

func TestProjectRepo_GetByID_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)

	_, err := repo.GetByID(context.Background(), "nonexistent")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "project not found")
}

func TestProjectRepo_ListOrdersByIndex(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	second := testutil.NewTestProject("Second")
	second.OrderIndex = 2
	first := testutil.NewTestProject("First")
	first.OrderIndex = 1
	require.NoError(t, repo.Create(ctx, &second))
	require.NoError(t, repo.Create(ctx, &first))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "First", list[0].Name)
	assert.Equal(t, "Second", list[1].Name)
}

func TestProjectRepo_DeleteAllCascades(t *testing.T) {
	db := testutil.NewTestDB(t)
	repos := NewRepos(db)
	ctx := context.Background()

	proj := testutil.NewTestProject("P")
	sprint := testutil.NewTestSprint("S")
	sprint.ProjectID = proj.ID
	require.NoError(t, repos.Projects.Create(ctx, &proj))
	require.NoError(t, repos.Sprints.Create(ctx, &sprint))

	require.NoError(t, repos.Projects.DeleteAll(ctx))

	sprints, err := repos.Sprints.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, sprints)
}
