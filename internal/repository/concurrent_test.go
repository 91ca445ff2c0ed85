package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/alexanderramin/gantt/internal/db"
	"github.com/alexanderramin/gantt/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestConcurrentAccess_LoadDuringWrite verifies that concurrent LoadHierarchy
// calls see consistent snapshots while tasks are being written. The HTTP
// server and the watcher hit the store in exactly this pattern.
func TestConcurrentAccess_LoadDuringWrite(t *testing.T) {
	database := testutil.NewFileTestDB(t)
	ctx := context.Background()
	repos := NewRepos(database)

	proj := testutil.NewTestProject("ReadWrite")
	require.NoError(t, repos.Projects.Create(ctx, &proj))
	sprint := testutil.NewTestSprint("Sprint")
	sprint.ProjectID = proj.ID
	require.NoError(t, repos.Sprints.Create(ctx, &sprint))

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 20; i++ {
			task := testutil.NewTestTask(fmt.Sprintf("Item-%d", i))
			task.ProjectID = proj.ID
			task.SprintID = &sprint.ID
			if err := repos.Tasks.Create(ctx, &task); err != nil {
				t.Errorf("writer: create task %d: %v", i, err)
				return
			}
		}
	}()

	for r := 0; r < 5; r++ {
		wg.Add(1)
		go func(reader int) {
			defer wg.Done()
			for i := 0; i < 10; i++ {
				h, err := LoadHierarchy(ctx, repos)
				if err != nil {
					t.Errorf("reader %d: load hierarchy: %v", reader, err)
					return
				}
				if len(h.Projects) != 1 {
					t.Errorf("reader %d: expected 1 project, got %d", reader, len(h.Projects))
					return
				}
				if len(h.BacklogTasks) != 0 {
					t.Errorf("reader %d: sprint task leaked into backlog", reader)
				}
			}
		}(r)
	}

	wg.Wait()

	h, err := LoadHierarchy(ctx, repos)
	require.NoError(t, err)
	assert.Equal(t, 20, h.TaskCount())
}

// TestConcurrentAccess_VersionBumpsAreSerialized verifies that concurrent
// imports never hand out the same data version twice.
func TestConcurrentAccess_VersionBumpsAreSerialized(t *testing.T) {
	database := testutil.NewFileTestDB(t)
	ctx := context.Background()
	uow := db.NewSQLiteUnitOfWork(database)

	const workers = 8
	var (
		mu   sync.Mutex
		seen = make(map[int64]bool)
		wg   sync.WaitGroup
	)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
				v, err := NewSQLiteVersionRepo(tx).Bump(ctx)
				if err != nil {
					return err
				}
				mu.Lock()
				defer mu.Unlock()
				if seen[v] {
					return fmt.Errorf("duplicate version %d", v)
				}
				seen[v] = true
				return nil
			})
			if err != nil {
				t.Errorf("bump: %v", err)
			}
		}()
	}
	wg.Wait()

	v, err := NewSQLiteVersionRepo(database).Get(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, workers, v)
}
