package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/gantt/internal/db"
	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/alexanderramin/gantt/internal/importer"
	"github.com/alexanderramin/gantt/internal/testutil"
)

// testNow sits in the first sprint: WEB-1 is in progress, WEB-2 is due in two
// days, WEB-3 is overdue, APP-1 is done and WEB-9 has no dates.
var testNow = time.Date(2024, time.January, 8, 15, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

func strPtr(s string) *string { return &s }

func timePtr(t time.Time) *time.Time { return &t }

func samplePayload() *importer.Payload {
	return &importer.Payload{
		Projects: []importer.ProjectPayload{
			{
				ID:        "p-web",
				Name:      "Website Relaunch",
				Key:       "WEB",
				StartDate: strPtr("2024-01-01"),
				EndDate:   strPtr("2024-03-31"),
				Sprints: []importer.SprintPayload{
					{
						ID:        "s-1",
						Name:      "Sprint 1",
						StartDate: strPtr("2024-01-01"),
						EndDate:   strPtr("2024-01-14"),
						Status:    "started",
						Tasks: []importer.TaskPayload{
							{
								ID: "t-1", Key: "WEB-1", Name: "Fix login bug",
								StartDate: strPtr("2024-01-02"), DueDate: strPtr("2024-01-05"),
								Assignee: &importer.AssigneeRef{ID: "u-ada", Name: "Ada Lovelace"},
								Status:   importer.StatusRef{Name: "Code Review", Category: "In Progress"},
							},
							{
								ID: "t-2", Key: "WEB-2", Name: "Design header",
								EndDate:  strPtr("2024-01-10"),
								Assignee: &importer.AssigneeRef{Name: "Grace Hopper"},
								Status:   importer.StatusRef{Name: "To Do", Category: "To Do"},
							},
							{
								ID: "t-3", Key: "WEB-3", Name: "Write copy",
								DueDate: strPtr("2024-01-03"),
								Status:  importer.StatusRef{Name: "To Do", Category: "To Do"},
							},
						},
					},
				},
			},
			{
				ID:   "p-app",
				Name: "Mobile App",
				Key:  "APP",
				Sprints: []importer.SprintPayload{
					{
						ID:     "s-hard",
						Name:   "Hardening",
						Status: "not_started",
						Tasks: []importer.TaskPayload{
							{
								ID: "t-4", Key: "APP-1", Name: "Crash on launch",
								EndDate: strPtr("2024-02-01"),
								Status:  importer.StatusRef{Name: "Closed", Category: "Done"},
							},
						},
					},
				},
			},
		},
		BacklogTasks: []importer.TaskPayload{
			{
				ID: "t-9", Key: "WEB-9", Name: "Triage reports", ProjectID: "p-web",
				Status: importer.StatusRef{Name: "To Do", Category: "To Do"},
			},
		},
	}
}

func sampleHierarchy(t *testing.T) domain.Hierarchy {
	t.Helper()
	h, err := importer.Convert(samplePayload())
	require.NoError(t, err)
	return h
}

// seedSample imports the sample payload and returns the database and a
// unit of work on it.
func seedSample(t *testing.T) (*sql.DB, db.UnitOfWork) {
	t.Helper()
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)
	_, err := NewImportService(uow).ImportPayload(context.Background(), samplePayload())
	require.NoError(t, err)
	return database, uow
}

type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (r *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recordingObserver) last() UseCaseEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.events[len(r.events)-1]
}
