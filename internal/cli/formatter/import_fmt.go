package formatter

import (
	"fmt"

	"github.com/alexanderramin/gantt/internal/app"
)

// FormatImportResult renders a one-line import summary.
func FormatImportResult(r *app.ImportResult) string {
	return fmt.Sprintf("%s %d projects, %d sprints, %d tasks (%d backlog), %d assignees %s",
		StyleGreen.Render("Imported"),
		r.ProjectCount, r.SprintCount, r.TaskCount, r.BacklogCount, r.AssigneeCount,
		Dim(fmt.Sprintf("version %d", r.DataVersion)),
	)
}
