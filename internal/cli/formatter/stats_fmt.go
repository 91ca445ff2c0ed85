package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/gantt/internal/app"
	"github.com/alexanderramin/gantt/internal/health"
)

const statsProgressBarWidth = 10

var statsAlign = []Align{AlignLeft, AlignRight, AlignRight, AlignRight, AlignRight, AlignRight, AlignLeft}

// StatsBadges renders the one-line summary shown above the chart.
func StatsBadges(s health.Stats) string {
	parts := []string{
		StyleGreen.Render(fmt.Sprintf("%d Done", s.Done)),
		StyleBlue.Render(fmt.Sprintf("%d In Progress", s.InProgress)),
		StyleRed.Render(fmt.Sprintf("%d Delay", s.Delay)),
		StyleYellow.Render(fmt.Sprintf("%d At Risk", s.AtRisk)),
		Dim(fmt.Sprintf("%d Unplanned", s.Unplanned)),
	}
	return strings.Join(parts, "  ") + Dim(fmt.Sprintf("  (%d tasks)", s.Total))
}

// FormatStats renders the stats response as a boxed dashboard with an
// optional per-project table.
func FormatStats(resp *app.StatsResponse) string {
	var b strings.Builder
	b.WriteString(StatsBadges(resp.Stats) + "\n")

	if len(resp.Projects) > 0 {
		b.WriteString("\n")
		headers := []string{"PROJECT", "DONE", "IN PROG", "DELAY", "AT RISK", "UNPLANNED", "PROGRESS"}
		rows := make([][]string, 0, len(resp.Projects))
		for _, p := range resp.Projects {
			name := p.ProjectName
			if p.ProjectKey != "" {
				name += " " + Dim("["+p.ProjectKey+"]")
			}
			rows = append(rows, []string{
				Bold(name),
				fmt.Sprintf("%d", p.Stats.Done),
				fmt.Sprintf("%d", p.Stats.InProgress),
				countStyled(p.Stats.Delay, StyleRed),
				countStyled(p.Stats.AtRisk, StyleYellow),
				fmt.Sprintf("%d", p.Stats.Unplanned),
				RenderProgress(p.Stats.Done, p.Stats.Total, statsProgressBarWidth),
			})
		}
		b.WriteString(RenderTableAligned(headers, rows, statsAlign))
	}

	b.WriteString("\n" + Dim(fmt.Sprintf("data version %d", resp.DataVersion)))
	return RenderBox("Schedule health", b.String())
}

func countStyled(n int, style lipgloss.Style) string {
	s := fmt.Sprintf("%d", n)
	if n == 0 {
		return s
	}
	return style.Render(s)
}
