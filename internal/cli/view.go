package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	usecase "github.com/alexanderramin/gantt/internal/app"
	"github.com/alexanderramin/gantt/internal/cli/formatter"
	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/alexanderramin/gantt/internal/hierarchy"
)

const (
	minChartWidth = 20
	chromeLines   = 8
)

// timelineLoadedMsg carries a rebuilt timeline into the view.
type timelineLoadedMsg struct {
	resp *usecase.TimelineResponse
	err  error
}

type ganttKeyMap struct {
	Up          key.Binding
	Down        key.Binding
	Toggle      key.Binding
	Granularity key.Binding
	Search      key.Binding
	ExpandAll   key.Binding
	CollapseAll key.Binding
	Clamp       key.Binding
	Refresh     key.Binding
	Yank        key.Binding
	Quit        key.Binding
}

func defaultGanttKeyMap() ganttKeyMap {
	return ganttKeyMap{
		Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Toggle:      key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "expand")),
		Granularity: key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "granularity")),
		Search:      key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		ExpandAll:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "expand all")),
		CollapseAll: key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "collapse all")),
		Clamp:       key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clamp")),
		Refresh:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Yank:        key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy key")),
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k ganttKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Granularity, k.Search, k.ExpandAll, k.CollapseAll, k.Clamp, k.Yank, k.Quit}
}

// ganttView is the interactive timeline: a navigable row list with
// expand/collapse, live search and granularity cycling.
type ganttView struct {
	ctx  context.Context
	app  *App
	req  usecase.TimelineRequest
	exp  hierarchy.Expansion
	keys ganttKeyMap

	resp    *usecase.TimelineResponse
	err     error
	loading bool

	cursor   int
	offset   int
	selected string

	search    textinput.Model
	searching bool

	// copy writes to the system clipboard; flash reports the outcome until
	// the next key press.
	copy  func(string) error
	flash string

	width  int
	height int
}

func newGanttView(ctx context.Context, app *App, req usecase.TimelineRequest) *ganttView {
	ti := textinput.New()
	ti.Prompt = formatter.StyleYellow.Render("/ ")
	ti.Placeholder = "key, name or assignee"
	ti.CharLimit = 80
	ti.SetValue(req.Keyword)

	return &ganttView{
		ctx:     ctx,
		app:     app,
		req:     req,
		exp:     hierarchy.NewExpansion(req.Expanded...),
		keys:    defaultGanttKeyMap(),
		loading: true,
		search:  ti,
		copy:    clipboard.WriteAll,
	}
}

func defaultViewRequest(app *App) usecase.TimelineRequest {
	return usecase.TimelineRequest{Granularity: app.Config.Granularity()}
}

func newViewCmd(app *App) *cobra.Command {
	req := usecase.TimelineRequest{}
	cmd := &cobra.Command{
		Use:   "view",
		Short: "Browse the timeline interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if req.Granularity == "" {
				req.Granularity = app.Config.Granularity()
			}
			return runView(cmd.Context(), app, req)
		},
	}
	addTimelineFlags(cmd.Flags(), &req)
	return cmd
}

func runView(ctx context.Context, app *App, req usecase.TimelineRequest) error {
	_, err := tea.NewProgram(newGanttView(ctx, app, req), tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}

func (v *ganttView) Init() tea.Cmd {
	return v.load()
}

// load rebuilds the timeline for the current request, expansion and search.
func (v *ganttView) load() tea.Cmd {
	req := v.req
	req.Keyword = v.search.Value()
	req.Expanded = v.exp.IDs()
	ctx, timeline := v.ctx, v.app.Timeline
	v.loading = true
	return func() tea.Msg {
		resp, err := timeline.BuildTimeline(ctx, req)
		return timelineLoadedMsg{resp: resp, err: err}
	}
}

func (v *ganttView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width, v.height = msg.Width, msg.Height
		v.scrollToCursor()
		return v, nil

	case timelineLoadedMsg:
		v.loading = false
		v.err = msg.err
		if msg.err != nil {
			return v, nil
		}
		v.resp = msg.resp
		v.exp = hierarchy.NewExpansion(msg.resp.Expanded...)
		v.req.ExpandAll = false
		v.restoreCursor()
		return v, nil

	case tea.KeyMsg:
		v.flash = ""
		if v.searching {
			return v.updateSearch(msg)
		}
		return v.updateNormal(msg)
	}
	return v, nil
}

func (v *ganttView) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Quit):
		return v, tea.Quit
	case key.Matches(msg, v.keys.Up):
		v.moveCursor(-1)
	case key.Matches(msg, v.keys.Down):
		v.moveCursor(1)
	case key.Matches(msg, v.keys.Toggle):
		row, ok := v.currentRow()
		if !ok || !row.Expandable {
			return v, nil
		}
		v.exp = v.exp.Toggle(row.ID)
		return v, v.load()
	case key.Matches(msg, v.keys.Granularity):
		v.req.Granularity = v.granularity().Next()
		return v, v.load()
	case key.Matches(msg, v.keys.ExpandAll):
		v.req.ExpandAll = true
		return v, v.load()
	case key.Matches(msg, v.keys.CollapseAll):
		v.exp = hierarchy.NewExpansion()
		return v, v.load()
	case key.Matches(msg, v.keys.Clamp):
		v.req.Clamp = !v.req.Clamp
		return v, v.load()
	case key.Matches(msg, v.keys.Refresh):
		return v, v.load()
	case key.Matches(msg, v.keys.Yank):
		v.yank()
	case key.Matches(msg, v.keys.Search):
		v.searching = true
		return v, v.search.Focus()
	case msg.Type == tea.KeyEsc && v.search.Value() != "":
		v.search.SetValue("")
		return v, v.load()
	}
	return v, nil
}

func (v *ganttView) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		v.searching = false
		v.search.Blur()
		if v.search.Value() == "" {
			return v, nil
		}
		v.search.SetValue("")
		return v, v.load()
	case tea.KeyEnter:
		v.searching = false
		v.search.Blur()
		return v, nil
	}

	before := v.search.Value()
	var cmd tea.Cmd
	v.search, cmd = v.search.Update(msg)
	if v.search.Value() == before {
		return v, cmd
	}
	v.cursor, v.offset = 0, 0
	return v, tea.Batch(v.load(), cmd)
}

// yank copies the selected row's issue key, or its id for rows without one.
func (v *ganttView) yank() {
	row, ok := v.currentRow()
	if !ok {
		return
	}
	text := row.Key
	if text == "" {
		text = row.ID
	}
	if err := v.copy(text); err != nil {
		v.flash = formatter.StyleRed.Render("copy failed: " + err.Error())
		return
	}
	v.flash = formatter.StyleGreen.Render("Copied " + text)
}

func (v *ganttView) granularity() domain.Granularity {
	switch {
	case v.req.Granularity != "":
		return v.req.Granularity
	case v.resp != nil:
		return v.resp.Granularity
	}
	return v.app.Config.Granularity()
}

func (v *ganttView) rows() []usecase.RowView {
	if v.resp == nil {
		return nil
	}
	return v.resp.Rows
}

func (v *ganttView) currentRow() (usecase.RowView, bool) {
	rows := v.rows()
	if v.cursor < 0 || v.cursor >= len(rows) {
		return usecase.RowView{}, false
	}
	return rows[v.cursor], true
}

func (v *ganttView) moveCursor(delta int) {
	n := len(v.rows())
	if n == 0 {
		return
	}
	v.cursor = min(max(v.cursor+delta, 0), n-1)
	v.selected = v.rows()[v.cursor].ID
	v.scrollToCursor()
}

// restoreCursor keeps the selected row under the cursor across reloads,
// falling back to the nearest index when the row disappeared.
func (v *ganttView) restoreCursor() {
	rows := v.rows()
	for i, r := range rows {
		if r.ID == v.selected {
			v.cursor = i
			v.scrollToCursor()
			return
		}
	}
	if len(rows) == 0 {
		v.cursor, v.offset, v.selected = 0, 0, ""
		return
	}
	v.cursor = min(v.cursor, len(rows)-1)
	v.selected = rows[v.cursor].ID
	v.scrollToCursor()
}

func (v *ganttView) pageSize() int {
	if v.height <= 0 {
		return len(v.rows())
	}
	return max(v.height-chromeLines, 1)
}

func (v *ganttView) scrollToCursor() {
	page := v.pageSize()
	if v.cursor < v.offset {
		v.offset = v.cursor
	}
	if v.cursor >= v.offset+page {
		v.offset = v.cursor - page + 1
	}
	v.offset = max(v.offset, 0)
}

func (v *ganttView) View() string {
	if v.err != nil {
		return "\n  " + formatter.StyleRed.Render("Error: "+v.err.Error()) + "\n\n  " + formatter.Dim("r: retry  q: quit")
	}
	if v.resp == nil {
		return "\n  " + formatter.Dim("Loading timeline...")
	}

	var b strings.Builder
	title := fmt.Sprintf("%s  %s  %s → %s",
		formatter.StyleHeader.Render("GANTT"),
		formatter.Bold(string(v.resp.Granularity)),
		v.resp.Range.Start, v.resp.Range.End,
	)
	if v.req.Clamp {
		title += "  " + formatter.Dim("[clamped]")
	}
	if v.loading {
		title += "  " + formatter.Dim("…")
	}
	b.WriteString(title + "\n")

	labelWidth, chartWidth := formatter.DefaultLabelWidth, formatter.DefaultChartWidth
	if v.width > 0 {
		labelWidth = min(formatter.DefaultLabelWidth, v.width/3)
		chartWidth = chartWidthFor(v.width, labelWidth)
	}

	page := *v.resp
	end := min(v.offset+v.pageSize(), len(page.Rows))
	page.Rows = page.Rows[min(v.offset, end):end]
	today := v.resp.GeneratedAt
	b.WriteString(formatter.FormatTimeline(&page, formatter.GanttOptions{
		ChartWidth: chartWidth,
		LabelWidth: labelWidth,
		Today:      &today,
		Cursor:     v.cursor - v.offset,
	}))

	if row, ok := v.currentRow(); ok {
		b.WriteString(v.detailLine(row) + "\n")
	}
	if v.flash != "" {
		b.WriteString(v.flash + "\n")
	}
	if v.searching || v.search.Value() != "" {
		b.WriteString(v.search.View() + "\n")
	}
	b.WriteString(v.hintBar())
	return b.String()
}

func (v *ganttView) detailLine(r usecase.RowView) string {
	parts := []string{formatter.Bold(r.Label), formatter.DateSpan(r.Start, r.End)}
	switch r.Kind {
	case hierarchy.RowTask:
		if r.Status != "" {
			parts = append(parts, r.Status)
		}
		if r.Assignee != "" {
			parts = append(parts, r.Assignee)
		}
		if end, err := domain.ParseOptionalDate(r.End); err == nil && end != nil {
			parts = append(parts, formatter.Dim(formatter.RelativeDateFrom(*end, v.resp.GeneratedAt)))
		}
		parts = append(parts, formatter.HealthIndicator(r.Health))
	case hierarchy.RowSprint:
		parts = append(parts, formatter.SprintStatusPill(r.SprintStatus))
		fallthrough
	default:
		if r.Expandable {
			parts = append(parts, formatter.Dim(fmt.Sprintf("%d items", r.ChildCount)))
		}
	}
	return strings.Join(parts, formatter.Dim(" · "))
}

func (v *ganttView) hintBar() string {
	hints := make([]string, 0, len(v.keys.ShortHelp()))
	for _, k := range v.keys.ShortHelp() {
		h := k.Help()
		hints = append(hints, formatter.Dim(h.Key+": "+h.Desc))
	}
	return strings.Join(hints, "  ")
}
