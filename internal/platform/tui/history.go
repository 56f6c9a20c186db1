package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/gridpath/internal/storage"
)

// History layout constants
const (
	minWidthForSidebar = 80  // Minimum width to show layout sidebar
	sidebarWidth       = 22  // Width of layout sidebar
	maxRuns            = 100 // Max runs to load
	allLayouts         = ""  // Sidebar entry matching every layout
)

var panelStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("240")).
	Padding(0, 1)

// HistoryModel is the Bubble Tea model for the run history screen.
type HistoryModel struct {
	layouts     []string // Layout IDs with runs; allLayouts first
	stats       map[string]*storage.LayoutStats
	cursor      int
	store       *storage.Store
	runs        []storage.Run
	table       table.Model
	help        help.Model
	keys        ListKeyMap
	width       int
	height      int
	quitting    bool
	goingBack   bool
	showSidebar bool
}

// NewHistoryModel creates a new history model. When layoutID names a
// layout with runs, it is selected first.
func NewHistoryModel(store *storage.Store, layoutID string, width, height int) HistoryModel {
	m := HistoryModel{
		layouts:     []string{allLayouts},
		store:       store,
		keys:        DefaultListKeyMap(),
		help:        help.New(),
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}

	if store != nil {
		if stats, err := store.AllLayoutStats(); err == nil {
			m.stats = stats
			ids := make([]string, 0, len(stats))
			for id := range stats {
				ids = append(ids, id)
			}
			sort.Strings(ids)
			m.layouts = append(m.layouts, ids...)
		}
	}
	for i, id := range m.layouts {
		if id == layoutID {
			m.cursor = i
		}
	}

	m.table = m.createTable()
	m.loadRuns()
	return m
}

// createTable creates a new table sized for the window.
func (m *HistoryModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Layout", Width: 12},
		{Title: "Outcome", Width: 9},
		{Title: "Steps", Width: 6},
		{Title: "Cost", Width: 8},
		{Title: "Expanded", Width: 9},
		{Title: "Date", Width: 13},
	}

	tableWidth := m.width - 4
	if m.showSidebar {
		tableWidth -= sidebarWidth + 3
	}
	if tableWidth < 70 {
		columns = columns[1:]
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

func (m *HistoryModel) current() string {
	return m.layouts[m.cursor]
}

// loadRuns loads runs for the selected layout.
func (m *HistoryModel) loadRuns() {
	m.runs = nil
	if m.store != nil {
		if runs, err := m.store.RecentRuns(m.current(), maxRuns); err == nil {
			m.runs = runs
		}
	}
	m.updateTableRows()
}

// updateTableRows updates the table with current runs.
func (m *HistoryModel) updateTableRows() {
	withLayout := len(m.table.Columns()) == 6
	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		steps, cost := "-", "-"
		if r.Found() {
			steps = fmt.Sprintf("%d", r.Steps)
			cost = fmt.Sprintf("%.2f", r.Cost)
		}
		row := table.Row{
			r.Outcome,
			steps,
			cost,
			fmt.Sprintf("%d", r.Expanded),
			r.CreatedAt.Format("Jan 02 15:04"),
		}
		if withLayout {
			row = append(table.Row{r.LayoutID}, row...)
		}
		rows[i] = row
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the history model.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the history screen.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Next):
			m.cursor = (m.cursor + 1) % len(m.layouts)
			m.loadRuns()
			return m, nil

		case key.Matches(msg, m.keys.Prev):
			m.cursor = (m.cursor + len(m.layouts) - 1) % len(m.layouts)
			m.loadRuns()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func layoutLabel(id string) string {
	if id == allLayouts {
		return "All layouts"
	}
	return id
}

// View renders the history screen.
func (m HistoryModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	title := fmt.Sprintf("RUN HISTORY - %s", layoutLabel(m.current()))
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(centerText(m.summary(), m.width)))
	b.WriteString("\n\n")

	if m.showSidebar {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), "  ", panelStyle.Render(m.renderTableContent())))
	} else {
		b.WriteString(centerText(fmt.Sprintf("< %s >", layoutLabel(m.current())), m.width))
		b.WriteString("\n\n")
		b.WriteString(panelStyle.Render(m.renderTableContent()))
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// summary describes the aggregate stats of the selected layout.
func (m HistoryModel) summary() string {
	st, ok := m.stats[m.current()]
	if !ok {
		return fmt.Sprintf("%d runs shown", len(m.runs))
	}
	line := fmt.Sprintf("%d runs, %d found a path", st.Runs, st.Found)
	if st.Found > 0 {
		line += fmt.Sprintf(", best cost %.2f", st.BestCost)
	}
	return line
}

func (m HistoryModel) renderSidebar() string {
	var sidebar strings.Builder
	sidebar.WriteString("Layouts\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, id := range m.layouts {
		name := layoutLabel(id)
		if maxLen := sidebarWidth - 6; len(name) > maxLen {
			name = name[:maxLen-1] + "."
		}
		if i == m.cursor {
			sidebar.WriteString(titleStyle.Render("> " + name))
		} else {
			sidebar.WriteString("  " + name)
		}
		sidebar.WriteString("\n")
	}

	return panelStyle.Width(sidebarWidth).Render(sidebar.String())
}

// renderTableContent renders the table or empty message.
func (m HistoryModel) renderTableContent() string {
	if len(m.runs) == 0 {
		return dimStyle.Italic(true).Padding(2, 4).
			Render("No runs recorded yet.\nRun a search to start the history!")
	}
	return m.table.View()
}

// Runs returns the runs currently listed.
func (m HistoryModel) Runs() []storage.Run {
	return m.runs
}

// Selected returns the layout ID being shown; empty means all layouts.
func (m HistoryModel) Selected() string {
	return m.current()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m HistoryModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m HistoryModel) IsQuitting() bool {
	return m.quitting
}

// RunHistory runs the history screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunHistory(store *storage.Store, layoutID string, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(NewHistoryModel(store, layoutID, width, height), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(HistoryModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
