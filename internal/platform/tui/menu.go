package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/gridpath/internal/catalog"
	"github.com/vovakirdan/gridpath/internal/core"
	"github.com/vovakirdan/gridpath/internal/storage"
)

// MenuModel is the Bubble Tea model for the layout picker.
type MenuModel struct {
	entries     []catalog.Entry
	stats       map[string]*storage.LayoutStats
	cursor      int
	width       int
	height      int
	config      core.RuntimeConfig
	keys        ListKeyMap
	help        help.Model
	quitting    bool
	selected    *catalog.Entry
	openHistory bool
}

// NewMenuModel creates a new menu model listing every layout in cat.
func NewMenuModel(cat *catalog.Catalog, cfg core.RuntimeConfig) MenuModel {
	m := MenuModel{
		entries: cat.List(),
		width:   cfg.ScreenW,
		height:  cfg.ScreenH,
		config:  cfg,
		keys:    DefaultListKeyMap(),
		help:    help.New(),
	}
	if cat.Store != nil {
		if stats, err := cat.Store.AllLayoutStats(); err == nil {
			m.stats = stats
		}
	}
	return m
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.help.Width = msg.Width
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit), key.Matches(msg, m.keys.Back):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.entries)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Select):
		if len(m.entries) > 0 {
			selected := m.entries[m.cursor]
			m.selected = &selected
			return m, tea.Quit
		}

	case key.Matches(msg, m.keys.History):
		m.openHistory = true
		return m, tea.Quit
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(titleStyle.Render(centerText("  G R I D P A T H  ", m.width)))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select a layout", m.width))
	b.WriteString("\n\n")

	for i, e := range m.entries {
		if i == m.cursor {
			b.WriteString(titleStyle.Render(centerText("> "+m.entryLabel(e), m.width)))
		} else {
			b.WriteString(centerText("  "+m.entryLabel(e), m.width))
		}
		b.WriteString("\n")
	}
	if len(m.entries) == 0 {
		b.WriteString(dimStyle.Render(centerText("No layouts found.", m.width)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(centerText(m.help.View(m.keys), m.width)))
	b.WriteString("\n")

	return b.String()
}

func (m MenuModel) entryLabel(e catalog.Entry) string {
	label := e.Title
	if e.Source != catalog.SourceBuiltin {
		label = fmt.Sprintf("%s (%s)", label, e.Source)
	}
	if st, ok := m.stats[e.ID]; ok && st.Found > 0 {
		label = fmt.Sprintf("%s  best %.2f", label, st.BestCost)
	}
	return label
}

// Selected returns the selected entry, or nil if none selected.
func (m MenuModel) Selected() *catalog.Entry {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsHistory returns true if user requested the run history.
func (m MenuModel) WantsHistory() bool {
	return m.openHistory
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	n := len([]rune(text))
	if n >= width {
		return text
	}
	return strings.Repeat(" ", (width-n)/2) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	LayoutID     string
	Config       core.RuntimeConfig
	WantsHistory bool
	Quit         bool
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(cat *catalog.Catalog, cfg core.RuntimeConfig) (MenuResult, error) {
	p := tea.NewProgram(NewMenuModel(cat, cfg), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}
	return m.Result(), nil
}

// Result summarises how the menu was left.
func (m MenuModel) Result() MenuResult {
	result := MenuResult{Config: m.config}
	switch {
	case m.openHistory:
		result.WantsHistory = true
	case m.selected != nil:
		result.LayoutID = m.selected.ID
	default:
		result.Quit = true
	}
	return result
}
