package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/gridpath/internal/config"
	"github.com/vovakirdan/gridpath/internal/core"
	"github.com/vovakirdan/gridpath/internal/editor"
	"github.com/vovakirdan/gridpath/internal/layout"
	"github.com/vovakirdan/gridpath/internal/pathfind"
	"github.com/vovakirdan/gridpath/internal/registry"
	"github.com/vovakirdan/gridpath/internal/storage"
)

// helpRows is the space reserved under the editor screen for the help bar.
const helpRows = 1

// EditorOptions configures an editor session.
type EditorOptions struct {
	LayoutID     string
	Speed        config.SpeedPreset
	StepsPerTick int            // Overrides Speed when > 0
	Store        *storage.Store // Optional; runs and saved layouts go here
	LayoutsDir   string         // Optional; saved layouts are also written here as YAML
	Logger       *log.Logger
}

// GridSize returns the grid size that fits a terminal of cfg's size
// alongside the editor HUD and help bar.
func GridSize(cfg core.RuntimeConfig) core.Size {
	return cfg.FitGrid(editor.CellWidth, editor.HUDRows+helpRows)
}

// Model is the Bubble Tea model for the grid editor.
type Model struct {
	editor   *editor.Editor
	screen   *core.Screen
	opts     EditorOptions
	config   core.RuntimeConfig
	keys     EditorKeyMap
	help     help.Model
	input    core.InputFrame
	dragging bool
	notice   string
	quitting bool
	back     bool
}

// NewModel creates an editor model over g.
func NewModel(g *pathfind.Grid, cfg core.RuntimeConfig, opts EditorOptions) Model {
	if opts.Speed == "" {
		opts.Speed = config.SpeedNormal
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	steps := opts.Speed.StepsPerTick()
	if opts.StepsPerTick > 0 {
		steps = opts.StepsPerTick
	}
	ed := editor.New(g, editor.Options{
		LayoutID:     opts.LayoutID,
		StepsPerTick: steps,
	})
	ed.OnFinish = recordRun(opts.Store, opts.Logger)

	return Model{
		editor: ed,
		screen: newEditorScreen(cfg),
		opts:   opts,
		config: cfg,
		keys:   DefaultEditorKeyMap(),
		help:   help.New(),
		input:  core.NewInputFrame(),
	}
}

func newEditorScreen(cfg core.RuntimeConfig) *core.Screen {
	return core.NewScreen(core.Max(cfg.ScreenW, 1), core.Max(cfg.ScreenH-helpRows, 1))
}

// recordRun returns the hook that persists each finished search.
func recordRun(store *storage.Store, logger *log.Logger) func(editor.Finished) {
	return func(f editor.Finished) {
		logger.Debug("search finished",
			"layout", f.LayoutID,
			"source", f.SourceID,
			"outcome", f.Result.Outcome,
			"expanded", f.Result.Expanded,
		)
		if store == nil {
			return
		}
		run := storage.NewRun(f.LayoutID, f.Width, f.Height, f.Spawn, f.Target, f.Result)
		if _, err := store.SaveRun(run); err != nil {
			logger.Warn("could not record run", "error", err)
		}
	}
}

// Editor exposes the underlying editor.
func (m Model) Editor() *editor.Editor {
	return m.editor
}

// Speed returns the current animation speed.
func (m Model) Speed() config.SpeedPreset {
	return m.opts.Speed
}

// Notice returns the last platform message, such as a save confirmation.
func (m Model) Notice() string {
	return m.notice
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(core.Max(msg.Width, 1), core.Max(msg.Height-helpRows, 1))
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey records the key's action for the next tick. Speed and help
// keys are handled here since the editor does not know about them.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Faster):
		m.setSpeed(m.opts.Speed.Faster())
		return m, nil
	case key.Matches(msg, m.keys.Slower):
		m.setSpeed(m.opts.Speed.Slower())
		return m, nil
	}

	action := m.keys.Action(msg)
	if action == core.ActionQuit {
		m.quitting = true
		return m, tea.Quit
	}
	if action != core.ActionNone {
		m.input.Set(action)
	}
	return m, nil
}

// handleMouse paints on press and while dragging with the left button held.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonLeft:
			m.dragging = true
			m.input.SetClick(msg.X, msg.Y, false)
		case tea.MouseButtonRight:
			m.input.SetClick(msg.X, msg.Y, true)
		}
	case tea.MouseActionMotion:
		if m.dragging && msg.Button == tea.MouseButtonLeft {
			m.input.SetClick(msg.X, msg.Y, false)
		}
	case tea.MouseActionRelease:
		m.dragging = false
	}
	return m, nil
}

func (m *Model) setSpeed(p config.SpeedPreset) {
	m.opts.Speed = p
	m.editor.SetStepsPerTick(p.StepsPerTick())
	m.notice = fmt.Sprintf("speed: %s", p)
}

// handleTick applies the collected input to the editor.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	signal := m.editor.Tick(m.input)
	m.input.Clear()

	switch signal {
	case editor.SignalQuit:
		m.quitting = true
		return m, tea.Quit
	case editor.SignalBack:
		m.back = true
		return m, tea.Quit
	case editor.SignalSave:
		m.saveLayout()
	}

	return m, tickCmd(m.config.TickRate)
}

// saveLayout stores the current grid. Built-in IDs are never overwritten;
// edits of a built-in layout are saved under a derived ID.
func (m *Model) saveLayout() {
	id := SaveID(m.editor.LayoutID(), time.Now())
	lay := m.editor.Layout(id)
	lay.ID = id

	var saved []string
	if m.opts.Store != nil {
		if err := m.opts.Store.SaveLayout(lay); err != nil {
			m.notice = err.Error()
			m.opts.Logger.Warn("could not save layout", "id", id, "error", err)
			return
		}
		saved = append(saved, "database")
	}
	if m.opts.LayoutsDir != "" {
		path, err := layout.NewLoader(config.ExpandHome(m.opts.LayoutsDir)).Save(lay)
		if err != nil {
			m.notice = err.Error()
			m.opts.Logger.Warn("could not write layout file", "id", id, "error", err)
			return
		}
		saved = append(saved, path)
	}

	if len(saved) == 0 {
		m.notice = "no database or layout directory configured; layout not saved"
		return
	}
	m.editor.MarkSaved(id)
	m.notice = fmt.Sprintf("saved %q to %s", id, strings.Join(saved, " and "))
	m.opts.Logger.Info("layout saved", "id", id)
}

// SaveID picks the ID a layout is saved under.
func SaveID(current string, now time.Time) string {
	switch {
	case current == "":
		return "untitled-" + now.Format("20060102-150405")
	case registry.Exists(current):
		return current + "-edit"
	default:
		return current
	}
}

// View renders the editor and help bar.
func (m Model) View() string {
	if m.quitting || m.back {
		return ""
	}

	m.screen.Clear()
	m.editor.Render(m.screen)

	var b strings.Builder
	b.WriteString(RenderScreen(m.screen))
	b.WriteString("\n")
	if m.notice != "" {
		b.WriteString(noticeStyle.Render(m.notice))
		b.WriteString("  ")
	}
	b.WriteString(dimStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.back
}

// Run starts the Bubble Tea program with an editor over g.
// It returns true when the user asked to go back rather than quit.
func Run(g *pathfind.Grid, cfg core.RuntimeConfig, opts EditorOptions) (bool, error) {
	model := NewModel(g, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	if m, ok := final.(Model); ok {
		return m.BackToMenu(), nil
	}
	return false, nil
}
