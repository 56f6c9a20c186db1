package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/gridpath/internal/core"
)

// EditorKeyMap defines the key bindings for the grid editor.
type EditorKeyMap struct {
	Up          key.Binding
	Down        key.Binding
	Left        key.Binding
	Right       key.Binding
	Paint       key.Binding
	Erase       key.Binding
	Spawn       key.Binding
	Target      key.Binding
	Confirm     key.Binding
	Run         key.Binding
	ClearSearch key.Binding
	ClearGrid   key.Binding
	Overlay     key.Binding
	Save        key.Binding
	Faster      key.Binding
	Slower      key.Binding
	Help        key.Binding
	Back        key.Binding
	Quit        key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k EditorKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Paint, k.Spawn, k.Target, k.Run, k.ClearSearch, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k EditorKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Paint, k.Erase, k.Spawn, k.Target, k.Confirm},
		{k.Run, k.ClearSearch, k.ClearGrid, k.Overlay},
		{k.Faster, k.Slower, k.Save, k.Back, k.Quit},
	}
}

// DefaultEditorKeyMap returns default key bindings.
func DefaultEditorKeyMap() EditorKeyMap {
	return EditorKeyMap{
		Up:          key.NewBinding(key.WithKeys("up", "k", "w"), key.WithHelp("↑/k", "up")),
		Down:        key.NewBinding(key.WithKeys("down", "j", "s"), key.WithHelp("↓/j", "down")),
		Left:        key.NewBinding(key.WithKeys("left", "h", "a"), key.WithHelp("←/h", "left")),
		Right:       key.NewBinding(key.WithKeys("right", "l", "d"), key.WithHelp("→/l", "right")),
		Paint:       key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "wall/place")),
		Erase:       key.NewBinding(key.WithKeys("x", "backspace"), key.WithHelp("x", "erase")),
		Spawn:       key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "spawn")),
		Target:      key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "target")),
		Confirm:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "next")),
		Run:         key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "run")),
		ClearSearch: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear search")),
		ClearGrid:   key.NewBinding(key.WithKeys("C"), key.WithHelp("C", "clear grid")),
		Overlay:     key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "h-cost overlay")),
		Save:        key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save layout")),
		Faster:      key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "faster")),
		Slower:      key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "slower")),
		Help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Back:        key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc/b", "menu")),
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// Action translates a key message to an editor action.
// Keys handled by the platform itself (help, speed) map to ActionNone.
func (k EditorKeyMap) Action(msg tea.KeyMsg) core.Action {
	bindings := []struct {
		binding key.Binding
		action  core.Action
	}{
		{k.Quit, core.ActionQuit},
		{k.Back, core.ActionBack},
		{k.Up, core.ActionUp},
		{k.Down, core.ActionDown},
		{k.Left, core.ActionLeft},
		{k.Right, core.ActionRight},
		{k.Paint, core.ActionPaint},
		{k.Erase, core.ActionErase},
		{k.Spawn, core.ActionPlaceSpawn},
		{k.Target, core.ActionPlaceTarget},
		{k.Confirm, core.ActionConfirm},
		{k.Run, core.ActionRun},
		{k.ClearSearch, core.ActionClearSearch},
		{k.ClearGrid, core.ActionClearGrid},
		{k.Overlay, core.ActionOverlay},
		{k.Save, core.ActionSave},
	}
	for _, b := range bindings {
		if key.Matches(msg, b.binding) {
			return b.action
		}
	}
	return core.ActionNone
}

// ListKeyMap defines the key bindings shared by the menu and history screens.
type ListKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Select  key.Binding
	Next    key.Binding
	Prev    key.Binding
	History key.Binding
	Back    key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ListKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.History, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ListKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Next, k.Prev},
		{k.Select, k.History, k.Back, k.Quit},
	}
}

// DefaultListKeyMap returns default key bindings.
func DefaultListKeyMap() ListKeyMap {
	return ListKeyMap{
		Up:      key.NewBinding(key.WithKeys("up", "k", "w"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j", "s"), key.WithHelp("↓/j", "down")),
		Select:  key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "open")),
		Next:    key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab", "next layout")),
		Prev:    key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("S-tab", "prev layout")),
		History: key.NewBinding(key.WithKeys("H"), key.WithHelp("H", "run history")),
		Back:    key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc/b", "back")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}
