package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/gridpath/internal/catalog"
	"github.com/vovakirdan/gridpath/internal/layout"
	"github.com/vovakirdan/gridpath/internal/pathfind"
	"github.com/vovakirdan/gridpath/internal/storage"
)

func TestMenuSelect(t *testing.T) {
	cat := catalog.New(nil, "")
	entries := cat.List()
	if len(entries) < 2 {
		t.Fatalf("catalog lists %d layouts, expected at least 2", len(entries))
	}

	m := tea.Model(NewMenuModel(cat, testConfig))
	m = send(t, m, runes("j"), tea.KeyMsg{Type: tea.KeyEnter})

	result := m.(MenuModel).Result()
	if result.LayoutID != entries[1].ID {
		t.Errorf("Result().LayoutID = %q, expected %q", result.LayoutID, entries[1].ID)
	}
	if result.Quit || result.WantsHistory {
		t.Errorf("Result() = %+v, expected only a selection", result)
	}
}

func TestMenuCursorClamped(t *testing.T) {
	cat := catalog.New(nil, "")
	m := tea.Model(NewMenuModel(cat, testConfig))
	m = send(t, m, runes("k"), runes("k"), tea.KeyMsg{Type: tea.KeyEnter})

	if got := m.(MenuModel).Result().LayoutID; got != cat.List()[0].ID {
		t.Errorf("Result().LayoutID = %q, expected first entry", got)
	}
}

func TestMenuHistoryAndQuit(t *testing.T) {
	cat := catalog.New(nil, "")

	m := send(t, NewMenuModel(cat, testConfig), runes("H"))
	if !m.(MenuModel).Result().WantsHistory {
		t.Error("H did not request the history screen")
	}

	m = send(t, NewMenuModel(cat, testConfig), runes("q"))
	if !m.(MenuModel).Result().Quit {
		t.Error("q did not quit the menu")
	}
}

func TestMenuShowsSavedLayoutsAndBestCost(t *testing.T) {
	store := openStore(t)
	g := decode(t, "S.T")
	if err := store.SaveLayout(layout.FromGrid("custom", "My Custom", g)); err != nil {
		t.Fatalf("SaveLayout() error: %v", err)
	}
	res, err := pathfind.FindGridPath(g)
	if err != nil {
		t.Fatalf("FindGridPath() error: %v", err)
	}
	spawn, _ := g.Spawn()
	target, _ := g.Target()
	if _, err := store.SaveRun(storage.NewRun("custom", 3, 1, spawn, target, res)); err != nil {
		t.Fatalf("SaveRun() error: %v", err)
	}

	view := NewMenuModel(catalog.New(store, ""), testConfig).View()
	if !strings.Contains(view, "My Custom (saved)") {
		t.Errorf("View() missing saved layout entry:\n%s", view)
	}
	if !strings.Contains(view, "best 2.00") {
		t.Errorf("View() missing best cost:\n%s", view)
	}
}

func saveRuns(t *testing.T, store *storage.Store, layoutID string, n int) {
	t.Helper()
	g := decode(t, "S..T")
	res, err := pathfind.FindGridPath(g)
	if err != nil {
		t.Fatalf("FindGridPath() error: %v", err)
	}
	for i := 0; i < n; i++ {
		if _, err := store.SaveRun(storage.NewRun(layoutID, 4, 1, pathfind.P(0, 0), pathfind.P(3, 0), res)); err != nil {
			t.Fatalf("SaveRun() error: %v", err)
		}
	}
}

func TestHistoryFiltersByLayout(t *testing.T) {
	store := openStore(t)
	saveRuns(t, store, "alpha", 2)
	saveRuns(t, store, "beta", 3)

	m := NewHistoryModel(store, "beta", 100, 30)
	if m.Selected() != "beta" {
		t.Fatalf("Selected() = %q, expected beta", m.Selected())
	}
	if len(m.Runs()) != 3 {
		t.Errorf("Runs() for beta = %d, expected 3", len(m.Runs()))
	}

	// Tab wraps from the last layout to "all layouts"
	next := send(t, m, tea.KeyMsg{Type: tea.KeyTab}).(HistoryModel)
	if next.Selected() != "" {
		t.Errorf("Selected() after tab = %q, expected all layouts", next.Selected())
	}
	if len(next.Runs()) != 5 {
		t.Errorf("Runs() for all layouts = %d, expected 5", len(next.Runs()))
	}

	prev := send(t, next, tea.KeyMsg{Type: tea.KeyShiftTab}).(HistoryModel)
	if prev.Selected() != "beta" {
		t.Errorf("Selected() after shift+tab = %q, expected beta", prev.Selected())
	}
}

func TestHistoryViewWithoutStore(t *testing.T) {
	m := NewHistoryModel(nil, "", 60, 20)
	view := m.View()
	if !strings.Contains(view, "No runs recorded yet") {
		t.Errorf("View() without runs = %q, expected empty message", view)
	}

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc}).(HistoryModel)
	if !m.IsGoingBack() {
		t.Error("esc did not go back")
	}
}

func TestSessionFlow(t *testing.T) {
	store := openStore(t)
	cat := catalog.New(store, "")
	s := tea.Model(NewSessionModel(cat, testConfig, SessionOptions{User: "tester"}))

	if s.(SessionModel).SessionID() == "" {
		t.Fatal("SessionID() is empty")
	}

	// Menu -> editor
	s = send(t, s, tea.KeyMsg{Type: tea.KeyEnter})
	if got := s.(SessionModel).screen; got != screenEditor {
		t.Fatalf("screen after enter = %v, expected editor", got)
	}
	first := cat.List()[0].ID
	if id := s.(SessionModel).editor.Editor().LayoutID(); id != first {
		t.Errorf("editor layout = %q, expected %q", id, first)
	}

	// Editor -> menu
	s = send(t, s, tea.KeyMsg{Type: tea.KeyEsc}, tick())
	if got := s.(SessionModel).screen; got != screenMenu {
		t.Fatalf("screen after esc = %v, expected menu", got)
	}

	// Menu -> history -> menu
	s = send(t, s, runes("H"))
	if got := s.(SessionModel).screen; got != screenHistory {
		t.Fatalf("screen after H = %v, expected history", got)
	}
	s = send(t, s, tea.KeyMsg{Type: tea.KeyEsc})
	if got := s.(SessionModel).screen; got != screenMenu {
		t.Fatalf("screen after esc in history = %v, expected menu", got)
	}

	s, cmd := s.Update(runes("q"))
	if !s.(SessionModel).quitting || cmd == nil {
		t.Error("q in menu did not end the session")
	}
}

func TestSessionIDsDiffer(t *testing.T) {
	cat := catalog.New(nil, "")
	a := NewSessionModel(cat, testConfig, SessionOptions{})
	b := NewSessionModel(cat, testConfig, SessionOptions{})
	if a.SessionID() == b.SessionID() {
		t.Error("two sessions share an ID")
	}
}
