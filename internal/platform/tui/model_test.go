package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/gridpath/internal/catalog"
	"github.com/vovakirdan/gridpath/internal/config"
	"github.com/vovakirdan/gridpath/internal/core"
	"github.com/vovakirdan/gridpath/internal/editor"
	"github.com/vovakirdan/gridpath/internal/layout"
	"github.com/vovakirdan/gridpath/internal/pathfind"
	"github.com/vovakirdan/gridpath/internal/storage"
)

var testConfig = core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 30}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func decode(t *testing.T, rows ...string) *pathfind.Grid {
	t.Helper()
	g, err := layout.Decode(rows)
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	return g
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func tick() tea.Msg {
	return TickMsg(time.Now())
}

// send feeds messages through Update and returns the resulting model.
func send(t *testing.T, m tea.Model, msgs ...tea.Msg) tea.Model {
	t.Helper()
	for _, msg := range msgs {
		m, _ = m.Update(msg)
	}
	return m
}

func TestEditorKeyMapAction(t *testing.T) {
	keys := DefaultEditorKeyMap()

	testCases := []struct {
		msg      tea.KeyMsg
		expected core.Action
	}{
		{runes("r"), core.ActionRun},
		{runes("k"), core.ActionUp},
		{runes("1"), core.ActionPlaceSpawn},
		{runes("2"), core.ActionPlaceTarget},
		{runes("x"), core.ActionErase},
		{runes("c"), core.ActionClearSearch},
		{runes("C"), core.ActionClearGrid},
		{runes("q"), core.ActionQuit},
		{tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.ActionPaint},
		{tea.KeyMsg{Type: tea.KeyEnter}, core.ActionConfirm},
		{tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack},
		{tea.KeyMsg{Type: tea.KeyCtrlS}, core.ActionSave},
		{runes("+"), core.ActionNone},
		{runes("z"), core.ActionNone},
	}

	for _, tc := range testCases {
		if got := keys.Action(tc.msg); got != tc.expected {
			t.Errorf("Action(%q) = %v, expected %v", tc.msg.String(), got, tc.expected)
		}
	}
}

func TestModelRunRecordsRun(t *testing.T) {
	store := openStore(t)
	g := decode(t, "S...", "....", "...T")
	m := tea.Model(NewModel(g, testConfig, EditorOptions{
		LayoutID: "scratch",
		Speed:    config.SpeedInstant,
		Store:    store,
	}))

	m = send(t, m, runes("r"), tick())
	model := m.(Model)

	if mode := model.Editor().Mode(); mode != editor.Done {
		t.Fatalf("Mode() = %v, expected Done", mode)
	}
	res, ok := model.Editor().Result()
	if !ok || !res.Found() {
		t.Fatalf("Result() = %+v, %v, expected a found path", res, ok)
	}

	runs, err := store.RecentRuns("scratch", 10)
	if err != nil {
		t.Fatalf("RecentRuns() error: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("RecentRuns() returned %d runs, expected 1", len(runs))
	}
	if runs[0].Steps != res.Steps() {
		t.Errorf("recorded Steps = %d, expected %d", runs[0].Steps, res.Steps())
	}
}

func TestModelEditedRunsRecordedAsDraft(t *testing.T) {
	store := openStore(t)
	g := decode(t, "S...", "....", "...T")
	m := tea.Model(NewModel(g, testConfig, EditorOptions{
		LayoutID: "scratch",
		Speed:    config.SpeedInstant,
		Store:    store,
	}))

	// Paint a wall right of the spawn, then run
	m = send(t, m, runes("l"), tick(), tea.KeyMsg{Type: tea.KeySpace}, tick(), runes("r"), tick())
	if c, _ := m.(Model).Editor().Grid().CellAt(1, 0); !c.IsWall() {
		t.Fatal("space did not paint a wall at (1,0)")
	}

	runs, err := store.RecentRuns("scratch", 10)
	if err != nil {
		t.Fatalf("RecentRuns() error: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("edited grid recorded %d runs under the loaded layout", len(runs))
	}
	drafts, err := store.RecentRuns("scratch"+editor.DraftSuffix, 10)
	if err != nil {
		t.Fatalf("RecentRuns() error: %v", err)
	}
	if len(drafts) != 1 {
		t.Fatalf("RecentRuns(draft) returned %d runs, expected 1", len(drafts))
	}

	// Once saved, runs count toward the saved layout again
	m = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlS}, tick(), runes("r"), tick())
	runs, err = store.RecentRuns("scratch", 10)
	if err != nil {
		t.Fatalf("RecentRuns() error: %v", err)
	}
	if len(runs) != 1 {
		t.Errorf("RecentRuns() after save returned %d runs, expected 1", len(runs))
	}
}

func TestModelAnimatesAcrossTicks(t *testing.T) {
	g := decode(t, "S.........", "..........", ".........T")
	m := tea.Model(NewModel(g, testConfig, EditorOptions{Speed: config.SpeedSlow}))

	m = send(t, m, runes("r"), tick())
	if mode := m.(Model).Editor().Mode(); mode != editor.Searching {
		t.Fatalf("Mode() after one slow tick = %v, expected Searching", mode)
	}

	for i := 0; i < 100 && m.(Model).Editor().Mode() == editor.Searching; i++ {
		m = send(t, m, tick())
	}
	if mode := m.(Model).Editor().Mode(); mode != editor.Done {
		t.Errorf("Mode() after many ticks = %v, expected Done", mode)
	}
}

func TestModelSpeedKeys(t *testing.T) {
	g := decode(t, "S.T")
	m := tea.Model(NewModel(g, testConfig, EditorOptions{Speed: config.SpeedNormal}))

	m = send(t, m, runes("+"))
	model := m.(Model)
	if model.Speed() != config.SpeedFast {
		t.Errorf("Speed() after + = %v, expected fast", model.Speed())
	}
	if got := model.Editor().StepsPerTick(); got != config.SpeedFast.StepsPerTick() {
		t.Errorf("StepsPerTick() = %d, expected %d", got, config.SpeedFast.StepsPerTick())
	}

	m = send(t, m, runes("-"), runes("-"), runes("-"))
	if got := m.(Model).Speed(); got != config.SpeedSlow {
		t.Errorf("Speed() after three - = %v, expected slow", got)
	}
}

func TestModelMouseDrawsWalls(t *testing.T) {
	g := decode(t, "S...", "....", "...T")
	m := tea.Model(NewModel(g, testConfig, EditorOptions{}))

	// Cell (2,1) is drawn at column 1+2*2, row 1+1
	press := tea.MouseMsg{X: 5, Y: 2, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	drag := tea.MouseMsg{X: 3, Y: 2, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft}
	m = send(t, m, press, tick(), drag, tick())

	for _, x := range []int{1, 2} {
		c, err := m.(Model).Editor().Grid().CellAt(x, 1)
		if err != nil {
			t.Fatalf("CellAt() error: %v", err)
		}
		if !c.IsWall() {
			t.Errorf("cell (%d,1) is not a wall after click and drag", x)
		}
	}

	erase := tea.MouseMsg{X: 5, Y: 2, Action: tea.MouseActionPress, Button: tea.MouseButtonRight}
	m = send(t, m, erase, tick())
	c, _ := m.(Model).Editor().Grid().CellAt(2, 1)
	if c.IsWall() {
		t.Error("right click did not erase the wall")
	}
}

func TestModelSaveLayout(t *testing.T) {
	store := openStore(t)
	dir := t.TempDir()
	g := decode(t, "S#.", "..T")
	m := tea.Model(NewModel(g, testConfig, EditorOptions{
		LayoutID:   "mine",
		Store:      store,
		LayoutsDir: dir,
	}))

	m = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlS}, tick())

	saved, err := store.LoadLayout("mine")
	if err != nil {
		t.Fatalf("LoadLayout() error: %v", err)
	}
	if strings.Join(saved.Rows, "/") != "S#./..T" {
		t.Errorf("saved rows = %v, expected [S#. ..T]", saved.Rows)
	}

	fromFile, err := layout.NewLoader(dir).LoadByID("mine")
	if err != nil {
		t.Fatalf("LoadByID() error: %v", err)
	}
	if len(fromFile.Rows) != 2 {
		t.Errorf("file layout has %d rows, expected 2", len(fromFile.Rows))
	}
	if !strings.Contains(m.(Model).Notice(), "mine") {
		t.Errorf("Notice() = %q, expected it to name the layout", m.(Model).Notice())
	}
}

func TestModelSaveWithoutTargets(t *testing.T) {
	m := tea.Model(NewModel(decode(t, "S.T"), testConfig, EditorOptions{LayoutID: "mine"}))
	m = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlS}, tick())

	if !strings.Contains(m.(Model).Notice(), "not saved") {
		t.Errorf("Notice() = %q, expected a not-saved message", m.(Model).Notice())
	}
}

func TestSaveID(t *testing.T) {
	now := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)

	testCases := []struct {
		current  string
		expected string
	}{
		{"", "untitled-20240506-070809"},
		{"maze", "maze-edit"},
		{"scatter", "scatter-edit"},
		{"my-layout", "my-layout"},
	}

	for _, tc := range testCases {
		if got := SaveID(tc.current, now); got != tc.expected {
			t.Errorf("SaveID(%q) = %q, expected %q", tc.current, got, tc.expected)
		}
	}
}

func TestModelBackAndQuit(t *testing.T) {
	m := tea.Model(NewModel(decode(t, "S.T"), testConfig, EditorOptions{}))
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc}, tick())
	if !m.(Model).BackToMenu() {
		t.Error("BackToMenu() = false after esc, expected true")
	}

	m = tea.Model(NewModel(decode(t, "S.T"), testConfig, EditorOptions{}))
	m, cmd := m.Update(runes("q"))
	if !m.(Model).IsQuitting() || cmd == nil {
		t.Error("q did not quit")
	}
}

func TestModelViewShowsGridAndHelp(t *testing.T) {
	m := NewModel(decode(t, "S.T"), testConfig, EditorOptions{LayoutID: "tiny"})
	view := m.View()

	for _, want := range []string{"S", "T", "tiny", "run"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestGridSizeLeavesRoomForHUD(t *testing.T) {
	size := GridSize(testConfig)
	if size.W != (80-2)/editor.CellWidth {
		t.Errorf("GridSize().W = %d, expected %d", size.W, (80-2)/editor.CellWidth)
	}
	// Border, HUD and help bar must fit in the terminal
	if rows := size.H + 2 + editor.HUDRows + helpRows; rows > testConfig.ScreenH {
		t.Errorf("grid of height %d needs %d rows, terminal has %d", size.H, rows, testConfig.ScreenH)
	}
}

func TestBuildGridFixedSize(t *testing.T) {
	cat := catalog.New(nil, "")

	g, err := BuildGrid(cat, "empty", testConfig, core.Size{W: 7})
	if err != nil {
		t.Fatalf("BuildGrid() error: %v", err)
	}
	if g.Width() != 7 || g.Height() != GridSize(testConfig).H {
		t.Errorf("BuildGrid() size = %dx%d, expected 7x%d", g.Width(), g.Height(), GridSize(testConfig).H)
	}

	if _, err := BuildGrid(cat, "no-such-layout", testConfig, core.Size{}); err == nil {
		t.Error("BuildGrid() with unknown id should fail")
	}
}
