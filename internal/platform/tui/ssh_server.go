package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/google/uuid"

	"github.com/vovakirdan/gridpath/internal/catalog"
	"github.com/vovakirdan/gridpath/internal/config"
	"github.com/vovakirdan/gridpath/internal/core"
	"github.com/vovakirdan/gridpath/internal/pathfind"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":2323").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.gridpath/host_key.
	HostKeyPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// GridSize fixes generated layouts' size; zero fields fit the terminal.
	GridSize core.Size

	Speed        config.SpeedPreset
	StepsPerTick int
	LayoutsDir   string
	TickRate     int
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":2323",
		IdleTimeout: 10 * time.Minute,
		Speed:       config.SpeedNormal,
		TickRate:    30,
	}
}

// SSHServer wraps a Wish SSH server serving the editor.
type SSHServer struct {
	config  SSHServerConfig
	server  *ssh.Server
	catalog *catalog.Catalog
	logger  *log.Logger
}

// NewSSHServer creates a new SSH server. Runs are recorded in the
// catalog's store when it has one.
func NewSSHServer(cfg SSHServerConfig, cat *catalog.Catalog, logger *log.Logger) (*SSHServer, error) {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "gridpath-ssh",
		})
	}

	srv := &SSHServer{
		config:  cfg,
		catalog: cat,
		logger:  logger,
	}

	hostKeyPath := config.ExpandHome(cfg.HostKeyPath)
	if hostKeyPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("tui: cannot get home directory: %w", err)
		}
		hostKeyPath = filepath.Join(home, ".gridpath", "host_key")
	}
	if err := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); err != nil {
		return nil, fmt.Errorf("tui: cannot create host key directory: %w", err)
	}

	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	)
	if err != nil {
		return nil, fmt.Errorf("tui: cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sess.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sess.User())
		return nil, nil
	}

	cfg := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: s.config.TickRate,
		Seed:     time.Now().UnixNano(),
	}

	model := NewSessionModel(s.catalog, cfg, SessionOptions{
		User:         sess.User(),
		GridSize:     s.config.GridSize,
		Speed:        s.config.Speed,
		StepsPerTick: s.config.StepsPerTick,
		LayoutsDir:   s.config.LayoutsDir,
		Logger:       s.logger,
	})

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		s.logger.Info("session started",
			"user", sess.User(),
			"remote", sess.RemoteAddr().String(),
		)
		next(sess)
		s.logger.Info("session ended",
			"user", sess.User(),
			"remote", sess.RemoteAddr().String(),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until an interrupt or a
// serving error.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(done)

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, ssh.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("tui: serving SSH: %w", err)
	case <-done:
	}

	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

// FitSize fills the unset dimensions of fixed from the terminal size.
func FitSize(cfg core.RuntimeConfig, fixed core.Size) core.Size {
	size := GridSize(cfg)
	if fixed.W > 0 {
		size.W = fixed.W
	}
	if fixed.H > 0 {
		size.H = fixed.H
	}
	return size
}

// BuildGrid builds the grid for a layout. Generated layouts use fixed
// where its fields are set and fit the terminal otherwise.
func BuildGrid(cat *catalog.Catalog, id string, cfg core.RuntimeConfig, fixed core.Size) (*pathfind.Grid, error) {
	return cat.Grid(id, cfg, FitSize(cfg, fixed))
}

// SessionOptions configures one interactive session.
type SessionOptions struct {
	User         string
	GridSize     core.Size
	Speed        config.SpeedPreset
	StepsPerTick int
	LayoutsDir   string
	Logger       *log.Logger
}

type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenEditor
	screenHistory
)

// SessionModel manages one session's flow: menu -> editor or history -> menu.
// This is the top-level model used for SSH sessions.
type SessionModel struct {
	catalog   *catalog.Catalog
	config    core.RuntimeConfig
	opts      SessionOptions
	sessionID string
	logger    *log.Logger
	screen    sessionScreen
	menu      MenuModel
	editor    Model
	history   HistoryModel
	notice    string
	quitting  bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(cat *catalog.Catalog, cfg core.RuntimeConfig, opts SessionOptions) SessionModel {
	sessionID := uuid.NewString()
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	logger = logger.With("session", sessionID, "user", opts.User)

	return SessionModel{
		catalog:   cat,
		config:    cfg,
		opts:      opts,
		sessionID: sessionID,
		logger:    logger,
		menu:      NewMenuModel(cat, cfg),
	}
}

// SessionID returns the unique ID of this session.
func (m SessionModel) SessionID() string {
	return m.sessionID
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenEditor:
		return m.updateEditor(msg)
	case screenHistory:
		return m.updateHistory(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.menu.WantsHistory() {
		m.history = NewHistoryModel(m.catalog.Store, "", m.config.ScreenW, m.config.ScreenH)
		m.screen = screenHistory
		return m, m.history.Init()
	}

	if selected := m.menu.Selected(); selected != nil {
		m.config.Seed = time.Now().UnixNano()
		g, err := BuildGrid(m.catalog, selected.ID, m.config, m.opts.GridSize)
		if err != nil {
			m.logger.Warn("could not open layout", "layout", selected.ID, "error", err)
			m.notice = err.Error()
			m.menu = NewMenuModel(m.catalog, m.config)
			return m, nil
		}

		m.logger.Info("layout opened", "layout", selected.ID)
		m.editor = NewModel(g, m.config, EditorOptions{
			LayoutID:     selected.ID,
			Speed:        m.opts.Speed,
			StepsPerTick: m.opts.StepsPerTick,
			Store:        m.catalog.Store,
			LayoutsDir:   m.opts.LayoutsDir,
			Logger:       m.logger,
		})
		m.screen = screenEditor
		m.notice = ""
		return m, m.editor.Init()
	}

	return m, cmd
}

// updateEditor handles updates when in editor mode.
func (m SessionModel) updateEditor(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.editor.Update(msg)
	if ed, ok := newModel.(Model); ok {
		m.editor = ed
	}

	if m.editor.BackToMenu() {
		return m.backToMenu()
	}
	if m.editor.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	return m, cmd
}

// updateHistory handles updates when in history mode.
func (m SessionModel) updateHistory(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.history.Update(msg)
	if h, ok := newModel.(HistoryModel); ok {
		m.history = h
	}

	if m.history.IsGoingBack() {
		return m.backToMenu()
	}
	if m.history.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	return m, cmd
}

func (m SessionModel) backToMenu() (tea.Model, tea.Cmd) {
	m.screen = screenMenu
	m.menu = NewMenuModel(m.catalog, m.config)
	return m, m.menu.Init()
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenEditor:
		return m.editor.View()
	case screenHistory:
		return m.history.View()
	}

	view := m.menu.View()
	if m.notice != "" {
		view += "\n" + noticeStyle.Render(centerText(m.notice, m.config.ScreenW))
	}
	return view
}
