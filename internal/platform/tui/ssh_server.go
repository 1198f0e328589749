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

	"github.com/vovakirdan/chromatic-ant/internal/ant"
	"github.com/vovakirdan/chromatic-ant/internal/config"
	"github.com/vovakirdan/chromatic-ant/internal/core"
	"github.com/vovakirdan/chromatic-ant/internal/rules"
	"github.com/vovakirdan/chromatic-ant/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.chromatic-ant/host_key.
	HostKeyPath string

	// DBPath is the path to the run history database.
	DBPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// Ant is the session configuration every connection starts from.
	Ant config.AntConfig

	// TickRate is the frame rate of each session.
	TickRate int
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      config.DefaultDBPath(),
		IdleTimeout: 30 * time.Minute,
		Ant:         config.DefaultAntConfig(),
		TickRate:    core.DefaultConfig().TickRate,
	}
}

// SSHServer wraps a Wish SSH server that hands each connection its own engine.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	scores ant.HighScores // Shared by all sessions
	writer *storage.HighScoreWriter
	logger *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "ant-ssh",
	})

	srv := &SSHServer{
		config: cfg,
		logger: logger,
	}

	// Open storage
	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open database, high score kept in memory", "error", err)
		srv.scores = ant.NewMemoryScores(0)
	} else {
		srv.store = store
		srv.writer = storage.NewHighScoreWriter(store, storage.HighScoreKey)
		srv.scores = srv.writer
	}

	// Resolve host key path
	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		hostKeyPath = config.UserPath("host_key")
		if hostKeyPath == "" {
			srv.closeStorage()
			return nil, fmt.Errorf("cannot get home directory for host key")
		}
	}

	// Ensure host key directory exists
	hostKeyDir := filepath.Dir(hostKeyPath)
	if mkdirErr := os.MkdirAll(hostKeyDir, 0o700); mkdirErr != nil {
		srv.closeStorage()
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	// Create Wish server options
	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	}

	// Create the server
	server, err := wish.NewServer(opts...)
	if err != nil {
		srv.closeStorage()
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	// Create runtime config from PTY size
	opts := Options{
		Config: s.config.Ant,
		Runtime: core.RuntimeConfig{
			ScreenW:  pty.Window.Width,
			ScreenH:  pty.Window.Height,
			TickRate: s.config.TickRate,
			Seed:     time.Now().UnixNano(),
		},
		Store:  s.store,
		Scores: s.scores,
	}

	// Create session model that handles menu + simulation flow
	model := NewSessionModel(opts, sshSession.User(), nil)

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	// Setup signal handling for graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := s.server.Shutdown(ctx)
	s.closeStorage()
	return err
}

// closeStorage flushes the high score and closes the database.
func (s *SSHServer) closeStorage() {
	if s.writer != nil {
		s.writer.Close()
	}
	if s.store != nil {
		s.store.Close()
	}
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

type sessionState int

const (
	stateMenu sessionState = iota
	stateSimulation
	stateHistory
)

// SessionModel manages the full session flow: rule menu -> simulation -> menu,
// with the run history reachable from the menu.
// This is the top-level model for both local and SSH sessions.
type SessionModel struct {
	opts     Options
	username string
	state    sessionState
	menu     MenuModel
	sim      *Model
	history  *ScoreboardModel
	quitting bool
}

// NewSessionModel creates a new session model. A non-nil rule skips the
// menu and starts the simulation right away.
func NewSessionModel(opts Options, username string, rule *rules.Rule) SessionModel {
	// One in-memory store for the whole session so the high score
	// survives going back to the menu
	if opts.Scores == nil {
		opts.Scores = ant.NewMemoryScores(0)
	}
	m := SessionModel{
		opts:     opts,
		username: username,
	}
	if rule != nil {
		sim := NewModel(*rule, opts)
		m.sim = &sim
		m.state = stateSimulation
	} else {
		m.menu = m.newMenu()
	}
	return m
}

func (m SessionModel) newMenu() MenuModel {
	high := 0
	if m.opts.Scores != nil {
		if v, err := m.opts.Scores.Load(); err == nil {
			high = v
		}
	}
	return NewMenuModel(high, m.opts.Runtime)
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	if m.state == stateSimulation && m.sim != nil {
		return m.sim.Init()
	}
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.opts.Runtime.ScreenW = wsm.Width
		m.opts.Runtime.ScreenH = wsm.Height
	}

	switch m.state {
	case stateSimulation:
		return m.updateSimulation(msg)
	case stateHistory:
		return m.updateHistory(msg)
	}
	return m.updateMenu(msg)
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	// Check if user quit
	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.menu.WantsScoreboard() {
		history := NewScoreboardModel(m.opts.Store, m.opts.Runtime.ScreenW, m.opts.Runtime.ScreenH)
		m.history = &history
		m.state = stateHistory
		return m, m.history.Init()
	}

	// Check if a rule was selected
	if selected := m.menu.Selected(); selected != nil {
		sim := NewModel(*selected, m.opts)
		m.sim = &sim
		m.state = stateSimulation
		return m, m.sim.Init()
	}

	return m, cmd
}

// updateSimulation handles updates while the ant runs.
func (m SessionModel) updateSimulation(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.sim.Update(msg)
	if sim, ok := newModel.(Model); ok {
		m.sim = &sim
	}

	// Check if user quit entirely
	if m.sim.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	// Check if user went back to menu
	if m.sim.BackToMenu() {
		m.sim = nil
		m.menu = m.newMenu()
		m.state = stateMenu
		return m, m.menu.Init()
	}

	return m, cmd
}

// updateHistory handles updates while the run history is shown.
func (m SessionModel) updateHistory(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.history.Update(msg)
	if history, ok := newModel.(ScoreboardModel); ok {
		m.history = &history
	}

	if m.history.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.history.IsGoingBack() {
		m.history = nil
		m.menu = m.newMenu()
		m.state = stateMenu
		return m, m.menu.Init()
	}

	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.state {
	case stateSimulation:
		if m.sim != nil {
			return m.sim.View()
		}
	case stateHistory:
		if m.history != nil {
			return m.history.View()
		}
	}

	return m.menu.View()
}

// Simulation returns the running simulation model, or nil outside of one.
func (m SessionModel) Simulation() *Model {
	return m.sim
}

// Username returns the SSH user of the session, empty for local sessions.
func (m SessionModel) Username() string {
	return m.username
}
