package tui

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/chromatic-ant/internal/ant"
	"github.com/vovakirdan/chromatic-ant/internal/config"
	"github.com/vovakirdan/chromatic-ant/internal/core"
	"github.com/vovakirdan/chromatic-ant/internal/palette"
	"github.com/vovakirdan/chromatic-ant/internal/render"
	"github.com/vovakirdan/chromatic-ant/internal/rules"
	"github.com/vovakirdan/chromatic-ant/internal/storage"
)

// Layout and speed constants
const (
	hudRows       = 2   // Title and stats lines above the grid
	speedStep     = 5.0 // Speed change per key press in the gated range
	fineSpeedStep = 0.5 // Speed change per key press in the batched range
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	playingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	pausedStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	dialogStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#22c55e")).
			Padding(1, 3)
)

// Options holds what a simulation screen needs besides the rule.
type Options struct {
	Config    config.AntConfig
	Runtime   core.RuntimeConfig
	Store     *storage.Store // Run history; nil disables it
	Scores    ant.HighScores // High score persistence; nil keeps it in memory
	ExportDir string         // Where saved images go; empty uses the user directory
}

// Model is the Bubble Tea model for one simulation session.
type Model struct {
	id        int64
	opts      Options
	engine    *ant.Engine
	renderer  *render.ImageRenderer
	palette   palette.Palette
	rng       *rand.Rand
	keyMapper *KeyMapper
	help      help.Model

	stats    ant.Stats // Last notified stats, shown in the HUD
	lastTick time.Time
	artMode  bool
	cursorX  int
	cursorY  int

	dragging   bool
	dragButton tea.MouseButton
	lastEditX  int
	lastEditY  int

	dialog     bool // Completion dialog open
	recorded   bool // Current run written to history
	message    string
	width      int
	height     int
	quitting   bool
	backToMenu bool
}

// NewModel creates a simulation model running rule.
func NewModel(rule rules.Rule, opts Options) Model {
	// Use time-based seed if not specified
	if opts.Runtime.Seed == 0 {
		opts.Runtime.Seed = time.Now().UnixNano()
	}
	if opts.Runtime.TickRate <= 0 {
		opts.Runtime.TickRate = core.DefaultConfig().TickRate
	}
	if opts.ExportDir == "" {
		opts.ExportDir = config.ExportDir()
	}

	scores := opts.Scores
	if scores == nil {
		scores = ant.NewMemoryScores(0)
	}

	engine := ant.New(opts.Config.EngineConfig(), rule, scores)
	pal := opts.Config.Palette()
	renderer := render.NewImageRenderer(pal, opts.Config.Display.CellSize)
	renderer.AntColor = opts.Config.AntColor()
	engine.SetRenderer(renderer)

	h := help.New()
	h.ShowAll = false

	a := engine.Ant()
	return Model{
		id:        nextModelID(),
		opts:      opts,
		engine:    engine,
		renderer:  renderer,
		palette:   pal,
		rng:       rand.New(rand.NewSource(opts.Runtime.Seed)),
		keyMapper: NewKeyMapper(),
		help:      h,
		stats:     engine.Stats(),
		cursorX:   a.X,
		cursorY:   a.Y,
		width:     opts.Runtime.ScreenW,
		height:    opts.Runtime.ScreenH,
	}
}

// Init starts the frame loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.id, m.opts.Runtime.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		if msg.ID != m.id {
			return m, nil
		}
		return m.handleTick(msg.Time)
	}

	return m, nil
}

// handleTick advances the engine by the time since the previous frame.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.quitting || m.backToMenu {
		return m, nil
	}

	delta := time.Second / time.Duration(m.opts.Runtime.TickRate)
	if !m.lastTick.IsZero() {
		delta = now.Sub(m.lastTick)
	}
	m.lastTick = now

	f := m.engine.Tick(delta)
	if f.Notify {
		m.stats = f.Stats
	}
	if f.Completed {
		m.complete()
	}

	// Continue ticking
	return m, tickCmd(m.id, m.opts.Runtime.TickRate)
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.recordRun()
		m.quitting = true
		return m, tea.Quit
	}

	if m.dialog {
		m.handleDialogKey(msg, action)
		return m, nil
	}

	switch action {
	case core.ActionTogglePlay:
		m.engine.Toggle()
		m.message = ""

	case core.ActionStep:
		if m.engine.Playing() {
			return m, nil
		}
		f := m.engine.StepOnce()
		m.stats = f.Stats
		if f.Completed {
			m.complete()
		}

	case core.ActionReset:
		m.reset()

	case core.ActionSpeedUp:
		m.engine.SetSpeed(nextSpeed(m.engine.Speed(), true))

	case core.ActionSpeedDown:
		m.engine.SetSpeed(nextSpeed(m.engine.Speed(), false))

	case core.ActionNextRule:
		m.switchRule(rules.Next(m.engine.Rule().Name))

	case core.ActionPrevRule:
		m.switchRule(rules.Prev(m.engine.Rule().Name))

	case core.ActionPalette:
		m.palette = palette.Random(m.rng)
		m.renderer.Palette = m.palette

	case core.ActionArtMode:
		m.setArtMode(!m.artMode)

	case core.ActionExport:
		m.export()

	case core.ActionUp:
		m.moveCursor(0, -1)
	case core.ActionDown:
		m.moveCursor(0, 1)
	case core.ActionLeft:
		m.moveCursor(-1, 0)
	case core.ActionRight:
		m.moveCursor(1, 0)

	case core.ActionPaint:
		m.paint(m.cursorX, m.cursorY)

	case core.ActionBack:
		if m.artMode {
			m.setArtMode(false)
			return m, nil
		}
		m.recordRun()
		m.backToMenu = true

	case core.ActionHelp:
		m.help.ShowAll = !m.help.ShowAll
	}

	return m, nil
}

// handleDialogKey handles keys while the completion dialog is open.
func (m *Model) handleDialogKey(msg tea.KeyMsg, action core.Action) {
	switch {
	case action == core.ActionExport:
		m.export()
	case action == core.ActionReset:
		m.reset()
	case action == core.ActionBack:
		m.dialog = false
	case msg.String() == "c", action == core.ActionPaint, action == core.ActionTogglePlay:
		// Keep painting: resume the same run
		m.dialog = false
		m.message = ""
		m.engine.Start()
	}
}

// handleMouse edits cells by click or drag. Each terminal cell covers two
// grid rows: the left button edits the upper one, the right button the lower.
func (m *Model) handleMouse(msg tea.MouseMsg) {
	switch msg.Action {
	case tea.MouseActionRelease:
		m.dragging = false
		return
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft && msg.Button != tea.MouseButtonRight {
			return
		}
		m.dragging = true
		m.dragButton = msg.Button
		m.lastEditX, m.lastEditY = -1, -1
	case tea.MouseActionMotion:
		if !m.dragging {
			return
		}
	default:
		return
	}

	if m.dialog {
		return
	}

	rect := m.gridRect()
	if !rect.Contains(msg.X, msg.Y) {
		return
	}
	x, row := rect.Local(msg.X, msg.Y)
	y := row * 2
	if m.dragButton == tea.MouseButtonRight {
		y++
	}
	if y >= m.engine.Height() {
		return
	}

	// A drag stays over one cell for several events; edit it once
	if x == m.lastEditX && y == m.lastEditY {
		return
	}
	m.lastEditX, m.lastEditY = x, y
	m.cursorX, m.cursorY = x, y
	m.paint(x, y)
}

// gridRect is the terminal area the grid is drawn in.
func (m Model) gridRect() core.Rect {
	return core.NewRect(0, hudRows, m.engine.Width(), TerminalRows(m.engine.Height()))
}

// paint places or cycles a pheromone at (x, y).
func (m *Model) paint(x, y int) bool {
	if m.artMode {
		m.message = "leave art mode to paint"
		return false
	}
	if !m.engine.EditCell(x, y) {
		if m.engine.Playing() {
			m.message = "pause to paint"
		}
		return false
	}
	m.message = ""
	m.stats = m.engine.Stats()
	return true
}

func (m *Model) moveCursor(dx, dy int) {
	w, h := m.engine.Width(), m.engine.Height()
	m.cursorX = (m.cursorX + dx + w) % w
	m.cursorY = (m.cursorY + dy + h) % h
}

func (m *Model) setArtMode(on bool) {
	m.artMode = on
	m.renderer.ArtMode = on
}

// complete pauses the run and opens the completion dialog.
func (m *Model) complete() {
	m.engine.Pause()
	m.dialog = true
	m.stats = m.engine.Stats()
	m.recordRun()
}

// reset records the current run and starts over.
func (m *Model) reset() {
	m.recordRun()
	m.stats = m.engine.Reset()
	m.recorded = false
	m.dialog = false
	m.message = ""
}

func (m *Model) switchRule(r rules.Rule) {
	m.recordRun()
	stats, err := m.engine.SetRule(r.Name)
	if err != nil {
		m.message = err.Error()
		return
	}
	m.stats = stats
	m.recorded = false
	m.dialog = false
	m.message = ""
}

// recordRun writes the current run to history once.
func (m *Model) recordRun() {
	if m.recorded || m.engine.Steps() == 0 {
		return
	}
	m.recorded = true
	if m.opts.Store == nil {
		return
	}
	//nolint:errcheck // Best-effort save, session continues regardless
	m.opts.Store.SaveRun(storage.Run{
		Rule:      m.engine.Rule().Name,
		Score:     m.engine.Score(),
		Steps:     m.engine.Steps(),
		Coverage:  m.engine.Coverage(),
		Completed: m.engine.Completed(),
	})
}

// export saves the current image and reports where it went.
func (m *Model) export() {
	path, err := render.SavePNG(m.opts.ExportDir, m.engine.Steps(), m.engine.SnapshotImage())
	if err != nil {
		m.message = "save failed: " + err.Error()
		return
	}
	m.message = "saved " + path
}

// nextSpeed returns the speed one key press away. The batched range above
// 95 is short, so it moves in finer steps.
func nextSpeed(speed float64, up bool) float64 {
	if up {
		if speed >= ant.BatchSpeed {
			return speed + fineSpeedStep
		}
		// Land on the batch threshold instead of jumping past it
		return min(speed+speedStep, ant.BatchSpeed)
	}
	if speed > ant.BatchSpeed {
		return speed - fineSpeedStep
	}
	return speed - speedStep
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}

	var b strings.Builder

	r := m.engine.Rule()
	b.WriteString(titleStyle.Render("CHROMATIC ANT"))
	b.WriteString("  ")
	b.WriteString(r.Name)
	b.WriteString(dimStyle.Render("  " + r.SequenceString() + "  " + r.Description))
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")

	if m.dialog {
		b.WriteString(lipgloss.Place(
			m.engine.Width(), TerminalRows(m.engine.Height()),
			lipgloss.Center, lipgloss.Center,
			m.dialogView(),
		))
	} else {
		b.WriteString(RenderGrid(m.engine, GridStyle{
			Palette:    m.palette,
			AntColor:   m.renderer.AntColor,
			ArtMode:    m.artMode,
			ShowCursor: !m.engine.Playing() && !m.artMode,
			CursorX:    m.cursorX,
			CursorY:    m.cursorY,
		}))
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.message))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.help.View(m.keyMapper.Keys())))

	return b.String()
}

func (m Model) statusLine() string {
	state := pausedStyle.Render("PAUSED")
	if m.engine.Playing() {
		state = playingStyle.Render("PLAYING")
	}
	if m.artMode {
		state += dimStyle.Render(" art")
	}

	return fmt.Sprintf("%s  Score %d  High %d  Steps %d  Coverage %.1f%%/%g%%  Speed %s",
		state,
		m.stats.Score,
		m.stats.HighScore,
		m.stats.Steps,
		m.stats.Coverage,
		m.engine.Config().TargetCoverage,
		speedLabel(m.engine.Speed(), m.engine.Decision()),
	)
}

func speedLabel(speed float64, d ant.Decision) string {
	if d.Gated() {
		return fmt.Sprintf("%.0f (%dms/step)", speed, d.Interval.Milliseconds())
	}
	return fmt.Sprintf("%.1f (%d steps/frame)", speed, d.Iterations)
}

func (m Model) dialogView() string {
	s := m.engine.Stats()
	body := fmt.Sprintf(
		"%s\n\nRule      %s\nScore     %d\nSteps     %d\nCoverage  %.1f%%\n\n%s",
		titleStyle.Render("Target reached!"),
		m.engine.Rule().Name,
		s.Score,
		s.Steps,
		s.Coverage,
		dimStyle.Render("c keep painting   s save image   r reset   esc close"),
	)
	return dialogStyle.Render(body)
}

// Engine returns the engine driven by this model.
func (m Model) Engine() *ant.Engine {
	return m.engine
}

// Stats returns the stats currently shown in the HUD.
func (m Model) Stats() ant.Stats {
	return m.stats
}

// DialogOpen reports whether the completion dialog is showing.
func (m Model) DialogOpen() bool {
	return m.dialog
}

// ArtMode reports whether art mode is on.
func (m Model) ArtMode() bool {
	return m.artMode
}

// Cursor returns the edit cursor position.
func (m Model) Cursor() (int, int) {
	return m.cursorX, m.cursorY
}

// Palette returns the palette in use.
func (m Model) Palette() palette.Palette {
	return m.palette
}

// Message returns the last status message.
func (m Model) Message() string {
	return m.message
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts a local session. With a nil rule it opens the rule picker first.
func Run(rule *rules.Rule, opts Options) error {
	model := NewSessionModel(opts, "", rule)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Click and drag to paint
	)

	_, err := p.Run()
	return err
}
