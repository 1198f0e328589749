package ant

import (
	"image"
	"time"

	"github.com/vovakirdan/chromatic-ant/internal/rules"
)

// Config holds the fixed parameters of an engine.
type Config struct {
	Width          int     // Grid columns
	Height         int     // Grid rows
	TargetCoverage float64 // Percent of active cells that completes a run
	PointsNewVisit int     // Awarded the first time the ant touches a cell
	PointsRevisit  int     // Awarded on every later touch
	Speed          float64 // Initial scheduler speed, 0..100
	NotifyEvery    int     // Steps between stats notifications while playing
}

// DefaultConfig returns the reference configuration: an 80x50 torus that
// completes at 25% coverage.
func DefaultConfig() Config {
	return Config{
		Width:          80,
		Height:         50,
		TargetCoverage: 25,
		PointsNewVisit: 10,
		PointsRevisit:  1,
		Speed:          50,
		NotifyEvery:    DefaultNotifyEvery,
	}
}

// View is read access to the render-relevant engine state.
type View interface {
	Width() int
	Height() int
	State(x, y int) uint8
	Ant() Ant
}

// Renderer produces an image of the current state on demand.
type Renderer interface {
	Snapshot(v View) image.Image
}

// StepResult reports what a single step changed beyond the counters.
type StepResult struct {
	Completed    bool // Coverage target reached for the first time this cycle
	NewHighScore bool
}

// Frame is the outcome of one scheduling tick.
type Frame struct {
	Steps     int  // Steps run during this frame
	Completed bool // Completion fired during this frame
	Notify    bool // Stats should be pushed to the consumer
	Stats     Stats
}

// Engine owns the whole simulation state. It exposes stepping, edits,
// reset and read-only queries; internal buffers are never handed out.
type Engine struct {
	cfg  Config
	rule rules.Rule

	grid      *Grid
	ant       Ant
	score     int
	steps     int
	completed bool

	highScore int
	scores    HighScores

	playing  bool
	sched    *Scheduler
	throttle *Throttle
	renderer Renderer
}

// New creates an engine with a zeroed grid and a centered ant facing up.
// The high score is loaded from scores; a nil store or a failed load
// starts from 0.
func New(cfg Config, rule rules.Rule, scores HighScores) *Engine {
	if cfg.TargetCoverage <= 0 {
		cfg.TargetCoverage = DefaultConfig().TargetCoverage
	}

	e := &Engine{
		cfg:      cfg,
		rule:     rule,
		grid:     NewGrid(cfg.Width, cfg.Height),
		scores:   scores,
		sched:    NewScheduler(cfg.Speed),
		throttle: NewThrottle(cfg.NotifyEvery),
	}
	e.cfg.Width = e.grid.Width()
	e.cfg.Height = e.grid.Height()
	e.ant = centered(e.grid.Width(), e.grid.Height())

	if scores != nil {
		if best, err := scores.Load(); err == nil && best > 0 {
			e.highScore = best
		}
	}
	return e
}

// Step applies one simulation step: turn on the current cell, advance its
// state, score the touch, then move along the new heading.
func (e *Engine) Step() StepResult {
	var res StepResult

	idx := e.grid.index(e.ant.X, e.ant.Y)
	state := e.grid.cells[idx]

	if e.rule.TurnFor(state) == rules.Right {
		e.ant.Heading = e.ant.Heading.TurnRight()
	} else {
		e.ant.Heading = e.ant.Heading.TurnLeft()
	}

	e.grid.advance(idx)

	if e.grid.markVisited(idx) {
		e.score += e.cfg.PointsNewVisit
	} else {
		e.score += e.cfg.PointsRevisit
	}
	e.steps++

	dx, dy := e.ant.Heading.Delta()
	e.ant.X, e.ant.Y = e.grid.Wrap(e.ant.X+dx, e.ant.Y+dy)

	if e.score > e.highScore {
		e.highScore = e.score
		res.NewHighScore = true
		if e.scores != nil {
			e.scores.Save(e.highScore)
		}
	}

	if !e.completed && e.Coverage() >= e.cfg.TargetCoverage {
		e.completed = true
		res.Completed = true
	}

	return res
}

// Tick advances one display frame. While playing the scheduler decides how
// many steps run; when paused nothing is stepped but the frame still
// reports stats so edits show immediately.
func (e *Engine) Tick(delta time.Duration) Frame {
	var f Frame

	if e.playing {
		n := e.sched.Advance(delta)
		for range n {
			if e.Step().Completed {
				f.Completed = true
			}
		}
		f.Steps = n
	}

	f.Notify = e.throttle.ShouldNotify(e.steps, e.playing)
	f.Stats = e.Stats()
	return f
}

// StepOnce performs a single manual step and always notifies.
func (e *Engine) StepOnce() Frame {
	res := e.Step()
	e.throttle.Force(e.steps)
	return Frame{
		Steps:     1,
		Completed: res.Completed,
		Notify:    true,
		Stats:     e.Stats(),
	}
}

// EditCell increments the state of the cell at (x, y), placing or cycling
// a pheromone. Edits are refused while playing and out-of-bounds
// coordinates are ignored; both return false.
func (e *Engine) EditCell(x, y int) bool {
	if e.playing || !e.grid.InBounds(x, y) {
		return false
	}
	e.grid.advance(e.grid.index(x, y))
	return true
}

// Reset reinitializes the run: cells, visited bits, counters, ant and the
// completion latch. Playback stops. The high score is kept.
func (e *Engine) Reset() Stats {
	e.grid.Clear()
	e.ant = centered(e.grid.Width(), e.grid.Height())
	e.score = 0
	e.steps = 0
	e.completed = false
	e.playing = false
	e.sched.Reset()
	e.throttle.Force(0)
	return e.Stats()
}

// SetRule switches to the named rule and resets. An unknown name leaves
// the engine untouched.
func (e *Engine) SetRule(name string) (Stats, error) {
	r, err := rules.Lookup(name)
	if err != nil {
		return e.Stats(), err
	}
	e.rule = r
	return e.Reset(), nil
}

// Start begins auto-stepping.
func (e *Engine) Start() { e.playing = true }

// Pause stops auto-stepping; takes effect on the next tick.
func (e *Engine) Pause() { e.playing = false }

// Toggle flips between playing and paused and returns the new state.
func (e *Engine) Toggle() bool {
	e.playing = !e.playing
	return e.playing
}

// Playing reports whether auto-stepping is on.
func (e *Engine) Playing() bool { return e.playing }

// SetSpeed changes the scheduler speed, clamped to [0, 100].
func (e *Engine) SetSpeed(speed float64) { e.sched.SetSpeed(speed) }

// Speed returns the scheduler speed.
func (e *Engine) Speed() float64 { return e.sched.Speed() }

// Decision returns how the scheduler currently advances.
func (e *Engine) Decision() Decision { return e.sched.Decision() }

// Stats returns the current counters.
func (e *Engine) Stats() Stats {
	return Stats{
		Score:     e.score,
		HighScore: e.highScore,
		Steps:     e.steps,
		Coverage:  e.Coverage(),
	}
}

// Coverage returns the percentage of active cells.
func (e *Engine) Coverage() float64 {
	return float64(e.grid.Active()) / float64(e.grid.Size()) * 100
}

// Score returns the current score.
func (e *Engine) Score() int { return e.score }

// Steps returns the number of steps since the last reset.
func (e *Engine) Steps() int { return e.steps }

// HighScore returns the best score seen.
func (e *Engine) HighScore() int { return e.highScore }

// Active returns the number of non-zero cells.
func (e *Engine) Active() int { return e.grid.Active() }

// Completed reports whether the coverage target was reached this cycle.
func (e *Engine) Completed() bool { return e.completed }

// Rule returns the active rule.
func (e *Engine) Rule() rules.Rule { return e.rule }

// Config returns the engine configuration.
func (e *Engine) Config() Config { return e.cfg }

// Width returns the grid width.
func (e *Engine) Width() int { return e.grid.Width() }

// Height returns the grid height.
func (e *Engine) Height() int { return e.grid.Height() }

// State returns the state of the cell at (x, y).
func (e *Engine) State(x, y int) uint8 { return e.grid.State(x, y) }

// Visited reports whether the ant has touched (x, y) since the last reset.
func (e *Engine) Visited(x, y int) bool { return e.grid.Visited(x, y) }

// Ant returns a copy of the ant.
func (e *Engine) Ant() Ant { return e.ant }

// Cells copies the cell states into dst and returns it.
func (e *Engine) Cells(dst []uint8) []uint8 { return e.grid.CopyCells(dst) }

// SetRenderer attaches the renderer used by SnapshotImage.
func (e *Engine) SetRenderer(r Renderer) { e.renderer = r }

// SnapshotImage renders the current state, or returns nil without a renderer.
func (e *Engine) SnapshotImage() image.Image {
	if e.renderer == nil {
		return nil
	}
	return e.renderer.Snapshot(e)
}

var _ View = (*Engine)(nil)
