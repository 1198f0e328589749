package ant

import (
	"math"
	"time"

	"github.com/vovakirdan/chromatic-ant/internal/core"
)

// Speed bounds and regime thresholds.
const (
	MinSpeed = 0.0
	MaxSpeed = 100.0

	// BatchSpeed is the speed at which time gating stops and every frame
	// runs a batch of steps.
	BatchSpeed = 95.0

	slowestInterval = 500 * time.Millisecond
	fastestInterval = 16 * time.Millisecond
)

// Decision is how the scheduler advances at a given speed. Exactly one of
// the fields is meaningful: Interval > 0 means one step per elapsed interval,
// otherwise Iterations steps run every frame.
type Decision struct {
	Interval   time.Duration
	Iterations int
}

// Gated reports whether the decision is time-gated.
func (d Decision) Gated() bool { return d.Interval > 0 }

// Decide maps a speed in [0, 100] to a scheduling decision.
// Below 95 the interval interpolates from 500ms down to 16ms; from 95 up
// each frame runs 1 + floor((speed-95)*10) steps.
func Decide(speed float64) Decision {
	speed = core.ClampF(speed, MinSpeed, MaxSpeed)

	if speed < BatchSpeed {
		span := float64(slowestInterval - fastestInterval)
		interval := float64(slowestInterval) - (speed/BatchSpeed)*span
		return Decision{Interval: time.Duration(interval), Iterations: 1}
	}

	return Decision{Iterations: 1 + int(math.Floor((speed-BatchSpeed)*10))}
}

// Scheduler converts frame deltas into step counts.
// Elapsed time accumulates only while Advance is called; pausing is the
// caller not calling it.
type Scheduler struct {
	speed       float64
	decision    Decision
	accumulator time.Duration
}

// NewScheduler creates a scheduler at the given speed.
func NewScheduler(speed float64) *Scheduler {
	s := &Scheduler{}
	s.SetSpeed(speed)
	return s
}

// SetSpeed changes the speed, clamped to [0, 100].
func (s *Scheduler) SetSpeed(speed float64) {
	s.speed = core.ClampF(speed, MinSpeed, MaxSpeed)
	s.decision = Decide(s.speed)
}

// Speed returns the current speed.
func (s *Scheduler) Speed() float64 { return s.speed }

// Decision returns the decision for the current speed.
func (s *Scheduler) Decision() Decision { return s.decision }

// Advance records elapsed frame time and returns how many steps to run.
// In the gated regime at most one step runs per frame and the accumulator
// resets to zero, so time lost to a stall is never caught up.
func (s *Scheduler) Advance(delta time.Duration) int {
	if !s.decision.Gated() {
		return s.decision.Iterations
	}

	if delta > 0 {
		s.accumulator += delta
	}
	if s.accumulator >= s.decision.Interval {
		s.accumulator = 0
		return 1
	}
	return 0
}

// Reset discards accumulated time.
func (s *Scheduler) Reset() {
	s.accumulator = 0
}
