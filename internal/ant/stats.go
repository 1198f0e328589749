package ant

// Stats is the externally visible snapshot of engine counters.
type Stats struct {
	Score     int
	HighScore int
	Steps     int
	Coverage  float64 // percent of cells active, 0..100
}

// DefaultNotifyEvery is the step interval between notifications while
// auto-playing.
const DefaultNotifyEvery = 15

// Throttle decides when a stats snapshot is pushed to a consumer.
// It only rate-limits notifications; Engine.Stats is always current.
type Throttle struct {
	every    int
	lastStep int
}

// NewThrottle creates a throttle notifying every n steps while playing.
// Values below 1 notify on every call.
func NewThrottle(every int) *Throttle {
	if every < 1 {
		every = 1
	}
	return &Throttle{every: every}
}

// Every returns the step interval.
func (t *Throttle) Every() int { return t.every }

// ShouldNotify reports whether a frame ending at the given step count should
// emit a snapshot. When not playing it always does. While playing it emits
// whenever the step count reached or crossed a multiple of the interval
// since the last notification. A batched frame can jump past the exact
// multiple, so crossing counts.
func (t *Throttle) ShouldNotify(steps int, playing bool) bool {
	if !playing {
		t.lastStep = steps
		return true
	}
	if steps == t.lastStep || steps/t.every == t.lastStep/t.every {
		return false
	}
	t.lastStep = steps
	return true
}

// Force records an unconditional notification, e.g. after a manual step or
// reset.
func (t *Throttle) Force(steps int) {
	t.lastStep = steps
}
