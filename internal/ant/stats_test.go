package ant

import "testing"

func TestThrottlePlayingEveryN(t *testing.T) {
	th := NewThrottle(15)

	var notified []int
	for step := 1; step <= 60; step++ {
		if th.ShouldNotify(step, true) {
			notified = append(notified, step)
		}
	}

	want := []int{15, 30, 45, 60}
	if len(notified) != len(want) {
		t.Fatalf("expected notifications at %v, got %v", want, notified)
	}
	for i := range want {
		if notified[i] != want[i] {
			t.Errorf("notification %d at step %d, expected %d", i, notified[i], want[i])
		}
	}
}

func TestThrottleBatchCrossing(t *testing.T) {
	th := NewThrottle(15)

	// 51 steps per frame never lands on a multiple of 15 at 51 or 102,
	// but each frame crosses at least one.
	tests := []struct {
		steps int
		want  bool
	}{
		{steps: 51, want: true},
		{steps: 52, want: false},
		{steps: 59, want: false},
		{steps: 60, want: true},
		{steps: 60, want: false}, // no progress
		{steps: 111, want: true},
	}
	for _, tc := range tests {
		if got := th.ShouldNotify(tc.steps, true); got != tc.want {
			t.Errorf("ShouldNotify(%d) = %v, expected %v", tc.steps, got, tc.want)
		}
	}
}

func TestThrottlePausedAlwaysNotifies(t *testing.T) {
	th := NewThrottle(15)
	for range 5 {
		if !th.ShouldNotify(3, false) {
			t.Fatal("expected paused frames to always notify")
		}
	}
}

func TestThrottleForce(t *testing.T) {
	th := NewThrottle(15)
	th.Force(14)
	if th.ShouldNotify(14, true) {
		t.Error("expected no notification at the forced step")
	}
	if !th.ShouldNotify(15, true) {
		t.Error("expected notification at step 15")
	}

	// Reset forces 0, so the next window starts fresh.
	th.Force(0)
	if th.ShouldNotify(7, true) {
		t.Error("expected no notification at step 7 after reset")
	}
}

func TestThrottleMinimumInterval(t *testing.T) {
	th := NewThrottle(0)
	if th.Every() != 1 {
		t.Errorf("expected interval clamped to 1, got %d", th.Every())
	}
	for step := 1; step <= 5; step++ {
		if !th.ShouldNotify(step, true) {
			t.Errorf("expected notification at step %d", step)
		}
	}
}
