package easel

import (
	"math"
	"testing"

	"github.com/tanema/gween/ease"
)

func TestSchedulerTaskDueAfterDelay(t *testing.T) {
	s := NewScheduler(nil)
	var runs int
	s.Add("t", 100, RepeatForever, nil, func() { runs++ })

	s.Tick(50)
	if runs != 0 {
		t.Fatalf("task ran %d times before delay elapsed, want 0", runs)
	}
	s.Tick(100)
	if runs != 1 {
		t.Fatalf("task ran %d times at delay, want 1", runs)
	}
	s.Tick(150)
	if runs != 1 {
		t.Fatalf("task ran %d times mid-interval, want 1", runs)
	}
	s.Tick(200)
	if runs != 2 {
		t.Fatalf("task ran %d times after second interval, want 2", runs)
	}
}

func TestSchedulerRepeatExhaustion(t *testing.T) {
	s := NewScheduler(nil)
	var runs int
	s.Add("t", 10, 3, nil, func() { runs++ })

	for now := 10.0; now <= 100; now += 10 {
		s.Tick(now)
	}

	if runs != 3 {
		t.Errorf("task ran %d times, want 3", runs)
	}
	if s.Task("t") != nil {
		t.Error("exhausted task still scheduled")
	}
}

func TestSchedulerTaskNameUniqueness(t *testing.T) {
	s := NewScheduler(nil)
	var first, second int

	s.Add("t", 10, RepeatForever, nil, func() { first++ })
	s.Add("t", 10, RepeatForever, nil, func() { second++ })

	if s.Len() != 1 {
		t.Fatalf("scheduler holds %d tasks, want 1", s.Len())
	}

	s.Tick(10)
	if first != 0 {
		t.Errorf("replaced task ran %d times, want 0", first)
	}
	if second != 1 {
		t.Errorf("replacement task ran %d times, want 1", second)
	}
}

func TestSchedulerPauseResumeTimeCorrection(t *testing.T) {
	s := NewScheduler(nil)
	var runs int
	s.Tick(0)
	s.Add("t", 100, RepeatForever, []string{"x"}, func() { runs++ })

	// Pause at t=40, resume at t=70: paused for 30, so originally due at
	// 100 the task is now due at 130.
	s.Tick(40)
	s.Pause("x")
	s.Tick(70)
	s.Resume("x")

	s.Tick(100)
	if runs != 0 {
		t.Fatalf("task ran at original due time despite pause, want deferral to 130")
	}
	s.Tick(129)
	if runs != 0 {
		t.Fatalf("task ran at 129, want due at 130")
	}
	s.Tick(130)
	if runs != 1 {
		t.Fatalf("task ran %d times at corrected due time, want 1", runs)
	}
}

func TestSchedulerPausedTaskSkippedEntirely(t *testing.T) {
	s := NewScheduler(nil)
	var runs int
	s.Add("t", 10, RepeatForever, []string{"x"}, func() { runs++ })

	s.Pause("x")
	for now := 10.0; now <= 200; now += 10 {
		s.Tick(now)
	}
	if runs != 0 {
		t.Errorf("paused task ran %d times, want 0", runs)
	}
}

func TestSchedulerChannelPauseIsolation(t *testing.T) {
	s := NewScheduler(nil)
	var frozen, live int

	s.Add("frozen", 10, RepeatForever, []string{"x"}, func() { frozen++ })
	s.Add("live", 10, RepeatForever, []string{"y"}, func() { live++ })

	s.Pause("x")
	s.Tick(10)
	s.Tick(20)

	if frozen != 0 {
		t.Errorf("task on paused channel ran %d times, want 0", frozen)
	}
	if live != 2 {
		t.Errorf("task on other channel ran %d times, want 2", live)
	}
}

func TestSchedulerMultiChannelTaskFrozenWhileAnyPaused(t *testing.T) {
	s := NewScheduler(nil)
	var runs int
	s.Add("t", 10, RepeatForever, []string{"x", "y"}, func() { runs++ })

	s.Pause("x")
	s.Pause("y")
	s.Tick(10)
	s.Resume("x")
	s.Tick(20)
	if runs != 0 {
		t.Fatalf("task ran with one of its channels still paused")
	}

	s.Resume("y")
	s.Tick(100)
	if runs != 1 {
		t.Errorf("task ran %d times after full resume, want 1", runs)
	}
}

func TestSchedulerAnimEndpoints(t *testing.T) {
	s := NewScheduler(nil)
	var values []float64
	s.Tick(0)
	s.AddAnim("a", 0, 10, 1000, ease.Linear, nil, func(v float64) {
		values = append(values, v)
	})

	s.Tick(0)
	if len(values) == 0 || values[0] != 0 {
		t.Fatalf("first sample = %v, want 0", values)
	}

	s.Tick(500)
	mid := values[len(values)-1]
	if math.Abs(mid-5) > 0.01 {
		t.Errorf("midpoint sample = %f, want ~5", mid)
	}

	s.Tick(1000)
	last := values[len(values)-1]
	if last != 10 {
		t.Errorf("final sample = %f, want exactly 10", last)
	}
	if s.Task("a") != nil {
		t.Error("animation still scheduled after reaching its duration")
	}
}

func TestSchedulerAnimInactivePastDuration(t *testing.T) {
	s := NewScheduler(nil)
	var calls int
	s.Tick(0)
	s.AddAnim("a", 0, 1, 100, ease.Linear, nil, func(v float64) { calls++ })

	s.Tick(250) // already past duration on the first tick
	if calls != 1 {
		t.Fatalf("animation delivered %d samples, want exactly 1 (the endpoint)", calls)
	}
	s.Tick(300)
	if calls != 1 {
		t.Errorf("animation fired after completion")
	}
}

func TestSchedulerAnimPauseCorrection(t *testing.T) {
	s := NewScheduler(nil)
	var last float64
	s.Tick(0)
	s.AddAnim("a", 0, 100, 1000, ease.Linear, []string{"x"}, func(v float64) { last = v })

	s.Tick(250)
	if math.Abs(last-25) > 0.1 {
		t.Fatalf("sample at 250 = %f, want ~25", last)
	}

	// Pause for 500; elapsed time must exclude the paused interval.
	s.Pause("x")
	s.Tick(750)
	s.Resume("x")

	s.Tick(1000)
	if math.Abs(last-50) > 0.1 {
		t.Errorf("sample after 500 paused = %f, want ~50 (elapsed 500)", last)
	}

	s.Tick(1500)
	if last != 100 {
		t.Errorf("final sample = %f, want exactly 100", last)
	}
}

func TestSchedulerAnimCustomCurve(t *testing.T) {
	s := NewScheduler(nil)
	var last float64
	// A user-supplied curve: everything snaps to the end value.
	snap := func(_, b, c, _ float32) float32 { return b + c }
	s.Tick(0)
	s.AddAnim("a", 0, 8, 1000, snap, nil, func(v float64) { last = v })

	s.Tick(10)
	if last != 8 {
		t.Errorf("custom curve sample = %f, want 8", last)
	}
}

func TestSchedulerStopHardReset(t *testing.T) {
	s := NewScheduler(nil)
	s.Add("a", 10, RepeatForever, []string{"x"}, func() {})
	s.Add("b", 10, RepeatForever, []string{"y"}, func() {})
	s.Pause("x")

	s.Stop()

	if s.Len() != 0 {
		t.Errorf("tasks remain after hard stop: %d", s.Len())
	}
	if s.Running() {
		t.Error("scheduler still running after hard stop")
	}
	if s.Paused("x") {
		t.Error("pause state survived hard stop")
	}
}

func TestSchedulerStopChannel(t *testing.T) {
	s := NewScheduler(nil)
	s.Add("a", 10, RepeatForever, []string{"x"}, func() {})
	s.Add("b", 10, RepeatForever, []string{"y"}, func() {})

	s.Stop("x")

	if s.Task("a") != nil {
		t.Error("task on stopped channel survived")
	}
	if s.Task("b") == nil {
		t.Error("task on other channel was discarded")
	}
}

func TestSchedulerSnapshotIteration(t *testing.T) {
	s := NewScheduler(nil)
	var addedRan bool
	s.Tick(0)
	s.Add("adder", 10, 1, nil, func() {
		s.Add("added", 0, 1, nil, func() { addedRan = true })
	})

	s.Tick(10)
	if addedRan {
		t.Fatal("task added during a pass ran in the same pass")
	}
	s.Tick(20)
	if !addedRan {
		t.Error("task added during a pass never ran")
	}
}

func TestSchedulerPanickingTaskIsolated(t *testing.T) {
	log := &quietLogger{}
	s := NewScheduler(log)
	var after int

	s.Add("boom", 10, 1, nil, func() { panic("boom") })
	s.Add("after", 10, 1, nil, func() { after++ })

	s.Tick(10)

	if after != 1 {
		t.Errorf("task after panicking sibling ran %d times, want 1", after)
	}
	if len(log.errors) == 0 {
		t.Error("expected the panic to be logged")
	}
}

func TestSchedulerResumeRestartsStopped(t *testing.T) {
	s := NewScheduler(nil)
	s.Add("t", 10, RepeatForever, []string{"x"}, func() {})
	s.Pause("x")
	s.Stop()
	if s.Running() {
		t.Fatal("running after stop")
	}

	s.Add("t2", 10, RepeatForever, []string{"x"}, func() {})
	s.Pause("x")
	s.Resume("x")
	if !s.Running() {
		t.Error("resume did not restart the scheduler")
	}
}

func TestSchedulerTaskAddedWhilePausedIsFrozen(t *testing.T) {
	s := NewScheduler(nil)
	s.Pause("x")
	var runs int
	s.Add("t", 10, RepeatForever, []string{"x"}, func() { runs++ })

	s.Tick(100)
	if runs != 0 {
		t.Fatal("task added on a paused channel ran")
	}
	s.Resume("x")
	s.Tick(200)
	if runs != 1 {
		t.Errorf("task ran %d times after resume, want 1", runs)
	}
}
