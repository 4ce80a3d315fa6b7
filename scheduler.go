package easel

import (
	"fmt"

	"github.com/tanema/gween/ease"
)

// RepeatForever makes a task repeat until removed.
const RepeatForever = -1

// taskKind distinguishes the two task variants. A tagged variant is used
// instead of an interface so the scheduler can iterate a homogeneous slice.
type taskKind uint8

const (
	taskTimed taskKind = iota
	taskAnim
)

// Task is a named, repeatable unit of scheduled work. Plain (timed) tasks
// run their Action whenever now-lastRun reaches Delay; animation tasks
// interpolate a value over a fixed duration and self-terminate.
//
// All times are in milliseconds on the timeline supplied to Scheduler.Tick.
type Task struct {
	Name     string
	Channels []string

	kind  taskKind
	label string // precomputed panic-report name, avoids per-tick formatting

	// Timed fields.
	Delay   float64
	Repeat  int // remaining runs; RepeatForever for no limit
	Action  func()
	lastRun float64

	// Animation fields.
	From, To float64
	Duration float64
	Ease     ease.TweenFunc
	OnValue  func(float64)
	started  float64

	// Pause bookkeeping.
	pausedAt    float64
	pausedCount int     // number of this task's channels currently paused
	pausedTotal float64 // animation: accumulated paused time subtracted from elapsed
}

// onChannel reports whether the task carries the given channel tag.
func (t *Task) onChannel(ch string) bool {
	for _, c := range t.Channels {
		if c == ch {
			return true
		}
	}
	return false
}

// notifyPaused records the pause instant the first time any of the task's
// channels is paused.
func (t *Task) notifyPaused(now float64) {
	if t.pausedCount == 0 {
		t.pausedAt = now
	}
	t.pausedCount++
}

// notifyResumed folds the paused interval back into the task's timing base
// once no channel keeps it frozen. Timed tasks shift lastRun forward;
// animation tasks accumulate paused time subtracted from elapsed.
func (t *Task) notifyResumed(now float64) {
	if t.pausedCount == 0 {
		return
	}
	t.pausedCount--
	if t.pausedCount > 0 {
		return
	}
	pausedFor := now - t.pausedAt
	switch t.kind {
	case taskTimed:
		t.lastRun += pausedFor
	case taskAnim:
		t.pausedTotal += pausedFor
	}
}

// Scheduler advances a set of named tasks once per external tick. Tasks are
// partitioned into channels for pause/resume/removal scoping. Task names are
// unique: adding a task under an existing name replaces the old one.
//
// The scheduler owns no clock. The host calls Tick with a monotonic
// millisecond timestamp once per frame; nothing runs between ticks.
type Scheduler struct {
	tasks   []*Task
	paused  map[string]bool
	now     float64
	running bool
	tickBuf []*Task
	log     Logger
}

// NewScheduler creates an empty scheduler reporting task panics to log.
// A nil log falls back to the stderr logger.
func NewScheduler(log Logger) *Scheduler {
	if log == nil {
		log = NewStderrLogger()
	}
	return &Scheduler{
		paused: make(map[string]bool),
		log:    log,
	}
}

// Add schedules a plain task. delay is the minimum interval between runs in
// milliseconds; repeat is the number of runs (RepeatForever for unlimited).
// An existing task with the same name is removed first.
func (s *Scheduler) Add(name string, delay float64, repeat int, channels []string, action func()) *Task {
	t := &Task{
		Name:     name,
		Channels: channels,
		kind:     taskTimed,
		label:    fmt.Sprintf("task %q", name),
		Delay:    delay,
		Repeat:   repeat,
		Action:   action,
		lastRun:  s.now,
	}
	s.push(t)
	return t
}

// AddAnim schedules an animation task that interpolates from from to to over
// duration milliseconds, invoking onValue with the eased value every tick
// until elapsed reaches duration. The final tick delivers the exact end
// value. fn is any gween easing function (ease.Linear, ease.InOutSine, a
// user-supplied curve, ...); nil means linear.
func (s *Scheduler) AddAnim(name string, from, to, duration float64, fn ease.TweenFunc, channels []string, onValue func(float64)) *Task {
	if fn == nil {
		fn = ease.Linear
	}
	t := &Task{
		Name:     name,
		Channels: channels,
		kind:     taskAnim,
		label:    fmt.Sprintf("animation %q", name),
		Repeat:   RepeatForever,
		From:     from,
		To:       to,
		Duration: duration,
		Ease:     fn,
		OnValue:  onValue,
		started:  s.now,
	}
	s.push(t)
	return t
}

// push removes any task with the same name, then appends. The two steps are
// a single operation: same-named tasks never coexist.
func (s *Scheduler) push(t *Task) {
	s.Remove(t.Name)
	// A task added while its channel is paused freezes immediately.
	for _, ch := range t.Channels {
		if s.paused[ch] {
			t.notifyPaused(s.now)
		}
	}
	s.tasks = append(s.tasks, t)
	s.running = true
}

// Remove discards the task with the given name, if present.
func (s *Scheduler) Remove(name string) {
	for i, t := range s.tasks {
		if t.Name == name {
			copy(s.tasks[i:], s.tasks[i+1:])
			s.tasks[len(s.tasks)-1] = nil
			s.tasks = s.tasks[:len(s.tasks)-1]
			return
		}
	}
}

// Task returns the scheduled task with the given name, or nil.
func (s *Scheduler) Task(name string) *Task {
	for _, t := range s.tasks {
		if t.Name == name {
			return t
		}
	}
	return nil
}

// Len returns the number of scheduled tasks.
func (s *Scheduler) Len() int {
	return len(s.tasks)
}

// Running reports whether the scheduler is live (has not been hard-stopped
// since the last task was added).
func (s *Scheduler) Running() bool {
	return s.running
}

// Pause freezes every task carrying the channel. Frozen tasks are skipped
// entirely on Tick, with no time accounting, until Resume.
func (s *Scheduler) Pause(channel string) {
	if s.paused[channel] {
		return
	}
	s.paused[channel] = true
	for _, t := range s.tasks {
		if t.onChannel(channel) {
			t.notifyPaused(s.now)
		}
	}
}

// Resume unfreezes the channel. Affected tasks fold the paused interval back
// into their timing base, so a task that was due in 200ms when paused is
// again due in 200ms. Resuming restarts a fully stopped scheduler.
func (s *Scheduler) Resume(channel string) {
	if !s.paused[channel] {
		return
	}
	delete(s.paused, channel)
	for _, t := range s.tasks {
		if t.onChannel(channel) {
			t.notifyResumed(s.now)
		}
	}
	s.running = true
}

// Paused reports whether the channel is currently paused.
func (s *Scheduler) Paused(channel string) bool {
	return s.paused[channel]
}

// Stop without arguments is a hard reset: the scheduler halts, all pause
// state is cleared, and every task is discarded. With channels, only tasks
// carrying one of the given channels are discarded.
func (s *Scheduler) Stop(channels ...string) {
	if len(channels) == 0 {
		s.running = false
		s.tasks = nil
		s.paused = make(map[string]bool)
		return
	}
	kept := s.tasks[:0]
	for _, t := range s.tasks {
		discard := false
		for _, ch := range channels {
			if t.onChannel(ch) {
				discard = true
				break
			}
		}
		if !discard {
			kept = append(kept, t)
		}
	}
	for i := len(kept); i < len(s.tasks); i++ {
		s.tasks[i] = nil
	}
	s.tasks = kept
}

// Tick advances the scheduler to the given monotonic timestamp
// (milliseconds) and runs every due, unpaused task. The task list is
// snapshotted first: tasks added or removed by an in-flight callback take
// effect next tick. A panicking task is recovered and logged; it does not
// stop the pass.
func (s *Scheduler) Tick(now float64) {
	s.now = now
	if !s.running {
		return
	}

	s.tickBuf = append(s.tickBuf[:0], s.tasks...)

	for _, t := range s.tickBuf {
		if t.pausedCount > 0 {
			continue
		}
		// The task may have been replaced or removed earlier in this pass.
		if s.Task(t.Name) != t {
			continue
		}
		switch t.kind {
		case taskTimed:
			s.runTimed(t, now)
		case taskAnim:
			s.runAnim(t, now)
		}
	}
}

func (s *Scheduler) runTimed(t *Task, now float64) {
	if now-t.lastRun < t.Delay {
		return
	}
	t.lastRun = now
	safeCall(s.log, t.label, t.Action)
	if t.Repeat == RepeatForever {
		return
	}
	t.Repeat--
	if t.Repeat <= 0 {
		s.Remove(t.Name)
	}
}

func (s *Scheduler) runAnim(t *Task, now float64) {
	elapsed := now - t.started - t.pausedTotal
	if elapsed < 0 {
		elapsed = 0
	}
	done := elapsed >= t.Duration || t.Duration <= 0
	if done {
		elapsed = t.Duration
	}

	// Easing functions can drift in float32; pin the endpoint.
	value := t.To
	if !done {
		value = float64(t.Ease(float32(elapsed), float32(t.From), float32(t.To-t.From), float32(t.Duration)))
	}
	safeCall(s.log, t.label, func() {
		t.OnValue(value)
	})

	if done {
		s.Remove(t.Name)
	}
}
