package easel

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// clickDeadZone is the maximum press-to-release travel, in pixels, for a
// release to count as a click.
const clickDeadZone = 4.0

// mouseState tracks the single mouse pointer across frames for the input
// adapter. The gesture dispatcher itself is fed discrete events only.
type mouseState struct {
	down         bool
	start        Vec2
	last         Vec2
	haveLast     bool
	inside       bool
	lastClickAt  float64
	lastClickPos Vec2
	haveClick    bool
}

// processInput runs once per Tick: it consumes one injected event if any
// are queued (real input is skipped that frame, matching injection's
// one-event-per-frame pacing), otherwise polls the real mouse and feeds the
// dispatcher.
func (c *Context) processInput() {
	if c.processInjectedInput() {
		return
	}
	// Once any event has been injected the context is driven synthetically;
	// real mouse state would fight the injected pointer state machine.
	if c.syntheticInput {
		return
	}

	mx, my := ebiten.CursorPosition()
	p := Vec2{X: float64(mx), Y: float64(my)}
	inside := p.X >= 0 && p.Y >= 0 && p.X < float64(c.width) && p.Y < float64(c.height)

	if !inside {
		if c.mouse.inside {
			c.mouse.inside = false
			c.mouse.down = false
			c.mouse.haveLast = false
			c.gestures.Leave()
		}
		return
	}
	c.mouse.inside = true

	pressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	c.feedPointer(p, pressed)
}

// feedPointer advances the pointer state machine one step. Shared by real
// and injected input so both take the identical dispatch path, including
// click and double-click synthesis.
func (c *Context) feedPointer(p Vec2, pressed bool) {
	m := &c.mouse

	if !m.haveLast || p != m.last {
		c.gestures.Move(p)
		m.last = p
		m.haveLast = true
	}

	switch {
	case pressed && !m.down:
		m.down = true
		m.start = p
		c.gestures.Press(p)
	case !pressed && m.down:
		m.down = false
		c.gestures.Release(p)
		c.synthesizeClick(p)
	}
}

// synthesizeClick turns a short press-release into a Click, and two clicks
// within doubleClickDelay of each other into an additional DoubleClick.
func (c *Context) synthesizeClick(p Vec2) {
	m := &c.mouse
	if dist(p, m.start) > clickDeadZone {
		return
	}
	now := c.sched.now
	c.gestures.Click(p)

	if m.haveClick && now-m.lastClickAt <= doubleClickDelay && dist(p, m.lastClickPos) <= clickDeadZone*2 {
		c.gestures.DoubleClick(p)
		m.haveClick = false
		return
	}
	m.lastClickAt = now
	m.lastClickPos = p
	m.haveClick = true
}

func dist(a, b Vec2) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx + dy*dy)
}
