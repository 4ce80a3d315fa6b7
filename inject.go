package easel

// syntheticKind distinguishes injected pointer events.
type syntheticKind uint8

const (
	synthPress syntheticKind = iota
	synthMove
	synthRelease
	synthLeave
)

// syntheticPointerEvent is a single injected pointer event in surface
// coordinates. Injected events are consumed one per frame and run through
// the same state machine as real mouse input, so clicks and double-clicks
// are synthesized identically.
type syntheticPointerEvent struct {
	x, y float64
	kind syntheticKind
}

// InjectPress queues a pointer press at the given surface coordinates.
// The event is consumed on the next frame's Tick. Injecting any event
// switches the context to synthetic input: real mouse state is ignored
// from then on. Intended for automated tests and scripted replay.
func (c *Context) InjectPress(x, y float64) {
	c.inject(syntheticPointerEvent{x: x, y: y, kind: synthPress})
}

// InjectMove queues a pointer move to the given surface coordinates. Use
// between InjectPress and InjectRelease to simulate a drag.
func (c *Context) InjectMove(x, y float64) {
	c.inject(syntheticPointerEvent{x: x, y: y, kind: synthMove})
}

// InjectRelease queues a pointer release at the given surface coordinates.
func (c *Context) InjectRelease(x, y float64) {
	c.inject(syntheticPointerEvent{x: x, y: y, kind: synthRelease})
}

// InjectLeave queues the pointer leaving the surface.
func (c *Context) InjectLeave() {
	c.inject(syntheticPointerEvent{kind: synthLeave})
}

func (c *Context) inject(evt syntheticPointerEvent) {
	c.syntheticInput = true
	c.injectQueue = append(c.injectQueue, evt)
}

// InjectClick is a convenience that queues a press followed by a release at
// the same coordinates. Consumes two frames; the click (and a double-click,
// when two land within the double-click window) is synthesized on release.
func (c *Context) InjectClick(x, y float64) {
	c.InjectPress(x, y)
	c.InjectRelease(x, y)
}

// InjectDrag queues a full drag sequence: press at (fromX, fromY), linearly
// interpolated moves over frames-2 intermediate frames, and release at
// (toX, toY). The total sequence consumes frames frames. Minimum is 2
// (press + release).
func (c *Context) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	c.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		// The last step lands exactly on the end point so the drop
		// coordinates match the requested destination.
		t := float64(i) / float64(steps)
		c.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	c.InjectRelease(toX, toY)
}

// processInjectedInput pops one event from the inject queue and feeds it
// through the shared pointer state machine. Returns true if an event was
// consumed (real mouse input is skipped that frame).
func (c *Context) processInjectedInput() bool {
	if len(c.injectQueue) == 0 {
		return false
	}
	evt := c.injectQueue[0]
	copy(c.injectQueue, c.injectQueue[1:])
	c.injectQueue = c.injectQueue[:len(c.injectQueue)-1]

	switch evt.kind {
	case synthLeave:
		c.mouse.down = false
		c.mouse.haveLast = false
		c.gestures.Leave()
	case synthPress:
		c.feedPointer(Vec2{evt.x, evt.y}, true)
	case synthMove:
		c.feedPointer(Vec2{evt.x, evt.y}, c.mouse.down)
	case synthRelease:
		c.feedPointer(Vec2{evt.x, evt.y}, false)
	}
	return true
}
