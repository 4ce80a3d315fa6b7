package easel

// Gesture timing constants, in milliseconds on the scheduler timeline.
const (
	longPressDelay   = 500.0
	longPressTask    = "gesture:longpress"
	hoverPollTask    = "gesture:hover"
	doubleClickDelay = 300.0
)

// GestureChannel tags the dispatcher's scheduler tasks (hover polling and
// pending long-presses). Pausing it freezes gesture timing.
const GestureChannel = "gesture"

// EventSink receives every dispatched gesture for external consumers (the
// ECS bridge in easel/ecs, recording, replay). Optional.
type EventSink interface {
	EmitGesture(GestureEvent)
}

// GestureDetector routes discrete pointer events to units. The input
// collaborator (see input.go, or a host-provided adapter) translates device
// events into surface-local coordinates and calls Press, Release, Move,
// Leave, Click, and DoubleClick. Hover is not event-driven: a zero-delay
// scheduler task re-resolves the unit under the last known pointer position
// every tick and fires enter/leave on change.
//
// Exactly one unit receives each discrete event: the dispatcher scans the
// unit collection in reverse insertion order and stops at the first enabled
// unit whose hit test passes.
type GestureDetector struct {
	ctx  *Context
	sink EventSink

	dragging    bool
	dragStart   Vec2
	dragUnit    *Unit
	hovered     *Unit
	lastPointer Vec2
	hasPointer  bool
}

// newGestureDetector wires a detector to ctx and registers the hover
// polling task on the gesture channel.
func newGestureDetector(ctx *Context) *GestureDetector {
	g := &GestureDetector{ctx: ctx}
	ctx.Scheduler().Add(hoverPollTask, 0, RepeatForever, []string{GestureChannel}, g.pollHover)
	return g
}

// SetEventSink forwards every dispatched gesture to sink. Pass nil to
// disconnect.
func (g *GestureDetector) SetEventSink(sink EventSink) {
	g.sink = sink
}

// Hovered returns the unit currently under the pointer, or nil.
func (g *GestureDetector) Hovered() *Unit {
	return g.hovered
}

// Dragging reports whether a press is being tracked.
func (g *GestureDetector) Dragging() bool {
	return g.dragging
}

// topmostHit resolves the unit that should receive a discrete event at p:
// the most recently added enabled unit whose hit test passes. Iterates a
// snapshot so handlers that add or delete units mid-dispatch cannot corrupt
// the scan.
func (g *GestureDetector) topmostHit(p Vec2) *Unit {
	units := g.ctx.unitsSnapshot()
	for i := len(units) - 1; i >= 0; i-- {
		u := units[i]
		if !u.Enabled {
			continue
		}
		if u.HitTest(p) {
			return u
		}
	}
	return nil
}

// Press handles a pointer press at p: fires OnMouseDown on the hit unit,
// begins drag tracking, and arms the long-press timer.
func (g *GestureDetector) Press(p Vec2) {
	g.lastPointer = p
	g.hasPointer = true

	hit := g.topmostHit(p)
	g.dragging = true
	g.dragStart = p
	g.dragUnit = hit

	if hit != nil {
		g.fire(GestureMouseDown, hit, p, func() {
			if hit.OnMouseDown != nil {
				hit.OnMouseDown()
			}
		})
	}

	g.ctx.Scheduler().Add(longPressTask, longPressDelay, 1, []string{GestureChannel}, func() {
		if hit != nil {
			g.fire(GestureLongPress, hit, p, func() {
				if hit.OnLongPress != nil {
					hit.OnLongPress()
				}
			})
		}
	})
}

// Release handles a pointer release at p: cancels the long-press timer and,
// if a press was being tracked, fires OnMouseUp then OnDrop on the unit
// that was pressed (never re-resolved by hit test), then clears drag state.
func (g *GestureDetector) Release(p Vec2) {
	g.lastPointer = p
	g.hasPointer = true
	g.cancelLongPress()

	if !g.dragging {
		return
	}
	pressed := g.dragUnit
	start := g.dragStart
	g.dragging = false
	g.dragUnit = nil

	if pressed == nil {
		return
	}
	g.fire(GestureMouseUp, pressed, p, func() {
		if pressed.OnMouseUp != nil {
			pressed.OnMouseUp()
		}
	})
	info := DragInfo{Start: start, Current: p}
	g.fireDrag(GestureDrop, pressed, info, pressed.OnDrop)
}

// Move handles pointer movement to p. While a press is tracked, OnDrag
// fires on the pressed unit regardless of what is currently under the
// pointer.
func (g *GestureDetector) Move(p Vec2) {
	g.lastPointer = p
	g.hasPointer = true

	if g.dragging && g.dragUnit != nil {
		info := DragInfo{Start: g.dragStart, Current: p}
		g.fireDrag(GestureDrag, g.dragUnit, info, g.dragUnit.OnDrag)
	}
}

// Leave handles the pointer leaving the surface: cancels the long-press
// timer, clears drag state, and fires OnMouseLeave on any hovered unit.
func (g *GestureDetector) Leave() {
	g.cancelLongPress()
	g.dragging = false
	g.dragUnit = nil
	g.hasPointer = false

	if g.hovered != nil {
		old := g.hovered
		g.hovered = nil
		g.fire(GestureMouseLeave, old, g.lastPointer, func() {
			if old.OnMouseLeave != nil {
				old.OnMouseLeave()
			}
		})
	}
}

// Click resolves the topmost hit unit at p and fires OnClick.
func (g *GestureDetector) Click(p Vec2) {
	if hit := g.topmostHit(p); hit != nil {
		g.fire(GestureClick, hit, p, func() {
			if hit.OnClick != nil {
				hit.OnClick()
			}
		})
	}
}

// DoubleClick resolves the topmost hit unit at p and fires OnDoubleClick.
func (g *GestureDetector) DoubleClick(p Vec2) {
	if hit := g.topmostHit(p); hit != nil {
		g.fire(GestureDoubleClick, hit, p, func() {
			if hit.OnDoubleClick != nil {
				hit.OnDoubleClick()
			}
		})
	}
}

// pollHover runs every tick on the gesture channel: re-resolve the unit
// under the last known pointer position and fire leave/enter on change.
func (g *GestureDetector) pollHover() {
	if !g.hasPointer {
		return
	}
	hit := g.topmostHit(g.lastPointer)
	if hit == g.hovered {
		return
	}
	if g.hovered != nil {
		old := g.hovered
		g.fire(GestureMouseLeave, old, g.lastPointer, func() {
			if old.OnMouseLeave != nil {
				old.OnMouseLeave()
			}
		})
	}
	if hit != nil {
		g.fire(GestureHover, hit, g.lastPointer, func() {
			if hit.OnHover != nil {
				hit.OnHover()
			}
		})
	}
	g.hovered = hit
}

func (g *GestureDetector) cancelLongPress() {
	g.ctx.Scheduler().Remove(longPressTask)
}

// fire runs a unit handler with panic isolation and forwards the event to
// the sink.
func (g *GestureDetector) fire(t GestureType, u *Unit, p Vec2, invoke func()) {
	safeCall(g.ctx.Logger(), "gesture handler on "+u.Name, invoke)
	if g.sink != nil {
		g.sink.EmitGesture(GestureEvent{Type: t, UnitName: u.Name, Point: p})
	}
}

func (g *GestureDetector) fireDrag(t GestureType, u *Unit, info DragInfo, handler func(DragInfo)) {
	safeCall(g.ctx.Logger(), "gesture handler on "+u.Name, func() {
		if handler != nil {
			handler(info)
		}
	})
	if g.sink != nil {
		g.sink.EmitGesture(GestureEvent{Type: t, UnitName: u.Name, Point: info.Current, Start: info.Start})
	}
}
