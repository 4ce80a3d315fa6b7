// Package easel is an interactive 2D presentation engine for [Ebitengine].
//
// Easel provides a reactive scene of positioned, styled rectangular units, a
// cooperative scheduler for timed and tweened tasks, an observable key-value
// store that drives layout and visual state, and a pointer-gesture
// dispatcher: the plumbing an interactive presentation or dashboard needs.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and frame
// loop for you:
//
//	ctx, _ := easel.NewContext(easel.ContextConfig{Width: 640, Height: 480})
//	// ... add units ...
//	easel.Run(ctx, easel.RunConfig{Title: "My Deck", Width: 640, Height: 480})
//
// For full control, implement [ebiten.Game] yourself: call [Context.Tick]
// with a monotonic millisecond timestamp each Update, and blit
// [Context.Surface] each Draw.
//
// # Units and reactivity
//
// Every visual element is a [Unit], created with [NewUnit] and a
// [UnitConfig]. Mutators such as [Unit.SetPos] mirror the new value into the
// context's [Store] under "<name>::<attr>", so any other unit (or arbitrary
// code) can react to it via [Store.OnChange]. Position bindings build on
// this:
//
//	label.BindPositionRelativeTo(card, easel.DirRight, easel.Vec2{X: 5})
//
// keeps label flush to card's right edge, re-placing it synchronously
// whenever card moves or either unit resizes.
//
// # Scheduler
//
// Timed work runs through the [Scheduler]: plain repeating tasks via
// [Scheduler.Add], value animations via [Scheduler.AddAnim] with any
// ease.TweenFunc from [gween]. Tasks carry channel tags; pausing a channel
// freezes its tasks and folds the paused interval back into their timing on
// resume. The render procedure itself is a task on channel "render".
//
// # Gestures
//
// The [GestureDetector] routes pointer events to the topmost enabled unit
// under the pointer (reverse insertion order), driving click, double-click,
// drag, drop, hover, and long-press callbacks on the unit.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
package easel
