package easel

import (
	"errors"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
)

// RenderChannel tags the render task. Pause it to freeze drawing while the
// rest of the scene keeps running.
const RenderChannel = "render"

// SurfaceSizeKey is the store key under which the context republishes the
// surface size (a Vec2) on every resize.
const SurfaceSizeKey = "surface::size"

// ErrNoSurface is returned by NewContext when neither a surface image nor
// positive dimensions are configured.
var ErrNoSurface = errors.New("no drawing surface")

// ContextConfig configures a new Context.
type ContextConfig struct {
	// Width and Height create an owned offscreen surface. Ignored when
	// Surface is set.
	Width, Height int
	// Surface is an existing image to draw on. Optional.
	Surface *ebiten.Image
	// Logger receives recovered panics and warnings. Defaults to stderr.
	Logger Logger
}

// Context is the aggregate root: it owns the drawing surface, the unit
// collection, the shared Store and Scheduler, the gesture dispatcher, and
// nine layout anchors that republish their position whenever the surface is
// resized.
type Context struct {
	surface *ebiten.Image
	width   int
	height  int

	units    []*Unit
	zDirty   bool
	sorted   []*Unit
	scanBuf  []*Unit
	anchors  map[Direction]*Unit
	store    *Store
	sched    *Scheduler
	gestures *GestureDetector
	log      Logger

	renderProc func(*Context)

	// Input adapter state (input.go).
	mouse          mouseState
	injectQueue    []syntheticPointerEvent
	syntheticInput bool
	runner         *GestureRunner

	// Screenshot state (screenshot.go).
	screenshotQueue []string

	// ScreenshotDir is where queued screenshots are written as PNGs.
	ScreenshotDir string

	// ClearColor fills the surface before each render pass.
	ClearColor Color
}

// NewContext creates a context with its store, scheduler, gesture
// dispatcher, and anchors. Fails with ErrNoSurface when cfg provides
// neither a surface nor positive dimensions: a context without a drawing
// surface is a configuration error.
func NewContext(cfg ContextConfig) (*Context, error) {
	log := cfg.Logger
	if log == nil {
		log = NewStderrLogger()
	}

	var surface *ebiten.Image
	w, h := cfg.Width, cfg.Height
	if cfg.Surface != nil {
		surface = cfg.Surface
		b := surface.Bounds()
		w, h = b.Dx(), b.Dy()
	} else if w > 0 && h > 0 {
		surface = ebiten.NewImage(w, h)
	} else {
		return nil, ErrNoSurface
	}

	ctx := &Context{
		surface:       surface,
		width:         w,
		height:        h,
		store:         NewStore(log),
		sched:         NewScheduler(log),
		log:           log,
		ScreenshotDir: "screenshots",
	}
	ctx.gestures = newGestureDetector(ctx)

	// Anchors are zero-size disabled units: invisible, unhittable, but
	// their published positions are bind targets for layout.
	ctx.anchors = make(map[Direction]*Unit, len(Directions))
	for _, dir := range Directions {
		ctx.anchors[dir] = NewUnit(ctx, UnitConfig{
			Name:     "anchor:" + dir.String(),
			Disabled: true,
		})
	}
	ctx.Resize(w, h)

	return ctx, nil
}

// Surface returns the context's drawing surface.
func (c *Context) Surface() *ebiten.Image {
	return c.surface
}

// Store returns the shared observable store.
func (c *Context) Store() *Store {
	return c.store
}

// Scheduler returns the shared scheduler.
func (c *Context) Scheduler() *Scheduler {
	return c.sched
}

// Gestures returns the gesture dispatcher.
func (c *Context) Gestures() *GestureDetector {
	return c.gestures
}

// Logger returns the context's logging sink.
func (c *Context) Logger() Logger {
	return c.log
}

// Size returns the surface dimensions in pixels.
func (c *Context) Size() (w, h int) {
	return c.width, c.height
}

// Anchor returns the layout anchor unit for the given placement. Bind to
// it to keep a unit positioned relative to the surface edges:
//
//	title.BindPositionRelativeTo(ctx.Anchor(easel.DirTop), easel.DirBottom, easel.Vec2{Y: 20})
func (c *Context) Anchor(dir Direction) *Unit {
	return c.anchors[dir]
}

// Resize updates the surface dimensions, publishes SurfaceSizeKey, and
// repositions all nine anchors, which republish their positions and pull
// every bound unit along on the same synchronous pass. When the context
// owns its surface a new image is allocated.
func (c *Context) Resize(w, h int) {
	if w != c.width || h != c.height {
		c.width = w
		c.height = h
		c.surface = ebiten.NewImage(w, h)
	}
	fw, fh := float64(w), float64(h)
	c.store.Set(SurfaceSizeKey, Vec2{X: fw, Y: fh})

	c.anchors[DirTopLeft].SetPos(Vec2{0, 0})
	c.anchors[DirTop].SetPos(Vec2{fw / 2, 0})
	c.anchors[DirTopRight].SetPos(Vec2{fw, 0})
	c.anchors[DirLeft].SetPos(Vec2{0, fh / 2})
	c.anchors[DirCenter].SetPos(Vec2{fw / 2, fh / 2})
	c.anchors[DirRight].SetPos(Vec2{fw, fh / 2})
	c.anchors[DirBottomLeft].SetPos(Vec2{0, fh})
	c.anchors[DirBottom].SetPos(Vec2{fw / 2, fh})
	c.anchors[DirBottomRight].SetPos(Vec2{fw, fh})
}

// addUnit appends a unit in insertion order. Called from NewUnit.
func (c *Context) addUnit(u *Unit) {
	c.units = append(c.units, u)
	c.zDirty = true
}

// removeUnit detaches a unit from the collection. Called from Unit.Delete.
func (c *Context) removeUnit(u *Unit) {
	for i, x := range c.units {
		if x == u {
			copy(c.units[i:], c.units[i+1:])
			c.units[len(c.units)-1] = nil
			c.units = c.units[:len(c.units)-1]
			c.zDirty = true
			return
		}
	}
}

// Units returns the unit collection in insertion order. The returned slice
// MUST NOT be mutated by the caller.
func (c *Context) Units() []*Unit {
	return c.units
}

// DeleteUnit deletes the unit with the given name, if present. Equivalent
// to UnitByName(name).Delete().
func (c *Context) DeleteUnit(name string) {
	if u := c.UnitByName(name); u != nil {
		u.Delete()
	}
}

// UnitByName returns the unit with the given name, or nil.
func (c *Context) UnitByName(name string) *Unit {
	for _, u := range c.units {
		if u.Name == name {
			return u
		}
	}
	return nil
}

// unitsSnapshot copies the unit list into a reused buffer so hit-test scans
// survive mutation by the handlers they invoke.
func (c *Context) unitsSnapshot() []*Unit {
	c.scanBuf = append(c.scanBuf[:0], c.units...)
	return c.scanBuf
}

// markZDirty invalidates the cached z-sorted order.
func (c *Context) markZDirty() {
	c.zDirty = true
}

// SortedUnits returns the units in ascending z-order. Units with equal Z
// keep insertion order (stable sort). The sorted slice is cached until a
// unit is added, removed, or re-ordered.
func (c *Context) SortedUnits() []*Unit {
	if c.zDirty {
		c.sorted = append(c.sorted[:0], c.units...)
		sort.SliceStable(c.sorted, func(i, j int) bool {
			return c.sorted[i].Z < c.sorted[j].Z
		})
		c.zDirty = false
	}
	return c.sorted
}

// SetRenderProc registers fn as the render procedure: a zero-delay infinite
// task named "render" on RenderChannel. fn is expected to clear the surface
// and draw enabled units in ascending z-order; DrawUnits does exactly that
// and is registered by default from Run.
func (c *Context) SetRenderProc(fn func(*Context)) {
	c.renderProc = fn
	c.sched.Add("render", 0, RepeatForever, []string{RenderChannel}, func() {
		fn(c)
		c.flushScreenshots()
	})
}

// Tick advances the whole context by one frame: injected and real input is
// dispatched, then the scheduler runs every due task (render included) at
// the given monotonic millisecond timestamp.
func (c *Context) Tick(now float64) {
	c.processInput()
	if c.runner != nil {
		c.runner.step(c)
	}
	c.sched.Tick(now)
}
