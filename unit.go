package easel

import (
	"math"

	"github.com/google/uuid"
	"github.com/hajimehoshi/ebiten/v2"
)

// HitShape is a custom hit testing region in a unit's local, un-rotated,
// un-scaled coordinate space ([0,w] x [0,h], origin at the top-left corner).
type HitShape interface {
	Contains(x, y float64) bool
}

// HitCircle is a circular hit area in local coordinates.
type HitCircle struct {
	CenterX, CenterY, Radius float64
}

// Contains reports whether (x, y) lies inside or on the circle.
func (c HitCircle) Contains(x, y float64) bool {
	dx := x - c.CenterX
	dy := y - c.CenterY
	return dx*dx+dy*dy <= c.Radius*c.Radius
}

type hitNone struct{}

func (hitNone) Contains(x, y float64) bool { return false }

// NoHit is a HitShape that never matches. Assign it to a unit that should
// render but stay transparent to pointer events (overlays, readouts).
var NoHit HitShape = hitNone{}

// TextBlock is one named text slot on a unit.
type TextBlock struct {
	Content string
	Align   TextAlign
	Face    Face
	Color   Color
}

// DragInfo carries the start point of the press and the current pointer
// position for drag and drop callbacks.
type DragInfo struct {
	Start   Vec2
	Current Vec2
}

// UnitConfig configures a new unit. Every field is optional; the zero value
// produces an enabled 0x0 white unit at the origin with a generated name.
type UnitConfig struct {
	Name string // process-unique; generated when empty
	Pos  Vec2
	Size Vec2
	// Scale defaults to (1, 1). A zero value is replaced by the default,
	// so a deliberately invisible unit should use Enabled/Opacity instead.
	Scale    Vec2
	Rotation float64 // radians, applied around the unit's center
	Z        int     // render and hit-test ordering key

	Color      Color // defaults to ColorWhite
	LabelColor Color // defaults to ColorBlack
	Image      *ebiten.Image
	Fit        ImageFit
	Opacity    float64 // defaults to 1
	// CornerRadius rounds the rectangle; Shadow* add a drop shadow. Blur is
	// the softening spread in pixels (0 for a hard-edged shadow).
	CornerRadius float64
	ShadowOffset Vec2
	ShadowBlur   float64
	ShadowColor  Color

	Disabled bool // units start enabled unless set

	// Watch subscribes the given callbacks to store keys at construction.
	// The subscriptions are revoked by Unit.Delete.
	Watch map[string]func(any)
}

// Unit is a positioned, styled, interactive rectangle registered in a
// Context. Mutate it through the Set* methods, which mirror the new value
// into the context's store under "<name>::<attr>" so other units can react;
// direct field writes are visible to the renderer but publish nothing.
type Unit struct {
	Name string

	// Geometry. Pos is the top-left corner; Rotation is applied around the
	// center.
	Pos      Vec2
	Size     Vec2
	Scale    Vec2
	Rotation float64
	Z        int

	// Style.
	Color        Color
	LabelColor   Color
	Image        *ebiten.Image
	Fit          ImageFit
	Opacity      float64
	CornerRadius float64
	ShadowOffset Vec2
	ShadowBlur   float64
	ShadowColor  Color

	// Text slots by name.
	Texts map[string]*TextBlock

	// Enabled gates both rendering and hit testing.
	Enabled bool

	// CustomDraw replaces the default renderer for this unit when set.
	CustomDraw func(u *Unit, dst *ebiten.Image)

	// HitShape overrides the default rectangular hit test. It is queried in
	// local space, after the point has been un-rotated and un-scaled.
	HitShape HitShape

	// Gesture handlers. Nil handlers cost nothing.
	OnClick       func()
	OnDoubleClick func()
	OnHover       func()
	OnMouseLeave  func()
	OnMouseDown   func()
	OnMouseUp     func()
	OnDrag        func(DragInfo)
	OnDrop        func(DragInfo)
	OnLongPress   func()

	ctx     *Context
	subs    []Subscription // watch handles, revoked on Delete
	binding []Subscription // position-binding handles, revoked on Unbind/Delete
	deleted bool
}

// NewUnit creates a unit from cfg and registers it in ctx. The unit is owned
// by ctx until Delete.
func NewUnit(ctx *Context, cfg UnitConfig) *Unit {
	name := cfg.Name
	if name == "" {
		name = "unit-" + uuid.NewString()
	}
	scale := cfg.Scale
	if scale == (Vec2{}) {
		scale = Vec2{1, 1}
	}
	col := cfg.Color
	if col == (Color{}) {
		col = ColorWhite
	}
	label := cfg.LabelColor
	if label == (Color{}) {
		label = ColorBlack
	}
	opacity := cfg.Opacity
	if opacity == 0 {
		opacity = 1
	}

	u := &Unit{
		Name:         name,
		Pos:          cfg.Pos,
		Size:         cfg.Size,
		Scale:        scale,
		Rotation:     cfg.Rotation,
		Z:            cfg.Z,
		Color:        col,
		LabelColor:   label,
		Image:        cfg.Image,
		Fit:          cfg.Fit,
		Opacity:      opacity,
		CornerRadius: cfg.CornerRadius,
		ShadowOffset: cfg.ShadowOffset,
		ShadowBlur:   cfg.ShadowBlur,
		ShadowColor:  cfg.ShadowColor,
		Texts:        make(map[string]*TextBlock),
		Enabled:      !cfg.Disabled,
		ctx:          ctx,
	}

	for key, fn := range cfg.Watch {
		u.subs = append(u.subs, ctx.Store().OnChange(key, fn))
	}

	ctx.addUnit(u)
	u.publishAll()
	return u
}

// Context returns the context that owns this unit.
func (u *Unit) Context() *Context {
	return u.ctx
}

// Deleted reports whether the unit has been removed from its context.
func (u *Unit) Deleted() bool {
	return u.deleted
}

// publishAll mirrors the geometry attributes into the store so bindings
// established before or after construction see a value.
func (u *Unit) publishAll() {
	s := u.ctx.Store()
	s.Set(u.key("pos"), u.Pos)
	s.Set(u.key("size"), u.Size)
	s.Set(u.key("scale"), u.Scale)
	s.Set(u.key("rot"), u.Rotation)
	s.Set(u.key("z"), u.Z)
}

func (u *Unit) key(attr string) string {
	return u.Name + "::" + attr
}

// Publish mirrors an arbitrary attribute value into the store under
// "<name>::<attr>".
func (u *Unit) Publish(attr string, value any) {
	u.ctx.Store().Set(u.key(attr), value)
}

// SetPos moves the unit and publishes "<name>::pos".
func (u *Unit) SetPos(p Vec2) {
	u.Pos = p
	u.Publish("pos", p)
}

// SetSize resizes the unit and publishes "<name>::size".
func (u *Unit) SetSize(s Vec2) {
	u.Size = s
	u.Publish("size", s)
}

// SetScale sets the unit's scale and publishes "<name>::scale".
func (u *Unit) SetScale(s Vec2) {
	u.Scale = s
	u.Publish("scale", s)
}

// SetRotation sets the rotation in radians and publishes "<name>::rot".
func (u *Unit) SetRotation(r float64) {
	u.Rotation = r
	u.Publish("rot", r)
}

// SetZ sets the z-order key, re-sorts the render order lazily, and
// publishes "<name>::z".
func (u *Unit) SetZ(z int) {
	u.Z = z
	u.ctx.markZDirty()
	u.Publish("z", z)
}

// SetText sets the content of a text slot, creating the slot with default
// styling on first use.
func (u *Unit) SetText(slot, content string) *TextBlock {
	tb := u.Texts[slot]
	if tb == nil {
		tb = &TextBlock{Color: u.LabelColor}
		u.Texts[slot] = tb
	}
	tb.Content = content
	return tb
}

// Delete removes the unit from its context, revokes every store
// subscription the unit holds (watch callbacks and position bindings), and
// marks it deleted. Store entries the unit published are NOT purged: keys
// under "<name>::..." keep their last value. Other units bound to this one
// keep their subscriptions and simply stop receiving updates.
func (u *Unit) Delete() {
	if u.deleted {
		return
	}
	u.UnbindPositionRelativeTo()
	for _, sub := range u.subs {
		sub.Remove()
	}
	u.subs = nil
	u.ctx.removeUnit(u)
	u.deleted = true
}

// HitTest reports whether the world-space point p falls inside the unit's
// rotated, scaled rectangle. The point is transformed into the unit's local
// un-rotated, un-scaled space: translate by the negative center, inverse
// rotate, divide by scale, shift into [0,w]x[0,h], then test containment.
func (u *Unit) HitTest(p Vec2) bool {
	cx := u.Pos.X + u.Size.X/2
	cy := u.Pos.Y + u.Size.Y/2

	dx := p.X - cx
	dy := p.Y - cy

	if u.Rotation != 0 {
		sin, cos := math.Sincos(-u.Rotation)
		dx, dy = dx*cos-dy*sin, dx*sin+dy*cos
	}

	if u.Scale.X != 0 {
		dx /= u.Scale.X
	}
	if u.Scale.Y != 0 {
		dy /= u.Scale.Y
	}

	lx := dx + u.Size.X/2
	ly := dy + u.Size.Y/2
	if u.HitShape != nil {
		return u.HitShape.Contains(lx, ly)
	}
	return lx >= 0 && lx <= u.Size.X && ly >= 0 && ly <= u.Size.Y
}

// Box returns the unit's effective unrotated bounding box: position plus
// size scaled by the unit's scale factors, still anchored at Pos.
func (u *Unit) Box() Rect {
	return Rect{
		X:      u.Pos.X,
		Y:      u.Pos.Y,
		Width:  u.Size.X * u.Scale.X,
		Height: u.Size.Y * u.Scale.Y,
	}
}
