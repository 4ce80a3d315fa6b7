package easel

import (
	"math"
	"testing"
)

func testContext(t *testing.T) *Context {
	t.Helper()
	ctx, err := NewContext(ContextConfig{Width: 640, Height: 480, Logger: &quietLogger{}})
	if err != nil {
		t.Fatalf("NewContext: %v", err)
	}
	return ctx
}

func TestUnitDefaults(t *testing.T) {
	ctx := testContext(t)
	u := NewUnit(ctx, UnitConfig{})

	if u.Name == "" {
		t.Error("expected a generated name")
	}
	if u.Scale != (Vec2{1, 1}) {
		t.Errorf("Scale = %v, want (1,1)", u.Scale)
	}
	if u.Color != ColorWhite {
		t.Errorf("Color = %v, want white", u.Color)
	}
	if u.Opacity != 1 {
		t.Errorf("Opacity = %f, want 1", u.Opacity)
	}
	if !u.Enabled {
		t.Error("unit not enabled by default")
	}
}

func TestUnitGeneratedNamesAreUnique(t *testing.T) {
	ctx := testContext(t)
	a := NewUnit(ctx, UnitConfig{})
	b := NewUnit(ctx, UnitConfig{})
	if a.Name == b.Name {
		t.Errorf("two generated names collide: %q", a.Name)
	}
}

func TestUnitSettersMirrorIntoStore(t *testing.T) {
	ctx := testContext(t)
	u := NewUnit(ctx, UnitConfig{Name: "u"})

	u.SetPos(Vec2{10, 20})
	v, err := ctx.Store().Get("u::pos")
	if err != nil {
		t.Fatalf("pos not mirrored: %v", err)
	}
	if v.(Vec2) != (Vec2{10, 20}) {
		t.Errorf("mirrored pos = %v, want (10,20)", v)
	}

	u.SetRotation(1.5)
	if got := ctx.Store().MustGet("u::rot").(float64); got != 1.5 {
		t.Errorf("mirrored rot = %v, want 1.5", got)
	}

	u.SetSize(Vec2{5, 6})
	if got := ctx.Store().MustGet("u::size").(Vec2); got != (Vec2{5, 6}) {
		t.Errorf("mirrored size = %v, want (5,6)", got)
	}
}

func TestUnitAttributesPublishedAtConstruction(t *testing.T) {
	ctx := testContext(t)
	NewUnit(ctx, UnitConfig{Name: "u", Pos: Vec2{3, 4}})

	got := ctx.Store().MustGet("u::pos").(Vec2)
	if got != (Vec2{3, 4}) {
		t.Errorf("initial pos = %v, want (3,4)", got)
	}
}

func TestUnitWatchFiresOnStoreSet(t *testing.T) {
	ctx := testContext(t)
	var got any
	NewUnit(ctx, UnitConfig{
		Name:  "u",
		Watch: map[string]func(any){"signal": func(v any) { got = v }},
	})

	ctx.Store().Set("signal", 99)
	if got != 99 {
		t.Errorf("watch callback got %v, want 99", got)
	}
}

func TestUnitDeleteRevokesWatches(t *testing.T) {
	ctx := testContext(t)
	var calls int
	u := NewUnit(ctx, UnitConfig{
		Name:  "u",
		Watch: map[string]func(any){"signal": func(v any) { calls++ }},
	})

	u.Delete()
	ctx.Store().Set("signal", 1)

	if calls != 0 {
		t.Errorf("watch fired %d times after Delete, want 0", calls)
	}
	if ctx.UnitByName("u") != nil {
		t.Error("unit still registered after Delete")
	}
	if !u.Deleted() {
		t.Error("Deleted() = false after Delete")
	}
}

func TestUnitDeleteKeepsStoreEntries(t *testing.T) {
	ctx := testContext(t)
	u := NewUnit(ctx, UnitConfig{Name: "u", Pos: Vec2{1, 2}})
	u.Delete()

	// Published keys are deliberately not purged.
	if !ctx.Store().Has("u::pos") {
		t.Error("store entry purged on Delete")
	}
}

func TestUnitHitTestAxisAligned(t *testing.T) {
	ctx := testContext(t)
	u := NewUnit(ctx, UnitConfig{Name: "u", Pos: Vec2{10, 10}, Size: Vec2{100, 100}})

	if !u.HitTest(Vec2{50, 50}) {
		t.Error("point (50,50) should hit")
	}
	if u.HitTest(Vec2{200, 200}) {
		t.Error("point (200,200) should miss")
	}
	// Edges are inside.
	if !u.HitTest(Vec2{10, 10}) || !u.HitTest(Vec2{110, 110}) {
		t.Error("edge points should hit")
	}
}

func TestUnitHitTestRotated(t *testing.T) {
	ctx := testContext(t)
	// A wide, short bar centered at (110, 35). Rotating it 90 degrees
	// swaps the axes of its hit region around the center.
	u := NewUnit(ctx, UnitConfig{Name: "u", Pos: Vec2{10, 10}, Size: Vec2{200, 50}})

	if !u.HitTest(Vec2{205, 35}) {
		t.Error("far-right point should hit before rotation")
	}
	if u.HitTest(Vec2{110, 130}) {
		t.Error("far-below point should miss before rotation")
	}

	u.SetRotation(math.Pi / 2)

	if u.HitTest(Vec2{205, 35}) {
		t.Error("far-right point should miss after 90 degree rotation")
	}
	if !u.HitTest(Vec2{110, 130}) {
		t.Error("far-below point should hit after 90 degree rotation")
	}
}

func TestUnitHitTestScaled(t *testing.T) {
	ctx := testContext(t)
	u := NewUnit(ctx, UnitConfig{
		Name:  "u",
		Pos:   Vec2{0, 0},
		Size:  Vec2{100, 100},
		Scale: Vec2{2, 2},
	})

	// Scale doubles the box around the center (50,50): it now spans
	// (-50,-50) to (150,150).
	if !u.HitTest(Vec2{140, 140}) {
		t.Error("point inside the scaled box should hit")
	}
	if u.HitTest(Vec2{160, 160}) {
		t.Error("point outside the scaled box should miss")
	}
}

func TestUnitHitShapeOverride(t *testing.T) {
	ctx := testContext(t)
	u := NewUnit(ctx, UnitConfig{Name: "u", Pos: Vec2{0, 0}, Size: Vec2{100, 100}})
	u.HitShape = HitCircle{CenterX: 50, CenterY: 50, Radius: 10}

	if !u.HitTest(Vec2{55, 50}) {
		t.Error("point inside the circle should hit")
	}
	if u.HitTest(Vec2{90, 90}) {
		t.Error("corner point outside the circle should miss")
	}

	u.HitShape = NoHit
	if u.HitTest(Vec2{50, 50}) {
		t.Error("NoHit shape should never match")
	}
}

func TestUnitSetText(t *testing.T) {
	ctx := testContext(t)
	u := NewUnit(ctx, UnitConfig{Name: "u", LabelColor: ColorWhite})

	tb := u.SetText("title", "hello")
	if tb.Content != "hello" {
		t.Errorf("Content = %q, want hello", tb.Content)
	}
	if tb.Color != ColorWhite {
		t.Errorf("new slot color = %v, want the unit's label color", tb.Color)
	}

	// Second write reuses the slot.
	tb2 := u.SetText("title", "bye")
	if tb2 != tb {
		t.Error("SetText created a new slot for an existing name")
	}
	if tb.Content != "bye" {
		t.Errorf("Content = %q, want bye", tb.Content)
	}
}

func TestUnitBoxUsesScale(t *testing.T) {
	ctx := testContext(t)
	u := NewUnit(ctx, UnitConfig{Name: "u", Pos: Vec2{10, 20}, Size: Vec2{30, 40}, Scale: Vec2{2, 3}})

	box := u.Box()
	want := Rect{X: 10, Y: 20, Width: 60, Height: 120}
	if box != want {
		t.Errorf("Box = %v, want %v", box, want)
	}
}
