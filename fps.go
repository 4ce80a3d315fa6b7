package easel

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// NewFPSUnit creates a small unit in the top-left corner that displays the
// current FPS and TPS, refreshed twice a second by a scheduler task on the
// render channel. Delete the unit to remove the readout and its task.
func NewFPSUnit(ctx *Context) *Unit {
	u := NewUnit(ctx, UnitConfig{
		Name:    "fps_widget",
		Pos:     Vec2{X: 4, Y: 4},
		Size:    Vec2{X: 100, Y: 32},
		Color:   Color{0, 0, 0, 0.5},
		Z:       1 << 16, // above everything
		Opacity: 1,
	})
	u.HitShape = NoHit
	tb := u.SetText("readout", "")
	tb.Color = ColorWhite

	ctx.Scheduler().Add("fps_widget:update", 500, RepeatForever, []string{RenderChannel}, func() {
		if u.Deleted() {
			ctx.Scheduler().Remove("fps_widget:update")
			return
		}
		tb.Content = fmt.Sprintf("FPS: %.1f TPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS())
	})

	return u
}
