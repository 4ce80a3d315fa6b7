package easel

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Face is the text face used by unit text slots. Any text/v2 face works
// (GoTextFace, GoXFace, ...). A nil face falls back to the debug font.
type Face = text.Face

// WhitePixel is a 1x1 white image used for solid color fills that need a
// full transform (rotated rectangles).
var WhitePixel *ebiten.Image

func init() {
	WhitePixel = ebiten.NewImage(1, 1)
	WhitePixel.Fill(ColorWhite.toRGBA())
}

// DrawUnits is the default render procedure: it clears the surface with
// ClearColor and draws every enabled unit in ascending z-order. Register it
// (or a custom procedure) with Context.SetRenderProc; Run does so
// automatically.
func DrawUnits(c *Context) {
	dst := c.surface
	dst.Fill(c.ClearColor.toRGBA())

	for _, u := range c.SortedUnits() {
		if !u.Enabled {
			continue
		}
		if u.CustomDraw != nil {
			u.CustomDraw(u, dst)
			continue
		}
		drawUnit(dst, u)
	}
}

func drawUnit(dst *ebiten.Image, u *Unit) {
	box := u.Box()
	if box.Width <= 0 || box.Height <= 0 {
		return
	}

	if u.ShadowColor.A > 0 {
		drawShadow(dst, u, box)
	}

	if u.Image != nil {
		drawUnitImage(dst, u, box)
	} else if u.Rotation != 0 {
		drawRotatedFill(dst, u, box)
	} else {
		col := u.Color
		col.A *= u.Opacity
		fillRoundedRect(dst, box, u.CornerRadius, col)
	}

	drawUnitTexts(dst, u, box)
}

// drawShadow draws the unit's drop shadow. A blurred shadow is approximated
// by layering progressively larger, fainter rounded rectangles.
func drawShadow(dst *ebiten.Image, u *Unit, box Rect) {
	shadow := box
	shadow.X += u.ShadowOffset.X
	shadow.Y += u.ShadowOffset.Y
	sc := u.ShadowColor
	sc.A *= u.Opacity

	if u.ShadowBlur <= 0 {
		fillRoundedRect(dst, shadow, u.CornerRadius, sc)
		return
	}

	const passes = 4
	sc.A /= passes
	for i := 0; i < passes; i++ {
		grow := u.ShadowBlur * float64(i) / passes
		r := Rect{
			X:      shadow.X - grow,
			Y:      shadow.Y - grow,
			Width:  shadow.Width + 2*grow,
			Height: shadow.Height + 2*grow,
		}
		fillRoundedRect(dst, r, u.CornerRadius+grow, sc)
	}
}

// fillRoundedRect fills a rectangle with rounded corners by compositing the
// vector helpers: a cross of two rectangles plus four corner circles.
func fillRoundedRect(dst *ebiten.Image, r Rect, radius float64, col Color) {
	clr := col.toRGBA()
	if radius <= 0 {
		vector.DrawFilledRect(dst, float32(r.X), float32(r.Y), float32(r.Width), float32(r.Height), clr, true)
		return
	}
	if limit := min(r.Width, r.Height) / 2; radius > limit {
		radius = limit
	}
	x, y := float32(r.X), float32(r.Y)
	w, h := float32(r.Width), float32(r.Height)
	rad := float32(radius)

	vector.DrawFilledRect(dst, x+rad, y, w-2*rad, h, clr, true)
	vector.DrawFilledRect(dst, x, y+rad, rad, h-2*rad, clr, true)
	vector.DrawFilledRect(dst, x+w-rad, y+rad, rad, h-2*rad, clr, true)
	vector.DrawFilledCircle(dst, x+rad, y+rad, rad, clr, true)
	vector.DrawFilledCircle(dst, x+w-rad, y+rad, rad, clr, true)
	vector.DrawFilledCircle(dst, x+rad, y+h-rad, rad, clr, true)
	vector.DrawFilledCircle(dst, x+w-rad, y+h-rad, rad, clr, true)
}

// drawRotatedFill draws a solid rotated rectangle by transforming the
// shared white pixel. Corner radius is not applied to rotated fills.
func drawRotatedFill(dst *ebiten.Image, u *Unit, box Rect) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(box.Width, box.Height)
	op.GeoM.Translate(-box.Width/2, -box.Height/2)
	op.GeoM.Rotate(u.Rotation)
	op.GeoM.Translate(box.X+box.Width/2, box.Y+box.Height/2)
	applyTint(op, u.Color, u.Opacity)
	dst.DrawImage(WhitePixel, op)
}

// drawUnitImage blits the unit's image honoring the fit mode. FitFill
// covers the box and crops overflow to the unit's unrotated bounds;
// FitAspect contains the image, centered; FitStretch ignores aspect ratio.
func drawUnitImage(dst *ebiten.Image, u *Unit, box Rect) {
	b := u.Image.Bounds()
	iw, ih := float64(b.Dx()), float64(b.Dy())
	if iw == 0 || ih == 0 {
		return
	}

	var sx, sy float64
	switch u.Fit {
	case FitStretch:
		sx, sy = box.Width/iw, box.Height/ih
	case FitAspect:
		s := min(box.Width/iw, box.Height/ih)
		sx, sy = s, s
	default: // FitFill
		s := max(box.Width/iw, box.Height/ih)
		sx, sy = s, s
	}

	target := dst
	if u.Fit == FitFill {
		clip := image.Rect(int(box.X), int(box.Y), int(box.X+box.Width), int(box.Y+box.Height))
		target = dst.SubImage(clip.Intersect(dst.Bounds())).(*ebiten.Image)
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(sx, sy)
	op.GeoM.Translate(-iw*sx/2, -ih*sy/2)
	if u.Rotation != 0 {
		op.GeoM.Rotate(u.Rotation)
	}
	op.GeoM.Translate(box.X+box.Width/2, box.Y+box.Height/2)
	applyTint(op, ColorWhite, u.Opacity)
	target.DrawImage(u.Image, op)
}

// drawUnitTexts renders every text slot, aligned within the unit's box and
// vertically centered. Slots without a face use the debug font.
func drawUnitTexts(dst *ebiten.Image, u *Unit, box Rect) {
	for _, tb := range u.Texts {
		if tb.Content == "" {
			continue
		}
		col := tb.Color
		if col == (Color{}) {
			col = u.LabelColor
		}
		col.A *= u.Opacity

		if tb.Face == nil {
			drawDebugText(dst, tb, box)
			continue
		}

		lineSpacing := tb.Face.Metrics().HLineGap + tb.Face.Metrics().HAscent + tb.Face.Metrics().HDescent
		_, th := text.Measure(tb.Content, tb.Face, lineSpacing)

		op := &text.DrawOptions{}
		op.LineSpacing = lineSpacing
		switch tb.Align {
		case TextAlignCenter:
			op.PrimaryAlign = text.AlignCenter
			op.GeoM.Translate(box.X+box.Width/2, 0)
		case TextAlignRight:
			op.PrimaryAlign = text.AlignEnd
			op.GeoM.Translate(box.X+box.Width, 0)
		default:
			op.GeoM.Translate(box.X, 0)
		}
		op.GeoM.Translate(0, box.Y+(box.Height-th)/2)
		op.ColorScale.ScaleWithColor(col.toRGBA())
		text.Draw(dst, tb.Content, tb.Face, op)
	}
}

// drawDebugText is the nil-face fallback: the fixed ebitenutil debug font,
// roughly aligned (6px advance, 16px line height).
func drawDebugText(dst *ebiten.Image, tb *TextBlock, box Rect) {
	const charW, lineH = 6.0, 16.0
	tw := float64(len(tb.Content)) * charW
	x := box.X
	switch tb.Align {
	case TextAlignCenter:
		x = box.X + (box.Width-tw)/2
	case TextAlignRight:
		x = box.X + box.Width - tw
	}
	y := box.Y + (box.Height-lineH)/2
	ebitenutil.DebugPrintAt(dst, tb.Content, int(x), int(y))
}

// applyTint sets the draw options' color scale to a straight-alpha tint.
func applyTint(op *ebiten.DrawImageOptions, col Color, opacity float64) {
	op.ColorScale.Scale(
		float32(col.R), float32(col.G), float32(col.B), 1,
	)
	op.ColorScale.ScaleAlpha(float32(clamp01(col.A * opacity)))
}
