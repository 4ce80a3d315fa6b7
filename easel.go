package easel

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at render submission time.
type Color struct {
	R, G, B, A float64
}

// Common colors.
var (
	ColorWhite       = Color{1, 1, 1, 1}
	ColorBlack       = Color{0, 0, 0, 1}
	ColorTransparent = Color{0, 0, 0, 0}
)

// ParseColor parses a hex color string ("#rrggbb" or "#rgb") into a Color
// with full alpha.
func ParseColor(hex string) (Color, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return Color{}, err
	}
	return Color{R: c.R, G: c.G, B: c.B, A: 1}, nil
}

// MustParseColor is like ParseColor but panics on a malformed string.
// Intended for color literals in sketches.
func MustParseColor(hex string) Color {
	c, err := ParseColor(hex)
	if err != nil {
		panic("easel: " + err.Error())
	}
	return c
}

// Blend interpolates between c and other in Lab space, which avoids the
// muddy midpoints RGB lerp produces. t is clamped to [0, 1]. Alpha is
// interpolated linearly.
func (c Color) Blend(other Color, t float64) Color {
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	a := colorful.Color{R: c.R, G: c.G, B: c.B}
	b := colorful.Color{R: other.R, G: other.G, B: other.B}
	m := a.BlendLab(b, t).Clamped()
	return Color{
		R: m.R, G: m.G, B: m.B,
		A: c.A + (other.A-c.A)*t,
	}
}

// toRGBA converts to a standard library color with straight alpha.
func (c Color) toRGBA() color.RGBA {
	return color.RGBA{
		R: uint8(clamp01(c.R) * 255),
		G: uint8(clamp01(c.G) * 255),
		B: uint8(clamp01(c.B) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Vec2 is a 2D vector used for positions, offsets, and sizes throughout
// the API.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Direction identifies one of the nine canonical placements used by layout
// anchors and position bindings.
type Direction uint8

const (
	DirCenter      Direction = iota // centered on both axes (default)
	DirTopLeft                      // diagonally adjacent to the top-left corner
	DirTop                          // above, horizontally centered
	DirTopRight                     // diagonally adjacent to the top-right corner
	DirLeft                         // to the left, vertically centered
	DirRight                        // to the right, vertically centered
	DirBottomLeft                   // diagonally adjacent to the bottom-left corner
	DirBottom                       // below, horizontally centered
	DirBottomRight                  // diagonally adjacent to the bottom-right corner
)

// String returns the canonical name ("top-left", "center", ...).
func (d Direction) String() string {
	switch d {
	case DirTopLeft:
		return "top-left"
	case DirTop:
		return "top"
	case DirTopRight:
		return "top-right"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	case DirBottomLeft:
		return "bottom-left"
	case DirBottom:
		return "bottom"
	case DirBottomRight:
		return "bottom-right"
	default:
		return "center"
	}
}

// Directions lists all nine placements in anchor order.
var Directions = [9]Direction{
	DirTopLeft, DirTop, DirTopRight,
	DirLeft, DirCenter, DirRight,
	DirBottomLeft, DirBottom, DirBottomRight,
}

// ImageFit controls how a unit's image is mapped onto its rectangle.
type ImageFit uint8

const (
	FitFill    ImageFit = iota // cover the rectangle, cropping overflow
	FitAspect                  // contain within the rectangle, preserving aspect ratio
	FitStretch                 // stretch to the rectangle, ignoring aspect ratio
)

// TextAlign controls horizontal text alignment within a text slot.
type TextAlign uint8

const (
	TextAlignLeft   TextAlign = iota // align text to the left edge (default)
	TextAlignCenter                  // center text horizontally
	TextAlignRight                   // align text to the right edge
)

// GestureType identifies a kind of gesture event.
type GestureType uint8

const (
	GestureMouseDown   GestureType = iota // fires when a pointer button is pressed
	GestureMouseUp                        // fires when a pointer button is released
	GestureClick                          // fires on a discrete click
	GestureDoubleClick                    // fires on a discrete double click
	GestureHover                          // fires when the polled hover target changes
	GestureMouseLeave                     // fires when the pointer leaves a hovered unit
	GestureDrag                           // fires each frame while dragging
	GestureDrop                           // fires when the pointer is released after a press
	GestureLongPress                      // fires when a press is held past the long-press delay
)

// GestureEvent carries gesture data for the optional event sink (ECS bridge).
type GestureEvent struct {
	Type     GestureType
	UnitName string
	Point    Vec2
	// Drag fields (valid for GestureDrag and GestureDrop)
	Start Vec2
}
