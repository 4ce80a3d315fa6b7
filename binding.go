package easel

// BindPositionRelativeTo establishes a one-way reactive constraint: this
// unit's position is recomputed from other's effective box (position plus
// size scaled by scale) and this unit's own effective size, for one of the
// nine directional placements. Corner placements sit diagonally outside the
// target with the adjacent edges flush; edge placements (left, right, top,
// bottom) sit flush on one axis and centered on the other; DirCenter
// centers both axes over the target. offset is added after placement.
//
// The binding subscribes to other's pos, size, rot, and scale and to this
// unit's own size, rot, and scale; its own pos is deliberately excluded so
// the recompute never triggers itself. It fires once immediately for
// initial placement and re-fires synchronously on every published change.
//
// Call UnbindPositionRelativeTo before manually repositioning this unit.
// If other is deleted later, the binding stays registered but stops
// receiving updates; unbinding remains the caller's responsibility.
func (u *Unit) BindPositionRelativeTo(other *Unit, dir Direction, offset Vec2) {
	u.UnbindPositionRelativeTo()

	recompute := func(any) {
		u.placeRelativeTo(other, dir, offset)
	}

	store := u.ctx.Store()
	keys := []string{
		other.key("pos"),
		other.key("size"),
		other.key("rot"),
		other.key("scale"),
		u.key("size"),
		u.key("rot"),
		u.key("scale"),
	}
	for _, k := range keys {
		u.binding = append(u.binding, store.OnChange(k, recompute))
	}

	u.placeRelativeTo(other, dir, offset)
}

// UnbindPositionRelativeTo removes every subscription created by
// BindPositionRelativeTo. Safe to call when no binding exists.
func (u *Unit) UnbindPositionRelativeTo() {
	for _, sub := range u.binding {
		sub.Remove()
	}
	u.binding = nil
}

// placeRelativeTo computes and publishes the bound position.
func (u *Unit) placeRelativeTo(other *Unit, dir Direction, offset Vec2) {
	ob := other.Box()
	w := u.Size.X * u.Scale.X
	h := u.Size.Y * u.Scale.Y

	// Centered defaults; each case overrides the flush axis or axes.
	x := ob.X + (ob.Width-w)/2
	y := ob.Y + (ob.Height-h)/2

	switch dir {
	case DirLeft:
		x = ob.X - w
	case DirRight:
		x = ob.X + ob.Width
	case DirTop:
		y = ob.Y - h
	case DirBottom:
		y = ob.Y + ob.Height
	case DirTopLeft:
		x = ob.X - w
		y = ob.Y - h
	case DirTopRight:
		x = ob.X + ob.Width
		y = ob.Y - h
	case DirBottomLeft:
		x = ob.X - w
		y = ob.Y + ob.Height
	case DirBottomRight:
		x = ob.X + ob.Width
		y = ob.Y + ob.Height
	}

	u.SetPos(Vec2{X: x + offset.X, Y: y + offset.Y})
}
