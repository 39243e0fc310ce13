package main

// Bounds is an axis-aligned rectangle, optionally flagged as the
// bounding box of a circle. Bounds are derived from an entity's
// authoritative position every frame and never stored alongside it,
// so position and hit shape cannot drift apart.
type Bounds struct {
	X, Y          float64 // top-left corner
	Width, Height float64
	Radius        float64 // > 0 only when Circle
	Circle        bool
}

// RectBounds builds rectangular bounds from a top-left corner and size
func RectBounds(x, y, w, h float64) Bounds {
	return Bounds{X: x, Y: y, Width: w, Height: h}
}

// CircleBounds builds circular bounds from a center and radius
func CircleBounds(cx, cy, r float64) Bounds {
	return Bounds{X: cx - r, Y: cy - r, Width: 2 * r, Height: 2 * r, Radius: r, Circle: true}
}

// CenterX returns the horizontal center
func (b Bounds) CenterX() float64 {
	return b.X + b.Width/2
}

// CenterY returns the vertical center
func (b Bounds) CenterY() float64 {
	return b.Y + b.Height/2
}

// ContainsPoint reports whether the point lies inside the rectangle
func (b Bounds) ContainsPoint(px, py float64) bool {
	return px >= b.X && px <= b.X+b.Width && py >= b.Y && py <= b.Y+b.Height
}
