package main

import "math"

// Narrow-phase collision tests. All pure functions over value types;
// the broad-phase (spatial.go) narrows candidates, these confirm them.
// Exposed for external callers too (the shield repulsion field uses
// them directly).

// CirclesOverlap checks if two circles overlap or touch
func CirclesOverlap(x1, y1, r1, x2, y2, r2 float64) bool {
	dx := x2 - x1
	dy := y2 - y1
	dist2 := dx*dx + dy*dy
	radSum := r1 + r2
	return dist2 <= radSum*radSum
}

// RectsOverlap checks if two axis-aligned rectangles overlap or touch
func RectsOverlap(a, b Bounds) bool {
	return a.X <= b.X+b.Width && a.X+a.Width >= b.X &&
		a.Y <= b.Y+b.Height && a.Y+a.Height >= b.Y
}

// circleRectOverlap checks a circle against an axis-aligned rectangle
// by clamping the circle center onto the rectangle.
func circleRectOverlap(cx, cy, r float64, rect Bounds) bool {
	nx := Clamp(cx, rect.X, rect.X+rect.Width)
	ny := Clamp(cy, rect.Y, rect.Y+rect.Height)
	dx := cx - nx
	dy := cy - ny
	return dx*dx+dy*dy <= r*r
}

// BoundsOverlap dispatches to the right primitive for the two shapes
func BoundsOverlap(a, b Bounds) bool {
	switch {
	case a.Circle && b.Circle:
		return CirclesOverlap(a.CenterX(), a.CenterY(), a.Radius, b.CenterX(), b.CenterY(), b.Radius)
	case a.Circle:
		return circleRectOverlap(a.CenterX(), a.CenterY(), a.Radius, b)
	case b.Circle:
		return circleRectOverlap(b.CenterX(), b.CenterY(), b.Radius, a)
	default:
		return RectsOverlap(a, b)
	}
}

// PointToSegmentDistance returns the shortest distance from point
// (px,py) to the segment (x1,y1)-(x2,y2).
func PointToSegmentDistance(px, py, x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	len2 := dx*dx + dy*dy
	if len2 == 0 {
		return Distance(px, py, x1, y1)
	}
	t := Clamp(((px-x1)*dx+(py-y1)*dy)/len2, 0, 1)
	return Distance(px, py, x1+t*dx, y1+t*dy)
}

// SegmentHitsCircle checks if the segment (x1,y1)-(x2,y2) passes
// within r of the circle center (cx,cy). Used for laser hit tests.
func SegmentHitsCircle(x1, y1, x2, y2, cx, cy, r float64) bool {
	return PointToSegmentDistance(cx, cy, x1, y1, x2, y2) <= r
}

// segmentCircleEntry returns the earliest parametric t in [0,1] at
// which the segment enters the circle, or -1 when it misses. Lasers
// use it to report where along the beam a hit lands.
func segmentCircleEntry(x1, y1, x2, y2, cx, cy, r float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	fx := x1 - cx
	fy := y1 - cy
	a := dx*dx + dy*dy
	if a == 0 {
		if fx*fx+fy*fy <= r*r {
			return 0
		}
		return -1
	}
	b := 2 * (fx*dx + fy*dy)
	c := fx*fx + fy*fy - r*r
	disc := b*b - 4*a*c
	if disc < 0 {
		return -1
	}
	disc = math.Sqrt(disc)
	t1 := (-b - disc) / (2 * a)
	t2 := (-b + disc) / (2 * a)
	if t1 >= 0 && t1 <= 1 {
		return t1
	}
	if t1 < 0 && (t2 >= 0) {
		return 0 // segment starts inside the circle
	}
	return -1
}
