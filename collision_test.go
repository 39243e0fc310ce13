package main

import "testing"

func TestCirclesOverlap(t *testing.T) {
	if !CirclesOverlap(0, 0, 10, 15, 0, 10) {
		t.Error("circles 20 apart with combined radius 20 should touch")
	}
	if CirclesOverlap(0, 0, 10, 25, 0, 10) {
		t.Error("circles 25 apart with combined radius 20 should not overlap")
	}
	if !CirclesOverlap(0, 0, 10, 0, 0, 1) {
		t.Error("contained circle should overlap")
	}
}

func TestRectsOverlap(t *testing.T) {
	a := RectBounds(0, 0, 100, 100)
	b := RectBounds(50, 50, 100, 100)
	if !RectsOverlap(a, b) {
		t.Error("overlapping rects should overlap")
	}
	c := RectBounds(200, 200, 10, 10)
	if RectsOverlap(a, c) {
		t.Error("distant rects should not overlap")
	}
}

func TestBoundsOverlapMixed(t *testing.T) {
	rect := RectBounds(0, 0, 100, 100)

	// Circle center outside rect but within radius of the edge
	circle := CircleBounds(110, 50, 15)
	if !BoundsOverlap(rect, circle) {
		t.Error("circle within radius of rect edge should overlap")
	}

	// Circle whose AABB touches the rect corner but whose disc does not
	corner := CircleBounds(108, 108, 10)
	if BoundsOverlap(rect, corner) {
		t.Error("circle AABB touching corner should not count as overlap")
	}

	c1 := CircleBounds(0, 0, 10)
	c2 := CircleBounds(15, 0, 10)
	if !BoundsOverlap(c1, c2) {
		t.Error("overlapping circles should overlap")
	}
}

func TestBoundsContainsPoint(t *testing.T) {
	b := RectBounds(10, 10, 100, 50)
	if !b.ContainsPoint(60, 35) {
		t.Error("interior point should be inside")
	}
	if !b.ContainsPoint(10, 10) {
		t.Error("corner should count as inside")
	}
	if b.ContainsPoint(111, 35) {
		t.Error("point past the right edge should be outside")
	}
	if b.ContainsPoint(60, 61) {
		t.Error("point below should be outside")
	}
}

func TestPointToSegmentDistance(t *testing.T) {
	// Point above the middle of a horizontal segment
	d := PointToSegmentDistance(50, 10, 0, 0, 100, 0)
	if d < 9.99 || d > 10.01 {
		t.Errorf("expected distance 10, got %f", d)
	}

	// Point beyond the endpoint: distance to the endpoint itself
	d = PointToSegmentDistance(110, 0, 0, 0, 100, 0)
	if d < 9.99 || d > 10.01 {
		t.Errorf("expected distance 10 past endpoint, got %f", d)
	}

	// Degenerate segment
	d = PointToSegmentDistance(3, 4, 0, 0, 0, 0)
	if d < 4.99 || d > 5.01 {
		t.Errorf("expected distance 5 for degenerate segment, got %f", d)
	}
}

func TestSegmentCircleEntry(t *testing.T) {
	// Beam through the circle enters at the near rim
	if got := segmentCircleEntry(0, 0, 100, 0, 50, 0, 10); got < 0.399 || got > 0.401 {
		t.Errorf("expected entry at t=0.4, got %f", got)
	}
	if got := segmentCircleEntry(0, 0, 100, 0, 50, 50, 10); got != -1 {
		t.Errorf("miss should report -1, got %f", got)
	}
	// Segment starting inside the circle enters immediately
	if got := segmentCircleEntry(50, 0, 150, 0, 50, 0, 10); got != 0 {
		t.Errorf("start-inside should report 0, got %f", got)
	}
	// Degenerate zero-length segment
	if got := segmentCircleEntry(50, 0, 50, 0, 50, 0, 10); got != 0 {
		t.Errorf("point inside should report 0, got %f", got)
	}
	if got := segmentCircleEntry(50, 0, 50, 0, 500, 0, 10); got != -1 {
		t.Errorf("point outside should report -1, got %f", got)
	}
}

func TestSegmentHitsCircle(t *testing.T) {
	// Beam passing through the circle
	if !SegmentHitsCircle(0, 0, 100, 0, 50, 5, 10) {
		t.Error("segment passing near center should hit")
	}
	// Beam passing wide
	if SegmentHitsCircle(0, 0, 100, 0, 50, 30, 10) {
		t.Error("segment 30 away from radius-10 circle should miss")
	}
	// Circle beyond the segment end
	if SegmentHitsCircle(0, 0, 100, 0, 150, 0, 10) {
		t.Error("circle 50 past the endpoint should miss")
	}
}
