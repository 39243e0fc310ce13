package main

import "testing"

func TestSpatialIndexInsertAndQuery(t *testing.T) {
	idx := NewSpatialIndex(ArenaWidth, ArenaHeight)
	idx.Clear()

	idx.Insert("a", CircleBounds(100, 100, 10))

	found := false
	for _, id := range idx.Query(CircleBounds(100, 100, 50)) {
		if id == "a" {
			found = true
		}
	}
	if !found {
		t.Error("expected to find entity at (100,100)")
	}

	for _, id := range idx.Query(CircleBounds(2000, 1400, 50)) {
		if id == "a" {
			t.Error("should not find entity far from its cell")
		}
	}
}

func TestSpatialIndexQueryExactlyOnce(t *testing.T) {
	idx := NewSpatialIndex(ArenaWidth, ArenaHeight)
	idx.Clear()

	// Large bounds span many cells; the id lands in each of them
	idx.Insert("big", CircleBounds(300, 300, 250))

	count := 0
	for _, id := range idx.Query(CircleBounds(300, 300, 100)) {
		if id == "big" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("entity spanning multiple cells returned %d times, want 1", count)
	}
}

func TestSpatialIndexCellEdgeNeighbors(t *testing.T) {
	idx := NewSpatialIndex(ArenaWidth, ArenaHeight)
	idx.Clear()

	// Entity just across a cell boundary from the query center
	idx.Insert("edge", CircleBounds(205, 100, 5))

	found := false
	for _, id := range idx.Query(CircleBounds(195, 100, 5)) {
		if id == "edge" {
			found = true
		}
	}
	if !found {
		t.Error("neighbor-ring query should find entity across the cell edge")
	}
}

func TestSpatialIndexClear(t *testing.T) {
	idx := NewSpatialIndex(ArenaWidth, ArenaHeight)
	idx.Clear()

	idx.Insert("x", CircleBounds(500, 500, 10))
	idx.Clear()

	if got := idx.Query(CircleBounds(500, 500, 100)); len(got) != 0 {
		t.Errorf("expected 0 results after clear, got %d", len(got))
	}
}

func TestSpatialIndexRebuildIdempotent(t *testing.T) {
	idx := NewSpatialIndex(ArenaWidth, ArenaHeight)

	for i := 0; i < 3; i++ {
		idx.Clear()
		idx.Insert("a", CircleBounds(100, 100, 10))
		idx.Insert("b", CircleBounds(110, 100, 10))
	}

	got := idx.Query(CircleBounds(100, 100, 40))
	if len(got) != 2 {
		t.Errorf("expected 2 results after repeated rebuilds, got %d", len(got))
	}
}

func TestSpatialIndexOutOfBoundsClamp(t *testing.T) {
	idx := NewSpatialIndex(ArenaWidth, ArenaHeight)
	idx.Clear()

	idx.Insert("neg", CircleBounds(-30, -30, 10))
	found := false
	for _, id := range idx.Query(CircleBounds(0, 0, 50)) {
		if id == "neg" {
			found = true
		}
	}
	if !found {
		t.Error("expected to find entity inserted at negative coords")
	}

	idx.Insert("far", CircleBounds(ArenaWidth+100, ArenaHeight+100, 10))
	found = false
	for _, id := range idx.Query(CircleBounds(ArenaWidth, ArenaHeight, 50)) {
		if id == "far" {
			found = true
		}
	}
	if !found {
		t.Error("expected to find entity inserted beyond the arena edge")
	}
}
