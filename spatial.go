package main

import "math"

// SpatialCellSize matches the arena scale: cells are about one boss
// body across, so a query rarely touches more than a handful of cells.
const SpatialCellSize = 100.0

// SpatialIndex is a uniform grid broad-phase over the arena bounds.
// It is rebuilt from scratch once per tick (Clear + Insert for every
// hittable) rather than maintained incrementally — at tens of entities
// the rebuild is cheap and there is no stale-cell state to get wrong.
// The index owns nothing: only ids and bounds copies.
type SpatialIndex struct {
	cols, rows int
	cellSize   float64
	cells      [][]string
}

// NewSpatialIndex creates a grid covering an arena of the given size
func NewSpatialIndex(arenaW, arenaH float64) *SpatialIndex {
	cols := int(math.Ceil(arenaW/SpatialCellSize)) + 1
	rows := int(math.Ceil(arenaH/SpatialCellSize)) + 1
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	return &SpatialIndex{
		cols:     cols,
		rows:     rows,
		cellSize: SpatialCellSize,
		cells:    make([][]string, cols*rows),
	}
}

// Clear resets all cells, keeping allocated capacity
func (s *SpatialIndex) Clear() {
	for i := range s.cells {
		s.cells[i] = s.cells[i][:0]
	}
}

func (s *SpatialIndex) clampCol(c int) int {
	if c < 0 {
		return 0
	}
	if c >= s.cols {
		return s.cols - 1
	}
	return c
}

func (s *SpatialIndex) clampRow(r int) int {
	if r < 0 {
		return 0
	}
	if r >= s.rows {
		return s.rows - 1
	}
	return r
}

// cellRange returns the clamped cell rectangle covered by bounds,
// expanded by pad cells in every direction.
func (s *SpatialIndex) cellRange(b Bounds, pad int) (minC, maxC, minR, maxR int) {
	minC = s.clampCol(int(b.X/s.cellSize) - pad)
	maxC = s.clampCol(int((b.X+b.Width)/s.cellSize) + pad)
	minR = s.clampRow(int(b.Y/s.cellSize) - pad)
	maxR = s.clampRow(int((b.Y+b.Height)/s.cellSize) + pad)
	return
}

// Insert adds an id to every cell its bounds cover
func (s *SpatialIndex) Insert(id string, b Bounds) {
	minC, maxC, minR, maxR := s.cellRange(b, 0)
	for r := minR; r <= maxR; r++ {
		for c := minC; c <= maxC; c++ {
			idx := r*s.cols + c
			s.cells[idx] = append(s.cells[idx], id)
		}
	}
}

// Query returns candidate ids in the cells covered by bounds plus the
// immediate neighbor ring, so shapes straddling a cell edge are never
// missed. Each id appears exactly once. Candidates only — callers
// confirm with the narrow-phase tests.
func (s *SpatialIndex) Query(b Bounds) []string {
	minC, maxC, minR, maxR := s.cellRange(b, 1)
	var result []string
	seen := make(map[string]struct{})
	for r := minR; r <= maxR; r++ {
		for c := minC; c <= maxC; c++ {
			for _, id := range s.cells[r*s.cols+c] {
				if _, ok := seen[id]; ok {
					continue
				}
				seen[id] = struct{}{}
				result = append(result, id)
			}
		}
	}
	return result
}
