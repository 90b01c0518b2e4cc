package tilemap

import (
	"github.com/RoaringBitmap/roaring/v2"
)

// Components partitions the passable cells of a Grid into regions that can
// reach one another. Each region is a roaring bitmap of row-major cell indices.
//
// Two points in different components have no path between them, so a path
// consumer can skip a search that is bound to exhaust its budget.
type Components struct {
	grid *Grid
	sets []*roaring.Bitmap
}

// Components finds all regions of passable cells under the grid's own
// neighbor rules (including the no-corner-cutting rule of Conn8).
//
// Time:   O(W·H·d), where d = 4 or 8.
// Memory: O(W·H) for visited flags, compressed output.
func (g *Grid) Components() *Components {
	total := g.width * g.height
	seen := make([]bool, total)
	cs := &Components{grid: g}

	for i0 := range total {
		if seen[i0] || !g.legend[g.glyphs[i0]].Passable {
			continue
		}
		// BFS to collect the region
		set := roaring.New()
		queue := []int{i0}
		seen[i0] = true
		for qi := 0; qi < len(queue); qi++ {
			u := queue[qi]
			set.Add(uint32(u))
			for q := range g.Neighbors(g.Coordinate(u)) {
				vi := g.index(q)
				if !seen[vi] {
					seen[vi] = true
					queue = append(queue, vi)
				}
			}
		}
		set.RunOptimize()
		cs.sets = append(cs.sets, set)
	}

	return cs
}

// Len returns the number of components.
func (cs *Components) Len() int { return len(cs.sets) }

// Size returns the number of cells in component i, or 0 if i is out of range.
func (cs *Components) Size(i int) int {
	if i < 0 || i >= len(cs.sets) {
		return 0
	}

	return int(cs.sets[i].GetCardinality())
}

// Largest returns the index of the biggest component, or -1 if there is none.
func (cs *Components) Largest() int {
	best, bestSize := -1, uint64(0)
	for i, set := range cs.sets {
		if n := set.GetCardinality(); n > bestSize {
			best, bestSize = i, n
		}
	}

	return best
}

// ComponentOf returns the component holding p, or -1 for blocked or off-grid cells.
func (cs *Components) ComponentOf(p Point) int {
	if !cs.grid.InBounds(p) {
		return -1
	}
	idx := uint32(cs.grid.index(p))
	for i, set := range cs.sets {
		if set.Contains(idx) {
			return i
		}
	}

	return -1
}

// Connected reports whether a path can exist between a and b.
// A passable point is always connected to itself.
func (cs *Components) Connected(a, b Point) bool {
	ca := cs.ComponentOf(a)

	return ca >= 0 && ca == cs.ComponentOf(b)
}

// Cell returns the rank-th cell of component i in row-major order.
// ok is false when i or rank is out of range.
func (cs *Components) Cell(i, rank int) (p Point, ok bool) {
	if i < 0 || i >= len(cs.sets) || rank < 0 {
		return Point{}, false
	}
	idx, err := cs.sets[i].Select(uint32(rank))
	if err != nil {
		return Point{}, false
	}

	return cs.grid.Coordinate(int(idx)), true
}

// Cells yields the cells of component i in row-major order.
func (cs *Components) Cells(i int) []Point {
	if i < 0 || i >= len(cs.sets) {
		return nil
	}
	out := make([]Point, 0, cs.sets[i].GetCardinality())
	it := cs.sets[i].Iterator()
	for it.HasNext() {
		out = append(out, cs.grid.Coordinate(int(it.Next())))
	}

	return out
}
