// Package tilemap provides tile grids that satisfy astar.Graph[Point].
//
//   - Grid: an immutable rectangular map parsed from text rows and a Legend.
//   - Sparse: a mutable, lock-guarded tile set with no fixed bounds.
//
// Blocked or unknown destinations cost astar.Impassable and are never yielded
// as neighbors.
package tilemap

import (
	"fmt"
	"iter"
	"math"
	"strings"

	"github.com/katalvlaran/tilepath/astar"
)

var (
	offsets4 = []Point{{X: 0, Y: -1}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: -1, Y: 0}}
	offsets8 = []Point{
		{X: 0, Y: -1}, {X: 1, Y: -1}, {X: 1, Y: 0}, {X: 1, Y: 1},
		{X: 0, Y: 1}, {X: -1, Y: 1}, {X: -1, Y: 0}, {X: -1, Y: -1},
	}
)

// Grid is a rectangular tile map on the Z = 0 layer. It is immutable once
// built, so any number of searches may read it concurrently; WithTile returns
// a modified copy instead of mutating.
type Grid struct {
	width, height int
	glyphs        []rune // row-major: glyphs[y*width+x]
	legend        Legend
	conn          Connectivity
	offsets       []Point
	minCost       float64
}

var _ astar.Graph[Point] = (*Grid)(nil)

// Parse builds a Grid from text rows, one rune per tile. A nil legend means
// DefaultLegend. The legend is copied.
// Returns ErrEmptyGrid, ErrNonRectangular, ErrInvalidLegend or ErrUnknownTile
// (wrapped with the offending position).
// Complexity: O(W×H).
func Parse(rows []string, legend Legend, opts Options) (*Grid, error) {
	if len(rows) == 0 || rows[0] == "" {
		return nil, ErrEmptyGrid
	}
	if legend == nil {
		legend = DefaultLegend()
	}
	lg := make(Legend, len(legend))
	for r, spec := range legend {
		if spec.Passable && (spec.Cost < 0 || math.IsNaN(spec.Cost)) {
			return nil, fmt.Errorf("%w: %q costs %v", ErrInvalidLegend, r, spec.Cost)
		}
		lg[r] = spec
	}

	h, w := len(rows), len([]rune(rows[0]))
	glyphs := make([]rune, 0, w*h)
	for y, row := range rows {
		line := []rune(row)
		if len(line) != w {
			return nil, fmt.Errorf("%w: row %d has %d tiles, want %d", ErrNonRectangular, y, len(line), w)
		}
		for x, r := range line {
			if _, ok := lg[r]; !ok {
				return nil, fmt.Errorf("%w: %q at %v", ErrUnknownTile, r, Pt(x, y))
			}
		}
		glyphs = append(glyphs, line...)
	}

	return newGrid(w, h, glyphs, lg, opts.Conn), nil
}

// MustParse is Parse that panics on error; intended for tests and fixtures.
func MustParse(rows []string, legend Legend, opts Options) *Grid {
	g, err := Parse(rows, legend, opts)
	if err != nil {
		panic(err)
	}

	return g
}

func newGrid(w, h int, glyphs []rune, legend Legend, conn Connectivity) *Grid {
	g := &Grid{
		width:   w,
		height:  h,
		glyphs:  glyphs,
		legend:  legend,
		conn:    conn,
		offsets: offsets4,
		minCost: math.Inf(1),
	}
	if conn == Conn8 {
		g.offsets = offsets8
	}
	for _, r := range glyphs {
		if spec := legend[r]; spec.Passable && spec.Cost < g.minCost {
			g.minCost = spec.Cost
		}
	}
	if math.IsInf(g.minCost, 1) {
		g.minCost = 0
	}

	return g
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// Connectivity returns the movement model the grid was built with.
func (g *Grid) Connectivity() Connectivity { return g.conn }

// MinCost returns the cheapest passable tile cost, or 0 if nothing is passable.
// Multiplying a unit heuristic by it keeps the heuristic admissible.
func (g *Grid) MinCost() float64 { return g.minCost }

// InBounds reports whether p lies on the grid.
// Complexity: O(1).
func (g *Grid) InBounds(p Point) bool {
	return p.Z == 0 && p.X >= 0 && p.X < g.width && p.Y >= 0 && p.Y < g.height
}

// At returns the tile at p; ok is false outside the grid.
func (g *Grid) At(p Point) (spec TileSpec, ok bool) {
	if !g.InBounds(p) {
		return TileSpec{}, false
	}

	return g.legend[g.glyphs[g.index(p)]], true
}

// Glyph returns the map rune at p, or 0 outside the grid.
func (g *Grid) Glyph(p Point) rune {
	if !g.InBounds(p) {
		return 0
	}

	return g.glyphs[g.index(p)]
}

// Passable reports whether p is on the grid and can be entered.
func (g *Grid) Passable(p Point) bool {
	spec, ok := g.At(p)

	return ok && spec.Passable
}

// Neighbors yields the passable cells adjacent to p. Under Conn8 a diagonal
// step is only offered when both orthogonal cells it passes between are
// passable, so paths never cut a blocked corner.
func (g *Grid) Neighbors(p Point) iter.Seq[Point] {
	return func(yield func(Point) bool) {
		for _, d := range g.offsets {
			q := p.Add(d)
			if !g.Passable(q) {
				continue
			}
			if d.X != 0 && d.Y != 0 &&
				(!g.Passable(Point{X: p.X + d.X, Y: p.Y, Z: p.Z}) || !g.Passable(Point{X: p.X, Y: p.Y + d.Y, Z: p.Z})) {
				continue
			}
			if !yield(q) {
				return
			}
		}
	}
}

// Cost returns the cost of entering to: the destination tile's cost, times √2
// for a diagonal step. Blocked or off-grid destinations cost astar.Impassable.
func (g *Grid) Cost(from, to Point) float64 {
	spec, ok := g.At(to)
	if !ok || !spec.Passable {
		return astar.Impassable
	}
	if from.X != to.X && from.Y != to.Y {
		return spec.Cost * math.Sqrt2
	}

	return spec.Cost
}

// WithTile returns a copy of g with the tile at p replaced by glyph.
// Returns ErrOutOfBounds or ErrUnknownTile.
// Complexity: O(W×H).
func (g *Grid) WithTile(p Point, glyph rune) (*Grid, error) {
	if !g.InBounds(p) {
		return nil, fmt.Errorf("%w: %v", ErrOutOfBounds, p)
	}
	if _, ok := g.legend[glyph]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTile, glyph)
	}
	glyphs := make([]rune, len(g.glyphs))
	copy(glyphs, g.glyphs)
	glyphs[g.index(p)] = glyph

	return newGrid(g.width, g.height, glyphs, g.legend, g.conn), nil
}

// Rows renders the grid back to text rows.
func (g *Grid) Rows() []string {
	rows := make([]string, g.height)
	for y := range g.height {
		rows[y] = string(g.glyphs[y*g.width : (y+1)*g.width])
	}

	return rows
}

// Overlay renders the grid with path drawn on top: 'S' for the first node,
// 'G' for the last and '*' in between. Off-grid nodes are ignored.
func (g *Grid) Overlay(path []Point) []string {
	glyphs := make([]rune, len(g.glyphs))
	copy(glyphs, g.glyphs)
	for i, p := range path {
		if !g.InBounds(p) {
			continue
		}
		mark := '*'
		switch i {
		case 0:
			mark = 'S'
		case len(path) - 1:
			mark = 'G'
		}
		glyphs[g.index(p)] = mark
	}

	rows := make([]string, g.height)
	for y := range g.height {
		rows[y] = string(glyphs[y*g.width : (y+1)*g.width])
	}

	return rows
}

// String renders the grid as newline-separated rows.
func (g *Grid) String() string { return strings.Join(g.Rows(), "\n") }

// index maps p to a row-major index: y*Width + x.
func (g *Grid) index(p Point) int { return p.Y*g.width + p.X }

// Coordinate converts a row-major index back to a Point.
// Complexity: O(1).
func (g *Grid) Coordinate(idx int) Point {
	return Pt(idx%g.width, idx/g.width)
}
