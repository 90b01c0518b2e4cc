// Package tilemap defines the coordinate, tile and option types plus the
// sentinel errors shared by the tile-based graph sources.
package tilemap

import (
	"errors"
	"fmt"
)

// Sentinel errors for tilemap operations.
var (
	// ErrEmptyGrid indicates the input has no rows or no columns.
	ErrEmptyGrid = errors.New("tilemap: grid must have at least one row and one column")

	// ErrNonRectangular indicates rows of differing lengths.
	ErrNonRectangular = errors.New("tilemap: all rows must have the same length")

	// ErrUnknownTile indicates a glyph that the legend does not define.
	ErrUnknownTile = errors.New("tilemap: glyph not present in legend")

	// ErrInvalidLegend indicates a passable tile with a negative or NaN cost.
	ErrInvalidLegend = errors.New("tilemap: passable tiles need a non-negative cost")

	// ErrOutOfBounds indicates a point outside the grid.
	ErrOutOfBounds = errors.New("tilemap: point out of bounds")

	// ErrNegativeCost indicates an attempt to store a negative or NaN tile cost.
	ErrNegativeCost = errors.New("tilemap: tile cost must be non-negative")
)

// Connectivity selects neighbor connectivity: orthogonal (Conn4) or including diagonals (Conn8).
type Connectivity int

const (
	// Conn4 uses 4-directional connectivity: N, E, S, W.
	Conn4 Connectivity = iota
	// Conn8 uses 8-directional connectivity: N, NE, E, SE, S, SW, W, NW.
	Conn8
)

// String implements fmt.Stringer.
func (c Connectivity) String() string {
	switch c {
	case Conn4:
		return "4"
	case Conn8:
		return "8"
	default:
		return fmt.Sprintf("Connectivity(%d)", int(c))
	}
}

// ParseConnectivity maps "4" / "8" to a Connectivity.
func ParseConnectivity(s string) (Connectivity, error) {
	switch s {
	case "", "4":
		return Conn4, nil
	case "8":
		return Conn8, nil
	default:
		return 0, fmt.Errorf("tilemap: unknown connectivity %q", s)
	}
}

// Point is an integer grid coordinate. Grid maps live on the Z = 0 layer;
// Z is carried so that layered maps and 3-axis heuristics share one node type.
type Point struct {
	X, Y, Z int
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y int) Point { return Point{X: x, Y: y} }

// XYZ returns the three axes; it makes Point usable with the heuristic package.
func (p Point) XYZ() (x, y, z int) { return p.X, p.Y, p.Z }

// Add returns p translated by d.
func (p Point) Add(d Point) Point {
	return Point{X: p.X + d.X, Y: p.Y + d.Y, Z: p.Z + d.Z}
}

// String renders "(x,y)" on the base layer and "(x,y,z)" elsewhere.
func (p Point) String() string {
	if p.Z == 0 {
		return fmt.Sprintf("(%d,%d)", p.X, p.Y)
	}

	return fmt.Sprintf("(%d,%d,%d)", p.X, p.Y, p.Z)
}

// TileSpec describes one kind of terrain.
type TileSpec struct {
	Name     string
	Cost     float64 // cost of entering the tile; ignored when !Passable
	Passable bool
}

// Legend maps map glyphs to terrain.
type Legend map[rune]TileSpec

// DefaultLegend returns the built-in terrain set:
//
//	'.' grass  1
//	'f' forest 3
//	'h' hills  2
//	'~' swamp  5
//	'#' wall   blocked
//	'w' water  blocked
func DefaultLegend() Legend {
	return Legend{
		'.': {Name: "grass", Cost: 1, Passable: true},
		'f': {Name: "forest", Cost: 3, Passable: true},
		'h': {Name: "hills", Cost: 2, Passable: true},
		'~': {Name: "swamp", Cost: 5, Passable: true},
		'#': {Name: "wall"},
		'w': {Name: "water"},
	}
}

// Options contains tunable parameters for grid construction.
type Options struct {
	// Conn chooses 4- or 8-directional movement.
	Conn Connectivity
}

// DefaultOptions returns Options with Conn = Conn4.
func DefaultOptions() Options {
	return Options{Conn: Conn4}
}
