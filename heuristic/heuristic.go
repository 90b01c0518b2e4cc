// Package heuristic provides admissible distance estimates for astar.
//
// Coordinate heuristics work on any node type with integer axes (see
// Coordinate); GreatCircle works on geographic s2.LatLng nodes. ByName
// resolves a heuristic from configuration and fails fast when the requested
// heuristic is not defined on the node type.
package heuristic

import (
	"math"

	"github.com/golang/geo/s2"

	"github.com/katalvlaran/tilepath/astar"
)

// EarthRadiusMeters is the mean Earth radius used by GreatCircle.
const EarthRadiusMeters = 6371010.0

// Coordinate is a node with integer axes. tilemap.Point satisfies it.
type Coordinate interface {
	comparable
	XYZ() (x, y, z int)
}

// xyzer is the method set of Coordinate, usable as a plain interface.
type xyzer interface {
	XYZ() (x, y, z int)
}

func deltas(a, b xyzer) (dx, dy, dz float64) {
	ax, ay, az := a.XYZ()
	bx, by, bz := b.XYZ()

	return math.Abs(float64(ax - bx)), math.Abs(float64(ay - by)), math.Abs(float64(az - bz))
}

// Manhattan is the sum of absolute per-axis differences. Admissible for
// 4-connected moves whose cost is at least 1.
func Manhattan[N Coordinate](a, b N) float64 { return manhattan(a, b) }

func manhattan(a, b xyzer) float64 {
	dx, dy, dz := deltas(a, b)

	return dx + dy + dz
}

// Euclidean is the straight-line distance. Admissible for any movement model
// whose step cost is at least its length.
func Euclidean[N Coordinate](a, b N) float64 { return euclidean(a, b) }

func euclidean(a, b xyzer) float64 {
	dx, dy, dz := deltas(a, b)

	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// Chebyshev is the largest per-axis difference: the step count when a
// diagonal move costs the same as an orthogonal one.
func Chebyshev[N Coordinate](a, b N) float64 { return chebyshev(a, b) }

func chebyshev(a, b xyzer) float64 {
	dx, dy, dz := deltas(a, b)

	return max(dx, dy, dz)
}

// Octile is the exact unit-cost distance on an 8-connected plane where a
// diagonal costs √2; the Z difference is added as orthogonal steps.
func Octile[N Coordinate](a, b N) float64 { return octile(a, b) }

func octile(a, b xyzer) float64 {
	dx, dy, dz := deltas(a, b)

	return dx + dy + (math.Sqrt2-2)*min(dx, dy) + dz
}

// Zero always returns 0, turning A* into Dijkstra's algorithm.
func Zero[N comparable](_, _ N) float64 { return 0 }

// GreatCircle is the great-circle distance in metres between two geographic
// points. Admissible for road networks whose edge costs are metres travelled.
func GreatCircle(a, b s2.LatLng) float64 {
	return a.Distance(b).Radians() * EarthRadiusMeters
}

// Scaled multiplies h by k. With k equal to the cheapest step cost a unit
// heuristic stays admissible but becomes tighter; k > that trades optimality
// for fewer expansions (weighted A*).
func Scaled[N comparable](h astar.Heuristic[N], k float64) astar.Heuristic[N] {
	return func(a, b N) float64 { return k * h(a, b) }
}
