package heuristic

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/golang/geo/s2"

	"github.com/katalvlaran/tilepath/astar"
)

// Sentinel errors returned by ByName.
var (
	// ErrTypeMismatch indicates a heuristic requested for a node type it is
	// not defined on. This is a configuration error and is reported before
	// any search runs.
	ErrTypeMismatch = errors.New("heuristic: not defined for node type")

	// ErrUnknownHeuristic indicates a name ByName does not know.
	ErrUnknownHeuristic = errors.New("heuristic: unknown name")
)

// Names lists every name ByName accepts.
func Names() []string {
	return []string{"manhattan", "euclidean", "chebyshev", "octile", "zero", "great-circle"}
}

// ByName resolves a heuristic for node type N.
//
//	manhattan, euclidean, chebyshev, octile: N must have XYZ() (x, y, z int)
//	great-circle:                            N must be s2.LatLng
//	zero (alias dijkstra):                   any N
//
// Returns ErrTypeMismatch or ErrUnknownHeuristic.
func ByName[N comparable](name string) (astar.Heuristic[N], error) {
	typ := reflect.TypeFor[N]()
	switch name {
	case "zero", "dijkstra":
		return Zero[N], nil

	case "great-circle":
		if typ != reflect.TypeFor[s2.LatLng]() {
			return nil, fmt.Errorf("%w: %s needs s2.LatLng, got %v", ErrTypeMismatch, name, typ)
		}
		return func(a, b N) float64 {
			return GreatCircle(any(a).(s2.LatLng), any(b).(s2.LatLng))
		}, nil
	}

	var fn func(a, b xyzer) float64
	switch name {
	case "manhattan":
		fn = manhattan
	case "euclidean":
		fn = euclidean
	case "chebyshev":
		fn = chebyshev
	case "octile":
		fn = octile
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownHeuristic, name)
	}
	// Checked on the type: the zero value of an interface N is nil.
	if !typ.Implements(reflect.TypeFor[xyzer]()) {
		return nil, fmt.Errorf("%w: %s needs XYZ() coordinates, got %v", ErrTypeMismatch, name, typ)
	}

	return func(a, b N) float64 {
		return fn(any(a).(xyzer), any(b).(xyzer))
	}, nil
}
