// Package dijkstra defines core types and configuration options for the
// exhaustive single-source shortest-path search over an astar.Graph.
//
// Options:
//
//	– ReturnPath:       if true, return the predecessor map for path reconstruction.
//	– MaxDistance:      optional cap on distances to explore; nodes beyond it are not settled.
//	– InfEdgeThreshold: edges with cost ≥ this threshold are treated as impassable.
//
// Errors (sentinel):
//
//	– ErrNilGraph        if the provided graph is nil.
//	– ErrNegativeWeight  if the graph returns a negative or NaN cost.
//	– ErrBadMaxDistance  if MaxDistance < 0.
//	– ErrBadInfThreshold if InfEdgeThreshold <= 0.
package dijkstra

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/tilepath/astar"
)

// Sentinel errors returned by Distances.
var (
	// ErrNilGraph indicates that a nil graph was passed.
	ErrNilGraph = errors.New("dijkstra: graph is nil")

	// ErrNegativeWeight indicates that a negative or NaN edge cost was returned by the graph.
	ErrNegativeWeight = errors.New("dijkstra: negative edge weight encountered")

	// ErrBadMaxDistance indicates that MaxDistance was set to a negative value.
	ErrBadMaxDistance = errors.New("dijkstra: MaxDistance must be non-negative")

	// ErrBadInfThreshold indicates that InfEdgeThreshold was set to zero or less,
	// which would treat every edge as impassable.
	ErrBadInfThreshold = errors.New("dijkstra: InfEdgeThreshold must be positive")
)

// Options configures Distances.
//
// ReturnPath       – if true, return the predecessor map; otherwise prev is nil.
// MaxDistance      – cap on distances to explore. Must be ≥ 0. Default +Inf.
// InfEdgeThreshold – edges with cost ≥ this are skipped. Must be > 0.
//
//	Default astar.Impassable, matching the search engine.
type Options struct {
	ReturnPath       bool
	MaxDistance      float64
	InfEdgeThreshold float64

	err error
}

// Option represents a functional option for configuring Distances.
type Option func(*Options)

// WithReturnPath enables the predecessor map in the result.
func WithReturnPath() Option {
	return func(o *Options) {
		o.ReturnPath = true
	}
}

// WithMaxDistance stops exploring once the closest pending node is farther than d.
// Negative or NaN d is recorded and reported as ErrBadMaxDistance.
func WithMaxDistance(d float64) Option {
	return func(o *Options) {
		if !(d >= 0) {
			o.err = fmt.Errorf("%w: %v", ErrBadMaxDistance, d)
			return
		}
		o.MaxDistance = d
	}
}

// WithInfEdgeThreshold skips edges whose cost is ≥ t.
// Non-positive or NaN t is recorded and reported as ErrBadInfThreshold.
func WithInfEdgeThreshold(t float64) Option {
	return func(o *Options) {
		if !(t > 0) {
			o.err = fmt.Errorf("%w: %v", ErrBadInfThreshold, t)
			return
		}
		o.InfEdgeThreshold = t
	}
}

// DefaultOptions returns:
//   - ReturnPath:       false
//   - MaxDistance:      +Inf (explore everything reachable)
//   - InfEdgeThreshold: astar.Impassable
func DefaultOptions() Options {
	return Options{
		MaxDistance:      math.Inf(1),
		InfEdgeThreshold: astar.Impassable,
	}
}
