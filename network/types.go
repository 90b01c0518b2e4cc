// Package network defines sentinel errors and construction options for the
// generic weighted Network.
package network

import "errors"

// Sentinel errors for network operations.
var (
	// ErrNegativeCost indicates a negative or NaN edge cost.
	ErrNegativeCost = errors.New("network: edge cost must be non-negative")

	// ErrLoopNotAllowed indicates a self-loop was attempted when loops are disabled.
	ErrLoopNotAllowed = errors.New("network: self-loop not allowed")

	// ErrNodeNotFound indicates an operation referenced a non-existent node.
	ErrNodeNotFound = errors.New("network: node not found")

	// ErrEdgeNotFound indicates an operation referenced a non-existent edge.
	ErrEdgeNotFound = errors.New("network: edge not found")

	// ErrEmptyIndex indicates a nearest-node query on an index with no nodes.
	ErrEmptyIndex = errors.New("network: index has no nodes")
)

// Option configures a Network before creation.
type Option func(c *config)

type config struct {
	directed   bool // edges are one-way
	allowLoops bool // self-loops permitted
}

// WithDirected makes every edge one-way (default: undirected).
func WithDirected() Option {
	return func(c *config) { c.directed = true }
}

// WithLoops permits self-loops. A search never follows them, since Neighbors
// must not yield the node itself; they exist for callers that store them.
func WithLoops() Option {
	return func(c *config) { c.allowLoops = true }
}
