// Package network provides an in-memory weighted graph over any comparable
// node type that satisfies astar.Graph.
//
// Concurrency:
//   - All methods are guarded by one sync.RWMutex, so edges can be added or
//     removed while other goroutines search.
//   - Neighbors copies the adjacency row under the read lock and yields
//     outside it, so a search never holds the lock across a callback.
//
// Determinism:
//   - Nodes() and Neighbors() follow insertion order.
package network

import (
	"fmt"
	"iter"
	"math"
	"slices"
	"sync"

	"github.com/katalvlaran/tilepath/astar"
)

type edgeKey[N comparable] struct{ from, to N }

// Network is a directed or undirected graph with float64 edge costs and no
// parallel edges: adding an existing edge overwrites its cost.
type Network[N comparable] struct {
	mu sync.RWMutex // guards everything below

	cfg   config
	index map[N]int           // node → position in nodes
	nodes []N                 // insertion order
	adj   map[N][]N           // out-neighbors in insertion order
	costs map[edgeKey[N]]float64
	edges int // logical edge count (undirected counted once)
}

var _ astar.Graph[int] = (*Network[int])(nil)

// New creates an empty network. By default it is undirected without loops.
func New[N comparable](opts ...Option) *Network[N] {
	n := &Network[N]{
		index: make(map[N]int),
		adj:   make(map[N][]N),
		costs: make(map[edgeKey[N]]float64),
	}
	for _, opt := range opts {
		opt(&n.cfg)
	}

	return n
}

// Directed reports whether edges are one-way.
func (n *Network[N]) Directed() bool { return n.cfg.directed }

// AddNode inserts v if missing (idempotent).
func (n *Network[N]) AddNode(v N) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.addNodeLocked(v)
}

func (n *Network[N]) addNodeLocked(v N) {
	if _, ok := n.index[v]; ok {
		return
	}
	n.index[v] = len(n.nodes)
	n.nodes = append(n.nodes, v)
}

// HasNode reports whether v exists.
func (n *Network[N]) HasNode(v N) bool {
	n.mu.RLock()
	defer n.mu.RUnlock()
	_, ok := n.index[v]

	return ok
}

// AddEdge connects from → to with cost (and to → from when undirected),
// creating missing nodes. An existing edge has its cost replaced.
//
// Implementation:
//   - Stage 1: Validate cost (ErrNegativeCost) and loop policy (ErrLoopNotAllowed).
//   - Stage 2: Under the write lock, register both endpoints.
//   - Stage 3: Record the cost and, if new, the adjacency entry in each direction.
//
// Complexity: O(1) amortised.
func (n *Network[N]) AddEdge(from, to N, cost float64) error {
	if cost < 0 || math.IsNaN(cost) {
		return fmt.Errorf("%w: %v→%v cost=%v", ErrNegativeCost, from, to, cost)
	}
	if from == to && !n.cfg.allowLoops {
		return fmt.Errorf("%w: %v", ErrLoopNotAllowed, from)
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	n.addNodeLocked(from)
	n.addNodeLocked(to)

	if _, exists := n.costs[edgeKey[N]{from, to}]; !exists {
		n.edges++
	}
	n.setArcLocked(from, to, cost)
	if !n.cfg.directed && from != to {
		n.setArcLocked(to, from, cost)
	}

	return nil
}

func (n *Network[N]) setArcLocked(from, to N, cost float64) {
	k := edgeKey[N]{from, to}
	if _, ok := n.costs[k]; !ok {
		n.adj[from] = append(n.adj[from], to)
	}
	n.costs[k] = cost
}

// HasEdge reports whether a traversable edge from → to exists.
func (n *Network[N]) HasEdge(from, to N) bool {
	n.mu.RLock()
	defer n.mu.RUnlock()
	_, ok := n.costs[edgeKey[N]{from, to}]

	return ok
}

// RemoveEdge deletes from → to (both directions when undirected).
// Returns ErrEdgeNotFound if it does not exist.
func (n *Network[N]) RemoveEdge(from, to N) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if _, ok := n.costs[edgeKey[N]{from, to}]; !ok {
		return fmt.Errorf("%w: %v→%v", ErrEdgeNotFound, from, to)
	}
	n.deleteArcLocked(from, to)
	if !n.cfg.directed {
		n.deleteArcLocked(to, from)
	}
	n.edges--

	return nil
}

func (n *Network[N]) deleteArcLocked(from, to N) {
	k := edgeKey[N]{from, to}
	if _, ok := n.costs[k]; !ok {
		return
	}
	delete(n.costs, k)
	row := n.adj[from]
	if i := slices.Index(row, to); i >= 0 {
		n.adj[from] = slices.Delete(row, i, i+1)
	}
}

// RemoveNode deletes v and every edge touching it.
// Returns ErrNodeNotFound if v does not exist.
// Complexity: O(V + deg(v)) for directed networks, O(V + deg(v)²) worst case otherwise.
func (n *Network[N]) RemoveNode(v N) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	i, ok := n.index[v]
	if !ok {
		return fmt.Errorf("%w: %v", ErrNodeNotFound, v)
	}

	for _, w := range slices.Clone(n.adj[v]) {
		n.deleteArcLocked(v, w)
		if !n.cfg.directed {
			n.deleteArcLocked(w, v)
		}
		n.edges--
	}
	if n.cfg.directed {
		for _, u := range n.nodes {
			if _, in := n.costs[edgeKey[N]{u, v}]; in {
				n.deleteArcLocked(u, v)
				n.edges--
			}
		}
	}
	delete(n.adj, v)

	n.nodes = slices.Delete(n.nodes, i, i+1)
	delete(n.index, v)
	for j := i; j < len(n.nodes); j++ {
		n.index[n.nodes[j]] = j
	}

	return nil
}

// Nodes returns all nodes in insertion order.
func (n *Network[N]) Nodes() []N {
	n.mu.RLock()
	defer n.mu.RUnlock()

	return slices.Clone(n.nodes)
}

// NodeCount returns the number of nodes.
func (n *Network[N]) NodeCount() int {
	n.mu.RLock()
	defer n.mu.RUnlock()

	return len(n.nodes)
}

// EdgeCount returns the number of edges; an undirected edge counts once.
func (n *Network[N]) EdgeCount() int {
	n.mu.RLock()
	defer n.mu.RUnlock()

	return n.edges
}

// Neighbors yields the out-neighbors of v, self-loops excluded.
// Returns an empty sequence for an unknown node.
func (n *Network[N]) Neighbors(v N) iter.Seq[N] {
	n.mu.RLock()
	row := slices.Clone(n.adj[v])
	n.mu.RUnlock()

	return func(yield func(N) bool) {
		for _, w := range row {
			if w == v {
				continue
			}
			if !yield(w) {
				return
			}
		}
	}
}

// Cost returns the cost of the edge from → to, or astar.Impassable if there is none.
func (n *Network[N]) Cost(from, to N) float64 {
	n.mu.RLock()
	defer n.mu.RUnlock()
	if c, ok := n.costs[edgeKey[N]{from, to}]; ok {
		return c
	}

	return astar.Impassable
}
