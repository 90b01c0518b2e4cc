// Package dijkstra implements Dijkstra's shortest-path algorithm over any
// astar.Graph.
//
// Dijkstra settles every node reachable from a source in order of increasing
// distance. It serves as the exhaustive reference for A*: an A* path is
// optimal exactly when its cost equals the distance computed here.
//
// Complexity:
//
//   - Time:  O((V + E) log V)
//   - Each node is settled at most once: V extractions.
//   - Each successful relaxation pushes one entry: up to E pushes.
//   - Space: O(V + E)
//   - O(V) for distance and predecessor maps.
//   - O(E) worst-case for stale entries under lazy decrease-key.
//
// Notes on implementation choices:
//
//   - The graph is implicit (Neighbors/Cost), so there is no upfront edge scan;
//     a negative cost is detected when its edge is first relaxed.
//   - Any edge with cost ≥ InfEdgeThreshold is an impassable wall.
//   - Exploration stops once the minimum pending distance exceeds MaxDistance.
//   - Lazy decrease-key: duplicates are pushed and stale entries ignored on pop.
package dijkstra

import (
	"fmt"
	"math"
	"slices"

	"github.com/katalvlaran/tilepath/astar"
	"github.com/katalvlaran/tilepath/pqueue"
)

// Distances computes the cheapest cost from source to every node reachable
// from it in g.
//
// Returns:
//
//   - dist: node → minimum distance. Unreachable (or beyond MaxDistance) nodes are absent.
//   - prev: predecessor map if ReturnPath is set, nil otherwise.
//     prev[v] == u means the cheapest path to v arrives from u; source has no entry.
//   - err:  ErrBadMaxDistance / ErrBadInfThreshold for bad options, ErrNilGraph,
//     or ErrNegativeWeight wrapped with the offending edge.
//
// Complexity: O((V + E) log V) time, O(V + E) space.
func Distances[N comparable](g astar.Graph[N], source N, opts ...Option) (map[N]float64, map[N]N, error) {
	// 1) Build and validate Options
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.err != nil {
		return nil, nil, cfg.err
	}

	// 2) Validate graph is non-nil
	if g == nil {
		return nil, nil, ErrNilGraph
	}

	r := &runner[N]{
		g:       g,
		options: cfg,
		dist:    make(map[N]float64),
		prev:    make(map[N]N),
		visited: make(map[N]bool),
		pq:      pqueue.New[N, float64](),
	}

	// 3) Seed the source and run the main loop.
	r.dist[source] = 0
	r.pq.Enqueue(source, 0)
	if err := r.process(); err != nil {
		return nil, nil, err
	}

	// 4) Trim tentative distances that were never settled (only possible under MaxDistance).
	for v := range r.dist {
		if !r.visited[v] {
			delete(r.dist, v)
			delete(r.prev, v)
		}
	}

	if !cfg.ReturnPath {
		return r.dist, nil, nil
	}

	return r.dist, r.prev, nil
}

// PathTo rebuilds the node sequence source → target from a predecessor map
// returned by Distances with WithReturnPath. It returns nil if target was not
// reached.
func PathTo[N comparable](prev map[N]N, source, target N) []N {
	if source == target {
		return []N{source}
	}
	if _, ok := prev[target]; !ok {
		return nil
	}
	path := []N{target}
	for cur := target; cur != source; {
		p, ok := prev[cur]
		if !ok {
			return nil
		}
		path = append(path, p)
		cur = p
	}
	slices.Reverse(path)

	return path
}

// runner holds the mutable state for a single Dijkstra execution.
type runner[N comparable] struct {
	g       astar.Graph[N]                    // read-only within Distances
	options Options                           // thresholds and flags
	dist    map[N]float64                     // node → best distance so far
	prev    map[N]N                           // node → predecessor on the best path
	visited map[N]bool                        // settled nodes
	pq      *pqueue.PriorityQueue[N, float64] // lazy min-heap of (node, distance)
}

// process repeatedly settles the closest pending node and relaxes its edges.
//
// Loop termination conditions:
//
//   - The queue becomes empty (all reachable nodes settled).
//   - The minimum distance in the queue exceeds MaxDistance.
func (r *runner[N]) process() error {
	for r.pq.Count() > 0 {
		item, err := r.pq.DequeueItem()
		if err != nil {
			return err
		}
		u, d := item.Element, item.Priority

		// Stale heap entry.
		if r.visited[u] {
			continue
		}
		if d > r.options.MaxDistance {
			break
		}
		r.visited[u] = true

		if err = r.relax(u); err != nil {
			return err
		}
	}

	return nil
}

// relax attempts to improve the distance of every neighbor of the settled node u.
func (r *runner[N]) relax(u N) error {
	du := r.dist[u]
	for v := range r.g.Neighbors(u) {
		if r.visited[v] {
			continue
		}
		w := r.g.Cost(u, v)
		if w < 0 || math.IsNaN(w) {
			return fmt.Errorf("%w: edge %v→%v weight=%v", ErrNegativeWeight, u, v, w)
		}
		if w >= r.options.InfEdgeThreshold {
			continue
		}

		nd := du + w
		if nd > r.options.MaxDistance {
			continue
		}
		if old, seen := r.dist[v]; seen && nd >= old {
			continue
		}
		r.dist[v] = nd
		r.prev[v] = u
		r.pq.Enqueue(v, nd)
	}

	return nil
}
