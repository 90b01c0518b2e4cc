// Package astar provides a generic A* best-first search over any graph that
// can enumerate neighbors and price single moves.
//
// Overview:
//
//   - A* finds the cheapest path between two nodes by always expanding the open
//     node with the lowest f = g + h, where g is the known cost from the start
//     and h an estimate of the remaining cost to the goal.
//   - The engine knows nothing about tiles, coordinates or maps. It needs a
//     Graph[N] (Neighbors + Cost) and a Heuristic[N]; N is any comparable type.
//   - Every call is self-contained: concurrent searches on distinct or shared
//     read-only graphs are safe.
//
// When to use:
//
//   - Tile maps, road networks, navigation meshes, puzzle state spaces.
//   - Any game or simulation loop that re-plans every step and needs a hard
//     cap on the work done per plan (the iteration budget).
//
// Key features:
//
//   - Iteration budget: MaxIterations bounds the number of dequeues; when it is
//     exhausted the search reports "no path" instead of running on.
//   - Policies: PolicyReinsert (default) re-enqueues improved open nodes and
//     drops the stale entries lazily, which keeps the result optimal for any
//     admissible heuristic. PolicyKeepFirst keeps the first queue priority of
//     an open node and only updates its scores and predecessor.
//   - Impassable edges: a Graph reports blocked moves with Impassable; such
//     edges are skipped, never relaxed.
//   - Hooks: OnExpand, OnEnqueue and OnFinish observe a search without
//     changing it (metrics, visualisation, tests).
//
// Contract:
//
//   - FindPath(g, n, n, h, k) == [n] for any g and any k ≥ 0.
//   - A non-empty result starts at start, ends at goal, and every consecutive
//     pair is a move the graph offered.
//   - "No path" is an empty, non-nil slice and a nil error.
//   - The closed set is permanent: a node is never expanded twice.
//
// Complexity:
//
//   - Time:  O((V + E) log V) worst case, bounded above by MaxIterations dequeues.
//   - Space: O(V + E) for scores, predecessors and the queue.
//
// Error handling (sentinel errors):
//
//   - ErrNilGraph, ErrNilHeuristic: a required argument is nil.
//   - ErrOptionViolation: an Option carried an invalid value.
//   - ErrNegativeCost: the graph broke its contract with a negative or NaN cost.
//
// Example:
//
//	path, err := astar.FindPath[tilemap.Point](grid, from, to, heuristic.Manhattan[tilemap.Point], 1000)
//	if err != nil {
//	    return err
//	}
//	if len(path) == 0 {
//	    // unreachable or over budget, retry later
//	}
package astar
