// Package dijkstra provides Dijkstra's single-source shortest-path algorithm
// over any astar.Graph with non-negative float costs.
//
// Overview:
//
//   - Distances settles every node reachable from the source in order of
//     increasing distance, using the pqueue binary heap with lazy decrease-key.
//   - The graph is implicit: nodes are discovered through Neighbors, so the
//     result only contains what the source can reach.
//
// When to use:
//
//   - As the exhaustive reference against which A* paths are checked.
//   - For one-to-all questions (distance fields, reachability within a cost
//     radius) where A*'s single goal does not fit.
//
// Key features:
//
//   - ReturnPath: also return the predecessor map; PathTo rebuilds one path.
//   - MaxDistance: nodes farther than the cap are not settled.
//   - InfEdgeThreshold: edges with cost ≥ threshold are walls (default
//     astar.Impassable, the engine's own convention).
//
// Error handling (sentinel errors):
//
//   - ErrNilGraph: nil graph.
//   - ErrNegativeWeight: the graph returned a negative or NaN cost.
//   - ErrBadMaxDistance, ErrBadInfThreshold: invalid options.
//
// Example:
//
//	dist, prev, err := dijkstra.Distances[tilemap.Point](grid, start, dijkstra.WithReturnPath())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(dist[goal], dijkstra.PathTo(prev, start, goal))
package dijkstra
