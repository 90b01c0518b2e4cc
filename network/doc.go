// Package network provides a generic, thread-safe weighted graph that plugs
// straight into the astar and dijkstra searches, plus geographic helpers for
// road networks.
//
// Overview:
//
//   - Network[N] stores nodes of any comparable type and float64 edge costs.
//     It is undirected by default; WithDirected makes edges one-way.
//   - Missing edges cost astar.Impassable, so the search never follows them.
//   - Edges and nodes can be removed at runtime (closed roads, destroyed
//     bridges); searches started afterwards see the change.
//
// Geographic helpers (nodes are s2.LatLng):
//
//   - AddRoad weighs an edge by its great-circle length in metres, keeping
//     heuristic.GreatCircle admissible.
//   - Index snaps arbitrary coordinates to the nearest node with an R-tree.
//   - EncodePolyline / DecodePolyline convert paths to and from the Google
//     encoded polyline format.
//
// Errors:
//
//   - ErrNegativeCost, ErrLoopNotAllowed from AddEdge.
//   - ErrEdgeNotFound from RemoveEdge, ErrNodeNotFound from RemoveNode.
//   - ErrEmptyIndex from Index.Nearest.
package network
