// Package tilepath is a path-finding toolkit for games, simulations and
// routing services, built around a generic A* engine.
//
// What is inside?
//
//	pqueue/    binary min-heap priority queue, the frontier of every search
//	astar/     A* over any Graph[N]: budgeted, hookable, policy-selectable
//	heuristic/ Manhattan, Euclidean, Chebyshev, Octile, Zero, GreatCircle, Scaled
//	tilemap/   glyph-parsed tile maps, sparse tile sets, random maps, regions
//	network/   weighted road networks, R-tree snapping, polylines
//	dijkstra/  single-source distances, the reference oracle for A*
//	mover/     agents that re-plan every step and a concurrent fleet
//	config/    YAML scenarios with validation and hot reload
//	service/   map snapshots and traced path queries
//	server/    JSON HTTP API with Prometheus metrics
//	metrics/   Prometheus collectors for searches, ticks and requests
//
// The command in cmd/tilepath exposes find, simulate, serve and bench.
//
// Quick example:
//
//	g := tilemap.MustParse([]string{
//		".#.",
//		"...",
//	}, tilemap.DefaultLegend(), tilemap.DefaultOptions())
//	path, _ := astar.FindPath[tilemap.Point](g, tilemap.Pt(0, 0), tilemap.Pt(2, 0),
//		heuristic.Manhattan[tilemap.Point], 100)
//	// path: (0,0) (0,1) (1,1) (2,1) (2,0)
//
//	go get github.com/katalvlaran/tilepath
package tilepath
