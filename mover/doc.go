// Package mover consumes A* paths.
//
// A Mover is one agent. Every Step re-plans from the agent's current node to
// its target and advances exactly one node, so walls added or removed between
// steps are honoured on the next step without any cache invalidation.
// An empty path is not an error: the agent stays put, logs a warning and
// tries again on the following step.
//
// A Fleet steps many agents against the same world snapshot. Within a tick the
// searches run concurrently (golang.org/x/sync/errgroup, bounded by
// WithWorkers); each search owns its own state, so nothing is shared but the
// read-only graph. Run paces ticks with a golang.org/x/time/rate limiter and
// stops once every agent has arrived or is stuck.
//
// Example:
//
//	g := tilemap.MustParse([]string{"....", ".##.", "...."}, tilemap.DefaultLegend(), tilemap.DefaultOptions())
//	m := mover.New(tilemap.Pt(0, 0), heuristic.Manhattan[tilemap.Point])
//	m.SetTarget(tilemap.Pt(3, 2))
//	for !m.Arrived() {
//		if _, err := m.Step(mover.World[tilemap.Point]{Graph: g}); err != nil {
//			return err
//		}
//	}
package mover
